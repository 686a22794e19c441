package objfile

import (
	"debug/elf"
	"strings"
)

// Flags describe a section independently of the output format.
// Sections are allocatable unless FlagDebug is set.
type Flags uint32

const (
	FlagCode      Flags = 1 << iota
	FlagWritable        // data is writable at run time
	FlagBSS             // no file contents, zero filled
	FlagMergeable       // identical entities may be folded by the linker
	FlagStrings         // entities are NUL-terminated strings
	FlagTLS             // one copy per thread
	FlagDebug           // not loaded: debug info and other metadata
)

const (
	FlagNone     Flags = 0
	FlagMetadata       = FlagDebug
)

func (f Flags) Has(x Flags) bool { return f&x == x }

func (f Flags) IsAlloc() bool { return f&FlagDebug == 0 }

// ELFFlags maps to sh_flags.
func (f Flags) ELFFlags() elf.SectionFlag {
	var ret elf.SectionFlag
	if f.IsAlloc() {
		ret |= elf.SHF_ALLOC
	}
	if f&FlagCode != 0 {
		ret |= elf.SHF_EXECINSTR
	}
	if f&FlagWritable != 0 {
		ret |= elf.SHF_WRITE
	}
	if f&FlagMergeable != 0 {
		ret |= elf.SHF_MERGE
	}
	if f&FlagStrings != 0 {
		ret |= elf.SHF_STRINGS
	}
	if f&FlagTLS != 0 {
		ret |= elf.SHF_TLS
	}
	return ret
}

// ELFType is the default sh_type for a section carrying these flags.
func (f Flags) ELFType() elf.SectionType {
	if f&FlagBSS != 0 {
		return elf.SHT_NOBITS
	}
	return elf.SHT_PROGBITS
}

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagCode, "code"},
	{FlagWritable, "writable"},
	{FlagBSS, "bss"},
	{FlagMergeable, "mergeable"},
	{FlagStrings, "strings"},
	{FlagTLS, "tls"},
	{FlagDebug, "debug"},
}

func (f Flags) String() string {
	if f == FlagNone {
		return "none"
	}
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// FlagsForKind returns the flags a section holding kind must carry.
func FlagsForKind(kind Kind) Flags {
	flags := FlagNone
	switch {
	case kind.IsMetadata():
		flags |= FlagMetadata
	case kind.IsText():
		flags |= FlagCode
	case kind.IsWritable():
		flags |= FlagWritable
	}

	if kind.IsBSS() || kind.IsThreadBSS() {
		flags |= FlagBSS
	}
	if kind.IsThreadLocal() {
		flags |= FlagTLS
	}
	if kind.IsMergeable() {
		flags |= FlagMergeable
	}
	if kind.IsMergeableCString() {
		flags |= FlagStrings
	}
	return flags
}
