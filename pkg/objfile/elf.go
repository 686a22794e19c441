package objfile

import (
	"fmt"
	"strconv"

	"objsec/pkg/utils"
)

// MaxStringPoolEntSize is the largest string element size that gets a
// mergeable string pool.
const MaxStringPoolEntSize = 16

// ELF selects and names sections following the ELF conventions. The
// fixed sections are created up front; merge pools are created through
// the registry on first use.
type ELF struct {
	Registry   *Registry
	DataLayout DataLayout

	CStringPrefix string

	Text           *Section
	Data           *Section
	ReadOnly       *Section
	BSS            *Section
	TLSData        *Section
	TLSBSS         *Section
	DataRel        *Section
	DataRelLocal   *Section
	DataRelRO      *Section
	DataRelROLocal *Section
}

func NewELF(reg *Registry, dl DataLayout, cstringPrefix string) *ELF {
	e := &ELF{
		Registry:      reg,
		DataLayout:    dl,
		CStringPrefix: cstringPrefix,
	}

	e.Text = reg.GetNamedSection(".text", FlagCode, 0)
	e.Data = reg.GetNamedSection(".data", FlagWritable, 0)
	e.ReadOnly = reg.GetNamedSection(".rodata", FlagNone, 0)
	e.BSS = reg.GetNamedSection(".bss", FlagWritable|FlagBSS, 0)
	e.TLSData = reg.GetNamedSection(".tdata", FlagWritable|FlagTLS, 0)
	e.TLSBSS = reg.GetNamedSection(".tbss", FlagWritable|FlagTLS|FlagBSS, 0)
	e.DataRel = reg.GetNamedSection(".data.rel", FlagWritable, 0)
	e.DataRelLocal = reg.GetNamedSection(".data.rel.local", FlagWritable, 0)
	e.DataRelRO = reg.GetNamedSection(".data.rel.ro", FlagWritable, 0)
	e.DataRelROLocal = reg.GetNamedSection(".data.rel.ro.local", FlagWritable, 0)
	return e
}

// MergeableConstSection returns the .rodata.cstN pool for entity size n.
func (e *ELF) MergeableConstSection(n uint64) *Section {
	return e.Registry.GetNamedSection(".rodata.cst"+strconv.FormatUint(n, 10), FlagMergeable, n)
}

// SelectSectionForGlobal maps kind to a section. The checks run in a
// fixed priority order because kinds overlap: mergeable kinds are also
// read-only. g is only consulted for mergeable C strings.
func (e *ELF) SelectSectionForGlobal(kind Kind, g *Global) *Section {
	if kind.IsText() {
		return e.Text
	}
	if kind.IsMergeableCString() {
		return e.MergeableStringSection(g)
	}

	if kind.IsMergeableConst() {
		if n := kind.ConstPoolSize(); n != 0 {
			return e.MergeableConstSection(n)
		}
		return e.ReadOnly
	}

	if kind.IsReadOnly() {
		return e.ReadOnly
	}

	if kind.IsThreadData() {
		return e.TLSData
	}
	if kind.IsThreadBSS() {
		return e.TLSBSS
	}

	if kind.IsBSS() {
		return e.BSS
	}

	if kind.IsDataNoRel() {
		return e.Data
	}
	if kind.IsDataRelLocal() {
		return e.DataRelLocal
	}
	if kind.IsDataRel() {
		return e.DataRel
	}
	if kind.IsReadOnlyWithRelLocal() {
		return e.DataRelROLocal
	}

	if !kind.IsReadOnlyWithRel() {
		utils.Fatal(fmt.Sprintf("unknown section kind %s", kind))
	}
	return e.DataRelRO
}

// SectionForMergeableConstant places a machine constant-pool entry.
func (e *ELF) SectionForMergeableConstant(kind Kind) *Section {
	return e.SelectSectionForGlobal(kind, nil)
}

// MergeableStringSection returns the string pool for g's element type,
// or the read-only section when the elements are empty or too large to
// pool.
func (e *ELF) MergeableStringSection(g *Global) *Section {
	utils.Assert(g != nil && g.Initializer != nil)
	arr, ok := g.Initializer.Type.(ArrayType)
	utils.Assert(ok)

	size := e.DataLayout.TypeAllocSize(arr.Elem)
	if size == 0 || size > MaxStringPoolEntSize {
		return e.ReadOnly
	}

	utils.Assert(e.CStringPrefix != "")

	align := e.DataLayout.PrefTypeAlignment(arr.Elem)
	if align < size {
		align = size
	}

	name := e.CStringPrefix + strconv.FormatUint(size, 10) + "." + strconv.FormatUint(align, 10)
	return e.Registry.GetNamedSection(name, FlagMergeable|FlagStrings, size)
}

// FlagsForNamedSection guesses flags for an author-specified section
// from well-known names. Unrecognized names yield no flags.
func FlagsForNamedSection(name string) Flags {
	if len(name) == 0 || name[0] != '.' {
		return FlagNone
	}

	switch {
	case utils.HasAnyPrefix(name,
		".gnu.linkonce.b.", ".llvm.linkonce.b.",
		".gnu.linkonce.sb.", ".llvm.linkonce.sb."):
		return FlagBSS
	case name == ".tdata" || utils.HasAnyPrefix(name,
		".tdata.", ".gnu.linkonce.td.", ".llvm.linkonce.td."):
		return FlagTLS
	case name == ".tbss" || utils.HasAnyPrefix(name,
		".tbss.", ".gnu.linkonce.tb.", ".llvm.linkonce.tb."):
		return FlagBSS | FlagTLS
	}
	return FlagNone
}

// LinkoncePrefix is the section name prefix for a global that must be
// deduplicated at link time.
func LinkoncePrefix(kind Kind) string {
	if kind.IsText() {
		return ".gnu.linkonce.t."
	}
	if kind.IsReadOnly() {
		return ".gnu.linkonce.r."
	}

	if kind.IsThreadData() {
		return ".gnu.linkonce.td."
	}
	if kind.IsThreadBSS() {
		return ".gnu.linkonce.tb."
	}

	if kind.IsBSS() {
		return ".gnu.linkonce.b."
	}
	if kind.IsDataNoRel() {
		return ".gnu.linkonce.d."
	}
	if kind.IsDataRelLocal() {
		return ".gnu.linkonce.d.rel.local."
	}
	if kind.IsDataRel() {
		return ".gnu.linkonce.d.rel."
	}
	if kind.IsReadOnlyWithRelLocal() {
		return ".gnu.linkonce.d.rel.ro.local."
	}

	if !kind.IsReadOnlyWithRel() {
		utils.Fatal(fmt.Sprintf("unknown section kind %s", kind))
	}
	return ".gnu.linkonce.d.rel.ro."
}

// Placement is where a global ended up. Fragment is set for globals
// pooled in a mergeable section.
type Placement struct {
	Kind     Kind
	Section  *Section
	Fragment *SectionFragment
}

// SectionForGlobal places g: in its explicit section if it has one, in a
// linkonce section if several definitions may reach the linker, and
// through SelectSectionForGlobal otherwise.
func (e *ELF) SectionForGlobal(g *Global, rm RelocModel) Placement {
	kind := KindForGlobal(g, e.DataLayout, rm)

	if g.HasSection() {
		flags := FlagsForKind(kind) | FlagsForNamedSection(g.Section)
		return Placement{Kind: kind, Section: e.Registry.GetSectionByName(g.Section, flags)}
	}

	if g.Linkage.IsWeakForLinker() {
		name := LinkoncePrefix(kind) + g.Name
		return Placement{Kind: kind, Section: e.Registry.GetNamedSection(name, FlagsForKind(kind), 0)}
	}

	sec := e.SelectSectionForGlobal(kind, g)
	p := Placement{Kind: kind, Section: sec}
	if sec.IsMergeable() && g.Initializer != nil {
		p2align := log2(e.DataLayout.PrefTypeAlignment(g.Initializer.Type))
		p.Fragment = sec.Insert(string(g.Initializer.Data), p2align)
	}
	return p
}

func log2(align uint64) uint8 {
	n := uint8(0)
	for align > 1 {
		align >>= 1
		n++
	}
	return n
}
