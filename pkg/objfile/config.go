package objfile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFormat     = errors.New("unknown binary format")
	ErrUnknownABI        = errors.New("unknown ABI")
	ErrUnknownArch       = errors.New("unknown architecture")
	ErrUnknownRelocModel = errors.New("unknown relocation model")
	ErrUnknownKind       = errors.New("unknown section kind")
	ErrInvalidConfig     = errors.New("invalid target config")
)

type Format uint8

const (
	FormatELF Format = iota
	FormatMachO
)

func (f Format) String() string {
	switch f {
	case FormatELF:
		return "elf"
	case FormatMachO:
		return "macho"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "elf":
		return FormatELF, nil
	case "macho", "mach-o":
		return FormatMachO, nil
	}
	return FormatELF, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ABI selects the ARM procedure call standard. AAPCS targets use
// .init_array/.fini_array for static constructors; APCS keeps the
// .ctors/.dtors defaults of the generic ELF lowering.
type ABI uint8

const (
	ABIAPCS ABI = iota
	ABIAAPCS
)

func (a ABI) String() string {
	switch a {
	case ABIAPCS:
		return "apcs"
	case ABIAAPCS:
		return "aapcs"
	}
	return fmt.Sprintf("ABI(%d)", uint8(a))
}

func ParseABI(s string) (ABI, error) {
	switch strings.ToLower(s) {
	case "apcs", "apcs-gnu":
		return ABIAPCS, nil
	case "aapcs", "aapcs-linux", "eabi":
		return ABIAAPCS, nil
	}
	return ABIAPCS, fmt.Errorf("%w: %q", ErrUnknownABI, s)
}

type RelocModel uint8

const (
	RelocStatic RelocModel = iota
	RelocPIC
)

func (r RelocModel) String() string {
	switch r {
	case RelocStatic:
		return "static"
	case RelocPIC:
		return "pic"
	}
	return fmt.Sprintf("RelocModel(%d)", uint8(r))
}

func ParseRelocModel(s string) (RelocModel, error) {
	switch strings.ToLower(s) {
	case "static":
		return RelocStatic, nil
	case "pic":
		return RelocPIC, nil
	}
	return RelocStatic, fmt.Errorf("%w: %q", ErrUnknownRelocModel, s)
}

// TargetConfig carries everything the engine needs from the target
// configuration service.
type TargetConfig struct {
	Arch       MachineType
	Format     Format
	ABI        ABI
	RelocModel RelocModel

	// CommentString is the assembler line-comment marker. It decides the
	// lead character of section type tokens in directives.
	CommentString string

	// CStringPrefix names mergeable string pools; the pool name is
	// <prefix><entsize>.<align>.
	CStringPrefix string
}

func DefaultTargetConfig() TargetConfig {
	return TargetConfig{
		Arch:          MachineTypeARM,
		Format:        FormatELF,
		ABI:           ABIAAPCS,
		RelocModel:    RelocPIC,
		CommentString: "@",
		CStringPrefix: ".rodata.str",
	}
}

func (c TargetConfig) Validate() error {
	if c.Arch == MachineTypeNone {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrUnknownArch)
	}
	if c.Format != FormatELF && c.Format != FormatMachO {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, ErrUnknownFormat, c.Format)
	}
	if c.ABI != ABIAPCS && c.ABI != ABIAAPCS {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, ErrUnknownABI, c.ABI)
	}
	if c.RelocModel != RelocStatic && c.RelocModel != RelocPIC {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, ErrUnknownRelocModel, c.RelocModel)
	}
	if c.CommentString == "" {
		return fmt.Errorf("%w: empty comment string", ErrInvalidConfig)
	}
	if !strings.HasPrefix(c.CStringPrefix, ".") {
		return fmt.Errorf("%w: cstring prefix %q must start with '.'", ErrInvalidConfig, c.CStringPrefix)
	}
	return nil
}
