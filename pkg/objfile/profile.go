package objfile

import (
	"debug/elf"

	"github.com/go-logr/logr"
)

// Profile is the per (architecture, binary format) part of the lowering:
// special sections seeded into the registry and the pointer encodings
// used by exception-handling emission.
type Profile interface {
	Format() Format
	Arch() ArchProfile

	PersonalityEncoding() EHEncoding
	LSDAEncoding() EHEncoding
	FDEEncoding() EHEncoding
	TTypeEncoding() EHEncoding

	// Nil when the profile leaves the choice to the generic lowering.
	StaticCtorSection() *Section
	StaticDtorSection() *Section
	AttributesSection() *Section
}

// encodings is shared by both formats: the format changes section names,
// never the encodings.
type encodings struct {
	arch ArchProfile
}

func (e encodings) Arch() ArchProfile               { return e.arch }
func (e encodings) PersonalityEncoding() EHEncoding { return e.arch.Personality }
func (e encodings) LSDAEncoding() EHEncoding        { return e.arch.LSDA }
func (e encodings) FDEEncoding() EHEncoding         { return e.arch.FDE }
func (e encodings) TTypeEncoding() EHEncoding       { return e.arch.TType }

type elfProfile struct {
	encodings

	ctors      *Section
	dtors      *Section
	attributes *Section
}

func (p *elfProfile) Format() Format              { return FormatELF }
func (p *elfProfile) StaticCtorSection() *Section { return p.ctors }
func (p *elfProfile) StaticDtorSection() *Section { return p.dtors }
func (p *elfProfile) AttributesSection() *Section { return p.attributes }

func (p *elfProfile) initializeSections(reg *Registry, abi ABI) {
	if abi == ABIAAPCS {
		p.ctors = reg.GetSection(".init_array", elf.SHT_INIT_ARRAY, FlagWritable, 0)
		p.dtors = reg.GetSection(".fini_array", elf.SHT_FINI_ARRAY, FlagWritable, 0)
	}

	if p.arch.AttributesName != "" {
		p.attributes = reg.GetSection(p.arch.AttributesName, p.arch.AttributesType, FlagMetadata, 0)
	}
}

type machoProfile struct {
	encodings
}

func (p *machoProfile) Format() Format              { return FormatMachO }
func (p *machoProfile) StaticCtorSection() *Section { return nil }
func (p *machoProfile) StaticDtorSection() *Section { return nil }
func (p *machoProfile) AttributesSection() *Section { return nil }

// NewProfile builds and initializes the profile for cfg. The returned
// profile does not change afterwards.
func NewProfile(cfg TargetConfig, reg *Registry, log logr.Logger) Profile {
	arch := GetArchProfile(cfg.Arch)

	var p Profile
	switch cfg.Format {
	case FormatMachO:
		p = &machoProfile{encodings: encodings{arch: arch}}
	default:
		ep := &elfProfile{encodings: encodings{arch: arch}}
		ep.initializeSections(reg, cfg.ABI)
		p = ep
	}

	log.V(1).Info("initialized target profile",
		"arch", MachineTypeStringer{cfg.Arch}.String(),
		"format", cfg.Format.String(),
		"abi", cfg.ABI.String(),
		"personality", p.PersonalityEncoding().String())
	return p
}
