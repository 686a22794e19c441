package objfile

import (
	"debug/elf"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestELFProfileAAPCS(t *testing.T) {
	ctx := newTestContext(t, func(cfg *TargetConfig) { cfg.ABI = ABIAAPCS })
	p := ctx.Profile
	require.Equal(t, FormatELF, p.Format())

	ctor := p.StaticCtorSection()
	require.NotNil(t, ctor)
	require.Equal(t, ".init_array", ctor.Name)
	require.Equal(t, elf.SHT_INIT_ARRAY, ctor.Type)
	require.Equal(t, uint64(elf.SHF_WRITE|elf.SHF_ALLOC), ctor.Header().Flags)

	dtor := p.StaticDtorSection()
	require.NotNil(t, dtor)
	require.Equal(t, ".fini_array", dtor.Name)
	require.Equal(t, elf.SHT_FINI_ARRAY, dtor.Type)
	require.Equal(t, uint64(elf.SHF_WRITE|elf.SHF_ALLOC), dtor.Header().Flags)

	require.Same(t, ctor, ctx.Registry.Lookup(".init_array", elf.SHT_INIT_ARRAY, FlagWritable, 0))
}

func TestELFProfileAPCS(t *testing.T) {
	ctx := newTestContext(t, func(cfg *TargetConfig) { cfg.ABI = ABIAPCS })
	p := ctx.Profile

	require.Nil(t, p.StaticCtorSection())
	require.Nil(t, p.StaticDtorSection())
	require.Nil(t, ctx.Registry.Lookup(".init_array", elf.SHT_INIT_ARRAY, FlagWritable, 0))
	require.NotNil(t, p.AttributesSection())
}

func TestELFProfileAttributes(t *testing.T) {
	ctx := newTestContext(t, nil)

	attrs := ctx.Profile.AttributesSection()
	require.NotNil(t, attrs)
	require.Equal(t, ".ARM.attributes", attrs.Name)
	require.Equal(t, SHT_ARM_ATTRIBUTES, attrs.Type)
	require.Equal(t, elf.SectionType(0x70000003), attrs.Type)
	require.Zero(t, attrs.Header().Flags)
}

func TestMachOProfile(t *testing.T) {
	ctx := newTestContext(t, func(cfg *TargetConfig) { cfg.Format = FormatMachO })
	p := ctx.Profile

	require.Equal(t, FormatMachO, p.Format())
	require.Nil(t, p.StaticCtorSection())
	require.Nil(t, p.StaticDtorSection())
	require.Nil(t, p.AttributesSection())
}

func TestEHEncodingsMatchAcrossFormats(t *testing.T) {
	for _, format := range []Format{FormatELF, FormatMachO} {
		for _, abi := range []ABI{ABIAPCS, ABIAAPCS} {
			ctx := newTestContext(t, func(cfg *TargetConfig) {
				cfg.Format = format
				cfg.ABI = abi
			})
			p := ctx.Profile

			require.Equal(t, EHEncoding(0x9b), p.PersonalityEncoding())
			require.Equal(t, EHEncoding(0x1b), p.LSDAEncoding())
			require.Equal(t, EHEncoding(0x1b), p.FDEEncoding())
			require.Equal(t, EHEncoding(0x9b), p.TTypeEncoding())
			require.Equal(t, DW_EH_PE_indirect|DW_EH_PE_pcrel|DW_EH_PE_sdata4, p.PersonalityEncoding())
			require.Equal(t, DW_EH_PE_pcrel|DW_EH_PE_sdata4, p.FDEEncoding())
			require.Equal(t, MachineTypeARM, p.Arch().Machine)
		}
	}
}

func TestEHEncodingString(t *testing.T) {
	require.Equal(t, "indirect|pcrel|sdata4", (DW_EH_PE_indirect | DW_EH_PE_pcrel | DW_EH_PE_sdata4).String())
	require.Equal(t, "pcrel|sdata4", (DW_EH_PE_pcrel | DW_EH_PE_sdata4).String())
	require.Equal(t, "absptr", DW_EH_PE_absptr.String())
	require.Equal(t, "datarel|udata4", (DW_EH_PE_datarel | DW_EH_PE_udata4).String())
	require.Equal(t, "omit", DW_EH_PE_omit.String())
}

func TestArchProfile(t *testing.T) {
	arch := GetArchProfile(MachineTypeARM)
	require.Equal(t, elf.EM_ARM, arch.ELFMachine)
	require.Equal(t, MachineTypeARM, GetMachineTypeFromELF(elf.EM_ARM))
	require.Equal(t, MachineTypeNone, GetMachineTypeFromELF(elf.EM_RISCV))
	require.Equal(t, "arm", MachineTypeStringer{MachineTypeARM}.String())

	expectFatal(t, func() { GetArchProfile(MachineTypeNone) })
}
