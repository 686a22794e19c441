package objfile

import (
	"debug/elf"
	"fmt"
	"strings"

	"objsec/pkg/utils"
)

type MachineType = uint8

const (
	MachineTypeNone MachineType = iota
	MachineTypeARM
)

func GetMachineTypeFromName(name string) (MachineType, error) {
	switch strings.ToLower(name) {
	case "arm", "armv7", "thumb":
		return MachineTypeARM, nil
	}
	return MachineTypeNone, fmt.Errorf("%w: %q", ErrUnknownArch, name)
}

func GetMachineTypeFromELF(machine elf.Machine) MachineType {
	if machine == elf.EM_ARM {
		return MachineTypeARM
	}
	return MachineTypeNone
}

type MachineTypeStringer struct {
	MachineType
}

func (m MachineTypeStringer) String() string {
	switch m.MachineType {
	case MachineTypeARM:
		return "arm"
	}

	utils.Assert(m.MachineType == MachineTypeNone)
	return ""
}

// ArchProfile holds what the format profiles need to know about an
// architecture: its ELF machine code and its exception-handling pointer
// encodings, which do not depend on the binary format.
type ArchProfile struct {
	Machine     MachineType
	ELFMachine  elf.Machine
	Personality EHEncoding
	LSDA        EHEncoding
	FDE         EHEncoding
	TType       EHEncoding

	// ELF type code of the build attributes section; zero when the
	// architecture has none.
	AttributesType elf.SectionType
	AttributesName string
}

// SHT_ARM_ATTRIBUTES is missing from debug/elf.
const SHT_ARM_ATTRIBUTES elf.SectionType = elf.SHT_LOPROC + 3

func GetArchProfile(m MachineType) ArchProfile {
	switch m {
	case MachineTypeARM:
		return ArchProfile{
			Machine:        MachineTypeARM,
			ELFMachine:     elf.EM_ARM,
			Personality:    DW_EH_PE_indirect | DW_EH_PE_pcrel | DW_EH_PE_sdata4,
			LSDA:           DW_EH_PE_pcrel | DW_EH_PE_sdata4,
			FDE:            DW_EH_PE_pcrel | DW_EH_PE_sdata4,
			TType:          DW_EH_PE_indirect | DW_EH_PE_pcrel | DW_EH_PE_sdata4,
			AttributesType: SHT_ARM_ATTRIBUTES,
			AttributesName: ".ARM.attributes",
		}
	}

	utils.Fatal(fmt.Sprintf("no architecture profile for %q", MachineTypeStringer{m}.String()))
	return ArchProfile{}
}
