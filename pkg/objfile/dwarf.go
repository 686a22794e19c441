package objfile

import "strings"

// EHEncoding is a DWARF exception-handling pointer encoding byte
// (DW_EH_PE_*): the low nibble is the value format, the next three bits
// the application, and the top bit marks an indirect pointer.
type EHEncoding uint8

const (
	DW_EH_PE_absptr  EHEncoding = 0x00
	DW_EH_PE_uleb128 EHEncoding = 0x01
	DW_EH_PE_udata2  EHEncoding = 0x02
	DW_EH_PE_udata4  EHEncoding = 0x03
	DW_EH_PE_udata8  EHEncoding = 0x04
	DW_EH_PE_sleb128 EHEncoding = 0x09
	DW_EH_PE_sdata2  EHEncoding = 0x0a
	DW_EH_PE_sdata4  EHEncoding = 0x0b
	DW_EH_PE_sdata8  EHEncoding = 0x0c
	DW_EH_PE_signed  EHEncoding = 0x08

	DW_EH_PE_pcrel   EHEncoding = 0x10
	DW_EH_PE_textrel EHEncoding = 0x20
	DW_EH_PE_datarel EHEncoding = 0x30
	DW_EH_PE_funcrel EHEncoding = 0x40
	DW_EH_PE_aligned EHEncoding = 0x50

	DW_EH_PE_indirect EHEncoding = 0x80

	DW_EH_PE_omit EHEncoding = 0xff
)

var ehFormatNames = map[EHEncoding]string{
	DW_EH_PE_absptr:  "absptr",
	DW_EH_PE_uleb128: "uleb128",
	DW_EH_PE_udata2:  "udata2",
	DW_EH_PE_udata4:  "udata4",
	DW_EH_PE_udata8:  "udata8",
	DW_EH_PE_signed:  "signed",
	DW_EH_PE_sleb128: "sleb128",
	DW_EH_PE_sdata2:  "sdata2",
	DW_EH_PE_sdata4:  "sdata4",
	DW_EH_PE_sdata8:  "sdata8",
}

var ehApplicationNames = map[EHEncoding]string{
	DW_EH_PE_pcrel:   "pcrel",
	DW_EH_PE_textrel: "textrel",
	DW_EH_PE_datarel: "datarel",
	DW_EH_PE_funcrel: "funcrel",
	DW_EH_PE_aligned: "aligned",
}

// String renders the encoding as "indirect|pcrel|sdata4".
func (e EHEncoding) String() string {
	if e == DW_EH_PE_omit {
		return "omit"
	}

	var parts []string
	if e&DW_EH_PE_indirect != 0 {
		parts = append(parts, "indirect")
	}
	if name, ok := ehApplicationNames[e&0x70]; ok {
		parts = append(parts, name)
	}
	if name, ok := ehFormatNames[e&0x0f]; ok {
		parts = append(parts, name)
	} else {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "|")
}
