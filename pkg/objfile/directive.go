package objfile

import (
	"strconv"
	"strings"
)

// RenderFlags formats the attribute part of a .section directive:
//
//	,"<chars>",<lead><type>[,<entsize>]
//
// The lead is '%' when '@' starts comments, as on ARM.
func RenderFlags(flags Flags, entsize uint64, commentString string) string {
	var sb strings.Builder
	sb.WriteString(`,"`)

	if flags&FlagDebug == 0 {
		sb.WriteByte('a')
	}
	if flags&FlagCode != 0 {
		sb.WriteByte('x')
	}
	if flags&FlagWritable != 0 {
		sb.WriteByte('w')
	}
	if flags&FlagMergeable != 0 {
		sb.WriteByte('M')
	}
	if flags&FlagStrings != 0 {
		sb.WriteByte('S')
	}
	if flags&FlagTLS != 0 {
		sb.WriteByte('T')
	}

	sb.WriteString(`",`)

	if commentString == "@" {
		sb.WriteByte('%')
	} else {
		sb.WriteByte('@')
	}

	if flags&FlagBSS != 0 {
		sb.WriteString("nobits")
	} else {
		sb.WriteString("progbits")
	}

	if entsize != 0 {
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatUint(entsize, 10))
	}

	return sb.String()
}

// SectionDirective is the full directive switching a textual assembler
// stream to sec.
func SectionDirective(sec *Section, commentString string) string {
	return "\t.section\t" + sec.Name + RenderFlags(sec.Flags, sec.EntSize, commentString)
}
