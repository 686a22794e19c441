package objfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderFlags(t *testing.T) {
	for _, tc := range []struct {
		flags   Flags
		entsize uint64
		comment string
		want    string
	}{
		{FlagWritable, 0, "#", `,"aw",@progbits`},
		{FlagWritable | FlagBSS, 0, "@", `,"aw",%nobits`},
		{FlagNone, 0, "#", `,"a",@progbits`},
		{FlagCode, 0, "@", `,"ax",%progbits`},
		{FlagMergeable, 8, "#", `,"aM",@progbits,8`},
		{FlagMergeable | FlagStrings, 1, "//", `,"aMS",@progbits,1`},
		{FlagWritable | FlagTLS | FlagBSS, 0, "@", `,"awT",%nobits`},
		{FlagDebug, 0, "#", `,"",@progbits`},
		{FlagCode | FlagWritable | FlagMergeable | FlagStrings | FlagTLS, 4, "#", `,"axwMST",@progbits,4`},
	} {
		require.Equal(t, tc.want, RenderFlags(tc.flags, tc.entsize, tc.comment), tc.flags.String())
	}
}

func TestSectionDirective(t *testing.T) {
	ctx := newTestContext(t, nil)

	require.Equal(t, "\t.section\t.rodata.cst8,\"aM\",%progbits,8",
		ctx.Directive(ctx.ELF.MergeableConstSection(8)))
	require.Equal(t, "\t.section\t.tbss,\"awT\",@nobits",
		SectionDirective(ctx.ELF.TLSBSS, "#"))
}
