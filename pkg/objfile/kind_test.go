package objfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	for k := KindMetadata; k < kindCount; k++ {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, parsed)
	}

	require.Equal(t, "Kind(99)", Kind(99).String())
	_, err := ParseKind("rodata")
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestKindOverlap(t *testing.T) {
	for _, k := range []Kind{KindReadOnly, KindMergeableCString, KindMergeableConst,
		KindMergeableConst4, KindMergeableConst8, KindMergeableConst16} {
		require.True(t, k.IsReadOnly(), k.String())
		require.False(t, k.IsWritable(), k.String())
	}

	for _, k := range []Kind{KindThreadData, KindThreadBSS, KindBSS, KindDataNoRel,
		KindDataRelLocal, KindDataRel, KindReadOnlyWithRelLocal, KindReadOnlyWithRel} {
		require.True(t, k.IsWritable(), k.String())
		require.False(t, k.IsReadOnly(), k.String())
	}

	require.False(t, KindThreadBSS.IsBSS())
	require.False(t, KindText.IsWritable())
	require.False(t, KindText.IsReadOnly())
}

func TestFlagsForKind(t *testing.T) {
	for kind, want := range map[Kind]Flags{
		KindMetadata:         FlagMetadata,
		KindText:             FlagCode,
		KindMergeableCString: FlagMergeable | FlagStrings,
		KindMergeableConst8:  FlagMergeable,
		KindReadOnly:         FlagNone,
		KindThreadData:       FlagWritable | FlagTLS,
		KindThreadBSS:        FlagWritable | FlagTLS | FlagBSS,
		KindBSS:              FlagWritable | FlagBSS,
		KindDataRel:          FlagWritable,
		KindReadOnlyWithRel:  FlagWritable,
	} {
		require.Equal(t, want, FlagsForKind(kind), kind.String())
	}

	require.Equal(t, "writable|bss|tls", (FlagWritable | FlagBSS | FlagTLS).String())
	require.Equal(t, "none", FlagNone.String())
}

func TestConstPoolSizes(t *testing.T) {
	for _, tc := range []struct {
		kind Kind
		pred func(Kind) bool
		size uint64
	}{
		{KindMergeableConst4, Kind.IsMergeableConst4, 4},
		{KindMergeableConst8, Kind.IsMergeableConst8, 8},
		{KindMergeableConst16, Kind.IsMergeableConst16, 16},
	} {
		require.True(t, tc.pred(tc.kind), tc.kind.String())
		require.Equal(t, tc.size, tc.kind.ConstPoolSize(), tc.kind.String())
		require.Equal(t, tc.kind, MergeableConstKind(tc.size), tc.kind.String())
	}

	for _, size := range []uint64{0, 1, 2, 12, 32} {
		require.Equal(t, KindMergeableConst, MergeableConstKind(size), size)
	}
	for _, k := range []Kind{KindMergeableConst, KindReadOnly, KindText, KindMetadata} {
		require.Zero(t, k.ConstPoolSize(), k.String())
	}
}
