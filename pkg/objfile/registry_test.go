package objfile

import (
	"debug/elf"
	"sync"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetSection(t *testing.T) {
	reg := NewRegistry(logr.Discard())

	a := reg.GetNamedSection(".data.foo", FlagWritable, 0)
	require.Same(t, a, reg.GetNamedSection(".data.foo", FlagWritable, 0))
	require.Same(t, a, reg.Lookup(".data.foo", elf.SHT_PROGBITS, FlagWritable, 0))

	// Any part of the key differing yields a new section.
	require.NotSame(t, a, reg.GetNamedSection(".data.foo", FlagWritable|FlagTLS, 0))
	require.NotSame(t, a, reg.GetNamedSection(".data.foo", FlagWritable, 4))
	require.NotSame(t, a, reg.GetSection(".data.foo", elf.SHT_INIT_ARRAY, FlagWritable, 0))
	require.Nil(t, reg.Lookup(".data.bar", elf.SHT_PROGBITS, FlagWritable, 0))

	names := []string{}
	for _, sec := range reg.Sections() {
		names = append(names, sec.Name)
	}
	require.Equal(t, []string{".data.foo", ".data.foo", ".data.foo", ".data.foo"}, names)
	require.Equal(t, 4, reg.Len())
}

func TestRegistryConcurrentLookupsConverge(t *testing.T) {
	ctx := newTestContext(t, nil)
	before := ctx.Registry.Len()

	const workers = 32
	got := make([]*Section, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = ctx.ELF.SectionForMergeableConstant(KindMergeableConst16)
			got[i].Insert("0123456789abcdef", 4)
		}(i)
	}
	wg.Wait()

	for _, sec := range got {
		require.Same(t, got[0], sec)
	}
	require.Equal(t, before+1, ctx.Registry.Len())
	require.Equal(t, 1, got[0].NumFragments())
}

func TestContextsDoNotShareSections(t *testing.T) {
	a := newTestContext(t, nil)
	b := newTestContext(t, nil)

	require.NotSame(t, a.ELF.MergeableConstSection(4), b.ELF.MergeableConstSection(4))
}
