package objfile

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"objsec/pkg/utils"
)

type fatalExit int

// expectFatal runs fn and requires it to hit utils.Fatal.
func expectFatal(t *testing.T, fn func()) {
	t.Helper()
	orig := utils.Exit
	utils.Exit = func(code int) { panic(fatalExit(code)) }
	defer func() { utils.Exit = orig }()

	require.PanicsWithValue(t, fatalExit(1), fn)
}

func newTestContext(t *testing.T, mutate func(cfg *TargetConfig)) *Context {
	t.Helper()
	cfg := DefaultTargetConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	ctx, err := NewContext(cfg, nil, logr.Discard())
	require.NoError(t, err)
	return ctx
}

func i8Array(s string) *Constant {
	return &Constant{
		Type: ArrayType{Elem: IntType{Bits: 8}, Len: uint64(len(s))},
		Data: []byte(s),
	}
}
