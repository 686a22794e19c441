package objfile

import (
	"fmt"

	"objsec/pkg/utils"
)

// Type is the subset of IR types section selection needs to size.
type Type interface {
	fmt.Stringer
	isType()
}

type IntType struct{ Bits uint }

type FloatType struct{ Bits uint }

type PointerType struct{}

type ArrayType struct {
	Elem Type
	Len  uint64
}

func (IntType) isType()     {}
func (FloatType) isType()   {}
func (PointerType) isType() {}
func (ArrayType) isType()   {}

func (t IntType) String() string   { return fmt.Sprintf("i%d", t.Bits) }
func (t FloatType) String() string { return fmt.Sprintf("f%d", t.Bits) }
func (PointerType) String() string { return "ptr" }
func (t ArrayType) String() string { return fmt.Sprintf("[%d x %s]", t.Len, t.Elem) }

// DataLayout answers size and alignment queries for the target.
type DataLayout interface {
	TypeAllocSize(t Type) uint64
	PrefTypeAlignment(t Type) uint64
}

// Layout is a table-driven DataLayout. Scalars not listed in the tables
// are aligned to their store size rounded up to a power of two.
type Layout struct {
	PointerSize  uint64
	IntAlign     map[uint64]uint64
	FloatAlign   map[uint64]uint64
	MaxAlignment uint64
}

// NewARMDataLayout returns the ARM layout for abi. AAPCS aligns 64-bit
// scalars to 8 bytes; APCS only to 4.
func NewARMDataLayout(abi ABI) *Layout {
	align64 := uint64(4)
	if abi == ABIAAPCS {
		align64 = 8
	}

	return &Layout{
		PointerSize: 4,
		IntAlign: map[uint64]uint64{
			1: 1, 2: 2, 4: 4, 8: align64,
		},
		FloatAlign: map[uint64]uint64{
			4: 4, 8: align64,
		},
		MaxAlignment: 16,
	}
}

func storeSize(bits uint) uint64 {
	return (uint64(bits) + 7) / 8
}

func (l *Layout) scalarAlign(size uint64, table map[uint64]uint64) uint64 {
	if a, ok := table[size]; ok {
		return a
	}

	align := uint64(1)
	for align < size && align < l.MaxAlignment {
		align <<= 1
	}
	return align
}

func (l *Layout) PrefTypeAlignment(t Type) uint64 {
	switch t := t.(type) {
	case IntType:
		return l.scalarAlign(storeSize(t.Bits), l.IntAlign)
	case FloatType:
		return l.scalarAlign(storeSize(t.Bits), l.FloatAlign)
	case PointerType:
		return l.PointerSize
	case ArrayType:
		return l.PrefTypeAlignment(t.Elem)
	}
	utils.Fatal(fmt.Sprintf("unsupported type %T", t))
	return 0
}

func (l *Layout) TypeAllocSize(t Type) uint64 {
	switch t := t.(type) {
	case IntType:
		return AlignTo(storeSize(t.Bits), l.PrefTypeAlignment(t))
	case FloatType:
		return AlignTo(storeSize(t.Bits), l.PrefTypeAlignment(t))
	case PointerType:
		return l.PointerSize
	case ArrayType:
		return l.TypeAllocSize(t.Elem) * t.Len
	}
	utils.Fatal(fmt.Sprintf("unsupported type %T", t))
	return 0
}
