package objfile

import "fmt"

// Kind classifies a global by storage, mutability and relocation needs.
// The set is closed: every switch over Kind handles each value or
// treats it as an internal error.
type Kind uint8

const (
	// Non-allocated metadata such as attributes or debug info. Never a
	// valid input to section selection.
	KindMetadata Kind = iota

	// Executable instructions.
	KindText

	// NUL-terminated strings the linker may merge by content.
	KindMergeableCString

	// Fixed-size constants the linker may merge by content.
	KindMergeableConst4
	KindMergeableConst8
	KindMergeableConst16
	KindMergeableConst

	// Read-only data with no relocations.
	KindReadOnly

	KindThreadData
	KindThreadBSS

	// Zero-initialized writable data.
	KindBSS

	// Writable data, split by the relocations its initializer needs.
	KindDataNoRel
	KindDataRelLocal
	KindDataRel

	// Constants that need relocations; read-only after dynamic relocation.
	KindReadOnlyWithRelLocal
	KindReadOnlyWithRel

	kindCount
)

// Kinds lists every allocatable kind in selection priority order.
var Kinds = []Kind{
	KindText,
	KindMergeableCString,
	KindMergeableConst4,
	KindMergeableConst8,
	KindMergeableConst16,
	KindMergeableConst,
	KindReadOnly,
	KindThreadData,
	KindThreadBSS,
	KindBSS,
	KindDataNoRel,
	KindDataRelLocal,
	KindDataRel,
	KindReadOnlyWithRelLocal,
	KindReadOnlyWithRel,
}

var kindNames = [...]string{
	KindMetadata:             "metadata",
	KindText:                 "text",
	KindMergeableCString:     "mergeable-cstring",
	KindMergeableConst4:      "mergeable-const4",
	KindMergeableConst8:      "mergeable-const8",
	KindMergeableConst16:     "mergeable-const16",
	KindMergeableConst:       "mergeable-const",
	KindReadOnly:             "readonly",
	KindThreadData:           "thread-data",
	KindThreadBSS:            "thread-bss",
	KindBSS:                  "bss",
	KindDataNoRel:            "data-norel",
	KindDataRelLocal:         "data-rel-local",
	KindDataRel:              "data-rel",
	KindReadOnlyWithRelLocal: "readonly-rel-local",
	KindReadOnlyWithRel:      "readonly-rel",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, error) {
	for k := KindMetadata; k < kindCount; k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return KindMetadata, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) IsMetadata() bool { return k == KindMetadata }
func (k Kind) IsText() bool     { return k == KindText }

// IsReadOnly is true for plain read-only data and for every mergeable kind.
func (k Kind) IsReadOnly() bool {
	return k == KindReadOnly || k.IsMergeableCString() || k.IsMergeableConst()
}

func (k Kind) IsMergeableCString() bool { return k == KindMergeableCString }

func (k Kind) IsMergeableConst() bool {
	return k == KindMergeableConst || k == KindMergeableConst4 ||
		k == KindMergeableConst8 || k == KindMergeableConst16
}

func (k Kind) IsMergeableConst4() bool  { return k == KindMergeableConst4 }
func (k Kind) IsMergeableConst8() bool  { return k == KindMergeableConst8 }
func (k Kind) IsMergeableConst16() bool { return k == KindMergeableConst16 }

func (k Kind) IsMergeable() bool { return k.IsMergeableCString() || k.IsMergeableConst() }

func (k Kind) IsWritable() bool {
	return k.IsThreadLocal() || k.IsGlobalWritableData()
}

func (k Kind) IsThreadLocal() bool  { return k == KindThreadData || k == KindThreadBSS }
func (k Kind) IsThreadData() bool   { return k == KindThreadData }
func (k Kind) IsThreadBSS() bool    { return k == KindThreadBSS }
func (k Kind) IsBSS() bool          { return k == KindBSS }
func (k Kind) IsDataNoRel() bool    { return k == KindDataNoRel }
func (k Kind) IsDataRelLocal() bool { return k == KindDataRelLocal }
func (k Kind) IsDataRel() bool      { return k == KindDataRel }

func (k Kind) IsReadOnlyWithRelLocal() bool { return k == KindReadOnlyWithRelLocal }
func (k Kind) IsReadOnlyWithRel() bool      { return k == KindReadOnlyWithRel }

// IsGlobalWritableData covers non-thread-local writable kinds, including
// read-only-after-relocation data which lives in writable sections.
func (k Kind) IsGlobalWritableData() bool {
	return k.IsBSS() || k.IsDataNoRel() || k.IsDataRelLocal() || k.IsDataRel() ||
		k.IsReadOnlyWithRelLocal() || k.IsReadOnlyWithRel()
}

// ConstPoolSizes are the entity sizes with a dedicated constant pool,
// indexed from KindMergeableConst4.
var ConstPoolSizes = [...]uint64{4, 8, 16}

// ConstPoolSize is the entity size of k's constant pool, or 0 when k has
// no sized pool.
func (k Kind) ConstPoolSize() uint64 {
	if k < KindMergeableConst4 || k > KindMergeableConst16 {
		return 0
	}
	return ConstPoolSizes[k-KindMergeableConst4]
}

// MergeableConstKind picks the pool kind for a constant of size bytes.
func MergeableConstKind(size uint64) Kind {
	for i, n := range ConstPoolSizes {
		if n == size {
			return KindMergeableConst4 + Kind(i)
		}
	}
	return KindMergeableConst
}
