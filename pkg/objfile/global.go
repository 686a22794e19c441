package objfile

type Linkage uint8

const (
	LinkageExternal Linkage = iota
	LinkageInternal
	LinkagePrivate
	LinkageLinkOnce
	LinkageWeak
	LinkageCommon
)

func (l Linkage) HasLocalLinkage() bool {
	return l == LinkageInternal || l == LinkagePrivate
}

// IsWeakForLinker is true when several definitions may reach the linker
// and one of them is kept.
func (l Linkage) IsWeakForLinker() bool {
	return l == LinkageLinkOnce || l == LinkageWeak || l == LinkageCommon
}

// RelocKind describes the relocations an initializer needs.
type RelocKind uint8

const (
	RelocNone RelocKind = iota
	// Only references to symbols resolved within the module.
	RelocLocal
	// References that may be preempted at dynamic link time.
	RelocGlobal
)

// Constant is a global initializer: its type, little-endian contents and
// the strongest relocation it needs.
type Constant struct {
	Type   Type
	Data   []byte
	Relocs RelocKind
}

func (c *Constant) IsNullValue() bool {
	if c == nil {
		return true
	}
	if c.Relocs != RelocNone {
		return false
	}
	for _, b := range c.Data {
		if b != 0 {
			return false
		}
	}
	return true
}

// IsCString reports whether c is an array of 1, 2 or 4 byte integers
// ending in exactly one zero element.
func (c *Constant) IsCString(dl DataLayout) bool {
	if c == nil || c.Relocs != RelocNone {
		return false
	}

	arr, ok := c.Type.(ArrayType)
	if !ok || arr.Len == 0 {
		return false
	}
	if _, ok := arr.Elem.(IntType); !ok {
		return false
	}

	size := dl.TypeAllocSize(arr.Elem)
	if size != 1 && size != 2 && size != 4 {
		return false
	}
	if uint64(len(c.Data)) != size*arr.Len {
		return false
	}

	isZero := func(i uint64) bool {
		for _, b := range c.Data[i*size : (i+1)*size] {
			if b != 0 {
				return false
			}
		}
		return true
	}

	for i := uint64(0); i < arr.Len-1; i++ {
		if isZero(i) {
			return false
		}
	}
	return isZero(arr.Len - 1)
}

// Global is a module-level symbol being emitted: a function or a
// variable with an optional initializer.
type Global struct {
	Name        string
	Linkage     Linkage
	IsFunction  bool
	IsConstant  bool
	ThreadLocal bool

	// Section is the author-specified section name, empty when the
	// section is to be selected automatically.
	Section string

	Initializer *Constant
}

func (g *Global) HasSection() bool { return g.Section != "" }

// KindForGlobal classifies g. Constants that need relocations become
// plain read-only data under the static relocation model, since nothing
// is relocated at load time.
func KindForGlobal(g *Global, dl DataLayout, rm RelocModel) Kind {
	if g.IsFunction {
		return KindText
	}

	initializer := g.Initializer

	if g.ThreadLocal {
		if initializer.IsNullValue() {
			return KindThreadBSS
		}
		return KindThreadData
	}

	if !g.IsConstant && initializer.IsNullValue() && !g.HasSection() {
		return KindBSS
	}

	relocs := RelocNone
	if initializer != nil {
		relocs = initializer.Relocs
	}

	if g.IsConstant {
		switch relocs {
		case RelocNone:
			if g.Linkage.IsWeakForLinker() || g.HasSection() || initializer == nil {
				return KindReadOnly
			}
			if initializer.IsCString(dl) {
				return KindMergeableCString
			}
			if kind := MergeableConstKind(dl.TypeAllocSize(initializer.Type)); kind != KindMergeableConst {
				return kind
			}
			return KindReadOnly
		case RelocLocal:
			if rm == RelocStatic {
				return KindReadOnly
			}
			return KindReadOnlyWithRelLocal
		case RelocGlobal:
			if rm == RelocStatic {
				return KindReadOnly
			}
			return KindReadOnlyWithRel
		}
	}

	switch relocs {
	case RelocNone:
		return KindDataNoRel
	case RelocLocal:
		return KindDataRelLocal
	}
	return KindDataRel
}

// ConstantPoolKind classifies a machine constant-pool entry of size bytes.
// Unlike globals, pool entries of any size without relocations are
// mergeable; odd sizes fall back to the read-only section on selection.
func ConstantPoolKind(size uint64, relocs RelocKind) Kind {
	switch relocs {
	case RelocNone:
		return MergeableConstKind(size)
	case RelocLocal:
		return KindReadOnlyWithRelLocal
	}
	return KindReadOnlyWithRel
}
