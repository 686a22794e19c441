package objfile

import (
	"debug/elf"
	"sort"
	"sync"
)

// SectionHeader is the part of an ELF section header this layer decides.
// Direct object emitters copy it into the real header; name, address and
// offset are assigned by the writer.
type SectionHeader struct {
	Type      uint32
	Flags     uint64
	Size      uint64
	Addralign uint64
	Entsize   uint64
}

// Section is a canonical section handle. Sections are created and owned
// by a Registry; everything else holds the pointer only.
type Section struct {
	Name    string
	Type    elf.SectionType
	Flags   Flags
	EntSize uint64

	mu        sync.Mutex
	fragments map[string]*SectionFragment
	size      uint64
	p2align   uint8
}

func newSection(name string, typ elf.SectionType, flags Flags, entsize uint64) *Section {
	return &Section{
		Name:      name,
		Type:      typ,
		Flags:     flags,
		EntSize:   entsize,
		fragments: make(map[string]*SectionFragment),
	}
}

func (s *Section) IsMergeable() bool { return s.Flags&FlagMergeable != 0 }

// mergeFlags adds flags requested by another user of the section. The
// section type, and with it FlagBSS, is fixed by the first user.
func (s *Section) mergeFlags(flags Flags) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.Flags | flags&^FlagBSS
	if merged == s.Flags {
		return false
	}
	s.Flags = merged
	return true
}

// Insert records contents placed in a mergeable section. Identical
// contents share one fragment whose alignment is the largest requested.
func (s *Section) Insert(key string, p2align uint8) *SectionFragment {
	s.mu.Lock()
	defer s.mu.Unlock()

	frag, ok := s.fragments[key]
	if !ok {
		frag = NewSectionFragment(s)
		s.fragments[key] = frag
	}

	if frag.P2Align < p2align {
		frag.P2Align = p2align
	}

	return frag
}

func (s *Section) NumFragments() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fragments)
}

// AssignOffsets lays the fragments out in a deterministic order and
// updates the section size and alignment.
func (s *Section) AssignOffsets() {
	s.mu.Lock()
	defer s.mu.Unlock()

	type entry struct {
		Key string
		Val *SectionFragment
	}

	fragments := make([]entry, 0, len(s.fragments))
	for key, frag := range s.fragments {
		fragments = append(fragments, entry{Key: key, Val: frag})
	}

	sort.SliceStable(fragments, func(i, j int) bool {
		x := fragments[i]
		y := fragments[j]
		if x.Val.P2Align != y.Val.P2Align {
			return x.Val.P2Align < y.Val.P2Align
		}
		if len(x.Key) != len(y.Key) {
			return len(x.Key) < len(y.Key)
		}

		return x.Key < y.Key
	})

	offset := uint64(0)
	p2align := uint8(0)
	for _, frag := range fragments {
		offset = AlignTo(offset, 1<<frag.Val.P2Align)
		frag.Val.Offset = uint32(offset)
		offset += uint64(len(frag.Key))
		if p2align < frag.Val.P2Align {
			p2align = frag.Val.P2Align
		}
	}

	s.size = AlignTo(offset, 1<<p2align)
	s.p2align = p2align
}

func AlignTo(val, align uint64) uint64 {
	if align == 0 {
		return val
	}
	return (val + align - 1) &^ (align - 1)
}
