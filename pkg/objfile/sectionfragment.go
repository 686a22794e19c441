package objfile

import "math"

// SectionFragment is one distinct entity inside a mergeable pool.
type SectionFragment struct {
	Section *Section
	Offset  uint32
	P2Align uint8
}

func NewSectionFragment(s *Section) *SectionFragment {
	return &SectionFragment{
		Section: s,
		Offset:  math.MaxUint32,
	}
}

// IsPlaced reports whether AssignOffsets has run since the fragment was
// created.
func (f *SectionFragment) IsPlaced() bool {
	return f.Offset != math.MaxUint32
}
