package objfile

import (
	"debug/elf"
	"sync"

	"github.com/go-logr/logr"
)

type sectionKey struct {
	name    string
	typ     elf.SectionType
	flags   Flags
	entsize uint64
}

// Registry memoizes sections for one compilation. A lookup with a key
// seen before returns the same *Section; creation is atomic per key.
type Registry struct {
	log logr.Logger

	mu       sync.Mutex
	sections map[sectionKey]*Section
	byName   map[string]*Section
	order    []*Section
}

func NewRegistry(log logr.Logger) *Registry {
	return &Registry{
		log:      log.WithName("registry"),
		sections: make(map[sectionKey]*Section),
		byName:   make(map[string]*Section),
	}
}

// GetSection returns the section for (name, type, flags, entsize),
// creating it on first use.
func (r *Registry) GetSection(
	name string, typ elf.SectionType, flags Flags, entsize uint64) *Section {
	key := sectionKey{name: name, typ: typ, flags: flags, entsize: entsize}

	r.mu.Lock()
	defer r.mu.Unlock()

	if sec, ok := r.sections[key]; ok {
		return sec
	}
	return r.create(key)
}

func (r *Registry) create(key sectionKey) *Section {
	sec := newSection(key.name, key.typ, key.flags, key.entsize)
	r.sections[key] = sec
	if _, ok := r.byName[key.name]; !ok {
		r.byName[key.name] = sec
	}
	r.order = append(r.order, sec)

	r.log.V(1).Info("created section",
		"name", key.name, "type", key.typ.String(), "flags", key.flags.String(), "entsize", key.entsize)
	return sec
}

// GetSectionByName resolves a section the author named explicitly. The
// first section created under name is returned whatever its key, with
// flags merged into it, so every user of the name shares one handle.
func (r *Registry) GetSectionByName(name string, flags Flags) *Section {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sec, ok := r.byName[name]; ok {
		if sec.mergeFlags(flags) {
			r.log.V(1).Info("merged section flags", "name", name, "flags", flags.String())
		}
		return sec
	}
	return r.create(sectionKey{name: name, typ: flags.ELFType(), flags: flags})
}

// GetNamedSection derives the ELF type from the flags.
func (r *Registry) GetNamedSection(name string, flags Flags, entsize uint64) *Section {
	return r.GetSection(name, flags.ELFType(), flags, entsize)
}

// Lookup finds an existing section without creating one.
func (r *Registry) Lookup(name string, typ elf.SectionType, flags Flags, entsize uint64) *Section {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sections[sectionKey{name: name, typ: typ, flags: flags, entsize: entsize}]
}

// Sections returns every section in creation order.
func (r *Registry) Sections() []*Section {
	r.mu.Lock()
	defer r.mu.Unlock()

	ret := make([]*Section, len(r.order))
	copy(ret, r.order)
	return ret
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}
