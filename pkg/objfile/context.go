package objfile

import "github.com/go-logr/logr"

// Context owns everything section selection needs for one compilation.
// Nothing here is process-wide; two contexts never share sections.
// Placement always uses ELF section names; under FormatMachO only the
// profile differs, and Mach-O segment/section naming is not provided.
type Context struct {
	Config     TargetConfig
	Log        logr.Logger
	Registry   *Registry
	DataLayout DataLayout
	Profile    Profile
	ELF        *ELF
}

// NewContext validates cfg and seeds the registry. A nil dl selects the
// ARM layout for cfg.ABI.
func NewContext(cfg TargetConfig, dl DataLayout, log logr.Logger) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if dl == nil {
		dl = NewARMDataLayout(cfg.ABI)
	}

	reg := NewRegistry(log)
	ctx := &Context{
		Config:     cfg,
		Log:        log,
		Registry:   reg,
		DataLayout: dl,
		ELF:        NewELF(reg, dl, cfg.CStringPrefix),
	}
	ctx.Profile = NewProfile(cfg, reg, log)
	return ctx, nil
}

// PlaceGlobal selects the section for g under the context's relocation model.
func (c *Context) PlaceGlobal(g *Global) Placement {
	p := c.ELF.SectionForGlobal(g, c.Config.RelocModel)
	c.Log.V(2).Info("placed global", "name", g.Name, "kind", p.Kind.String(), "section", p.Section.Name)
	return p
}

// Finalize lays out the fragments of every merge pool. Call it after the
// last PlaceGlobal; fragment offsets and pool sizes are valid afterwards.
func (c *Context) Finalize() {
	for _, sec := range c.Registry.Sections() {
		if !sec.IsMergeable() {
			continue
		}
		sec.AssignOffsets()
		c.Log.V(1).Info("laid out pool", "section", sec.Name, "fragments", sec.NumFragments())
	}
}

// Directive renders the .section directive for sec with the target's
// comment marker.
func (c *Context) Directive(sec *Section) string {
	return SectionDirective(sec, c.Config.CommentString)
}
