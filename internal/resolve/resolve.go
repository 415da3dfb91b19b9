package resolve

import (
	"shapec/internal/ast"
	"shapec/internal/diag"
	"shapec/internal/source"
)

type Options struct {
	// Name is used when the description has no name= header.
	Name string
	// Known seeds the invocation-local registry with types declared
	// elsewhere. May be nil. Never mutated.
	Known    *Registry
	Reporter diag.Reporter
}

// Resolver is per-invocation resolution state.
type resolver struct {
	reg      *Registry
	reporter diag.Reporter
	inFlight map[string]bool // named groups currently being resolved
	errs     uint
}

// Resolve resolves one parsed description. Ok is false when any error was
// reported; no partial result is usable then.
func Resolve(root *ast.Root, opts Options) (*ResolvedGroup, bool) {
	reg := NewRegistry()
	if opts.Known != nil {
		reg = opts.Known.clone()
	}
	r := &resolver{
		reg:      reg,
		reporter: opts.Reporter,
		inFlight: make(map[string]bool),
	}

	name := root.Name
	if name == "" {
		name = opts.Name
	}
	g := r.resolveGroup(&ast.Group{
		Kind:    root.Kind,
		Name:    name,
		Members: root.Members,
		Span:    root.Span,
	})
	return g, r.errs == 0
}

func (r *resolver) err(code diag.Code, sp source.Span, msg string, notes ...diag.Note) {
	r.errs++
	if r.reporter != nil {
		diag.ReportError(r.reporter, code, sp, msg, notes...)
	}
}

// resolveGroup settles the group kind, resolves members innermost-first,
// registers named groups, and computes default-constructor eligibility.
func (r *resolver) resolveGroup(g *ast.Group) *ResolvedGroup {
	kind := g.Kind
	if kind == ast.KindUnspecified {
		kind = ast.KindRecord
	}

	if g.Name != "" {
		r.inFlight[g.Name] = true
		defer delete(r.inFlight, g.Name)
	}

	out := &ResolvedGroup{Kind: kind, Name: g.Name, Span: g.Span}
	for i := range g.Members {
		m := &g.Members[i]
		rm := ResolvedMember{
			Name:        m.Name,
			Annotations: m.Annotations,
			Span:        m.Span,
		}
		rm.Shape = r.resolveShape(m)
		rm.Default = r.resolveDefault(m, rm.Shape)

		if rm.Default != nil {
			out.HasDefault = true
			if rm.Default.Kind == ast.LitDefaultMarker {
				out.DefaultVariant = m.Name
			}
		}
		// a bare @default annotation asks for the zero value, which still
		// warrants a constructor
		for _, a := range m.Annotations {
			if a.Key == "default" && a.Placement == ast.PlaceAuto {
				out.HasDefault = true
			}
		}
		out.Members = append(out.Members, rm)
	}

	// Named groups become referencable by the rest of the description.
	if g.Name != "" {
		if IsPrimitive(g.Name) {
			diag.ReportWarning(r.reporter, diag.ResShadowedPrimitive, g.Span,
				"group name \""+g.Name+"\" shadows a primitive type; references to it resolve to the primitive")
		}
		if kind == ast.KindUnion {
			variants := make(map[string]string, len(out.Members))
			for i := range out.Members {
				variants[out.Members[i].Name] = declaredPayloadName(&out.Members[i])
			}
			r.reg.AddUnionPayloads(g.Name, variants)
		} else {
			r.reg.AddType(g.Name)
		}
	}
	return out
}

// declaredPayloadName returns the variant payload group's declared type
// name, "" when the variant has no payload or the group is anonymous.
func declaredPayloadName(m *ResolvedMember) string {
	if m.Shape.Class == ShapeNested && m.Shape.Nested.Name != "" {
		return m.Shape.Nested.Name
	}
	return ""
}

func (r *resolver) resolveShape(m *ast.Member) ResolvedShape {
	if m.Shape == nil {
		return ResolvedShape{Class: ShapeUnit, Span: m.NameSpan}
	}
	switch m.Shape.Kind {
	case ast.ShapeGroup:
		return ResolvedShape{
			Class:  ShapeNested,
			Nested: r.resolveGroup(m.Shape.Group),
			Span:   m.Shape.Span,
		}
	default: // ast.ShapeRef
		name := m.Shape.Ref
		if IsPrimitive(name) {
			return ResolvedShape{Class: ShapePrimitive, TypeName: name, Span: m.Shape.Span}
		}
		if r.inFlight[name] {
			r.err(diag.ResCyclicShape, m.Shape.Span,
				"shape \""+name+"\" refers to a group that is still being resolved")
			return ResolvedShape{Class: ShapeNamed, TypeName: name, Span: m.Shape.Span}
		}
		// Unknown names stay opaque; only variant selectors require the
		// referenced type to be registered.
		return ResolvedShape{Class: ShapeNamed, TypeName: name, Span: m.Shape.Span}
	}
}

func (r *resolver) resolveDefault(m *ast.Member, shape ResolvedShape) *ResolvedDefault {
	if m.Default == nil {
		return nil
	}
	d := m.Default
	switch d.Kind {
	case ast.LitVariantRef:
		return r.resolveVariantRef(d, shape)
	default:
		return &ResolvedDefault{
			Kind: d.Kind,
			Text: d.Text,
			Bool: d.Bool,
			Span: d.Span,
		}
	}
}

// resolveVariantRef checks a `T::V` or `::V` selector against the registry
// (or the member's own inline union) and returns it fully qualified.
func (r *resolver) resolveVariantRef(d *ast.Literal, shape ResolvedShape) *ResolvedDefault {
	typeName := d.TypeName
	if typeName == "" {
		// shorthand: the union comes from the member's declared shape
		switch shape.Class {
		case ShapeNamed:
			typeName = shape.TypeName
		case ShapePrimitive:
			r.err(diag.ResNotAUnion, d.Span,
				"cannot select variant \""+d.Variant+"\" from primitive shape \""+shape.TypeName+"\"")
			return nil
		case ShapeNested:
			g := shape.Nested
			if g.Kind != ast.KindUnion {
				r.err(diag.ResNotAUnion, d.Span,
					"cannot select a variant from a record group")
				return nil
			}
			vm := groupMember(g, d.Variant)
			if vm == nil {
				r.err(diag.ResUnknownVariant, d.Span,
					"union has no variant \""+d.Variant+"\"")
				return nil
			}
			// TypeName stays empty for an anonymous inline union; the
			// emitter substitutes its generated name.
			return &ResolvedDefault{
				Kind: ast.LitVariantRef, TypeName: g.Name, Variant: d.Variant,
				PayloadName: declaredPayloadName(vm), Span: d.Span,
			}
		default:
			r.err(diag.ResUnresolvedReference, d.Span,
				"member has no shape to infer the union for \"::"+d.Variant+"\"")
			return nil
		}
	}

	ti, known := r.reg.Lookup(typeName)
	if !known {
		r.err(diag.ResUnresolvedReference, d.Span,
			"unknown union \""+typeName+"\" in variant reference")
		return nil
	}
	if !ti.Union {
		r.err(diag.ResNotAUnion, d.Span,
			"type \""+typeName+"\" is not a union")
		return nil
	}
	payload, okVariant := ti.Variants[d.Variant]
	if !okVariant {
		r.err(diag.ResUnknownVariant, d.Span,
			"union \""+typeName+"\" has no variant \""+d.Variant+"\"")
		return nil
	}
	return &ResolvedDefault{
		Kind: ast.LitVariantRef, TypeName: typeName, Variant: d.Variant,
		PayloadName: payload, Span: d.Span,
	}
}

func groupMember(g *ResolvedGroup, name string) *ResolvedMember {
	for i := range g.Members {
		if g.Members[i].Name == name {
			return &g.Members[i]
		}
	}
	return nil
}
