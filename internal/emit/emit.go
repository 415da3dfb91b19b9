// Package emit turns a resolved shape tree into Go type definitions,
// bottom-up: nested types are appended before the types that use them, so
// the output slice can be rendered in order.
package emit

import (
	"shapec/internal/ast"
	"shapec/internal/classify"
	"shapec/internal/diag"
	"shapec/internal/resolve"
	"shapec/internal/source"
)

type Options struct {
	Reporter diag.Reporter
	Classify classify.Config
	// BlockPerNesting switches String() renderings from single-line to
	// indented sub-blocks per nesting level.
	BlockPerNesting bool
}

// EmittedType is one generated type with its methods and constructors.
type EmittedType struct {
	Name    string
	Union   bool
	Source  string
	Imports []string
}

type emitter struct {
	opts Options
	seen map[string]source.Span
	out  []EmittedType
	errs uint
}

// Emit compiles one resolved description. The outer annotations attach to
// the top generated type. Ok is false when any error was reported.
func Emit(g *resolve.ResolvedGroup, outer []ast.Annotation, opts Options) ([]EmittedType, bool) {
	if opts.Classify.AlwaysDuplicate == nil {
		opts.Classify = classify.DefaultConfig()
	}
	e := &emitter{opts: opts, seen: make(map[string]source.Span)}

	name := g.Name
	if name == "" {
		name = "Anonymous"
	}
	e.emitGroup(g, name, outer)
	return e.out, e.errs == 0
}

func (e *emitter) emitGroup(g *resolve.ResolvedGroup, name string, annos []ast.Annotation) {
	if g.Kind == ast.KindUnion {
		e.emitUnion(g, name, annos)
		return
	}
	e.emitRecord(g, name, annos)
}

func (e *emitter) err(code diag.Code, sp source.Span, msg string, notes ...diag.Note) {
	e.errs++
	if e.opts.Reporter != nil {
		diag.ReportError(e.opts.Reporter, code, sp, msg, notes...)
	}
}

func (e *emitter) classifyMember(annos []ast.Annotation) (outer, inner []ast.Annotation) {
	o, i, ok := classify.Classify(annos, e.opts.Classify, e.opts.Reporter)
	if !ok {
		e.errs++
	}
	return o, i
}

// register records a generated name; a second type with the same name is a
// fatal collision.
func (e *emitter) register(name string, sp source.Span) {
	if first, dup := e.seen[name]; dup {
		e.err(diag.EmitNameCollision, sp,
			"generated type name \""+name+"\" collides with an earlier type",
			diag.Note{Span: first, Msg: "first generated here"})
		return
	}
	e.seen[name] = sp
}

// fieldInfo is one rendered struct field.
type fieldInfo struct {
	name     string // exported Go name; unused when embedded
	typ      string
	doc      string
	tag      string
	embedded bool
	member   *resolve.ResolvedMember
}

// accessor is the selector used in String() bodies.
func (f fieldInfo) accessor() string {
	if f.embedded {
		return f.typ
	}
	return f.name
}

// buildFields classifies each member's annotations and settles field types,
// emitting nested groups as their own types first.
func (e *emitter) buildFields(g *resolve.ResolvedGroup, parent string) []fieldInfo {
	fields := make([]fieldInfo, 0, len(g.Members))
	for i := range g.Members {
		m := &g.Members[i]
		mOuter, mInner := e.classifyMember(m.Annotations)
		fields = append(fields, fieldInfo{
			name:   ExportedName(m.Name),
			typ:    e.fieldType(m, parent, mInner),
			doc:    docComment(mOuter, "\t"),
			tag:    structTag(mOuter),
			member: m,
		})
	}
	return fields
}

// fieldType names the Go type of a member, generating the type for a
// nested group. Anonymous groups take the name Parent+Member.
func (e *emitter) fieldType(m *resolve.ResolvedMember, parent string, inner []ast.Annotation) string {
	switch m.Shape.Class {
	case resolve.ShapePrimitive:
		return goPrimitive[m.Shape.TypeName]
	case resolve.ShapeNamed:
		return m.Shape.TypeName
	case resolve.ShapeNested:
		child := m.Shape.Nested.Name
		if child == "" {
			child = parent + ExportedName(m.Name)
		}
		e.emitGroup(m.Shape.Nested, child, inner)
		return child
	default:
		return "struct{}"
	}
}
