// Package resolve turns a parsed description into a resolved shape tree:
// group kinds are settled, references checked, variant selectors qualified,
// and default-constructor eligibility computed. Resolution is recursive and
// innermost-first, so nested groups are fully resolved before their parents.
package resolve

import (
	"shapec/internal/ast"
	"shapec/internal/source"
)

// ResolvedGroup is a group with its kind settled (never unspecified) and
// every member's shape resolved.
type ResolvedGroup struct {
	Kind    ast.GroupKind
	Name    string // declared name; empty for anonymous nested groups
	Members []ResolvedMember

	// HasDefault is true when any member carries a default, which warrants
	// a generated constructor that zero-fills the rest.
	HasDefault bool
	// DefaultVariant names the union variant marked `= default`.
	DefaultVariant string

	Span source.Span
}

type ResolvedMember struct {
	Name        string
	Annotations []ast.Annotation
	Shape       ResolvedShape
	Default     *ResolvedDefault
	Span        source.Span
}

// ShapeClass discriminates ResolvedShape.
type ShapeClass uint8

const (
	ShapeUnit      ShapeClass = iota // union variant with no payload
	ShapePrimitive                   // i32, f64, string, ...
	ShapeNamed                       // reference to a registered or opaque type
	ShapeNested                      // inline group, resolved recursively
)

type ResolvedShape struct {
	Class    ShapeClass
	TypeName string         // ShapePrimitive, ShapeNamed
	Nested   *ResolvedGroup // ShapeNested
	Span     source.Span
}

// ResolvedDefault is a member default with variant references qualified.
// For a variant of the member's own anonymous inline union, TypeName is
// empty and the emitter substitutes the generated type name.
type ResolvedDefault struct {
	Kind     ast.LitKind
	Text     string
	Bool     bool
	TypeName string
	Variant  string
	// PayloadName is the declared type name of the referenced variant's
	// payload group, when it has one. The emitter must reference that name
	// instead of deriving one from TypeName and Variant.
	PayloadName string
	Span        source.Span
}
