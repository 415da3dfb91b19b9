// Package ast holds the syntax tree produced by the parser for one
// structure description. Nodes are plain values; the tree for a single
// description is small and is consumed in one pass by resolve.
package ast

import (
	"shapec/internal/source"
)

// GroupKind selects record or union semantics for a group of members.
type GroupKind uint8

const (
	KindUnspecified GroupKind = iota
	KindRecord
	KindUnion
)

func (k GroupKind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindUnion:
		return "union"
	default:
		return "unspecified"
	}
}

// Root is a parsed description: the header entries plus the top-level
// member list.
type Root struct {
	Kind     GroupKind // from the required kind= header
	Name     string    // from the optional name= header
	KindSpan source.Span
	NameSpan source.Span
	Members  []Member
	Span     source.Span
}

// Member is one named member of a group. Shape is nil for unit variants
// (union members declared without a shape).
type Member struct {
	Name        string
	NameSpan    source.Span
	Annotations []Annotation
	Shape       *Shape
	Default     *Literal
	Span        source.Span
}

// Placement says where an annotation was asked to land.
type Placement uint8

const (
	PlaceAuto  Placement = iota // no qualifier, classifier decides
	PlaceOuter                  // @outer.key
	PlaceInner                  // @inner.key
)

func (p Placement) String() string {
	switch p {
	case PlaceOuter:
		return "outer"
	case PlaceInner:
		return "inner"
	default:
		return "auto"
	}
}

// Annotation is one @key or @key(payload) marker attached to a member.
// Payload is the raw source text between the parentheses, trimmed.
type Annotation struct {
	Key        string
	Placement  Placement
	Payload    string
	HasPayload bool
	Span       source.Span
}

// ShapeKind discriminates the Shape union.
type ShapeKind uint8

const (
	ShapeRef   ShapeKind = iota // named reference: i32, string, Color
	ShapeGroup                  // inline group: { ... } or record Name { ... }
)

// Shape is a member's declared shape.
type Shape struct {
	Kind  ShapeKind
	Ref   string // ShapeRef
	Group *Group // ShapeGroup
	Span  source.Span
}

// Group is an inline nested group. Kind is KindUnspecified when the
// source omitted the record/union keyword; Name is empty when the group
// is anonymous.
type Group struct {
	Kind    GroupKind
	Name    string
	Members []Member
	Span    source.Span
}

// LitKind discriminates default values.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBool
	LitVariantRef    // Color::Red or shorthand ::Red
	LitDefaultMarker // the bare `default` keyword on a union variant
)

// Literal is a member default. Text keeps the raw source form for
// int/float/string so emission reproduces the input byte for byte.
type Literal struct {
	Kind     LitKind
	Text     string
	Bool     bool
	TypeName string // LitVariantRef; empty for the ::Variant shorthand
	Variant  string // LitVariantRef
	Span     source.Span
}
