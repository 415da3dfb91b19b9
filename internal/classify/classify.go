// Package classify splits a member's annotations between the outer field
// and the generated inner type.
package classify

import (
	"shapec/internal/ast"
	"shapec/internal/diag"
)

// Config controls classification. AlwaysDuplicate keys land on both sides
// without an explicit qualifier. The set is read-only after startup.
type Config struct {
	AlwaysDuplicate map[string]bool
}

// DefaultConfig returns the stock allow-list.
func DefaultConfig() Config {
	return Config{AlwaysDuplicate: map[string]bool{
		"doc":        true,
		"cfg":        true,
		"deprecated": true,
	}}
}

// Control keys have a fixed side and never need a qualifier: norender
// suppresses the inner type's rendering, default marks the member for a
// zero-value default on the outer field.
var controlInner = map[string]bool{"norender": true}
var controlOuter = map[string]bool{"default": true}

// Classify places every annotation. Keys with an explicit outer/inner
// qualifier go where they say; allow-listed keys go to both sides; control
// keys go to their fixed side; anything else is ambiguous and fatal.
func Classify(annos []ast.Annotation, cfg Config, reporter diag.Reporter) (outer, inner []ast.Annotation, ok bool) {
	ok = true
	for _, a := range annos {
		switch a.Placement {
		case ast.PlaceOuter:
			outer = append(outer, a)
		case ast.PlaceInner:
			inner = append(inner, a)
		default:
			switch {
			case cfg.AlwaysDuplicate[a.Key]:
				outer = append(outer, a)
				inner = append(inner, a)
			case controlInner[a.Key]:
				inner = append(inner, a)
			case controlOuter[a.Key]:
				outer = append(outer, a)
			default:
				diag.ReportError(reporter, diag.ClsPlacementAmbiguity, a.Span,
					"annotation @"+a.Key+" needs an explicit outer. or inner. qualifier")
				ok = false
			}
		}
	}
	return outer, inner, ok
}
