package parser

import (
	"shapec/internal/ast"
	"shapec/internal/diag"
)

// checkMembers enforces the per-group structural rules: member names are
// unique, and a union carries at most one `= default` variant.
func (p *Parser) checkMembers(members []ast.Member, kind ast.GroupKind) {
	seen := make(map[string]ast.Member, len(members))
	var defaultSeen *ast.Member
	for i := range members {
		m := &members[i]
		if first, dup := seen[m.Name]; dup {
			p.report(diag.SynDuplicateMember, diag.SevError, m.NameSpan,
				"duplicate member name \""+m.Name+"\"",
				diag.Note{Span: first.NameSpan, Msg: "first declared here"})
		} else {
			seen[m.Name] = *m
		}

		if kind == ast.KindUnion && m.Default != nil && m.Default.Kind == ast.LitDefaultMarker {
			if defaultSeen != nil {
				p.report(diag.SynDuplicateDefault, diag.SevError, m.Default.Span,
					"union already has a default variant",
					diag.Note{Span: defaultSeen.Default.Span, Msg: "first marked here"})
			} else {
				defaultSeen = m
			}
		}
	}
}
