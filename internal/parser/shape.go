package parser

import (
	"shapec/internal/ast"
	"shapec/internal/diag"
	"shapec/internal/source"
	"shapec/internal/token"
)

// parseShape parses the shape after ':': a type reference or a nested group
// `[record|union] [Name] { members }`.
func (p *Parser) parseShape() (*ast.Shape, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return &ast.Shape{Kind: ast.ShapeRef, Ref: tok.Text, Span: tok.Span}, true

	case token.KwRecord, token.KwUnion:
		kind := ast.KindRecord
		if tok.Kind == token.KwUnion {
			kind = ast.KindUnion
		}
		p.advance()
		name := ""
		if p.at(token.Ident) {
			name = p.advance().Text
		}
		return p.parseGroup(kind, name, tok.Span)

	case token.LBrace:
		return p.parseGroup(ast.KindUnspecified, "", tok.Span)

	default:
		p.err(diag.SynUnexpectedToken, "expected a shape, got \""+tok.Text+"\"")
		return nil, false
	}
}

// parseGroup parses `{ members }` with ',' separators. startSpan is the
// span of the introducing token (the kind keyword or the brace) so the
// shape covers the whole group.
func (p *Parser) parseGroup(kind ast.GroupKind, name string, startSpan source.Span) (*ast.Shape, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open a group")
	if !ok {
		return nil, false
	}

	members := p.parseMembers(token.Comma, token.RBrace, kind)

	if !p.at(token.RBrace) {
		p.report(diag.SynUnterminatedGroup, diag.SevError, p.diagSpan(),
			"group opened here is never closed",
			diag.Note{Span: open.Span, Msg: "opened here"})
		return nil, false
	}
	closeTok := p.advance()
	groupSpan := startSpan.Cover(closeTok.Span)

	if len(members) == 0 {
		p.report(diag.SynEmptyGroup, diag.SevError, groupSpan, "group has no members")
		return nil, false
	}
	p.checkMembers(members, kind)

	return &ast.Shape{
		Kind: ast.ShapeGroup,
		Group: &ast.Group{
			Kind:    kind,
			Name:    name,
			Members: members,
			Span:    groupSpan,
		},
		Span: groupSpan,
	}, true
}
