package parser

import (
	"shapec/internal/ast"
	"shapec/internal/diag"
	"shapec/internal/token"
)

// parseMember parses `annotations* name [: shape] [= value]`. The enclosing
// group kind gates the union-only forms: unit members (no shape) and the
// `= default` marker.
func (p *Parser) parseMember(enclosing ast.GroupKind) (ast.Member, bool) {
	var m ast.Member

	annos, ok := p.parseAnnotations()
	if !ok {
		return m, false
	}
	m.Annotations = annos

	nameTok, ok := p.expect(token.Ident, diag.SynUnexpectedToken,
		"expected member name, got \""+p.lx.Peek().Text+"\"")
	if !ok {
		return m, false
	}
	m.Name = nameTok.Text
	m.NameSpan = nameTok.Span
	m.Span = nameTok.Span

	if p.at(token.Colon) {
		p.advance()
		shape, ok := p.parseShape()
		if !ok {
			return m, false
		}
		m.Shape = shape
		m.Span = m.Span.Cover(shape.Span)
	} else if enclosing != ast.KindUnion {
		p.err(diag.SynUnexpectedToken,
			"expected ':' after member name \""+m.Name+"\"")
		return m, false
	}

	if p.at(token.Assign) {
		p.advance()
		lit, ok := p.parseDefault()
		if !ok {
			return m, false
		}
		if lit.Kind == ast.LitDefaultMarker && enclosing != ast.KindUnion {
			p.report(diag.SynBadLiteral, diag.SevError, lit.Span,
				"the default marker is only valid on union variants")
			return m, false
		}
		m.Default = lit
		m.Span = m.Span.Cover(lit.Span)
	}

	if len(m.Annotations) > 0 {
		m.Span = m.Annotations[0].Span.Cover(m.Span)
	}
	return m, true
}

// parseDefault parses the value after '='.
func (p *Parser) parseDefault() (*ast.Literal, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return &ast.Literal{Kind: ast.LitInt, Text: tok.Text, Span: tok.Span}, true
	case token.FloatLit:
		p.advance()
		return &ast.Literal{Kind: ast.LitFloat, Text: tok.Text, Span: tok.Span}, true
	case token.StringLit:
		p.advance()
		return &ast.Literal{Kind: ast.LitString, Text: tok.Text, Span: tok.Span}, true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.Literal{Kind: ast.LitBool, Bool: tok.Kind == token.KwTrue, Text: tok.Text, Span: tok.Span}, true
	case token.KwDefault:
		p.advance()
		return &ast.Literal{Kind: ast.LitDefaultMarker, Text: tok.Text, Span: tok.Span}, true

	case token.Minus:
		minus := p.advance()
		num := p.lx.Peek()
		if num.Kind != token.IntLit && num.Kind != token.FloatLit {
			p.err(diag.SynBadLiteral, "expected a number after '-'")
			return nil, false
		}
		p.advance()
		kind := ast.LitInt
		if num.Kind == token.FloatLit {
			kind = ast.LitFloat
		}
		sp := minus.Span.Cover(num.Span)
		return &ast.Literal{Kind: kind, Text: "-" + num.Text, Span: sp}, true

	case token.ColonColon:
		// shorthand ::Variant, the union is inferred from the member's shape
		cc := p.advance()
		v, ok := p.expect(token.Ident, diag.SynBadLiteral, "expected a variant name after '::'")
		if !ok {
			return nil, false
		}
		return &ast.Literal{Kind: ast.LitVariantRef, Variant: v.Text, Span: cc.Span.Cover(v.Span)}, true

	case token.Ident:
		// Type::Variant
		typ := p.advance()
		if _, ok := p.expect(token.ColonColon, diag.SynBadLiteral,
			"expected '::' after type name \""+typ.Text+"\" in a variant reference"); !ok {
			return nil, false
		}
		v, ok := p.expect(token.Ident, diag.SynBadLiteral, "expected a variant name after '::'")
		if !ok {
			return nil, false
		}
		return &ast.Literal{Kind: ast.LitVariantRef, TypeName: typ.Text, Variant: v.Text, Span: typ.Span.Cover(v.Span)}, true

	default:
		p.err(diag.SynBadLiteral, "expected a default value, got \""+tok.Text+"\"")
		return nil, false
	}
}
