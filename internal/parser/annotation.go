package parser

import (
	"strings"

	"shapec/internal/ast"
	"shapec/internal/diag"
	"shapec/internal/source"
	"shapec/internal/token"
)

// parseAnnotations parses zero or more leading `@key`, `@key(payload)`,
// `@outer.key(...)`, `@inner.key(...)` markers.
func (p *Parser) parseAnnotations() ([]ast.Annotation, bool) {
	var annos []ast.Annotation
	for p.at(token.At) {
		a, ok := p.parseAnnotation()
		if !ok {
			return nil, false
		}
		annos = append(annos, a)
	}
	return annos, true
}

func (p *Parser) parseAnnotation() (ast.Annotation, bool) {
	var a ast.Annotation
	at := p.advance() // '@'
	a.Span = at.Span

	key, ok := p.annotationIdent()
	if !ok {
		return a, false
	}

	if p.at(token.Dot) {
		switch key.Text {
		case "outer":
			a.Placement = ast.PlaceOuter
		case "inner":
			a.Placement = ast.PlaceInner
		default:
			p.report(diag.SynBadAnnotation, diag.SevError, key.Span,
				"unknown placement qualifier \""+key.Text+"\", expected outer or inner")
			return a, false
		}
		p.advance() // '.'
		key, ok = p.annotationIdent()
		if !ok {
			return a, false
		}
	}
	a.Key = key.Text
	a.Span = a.Span.Cover(key.Span)

	if p.at(token.LParen) {
		payload, span, ok := p.parsePayload()
		if !ok {
			return a, false
		}
		a.Payload = payload
		a.HasPayload = true
		a.Span = a.Span.Cover(span)
	}
	return a, true
}

// annotationIdent accepts an identifier or any keyword as an annotation
// name; `@default` must lex as a keyword yet still name an annotation.
func (p *Parser) annotationIdent() (token.Token, bool) {
	tok := p.lx.Peek()
	if tok.Kind == token.Ident || tok.IsKeyword() {
		return p.advance(), true
	}
	p.err(diag.SynBadAnnotation, "expected an annotation key after '@'")
	return token.Token{}, false
}

// parsePayload captures the raw source between balanced parentheses. The
// payload is re-emitted verbatim, so it is kept as text rather than tokens.
func (p *Parser) parsePayload() (payload string, span source.Span, ok bool) {
	open := p.advance() // '('
	depth := 1
	end := open.Span
	for depth > 0 {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			p.report(diag.SynBadAnnotation, diag.SevError, p.diagSpan(),
				"annotation payload is never closed",
				diag.Note{Span: open.Span, Msg: "opened here"})
			return "", open.Span, false
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		}
		end = tok.Span
		p.advance()
	}
	raw := string(p.file.Content[open.Span.End:end.Start])
	return strings.TrimSpace(raw), open.Span.Cover(end), true
}
