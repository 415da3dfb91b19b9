package parser

import (
	"shapec/internal/ast"
	"shapec/internal/diag"
	"shapec/internal/token"
)

// parseHeaders consumes the leading `key=value;` entries. Only `kind` and
// `name` are header keys; the first identifier that is neither ends the
// header section and starts the member list.
func (p *Parser) parseHeaders(root *ast.Root) {
	for p.at(token.Ident) {
		key := p.lx.Peek()
		if key.Text != "kind" && key.Text != "name" {
			return
		}
		p.advance()
		if _, ok := p.expect(token.Assign, diag.SynBadHeader, "expected '=' after header key \""+key.Text+"\""); !ok {
			p.resyncUntil(token.Semicolon)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}

		switch key.Text {
		case "kind":
			p.parseKindValue(root)
		case "name":
			tok, ok := p.expect(token.Ident, diag.SynBadHeader, "expected a type name after name=")
			if ok {
				root.Name = tok.Text
				root.NameSpan = tok.Span
			}
		}

		p.expect(token.Semicolon, diag.SynBadHeader, "expected ';' after header entry")
	}
}

func (p *Parser) parseKindValue(root *ast.Root) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwRecord:
		root.Kind = ast.KindRecord
	case token.KwUnion:
		root.Kind = ast.KindUnion
	default:
		p.report(diag.SynUnknownKind, diag.SevError, tok.Span,
			"unknown kind \""+tok.Text+"\", expected record or union")
		if tok.Kind == token.Ident {
			p.advance()
		}
		return
	}
	root.KindSpan = tok.Span
	p.advance()
}
