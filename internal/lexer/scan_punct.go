package lexer

import (
	"fmt"

	"shapec/internal/diag"
	"shapec/internal/token"
)

// scanPunct scans single- and double-byte punctuation.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == ':' && b1 == ':' {
		lx.cursor.Bump()
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.ColonColon, Span: sp, Text: "::"}
	}

	b := lx.cursor.Bump()
	kind := token.Invalid
	switch b {
	case '@':
		kind = token.At
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '=':
		kind = token.Assign
	case '.':
		kind = token.Dot
	case '-':
		kind = token.Minus
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if kind == token.Invalid {
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", b))
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
