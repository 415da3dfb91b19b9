package token

import (
	"shapec/internal/source"
)

// Token represents a single description token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case At, Colon, ColonColon, Semicolon, Comma, Assign, Dot, Minus,
		LBrace, RBrace, LParen, RParen:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwRecord, KwUnion, KwDefault, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
