package token

// Kind represents the category of a description token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the description input.
	EOF

	// Ident represents an identifier (member names, type names, annotation keys).
	Ident

	// KwRecord represents the 'record' group kind keyword.
	KwRecord // record
	// KwUnion represents the 'union' group kind keyword.
	KwUnion // union
	// KwDefault represents the 'default' variant marker keyword.
	KwDefault // default
	// KwTrue represents the 'true' literal keyword.
	KwTrue // true
	// KwFalse represents the 'false' literal keyword.
	KwFalse // false

	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// StringLit represents a quoted string literal.
	StringLit

	// At represents '@' introducing an annotation.
	At // @
	// Colon represents ':' between a member name and its shape.
	Colon // :
	// ColonColon represents '::' in variant references.
	ColonColon // ::
	// Semicolon represents ';' separating top-level members.
	Semicolon // ;
	// Comma represents ',' separating group members.
	Comma // ,
	// Assign represents '=' before defaults and header values.
	Assign // =
	// Dot represents '.' in placement-qualified annotation keys.
	Dot // .
	// Minus represents '-' in negative numeric literals.
	Minus // -
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// LParen represents '(' opening an annotation payload.
	LParen // (
	// RParen represents ')' closing an annotation payload.
	RParen // )
)

var kindNames = map[Kind]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	KwRecord:   "record",
	KwUnion:    "union",
	KwDefault:  "default",
	KwTrue:     "true",
	KwFalse:    "false",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	StringLit:  "StringLit",
	At:         "@",
	Colon:      ":",
	ColonColon: "::",
	Semicolon:  ";",
	Comma:      ",",
	Assign:     "=",
	Dot:        ".",
	Minus:      "-",
	LBrace:     "{",
	RBrace:     "}",
	LParen:     "(",
	RParen:     ")",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}
