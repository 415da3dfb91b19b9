package diag

import (
	"fmt"
)

// Code identifies one diagnostic kind. Codes are banded by compiler phase:
// 1000 lexing, 2000 parsing, 3000 shape resolution, 4000 annotation
// classification, 5000 emission, 6000 I/O.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnterminatedGroup Code = 2002
	SynUnknownKind       Code = 2003
	SynDuplicateMember   Code = 2004
	SynEmptyGroup        Code = 2005
	SynDuplicateDefault  Code = 2006
	SynMissingKind       Code = 2007
	SynBadHeader         Code = 2008
	SynBadAnnotation     Code = 2009
	SynBadLiteral        Code = 2010

	// Shape resolution
	ResInfo                Code = 3000
	ResUnresolvedReference Code = 3001
	ResCyclicShape         Code = 3002
	ResNotAUnion           Code = 3003
	ResUnknownVariant      Code = 3004
	ResShadowedPrimitive   Code = 3005

	// Annotation classification
	ClsInfo               Code = 4000
	ClsPlacementAmbiguity Code = 4001

	// Emission
	EmitInfo          Code = 5000
	EmitNameCollision Code = 5001

	// I/O
	IOLoadFile Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnterminatedGroup:        "Unterminated group",
	SynUnknownKind:              "Unknown kind selector",
	SynDuplicateMember:          "Duplicate member name",
	SynEmptyGroup:               "Group has no members",
	SynDuplicateDefault:         "More than one default variant",
	SynMissingKind:              "Missing kind selector",
	SynBadHeader:                "Malformed header entry",
	SynBadAnnotation:            "Malformed annotation",
	SynBadLiteral:               "Malformed literal",
	ResInfo:                     "Resolution information",
	ResUnresolvedReference:      "Unresolved type reference",
	ResCyclicShape:              "Cyclic shape nesting",
	ResNotAUnion:                "Variant reference to a non-union type",
	ResUnknownVariant:           "Unknown variant",
	ResShadowedPrimitive:        "Group name shadows a primitive type",
	ClsInfo:                     "Classification information",
	ClsPlacementAmbiguity:       "Ambiguous annotation placement",
	EmitInfo:                    "Emission information",
	EmitNameCollision:           "Generated type name collision",
	IOLoadFile:                  "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CLS%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("EMT%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
