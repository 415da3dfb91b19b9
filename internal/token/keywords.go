package token

var keywords = map[string]Kind{
	"record":  KwRecord,
	"union":   KwUnion,
	"default": KwDefault,
	"true":    KwTrue,
	"false":   KwFalse,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
