package driver

import (
	"shapec/internal/ast"
	"shapec/internal/diag"
	"shapec/internal/lexer"
	"shapec/internal/parser"
	"shapec/internal/source"
	"shapec/internal/token"
)

// TokenizeResult carries the token stream of one file plus lexer diagnostics.
type TokenizeResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file to EOF. Lexing never aborts: bad input becomes
// Error tokens plus diagnostics, so the stream is always complete.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 64
	}
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(fileSet.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return &TokenizeResult{FileSet: fileSet, FileID: id, Tokens: toks, Bag: bag}, nil
}

// ParseResult carries the syntax tree of one file plus parse diagnostics.
// Root is nil when parsing failed.
type ParseResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Root    *ast.Root
	Bag     *diag.Bag
}

// ParseFile parses one file without resolving or emitting.
func ParseFile(path string, maxDiagnostics int) (*ParseResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 64
	}
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(maxDiagnostics)
	res := parser.Parse(fileSet.Get(id), parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: uint(maxDiagnostics), // #nosec G115 -- validated above
	})
	out := &ParseResult{FileSet: fileSet, FileID: id, Bag: bag}
	if res.Ok {
		out.Root = res.Root
	}
	return out, nil
}
