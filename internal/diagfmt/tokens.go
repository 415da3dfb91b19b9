package diagfmt

import (
	"fmt"
	"io"

	"shapec/internal/source"
	"shapec/internal/token"
)

// WriteTokens dumps a token stream, one per line, for the tokenize command.
func WriteTokens(w io.Writer, fs *source.FileSet, toks []token.Token, withTrivia bool) {
	for _, tok := range toks {
		start, _ := fs.Resolve(tok.Span)
		if withTrivia {
			for _, tr := range tok.Leading {
				trStart, _ := fs.Resolve(tr.Span)
				fmt.Fprintf(w, "%4d:%-3d trivia %v %q\n", trStart.Line, trStart.Col, tr.Kind, tr.Text)
			}
		}
		fmt.Fprintf(w, "%4d:%-3d %v %q\n", start.Line, start.Col, tok.Kind, tok.Text)
	}
}
