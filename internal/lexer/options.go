package lexer

import (
	"shapec/internal/diag"
	"shapec/internal/source"
)

// Options configures a Lexer. Reporter may be nil; lexing then continues
// without recording errors.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg)
	}
}
