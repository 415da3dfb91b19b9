// Package diagfmt renders diagnostics for humans: a rustc-style block with
// the offending line and a caret underline. Machine-stable output lives in
// diag.FormatGolden.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"shapec/internal/diag"
	"shapec/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	gutter    = color.New(color.FgBlue, color.Bold)
)

type Options struct {
	Color bool
	// Notes renders secondary spans under the primary block.
	Notes bool
}

func severityStyle(sev diag.Severity) (*color.Color, string) {
	switch sev {
	case diag.SevError:
		return errColor, "error"
	case diag.SevWarning:
		return warnColor, "warning"
	default:
		return infoColor, "info"
	}
}

func (o Options) paint(c *color.Color, s string) string {
	if !o.Color {
		return s
	}
	return c.Sprint(s)
}

// WriteDiagnostic renders one diagnostic block.
func WriteDiagnostic(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts Options) {
	style, label := severityStyle(d.Severity)
	fmt.Fprintf(w, "%s: %s\n",
		opts.paint(style, label+"["+d.Code.ID()+"]"), d.Message)

	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	loc := fmt.Sprintf("%s:%d:%d", file.RelPath(fs.BaseDir()), start.Line, start.Col)
	fmt.Fprintf(w, "  %s %s\n", opts.paint(gutter, "-->"), loc)

	writeSnippet(w, fs, file, d.Primary, start, opts, style)

	if opts.Notes {
		for _, note := range d.Notes {
			nfile := fs.Get(note.Span.File)
			nstart, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  %s note: %s (%s:%d:%d)\n",
				opts.paint(gutter, "="), note.Msg,
				nfile.RelPath(fs.BaseDir()), nstart.Line, nstart.Col)
		}
	}
}

// writeSnippet prints the source line with a caret underline aligned by
// display width, so wide runes in descriptions do not skew the carets.
func writeSnippet(w io.Writer, fs *source.FileSet, file *source.File, sp source.Span, start source.LineCol, opts Options, style *color.Color) {
	line := file.GetLine(start.Line)
	if line == "" && sp.Empty() {
		return
	}
	lineNo := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(lineNo))

	fmt.Fprintf(w, "%s %s\n", pad, opts.paint(gutter, "|"))
	fmt.Fprintf(w, "%s %s %s\n", opts.paint(gutter, lineNo), opts.paint(gutter, "|"), line)

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	offset := runewidth.StringWidth(line[:col])

	width := int(sp.Len())
	if rest := len(line) - col; width > rest {
		width = rest
	}
	if width > 0 {
		width = runewidth.StringWidth(line[col : col+width])
	}
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(w, "%s %s %s%s\n", pad, opts.paint(gutter, "|"),
		strings.Repeat(" ", offset), opts.paint(style, strings.Repeat("^", width)))
}

// WriteBag renders every diagnostic in a deterministic order and returns
// the error count.
func WriteBag(w io.Writer, fs *source.FileSet, bag *diag.Bag, opts Options) int {
	bag.Sort()
	errs := 0
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		WriteDiagnostic(w, fs, d, opts)
		if d.Severity >= diag.SevError {
			errs++
		}
	}
	return errs
}
