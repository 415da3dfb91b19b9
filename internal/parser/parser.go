// Package parser builds the ast for one structure description.
package parser

import (
	"shapec/internal/ast"
	"shapec/internal/diag"
	"shapec/internal/lexer"
	"shapec/internal/source"
	"shapec/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Root *ast.Root
	Ok   bool
}

// Parser is per-file parse state.
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	lastSpan source.Span
}

// Parse parses one description file. Ok is false when any error was
// reported; callers must not emit from a Root whose parse failed.
func Parse(file *source.File, opts Options) Result {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		lx:   lx,
		file: file,
		opts: opts,
	}

	root := p.parseRoot()
	return Result{Root: root, Ok: p.opts.CurrentErrors == 0}
}

func (p *Parser) parseRoot() *ast.Root {
	startSpan := p.lx.Peek().Span
	root := &ast.Root{}

	p.parseHeaders(root)
	if root.Kind == ast.KindUnspecified {
		p.report(diag.SynMissingKind, diag.SevError, startSpan,
			"description must start with a kind=record or kind=union header")
	}

	root.Members = p.parseMembers(token.Semicolon, token.EOF, root.Kind)
	if len(root.Members) == 0 {
		p.report(diag.SynEmptyGroup, diag.SevError,
			startSpan.Cover(p.lx.Peek().Span), "description has no members")
	}

	p.checkMembers(root.Members, root.Kind)
	root.Span = startSpan.Cover(p.lx.Peek().Span)
	return root
}

// parseMembers parses a separator-delimited member list until close.
// Top level uses ';'/EOF, nested groups use ','/'}'.
func (p *Parser) parseMembers(sep, close token.Kind, kind ast.GroupKind) []ast.Member {
	var members []ast.Member
	for !p.at(close) && !p.at(token.EOF) {
		m, ok := p.parseMember(kind)
		if !ok {
			p.resyncUntil(sep, close)
			if p.at(sep) {
				p.advance()
			}
			continue
		}
		members = append(members, m)
		if p.at(sep) {
			p.advance()
			continue
		}
		if !p.at(close) && !p.at(token.EOF) {
			p.err(diag.SynUnexpectedToken,
				"expected '"+sep.String()+"' between members, got \""+p.lx.Peek().Text+"\"")
			p.resyncUntil(sep, close)
			if p.at(sep) {
				p.advance()
			}
		}
	}
	return members
}
