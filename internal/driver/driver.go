// Package driver runs the compile pipeline end to end and assembles the
// generated Go sources.
package driver

import (
	"path/filepath"
	"strings"

	"shapec/internal/bind"
	"shapec/internal/config"
	"shapec/internal/diag"
	"shapec/internal/emit"
	"shapec/internal/parser"
	"shapec/internal/resolve"
	"shapec/internal/source"
)

type Options struct {
	Config config.Config
	// Name overrides the type name when the description has no name= header.
	Name           string
	MaxDiagnostics int
	// Known seeds the resolver with unions declared outside this file.
	Known *resolve.Registry
	Cache *DiskCache
}

// Result is the outcome of compiling one description file.
type Result struct {
	Path     string
	FileID   source.FileID
	Bag      *diag.Bag
	Types    []emit.EmittedType
	GoSource string
	CacheHit bool
	Ok       bool
}

// Compile runs parse, resolve, emit and bind over one file. Every stage is
// fatal: a failed stage stops the pipeline and the result carries only
// diagnostics.
func Compile(fileSet *source.FileSet, fileID source.FileID, opts Options) Result {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 64
	}
	file := fileSet.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	res := Result{Path: file.Path, FileID: fileID, Bag: bag}

	if opts.Cache != nil {
		key := CacheKey(file.Content, opts.Config)
		var payload CachePayload
		if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
			res.GoSource = payload.GoSource
			res.CacheHit = true
			res.Ok = true
			return res
		}
	}

	pres := parser.Parse(file, parser.Options{
		Reporter:  rep,
		MaxErrors: uint(opts.MaxDiagnostics), // #nosec G115 -- validated above
	})
	if !pres.Ok {
		return res
	}

	name := opts.Name
	if name == "" {
		name = nameFromPath(file.Path)
	}
	rg, ok := resolve.Resolve(pres.Root, resolve.Options{
		Name:     name,
		Known:    opts.Known,
		Reporter: rep,
	})
	if !ok {
		return res
	}

	types, ok := emit.Emit(rg, nil, emit.Options{
		Reporter:        rep,
		Classify:        opts.Config.ClassifyConfig(),
		BlockPerNesting: opts.Config.Render.BlockPerNesting,
	})
	if !ok {
		return res
	}

	out := bind.Bind(types, opts.Config.Output.Scope)
	res.Types = out.Types
	res.GoSource = RenderFile(opts.Config.Output.Package, out.Types)
	res.Ok = true

	if opts.Cache != nil {
		names := make([]string, len(out.Types))
		for i, et := range out.Types {
			names[i] = et.Name
		}
		key := CacheKey(file.Content, opts.Config)
		// best effort; a failed write only costs the next run a recompile
		_ = opts.Cache.Put(key, &CachePayload{
			Schema:    cacheSchemaVersion,
			GoSource:  res.GoSource,
			TypeNames: names,
		})
	}
	return res
}

// nameFromPath derives a fallback type name from the file stem.
func nameFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), ShapeExt)
	return emit.ExportedName(stem)
}
