package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shapec/internal/config"
	"shapec/internal/diag"
	"shapec/internal/emit"
	"shapec/internal/source"
)

func compileVirtual(t *testing.T, name, src string, opts Options) Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	if opts.Config.Output.Package == "" {
		opts.Config = config.Default()
	}
	return Compile(fs, id, opts)
}

func TestCompileRecord(t *testing.T) {
	res := compileVirtual(t, "coord.shape", "kind=record; name=Coord; x: i32 = 0; y: f64;", Options{})
	if !res.Ok {
		t.Fatalf("compile failed: %v", res.Bag.Items())
	}
	for _, want := range []string{
		"// Code generated by shapec. DO NOT EDIT.",
		"package shapes",
		"import \"fmt\"",
		"type Coord struct {",
		"func NewCoord() Coord {",
	} {
		if !strings.Contains(res.GoSource, want) {
			t.Errorf("output missing %q:\n%s", want, res.GoSource)
		}
	}
}

func TestCompileNameFallsBackToFileStem(t *testing.T) {
	res := compileVirtual(t, "player_state.shape", "kind=record; hp: i32;", Options{})
	if !res.Ok {
		t.Fatalf("compile failed: %v", res.Bag.Items())
	}
	if !strings.Contains(res.GoSource, "type PlayerState struct {") {
		t.Errorf("output:\n%s", res.GoSource)
	}
}

func TestCompileStopsOnParseError(t *testing.T) {
	res := compileVirtual(t, "bad.shape", "kind=record; x x x", Options{})
	if res.Ok || res.GoSource != "" || res.Types != nil {
		t.Fatalf("failed compiles must produce no output: %+v", res)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected diagnostics")
	}
}

func TestCompileScopeFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Scope = "app"
	res := compileVirtual(t, "coord.shape", "kind=record; name=Coord; x: i32;", Options{Config: cfg})
	if !res.Ok {
		t.Fatalf("compile failed: %v", res.Bag.Items())
	}
	if !strings.Contains(res.GoSource, "type AppCoord struct {") {
		t.Errorf("scope not applied:\n%s", res.GoSource)
	}
}

func TestCompileDeterministic(t *testing.T) {
	const src = "kind=record; name=Coord; z: f64 = 0.0; xy: union XYPlane { A, B: { x: f64, y: f64 } };"
	first := compileVirtual(t, "coord.shape", src, Options{})
	if !first.Ok {
		t.Fatalf("compile failed: %v", first.Bag.Items())
	}
	for i := 0; i < 3; i++ {
		again := compileVirtual(t, "coord.shape", src, Options{})
		if again.GoSource != first.GoSource {
			t.Fatal("output differs between runs")
		}
	}
}

func TestCompileDiskCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	first := compileVirtual(t, "coord.shape", "kind=record; name=Coord; x: i32;", opts)
	if !first.Ok || first.CacheHit {
		t.Fatalf("first compile: %+v", first)
	}
	second := compileVirtual(t, "coord.shape", "kind=record; name=Coord; x: i32;", opts)
	if !second.Ok || !second.CacheHit {
		t.Fatalf("second compile should hit the cache: %+v", second)
	}
	if second.GoSource != first.GoSource {
		t.Error("cached output differs")
	}

	// config changes must miss
	cfg := config.Default()
	cfg.Render.BlockPerNesting = true
	third := compileVirtual(t, "coord.shape", "kind=record; name=Coord; x: i32;", Options{Cache: cache, Config: cfg})
	if third.CacheHit {
		t.Error("different config must not hit the cache")
	}
}

func TestRenderFileImports(t *testing.T) {
	out := RenderFile("gen", []emit.EmittedType{
		{Name: "A", Source: "type A struct{}\n", Imports: []string{"strings", "fmt"}},
		{Name: "B", Source: "type B struct{}\n", Imports: []string{"fmt"}},
	})
	if !strings.Contains(out, "import (\n\t\"fmt\"\n\t\"strings\"\n)") {
		t.Errorf("imports must merge sorted:\n%s", out)
	}
	if !strings.Contains(out, "package gen\n") {
		t.Errorf("output:\n%s", out)
	}
	if strings.Index(out, "type A") > strings.Index(out, "type B") {
		t.Error("type order must be preserved")
	}
}

func TestCompileDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.shape", "kind=record; name=A; x: i32;")
	write("b.shape", "kind=record; name=B; y: f64;")
	write("broken.shape", "kind=record; x x x")

	_, results, err := CompileDir(context.Background(), dir, Options{Config: config.Default()}, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	// sorted order: a, b, broken
	if !results[0].Ok || !strings.Contains(results[0].GoSource, "type A struct {") {
		t.Errorf("a.shape: %+v", results[0])
	}
	if !results[1].Ok || !strings.Contains(results[1].GoSource, "type B struct {") {
		t.Errorf("b.shape: %+v", results[1])
	}
	if results[2].Ok || !results[2].Bag.HasErrors() {
		t.Error("broken.shape must fail without affecting siblings")
	}
}

func TestCompileDirEvents(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.shape"), []byte("kind=record; name=A; x: i32;"), 0o644); err != nil {
		t.Fatal(err)
	}

	events := make(chan Event, 16)
	_, _, err := CompileDir(context.Background(), dir, Options{Config: config.Default()}, 1, events)
	if err != nil {
		t.Fatal(err)
	}
	close(events)

	var starts, dones int
	for ev := range events {
		switch ev.Kind {
		case EventStart:
			starts++
		case EventDone:
			dones++
			if !ev.Ok {
				t.Errorf("done event not ok: %+v", ev)
			}
		}
	}
	if starts != 1 || dones != 1 {
		t.Errorf("starts=%d dones=%d", starts, dones)
	}
}

func TestCacheKeyChangesWithConfig(t *testing.T) {
	base := config.Default()
	block := config.Default()
	block.Render.BlockPerNesting = true

	content := []byte("kind=record; x: i32;")
	if CacheKey(content, base) == CacheKey(content, block) {
		t.Error("config must be part of the key")
	}
	if CacheKey(content, base) == CacheKey([]byte("kind=record; y: i32;"), base) {
		t.Error("content must be part of the key")
	}
	var zero Digest
	if CacheKey(content, base) == zero {
		t.Error("key must not be zero")
	}
}

func TestBagMergeAcrossResults(t *testing.T) {
	all := diag.NewBag(8)
	res := compileVirtual(t, "bad.shape", "x: i32;", Options{})
	all.Merge(res.Bag)
	if !all.HasErrors() {
		t.Error("merged bag must carry the file's diagnostics")
	}
}
