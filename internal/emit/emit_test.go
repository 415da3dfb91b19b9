package emit

import (
	"strings"
	"testing"

	"shapec/internal/diag"
	"shapec/internal/parser"
	"shapec/internal/resolve"
	"shapec/internal/source"
)

func compile(t *testing.T, input string, known *resolve.Registry, opts Options) ([]EmittedType, bool, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.shape", []byte(input))
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}

	pres := parser.Parse(fs.Get(id), parser.Options{Reporter: rep})
	if !pres.Ok {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	g, ok := resolve.Resolve(pres.Root, resolve.Options{Known: known, Reporter: rep})
	if !ok {
		t.Fatalf("resolve failed: %v", bag.Items())
	}
	opts.Reporter = rep
	types, ok := Emit(g, nil, opts)
	return types, ok, bag
}

func typeNamed(t *testing.T, types []EmittedType, name string) EmittedType {
	t.Helper()
	for _, et := range types {
		if et.Name == name {
			return et
		}
	}
	t.Fatalf("no emitted type %q in %v", name, names(types))
	return EmittedType{}
}

func names(types []EmittedType) []string {
	out := make([]string, len(types))
	for i, et := range types {
		out[i] = et.Name
	}
	return out
}

func TestEmitRecord(t *testing.T) {
	types, ok, bag := compile(t, "kind=record; name=Coord; x: i32 = 0; y: f64;", nil, Options{})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}
	if len(types) != 1 {
		t.Fatalf("types = %v", names(types))
	}
	src := types[0].Source
	for _, want := range []string{
		"type Coord struct {",
		"\tX int32\n",
		"\tY float64\n",
		`fmt.Sprintf("Coord{X: %v, Y: %v}", v.X, v.Y)`,
		"func NewCoord() Coord {",
		"X: 0,",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("source missing %q:\n%s", want, src)
		}
	}
	if strings.Contains(src, "\t\tY: ") {
		t.Errorf("members without defaults must zero-fill:\n%s", src)
	}
}

func TestEmitNestedRecordBottomUp(t *testing.T) {
	types, ok, bag := compile(t, "kind=record; name=Coord; x: i32 = 0; y: { a: i32, b: i32 };", nil, Options{})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}
	got := names(types)
	if len(got) != 2 || got[0] != "CoordY" || got[1] != "Coord" {
		t.Fatalf("order = %v, want [CoordY Coord]", got)
	}
	child := typeNamed(t, types, "CoordY")
	if !strings.Contains(child.Source, "\tA int32\n") || !strings.Contains(child.Source, "\tB int32\n") {
		t.Errorf("child source:\n%s", child.Source)
	}
	parent := typeNamed(t, types, "Coord")
	if !strings.Contains(parent.Source, "\tY CoordY\n") {
		t.Errorf("parent must reference the generated child name:\n%s", parent.Source)
	}
}

func TestEmitUnionSingleMemberEmbeds(t *testing.T) {
	types, ok, bag := compile(t, "kind=union; name=Wrapper; Wrapped: { inner: { value: i64 } };", nil, Options{})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}
	got := names(types)
	want := []string{"WrapperWrappedInner", "WrapperWrapped", "Wrapper"}
	if len(got) != len(want) {
		t.Fatalf("types = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	inner := typeNamed(t, types, "WrapperWrappedInner")
	if !strings.Contains(inner.Source, "\tValue int64\n") {
		t.Errorf("inner source:\n%s", inner.Source)
	}
	variant := typeNamed(t, types, "WrapperWrapped")
	if !strings.Contains(variant.Source, "\tWrapperWrappedInner\n") {
		t.Errorf("single payload member must embed:\n%s", variant.Source)
	}
	if !strings.Contains(variant.Source, "func (WrapperWrapped) isWrapper() {}") {
		t.Errorf("variant must seal the interface:\n%s", variant.Source)
	}
	iface := typeNamed(t, types, "Wrapper")
	if !iface.Union || !strings.Contains(iface.Source, "\tisWrapper()\n") {
		t.Errorf("interface source:\n%s", iface.Source)
	}
}

func TestEmitUnionVariantForms(t *testing.T) {
	src := `kind=union; name=Shape;
Dot = default;
Line: { a: f64, b: f64 };
Tag: string;`
	types, ok, bag := compile(t, src, nil, Options{})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}

	dot := typeNamed(t, types, "ShapeDot")
	if !strings.Contains(dot.Source, "type ShapeDot struct{}") {
		t.Errorf("unit variant:\n%s", dot.Source)
	}
	if !strings.Contains(dot.Source, `return "Shape::Dot"`) {
		t.Errorf("unit rendering:\n%s", dot.Source)
	}

	line := typeNamed(t, types, "ShapeLine")
	if !strings.Contains(line.Source, "\tA float64\n") {
		t.Errorf("named-field variant:\n%s", line.Source)
	}
	if !strings.Contains(line.Source, `fmt.Sprintf("Shape::Line{A: %v, B: %v}", v.A, v.B)`) {
		t.Errorf("braces rendering:\n%s", line.Source)
	}

	tag := typeNamed(t, types, "ShapeTag")
	if !strings.Contains(tag.Source, "\tstring\n") {
		t.Errorf("primitive payload must embed:\n%s", tag.Source)
	}
	if !strings.Contains(tag.Source, `fmt.Sprintf("Shape::Tag(%v)", v.string)`) {
		t.Errorf("paren rendering:\n%s", tag.Source)
	}

	iface := typeNamed(t, types, "Shape")
	if !strings.Contains(iface.Source, "func DefaultShape() Shape {\n\treturn ShapeDot{}\n}") {
		t.Errorf("default constructor:\n%s", iface.Source)
	}
}

func TestEmitDeclaredNestedName(t *testing.T) {
	types, ok, bag := compile(t, "kind=record; name=Coord; xy: union XYPlane { Unspecified = default, Orthogonal: { x: f64, y: f64 } };", nil, Options{})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}
	got := names(types)
	want := []string{"XYPlaneUnspecified", "XYPlaneOrthogonal", "XYPlane", "Coord"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	parent := typeNamed(t, types, "Coord")
	if !strings.Contains(parent.Source, "\tXy XYPlane\n") {
		t.Errorf("field must use the declared name:\n%s", parent.Source)
	}
}

func TestEmitVariantRefDefault(t *testing.T) {
	known := resolve.NewRegistry()
	known.AddUnion("Color", "Red", "Blue")
	types, ok, bag := compile(t, "kind=record; name=P; c: Color = ::Red;", known, Options{})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}
	p := typeNamed(t, types, "P")
	if !strings.Contains(p.Source, "C: ColorRed{},") {
		t.Errorf("constructor must use the variant zero value:\n%s", p.Source)
	}
}

func TestEmitVariantRefDefaultDeclaredPayloadName(t *testing.T) {
	src := `kind=record; name=P;
s: union Shape { Dot: record DotBody { x: f64 }, Other } = ::Dot;`
	types, ok, bag := compile(t, src, nil, Options{})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}
	typeNamed(t, types, "DotBody")
	p := typeNamed(t, types, "P")
	if !strings.Contains(p.Source, "S: DotBody{},") {
		t.Errorf("constructor must use the declared payload name:\n%s", p.Source)
	}
	if strings.Contains(p.Source, "ShapeDot") {
		t.Errorf("constructor must not reference a derived name that is never generated:\n%s", p.Source)
	}
}

func TestEmitUnionMemberInnerAnnotations(t *testing.T) {
	src := `kind=union; name=Shape;
@inner.doc("payload docs")
Line: { a: f64, b: f64 };`
	types, ok, bag := compile(t, src, nil, Options{})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}
	line := typeNamed(t, types, "ShapeLine")
	if !strings.Contains(line.Source, "// payload docs\ntype ShapeLine struct {") {
		t.Errorf("inner doc must land on the variant type:\n%s", line.Source)
	}
}

func TestEmitUnionMemberDocOnce(t *testing.T) {
	types, ok, bag := compile(t, `kind=union; name=Shape; @doc("a dot") Dot;`, nil, Options{})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}
	dot := typeNamed(t, types, "ShapeDot")
	if got := strings.Count(dot.Source, "// a dot"); got != 1 {
		t.Errorf("doc rendered %d times, want 1:\n%s", got, dot.Source)
	}
}

func TestEmitZeroValueDefaultAnnotation(t *testing.T) {
	types, ok, bag := compile(t, "kind=record; name=P; @default n: i32;", nil, Options{})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}
	p := typeNamed(t, types, "P")
	if !strings.Contains(p.Source, "func NewP() P {") {
		t.Errorf("@default must warrant a constructor:\n%s", p.Source)
	}
	if strings.Contains(p.Source, "\t\tN: ") {
		t.Errorf("@default must zero-fill, not assign:\n%s", p.Source)
	}
}

func TestEmitDocAnnotationsDuplicate(t *testing.T) {
	src := `kind=record; name=P;
@doc("the payload")
body: { n: i32 };`
	types, ok, bag := compile(t, src, nil, Options{})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}
	child := typeNamed(t, types, "PBody")
	if !strings.Contains(child.Source, "// the payload\ntype PBody struct {") {
		t.Errorf("doc must land on the generated type:\n%s", child.Source)
	}
	parent := typeNamed(t, types, "P")
	if !strings.Contains(parent.Source, "\t// the payload\n\tBody PBody\n") {
		t.Errorf("doc must also land on the field:\n%s", parent.Source)
	}
}

func TestEmitStructTag(t *testing.T) {
	types, ok, bag := compile(t, "kind=record; name=P; @outer.serde(skip) n: i32;", nil, Options{})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}
	p := typeNamed(t, types, "P")
	if !strings.Contains(p.Source, "\tN int32 `serde:\"skip\"`\n") {
		t.Errorf("outer annotation must become a tag:\n%s", p.Source)
	}
}

func TestEmitNoRender(t *testing.T) {
	types, ok, bag := compile(t, "kind=record; name=P; @norender body: { n: i32 };", nil, Options{})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}
	child := typeNamed(t, types, "PBody")
	if strings.Contains(child.Source, "String()") {
		t.Errorf("norender must suppress the rendering:\n%s", child.Source)
	}
	parent := typeNamed(t, types, "P")
	if !strings.Contains(parent.Source, "String()") {
		t.Errorf("norender applies to the inner type only:\n%s", parent.Source)
	}
}

func TestEmitBlockPerNesting(t *testing.T) {
	types, ok, bag := compile(t, "kind=record; name=P; a: i32; b: { n: i32 };", nil, Options{BlockPerNesting: true})
	if !ok {
		t.Fatalf("emit failed: %v", bag.Items())
	}
	p := typeNamed(t, types, "P")
	for _, want := range []string{"strings.Builder", "strings.ReplaceAll(fmt.Sprint(v.A)"} {
		if !strings.Contains(p.Source, want) {
			t.Errorf("block rendering missing %q:\n%s", want, p.Source)
		}
	}
	wantImports := map[string]bool{"fmt": true, "strings": true}
	for _, imp := range p.Imports {
		delete(wantImports, imp)
	}
	if len(wantImports) != 0 {
		t.Errorf("imports = %v", p.Imports)
	}
}

func TestEmitNameCollision(t *testing.T) {
	fsrc := "kind=record; name=P; a_b: { x: i32 }; aB: { y: i32 };"
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.shape", []byte(fsrc))
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	pres := parser.Parse(fs.Get(id), parser.Options{Reporter: rep})
	if !pres.Ok {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	g, ok := resolve.Resolve(pres.Root, resolve.Options{Reporter: rep})
	if !ok {
		t.Fatalf("resolve failed: %v", bag.Items())
	}
	_, ok = Emit(g, nil, Options{Reporter: rep})
	if ok {
		t.Fatal("expected emit to fail")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.EmitNameCollision {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected EmitNameCollision, got %v", bag.Items())
	}
}

func TestEmitDeterministic(t *testing.T) {
	src := `kind=record; name=Coord;
@doc("A 3D coordinate")
z: f64 = 0.0;
xy: union XYPlane {
    Unspecified = default,
    Orthogonal: { x: f64, y: f64 },
    Polar: { inner: { r: f64, theta: f64 } },
};`
	render := func() string {
		types, ok, bag := compile(t, src, nil, Options{})
		if !ok {
			t.Fatalf("emit failed: %v", bag.Items())
		}
		var b strings.Builder
		for _, et := range types {
			b.WriteString(et.Source)
			b.WriteString("\n")
		}
		return b.String()
	}
	first := render()
	for i := 0; i < 3; i++ {
		if got := render(); got != first {
			t.Fatalf("output differs between runs:\n%s\n---\n%s", first, got)
		}
	}
}
