package parser

import (
	"testing"

	"shapec/internal/ast"
	"shapec/internal/diag"
	"shapec/internal/source"
)

func parseSrc(t *testing.T, input string) (Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.shape", []byte(input))
	bag := diag.NewBag(64)
	res := Parse(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return res, bag
}

func wantCode(t *testing.T, bag *diag.Bag, code diag.Code) {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("expected diagnostic %v, got %v", code, bag.Items())
}

func TestParseRecord(t *testing.T) {
	res, bag := parseSrc(t, "kind=record; name=Coord; x: i32 = 0; y: f64;")
	if !res.Ok || bag.HasErrors() {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	root := res.Root
	if root.Kind != ast.KindRecord {
		t.Errorf("kind = %v", root.Kind)
	}
	if root.Name != "Coord" {
		t.Errorf("name = %q", root.Name)
	}
	if len(root.Members) != 2 {
		t.Fatalf("got %d members", len(root.Members))
	}
	x := root.Members[0]
	if x.Name != "x" || x.Shape == nil || x.Shape.Kind != ast.ShapeRef || x.Shape.Ref != "i32" {
		t.Errorf("member x = %+v", x)
	}
	if x.Default == nil || x.Default.Kind != ast.LitInt || x.Default.Text != "0" {
		t.Errorf("default of x = %+v", x.Default)
	}
	if root.Members[1].Default != nil {
		t.Errorf("y should have no default")
	}
}

func TestParseNestedGroups(t *testing.T) {
	src := `kind=record; name=Coord;
@doc("A 3D coordinate")
z: f64 = 0.0;
xy: union XYPlane {
    Unspecified = default,
    Orthogonal: { x: f64, y: f64 },
    Polar: { inner: { r: f64, theta: f64 } },
};
c: Color = ::Red`
	res, bag := parseSrc(t, src)
	if !res.Ok || bag.HasErrors() {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	ms := res.Root.Members
	if len(ms) != 3 {
		t.Fatalf("got %d members", len(ms))
	}

	z := ms[0]
	if len(z.Annotations) != 1 || z.Annotations[0].Key != "doc" {
		t.Fatalf("annotations of z = %+v", z.Annotations)
	}
	if z.Annotations[0].Payload != `"A 3D coordinate"` {
		t.Errorf("payload = %q", z.Annotations[0].Payload)
	}

	xy := ms[1]
	if xy.Shape.Kind != ast.ShapeGroup {
		t.Fatalf("xy shape = %+v", xy.Shape)
	}
	g := xy.Shape.Group
	if g.Kind != ast.KindUnion || g.Name != "XYPlane" || len(g.Members) != 3 {
		t.Fatalf("group = %+v", g)
	}
	if g.Members[0].Shape != nil {
		t.Errorf("Unspecified should be a unit variant")
	}
	if g.Members[0].Default == nil || g.Members[0].Default.Kind != ast.LitDefaultMarker {
		t.Errorf("Unspecified should carry the default marker")
	}
	orth := g.Members[1]
	if orth.Shape.Kind != ast.ShapeGroup || orth.Shape.Group.Kind != ast.KindUnspecified {
		t.Errorf("Orthogonal shape = %+v", orth.Shape)
	}
	polar := g.Members[2].Shape.Group
	if len(polar.Members) != 1 || polar.Members[0].Shape.Kind != ast.ShapeGroup {
		t.Errorf("Polar = %+v", polar)
	}

	c := ms[2]
	if c.Default == nil || c.Default.Kind != ast.LitVariantRef ||
		c.Default.TypeName != "" || c.Default.Variant != "Red" {
		t.Errorf("default of c = %+v", c.Default)
	}
}

func TestParseVariantRefQualified(t *testing.T) {
	res, bag := parseSrc(t, "kind=record; c: Color = Color::Blue;")
	if bag.HasErrors() {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	d := res.Root.Members[0].Default
	if d.Kind != ast.LitVariantRef || d.TypeName != "Color" || d.Variant != "Blue" {
		t.Errorf("default = %+v", d)
	}
}

func TestParseNegativeLiteral(t *testing.T) {
	res, bag := parseSrc(t, "kind=record; dx: i32 = -7;")
	if bag.HasErrors() {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	d := res.Root.Members[0].Default
	if d.Kind != ast.LitInt || d.Text != "-7" {
		t.Errorf("default = %+v", d)
	}
}

func TestParsePlacementQualifiers(t *testing.T) {
	src := `kind=record;
@outer.serde(skip)
@inner.derive(Hash)
@doc("both")
p: { q: i32 };`
	res, bag := parseSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	annos := res.Root.Members[0].Annotations
	if len(annos) != 3 {
		t.Fatalf("got %d annotations", len(annos))
	}
	if annos[0].Placement != ast.PlaceOuter || annos[0].Key != "serde" || annos[0].Payload != "skip" {
		t.Errorf("annos[0] = %+v", annos[0])
	}
	if annos[1].Placement != ast.PlaceInner || annos[1].Key != "derive" {
		t.Errorf("annos[1] = %+v", annos[1])
	}
	if annos[2].Placement != ast.PlaceAuto {
		t.Errorf("annos[2] = %+v", annos[2])
	}
}

func TestParseDefaultAnnotationKey(t *testing.T) {
	res, bag := parseSrc(t, "kind=record; @default n: i32;")
	if bag.HasErrors() {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	annos := res.Root.Members[0].Annotations
	if len(annos) != 1 || annos[0].Key != "default" || annos[0].HasPayload {
		t.Errorf("annotations = %+v", annos)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"missing kind", "x: i32;", diag.SynMissingKind},
		{"unknown kind", "kind=tuple; x: i32;", diag.SynUnknownKind},
		{"duplicate member", "kind=record; x: i32; x: f64;", diag.SynDuplicateMember},
		{"duplicate nested member", "kind=record; p: { a: i32, a: i32 };", diag.SynDuplicateMember},
		{"empty description", "kind=record;", diag.SynEmptyGroup},
		{"empty group", "kind=record; p: {};", diag.SynEmptyGroup},
		{"duplicate default", "kind=union; A = default; B = default;", diag.SynDuplicateDefault},
		{"unterminated group", "kind=record; p: { a: i32", diag.SynUnterminatedGroup},
		{"record unit member", "kind=record; x;", diag.SynUnexpectedToken},
		{"default marker in record", "kind=record; x: i32 = default;", diag.SynBadLiteral},
		{"bad header", "kind record; x: i32;", diag.SynBadHeader},
		{"bad annotation", "kind=record; @ : x: i32;", diag.SynBadAnnotation},
		{"unterminated payload", "kind=record; @doc(oops x: i32;", diag.SynBadAnnotation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, bag := parseSrc(t, tc.src)
			if res.Ok {
				t.Fatal("expected parse to fail")
			}
			wantCode(t, bag, tc.code)
		})
	}
}

func TestParseTopLevelUnion(t *testing.T) {
	res, bag := parseSrc(t, "kind=union; name=Shape; Dot; Line: { len: f64 } = default;")
	if bag.HasErrors() {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	ms := res.Root.Members
	if ms[0].Shape != nil {
		t.Errorf("Dot should be a unit variant")
	}
	if ms[1].Default == nil || ms[1].Default.Kind != ast.LitDefaultMarker {
		t.Errorf("Line should carry the default marker")
	}
}

func TestParseMaxErrorsStopsReporting(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.shape", []byte("kind=record; x; y; z;"))
	bag := diag.NewBag(64)
	res := Parse(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 1})
	if res.Ok {
		t.Fatal("expected parse to fail")
	}
	if bag.Len() > 1 {
		t.Errorf("got %d diagnostics, want at most 1", bag.Len())
	}
}
