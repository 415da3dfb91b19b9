package emit

import (
	"strings"

	"shapec/internal/ast"
	"shapec/internal/resolve"
)

// variantTypeName follows the same rule as field types: a declared payload
// group name wins, otherwise Union+Member.
func variantTypeName(union string, m *resolve.ResolvedMember) string {
	if m.Shape.Class == resolve.ShapeNested && m.Shape.Nested.Name != "" {
		return m.Shape.Nested.Name
	}
	return union + ExportedName(m.Name)
}

func (e *emitter) emitUnion(g *resolve.ResolvedGroup, name string, annos []ast.Annotation) {
	for i := range g.Members {
		e.emitVariant(&g.Members[i], name)
	}
	e.register(name, g.Span)

	var b strings.Builder
	b.WriteString(docComment(annos, ""))
	b.WriteString("type " + name + " interface {\n")
	b.WriteString("\tis" + name + "()\n")
	b.WriteString("}\n")

	if g.DefaultVariant != "" {
		for i := range g.Members {
			m := &g.Members[i]
			if m.Name == g.DefaultVariant {
				b.WriteString("\nfunc Default" + name + "() " + name + " {\n")
				b.WriteString("\treturn " + variantTypeName(name, m) + "{}\n")
				b.WriteString("}\n")
				break
			}
		}
	}

	e.out = append(e.out, EmittedType{Name: name, Union: true, Source: b.String()})
}

// emitVariant renders one variant struct. The payload form is decided by
// member count only: no shape is a unit variant, a single payload embeds
// its type, two or more payload members become named fields.
func (e *emitter) emitVariant(m *resolve.ResolvedMember, union string) {
	vname := variantTypeName(union, m)
	mOuter, mInner := e.classifyMember(m.Annotations)
	// a union member has no outer field, so both classification sites land
	// on the variant type itself
	vAnnos := mergeAnnotations(mOuter, mInner)

	var fields []fieldInfo
	style := styleUnit
	hasDefault := false

	switch m.Shape.Class {
	case resolve.ShapeUnit:
		// no payload
	case resolve.ShapePrimitive:
		fields = []fieldInfo{{typ: goPrimitive[m.Shape.TypeName], embedded: true}}
		style = styleParen
	case resolve.ShapeNamed:
		fields = []fieldInfo{{typ: m.Shape.TypeName, embedded: true}}
		style = styleParen
	case resolve.ShapeNested:
		nested := m.Shape.Nested
		if len(nested.Members) == 1 {
			mm := &nested.Members[0]
			mmOuter, mmInner := e.classifyMember(mm.Annotations)
			fields = []fieldInfo{{
				typ:      e.fieldType(mm, vname, mmInner),
				doc:      docComment(mmOuter, "\t"),
				tag:      structTag(mmOuter),
				embedded: true,
				member:   mm,
			}}
			style = styleParen
		} else {
			fields = e.buildFields(nested, vname)
			style = styleBraces
			hasDefault = nested.HasDefault
		}
	}

	e.register(vname, m.Span)

	var b strings.Builder
	b.WriteString(docComment(vAnnos, ""))
	if len(fields) == 0 {
		b.WriteString("type " + vname + " struct{}\n")
	} else {
		b.WriteString("type " + vname + " struct {\n")
		for _, f := range fields {
			b.WriteString(f.doc)
			if f.embedded {
				b.WriteString("\t" + f.typ + f.tag + "\n")
			} else {
				b.WriteString("\t" + f.name + " " + f.typ + f.tag + "\n")
			}
		}
		b.WriteString("}\n")
	}

	b.WriteString("\nfunc (" + vname + ") is" + union + "() {}\n")

	var imports []string
	if !hasKey(mInner, "norender") {
		// renderings keep the description-side names: Union::Variant
		src, imps := renderStringMethod(vname, union+"::"+m.Name, fields, style, e.opts.BlockPerNesting)
		b.WriteString("\n" + src)
		imports = imps
	}
	if hasDefault {
		b.WriteString("\n" + renderConstructor("New"+vname, vname, fields))
	}

	e.out = append(e.out, EmittedType{Name: vname, Source: b.String(), Imports: imports})
}
