package emit

import (
	"strings"

	"shapec/internal/ast"
	"shapec/internal/resolve"
)

func (e *emitter) emitRecord(g *resolve.ResolvedGroup, name string, annos []ast.Annotation) {
	fields := e.buildFields(g, name)
	e.register(name, g.Span)

	var b strings.Builder
	b.WriteString(docComment(annos, ""))
	b.WriteString("type " + name + " struct {\n")
	for _, f := range fields {
		b.WriteString(f.doc)
		if f.embedded {
			b.WriteString("\t" + f.typ + f.tag + "\n")
		} else {
			b.WriteString("\t" + f.name + " " + f.typ + f.tag + "\n")
		}
	}
	b.WriteString("}\n")

	var imports []string
	if !hasKey(annos, "norender") {
		src, imps := renderStringMethod(name, name, fields, styleBraces, e.opts.BlockPerNesting)
		b.WriteString("\n" + src)
		imports = imps
	}
	if g.HasDefault {
		b.WriteString("\n" + renderConstructor("New"+name, name, fields))
	}

	e.out = append(e.out, EmittedType{Name: name, Source: b.String(), Imports: imports})
}
