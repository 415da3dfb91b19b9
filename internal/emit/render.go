package emit

import (
	"strings"

	"shapec/internal/ast"
)

// renderStyle selects the String() shape for a type.
type renderStyle uint8

const (
	styleUnit   renderStyle = iota // Shape::Dot
	styleParen                     // Shape::Wrapped(payload)
	styleBraces                    // Coord{Z: 1, Xy: ...}
)

// renderStringMethod generates the diagnostic String() method. display is
// the description-side name shown in the rendering, which may differ from
// the Go type name for union variants.
func renderStringMethod(typeName, display string, fields []fieldInfo, style renderStyle, block bool) (string, []string) {
	var b strings.Builder

	switch style {
	case styleUnit:
		b.WriteString("func (" + typeName + ") String() string {\n")
		b.WriteString("\treturn \"" + display + "\"\n")
		b.WriteString("}\n")
		return b.String(), nil

	case styleParen:
		f := fields[0]
		b.WriteString("func (v " + typeName + ") String() string {\n")
		b.WriteString("\treturn fmt.Sprintf(\"" + display + "(%v)\", v." + f.accessor() + ")\n")
		b.WriteString("}\n")
		return b.String(), []string{"fmt"}

	default:
		if block {
			b.WriteString("func (v " + typeName + ") String() string {\n")
			b.WriteString("\tvar b strings.Builder\n")
			b.WriteString("\tb.WriteString(\"" + display + " {\")\n")
			for _, f := range fields {
				b.WriteString("\tb.WriteString(\"\\n\\t" + f.name +
					": \" + strings.ReplaceAll(fmt.Sprint(v." + f.accessor() + "), \"\\n\", \"\\n\\t\"))\n")
			}
			b.WriteString("\tb.WriteString(\"\\n}\")\n")
			b.WriteString("\treturn b.String()\n")
			b.WriteString("}\n")
			return b.String(), []string{"fmt", "strings"}
		}

		verbs := make([]string, 0, len(fields))
		args := make([]string, 0, len(fields))
		for _, f := range fields {
			verbs = append(verbs, f.name+": %v")
			args = append(args, "v."+f.accessor())
		}
		b.WriteString("func (v " + typeName + ") String() string {\n")
		b.WriteString("\treturn fmt.Sprintf(\"" + display + "{" + strings.Join(verbs, ", ") + "}\", " +
			strings.Join(args, ", ") + ")\n")
		b.WriteString("}\n")
		return b.String(), []string{"fmt"}
	}
}

// renderConstructor generates the default constructor: members with a
// default get it, the rest zero-fill by omission.
func renderConstructor(funcName, typeName string, fields []fieldInfo) string {
	var b strings.Builder
	b.WriteString("func " + funcName + "() " + typeName + " {\n")
	b.WriteString("\treturn " + typeName + "{\n")
	for _, f := range fields {
		if f.embedded {
			continue
		}
		v := defaultValue(f)
		if v == "" {
			continue
		}
		b.WriteString("\t\t" + f.name + ": " + v + ",\n")
	}
	b.WriteString("\t}\n")
	b.WriteString("}\n")
	return b.String()
}

// defaultValue renders a member default as a Go expression. Literal text
// passes through byte for byte; a variant reference becomes the zero value
// of the variant type, with an unqualified reference resolving to the
// member's own generated union.
func defaultValue(f fieldInfo) string {
	if f.member == nil || f.member.Default == nil {
		return ""
	}
	d := f.member.Default
	switch d.Kind {
	case ast.LitInt, ast.LitFloat, ast.LitString, ast.LitBool:
		return d.Text
	case ast.LitVariantRef:
		if d.PayloadName != "" {
			// the variant struct keeps its declared payload group name
			return d.PayloadName + "{}"
		}
		union := d.TypeName
		if union == "" {
			union = f.typ
		}
		return union + ExportedName(d.Variant) + "{}"
	default:
		return ""
	}
}
