package driver

import (
	"sort"
	"strings"

	"shapec/internal/emit"
)

// generatedHeader is the conventional marker that keeps tooling away from
// the output.
const generatedHeader = "// Code generated by shapec. DO NOT EDIT."

// RenderFile assembles emitted types into one Go source file: header,
// package clause, merged imports, then the type sources in bottom-up order.
// Identical input always renders byte-identical output.
func RenderFile(pkg string, types []emit.EmittedType) string {
	var b strings.Builder
	b.WriteString(generatedHeader + "\n\n")
	b.WriteString("package " + pkg + "\n\n")

	seen := make(map[string]bool)
	var imports []string
	for _, et := range types {
		for _, imp := range et.Imports {
			if !seen[imp] {
				seen[imp] = true
				imports = append(imports, imp)
			}
		}
	}
	sort.Strings(imports)
	switch len(imports) {
	case 0:
	case 1:
		b.WriteString("import \"" + imports[0] + "\"\n\n")
	default:
		b.WriteString("import (\n")
		for _, imp := range imports {
			b.WriteString("\t\"" + imp + "\"\n")
		}
		b.WriteString(")\n\n")
	}

	for i, et := range types {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(et.Source)
	}
	return b.String()
}
