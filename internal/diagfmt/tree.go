package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"shapec/internal/ast"
	"shapec/internal/source"
)

// WriteAST dumps a parsed description as an indented tree, one node per
// line, for the parse command.
func WriteAST(w io.Writer, fs *source.FileSet, root *ast.Root) {
	name := root.Name
	if name == "" {
		name = "<unnamed>"
	}
	fmt.Fprintf(w, "%s %s%s\n", root.Kind, name, locSuffix(fs, root.Span))
	writeMembers(w, fs, root.Members, 1)
}

func writeMembers(w io.Writer, fs *source.FileSet, members []ast.Member, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, m := range members {
		fmt.Fprintf(w, "%smember %s%s\n", indent, m.Name, locSuffix(fs, m.Span))
		for _, a := range m.Annotations {
			writeAnnotation(w, indent+"  ", a)
		}
		if m.Shape != nil {
			writeShape(w, fs, m.Shape, depth+1)
		}
		if m.Default != nil {
			fmt.Fprintf(w, "%s  default %s\n", indent, literalText(m.Default))
		}
	}
}

func writeAnnotation(w io.Writer, indent string, a ast.Annotation) {
	key := a.Key
	if a.Placement != ast.PlaceAuto {
		key = a.Placement.String() + "." + key
	}
	if a.HasPayload {
		fmt.Fprintf(w, "%s@%s(%s)\n", indent, key, a.Payload)
		return
	}
	fmt.Fprintf(w, "%s@%s\n", indent, key)
}

func writeShape(w io.Writer, fs *source.FileSet, s *ast.Shape, depth int) {
	indent := strings.Repeat("  ", depth)
	switch s.Kind {
	case ast.ShapeRef:
		fmt.Fprintf(w, "%sshape %s\n", indent, s.Ref)
	case ast.ShapeGroup:
		name := s.Group.Name
		if name == "" {
			name = "<anonymous>"
		}
		fmt.Fprintf(w, "%sgroup %s %s%s\n", indent, s.Group.Kind, name, locSuffix(fs, s.Group.Span))
		writeMembers(w, fs, s.Group.Members, depth+1)
	}
}

func literalText(lit *ast.Literal) string {
	switch lit.Kind {
	case ast.LitBool:
		return fmt.Sprintf("%t", lit.Bool)
	case ast.LitVariantRef:
		return lit.TypeName + "::" + lit.Variant
	case ast.LitDefaultMarker:
		return "default"
	default:
		return lit.Text
	}
}

func locSuffix(fs *source.FileSet, sp source.Span) string {
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf(" @%d:%d", start.Line, start.Col)
}
