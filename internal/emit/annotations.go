package emit

import (
	"strings"

	"shapec/internal/ast"
)

// unquotePayload strips the surrounding quotes of a string payload and
// unescapes \" and \\. Non-string payloads come back unchanged.
func unquotePayload(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	inner := s[1 : len(s)-1]
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	inner = strings.ReplaceAll(inner, `\\`, `\`)
	return inner
}

// docComment renders the doc-style annotations of one side as comment
// lines: @doc becomes the text itself, @deprecated the conventional
// Deprecated: line, @cfg a cfg: marker line.
func docComment(annos []ast.Annotation, indent string) string {
	var b strings.Builder
	for _, a := range annos {
		switch a.Key {
		case "doc":
			for _, line := range strings.Split(unquotePayload(a.Payload), "\n") {
				b.WriteString(indent + "// " + line + "\n")
			}
		case "deprecated":
			text := "Deprecated: do not use."
			if a.HasPayload {
				text = "Deprecated: " + unquotePayload(a.Payload)
			}
			b.WriteString(indent + "// " + text + "\n")
		case "cfg":
			b.WriteString(indent + "// cfg: " + a.Payload + "\n")
		}
	}
	return b.String()
}

// structTag renders the non-doc annotations of a field as a Go struct tag.
// Double quotes inside payloads are downgraded to single quotes so the tag
// stays a well-formed raw literal.
func structTag(annos []ast.Annotation) string {
	var parts []string
	for _, a := range annos {
		switch a.Key {
		case "doc", "deprecated", "cfg", "default", "norender":
			continue
		}
		val := strings.ReplaceAll(a.Payload, `"`, `'`)
		parts = append(parts, a.Key+`:"`+val+`"`)
	}
	if len(parts) == 0 {
		return ""
	}
	return " `" + strings.Join(parts, " ") + "`"
}

// mergeAnnotations concatenates two classified sets, dropping inner
// entries that duplicate an outer one (allow-listed keys classify to both
// sides and must not render twice).
func mergeAnnotations(outer, inner []ast.Annotation) []ast.Annotation {
	if len(inner) == 0 {
		return outer
	}
	out := make([]ast.Annotation, 0, len(outer)+len(inner))
	out = append(out, outer...)
	for _, a := range inner {
		dup := false
		for _, o := range outer {
			if o == a {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, a)
		}
	}
	return out
}

func hasKey(annos []ast.Annotation, key string) bool {
	for _, a := range annos {
		if a.Key == key {
			return true
		}
	}
	return false
}
