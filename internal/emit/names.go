package emit

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser keeps existing capitals so XYPlane survives derivation.
var titleCaser = cases.Title(language.English, cases.NoLower)

// ExportedName derives an exported Go identifier from a member name:
// underscore-separated parts are title-cased and joined.
func ExportedName(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(titleCaser.String(part))
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}

// goPrimitive maps scalar shape names onto Go types.
var goPrimitive = map[string]string{
	"i8": "int8", "i16": "int16", "i32": "int32", "i64": "int64",
	"u8": "uint8", "u16": "uint16", "u32": "uint32", "u64": "uint64",
	"f32": "float32", "f64": "float64",
	"bool": "bool", "string": "string",
}
