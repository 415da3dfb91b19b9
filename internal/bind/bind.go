// Package bind wraps emitted types into a namespace scope so independent
// invocations can share one output package without colliding.
package bind

import (
	"regexp"
	"sort"
	"strings"

	"shapec/internal/emit"
)

// CompiledOutput is the final result of one invocation.
type CompiledOutput struct {
	Scope string
	Types []emit.EmittedType
}

// Bind prefixes every generated type name, and every reference to one, with
// the exported scope name. Constructors and the sealed-interface marker
// method follow their type. An empty scope returns the types untouched.
// Scoping is flat; nested scopes cannot be expressed.
func Bind(types []emit.EmittedType, scope string) CompiledOutput {
	if scope == "" || len(types) == 0 {
		return CompiledOutput{Scope: scope, Types: types}
	}
	prefix := emit.ExportedName(scope)

	repl := make(map[string]string, len(types)*4)
	names := make([]string, 0, len(types)*4)
	for _, et := range types {
		for _, pair := range [][2]string{
			{et.Name, prefix + et.Name},
			{"New" + et.Name, "New" + prefix + et.Name},
			{"Default" + et.Name, "Default" + prefix + et.Name},
			{"is" + et.Name, "is" + prefix + et.Name},
		} {
			repl[pair[0]] = pair[1]
			names = append(names, regexp.QuoteMeta(pair[0]))
		}
	}
	// longest alternative first keeps the match deterministic
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	re := regexp.MustCompile(`\b(` + strings.Join(names, "|") + `)\b`)

	out := make([]emit.EmittedType, len(types))
	for i, et := range types {
		src := re.ReplaceAllStringFunc(et.Source, func(m string) string {
			return repl[m]
		})
		out[i] = emit.EmittedType{
			Name:    prefix + et.Name,
			Union:   et.Union,
			Source:  src,
			Imports: et.Imports,
		}
	}
	return CompiledOutput{Scope: scope, Types: out}
}
