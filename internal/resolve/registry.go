package resolve

// TypeInfo describes one name known to the resolver. For unions, Variants
// maps each variant name to its declared payload type name, "" when the
// variant type name is derived.
type TypeInfo struct {
	Name     string
	Union    bool
	Variants map[string]string
}

// Registry maps type names visible to one invocation: primitives, types
// seeded by the caller, and named groups resolved earlier in the same
// description.
type Registry struct {
	types map[string]TypeInfo
}

// primitives is the fixed set of scalar shape names.
var primitives = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"f32": true, "f64": true,
	"bool": true, "string": true,
}

// IsPrimitive reports whether name is a scalar shape name.
func IsPrimitive(name string) bool { return primitives[name] }

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]TypeInfo)}
}

// AddUnion registers a union by its variant names alone; every variant
// type name is derived.
func (r *Registry) AddUnion(name string, variants ...string) {
	vs := make(map[string]string, len(variants))
	for _, v := range variants {
		vs[v] = ""
	}
	r.types[name] = TypeInfo{Name: name, Union: true, Variants: vs}
}

// AddUnionPayloads registers a union with per-variant declared payload
// type names.
func (r *Registry) AddUnionPayloads(name string, variants map[string]string) {
	r.types[name] = TypeInfo{Name: name, Union: true, Variants: variants}
}

// AddType registers a non-union named type.
func (r *Registry) AddType(name string) {
	r.types[name] = TypeInfo{Name: name}
}

// Lookup finds a registered type by name.
func (r *Registry) Lookup(name string) (TypeInfo, bool) {
	ti, ok := r.types[name]
	return ti, ok
}

// clone copies the registry so one invocation never mutates the caller's.
func (r *Registry) clone() *Registry {
	out := NewRegistry()
	for k, v := range r.types {
		out.types[k] = v
	}
	return out
}
