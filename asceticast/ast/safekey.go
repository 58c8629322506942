package ast

// SafeKeySuffix is appended to a field name for as long as the name collides
// with the node's own interface.
const SafeKeySuffix = "_"

// interfaceNames enumerates the names of Node's own operations, lowercased and
// in snake_case, as a grammar author would spell a field. A field named after
// any of them is stored under a renamed, non-colliding key.
var interfaceNames = map[string]struct{}{
	"all":               {},
	"as_json":           {},
	"asjson":            {},
	"assign":            {},
	"attr":              {},
	"copy":              {},
	"define":            {},
	"delete":            {},
	"frozen":            {},
	"get":               {},
	"has":               {},
	"items":             {},
	"keys":              {},
	"len":               {},
	"lookup":            {},
	"marshal_json":      {},
	"marshaljson":       {},
	"marshal_yaml":      {},
	"marshalyaml":       {},
	"pairs":             {},
	"set_attr":          {},
	"setattr":           {},
	"set_parse_info":    {},
	"set_parseinfo":     {},
	"setparseinfo":      {},
	"store":             {},
	"store_as_sequence": {},
	"storeassequence":   {},
	"string":            {},
	"update":            {},
	"values":            {},
}

// SafeKey returns the physical key used to store the field named key.
func SafeKey(key string) string {
	for isInterfaceName(key) {
		key += SafeKeySuffix
	}
	return key
}

func isInterfaceName(name string) bool {
	_, ok := interfaceNames[name]
	return ok
}
