package ast

import (
	"encoding/json"
	"strings"

	"github.com/krew-solutions/ascetic-ast-go/asceticast/asjson"
)

// PrivatePrefix marks fields left out of the portable projection.
const PrivatePrefix = "_"

// AsJSON returns the portable projection of the node: an ordered object of
// every field whose key does not start with PrivatePrefix, values converted
// through asjson.AsJSON. The node is not modified.
func (n *Node) AsJSON() any {
	if n == nil {
		return nil
	}
	obj := asjson.NewObject()
	for k, v := range n.All() {
		if strings.HasPrefix(k, PrivatePrefix) {
			continue
		}
		obj.Set(asjson.Key(k), asjson.AsJSON(v))
	}
	return obj
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.AsJSON())
}

func (n *Node) MarshalYAML() (any, error) {
	return n.AsJSON(), nil
}

// FromJSON rebuilds a node from a portable projection, as produced by
// asjson.Decode or asjson.DecodeYAML. Nested objects become nodes and the
// parseinfo object becomes a ParseInfo again.
func FromJSON(obj *asjson.Object) *Node {
	n := New()
	for k, v := range obj.All() {
		if k == ParseInfoKey {
			if pi, ok := parseInfoFrom(v); ok {
				n.storage().Set(k, pi)
				continue
			}
		}
		n.storage().Set(k, fromPortable(v))
	}
	return n
}

func fromPortable(v any) any {
	switch t := v.(type) {
	case *asjson.Object:
		return FromJSON(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = fromPortable(e)
		}
		return out
	default:
		return v
	}
}

func parseInfoFrom(v any) (ParseInfo, bool) {
	obj, ok := v.(*asjson.Object)
	if !ok {
		return ParseInfo{}, false
	}
	var pi ParseInfo
	rule, _ := obj.Get("rule")
	if pi.Rule, ok = rule.(string); !ok {
		return ParseInfo{}, false
	}
	for key, dst := range map[string]*int{
		"pos": &pi.Pos, "endpos": &pi.EndPos, "line": &pi.Line, "endline": &pi.EndLine,
	} {
		raw, _ := obj.Get(key)
		if *dst, ok = toInt(raw); !ok {
			return ParseInfo{}, false
		}
	}
	return pi, true
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case uint64:
		return int(t), true
	case float64:
		return int(t), true
	case json.Number:
		i, err := t.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}
