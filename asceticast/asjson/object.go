package asjson

import (
	"bytes"
	"encoding/json"
	"iter"

	"github.com/speakeasy-api/openapi/sequencedmap"
	"gopkg.in/yaml.v3"
)

// Object is an insertion-ordered JSON object. It marshals to JSON and YAML
// with its keys in the order they were first set. The zero value is an empty
// object ready to use.
type Object struct {
	entries *sequencedmap.Map[string, any]
}

func NewObject() *Object {
	return &Object{entries: sequencedmap.New[string, any]()}
}

// Set stores value under key. An existing key keeps its position.
func (o *Object) Set(key string, value any) {
	if o.entries == nil {
		o.entries = sequencedmap.New[string, any]()
	}
	o.entries.Set(key, value)
}

func (o *Object) Get(key string) (any, bool) {
	if o == nil || o.entries == nil {
		return nil, false
	}
	return o.entries.Get(key)
}

func (o *Object) Len() int {
	if o == nil || o.entries == nil {
		return 0
	}
	return o.entries.Len()
}

func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for k := range o.All() {
		keys = append(keys, k)
	}
	return keys
}

func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if o == nil || o.entries == nil {
			return
		}
		for k, v := range o.entries.All() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// ToMap returns a plain map, recursively converting nested objects.
// Ordering is lost.
func (o *Object) ToMap() map[string]any {
	if o == nil {
		return nil
	}
	m := make(map[string]any, o.Len())
	for k, v := range o.All() {
		m[k] = plain(v)
	}
	return m
}

func plain(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range o.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *Object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, v := range o.All() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		val := &yaml.Node{}
		if err := val.Encode(v); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}
