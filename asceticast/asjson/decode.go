package asjson

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrUnexpectedToken = errors.New("unexpected token")

// Decode parses JSON keeping object key order. Objects decode to *Object,
// arrays to []any and numbers to json.Number.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.Wrap(ErrUnexpectedToken, "trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read JSON token")
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, errors.Wrap(err, "unable to read object key")
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.Wrapf(ErrUnexpectedToken, "object key %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, errors.Wrap(err, "unterminated object")
			}
			return obj, nil
		case '[':
			list := []any{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, errors.Wrap(err, "unterminated array")
			}
			return list, nil
		default:
			return nil, errors.Wrapf(ErrUnexpectedToken, "delimiter %q", t)
		}
	default:
		return t, nil
	}
}

// DecodeYAML parses a YAML document keeping mapping key order, with the same
// result shapes as Decode except that numbers keep their YAML-resolved types.
func DecodeYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unable to parse YAML")
	}
	return fromYAML(&doc)
}

func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key any
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, errors.Wrap(err, "unable to decode mapping key")
			}
			val, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(Key(key), val)
		}
		return obj, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		return list, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, errors.Wrap(err, "unable to decode scalar")
		}
		return v, nil
	}
}
