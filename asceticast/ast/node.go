package ast

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/speakeasy-api/openapi/sequencedmap"

	"github.com/krew-solutions/ascetic-ast-go/asceticast/option"
)

// Node is an ordered, string-keyed container of the values matched while a
// grammar rule is evaluated.
//
// Storing twice under the same key promotes the field to a sequence ([]any)
// holding every stored value in order; a single store keeps the scalar. Field
// names that collide with the node's own interface are renamed (see SafeKey).
//
// The zero value is an empty node that is not frozen; New returns a frozen
// one. A Node is not safe for concurrent use. Callers that explore an
// alternative whose result may be discarded must Copy the node first.
type Node struct {
	fields *sequencedmap.Map[string, any]
	attrs  map[string]any
}

// New builds a node by merging sources left to right through Assign, so a key
// present in two sources becomes a sequence rather than being overwritten.
// The node is frozen once the merge completes.
func New(sources ...Source) *Node {
	n := &Node{
		fields: sequencedmap.New[string, any](),
		attrs:  map[string]any{frozenAttr: false},
	}
	n.Update(sources...)
	n.attrs[frozenAttr] = true
	return n
}

// Update merges sources into the node through Assign.
func (n *Node) Update(sources ...Source) *Node {
	for _, src := range sources {
		for k, v := range src.Pairs() {
			n.Assign(k, v)
		}
	}
	return n
}

// Store merges value into the field named key:
//   - no previous value (or nil): value is stored as is, or as []any{value}
//     when asSequence is set;
//   - previous sequence: value is appended to it;
//   - previous scalar: the field becomes []any{previous, value}.
func (n *Node) Store(key string, value any, asSequence bool) *Node {
	key = SafeKey(key)
	fields := n.storage()
	previous, _ := fields.Get(key)
	switch prev := previous.(type) {
	case nil:
		if asSequence {
			fields.Set(key, []any{value})
		} else {
			fields.Set(key, value)
		}
	case []any:
		fields.Set(key, append(prev, value))
	default:
		fields.Set(key, []any{prev, value})
	}
	return n
}

// StoreAsSequence stores value so that even a first store yields a sequence.
func (n *Node) StoreAsSequence(key string, value any) *Node {
	return n.Store(key, value, true)
}

// Assign is the general field setter. It merges like Store and never
// overwrites: assigning to a field that already holds a value promotes it to
// a sequence. Delete the field first for a true overwrite.
func (n *Node) Assign(key string, value any) *Node {
	return n.Store(key, value, false)
}

// Lookup returns the value stored for key, trying the literal key first and
// then its safe form. Absent fields yield Nothing.
func (n *Node) Lookup(key string) option.Option[any] {
	if n.fields == nil {
		return option.Nothing[any]()
	}
	if v, ok := n.fields.Get(key); ok {
		return option.Some(v)
	}
	if v, ok := n.fields.Get(SafeKey(key)); ok {
		return option.Some(v)
	}
	return option.Nothing[any]()
}

// Get is the attribute-style read: the field value, or nil when absent.
func (n *Node) Get(key string) any {
	return n.Lookup(key).UnwrapOrZero()
}

func (n *Node) Has(key string) bool {
	return n.Lookup(key).IsSome()
}

// Delete removes the field named key.
func (n *Node) Delete(key string) error {
	key = SafeKey(key)
	if !n.has(key) {
		return errors.Wrapf(ErrKeyNotFound, "%q", key)
	}
	n.fields.Delete(key)
	return nil
}

// Define guarantees the presence of expected fields: every list key missing
// from the node is seeded with an empty sequence, then every scalar key still
// missing is seeded with nil. Existing fields are left untouched.
func (n *Node) Define(scalarKeys, listKeys []string) {
	for _, key := range listKeys {
		key = SafeKey(key)
		if !n.has(key) {
			n.storage().Set(key, []any{})
		}
	}
	for _, key := range scalarKeys {
		key = SafeKey(key)
		if !n.has(key) {
			n.storage().Set(key, nil)
		}
	}
}

// Copy returns an independent node with the same fields in the same order.
// Sequences are copied so that later stores on either node do not reach the
// other; their elements, like all other values, are shared.
func (n *Node) Copy() *Node {
	pairs := make(PairList, 0, n.Len())
	for k, v := range n.All() {
		if seq, ok := v.([]any); ok {
			v = slices.Clone(seq)
		}
		pairs = append(pairs, Pair{Key: k, Value: v})
	}
	return New(pairs)
}

// SetParseInfo stores parse position metadata under ParseInfoKey.
func (n *Node) SetParseInfo(value any) {
	n.Assign(ParseInfoKey, value)
}

func (n *Node) Len() int {
	if n.fields == nil {
		return 0
	}
	return n.fields.Len()
}

// Keys returns the physical keys in insertion order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, n.Len())
	for k := range n.All() {
		keys = append(keys, k)
	}
	return keys
}

func (n *Node) Values() []any {
	values := make([]any, 0, n.Len())
	for _, v := range n.All() {
		values = append(values, v)
	}
	return values
}

func (n *Node) Items() []Pair {
	items := make([]Pair, 0, n.Len())
	for k, v := range n.All() {
		items = append(items, Pair{Key: k, Value: v})
	}
	return items
}

// All iterates fields in insertion order under their physical keys.
func (n *Node) All() iter.Seq2[string, any] {
	if n.fields == nil {
		return func(func(string, any) bool) {}
	}
	return n.fields.All()
}

// Pairs makes a node usable as a Source for another node.
func (n *Node) Pairs() iter.Seq2[string, any] {
	return n.All()
}

func (n *Node) String() string {
	var b strings.Builder
	b.WriteString("Node{")
	i := 0
	for k, v := range n.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		i++
		fmt.Fprintf(&b, "%q: %v", k, v)
	}
	b.WriteString("}")
	return b.String()
}

// IsList reports whether v is a sequence as far as promotion is concerned.
func IsList(v any) bool {
	_, ok := v.([]any)
	return ok
}

func (n *Node) has(physicalKey string) bool {
	if n.fields == nil {
		return false
	}
	_, ok := n.fields.Get(physicalKey)
	return ok
}

func (n *Node) storage() *sequencedmap.Map[string, any] {
	if n.fields == nil {
		n.fields = sequencedmap.New[string, any]()
	}
	return n.fields
}
