package ast

import (
	"iter"
	"sort"
)

// Source feeds key/value pairs into a node. Pairs are merged in order, each
// through Assign.
type Source interface {
	Pairs() iter.Seq2[string, any]
}

// Pair is a single key/value entry. A Pair is itself a Source, which makes it
// usable for inline named values: ast.New(src, ast.KV("name", v)).
type Pair struct {
	Key   string
	Value any
}

func KV(key string, value any) Pair {
	return Pair{Key: key, Value: value}
}

func (p Pair) Pairs() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		yield(p.Key, p.Value)
	}
}

// PairList is an ordered sequence of pairs.
type PairList []Pair

func Pairs(pairs ...Pair) PairList {
	return pairs
}

func (l PairList) Pairs() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, p := range l {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Map adapts a Go map. Go maps are unordered, so keys are fed in sorted order.
type Map map[string]any

func (m Map) Pairs() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}
