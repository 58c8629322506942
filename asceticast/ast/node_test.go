package ast

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"syreclabs.com/go/faker"
)

func randomKey(i int) string {
	return fmt.Sprintf("%s%d", faker.Lorem().Word(), i)
}

func TestNode_SingleStoreIsScalar(t *testing.T) {
	for i := 0; i < 20; i++ {
		key, value := randomKey(i), faker.Lorem().Word()
		n := New()
		n.Store(key, value, false)
		assert.Equal(t, value, n.Get(key))
		assert.Equal(t, value, n.Lookup(key).Unwrap())
	}
}

func TestNode_SecondStorePromotesToSequence(t *testing.T) {
	for i := 0; i < 20; i++ {
		key := randomKey(i)
		v1, v2 := faker.Lorem().Word(), faker.Lorem().Word()
		n := New()
		n.Store(key, v1, false)
		n.Store(key, v2, false)
		assert.Equal(t, []any{v1, v2}, n.Get(key))
	}
}

func TestNode_FurtherStoresAppend(t *testing.T) {
	n := New()
	n.Assign("arg", 1)
	n.Assign("arg", 2)
	n.Assign("arg", 3)
	assert.Equal(t, []any{1, 2, 3}, n.Get("arg"))
}

func TestNode_StoreAsSequence(t *testing.T) {
	t.Run("first store yields one element sequence", func(t *testing.T) {
		n := New()
		n.StoreAsSequence("opt", "x")
		assert.Equal(t, []any{"x"}, n.Get("opt"))
	})

	t.Run("flag only affects the first store", func(t *testing.T) {
		n := New()
		n.StoreAsSequence("opt", "x")
		n.Assign("opt", "y")
		n.StoreAsSequence("opt", "z")
		assert.Equal(t, []any{"x", "y", "z"}, n.Get("opt"))
	})

	t.Run("scalar then sequence store promotes once", func(t *testing.T) {
		n := New()
		n.Assign("opt", "x")
		n.StoreAsSequence("opt", "y")
		assert.Equal(t, []any{"x", "y"}, n.Get("opt"))
	})
}

func TestNode_AssignPromotesInsteadOfOverwriting(t *testing.T) {
	n := New(KV("name", "first"))
	n.Assign("name", "second")
	assert.Equal(t, []any{"first", "second"}, n.Get("name"))

	require.NoError(t, n.Delete("name"))
	n.Assign("name", "third")
	assert.Equal(t, "third", n.Get("name"))
}

func TestNode_StoredSequenceValueIsExtended(t *testing.T) {
	n := New()
	n.Assign("items", []any{"a"})
	n.Assign("items", "b")
	assert.Equal(t, []any{"a", "b"}, n.Get("items"))
}

func TestNode_NilCountsAsNoPreviousValue(t *testing.T) {
	n := New()
	n.Define([]string{"b"}, nil)
	n.Assign("b", 1)
	assert.Equal(t, 1, n.Get("b"))
}

func TestNode_LookupAbsent(t *testing.T) {
	n := New(KV("present", 1))
	assert.True(t, n.Lookup("absent").IsNothing())
	assert.Nil(t, n.Get("absent"))
	assert.False(t, n.Has("absent"))
	assert.True(t, n.Has("present"))
}

func TestNode_InterfaceNamesAreRenamed(t *testing.T) {
	t.Run("stored under renamed key and reachable by logical name", func(t *testing.T) {
		n := New()
		n.Assign("copy", 1)
		assert.Equal(t, []string{"copy_"}, n.Keys())
		assert.Equal(t, 1, n.Get("copy"))
		assert.Equal(t, 1, n.Get("copy_"))
		assert.True(t, n.Has("copy"))
	})

	t.Run("repeated fields promote under the renamed key", func(t *testing.T) {
		n := New()
		n.Assign("items", 1)
		n.Assign("items", 2)
		assert.Equal(t, []string{"items_"}, n.Keys())
		assert.Equal(t, []any{1, 2}, n.Get("items"))
	})

	t.Run("ordinary names are untouched", func(t *testing.T) {
		n := New()
		n.Assign("expr", 1)
		n.Assign("expr", 2)
		assert.Equal(t, []string{"expr"}, n.Keys())
	})

	t.Run("delete resolves the renamed key", func(t *testing.T) {
		n := New(KV("keys", 1))
		require.NoError(t, n.Delete("keys"))
		assert.Equal(t, 0, n.Len())
	})

	t.Run("parseinfo is not an interface name", func(t *testing.T) {
		n := New()
		n.SetParseInfo(ParseInfo{Rule: "start"})
		assert.Equal(t, []string{ParseInfoKey}, n.Keys())
	})
}

func TestNode_Define(t *testing.T) {
	t.Run("seeds absent keys", func(t *testing.T) {
		n := New()
		n.Define([]string{"b"}, []string{"a"})
		assert.Equal(t, []any{}, n.Get("a"))
		assert.Nil(t, n.Get("b"))
		assert.True(t, n.Has("b"))
		assert.Equal(t, []string{"a", "b"}, n.Keys())
	})

	t.Run("never overwrites", func(t *testing.T) {
		n := New()
		n.Define([]string{"b"}, []string{"a"})
		require.NoError(t, n.Delete("a"))
		n.Assign("a", 1)
		n.Define([]string{"b"}, []string{"a"})
		assert.Equal(t, 1, n.Get("a"))

		n.Assign("a", 2)
		n.Define([]string{"a"}, []string{"a"})
		assert.Equal(t, []any{1, 2}, n.Get("a"))
	})

	t.Run("list key seeded sequence accumulates", func(t *testing.T) {
		n := New()
		n.Define(nil, []string{"args"})
		n.Assign("args", 1)
		assert.Equal(t, []any{1}, n.Get("args"))
	})

	t.Run("uses safe keys", func(t *testing.T) {
		n := New()
		n.Define([]string{"get"}, []string{"values"})
		assert.Equal(t, []string{"values_", "get_"}, n.Keys())
	})
}

func TestNode_CopyIsIndependent(t *testing.T) {
	shared := New(KV("leaf", true))
	original := New(Pairs(KV("seq", 1), KV("seq", 2), KV("child", shared)))

	clone := original.Copy()
	assert.Equal(t, original.Keys(), clone.Keys())

	original.Assign("seq", 3)
	assert.Equal(t, []any{1, 2}, clone.Get("seq"))

	clone.Assign("seq", 4)
	clone.Assign("seq", 5)
	assert.Equal(t, []any{1, 2, 3}, original.Get("seq"))
	assert.Equal(t, []any{1, 2, 4, 5}, clone.Get("seq"))

	assert.Same(t, shared, clone.Get("child"))
	assert.True(t, clone.Frozen())
}

func TestNode_CopyDoesNotShareBackingArrays(t *testing.T) {
	seq := make([]any, 1, 8)
	seq[0] = "a"
	original := New(KV("seq", seq))

	clone := original.Copy()
	original.Assign("seq", "from original")
	clone.Assign("seq", "from clone")

	assert.Equal(t, []any{"a", "from original"}, original.Get("seq"))
	assert.Equal(t, []any{"a", "from clone"}, clone.Get("seq"))
}

func TestNode_Delete(t *testing.T) {
	n := New(KV("a", 1), KV("b", 2))
	require.NoError(t, n.Delete("a"))
	assert.True(t, n.Lookup("a").IsNothing())
	assert.Equal(t, []string{"b"}, n.Keys())

	err := n.Delete("a")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestNew_MergesSourcesLeftToRight(t *testing.T) {
	n := New(
		Map{"b": 1, "a": 1},
		Pairs(KV("c", 1), KV("a", 2)),
		New(KV("b", 2)),
		KV("a", 3),
	)
	assert.Equal(t, []string{"a", "b", "c"}, n.Keys())
	assert.Equal(t, []any{1, 2, 3}, n.Get("a"))
	assert.Equal(t, []any{1, 2}, n.Get("b"))
	assert.Equal(t, 1, n.Get("c"))
}

func TestNode_OrderSurvivesPromotion(t *testing.T) {
	n := New()
	n.Assign("first", 1)
	n.Assign("second", 1)
	n.Assign("first", 2)
	assert.Equal(t, []string{"first", "second"}, n.Keys())
	assert.Equal(t, []any{[]any{1, 2}, 1}, n.Values())
	assert.Equal(t, []Pair{{"first", []any{1, 2}}, {"second", 1}}, n.Items())
}

func TestNode_SetParseInfo(t *testing.T) {
	pi := ParseInfo{Rule: "expr", Pos: 1, EndPos: 4}
	n := New(KV("op", "+"))
	n.SetParseInfo(pi)
	assert.Equal(t, pi, n.Get(ParseInfoKey))
	assert.Equal(t, []string{"op", ParseInfoKey}, n.Keys())
}

func TestNode_String(t *testing.T) {
	n := New(KV("a", 1), KV("b", "x"))
	assert.Equal(t, `Node{"a": 1, "b": x}`, n.String())
}

func TestIsList(t *testing.T) {
	assert.True(t, IsList([]any{}))
	assert.False(t, IsList([]string{"a"}))
	assert.False(t, IsList(nil))
}

func TestNode_ZeroValue(t *testing.T) {
	var n Node
	assert.Equal(t, 0, n.Len())
	assert.Nil(t, n.Get("a"))
	assert.False(t, n.Frozen())
	assert.ErrorIs(t, n.Delete("a"), ErrKeyNotFound)

	n.Assign("a", 1)
	n.Assign("a", 2)
	n.Define([]string{"b"}, []string{"c"})
	assert.Equal(t, []string{"a", "c", "b"}, n.Keys())
	assert.Equal(t, []any{1, 2}, n.Get("a"))
	require.NoError(t, n.SetAttr("extra", true))
}
