package ast

const frozenAttr = "frozen"

// Attr returns the node's own attribute called name. Attributes are the
// node's declared slots, unrelated to its fields.
func (n *Node) Attr(name string) (any, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets an attribute of the node. Once the node is frozen only
// attributes that already exist may be set.
func (n *Node) SetAttr(name string, value any) error {
	if _, ok := n.attrs[name]; !ok && n.Frozen() {
		return &AttributeError{Type: "Node", Name: name}
	}
	if n.attrs == nil {
		n.attrs = map[string]any{frozenAttr: false}
	}
	n.attrs[name] = value
	return nil
}

// Frozen reports whether new attributes are rejected.
func (n *Node) Frozen() bool {
	frozen, _ := n.attrs[frozenAttr].(bool)
	return frozen
}
