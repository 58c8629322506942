// Package ast provides Node, the container a grammar rule fills with the
// values its named elements match.
//
// # Merge on write
//
// Every store goes through the same rule: the first value under a key is kept
// as a scalar, a second store turns the field into a sequence ([]any) and
// later stores append to it.
//
//	n := ast.New()
//	n.Assign("arg", "a")           // arg: "a"
//	n.Assign("arg", "b")           // arg: ["a", "b"]
//	n.StoreAsSequence("opt", "x")  // opt: ["x"]
//
// Assign never overwrites. Delete a field before assigning when a plain
// replacement is wanted.
//
// # Safe keys
//
// A field whose name is one of the node's own operation names ("copy",
// "items", "keys", ...) is stored under that name suffixed with "_" until it
// no longer collides. Lookup, Get, Has and Delete apply the same renaming, so
// the field stays reachable under its logical name.
//
// # Forking
//
// Copy returns a node with its own sequences. A backtracking parser copies
// the node before trying an alternative and keeps the original if the
// alternative fails.
package ast
