// Package grammar is a small PEG-style rule engine that builds ast.Node
// results.
//
// Each rule invocation gets a fresh node. Named elements store their value in
// it with Assign (so a name matched twice collects both values), NamedList
// elements with StoreAsSequence. Choice, Optional and Closure try their
// operand on a copy of the node and fall back to the original on failure, so
// abandoned alternatives leave nothing behind. When a rule succeeds, every
// field name its body could have stored is seeded with Define, giving results
// a stable shape whether or not optional parts matched.
//
//	g := grammar.MustNew(
//	    grammar.NewRule("call", grammar.Seq(
//	        grammar.Named("name", grammar.Pattern(`\w+`)),
//	        grammar.Token("("),
//	        grammar.Optional(grammar.Seq(
//	            grammar.Named("arg", grammar.Pattern(`\w+`)),
//	            grammar.Closure(grammar.Seq(grammar.Token(","), grammar.Named("arg", grammar.Pattern(`\w+`)))),
//	        )),
//	        grammar.Token(")"),
//	    )),
//	)
//	result, err := g.Parse(ctx, "f(a, b)")  // Node{"name": f, "arg": [a b]}
package grammar
