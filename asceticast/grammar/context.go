package grammar

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/krew-solutions/ascetic-ast-go/asceticast/ast"
)

type parseContext struct {
	ctx     context.Context
	grammar *Grammar
	cfg     Config
	text    string
	pos     int
	node    *ast.Node
	rule    string
}

func (c *parseContext) parseRule(name string) (any, error) {
	if err := c.ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "parse interrupted")
	}
	rule, ok := c.grammar.rules[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownRule, "%q", name)
	}

	outerNode, outerRule := c.node, c.rule
	c.node, c.rule = ast.New(), name
	defer func() {
		c.node, c.rule = outerNode, outerRule
	}()

	c.skipWhitespace()
	start := c.pos
	c.trace("enter", name, start)

	v, err := rule.Body.parse(c)
	if err != nil {
		c.trace("fail", name, c.pos)
		return nil, err
	}
	c.trace("match", name, c.pos)

	node := c.node
	node.Define(rule.defined.scalars, rule.defined.lists)
	if node.Len() == 0 {
		return v, nil
	}
	if c.cfg.ParseInfo {
		node.SetParseInfo(ast.ParseInfo{
			Rule:    name,
			Pos:     start,
			EndPos:  c.pos,
			Line:    c.line(start),
			EndLine: c.line(c.pos),
		})
	}
	return node, nil
}

// attempt evaluates expr against a copy of the current node. On failure the
// original node and position are restored.
func (c *parseContext) attempt(expr Expression) (any, error) {
	pos, saved := c.pos, c.node
	c.node = saved.Copy()
	v, err := expr.parse(c)
	if err != nil {
		c.pos, c.node = pos, saved
		return nil, err
	}
	return v, nil
}

func (c *parseContext) skipWhitespace() {
	if c.cfg.Whitespace == nil {
		return
	}
	if loc := c.cfg.Whitespace.FindStringIndex(c.text[c.pos:]); loc != nil {
		c.pos += loc[1]
	}
}

func (c *parseContext) fail(expected string) error {
	return &FailedParse{
		Pos:      c.pos,
		Line:     c.line(c.pos) + 1,
		Column:   c.column(c.pos) + 1,
		Rule:     c.rule,
		Expected: expected,
	}
}

// line is zero-based.
func (c *parseContext) line(pos int) int {
	return strings.Count(c.text[:pos], "\n")
}

// column is zero-based, in bytes.
func (c *parseContext) column(pos int) int {
	return pos - (strings.LastIndexByte(c.text[:pos], '\n') + 1)
}

func (c *parseContext) trace(event, rule string, pos int) {
	if !c.cfg.Trace {
		return
	}
	c.cfg.Logger.DebugContext(c.ctx, "rule "+event, "rule", rule, "pos", pos, "line", c.line(pos)+1)
}
