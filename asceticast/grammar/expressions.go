package grammar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Expression is an element of a rule body.
type Expression interface {
	parse(c *parseContext) (any, error)
	// fields collects the names the expression stores into the node of the
	// rule it belongs to.
	fields(f *fieldSet)
	fmt.Stringer
}

type token struct {
	literal string
}

// Token matches a literal string and yields it.
func Token(literal string) Expression {
	return token{literal: literal}
}

func (e token) parse(c *parseContext) (any, error) {
	c.skipWhitespace()
	end := c.pos + len(e.literal)
	if end <= len(c.text) {
		got := c.text[c.pos:end]
		if got == e.literal || (c.cfg.IgnoreCase && strings.EqualFold(got, e.literal)) {
			c.pos = end
			return e.literal, nil
		}
	}
	return nil, c.fail(e.String())
}

func (e token) fields(*fieldSet) {}

func (e token) String() string {
	return strconv.Quote(e.literal)
}

type pattern struct {
	source string
	re     *regexp.Regexp
}

// Pattern matches a regular expression at the current position and yields
// the matched text. It panics on an invalid expression; see CompilePattern.
func Pattern(expr string) Expression {
	p, err := CompilePattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func CompilePattern(expr string) (Expression, error) {
	re, err := regexp.Compile(`\A(?:` + expr + `)`)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPattern, "%s: %v", expr, err)
	}
	return pattern{source: expr, re: re}, nil
}

func (e pattern) parse(c *parseContext) (any, error) {
	c.skipWhitespace()
	loc := e.re.FindStringIndex(c.text[c.pos:])
	if loc == nil {
		return nil, c.fail(e.String())
	}
	matched := c.text[c.pos : c.pos+loc[1]]
	c.pos += loc[1]
	return matched, nil
}

func (e pattern) fields(*fieldSet) {}

func (e pattern) String() string {
	return "/" + e.source + "/"
}

type sequence struct {
	items []Expression
}

// Seq matches every item in order. It yields the non-nil item values as
// []any, or the value itself when there is only one.
func Seq(items ...Expression) Expression {
	return sequence{items: items}
}

func (e sequence) parse(c *parseContext) (any, error) {
	values := make([]any, 0, len(e.items))
	for _, item := range e.items {
		v, err := item.parse(c)
		if err != nil {
			return nil, err
		}
		if v != nil {
			values = append(values, v)
		}
	}
	switch len(values) {
	case 0:
		return nil, nil
	case 1:
		return values[0], nil
	default:
		return values, nil
	}
}

func (e sequence) fields(f *fieldSet) {
	for _, item := range e.items {
		item.fields(f)
	}
}

func (e sequence) String() string {
	return join(e.items, " ")
}

type choice struct {
	options []Expression
}

// Choice tries options in order and yields the first that matches. Each
// attempt works on a copy of the rule's node, so a failed option leaves no
// trace in it.
func Choice(options ...Expression) Expression {
	return choice{options: options}
}

func (e choice) parse(c *parseContext) (any, error) {
	var errs *multierror.Error
	for _, option := range e.options {
		v, err := c.attempt(option)
		if err == nil {
			return v, nil
		}
		if !isFailedParse(err) {
			return nil, err
		}
		errs = multierror.Append(errs, err)
	}
	far := farthest(errs)
	if far == nil {
		return nil, c.fail(e.String())
	}
	return nil, &FailedParse{
		Pos:      far.Pos,
		Line:     far.Line,
		Column:   far.Column,
		Rule:     far.Rule,
		Expected: far.Expected,
		Cause:    errs.ErrorOrNil(),
	}
}

func (e choice) fields(f *fieldSet) {
	for _, option := range e.options {
		option.fields(f)
	}
}

func (e choice) String() string {
	return "(" + join(e.options, " | ") + ")"
}

type optional struct {
	expr Expression
}

// Optional matches expr or nothing, yielding nil in the latter case.
func Optional(expr Expression) Expression {
	return optional{expr: expr}
}

func (e optional) parse(c *parseContext) (any, error) {
	v, err := c.attempt(e.expr)
	if err != nil && isFailedParse(err) {
		return nil, nil
	}
	return v, err
}

func (e optional) fields(f *fieldSet) {
	e.expr.fields(f)
}

func (e optional) String() string {
	return "[" + e.expr.String() + "]"
}

type closure struct {
	expr     Expression
	positive bool
}

// Closure matches expr zero or more times and yields the values as []any.
// Repetition stops at the first attempt that fails or consumes no input.
func Closure(expr Expression) Expression {
	return closure{expr: expr}
}

// PositiveClosure is Closure requiring at least one match.
func PositiveClosure(expr Expression) Expression {
	return closure{expr: expr, positive: true}
}

func (e closure) parse(c *parseContext) (any, error) {
	values := []any{}
	if e.positive {
		v, err := e.expr.parse(c)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	for {
		start, saved := c.pos, c.node
		v, err := c.attempt(e.expr)
		if err != nil {
			if isFailedParse(err) {
				return values, nil
			}
			return nil, err
		}
		if c.pos == start {
			c.node = saved
			return values, nil
		}
		values = append(values, v)
	}
}

func (e closure) fields(f *fieldSet) {
	e.expr.fields(f)
}

func (e closure) String() string {
	if e.positive {
		return "{" + e.expr.String() + "}+"
	}
	return "{" + e.expr.String() + "}*"
}

type named struct {
	name   string
	expr   Expression
	asList bool
}

// Named stores the value of expr in the rule's node under name, through
// Assign: a name matched twice collects both values.
func Named(name string, expr Expression) Expression {
	return named{name: name, expr: expr}
}

// NamedList is Named for fields that are always sequences, even after a
// single match.
func NamedList(name string, expr Expression) Expression {
	return named{name: name, expr: expr, asList: true}
}

func (e named) parse(c *parseContext) (any, error) {
	v, err := e.expr.parse(c)
	if err != nil {
		return nil, err
	}
	if e.asList {
		c.node.StoreAsSequence(e.name, v)
	} else {
		c.node.Assign(e.name, v)
	}
	return v, nil
}

func (e named) fields(f *fieldSet) {
	if e.asList {
		f.addList(e.name)
	} else {
		f.addScalar(e.name)
	}
	e.expr.fields(f)
}

func (e named) String() string {
	op := ":"
	if e.asList {
		op = "+:"
	}
	return e.name + op + e.expr.String()
}

type call struct {
	rule string
}

// Call invokes another rule by name. The called rule fills its own node.
func Call(rule string) Expression {
	return call{rule: rule}
}

func (e call) parse(c *parseContext) (any, error) {
	return c.parseRule(e.rule)
}

func (e call) fields(*fieldSet) {}

func (e call) String() string {
	return e.rule
}

type eof struct{}

// EOF matches the end of the input.
func EOF() Expression {
	return eof{}
}

func (e eof) parse(c *parseContext) (any, error) {
	c.skipWhitespace()
	if c.pos < len(c.text) {
		return nil, c.fail(e.String())
	}
	return nil, nil
}

func (e eof) fields(*fieldSet) {}

func (e eof) String() string {
	return "$"
}

func join(exprs []Expression, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}
