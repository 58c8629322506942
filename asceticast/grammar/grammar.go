package grammar

import (
	"context"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/krew-solutions/ascetic-ast-go/asceticast/ast"
)

type Rule struct {
	Name    string
	Body    Expression
	defined fieldSet
}

func NewRule(name string, body Expression) Rule {
	return Rule{Name: name, Body: body}
}

type Grammar struct {
	start string
	order []string
	rules map[string]Rule
}

// New builds a grammar whose first rule is the start rule.
func New(rules ...Rule) (*Grammar, error) {
	if len(rules) == 0 {
		return nil, ErrNoRules
	}
	g := &Grammar{
		start: rules[0].Name,
		rules: make(map[string]Rule, len(rules)),
	}
	for _, r := range rules {
		if _, ok := g.rules[r.Name]; ok {
			return nil, errors.Wrapf(ErrDuplicateRule, "%q", r.Name)
		}
		r.defined = fieldSet{}
		r.Body.fields(&r.defined)
		g.rules[r.Name] = r
		g.order = append(g.order, r.Name)
	}
	return g, nil
}

func MustNew(rules ...Rule) *Grammar {
	g, err := New(rules...)
	if err != nil {
		panic(err)
	}
	return g
}

// Rules returns the rule names in declaration order.
func (g *Grammar) Rules() []string {
	return append([]string(nil), g.order...)
}

// Parse evaluates the start rule against text.
func (g *Grammar) Parse(ctx context.Context, text string, opts ...Option) (any, error) {
	return g.ParseRule(ctx, g.start, text, opts...)
}

// ParseRule evaluates the named rule against text. The result is the rule's
// *ast.Node when the rule stored any field, its plain value otherwise.
func (g *Grammar) ParseRule(ctx context.Context, rule, text string, opts ...Option) (any, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &parseContext{
		ctx:     ctx,
		grammar: g,
		cfg:     cfg,
		text:    text,
		node:    ast.New(),
	}
	v, err := c.parseRule(rule)
	if err != nil {
		return nil, err
	}
	if cfg.RequireEOF {
		if _, err := (eof{}).parse(c); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (g *Grammar) String() string {
	var b strings.Builder
	for _, name := range g.order {
		b.WriteString(name)
		b.WriteString(" = ")
		b.WriteString(g.rules[name].Body.String())
		b.WriteString(" ;\n")
	}
	return b.String()
}

// fieldSet lists the field names a rule body may store, in first-seen order.
type fieldSet struct {
	scalars []string
	lists   []string
}

func (f *fieldSet) addScalar(name string) {
	if !slices.Contains(f.scalars, name) {
		f.scalars = append(f.scalars, name)
	}
}

func (f *fieldSet) addList(name string) {
	if !slices.Contains(f.lists, name) {
		f.lists = append(f.lists, name)
	}
}
