package grammar

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var (
	ErrNoRules        = errors.New("grammar: no rules")
	ErrDuplicateRule  = errors.New("grammar: duplicate rule")
	ErrUnknownRule    = errors.New("grammar: unknown rule")
	ErrInvalidPattern = errors.New("grammar: invalid pattern")
)

// FailedParse reports input that did not match. Line and Column are 1-based.
type FailedParse struct {
	Pos      int
	Line     int
	Column   int
	Rule     string
	Expected string
	// Cause aggregates the failures of the alternatives of a choice.
	Cause error
}

func (e *FailedParse) Error() string {
	msg := fmt.Sprintf("%d:%d: expecting %s", e.Line, e.Column, e.Expected)
	if e.Rule != "" {
		msg = fmt.Sprintf("%s (in rule %s)", msg, e.Rule)
	}
	return msg
}

func (e *FailedParse) Unwrap() error {
	return e.Cause
}

// farthest picks the failure that got deepest into the input; the first one
// wins ties. It returns nil when errs holds no parse failure.
func farthest(errs *multierror.Error) *FailedParse {
	var best *FailedParse
	if errs == nil {
		return nil
	}
	for _, err := range errs.Errors {
		var fp *FailedParse
		if errors.As(err, &fp) && (best == nil || fp.Pos > best.Pos) {
			best = fp
		}
	}
	return best
}

func isFailedParse(err error) bool {
	var fp *FailedParse
	return errors.As(err, &fp)
}
