package ast

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrKeyNotFound = errors.New("ast: key not found")

// AttributeError reports an attempt to introduce a new attribute on a frozen
// node.
type AttributeError struct {
	Type string
	Name string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s attributes are fixed. Cannot set attribute %s.", e.Type, e.Name)
}
