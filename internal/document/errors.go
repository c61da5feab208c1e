package document

import (
	"errors"
	"fmt"

	"github.com/gerunddev/granite/internal/ast"
)

var (
	// ErrNoCheckbox is returned when toggling an item that is not a task.
	ErrNoCheckbox = errors.New("list item has no checkbox")

	// ErrStale is returned when a checkbox was read from another parse or
	// another block than the one being edited.
	ErrStale = errors.New("checkbox does not belong to this block")

	// ErrSourceMismatch is returned when a tree is converted against a
	// source it was not built from.
	ErrSourceMismatch = errors.New("tree was built from a different source")
)

// UnsupportedKindError reports an element the converter has no rule for.
// It means the parser configuration and the converter are out of sync.
type UnsupportedKindError struct {
	Kind   ast.Kind
	Offset int
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported element %s at offset %d", e.Kind, e.Offset)
}
