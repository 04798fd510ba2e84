package selector

import (
	"errors"
	"fmt"
)

// DuplicatePartError is returned when a fragment kind that may occur only
// once per selector (element or pseudo-element) is added a second time.
type DuplicatePartError struct {
	Part Part // offending fragment kind
}

func (e *DuplicatePartError) Error() string {
	return fmt.Sprintf("selector: %s should not occur more than once inside the selector", e.Part)
}

// OrderError is returned when a fragment is added out of grammar order:
// element, id, class, attribute, pseudo-class, pseudo-element.
type OrderError struct {
	Last Part // kind of the most recently added fragment
	Next Part // kind of the rejected fragment
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("selector: %s should not occur after %s", e.Next, e.Last)
}

// IsDuplicatePart reports whether err is (or wraps) a DuplicatePartError.
func IsDuplicatePart(err error) bool {
	var dup *DuplicatePartError
	return errors.As(err, &dup)
}

// IsOrderViolation reports whether err is (or wraps) an OrderError.
func IsOrderViolation(err error) bool {
	var ord *OrderError
	return errors.As(err, &ord)
}
