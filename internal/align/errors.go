package align

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStrategy is returned for a merge selector outside Strategies().
	ErrUnknownStrategy = errors.New("align: unknown merge strategy")
	// ErrInvalidRule marks a malformed merge rule table.
	ErrInvalidRule = errors.New("align: invalid merge rule")
	// ErrInvalidWeight marks a cost tunable outside its allowed range.
	ErrInvalidWeight = errors.New("align: invalid cost weight")
)

// RuleError points at the offending entry of a rule table.
type RuleError struct {
	Index   int
	Field   string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("align: rule %d: %s: %s", e.Index, e.Field, e.Message)
}

func (e *RuleError) Unwrap() error { return ErrInvalidRule }
