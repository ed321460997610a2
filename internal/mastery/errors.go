package mastery

import "fmt"

// InputError reports a rejected update input. The record is never
// mutated when one is returned.
type InputError struct {
	Field string
	Msg   string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}
