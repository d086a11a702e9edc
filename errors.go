package ubermock

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoCalls       = errors.New("No calls recorded")
	ErrMethodEmpty   = errors.New("Missing method name")
	ErrUnsupported   = errors.New("Unsupported fixture data type")
	ErrNotConfigured = errors.New("No response configured")
)

// AssertionError describes why recorded calls did not match an expectation.
type AssertionError struct {
	Method   string
	Expected int // expected call count, -1 when not checked
	Invoked  int

	Missing  []string
	Extra    []string
	Mismatch []string
}

func (e *AssertionError) Error() string {
	var parts []string

	if e.Expected >= 0 && e.Expected != e.Invoked {
		parts = append(parts, fmt.Sprintf("expected %d call(s), got %d", e.Expected, e.Invoked))
	}
	if len(e.Missing) > 0 {
		parts = append(parts, "missing params: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, "unexpected params: "+strings.Join(e.Extra, ", "))
	}
	if len(e.Mismatch) > 0 {
		parts = append(parts, "mismatched params: "+strings.Join(e.Mismatch, ", "))
	}

	return fmt.Sprintf("%s: %s", e.Method, strings.Join(parts, "; "))
}

func (e *AssertionError) empty() bool {
	return (e.Expected < 0 || e.Expected == e.Invoked) &&
		len(e.Missing) == 0 && len(e.Extra) == 0 && len(e.Mismatch) == 0
}
