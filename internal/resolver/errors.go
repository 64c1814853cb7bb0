package resolver

import (
	"errors"
	"fmt"
)

// ErrMaxDepthExceeded is returned when recursive resolution exceeds the
// configured maximum depth. Fatal for the enclosing resolution call.
var ErrMaxDepthExceeded = errors.New("max type resolution depth exceeded")

// ErrConditionalDepthExceeded is returned when nested conditional evaluation
// exceeds its own dedicated depth budget.
var ErrConditionalDepthExceeded = errors.New("max conditional type evaluation depth exceeded")

// ErrUtilityDepthExceeded is returned when utility type expansion exceeds the
// configured maximum depth.
var ErrUtilityDepthExceeded = errors.New("max utility type expansion depth exceeded")

// InvalidUtilityTargetError reports a utility type applied to an operand it
// cannot transform, e.g. Pick over a non-object. Propagated up unchanged.
type InvalidUtilityTargetError struct {
	Utility string
	Reason  string
}

func (e *InvalidUtilityTargetError) Error() string {
	return fmt.Sprintf("%s %s", e.Utility, e.Reason)
}

// HookError reports that a hook callback rejected a resolution. The phase
// names which extension point failed.
type HookError struct {
	Phase string
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook failed: %v", e.Phase, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }
