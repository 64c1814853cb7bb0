package resolver

import (
	"github.com/fluentgen/fluentgen/internal/handle"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

// Hooks are optional callbacks invoked at the resolver's extension points.
// Each receives the current best-effort result and may return a replacement
// or an error; an error aborts the enclosing resolution wrapped in a
// HookError naming the phase.
type Hooks struct {
	// BeforeResolve runs before a top-level declaration is resolved.
	BeforeResolve func(name string, h handle.Type) error
	// AfterResolve runs after a top-level declaration resolved successfully
	// and may replace the result.
	AfterResolve func(name string, info typeinfo.TypeInfo) (typeinfo.TypeInfo, error)
	// OnConditional runs after a conditional type was manually evaluated.
	OnConditional func(info typeinfo.TypeInfo) (typeinfo.TypeInfo, error)
	// OnUtility runs after a utility type was expanded.
	OnUtility func(info typeinfo.TypeInfo) (typeinfo.TypeInfo, error)
}

const (
	phaseBeforeResolve = "before-resolve"
	phaseAfterResolve  = "after-resolve"
	phaseConditional   = "conditional"
	phaseUtility       = "utility"
)

// applyReplacementHook runs a replace-or-error hook, wrapping failures with
// the phase name.
func applyReplacementHook(phase string, hook func(typeinfo.TypeInfo) (typeinfo.TypeInfo, error), info typeinfo.TypeInfo) (typeinfo.TypeInfo, error) {
	if hook == nil {
		return info, nil
	}
	replaced, err := hook(info)
	if err != nil {
		return typeinfo.TypeInfo{}, &HookError{Phase: phase, Err: err}
	}
	return replaced, nil
}
