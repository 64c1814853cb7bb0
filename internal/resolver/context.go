package resolver

import (
	"sort"
	"strings"

	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

// GenericContext tracks which generic parameter names are currently open
// (unbound) versus substituted with concrete arguments, so the resolver can
// tell a true type-parameter reference from a same-named but unrelated type.
//
// Bindings are organized in frames: one frame is pushed per generic
// instantiation and popped when its subtree is resolved, so nested generic
// types do not leak bindings into sibling branches. A nil entry marks a name
// as known-but-free.
type GenericContext struct {
	frames []map[string]*typeinfo.TypeInfo
}

// NewGenericContext returns a fresh, empty context.
func NewGenericContext() *GenericContext {
	return &GenericContext{}
}

// Push opens a new binding frame.
func (c *GenericContext) Push() {
	c.frames = append(c.frames, make(map[string]*typeinfo.TypeInfo))
}

// Pop discards the innermost frame. Popping an empty context is a no-op.
func (c *GenericContext) Pop() {
	if len(c.frames) > 0 {
		c.frames = c.frames[:len(c.frames)-1]
	}
}

// Bind substitutes name with a concrete type in the innermost frame.
func (c *GenericContext) Bind(name string, t typeinfo.TypeInfo) {
	if len(c.frames) == 0 {
		c.Push()
	}
	c.frames[len(c.frames)-1][name] = &t
}

// MarkFree records name as an open parameter in the innermost frame,
// shadowing any outer binding of the same name.
func (c *GenericContext) MarkFree(name string) {
	if len(c.frames) == 0 {
		c.Push()
	}
	c.frames[len(c.frames)-1][name] = nil
}

// Lookup returns the binding for name. The bool reports whether the name is
// known at all; a nil TypeInfo with true means the name is open.
func (c *GenericContext) Lookup(name string) (*typeinfo.TypeInfo, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if t, ok := c.frames[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

// IsFree reports whether name is known and currently unbound.
func (c *GenericContext) IsFree(name string) bool {
	t, ok := c.Lookup(name)
	return ok && t == nil
}

// Fingerprint returns a canonical form of the visible bindings. Inner frames
// shadow outer ones. Used as the context half of resolution cache keys.
func (c *GenericContext) Fingerprint() string {
	visible := make(map[string]*typeinfo.TypeInfo)
	for _, frame := range c.frames {
		for name, t := range frame {
			visible[name] = t
		}
	}
	if len(visible) == 0 {
		return ""
	}
	names := make([]string, 0, len(visible))
	for name := range visible {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		if t := visible[name]; t != nil {
			sb.WriteString(t.Fingerprint())
		} else {
			sb.WriteString("<free>")
		}
	}
	return sb.String()
}

// Reset discards all frames, returning the context to empty. Used between
// independent top-level resolution calls so no state survives across runs.
func (c *GenericContext) Reset() {
	c.frames = nil
}
