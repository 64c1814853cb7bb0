// Package diagnostic collects structured warnings and errors emitted while
// resolving declarations, so a batch run can report per-declaration issues
// without aborting the whole invocation.
package diagnostic

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Category classifies diagnostics for filtering.
type Category string

const (
	CategoryTypeUnsupported Category = "type-unsupported"
	CategoryFileAnalysis    Category = "file-analysis"
	CategoryResolution      Category = "resolution"
	CategoryConfigInvalid   Category = "config-invalid"
	CategoryDepthExceeded   Category = "depth-exceeded"
)

// Diagnostic represents one structured message.
type Diagnostic struct {
	Severity Severity
	Category Category
	File     string // source file path, "" when unknown
	Line     int    // 1-based, 0 when unknown
	Message  string
	Hint     string // optional suggestion
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	var sb strings.Builder
	if d.File != "" {
		sb.WriteString(d.File)
		if d.Line > 0 {
			fmt.Fprintf(&sb, ":%d", d.Line)
		}
		sb.WriteString(" - ")
	}
	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")
	if d.Category != "" {
		fmt.Fprintf(&sb, "[%s] ", d.Category)
	}
	sb.WriteString(d.Message)
	if d.Hint != "" {
		sb.WriteString("\n  hint: ")
		sb.WriteString(d.Hint)
	}
	return sb.String()
}

// Collector accumulates diagnostics during a resolution run. A nil Collector
// is safe to use; all methods are no-ops on nil.
type Collector struct {
	diagnostics []Diagnostic
	strict      bool // warnings become errors
	quiet       bool // suppress warnings and infos
}

// NewCollector creates a collector. In strict mode, warnings are recorded as
// errors; in quiet mode, warnings and infos are dropped.
func NewCollector(strict, quiet bool) *Collector {
	return &Collector{strict: strict, quiet: quiet}
}

// Warn records a warning.
func (c *Collector) Warn(category Category, file string, line int, message string) {
	c.warn(category, file, line, message, "")
}

// WarnWithHint records a warning with a fix suggestion.
func (c *Collector) WarnWithHint(category Category, file string, line int, message, hint string) {
	c.warn(category, file, line, message, hint)
}

func (c *Collector) warn(category Category, file string, line int, message, hint string) {
	if c == nil || c.quiet {
		return
	}
	sev := SeverityWarning
	if c.strict {
		sev = SeverityError
	}
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Severity: sev,
		Category: category,
		File:     file,
		Line:     line,
		Message:  message,
		Hint:     hint,
	})
}

// Error records an error.
func (c *Collector) Error(category Category, file string, line int, message string) {
	if c == nil {
		return
	}
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Severity: SeverityError,
		Category: category,
		File:     file,
		Line:     line,
		Message:  message,
	})
}

// Info records an informational message.
func (c *Collector) Info(category Category, file string, line int, message string) {
	if c == nil || c.quiet {
		return
	}
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Severity: SeverityInfo,
		Category: category,
		File:     file,
		Line:     line,
		Message:  message,
	})
}

// Diagnostics returns everything collected so far.
func (c *Collector) Diagnostics() []Diagnostic {
	if c == nil {
		return nil
	}
	return c.diagnostics
}

// HasErrors reports whether any error-level diagnostics exist.
func (c *Collector) HasErrors() bool {
	return c.count(SeverityError) > 0
}

// ErrorCount returns the number of error diagnostics.
func (c *Collector) ErrorCount() int { return c.count(SeverityError) }

// WarningCount returns the number of warning diagnostics.
func (c *Collector) WarningCount() int { return c.count(SeverityWarning) }

func (c *Collector) count(sev Severity) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, d := range c.diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// FormatAll formats all diagnostics, one per line.
func (c *Collector) FormatAll() string {
	if c == nil || len(c.diagnostics) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, d := range c.diagnostics {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a line like "1 error(s), 2 warning(s)".
func (c *Collector) Summary() string {
	if c == nil {
		return ""
	}
	var parts []string
	if n := c.ErrorCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", n))
	}
	if n := c.WarningCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", n))
	}
	if len(parts) == 0 {
		return "no issues"
	}
	return strings.Join(parts, ", ")
}
