package diagnostic

import (
	"strings"
	"testing"
)

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityWarning,
		Category: CategoryTypeUnsupported,
		File:     "src/user.ts",
		Line:     10,
		Message:  "mapped type is not fully supported",
		Hint:     "declare the properties explicitly",
	}

	s := d.String()
	if !strings.Contains(s, "src/user.ts:10") {
		t.Errorf("expected file:line, got %q", s)
	}
	if !strings.Contains(s, "warning") {
		t.Errorf("expected severity, got %q", s)
	}
	if !strings.Contains(s, "[type-unsupported]") {
		t.Errorf("expected category, got %q", s)
	}
	if !strings.Contains(s, "hint:") {
		t.Errorf("expected hint, got %q", s)
	}
}

func TestDiagnosticStringWithoutLocation(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Category: CategoryConfigInvalid, Message: "bad config"}
	s := d.String()
	if strings.Contains(s, ":0") {
		t.Errorf("unknown location must not render, got %q", s)
	}
	if !strings.HasPrefix(s, "error:") {
		t.Errorf("expected severity prefix, got %q", s)
	}
}

func TestCollectorWarnAndError(t *testing.T) {
	c := NewCollector(false, false)
	c.Warn(CategoryResolution, "test.ts", 5, "could not resolve")
	c.Error(CategoryConfigInvalid, "", 0, "missing field")

	if c.WarningCount() != 1 {
		t.Errorf("expected 1 warning, got %d", c.WarningCount())
	}
	if c.ErrorCount() != 1 {
		t.Errorf("expected 1 error, got %d", c.ErrorCount())
	}
	if !c.HasErrors() {
		t.Error("expected HasErrors")
	}
}

func TestCollectorStrictMode(t *testing.T) {
	c := NewCollector(true, false)
	c.Warn(CategoryTypeUnsupported, "test.ts", 1, "unsupported type")

	if c.ErrorCount() != 1 {
		t.Errorf("strict mode records warnings as errors, got %d errors", c.ErrorCount())
	}
	if c.WarningCount() != 0 {
		t.Errorf("expected 0 warnings in strict mode, got %d", c.WarningCount())
	}
}

func TestCollectorQuietMode(t *testing.T) {
	c := NewCollector(false, true)
	c.Warn(CategoryTypeUnsupported, "test.ts", 1, "unsupported type")
	c.Info(CategoryResolution, "test.ts", 1, "resolved from cache")
	c.Error(CategoryConfigInvalid, "", 0, "real error")

	if len(c.Diagnostics()) != 1 {
		t.Errorf("quiet mode keeps only errors, got %d diagnostics", len(c.Diagnostics()))
	}
}

func TestCollectorSummary(t *testing.T) {
	c := NewCollector(false, false)
	c.Warn(CategoryResolution, "a.ts", 1, "w1")
	c.Warn(CategoryResolution, "b.ts", 2, "w2")
	c.Error(CategoryConfigInvalid, "", 0, "e1")

	summary := c.Summary()
	if !strings.Contains(summary, "1 error") {
		t.Errorf("expected '1 error' in %q", summary)
	}
	if !strings.Contains(summary, "2 warning") {
		t.Errorf("expected '2 warning' in %q", summary)
	}
}

func TestCollectorSummaryClean(t *testing.T) {
	c := NewCollector(false, false)
	if got := c.Summary(); got != "no issues" {
		t.Errorf("expected 'no issues', got %q", got)
	}
}

func TestCollectorNilSafe(t *testing.T) {
	var c *Collector
	c.Warn(CategoryTypeUnsupported, "", 0, "w")
	c.WarnWithHint(CategoryTypeUnsupported, "", 0, "w", "h")
	c.Error(CategoryConfigInvalid, "", 0, "e")
	c.Info(CategoryResolution, "", 0, "i")

	if c.HasErrors() {
		t.Error("nil collector must not report errors")
	}
	if c.Diagnostics() != nil {
		t.Error("nil collector must return nil diagnostics")
	}
	if c.Summary() != "" {
		t.Error("nil collector must return empty summary")
	}
	if c.FormatAll() != "" {
		t.Error("nil collector must format to empty")
	}
}

func TestCollectorFormatAll(t *testing.T) {
	c := NewCollector(false, false)
	c.Warn(CategoryTypeUnsupported, "test.ts", 10, "not supported")

	formatted := c.FormatAll()
	if !strings.Contains(formatted, "test.ts:10") {
		t.Errorf("expected file:line in output, got %q", formatted)
	}
	if !strings.HasSuffix(formatted, "\n") {
		t.Error("expected trailing newline")
	}
}

func TestCollectorWarnWithHint(t *testing.T) {
	c := NewCollector(false, false)
	c.WarnWithHint(CategoryTypeUnsupported, "test.ts", 5, "mapped type", "spell out the properties")

	diags := c.Diagnostics()
	if len(diags) != 1 || diags[0].Hint != "spell out the properties" {
		t.Errorf("expected hint recorded, got %v", diags)
	}
}
