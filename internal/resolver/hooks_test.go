package resolver_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fluentgen/fluentgen/internal/handle"
	"github.com/fluentgen/fluentgen/internal/handle/handletest"
	"github.com/fluentgen/fluentgen/internal/resolver"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

func TestBeforeResolveHookObserves(t *testing.T) {
	r := resolver.New()
	var seen string
	r.SetHooks(resolver.Hooks{
		BeforeResolve: func(name string, h handle.Type) error {
			seen = name
			return nil
		},
	})

	_, err := r.ResolveDeclaration("User", "", handletest.Object("User"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != "User" {
		t.Errorf("expected hook to see User, got %q", seen)
	}
}

func TestBeforeResolveHookAborts(t *testing.T) {
	r := resolver.New()
	r.SetHooks(resolver.Hooks{
		BeforeResolve: func(name string, h handle.Type) error {
			return errors.New("denied")
		},
	})

	_, err := r.ResolveDeclaration("User", "", handletest.Object("User"))
	var hookErr *resolver.HookError
	if !errors.As(err, &hookErr) {
		t.Fatalf("expected HookError, got %v", err)
	}
	if hookErr.Phase != "before-resolve" {
		t.Errorf("expected phase before-resolve, got %q", hookErr.Phase)
	}
	if !strings.Contains(err.Error(), "denied") {
		t.Errorf("expected cause preserved in message, got %q", err.Error())
	}
}

func TestAfterResolveHookReplaces(t *testing.T) {
	r := resolver.New()
	r.SetHooks(resolver.Hooks{
		AfterResolve: func(name string, info typeinfo.TypeInfo) (typeinfo.TypeInfo, error) {
			return typeinfo.Primitive("string"), nil
		},
	})

	rt, err := r.ResolveDeclaration("User", "", handletest.Object("User"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPrimitive(t, rt.TypeInfo, "string")
}

func TestAfterResolveHookErrorNamesPhase(t *testing.T) {
	r := resolver.New()
	r.SetHooks(resolver.Hooks{
		AfterResolve: func(name string, info typeinfo.TypeInfo) (typeinfo.TypeInfo, error) {
			return typeinfo.TypeInfo{}, errors.New("rejected")
		},
	})

	_, err := r.ResolveDeclaration("User", "", handletest.Object("User"))
	var hookErr *resolver.HookError
	if !errors.As(err, &hookErr) {
		t.Fatalf("expected HookError, got %v", err)
	}
	if hookErr.Phase != "after-resolve" {
		t.Errorf("expected phase after-resolve, got %q", hookErr.Phase)
	}
}

func TestOnUtilityHookReplaces(t *testing.T) {
	r := resolver.New()
	r.SetHooks(resolver.Hooks{
		OnUtility: func(info typeinfo.TypeInfo) (typeinfo.TypeInfo, error) {
			return typeinfo.Literal("replaced"), nil
		},
	})

	info := mustResolve(t, r, handletest.Alias("Partial",
		handletest.Object("User", handletest.Prop("id", handletest.Primitive("string")))))
	assertLiteral(t, info, "replaced")
}

func TestOnUtilityHookErrorNamesPhase(t *testing.T) {
	r := resolver.New()
	r.SetHooks(resolver.Hooks{
		OnUtility: func(info typeinfo.TypeInfo) (typeinfo.TypeInfo, error) {
			return typeinfo.TypeInfo{}, errors.New("nope")
		},
	})

	_, err := r.Resolve(handletest.Alias("Partial",
		handletest.Object("User", handletest.Prop("id", handletest.Primitive("string")))))
	var hookErr *resolver.HookError
	if !errors.As(err, &hookErr) {
		t.Fatalf("expected HookError, got %v", err)
	}
	if hookErr.Phase != "utility" {
		t.Errorf("expected phase utility, got %q", hookErr.Phase)
	}
}

func TestOnConditionalHookRunsOnManualEvaluation(t *testing.T) {
	r := resolver.New()
	called := false
	r.SetHooks(resolver.Hooks{
		OnConditional: func(info typeinfo.TypeInfo) (typeinfo.TypeInfo, error) {
			called = true
			return info, nil
		},
	})

	cond := handletest.Conditional(
		handletest.TypeParam("T"),
		handletest.Primitive("string"),
		handletest.Literal("yes"),
		handletest.Literal("no"),
	)
	mustResolve(t, r, boundConditional(cond, handletest.Primitive("string")))
	if !called {
		t.Error("expected conditional hook to run")
	}
}

func TestOnConditionalHookErrorNamesPhase(t *testing.T) {
	r := resolver.New()
	r.SetHooks(resolver.Hooks{
		OnConditional: func(info typeinfo.TypeInfo) (typeinfo.TypeInfo, error) {
			return typeinfo.TypeInfo{}, errors.New("bad")
		},
	})

	cond := handletest.Conditional(
		handletest.TypeParam("T"),
		handletest.Primitive("string"),
		handletest.Literal("yes"),
		handletest.Literal("no"),
	)
	_, err := r.Resolve(cond)
	var hookErr *resolver.HookError
	if !errors.As(err, &hookErr) {
		t.Fatalf("expected HookError, got %v", err)
	}
	if hookErr.Phase != "conditional" {
		t.Errorf("expected phase conditional, got %q", hookErr.Phase)
	}
}
