package resolver_test

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/fluentgen/fluentgen/internal/diagnostic"
	"github.com/fluentgen/fluentgen/internal/handle"
	"github.com/fluentgen/fluentgen/internal/handle/handletest"
	"github.com/fluentgen/fluentgen/internal/resolver"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

// fixtureSource is a DeclarationSource backed by a txtar archive. Each file
// holds lines of the form "Name: Dep1 Dep2"; every declaration becomes an
// object type with one property per dependency.
type fixtureSource struct {
	handles map[string]*handletest.Handle
	files   map[string]string
	lookups map[string]int
}

func parseFixture(t *testing.T, archive string) *fixtureSource {
	t.Helper()
	src := &fixtureSource{
		handles: make(map[string]*handletest.Handle),
		files:   make(map[string]string),
		lookups: make(map[string]int),
	}

	type entry struct {
		name string
		deps []string
	}
	var entries []entry

	ar := txtar.Parse([]byte(archive))
	for _, f := range ar.Files {
		for _, line := range strings.Split(string(f.Data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			name, depList, _ := strings.Cut(line, ":")
			name = strings.TrimSpace(name)
			e := entry{name: name, deps: strings.Fields(depList)}
			entries = append(entries, e)
			src.handles[name] = handletest.Object(name,
				handletest.Prop("id", handletest.Primitive("string")))
			src.files[name] = f.Name
		}
	}

	// Second pass: link dependency properties, tolerating forward and cyclic
	// references. Unknown names become dangling named objects the archive
	// never defines, which the source then fails to look up.
	for _, e := range entries {
		for _, dep := range e.deps {
			target, ok := src.handles[dep]
			if !ok {
				target = handletest.Object(dep)
			}
			src.handles[e.name].AddProperty(handletest.Prop(strings.ToLower(dep), target))
		}
	}
	return src
}

func (s *fixtureSource) LookupDeclaration(name string) (handle.Type, string, error) {
	s.lookups[name]++
	h, ok := s.handles[name]
	if !ok {
		return nil, "", fmt.Errorf("no declaration named %q", name)
	}
	return h, s.files[name], nil
}

func (s *fixtureSource) resolveRoot(t *testing.T, name string) *typeinfo.ResolvedType {
	t.Helper()
	h, file, err := s.LookupDeclaration(name)
	if err != nil {
		t.Fatalf("fixture missing root %q: %v", name, err)
	}
	r := resolver.New()
	rt, err := r.ResolveDeclaration(name, file, h)
	if err != nil {
		t.Fatalf("could not resolve root %q: %v", name, err)
	}
	d := resolver.NewDependencyDiscoverer(s, nil)
	d.Discover(rt)
	return rt
}

func TestDiscoverDirectDependency(t *testing.T) {
	src := parseFixture(t, `
-- order.ts --
Order: User
-- user.ts --
User:
`)
	rt := src.resolveRoot(t, "Order")

	if len(rt.Imports) != 1 || rt.Imports[0] != "User" {
		t.Fatalf("expected imports [User], got %v", rt.Imports)
	}
	if len(rt.Dependencies) != 1 || rt.Dependencies[0].Name != "User" {
		t.Fatalf("expected one dependency User, got %d", len(rt.Dependencies))
	}
	if rt.Dependencies[0].SourceFile != "user.ts" {
		t.Errorf("expected dependency source user.ts, got %q", rt.Dependencies[0].SourceFile)
	}
}

func TestDiscoverTransitiveDependencies(t *testing.T) {
	src := parseFixture(t, `
-- shop.ts --
Shop: Order
Order: User
-- user.ts --
User:
`)
	rt := src.resolveRoot(t, "Shop")

	if len(rt.Dependencies) != 1 {
		t.Fatalf("expected 1 direct dependency, got %d", len(rt.Dependencies))
	}
	order := rt.Dependencies[0]
	if len(order.Dependencies) != 1 || order.Dependencies[0].Name != "User" {
		t.Fatalf("expected Order to depend on User, got %v", order.Imports)
	}
}

func TestDiscoverMemoizesSharedDependencies(t *testing.T) {
	src := parseFixture(t, `
-- shop.ts --
Shop: Order Invoice
Order: User
Invoice: User
-- user.ts --
User:
`)
	src.resolveRoot(t, "Shop")

	if src.lookups["User"] != 1 {
		t.Errorf("expected User looked up once, got %d", src.lookups["User"])
	}
}

func TestDiscoverCyclicDeclarationsTerminate(t *testing.T) {
	src := parseFixture(t, `
-- graph.ts --
A: B
B: A
`)
	rt := src.resolveRoot(t, "A")

	if len(rt.Dependencies) != 1 || rt.Dependencies[0].Name != "B" {
		t.Fatalf("expected A to depend on B, got %d deps", len(rt.Dependencies))
	}
}

func TestDiscoverToleratesFailedLookups(t *testing.T) {
	src := parseFixture(t, `
-- order.ts --
Order: User Ghost
User:
`)
	collector := diagnostic.NewCollector(false, false)

	h, file, _ := src.LookupDeclaration("Order")
	r := resolver.New()
	rt, err := r.ResolveDeclaration("Order", file, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := resolver.NewDependencyDiscoverer(src, collector)
	d.Discover(rt)

	// Ghost is referenced but undefined: it appears in imports, contributes
	// no resolved dependency, and leaves a warning behind.
	if len(rt.Imports) != 2 {
		t.Fatalf("expected imports [Ghost User], got %v", rt.Imports)
	}
	if len(rt.Dependencies) != 1 || rt.Dependencies[0].Name != "User" {
		t.Fatalf("expected only User resolved, got %d deps", len(rt.Dependencies))
	}
	if collector.WarningCount() == 0 {
		t.Error("expected a warning for the failed lookup")
	}
}

func TestDiscoverFailedLookupNotRetried(t *testing.T) {
	src := parseFixture(t, `
-- a.ts --
A: Ghost
B: Ghost
`)
	collector := diagnostic.NewCollector(false, false)
	d := resolver.NewDependencyDiscoverer(src, collector)

	for _, name := range []string{"A", "B"} {
		h, file, _ := src.LookupDeclaration(name)
		r := resolver.New()
		rt, err := r.ResolveDeclaration(name, file, h)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		d.Discover(rt)
	}

	if src.lookups["Ghost"] != 1 {
		t.Errorf("expected failed lookup memoized, got %d lookups", src.lookups["Ghost"])
	}
}
