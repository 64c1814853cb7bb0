package resolver

import (
	"fmt"
	"sort"

	"github.com/fluentgen/fluentgen/internal/diagnostic"
	"github.com/fluentgen/fluentgen/internal/handle"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

// DeclarationSource locates named declarations for transitive dependency
// discovery. Lookups may parse additional source files on demand; a lookup
// that fails must return an error rather than panic.
type DeclarationSource interface {
	// LookupDeclaration returns the type handle and defining file for a
	// declaration name.
	LookupDeclaration(name string) (handle.Type, string, error)
}

// DependencyDiscoverer resolves the other top-level declarations a resolved
// type transitively references. Results are memoized per declaration name,
// and a file that cannot be analyzed contributes zero dependencies instead
// of aborting discovery.
type DependencyDiscoverer struct {
	source DeclarationSource
	diags  *diagnostic.Collector
	// memo caches resolved dependencies by name; a nil entry records a
	// failed lookup so it is not retried.
	memo map[string]*typeinfo.ResolvedType
}

// NewDependencyDiscoverer creates a discoverer over the given source.
func NewDependencyDiscoverer(source DeclarationSource, diags *diagnostic.Collector) *DependencyDiscoverer {
	return &DependencyDiscoverer{
		source: source,
		diags:  diags,
		memo:   make(map[string]*typeinfo.ResolvedType),
	}
}

// Discover fills rt.Dependencies and rt.Imports from the names referenced in
// its type tree, recursing through dependencies of dependencies. Cycles
// between declarations terminate through the memo.
func (d *DependencyDiscoverer) Discover(rt *typeinfo.ResolvedType) {
	names := rt.TypeInfo.ReferencedNames()
	var imports []string
	for _, name := range names {
		if name == rt.Name {
			continue
		}
		imports = append(imports, name)
		if dep := d.resolveDependency(name); dep != nil {
			rt.Dependencies = append(rt.Dependencies, dep)
		}
	}
	sort.Strings(imports)
	rt.Imports = imports
}

func (d *DependencyDiscoverer) resolveDependency(name string) *typeinfo.ResolvedType {
	if dep, ok := d.memo[name]; ok {
		return dep
	}

	h, file, err := d.source.LookupDeclaration(name)
	if err != nil {
		d.diags.Warn(diagnostic.CategoryFileAnalysis, file, 0,
			fmt.Sprintf("could not analyze declaration %q: %v", name, err))
		d.memo[name] = nil
		return nil
	}

	// One resolver per dependency keeps cache/context isolation intact.
	r := New()
	r.SetDiagnostics(d.diags)
	dep, err := r.ResolveDeclaration(name, file, h)
	if err != nil {
		d.diags.Warn(diagnostic.CategoryResolution, file, 0,
			fmt.Sprintf("could not resolve dependency %q: %v", name, err))
		d.memo[name] = nil
		return nil
	}

	// Memoize before recursing so reference cycles between declarations
	// terminate.
	d.memo[name] = dep
	d.Discover(dep)
	return dep
}
