// Package resolver walks type handles supplied by the host type system and
// produces normalized, serializable typeinfo trees for fluent builder
// generation. Resolution is recursive, single-threaded and best-effort per
// node: malformed shapes degrade to unknown, only resource exhaustion and
// hook or utility misuse abort a resolution.
package resolver

import (
	"github.com/fluentgen/fluentgen/internal/diagnostic"
	"github.com/fluentgen/fluentgen/internal/handle"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

// DefaultMaxDepth is the maximum nesting depth for type resolution.
// Prevents unbounded recursion from pathological recursive type aliases.
const DefaultMaxDepth = 20

// DefaultMaxConditionalDepth bounds nested conditional evaluation, which can
// recurse into itself before control returns to the orchestrator.
const DefaultMaxConditionalDepth = 16

// DefaultMaxUtilityDepth bounds nested utility type expansion.
const DefaultMaxUtilityDepth = 16

// Resolver converts type handles into typeinfo trees. The resolution cache
// and generic context are scoped to the Resolver and reset at every
// top-level call; a Resolver must not be shared across concurrently
// executing resolutions.
type Resolver struct {
	maxDepth            int
	maxConditionalDepth int
	maxUtilityDepth     int

	cache    *resolutionCache
	ctx      *GenericContext
	registry *typeinfo.TypeRegistry
	hooks    Hooks
	diags    *diagnostic.Collector

	// condDepth and utilDepth are dedicated counters, independent of the
	// orchestrator's recursion depth.
	condDepth int
	utilDepth int
}

// New creates a Resolver with default limits.
func New() *Resolver {
	return &Resolver{
		maxDepth:            DefaultMaxDepth,
		maxConditionalDepth: DefaultMaxConditionalDepth,
		maxUtilityDepth:     DefaultMaxUtilityDepth,
		cache:               newResolutionCache(),
		ctx:                 NewGenericContext(),
		registry:            typeinfo.NewTypeRegistry(),
	}
}

// SetMaxDepth overrides the maximum resolution depth.
func (r *Resolver) SetMaxDepth(depth int) {
	r.maxDepth = depth
}

// SetMaxConditionalDepth overrides the conditional evaluation depth limit.
func (r *Resolver) SetMaxConditionalDepth(depth int) {
	r.maxConditionalDepth = depth
}

// SetMaxUtilityDepth overrides the utility expansion depth limit.
func (r *Resolver) SetMaxUtilityDepth(depth int) {
	r.maxUtilityDepth = depth
}

// SetHooks installs the optional extension point callbacks.
func (r *Resolver) SetHooks(hooks Hooks) {
	r.hooks = hooks
}

// SetDiagnostics attaches a collector for non-fatal resolution warnings.
func (r *Resolver) SetDiagnostics(c *diagnostic.Collector) {
	r.diags = c
}

// Registry returns the named types resolved so far in this session.
func (r *Resolver) Registry() *typeinfo.TypeRegistry {
	return r.registry
}

// Context returns the resolver's generic context.
func (r *Resolver) Context() *GenericContext {
	return r.ctx
}

// Resolve resolves one type handle into a typeinfo tree. The resolution
// cache and generic context are cleared first, so independent calls share no
// state beyond the named-type registry.
func (r *Resolver) Resolve(h handle.Type) (typeinfo.TypeInfo, error) {
	r.cache.reset()
	r.ctx.Reset()
	r.condDepth = 0
	r.utilDepth = 0
	return r.resolve(h, 0)
}

// ResolveDeclaration resolves one top-level declaration's type into a
// ResolvedType, running the before/after hooks. Anonymous compound results
// are promoted to the declaration name so later occurrences resolve to a
// by-name reference.
func (r *Resolver) ResolveDeclaration(name, sourceFile string, h handle.Type) (*typeinfo.ResolvedType, error) {
	if r.hooks.BeforeResolve != nil {
		if err := r.hooks.BeforeResolve(name, h); err != nil {
			return nil, &HookError{Phase: phaseBeforeResolve, Err: err}
		}
	}

	info, err := r.Resolve(h)
	if err != nil {
		return nil, err
	}

	// Promote anonymous aliases: `type Foo = {...}` resolves to an unnamed
	// shape, but downstream generation needs it addressable as Foo.
	switch info.Kind {
	case typeinfo.KindObject, typeinfo.KindUnion, typeinfo.KindIntersection, typeinfo.KindArray:
		if info.Name == "" {
			info.Name = name
			registered := info
			r.registry.Register(name, &registered)
			if sourceFile != "" {
				r.registry.Files[name] = sourceFile
			}
		}
	}

	if r.hooks.AfterResolve != nil {
		replaced, err := r.hooks.AfterResolve(name, info)
		if err != nil {
			return nil, &HookError{Phase: phaseAfterResolve, Err: err}
		}
		info = replaced
	}

	imports := make([]string, 0)
	for _, ref := range info.ReferencedNames() {
		if ref != name {
			imports = append(imports, ref)
		}
	}

	return &typeinfo.ResolvedType{
		Name:       name,
		SourceFile: sourceFile,
		TypeInfo:   info,
		Imports:    imports,
	}, nil
}

// resolve is the recursive entry point. Dispatch is ordered; the first
// matching shape wins.
func (r *Resolver) resolve(h handle.Type, depth int) (typeinfo.TypeInfo, error) {
	if h == nil {
		return typeinfo.Unknown(), nil
	}
	if depth > r.maxDepth {
		return typeinfo.TypeInfo{}, ErrMaxDepthExceeded
	}

	switch {
	case h.IsAny():
		return typeinfo.Primitive("any"), nil
	case h.IsUnknown():
		return typeinfo.Unknown(), nil
	case h.IsNever():
		return typeinfo.Never(), nil
	case h.IsPrimitive():
		return typeinfo.Primitive(h.PrimitiveName()), nil
	case h.IsLiteral():
		return typeinfo.Literal(h.LiteralValue()), nil
	case h.IsArray():
		elem, err := r.resolve(h.ElementType(), depth+1)
		if err != nil {
			return typeinfo.TypeInfo{}, err
		}
		return typeinfo.TypeInfo{Kind: typeinfo.KindArray, ElementType: &elem}, nil
	case h.IsTuple():
		return r.resolveTuple(h, depth)
	case h.IsUnion():
		return r.resolveUnion(h, depth)
	case h.IsIntersection():
		return r.resolveIntersection(h, depth)
	}

	// Conditional types: nil result means the host already collapsed the
	// conditional and normal dispatch should continue.
	if res, err := r.resolveConditionalType(h, depth); err != nil {
		return typeinfo.TypeInfo{}, err
	} else if res != nil {
		return *res, nil
	}

	// Utility types: nil result means not a recognized utility pattern.
	if res, err := r.expandUtilityType(h, depth); err != nil {
		return typeinfo.TypeInfo{}, err
	} else if res != nil {
		return *res, nil
	}

	switch {
	case h.IsEnum():
		return typeinfo.TypeInfo{Kind: typeinfo.KindEnum, Name: h.Name()}, nil
	case h.IsTypeParameter():
		return r.resolveTypeParameter(h)
	case h.IsKeyof():
		return r.resolveWrapped(h, typeinfo.KindKeyof, depth)
	case h.IsTypeof():
		return r.resolveWrapped(h, typeinfo.KindTypeof, depth)
	case h.IsIndexedAccess():
		return r.resolveIndexedAccess(h, depth)
	case h.IsFunction():
		return typeinfo.TypeInfo{Kind: typeinfo.KindFunction, Name: h.Name()}, nil
	case h.IsObject():
		return r.resolveObject(h, depth)
	}

	// Shapes the host could not resolve structurally sometimes still expose
	// a base constraint worth using (open conditionals, keyof over
	// generics). Mirrors the checker's getBaseConstraintOfType fallback.
	if bc := h.BaseConstraint(); bc != nil && bc.ID() != h.ID() {
		return r.resolve(bc, depth+1)
	}

	r.warnUnsupported(h)
	return typeinfo.Unknown(), nil
}

func (r *Resolver) resolveTuple(h handle.Type, depth int) (typeinfo.TypeInfo, error) {
	var elements []typeinfo.TypeInfo
	for _, e := range h.TupleElements() {
		info, err := r.resolve(e, depth+1)
		if err != nil {
			return typeinfo.TypeInfo{}, err
		}
		elements = append(elements, info)
	}
	return typeinfo.TypeInfo{Kind: typeinfo.KindTuple, Elements: elements}, nil
}

// resolveUnion resolves members in order, deduplicating structurally
// identical results. Distinct literal values never collapse even when their
// primitive kind coincides, because the fingerprint carries the value.
func (r *Resolver) resolveUnion(h handle.Type, depth int) (typeinfo.TypeInfo, error) {
	members, err := r.resolveMembers(h.Members(), depth)
	if err != nil {
		return typeinfo.TypeInfo{}, err
	}
	return typeinfo.Union(members), nil
}

func (r *Resolver) resolveIntersection(h handle.Type, depth int) (typeinfo.TypeInfo, error) {
	members, err := r.resolveMembers(h.Members(), depth)
	if err != nil {
		return typeinfo.TypeInfo{}, err
	}
	switch len(members) {
	case 0:
		return typeinfo.Unknown(), nil
	case 1:
		return members[0], nil
	}
	return typeinfo.TypeInfo{Kind: typeinfo.KindIntersection, IntersectionTypes: members}, nil
}

func (r *Resolver) resolveMembers(handles []handle.Type, depth int) ([]typeinfo.TypeInfo, error) {
	var members []typeinfo.TypeInfo
	seen := make(map[string]bool)
	for _, m := range handles {
		info, err := r.resolve(m, depth+1)
		if err != nil {
			return nil, err
		}
		fp := info.Fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		members = append(members, info)
	}
	return members, nil
}

// resolveTypeParameter distinguishes a bound parameter (substituted with its
// argument) from an open one (emitted as a generic node).
func (r *Resolver) resolveTypeParameter(h handle.Type) (typeinfo.TypeInfo, error) {
	name := h.Name()
	if bound, known := r.ctx.Lookup(name); known && bound != nil {
		return *bound, nil
	}
	return typeinfo.TypeInfo{Kind: typeinfo.KindGeneric, Name: name}, nil
}

// resolveWrapped handles keyof and typeof: resolve the operand, then wrap.
// When the host exposes no operand it usually still knows the constraint
// (e.g. keyof T collapsing to a literal-key union).
func (r *Resolver) resolveWrapped(h handle.Type, kind typeinfo.Kind, depth int) (typeinfo.TypeInfo, error) {
	if target := h.Target(); target != nil {
		inner, err := r.resolve(target, depth+1)
		if err != nil {
			return typeinfo.TypeInfo{}, err
		}
		return typeinfo.TypeInfo{Kind: kind, Target: &inner}, nil
	}
	if bc := h.BaseConstraint(); bc != nil && bc.ID() != h.ID() {
		return r.resolve(bc, depth+1)
	}
	r.warnUnsupported(h)
	return typeinfo.Unknown(), nil
}

func (r *Resolver) resolveIndexedAccess(h handle.Type, depth int) (typeinfo.TypeInfo, error) {
	obj, idx := h.IndexedAccess()
	if obj == nil || idx == nil {
		if bc := h.BaseConstraint(); bc != nil && bc.ID() != h.ID() {
			return r.resolve(bc, depth+1)
		}
		r.warnUnsupported(h)
		return typeinfo.Unknown(), nil
	}
	objInfo, err := r.resolve(obj, depth+1)
	if err != nil {
		return typeinfo.TypeInfo{}, err
	}
	idxInfo, err := r.resolve(idx, depth+1)
	if err != nil {
		return typeinfo.TypeInfo{}, err
	}
	return typeinfo.TypeInfo{
		Kind:       typeinfo.KindIndex,
		ObjectType: &objInfo,
		IndexType:  &idxInfo,
	}, nil
}

// resolveObject handles plain object and interface shapes. The cache entry
// is reserved before recursing into properties so a self-referential
// structure resolving itself finds the marker and substitutes a by-name
// reference instead of looping.
func (r *Resolver) resolveObject(h handle.Type, depth int) (typeinfo.TypeInfo, error) {
	name := h.Name()

	// Already analyzed in this session — reference it.
	if depth > 0 && name != "" && r.registry.Has(name) {
		return typeinfo.Reference(name), nil
	}

	// Bind declared parameters to applied arguments before fingerprinting,
	// so distinct instantiations get distinct cache entries.
	params := h.TypeParameters()
	args := h.TypeArguments()
	var argInfos []typeinfo.TypeInfo
	for _, a := range args {
		info, err := r.resolve(a, depth+1)
		if err != nil {
			return typeinfo.TypeInfo{}, err
		}
		argInfos = append(argInfos, info)
	}
	if len(params) > 0 {
		r.ctx.Push()
		defer r.ctx.Pop()
		for i, p := range params {
			if i < len(argInfos) {
				r.ctx.Bind(p.Name, argInfos[i])
			} else {
				r.ctx.MarkFree(p.Name)
			}
		}
	}

	key := cacheKey{typeID: h.ID(), context: r.ctx.Fingerprint()}
	if cached, ok := r.cache.lookup(key); ok {
		return cached, nil
	}
	if reservedName, ok := r.cache.reserved(key); ok {
		if reservedName != "" {
			return typeinfo.Reference(reservedName), nil
		}
		// Anonymous self-reference: no name to point at.
		return typeinfo.Unknown(), nil
	}
	r.cache.reserve(key, name)

	properties, indexSig, err := r.resolveProperties(h, depth)
	if err != nil {
		r.cache.release(key)
		return typeinfo.TypeInfo{}, err
	}

	obj := typeinfo.TypeInfo{
		Kind:           typeinfo.KindObject,
		Name:           name,
		Properties:     properties,
		IndexSignature: indexSig,
		TypeArguments:  argInfos,
	}
	r.attachGenericParams(&obj, params, depth)

	if name != "" {
		registered := obj
		r.registry.Register(name, &registered)
		if sf := h.SourceFile(); sf != "" {
			r.registry.Files[name] = sf
		}
		r.cache.store(key, typeinfo.Reference(name))
		if depth > 0 {
			return typeinfo.Reference(name), nil
		}
		return obj, nil
	}

	r.cache.store(key, obj)
	return obj, nil
}

func (r *Resolver) resolveProperties(h handle.Type, depth int) ([]typeinfo.PropertyInfo, *typeinfo.IndexSignature, error) {
	var properties []typeinfo.PropertyInfo
	for _, p := range h.Properties() {
		propType, err := r.resolve(p.Type, depth+1)
		if err != nil {
			return nil, nil, err
		}
		properties = append(properties, typeinfo.PropertyInfo{
			Name:     p.Name,
			Type:     propType,
			Optional: p.Optional,
			Readonly: p.Readonly,
			JSDoc:    p.JSDoc,
		})
	}

	var indexSig *typeinfo.IndexSignature
	if info := h.IndexSignature(); info != nil {
		valueType, err := r.resolve(info.ValueType, depth+1)
		if err != nil {
			return nil, nil, err
		}
		keyType := info.KeyType
		switch keyType {
		case "string", "number", "symbol":
		default:
			keyType = "string"
		}
		indexSig = &typeinfo.IndexSignature{
			KeyType:   keyType,
			ValueType: valueType,
			Readonly:  info.Readonly,
		}
	}

	return properties, indexSig, nil
}

// attachGenericParams keeps the declared parameter list only when at least
// one property's resolved type still references a free parameter; a fully
// concrete object drops it so consumers do not emit dead builder type
// parameters.
func (r *Resolver) attachGenericParams(obj *typeinfo.TypeInfo, params []handle.TypeParameter, depth int) {
	if len(params) == 0 {
		return
	}
	var unresolved []string
	for _, p := range params {
		single := map[string]bool{p.Name: true}
		if objReferencesGeneric(obj, single) {
			unresolved = append(unresolved, p.Name)
		}
	}
	if len(unresolved) == 0 {
		return
	}

	var generics []typeinfo.GenericParam
	for _, p := range params {
		gp := typeinfo.GenericParam{Name: p.Name}
		if p.Constraint != nil {
			if c, err := r.resolve(p.Constraint, depth+1); err == nil {
				gp.Constraint = &c
			}
		}
		if p.Default != nil {
			if d, err := r.resolve(p.Default, depth+1); err == nil {
				gp.Default = &d
			}
		}
		generics = append(generics, gp)
	}
	obj.GenericParams = generics
	obj.UnresolvedGenerics = unresolved
}

func objReferencesGeneric(obj *typeinfo.TypeInfo, names map[string]bool) bool {
	for _, p := range obj.Properties {
		if p.Type.ContainsGeneric(names) {
			return true
		}
	}
	if obj.IndexSignature != nil && obj.IndexSignature.ValueType.ContainsGeneric(names) {
		return true
	}
	return false
}

func (r *Resolver) warnUnsupported(h handle.Type) {
	if r.diags == nil {
		return
	}
	r.diags.Warn(diagnostic.CategoryTypeUnsupported, h.SourceFile(), 0,
		"unsupported type shape resolved as unknown")
}
