package resolver

import (
	"github.com/fluentgen/fluentgen/internal/handle"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

// resolveConditionalType handles `Check extends Extends ? True : False`
// shapes. A nil result with nil error means the host type system already
// collapsed the conditional (the common case when every generic parameter
// was substituted upstream) and the orchestrator should resolve the handle
// normally — this convention prevents double work.
//
// When the check type still contains type parameters, the conditional is
// evaluated manually: bound parameters are substituted from the generic
// context (distributing over union bindings), infer sites are matched
// structurally, and the picked branch is resolved. If any parameter remains
// open, the conditional stays symbolic as a KindConditional node.
func (r *Resolver) resolveConditionalType(h handle.Type, depth int) (*typeinfo.TypeInfo, error) {
	cond := h.Conditional()
	if cond == nil {
		return nil, nil
	}

	paramNames := make(map[string]bool)
	collectTypeParameterNames(cond.Check, 0, paramNames)
	if len(paramNames) == 0 {
		// Concrete check type: the host has (or would have) collapsed it.
		return nil, nil
	}

	if r.condDepth >= r.maxConditionalDepth {
		return nil, ErrConditionalDepthExceeded
	}
	r.condDepth++
	defer func() { r.condDepth-- }()

	allBound := true
	for name := range paramNames {
		if bound, known := r.ctx.Lookup(name); !known || bound == nil {
			allBound = false
			break
		}
	}
	if !allBound {
		info, err := r.symbolicConditional(cond, depth)
		if err != nil {
			return nil, err
		}
		out, err := applyReplacementHook(phaseConditional, r.hooks.OnConditional, info)
		if err != nil {
			return nil, err
		}
		return &out, nil
	}

	var result typeinfo.TypeInfo
	var err error
	if cond.Distributive && cond.Check.IsTypeParameter() {
		result, err = r.distributeConditional(cond, depth)
	} else {
		result, err = r.evaluateConditional(cond, depth)
	}
	if err != nil {
		return nil, err
	}

	out, err := applyReplacementHook(phaseConditional, r.hooks.OnConditional, result)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// distributeConditional evaluates a naked-type-parameter conditional once
// per member of the bound union and re-unions the results. Identical
// per-member results collapse to the single shared result through the union
// deduplication.
func (r *Resolver) distributeConditional(cond *handle.Conditional, depth int) (typeinfo.TypeInfo, error) {
	paramName := cond.Check.Name()
	bound, _ := r.ctx.Lookup(paramName)
	if bound == nil || bound.Kind != typeinfo.KindUnion {
		return r.evaluateConditional(cond, depth)
	}

	var results []typeinfo.TypeInfo
	seen := make(map[string]bool)
	for _, member := range bound.UnionTypes {
		r.ctx.Push()
		r.ctx.Bind(paramName, member)
		res, err := r.evaluateConditional(cond, depth)
		r.ctx.Pop()
		if err != nil {
			return typeinfo.TypeInfo{}, err
		}
		fp := res.Fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		results = append(results, res)
	}
	return typeinfo.Union(results), nil
}

// evaluateConditional performs one assignability test and resolves the
// picked branch. Infer bindings are scoped to the true branch only.
func (r *Resolver) evaluateConditional(cond *handle.Conditional, depth int) (typeinfo.TypeInfo, error) {
	checkInfo, err := r.resolve(cond.Check, depth+1)
	if err != nil {
		return typeinfo.TypeInfo{}, err
	}

	// Resolve the extends clause with infer names marked free so each site
	// surfaces as a generic node the matcher can bind.
	r.ctx.Push()
	for _, n := range cond.InferNames {
		r.ctx.MarkFree(n)
	}
	extendsInfo, err := r.resolve(cond.Extends, depth+1)
	r.ctx.Pop()
	if err != nil {
		return typeinfo.TypeInfo{}, err
	}

	inferSet := make(map[string]bool, len(cond.InferNames))
	for _, n := range cond.InferNames {
		inferSet[n] = true
	}
	bindings := make(map[string]typeinfo.TypeInfo)

	if assignableWithInfer(checkInfo, extendsInfo, inferSet, bindings) {
		r.ctx.Push()
		for _, n := range cond.InferNames {
			if b, ok := bindings[n]; ok {
				r.ctx.Bind(n, b)
			} else {
				// An infer site the match never reached binds to unknown.
				r.ctx.Bind(n, typeinfo.Unknown())
			}
		}
		res, err := r.resolve(cond.True, depth+1)
		r.ctx.Pop()
		return res, err
	}

	return r.resolve(cond.False, depth+1)
}

// symbolicConditional resolves all four parts without picking a branch, for
// conditionals still open over an unbound parameter. Infer names stay
// visible while resolving the extends clause and the true branch.
func (r *Resolver) symbolicConditional(cond *handle.Conditional, depth int) (typeinfo.TypeInfo, error) {
	checkInfo, err := r.resolve(cond.Check, depth+1)
	if err != nil {
		return typeinfo.TypeInfo{}, err
	}
	r.ctx.Push()
	for _, n := range cond.InferNames {
		r.ctx.MarkFree(n)
	}
	extendsInfo, err := r.resolve(cond.Extends, depth+1)
	if err != nil {
		r.ctx.Pop()
		return typeinfo.TypeInfo{}, err
	}
	trueInfo, err := r.resolve(cond.True, depth+1)
	r.ctx.Pop()
	if err != nil {
		return typeinfo.TypeInfo{}, err
	}
	falseInfo, err := r.resolve(cond.False, depth+1)
	if err != nil {
		return typeinfo.TypeInfo{}, err
	}
	return typeinfo.TypeInfo{
		Kind:        typeinfo.KindConditional,
		CheckType:   &checkInfo,
		ExtendsType: &extendsInfo,
		TrueType:    &trueInfo,
		FalseType:   &falseInfo,
	}, nil
}

// collectTypeParameterNames scans a handle graph for type parameter
// references, with a shallow depth cap.
func collectTypeParameterNames(h handle.Type, depth int, out map[string]bool) {
	if h == nil || depth > 8 {
		return
	}
	if h.IsTypeParameter() {
		out[h.Name()] = true
		return
	}
	collectTypeParameterNames(h.ElementType(), depth+1, out)
	for _, e := range h.TupleElements() {
		collectTypeParameterNames(e, depth+1, out)
	}
	for _, m := range h.Members() {
		collectTypeParameterNames(m, depth+1, out)
	}
	for _, a := range h.TypeArguments() {
		collectTypeParameterNames(a, depth+1, out)
	}
	for _, a := range h.AliasTypeArguments() {
		collectTypeParameterNames(a, depth+1, out)
	}
	for _, p := range h.Properties() {
		collectTypeParameterNames(p.Type, depth+1, out)
	}
	collectTypeParameterNames(h.Target(), depth+1, out)
	if obj, idx := h.IndexedAccess(); obj != nil || idx != nil {
		collectTypeParameterNames(obj, depth+1, out)
		collectTypeParameterNames(idx, depth+1, out)
	}
}

// isTypeAssignableTo is a restricted approximation of assignability, not the
// host type system's full rules: identical shape, any/unknown target, never
// source, union-member targets and primitive/literal kind equality. This is
// sufficient for the conditional forms that appear in builder-relevant
// declarations (distributing unions, filtering literals).
func isTypeAssignableTo(src, dst typeinfo.TypeInfo) bool {
	if src.Fingerprint() == dst.Fingerprint() {
		return true
	}
	if dst.Kind == typeinfo.KindPrimitive && dst.Name == "any" {
		return true
	}
	if dst.Kind == typeinfo.KindUnknown {
		return true
	}
	if src.Kind == typeinfo.KindNever {
		return true
	}
	if dst.Kind == typeinfo.KindUnion {
		for _, m := range dst.UnionTypes {
			if isTypeAssignableTo(src, m) {
				return true
			}
		}
		return false
	}
	if src.Kind == typeinfo.KindLiteral && dst.Kind == typeinfo.KindPrimitive {
		return literalPrimitiveName(src.Literal) == dst.Name
	}
	if src.Kind == typeinfo.KindPrimitive && dst.Kind == typeinfo.KindPrimitive {
		return src.Name == dst.Name
	}
	return false
}

// assignableWithInfer is isTypeAssignableTo extended with structural descent
// so infer sites inside the extends clause bind to the matching position of
// the check type. A repeated infer site must match the same type.
func assignableWithInfer(src, dst typeinfo.TypeInfo, infer map[string]bool, bindings map[string]typeinfo.TypeInfo) bool {
	if dst.Kind == typeinfo.KindGeneric && infer[dst.Name] {
		if existing, ok := bindings[dst.Name]; ok {
			return existing.Equal(src)
		}
		bindings[dst.Name] = src
		return true
	}
	switch dst.Kind {
	case typeinfo.KindArray:
		if src.Kind == typeinfo.KindArray && src.ElementType != nil && dst.ElementType != nil {
			return assignableWithInfer(*src.ElementType, *dst.ElementType, infer, bindings)
		}
	case typeinfo.KindTuple:
		if src.Kind == typeinfo.KindTuple && len(src.Elements) == len(dst.Elements) {
			for i := range dst.Elements {
				if !assignableWithInfer(src.Elements[i], dst.Elements[i], infer, bindings) {
					return false
				}
			}
			return true
		}
	case typeinfo.KindObject:
		if src.Kind == typeinfo.KindObject {
			srcProps := make(map[string]typeinfo.TypeInfo, len(src.Properties))
			for _, p := range src.Properties {
				srcProps[p.Name] = p.Type
			}
			for _, p := range dst.Properties {
				st, ok := srcProps[p.Name]
				if !ok {
					return false
				}
				if !assignableWithInfer(st, p.Type, infer, bindings) {
					return false
				}
			}
			return true
		}
	case typeinfo.KindUnion:
		for _, m := range dst.UnionTypes {
			if assignableWithInfer(src, m, infer, bindings) {
				return true
			}
		}
		return false
	}
	return isTypeAssignableTo(src, dst)
}

// literalPrimitiveName maps a literal value to the primitive it widens to.
func literalPrimitiveName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	default:
		return ""
	}
}
