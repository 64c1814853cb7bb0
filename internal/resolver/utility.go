package resolver

import (
	"github.com/fluentgen/fluentgen/internal/handle"
	"github.com/fluentgen/fluentgen/internal/typeinfo"
)

// utilityArity is the fixed catalog of recognized structural utility
// operators. The expander synthesizes results directly from the resolved
// operands, bypassing the host type system's own (sometimes incomplete)
// expansion.
var utilityArity = map[string]int{
	"Pick":        2,
	"Omit":        2,
	"Partial":     1,
	"Required":    1,
	"Readonly":    1,
	"Record":      2,
	"Exclude":     2,
	"Extract":     2,
	"NonNullable": 1,
}

// expandUtilityType recognizes an alias application of a catalog utility.
// A nil result with nil error means "not applicable" — no alias name, an
// unknown name, or an arity mismatch — and the orchestrator falls through to
// generic handling. Misapplied utilities (e.g. Pick over a non-object) are
// hard errors.
func (r *Resolver) expandUtilityType(h handle.Type, depth int) (*typeinfo.TypeInfo, error) {
	name := h.AliasName()
	if name == "" {
		return nil, nil
	}
	arity, ok := utilityArity[name]
	if !ok {
		return nil, nil
	}
	args := h.AliasTypeArguments()
	if len(args) != arity {
		return nil, nil
	}
	if r.utilDepth >= r.maxUtilityDepth {
		return nil, ErrUtilityDepthExceeded
	}
	r.utilDepth++
	defer func() { r.utilDepth-- }()

	operands := make([]typeinfo.TypeInfo, len(args))
	for i, a := range args {
		op, err := r.resolve(a, depth+1)
		if err != nil {
			return nil, err
		}
		operands[i] = op
	}

	var result typeinfo.TypeInfo
	var err error
	switch name {
	case "Pick":
		result, err = r.pickOmit(name, operands[0], operands[1], true)
	case "Omit":
		result, err = r.pickOmit(name, operands[0], operands[1], false)
	case "Partial":
		result, err = r.mapProperties(name, operands[0], func(p *typeinfo.PropertyInfo) {
			p.Optional = true
		})
	case "Required":
		result, err = r.mapProperties(name, operands[0], func(p *typeinfo.PropertyInfo) {
			p.Optional = false
		})
	case "Readonly":
		result, err = r.mapProperties(name, operands[0], func(p *typeinfo.PropertyInfo) {
			p.Readonly = true
		})
	case "Record":
		result = makeRecord(operands[0], operands[1])
	case "Exclude":
		result = filterUnion(operands[0], operands[1], false)
	case "Extract":
		result = filterUnion(operands[0], operands[1], true)
	case "NonNullable":
		nullish := typeinfo.TypeInfo{Kind: typeinfo.KindUnion, UnionTypes: []typeinfo.TypeInfo{
			typeinfo.Primitive("null"),
			typeinfo.Primitive("undefined"),
		}}
		result = filterUnion(operands[0], nullish, false)
	}
	if err != nil {
		return nil, err
	}

	out, err := applyReplacementHook(phaseUtility, r.hooks.OnUtility, result)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// objectShape returns the object form of an operand, following a by-name
// reference through the registry. The bool reports whether the operand is
// object-shaped at all.
func (r *Resolver) objectShape(info typeinfo.TypeInfo) (typeinfo.TypeInfo, bool) {
	switch info.Kind {
	case typeinfo.KindObject:
		return info, true
	case typeinfo.KindReference:
		if registered, ok := r.registry.Lookup(info.Name); ok && registered.Kind == typeinfo.KindObject {
			return *registered, true
		}
	}
	return typeinfo.TypeInfo{}, false
}

// pickOmit keeps (or drops) the properties named by the literal-key set.
// Generic parameters on the original target carry through unchanged: the
// narrowed property set keeps whatever free parameters it still references.
func (r *Resolver) pickOmit(utility string, target, keyArg typeinfo.TypeInfo, keep bool) (typeinfo.TypeInfo, error) {
	obj, ok := r.objectShape(target)
	if !ok {
		return typeinfo.TypeInfo{}, &InvalidUtilityTargetError{
			Utility: utility,
			Reason:  "can only be applied to object types",
		}
	}
	keys := extractLiteralKeys(keyArg)

	var properties []typeinfo.PropertyInfo
	for _, p := range obj.Properties {
		if keys[p.Name] == keep {
			properties = append(properties, p)
		}
	}
	return typeinfo.TypeInfo{
		Kind:               typeinfo.KindObject,
		Properties:         properties,
		GenericParams:      obj.GenericParams,
		UnresolvedGenerics: obj.UnresolvedGenerics,
	}, nil
}

// mapProperties rebuilds the target's property list with a flag transform.
// The source object is never mutated; previously returned nodes stay intact.
func (r *Resolver) mapProperties(utility string, target typeinfo.TypeInfo, transform func(*typeinfo.PropertyInfo)) (typeinfo.TypeInfo, error) {
	obj, ok := r.objectShape(target)
	if !ok {
		return typeinfo.TypeInfo{}, &InvalidUtilityTargetError{
			Utility: utility,
			Reason:  "can only be applied to object types",
		}
	}

	properties := make([]typeinfo.PropertyInfo, len(obj.Properties))
	for i, p := range obj.Properties {
		copied := p
		transform(&copied)
		properties[i] = copied
	}

	var indexSig *typeinfo.IndexSignature
	if obj.IndexSignature != nil {
		copied := *obj.IndexSignature
		if utility == "Readonly" {
			copied.Readonly = true
		}
		indexSig = &copied
	}

	return typeinfo.TypeInfo{
		Kind:               typeinfo.KindObject,
		Properties:         properties,
		IndexSignature:     indexSig,
		GenericParams:      obj.GenericParams,
		UnresolvedGenerics: obj.UnresolvedGenerics,
	}, nil
}

// makeRecord synthesizes Record<K, V>: one property per literal key when the
// key set is finite, an index signature when the keys are string/number/
// symbol at large.
func makeRecord(keyArg, valueType typeinfo.TypeInfo) typeinfo.TypeInfo {
	keys := orderedLiteralKeys(keyArg)
	if len(keys) > 0 {
		properties := make([]typeinfo.PropertyInfo, len(keys))
		for i, k := range keys {
			properties[i] = typeinfo.PropertyInfo{Name: k, Type: valueType}
		}
		return typeinfo.TypeInfo{Kind: typeinfo.KindObject, Properties: properties}
	}

	keyType := "string"
	if keyArg.Kind == typeinfo.KindPrimitive {
		switch keyArg.Name {
		case "number", "symbol":
			keyType = keyArg.Name
		}
	}
	return typeinfo.TypeInfo{
		Kind: typeinfo.KindObject,
		IndexSignature: &typeinfo.IndexSignature{
			KeyType:   keyType,
			ValueType: valueType,
		},
	}
}

// filterUnion drops (keep=false) or keeps (keep=true) every member of a
// union — a singleton is treated as a one-member union — assignable to the
// second argument. Exactly one survivor is returned unwrapped; none yields
// never.
func filterUnion(src, against typeinfo.TypeInfo, keep bool) typeinfo.TypeInfo {
	members := src.UnionTypes
	if src.Kind != typeinfo.KindUnion {
		members = []typeinfo.TypeInfo{src}
	}
	var survivors []typeinfo.TypeInfo
	for _, m := range members {
		if isTypeAssignableTo(m, against) == keep {
			survivors = append(survivors, m)
		}
	}
	return typeinfo.Union(survivors)
}

// extractLiteralKeys accepts a single string literal or a union of string
// literals; non-string-literal union members are silently ignored.
func extractLiteralKeys(keyArg typeinfo.TypeInfo) map[string]bool {
	keys := make(map[string]bool)
	for _, k := range orderedLiteralKeys(keyArg) {
		keys[k] = true
	}
	return keys
}

// orderedLiteralKeys is extractLiteralKeys preserving union member order.
func orderedLiteralKeys(keyArg typeinfo.TypeInfo) []string {
	var keys []string
	add := func(info typeinfo.TypeInfo) {
		if info.Kind == typeinfo.KindLiteral {
			if s, ok := info.Literal.(string); ok {
				keys = append(keys, s)
			}
		}
	}
	if keyArg.Kind == typeinfo.KindUnion {
		for _, m := range keyArg.UnionTypes {
			add(m)
		}
		return keys
	}
	add(keyArg)
	return keys
}
