package metadata

import (
	"strings"

	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/symbol"
)

func (r *resolver) member(t *symbol.Type, e *MemberEntry, sc scope) (symbol.Symbol, error) {
	inInterface := t.TypeKind == symbol.TypeKindInterface

	defaultAccess := symbol.AccessPrivate
	if inInterface || t.TypeKind == symbol.TypeKindEnum {
		defaultAccess = symbol.AccessPublic
	}
	access, err := parseAccessibility(e.Accessibility, defaultAccess)
	if err != nil {
		return nil, err
	}
	attrs, err := r.attributes(e.Attributes)
	if err != nil {
		return nil, err
	}

	common := symbol.Common{
		Name:      e.Name,
		Access:    access,
		Attrs:     attrs,
		Container: t,
		Abstract:  e.Abstract,
		Sealed:    e.Sealed,
		Static:    e.Static || e.Const,
		Virtual:   e.Virtual,
		Override:  e.Override,
		ReadOnly:  e.ReadOnly,
	}
	// Interface members without a default implementation are abstract
	if inInterface && !e.Static && !e.Virtual {
		common.Abstract = true
	}

	if t.TypeKind == symbol.TypeKindEnum {
		if e.Kind != "" && e.Kind != "field" {
			return nil, errors.NewManifestError("enum members are fields, got %s", e.Kind)
		}
		if e.Name == "" {
			return nil, errors.NewManifestError("enum member without a name")
		}
		common.Access = symbol.AccessPublic
		common.Static = true
		return &symbol.Field{Common: common, Type: t, Const: true, Value: e.Value}, nil
	}

	var explicit *symbol.Type
	if e.ExplicitInterface != "" {
		explicit, _, err = r.resolve(e.ExplicitInterface, sc)
		if err != nil {
			return nil, err
		}
	}

	switch e.Kind {
	case "constructor", "staticConstructor", "destructor":
		m := &symbol.Method{Common: common}
		switch e.Kind {
		case "constructor":
			m.Name, m.MethodKind = ".ctor", symbol.MethodConstructor
		case "staticConstructor":
			m.Name, m.MethodKind = ".cctor", symbol.MethodStaticConstructor
			m.Static = true
		default:
			m.Name, m.MethodKind = "Finalize", symbol.MethodDestructor
		}
		if err := r.signature(m, "", e.Parameters, sc); err != nil {
			return nil, err
		}
		return m, nil

	case "method", "operator", "conversion":
		if e.Name == "" {
			return nil, errors.NewManifestError("%s without a name", e.Kind)
		}
		m := &symbol.Method{Common: common, TypeParameters: e.TypeParameters, ExplicitInterface: explicit}
		switch e.Kind {
		case "operator":
			if _, ok := symbol.OperatorToken(e.Name); !ok {
				return nil, errors.WithHint(errors.NewManifestError("unknown operator %s", e.Name),
					"operators use metadata names such as op_Addition")
			}
			m.MethodKind = symbol.MethodOperator
			m.Static = true
		case "conversion":
			if e.Name != "op_Implicit" && e.Name != "op_Explicit" {
				return nil, errors.WithHint(errors.NewManifestError("unknown conversion %s", e.Name),
					"conversions are named op_Implicit or op_Explicit")
			}
			m.MethodKind = symbol.MethodConversion
			m.Static = true
		}
		msc := sc
		msc.methodParams = e.TypeParameters
		if err := r.signature(m, e.Returns, e.Parameters, msc); err != nil {
			return nil, err
		}
		return m, nil

	case "event":
		if e.Name == "" || e.Type == "" {
			return nil, errors.NewManifestError("event needs a name and a type")
		}
		typ, ann, err := r.resolve(e.Type, sc)
		if err != nil {
			return nil, err
		}
		return &symbol.Event{Common: common, Type: typ, Annotation: ann, ExplicitInterface: explicit}, nil

	case "field":
		if e.Name == "" || e.Type == "" {
			return nil, errors.NewManifestError("field needs a name and a type")
		}
		typ, ann, err := r.resolve(e.Type, sc)
		if err != nil {
			return nil, err
		}
		if e.Const && e.Value == "" {
			return nil, errors.NewManifestError("constant %s has no value", e.Name)
		}
		return &symbol.Field{Common: common, Type: typ, Annotation: ann, Const: e.Const, Value: e.Value}, nil

	case "property":
		return r.property(common, e, explicit, sc)

	case "":
		return nil, errors.NewManifestError("member without a kind")
	default:
		return nil, errors.WithHint(errors.NewManifestError("unknown member kind %q", e.Kind),
			"use constructor, staticConstructor, destructor, method, operator, conversion, event, field or property")
	}
}

func (r *resolver) property(common symbol.Common, e *MemberEntry, explicit *symbol.Type, sc scope) (symbol.Symbol, error) {
	if e.Type == "" {
		return nil, errors.NewManifestError("property needs a type")
	}
	typ, ann, err := r.resolve(e.Type, sc)
	if err != nil {
		return nil, err
	}
	params, err := r.parameters(e.Parameters, sc)
	if err != nil {
		return nil, err
	}
	if common.Name == "" {
		if len(params) == 0 {
			return nil, errors.NewManifestError("property without a name")
		}
		common.Name = "Item"
	}

	getAccess, err := parseAccessibility(e.GetAccessibility, symbol.AccessNotApplicable)
	if err != nil {
		return nil, err
	}
	setAccess, err := parseAccessibility(e.SetAccessibility, symbol.AccessNotApplicable)
	if err != nil {
		return nil, err
	}

	p := &symbol.Property{
		Common:            common,
		Type:              typ,
		Annotation:        ann,
		Parameters:        params,
		HasGet:            e.Get,
		HasSet:            e.Set || e.Init,
		InitSet:           e.Init,
		GetAccess:         getAccess,
		SetAccess:         setAccess,
		ExplicitInterface: explicit,
	}
	if !p.HasGet && !p.HasSet {
		p.HasGet = true
	}
	return p, nil
}

// signature fills in a method's return type and parameters.
func (r *resolver) signature(m *symbol.Method, returns string, params []ParameterEntry, sc scope) error {
	if returns == "" {
		returns = "void"
	}
	if m.MethodKind != symbol.MethodConstructor && m.MethodKind != symbol.MethodStaticConstructor &&
		m.MethodKind != symbol.MethodDestructor {
		ret, ann, err := r.resolve(returns, sc)
		if err != nil {
			return err
		}
		m.ReturnType, m.ReturnAnnotation = ret, ann
	}
	ps, err := r.parameters(params, sc)
	if err != nil {
		return err
	}
	m.Parameters = ps
	return nil
}

func (r *resolver) parameters(entries []ParameterEntry, sc scope) ([]*symbol.Parameter, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	params := make([]*symbol.Parameter, len(entries))
	for i, e := range entries {
		if e.Name == "" || e.Type == "" {
			return nil, errors.NewManifestError("parameter %d needs a name and a type", i)
		}
		typ, ann, err := r.resolve(e.Type, sc)
		if err != nil {
			return nil, err
		}
		if e.Nullable != "" {
			ann, err = parseNullable(e.Nullable)
			if err != nil {
				return nil, err
			}
		}
		refKind, err := parseRefKind(e.RefKind)
		if err != nil {
			return nil, err
		}
		if e.Params && typ.TypeKind != symbol.TypeKindArray {
			return nil, errors.NewManifestError("params parameter %s must be an array", e.Name)
		}
		params[i] = &symbol.Parameter{
			Name:       e.Name,
			Type:       typ,
			Annotation: ann,
			RefKind:    refKind,
			IsParams:   e.Params,
			Default:    e.Default,
		}
	}
	return params, nil
}

func parseTypeKind(s string) (symbol.TypeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "class":
		return symbol.TypeKindClass, nil
	case "struct":
		return symbol.TypeKindStruct, nil
	case "interface":
		return symbol.TypeKindInterface, nil
	case "enum":
		return symbol.TypeKindEnum, nil
	case "delegate":
		return symbol.TypeKindDelegate, nil
	default:
		return 0, errors.WithHint(errors.NewManifestError("unknown type kind %q", s),
			"use class, struct, interface, enum or delegate")
	}
}

func parseAccessibility(s string, fallback symbol.Accessibility) (symbol.Accessibility, error) {
	switch strings.Join(strings.Fields(strings.ToLower(s)), " ") {
	case "":
		return fallback, nil
	case "public":
		return symbol.AccessPublic, nil
	case "protected":
		return symbol.AccessProtected, nil
	case "internal":
		return symbol.AccessInternal, nil
	case "protected internal", "internal protected":
		return symbol.AccessProtectedInternal, nil
	case "private protected", "protected private":
		return symbol.AccessPrivateProtected, nil
	case "private":
		return symbol.AccessPrivate, nil
	default:
		return 0, errors.WithHint(errors.NewManifestError("unknown accessibility %q", s),
			"use public, protected, internal, protected internal, private protected or private")
	}
}

func parseNullable(s string) (symbol.NullableAnnotation, error) {
	switch s {
	case "annotated":
		return symbol.NullableAnnotated, nil
	case "notAnnotated":
		return symbol.NullableNotAnnotated, nil
	case "oblivious":
		return symbol.NullableOblivious, nil
	default:
		return 0, errors.WithHint(errors.NewManifestError("unknown nullable annotation %q", s),
			"use annotated, notAnnotated or oblivious")
	}
}

func parseRefKind(s string) (symbol.RefKind, error) {
	switch s {
	case "":
		return symbol.RefNone, nil
	case "ref":
		return symbol.RefRef, nil
	case "out":
		return symbol.RefOut, nil
	case "in":
		return symbol.RefIn, nil
	default:
		return 0, errors.WithHint(errors.NewManifestError("unknown refKind %q", s),
			"use ref, out or in")
	}
}
