// Package declare is the generic per-symbol declaration builder.
//
// Builder reproduces a symbol's declared shape as faithfully as it can
// without any knowledge of which symbols end up in the generated surface:
//   - type declarations carry the full, unfiltered base list and every
//     declarable member
//   - constructors never get an explicit initializer
//   - events are always emitted field-like and never marked abstract
//
// Callers that need a filtered surface correct these gaps afterwards.
package declare

import (
	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/symbol"
	"github.com/Luna88k/msbuild/syntax"
)

// Declarer builds a best-effort declaration for a symbol. Shapes that
// cannot be declared fail with an error wrapping errors.ErrInvalidArgument.
type Declarer interface {
	Declare(sym symbol.Symbol) (syntax.Decl, error)
}

// Builder is the default Declarer. It is stateless and safe for
// concurrent use.
type Builder struct{}

// NewBuilder creates a new declaration builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Declare implements Declarer.
func (b *Builder) Declare(sym symbol.Symbol) (syntax.Decl, error) {
	switch s := sym.(type) {
	case *symbol.Type:
		return b.declareType(s)
	case *symbol.Method:
		return b.declareMethod(s)
	case *symbol.Event:
		return &syntax.EventFieldDecl{
			Accessibility: AccessibilityKeyword(s),
			Modifiers:     Modifiers(s).Without(syntax.ModAbstract),
			Type:          symbol.TypeString(s.Type, s.Annotation),
			Name:          MemberName(s.Name, s.ExplicitInterface),
		}, nil
	case *symbol.Field:
		return b.declareField(s), nil
	case *symbol.Property:
		return b.declareProperty(s), nil
	case nil:
		return nil, errors.NewInvalidArgumentError("nil symbol")
	default:
		return nil, errors.NewInvalidArgumentError("symbol kind %s is not declarable", sym.Kind())
	}
}

func (b *Builder) declareType(t *symbol.Type) (syntax.Decl, error) {
	switch t.TypeKind {
	case symbol.TypeKindClass, symbol.TypeKindStruct, symbol.TypeKindInterface:
		decl := &syntax.TypeDecl{
			Kind:           declKind(t.TypeKind),
			Accessibility:  AccessibilityKeyword(t),
			Modifiers:      typeModifiers(t),
			Name:           t.Name,
			TypeParameters: t.TypeParameters,
		}
		if t.TypeKind == symbol.TypeKindClass && t.BaseType != nil {
			decl.BaseList = append(decl.BaseList, t.BaseType.DisplayName())
		}
		for _, iface := range t.Interfaces {
			decl.BaseList = append(decl.BaseList, iface.DisplayName())
		}
		decl.Members = b.declareMembers(t)
		return decl, nil

	case symbol.TypeKindEnum:
		decl := &syntax.EnumDecl{
			Accessibility: AccessibilityKeyword(t),
			Name:          t.Name,
			Members:       b.declareMembers(t),
		}
		if t.Underlying != nil && t.Underlying.DisplayName() != "int" {
			decl.Underlying = t.Underlying.DisplayName()
		}
		return decl, nil

	case symbol.TypeKindDelegate:
		if t.Invoke == nil {
			return nil, errors.NewInvalidArgumentError("delegate %s has no signature", t.DisplayName())
		}
		return &syntax.DelegateDecl{
			Accessibility:  AccessibilityKeyword(t),
			Name:           t.Name,
			TypeParameters: t.TypeParameters,
			ReturnType:     symbol.TypeString(t.Invoke.ReturnType, t.Invoke.ReturnAnnotation),
			Parameters:     Parameters(t.Invoke.Parameters),
		}, nil

	default:
		return nil, errors.NewInvalidArgumentError("type kind %s is not declarable", t.TypeKind)
	}
}

// declareMembers declares every member that can stand on its own.
func (b *Builder) declareMembers(t *symbol.Type) []syntax.Decl {
	var members []syntax.Decl
	for _, m := range t.Members {
		if !canBeDeclared(m) {
			continue
		}
		decl, err := b.Declare(m)
		if err != nil {
			continue
		}
		members = append(members, decl)
	}
	return members
}

// canBeDeclared excludes accessors and finalizers, which only exist as
// part of another declaration.
func canBeDeclared(sym symbol.Symbol) bool {
	m, ok := sym.(*symbol.Method)
	if !ok {
		return true
	}
	switch m.MethodKind {
	case symbol.MethodPropertyGet, symbol.MethodPropertySet,
		symbol.MethodEventAdd, symbol.MethodEventRemove, symbol.MethodDestructor:
		return false
	default:
		return true
	}
}

func (b *Builder) declareMethod(m *symbol.Method) (syntax.Decl, error) {
	switch m.MethodKind {
	case symbol.MethodOrdinary:
		return &syntax.MethodDecl{
			Accessibility:  AccessibilityKeyword(m),
			Modifiers:      Modifiers(m),
			ReturnType:     returnType(m),
			Name:           MemberName(m.Name, m.ExplicitInterface),
			TypeParameters: m.TypeParameters,
			Parameters:     Parameters(m.Parameters),
		}, nil

	case symbol.MethodConstructor, symbol.MethodStaticConstructor:
		if m.Container == nil {
			return nil, errors.NewInvalidArgumentError("constructor %s has no containing type", m.Name)
		}
		decl := &syntax.ConstructorDecl{
			Accessibility: AccessibilityKeyword(m),
			Modifiers:     Modifiers(m),
			Name:          m.Container.Name,
			Parameters:    Parameters(m.Parameters),
		}
		if m.MethodKind == symbol.MethodStaticConstructor {
			decl.Accessibility = ""
			decl.Modifiers = syntax.ModStatic
		}
		return decl, nil

	case symbol.MethodOperator:
		tok, ok := symbol.OperatorToken(m.Name)
		if !ok {
			return nil, errors.NewInvalidArgumentError("unknown operator %s", m.Name)
		}
		return &syntax.OperatorDecl{
			Accessibility: AccessibilityKeyword(m),
			Modifiers:     Modifiers(m),
			ReturnType:    returnType(m),
			Operator:      tok,
			Parameters:    Parameters(m.Parameters),
		}, nil

	case symbol.MethodConversion:
		var op string
		switch m.Name {
		case "op_Implicit":
			op = "implicit"
		case "op_Explicit":
			op = "explicit"
		default:
			return nil, errors.NewInvalidArgumentError("unknown conversion %s", m.Name)
		}
		return &syntax.OperatorDecl{
			Accessibility: AccessibilityKeyword(m),
			Modifiers:     Modifiers(m),
			ReturnType:    returnType(m),
			Operator:      op,
			Conversion:    true,
			Parameters:    Parameters(m.Parameters),
		}, nil

	default:
		return nil, errors.NewInvalidArgumentError("method kind %s is not declarable", m.MethodKind)
	}
}

func (b *Builder) declareField(f *symbol.Field) syntax.Decl {
	if f.Container != nil && f.Container.TypeKind == symbol.TypeKindEnum {
		return &syntax.EnumMemberDecl{Name: f.Name, Value: f.Value}
	}
	mods := Modifiers(f)
	value := ""
	if f.Const {
		// const implies static
		mods = mods.Without(syntax.ModStatic).With(syntax.ModConst)
		value = f.Value
	}
	return &syntax.FieldDecl{
		Accessibility: AccessibilityKeyword(f),
		Modifiers:     mods,
		Type:          symbol.TypeString(f.Type, f.Annotation),
		Name:          f.Name,
		Value:         value,
	}
}

func (b *Builder) declareProperty(p *symbol.Property) syntax.Decl {
	decl := &syntax.PropertyDecl{
		Accessibility: AccessibilityKeyword(p),
		Modifiers:     Modifiers(p),
		Type:          symbol.TypeString(p.Type, p.Annotation),
		Name:          MemberName(p.Name, p.ExplicitInterface),
		Parameters:    Parameters(p.Parameters),
	}
	if p.HasGet {
		decl.Accessors = append(decl.Accessors, syntax.Accessor{Kind: syntax.Get, Accessibility: p.GetAccess.Keyword()})
	}
	if p.HasSet {
		kind := syntax.Set
		if p.InitSet {
			kind = syntax.Init
		}
		decl.Accessors = append(decl.Accessors, syntax.Accessor{Kind: kind, Accessibility: p.SetAccess.Keyword()})
	}
	return decl
}

func returnType(m *symbol.Method) string {
	if m.ReturnType == nil {
		return "void"
	}
	return symbol.TypeString(m.ReturnType, m.ReturnAnnotation)
}

func declKind(k symbol.TypeKind) syntax.TypeKind {
	switch k {
	case symbol.TypeKindStruct:
		return syntax.Struct
	case symbol.TypeKindInterface:
		return syntax.Interface
	default:
		return syntax.Class
	}
}

func typeModifiers(t *symbol.Type) syntax.Modifiers {
	if t.TypeKind != symbol.TypeKindClass {
		if t.ReadOnly {
			return syntax.ModReadOnly
		}
		return 0
	}
	var mods syntax.Modifiers
	switch {
	case t.Static:
		mods = mods.With(syntax.ModStatic)
	case t.Abstract:
		mods = mods.With(syntax.ModAbstract)
	case t.Sealed:
		mods = mods.With(syntax.ModSealed)
	}
	return mods
}
