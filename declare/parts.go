package declare

import (
	"github.com/Luna88k/msbuild/symbol"
	"github.com/Luna88k/msbuild/syntax"
)

// AccessibilityKeyword returns the accessibility written on a member's
// declaration. Interface members and explicit interface implementations
// carry none.
func AccessibilityKeyword(sym symbol.Symbol) string {
	if explicitInterface(sym) != nil {
		return ""
	}
	if c := sym.ContainingType(); c != nil && c.TypeKind == symbol.TypeKindInterface {
		return ""
	}
	return sym.Accessibility().Keyword()
}

// Modifiers returns the declaration modifiers of a member. Interface
// members are implicitly abstract, so the keyword is not repeated.
func Modifiers(sym symbol.Symbol) syntax.Modifiers {
	info := sym.Info()
	var mods syntax.Modifiers
	if info.Static {
		mods = mods.With(syntax.ModStatic)
	}
	inInterface := info.Container != nil && info.Container.TypeKind == symbol.TypeKindInterface
	if info.Abstract && !inInterface {
		mods = mods.With(syntax.ModAbstract)
	}
	if info.Virtual && !inInterface {
		mods = mods.With(syntax.ModVirtual)
	}
	if info.Override {
		mods = mods.With(syntax.ModOverride)
		if info.Sealed {
			mods = mods.With(syntax.ModSealed)
		}
	}
	if info.ReadOnly {
		mods = mods.With(syntax.ModReadOnly)
	}
	return mods
}

// MemberName prefixes name with the explicit interface it implements.
func MemberName(name string, explicit *symbol.Type) string {
	if explicit == nil {
		return name
	}
	return explicit.DisplayName() + "." + name
}

// Parameters converts symbol parameters to declaration parameters.
func Parameters(params []*symbol.Parameter) []syntax.Parameter {
	if len(params) == 0 {
		return nil
	}
	out := make([]syntax.Parameter, len(params))
	for i, p := range params {
		mod := p.RefKind.Keyword()
		if p.IsParams {
			mod = "params"
		}
		out[i] = syntax.Parameter{
			Modifier: mod,
			Type:     symbol.TypeString(p.Type, p.Annotation),
			Name:     p.Name,
			Default:  p.Default,
		}
	}
	return out
}

func explicitInterface(sym symbol.Symbol) *symbol.Type {
	switch s := sym.(type) {
	case *symbol.Method:
		return s.ExplicitInterface
	case *symbol.Event:
		return s.ExplicitInterface
	case *symbol.Property:
		return s.ExplicitInterface
	default:
		return nil
	}
}
