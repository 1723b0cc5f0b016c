// Package filter decides which symbols appear in a generated API surface.
//
// Every Filter must be safe for concurrent use: the surface generator calls
// Include from several goroutines at once.
package filter

import (
	"strings"
	"sync"

	"github.com/Luna88k/msbuild/symbol"
)

// Filter is the inclusion capability handed to the synthesizer.
type Filter interface {
	// Include reports whether sym belongs to the generated surface.
	Include(sym symbol.Symbol) bool

	// IsHardErrorObsolete reports whether using a symbol carrying attr is a
	// compile error.
	IsHardErrorObsolete(attr symbol.Attribute) bool
}

const (
	obsoleteAttribute          = "System.ObsoleteAttribute"
	compilerGeneratedAttribute = "System.Runtime.CompilerServices.CompilerGeneratedAttribute"
)

// IsHardErrorObsolete reports whether attr is an ObsoleteAttribute whose
// error flag (second positional argument) is true.
func IsHardErrorObsolete(attr symbol.Attribute) bool {
	if attr.Type != obsoleteAttribute || len(attr.Arguments) < 2 {
		return false
	}
	return strings.TrimSpace(attr.Arguments[1]) == "true"
}

// HasHardErrorObsolete reports whether any attribute of sym is
// hard-error obsolete according to f.
func HasHardErrorObsolete(f Filter, sym symbol.Symbol) bool {
	for _, attr := range sym.Attributes() {
		if f.IsHardErrorObsolete(attr) {
			return true
		}
	}
	return false
}

// obsolete supplies the default IsHardErrorObsolete to filters that embed it.
type obsolete struct{}

func (obsolete) IsHardErrorObsolete(attr symbol.Attribute) bool {
	return IsHardErrorObsolete(attr)
}

// Func adapts a predicate into a Filter.
type Func func(symbol.Symbol) bool

func (f Func) Include(sym symbol.Symbol) bool { return f(sym) }

func (Func) IsHardErrorObsolete(attr symbol.Attribute) bool { return IsHardErrorObsolete(attr) }

// Accessibility includes symbols that are visible outside their assembly.
type Accessibility struct {
	obsolete

	// IncludeInternals also admits internal and private protected symbols.
	IncludeInternals bool
}

// NewAccessibility creates an accessibility filter
func NewAccessibility(includeInternals bool) *Accessibility {
	return &Accessibility{IncludeInternals: includeInternals}
}

// Include implements Filter. A symbol is visible when it and every
// containing type are visible; compiler-generated symbols never are.
func (a *Accessibility) Include(sym symbol.Symbol) bool {
	if t, ok := sym.(*symbol.Type); ok {
		switch t.TypeKind {
		case symbol.TypeKindTypeParameter:
			return true
		case symbol.TypeKindArray:
			return a.Include(t.ElementType)
		}
		if t.Definition != nil {
			if !a.Include(t.Definition) {
				return false
			}
			for _, arg := range t.TypeArguments {
				if !a.Include(arg) {
					return false
				}
			}
			return true
		}
	}

	if sym.Info().HasAttribute(compilerGeneratedAttribute) {
		return false
	}

	for s := sym; s != nil; {
		if !a.visible(s) {
			return false
		}
		container := s.ContainingType()
		if container == nil {
			break
		}
		s = container
	}
	return true
}

func (a *Accessibility) visible(sym symbol.Symbol) bool {
	// Explicit interface implementations are reachable through the interface
	if explicitInterface(sym) != nil {
		return a.Include(explicitInterface(sym))
	}
	if c := sym.ContainingType(); c != nil && c.TypeKind == symbol.TypeKindInterface &&
		sym.Accessibility() == symbol.AccessNotApplicable {
		return true
	}
	switch sym.Accessibility() {
	case symbol.AccessPublic, symbol.AccessProtected, symbol.AccessProtectedInternal:
		return true
	case symbol.AccessInternal, symbol.AccessPrivateProtected:
		return a.IncludeInternals
	default:
		return false
	}
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

// Attributes excludes symbols carrying any of the listed attribute types.
type Attributes struct {
	obsolete
	excluded map[string]bool
}

// ExcludeAttributes creates a filter that drops symbols with any of the
// given fully qualified attribute types.
func ExcludeAttributes(types ...string) *Attributes {
	excluded := make(map[string]bool, len(types))
	for _, t := range types {
		excluded[strings.TrimSpace(t)] = true
	}
	return &Attributes{excluded: excluded}
}

// Include implements Filter.
func (a *Attributes) Include(sym symbol.Symbol) bool {
	for _, attr := range sym.Attributes() {
		if a.excluded[attr.Type] {
			return false
		}
	}
	return true
}

// all is the conjunction of several filters.
type all struct {
	obsolete
	filters []Filter
}

// All returns a filter that includes a symbol only when every filter does.
// Hard-error obsolescence uses the package predicate.
func All(filters ...Filter) Filter {
	return &all{filters: filters}
}

func (a *all) Include(sym symbol.Symbol) bool {
	for _, f := range a.filters {
		if !f.Include(sym) {
			return false
		}
	}
	return true
}

// CachedFilter memoizes Include results per symbol.
type CachedFilter struct {
	inner Filter
	cache sync.Map // symbol.Symbol -> bool
}

// Cached wraps f so repeated Include calls for the same symbol are answered
// from memory. f must be pure.
func Cached(f Filter) *CachedFilter {
	return &CachedFilter{inner: f}
}

// Include implements Filter.
func (c *CachedFilter) Include(sym symbol.Symbol) bool {
	if v, ok := c.cache.Load(sym); ok {
		return v.(bool)
	}
	included := c.inner.Include(sym)
	c.cache.Store(sym, included)
	return included
}

// IsHardErrorObsolete implements Filter.
func (c *CachedFilter) IsHardErrorObsolete(attr symbol.Attribute) bool {
	return c.inner.IsHardErrorObsolete(attr)
}
