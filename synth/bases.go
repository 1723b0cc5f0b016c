package synth

import (
	"cmp"
	"slices"

	"github.com/Luna88k/msbuild/filter"
	"github.com/Luna88k/msbuild/logger"
	"github.com/Luna88k/msbuild/symbol"
	"github.com/Luna88k/msbuild/syntax"
)

// BaseList returns the base class (classes only) and interfaces of t that
// f includes, base class first. It returns nil when none survive, which
// means the declaration has no base clause.
func BaseList(t *symbol.Type, f filter.Filter) []string {
	var bases []string
	if t.TypeKind == symbol.TypeKindClass && t.BaseType != nil && f.Include(t.BaseType) {
		bases = append(bases, t.BaseType.DisplayName())
	}
	for _, iface := range t.Interfaces {
		if f.Include(iface) {
			bases = append(bases, iface.DisplayName())
		}
	}
	if len(bases) == 0 {
		return nil
	}
	return bases
}

type candidate struct {
	ctor  *symbol.Method
	order int
}

// byArity orders candidates by parameter count, then declaration order.
func byArity(a, b candidate) int {
	return cmp.Or(
		cmp.Compare(len(a.ctor.Parameters), len(b.ctor.Parameters)),
		cmp.Compare(a.order, b.order),
	)
}

// ConstructorInitializer returns the base(...) call ctor needs when its
// base type no longer offers a usable parameterless constructor under f.
// It returns nil when the implicit base call is enough or when no base
// constructor can be referenced.
func ConstructorInitializer(ctor *symbol.Method, f filter.Filter) *syntax.ConstructorInitializer {
	if ctor.Container == nil || ctor.Container.BaseType == nil {
		return nil
	}
	base := ctor.Container.BaseType

	var included []candidate
	for i, c := range base.Constructors() {
		// The surface lists declared constructors, so that is what the
		// filter judges; c only supplies the substituted parameter types.
		if !f.Include(c.OriginalDefinition()) {
			continue
		}
		if len(c.Parameters) == 0 {
			return nil
		}
		included = append(included, candidate{ctor: c, order: i})
	}
	if len(included) == 0 {
		return nil
	}

	usable := slices.DeleteFunc(included, func(c candidate) bool {
		return filter.HasHardErrorObsolete(f, c.ctor.OriginalDefinition())
	})
	if len(usable) == 0 {
		// The implicit base() call left in place will not resolve
		logger.Logger.Debugw("No usable base constructor",
			logger.FieldSymbol, ctor.DisplayName(),
			logger.FieldBaseType, base.DisplayName(),
		)
		return nil
	}

	target := slices.MinFunc(usable, byArity).ctor
	args := make([]syntax.Expr, len(target.Parameters))
	for i, p := range target.Parameters {
		args[i] = DefaultArgument(p)
	}
	return &syntax.ConstructorInitializer{Arguments: args}
}

// DefaultArgument returns default(T) for value types and nullable
// references, and default(T)! for non-nullable references.
func DefaultArgument(p *symbol.Parameter) *syntax.DefaultLiteral {
	return &syntax.DefaultLiteral{
		Type:             symbol.TypeString(p.Type, p.Annotation),
		SuppressNullable: !(p.Type.IsValueType() || p.Annotation == symbol.NullableAnnotated),
	}
}
