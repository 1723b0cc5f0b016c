// Package surface walks a loaded assembly and assembles the synthesized
// declarations of everything a filter includes into one compilation unit.
//
// # Ordering
//
// Output is deterministic regardless of worker count:
//   - top-level types are sorted by namespace, then name, then arity
//   - members and nested types keep declaration order
//   - namespaces appear in sorted order, one block each
//
// # Concurrency
//
// Each top-level type (with everything nested in it) is one unit of work.
// Work units run on a bounded errgroup; results land in a slice indexed by
// the sorted position, so scheduling never affects the output.
package surface

import (
	"cmp"
	"context"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/filter"
	"github.com/Luna88k/msbuild/logger"
	"github.com/Luna88k/msbuild/symbol"
	"github.com/Luna88k/msbuild/syntax"
	"github.com/Luna88k/msbuild/synth"
)

// Synthesizer produces the declaration of a single symbol.
type Synthesizer interface {
	Synthesize(sym symbol.Symbol, f filter.Filter) (syntax.Decl, error)
}

// Options tune a Generator.
type Options struct {
	// Workers bounds concurrent work units; <= 0 means GOMAXPROCS.
	Workers int

	// ContinueOnError skips symbols that fail to synthesize instead of
	// failing the whole run.
	ContinueOnError bool
}

// Stats summarizes the last run.
type Stats struct {
	Types   int
	Members int
	Skipped []string
}

// Generator builds API surfaces.
type Generator struct {
	synth  Synthesizer
	filter filter.Filter
	opts   Options
	logger *zap.SugaredLogger

	types   atomic.Int64
	members atomic.Int64

	mu      sync.Mutex
	skipped []string
}

// New creates a generator. f must be safe for concurrent use.
func New(s Synthesizer, f filter.Filter, opts Options) *Generator {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Generator{synth: s, filter: f, opts: opts, logger: logger.ComponentLogger("surface")}
}

// Stats returns counters from the most recent Generate call.
func (g *Generator) Stats() Stats {
	g.mu.Lock()
	skipped := slices.Clone(g.skipped)
	g.mu.Unlock()
	slices.Sort(skipped)

	return Stats{
		Types:   int(g.types.Load()),
		Members: int(g.members.Load()),
		Skipped: skipped,
	}
}

// Generate synthesizes the surface of asm. It stops at the first failure
// unless ContinueOnError is set, and returns ctx.Err() if ctx is cancelled.
func (g *Generator) Generate(ctx context.Context, asm *symbol.Assembly) (*syntax.CompilationUnit, error) {
	start := time.Now()
	g.types.Store(0)
	g.members.Store(0)
	g.mu.Lock()
	g.skipped = nil
	g.mu.Unlock()

	var top []*symbol.Type
	for _, t := range asm.Types {
		if g.filter.Include(t) {
			top = append(top, t)
		}
	}
	slices.SortStableFunc(top, compareTypes)

	decls := make([]syntax.Decl, len(top))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i, t := range top {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			decl, err := g.typeDecl(ctx, t)
			if err != nil {
				return err
			}
			decls[i] = decl
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	unit := &syntax.CompilationUnit{}
	var current *syntax.NamespaceDecl
	for i, t := range top {
		if decls[i] == nil {
			continue
		}
		if current == nil || current.Name != t.Namespace {
			current = &syntax.NamespaceDecl{Name: t.Namespace}
			unit.Namespaces = append(unit.Namespaces, current)
		}
		current.Members = append(current.Members, decls[i])
	}
	for _, ns := range unit.Namespaces {
		g.logger.Debugw("Assembled namespace",
			logger.FieldNamespace, ns.Name,
			logger.FieldCount, len(ns.Members))
	}

	stats := g.Stats()
	g.logger.Infow("Generated API surface",
		logger.FieldAssembly, asm.Name,
		logger.FieldVersion, asm.Version,
		logger.FieldNamespaceCount, len(unit.Namespaces),
		logger.FieldCount, stats.Types+stats.Members,
		logger.FieldSkipped, len(stats.Skipped),
		logger.FieldWorkers, g.opts.Workers,
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return unit, nil
}

func compareTypes(a, b *symbol.Type) int {
	return cmp.Or(
		cmp.Compare(a.Namespace, b.Namespace),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(len(a.TypeParameters), len(b.TypeParameters)),
	)
}

// typeDecl synthesizes t and fills in its included members. A nil
// declaration with a nil error means t was skipped.
func (g *Generator) typeDecl(ctx context.Context, t *symbol.Type) (syntax.Decl, error) {
	decl, err := g.synthesize(t)
	if err != nil || decl == nil {
		return nil, err
	}
	g.types.Add(1)

	var members []syntax.Decl
	for _, m := range t.Members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isAccessor(m) || !g.filter.Include(m) {
			continue
		}

		var md syntax.Decl
		if nested, ok := m.(*symbol.Type); ok {
			md, err = g.typeDecl(ctx, nested)
		} else {
			md, err = g.synthesize(m)
			if md != nil {
				g.members.Add(1)
			}
		}
		if err != nil {
			return nil, err
		}
		if md != nil {
			members = append(members, md)
		}
	}

	switch d := decl.(type) {
	case *syntax.TypeDecl:
		d.Members = members
	case *syntax.EnumDecl:
		d.Members = members
	}
	return decl, nil
}

func (g *Generator) synthesize(sym symbol.Symbol) (syntax.Decl, error) {
	decl, err := g.synth.Synthesize(sym, g.filter)
	if err == nil {
		return decl, nil
	}
	if g.opts.ContinueOnError && synth.IsSynthesisError(err) {
		g.mu.Lock()
		g.skipped = append(g.skipped, sym.DisplayName())
		g.mu.Unlock()
		g.logger.Warnw("Skipping symbol",
			logger.FieldSymbol, sym.DisplayName(),
			logger.FieldKind, sym.Kind().String(),
			logger.FieldError, err.Error(),
		)
		return nil, nil
	}
	return nil, errors.Wrapf(err, "failed to generate %s", sym.DisplayName())
}

// isAccessor reports whether sym only exists as part of a property or
// event declaration.
func isAccessor(sym symbol.Symbol) bool {
	m, ok := sym.(*symbol.Method)
	if !ok {
		return false
	}
	switch m.MethodKind {
	case symbol.MethodPropertyGet, symbol.MethodPropertySet, symbol.MethodEventAdd, symbol.MethodEventRemove:
		return true
	default:
		return false
	}
}
