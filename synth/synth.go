// Package synth reconstructs the declaration of a symbol for a public API
// surface.
//
// The generic declaration builder gets most symbols right on its own. The
// synthesizer corrects the shapes it gets wrong once a filter is in play:
//   - classes, structs and interfaces list only the bases that survive the
//     filter, and come back without members
//   - constructors chain explicitly to a base constructor when the implicit
//     parameterless call would no longer resolve
//   - events keep their abstractness and their add/remove accessors
//
// A Synthesizer holds no state between calls. Given a pure filter, the same
// symbol always yields an equal declaration, so any number of goroutines may
// share one.
package synth

import (
	"fmt"

	"github.com/Luna88k/msbuild/declare"
	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/filter"
	"github.com/Luna88k/msbuild/symbol"
	"github.com/Luna88k/msbuild/syntax"
)

// SynthesisError reports a symbol that could not be declared at all.
type SynthesisError struct {
	// Symbol is the fully qualified display name of the offending symbol.
	Symbol string
	Err    error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("cannot synthesize declaration for %s: %v", e.Symbol, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// IsSynthesisError reports whether err is or wraps a SynthesisError.
func IsSynthesisError(err error) bool {
	var se *SynthesisError
	return errors.As(err, &se)
}

// Synthesizer builds surface declarations on top of a generic Declarer.
type Synthesizer struct {
	builder declare.Declarer
}

// New creates a synthesizer that falls back to builder. A nil builder
// selects declare.NewBuilder().
func New(builder declare.Declarer) *Synthesizer {
	if builder == nil {
		builder = declare.NewBuilder()
	}
	return &Synthesizer{builder: builder}
}

// Synthesize returns the declaration of sym as it should appear in a
// surface filtered by f. Container declarations come back with no members.
func (s *Synthesizer) Synthesize(sym symbol.Symbol, f filter.Filter) (syntax.Decl, error) {
	switch sh := classify(sym).(type) {
	case typeShape:
		decl, err := s.declare(sh.typ)
		if err != nil {
			return nil, err
		}
		td, ok := decl.(*syntax.TypeDecl)
		if !ok {
			return nil, errors.AssertionFailedf("builder returned %T for type %s", decl, sh.typ.DisplayName())
		}
		td.Members = nil
		td.BaseList = BaseList(sh.typ, f)
		return td, nil

	case enumShape:
		decl, err := s.declare(sh.typ)
		if err != nil {
			return nil, err
		}
		ed, ok := decl.(*syntax.EnumDecl)
		if !ok {
			return nil, errors.AssertionFailedf("builder returned %T for enum %s", decl, sh.typ.DisplayName())
		}
		ed.Members = nil
		return ed, nil

	case constructorShape:
		decl, err := s.declare(sh.ctor)
		if err != nil {
			return nil, err
		}
		if sh.ctor.Container == nil || sh.ctor.Container.BaseType == nil {
			return decl, nil
		}
		init := ConstructorInitializer(sh.ctor, f)
		if init == nil {
			return decl, nil
		}
		cd, ok := decl.(*syntax.ConstructorDecl)
		if !ok {
			return nil, errors.AssertionFailedf("builder returned %T for constructor %s", decl, sh.ctor.DisplayName())
		}
		cd.Initializer = init
		return cd, nil

	case eventShape:
		if !sh.abstract {
			return Event(sh.event), nil
		}
		decl, err := s.declare(sh.event)
		if err != nil {
			return nil, err
		}
		return withAbstract(decl), nil

	case otherShape:
		return s.declare(sh.sym)

	default:
		return nil, errors.AssertionFailedf("unhandled symbol shape %T", sh)
	}
}

// declare calls the generic builder, naming the symbol in any failure.
func (s *Synthesizer) declare(sym symbol.Symbol) (syntax.Decl, error) {
	decl, err := s.builder.Declare(sym)
	if err != nil {
		return nil, &SynthesisError{Symbol: displayName(sym), Err: err}
	}
	return decl, nil
}

func displayName(sym symbol.Symbol) string {
	if sym == nil {
		return "<nil>"
	}
	return sym.DisplayName()
}

func withAbstract(decl syntax.Decl) syntax.Decl {
	switch d := decl.(type) {
	case *syntax.EventFieldDecl:
		d.Modifiers = d.Modifiers.With(syntax.ModAbstract)
	case *syntax.EventDecl:
		d.Modifiers = d.Modifiers.With(syntax.ModAbstract)
	}
	return decl
}
