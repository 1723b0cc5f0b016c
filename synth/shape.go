package synth

import "github.com/Luna88k/msbuild/symbol"

// shape is the closed set of symbol shapes the synthesizer treats
// differently. classify picks exactly one for every symbol.
type shape interface {
	isShape()
}

// typeShape is a class, struct or interface.
type typeShape struct {
	typ *symbol.Type
}

// enumShape is an enum type.
type enumShape struct {
	typ *symbol.Type
}

// constructorShape is an instance constructor.
type constructorShape struct {
	ctor *symbol.Method
}

// eventShape is an event.
type eventShape struct {
	event    *symbol.Event
	abstract bool
}

// otherShape is everything the generic builder handles unmodified.
type otherShape struct {
	sym symbol.Symbol
}

func (typeShape) isShape()        {}
func (enumShape) isShape()        {}
func (constructorShape) isShape() {}
func (eventShape) isShape()       {}
func (otherShape) isShape()       {}

func classify(sym symbol.Symbol) shape {
	switch s := sym.(type) {
	case *symbol.Type:
		switch s.TypeKind {
		case symbol.TypeKindClass, symbol.TypeKindStruct, symbol.TypeKindInterface:
			return typeShape{typ: s}
		case symbol.TypeKindEnum:
			return enumShape{typ: s}
		}
	case *symbol.Method:
		if s.MethodKind == symbol.MethodConstructor {
			return constructorShape{ctor: s}
		}
	case *symbol.Event:
		return eventShape{event: s, abstract: s.Abstract}
	}
	return otherShape{sym: sym}
}
