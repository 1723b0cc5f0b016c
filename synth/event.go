package synth

import (
	"github.com/Luna88k/msbuild/declare"
	"github.com/Luna88k/msbuild/symbol"
	"github.com/Luna88k/msbuild/syntax"
)

// Event rebuilds an event with explicit add and remove accessors.
func Event(e *symbol.Event) *syntax.EventDecl {
	return &syntax.EventDecl{
		Accessibility: declare.AccessibilityKeyword(e),
		Modifiers:     declare.Modifiers(e).Without(syntax.ModAbstract),
		Type:          symbol.TypeString(e.Type, e.Annotation),
		Name:          declare.MemberName(e.Name, e.ExplicitInterface),
		Accessors: []syntax.Accessor{
			{Kind: syntax.Add},
			{Kind: syntax.Remove},
		},
	}
}
