package declare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/symbol"
	"github.com/Luna88k/msbuild/syntax"
)

func external(ns, name string, kind symbol.TypeKind) *symbol.Type {
	return &symbol.Type{
		Common:    symbol.Common{Name: name, Access: symbol.AccessPublic},
		Namespace: ns,
		TypeKind:  kind,
		External:  true,
	}
}

var (
	intType    = external("System", "Int32", symbol.TypeKindStruct)
	stringType = external("System", "String", symbol.TypeKindClass)
	voidType   = external("System", "Void", symbol.TypeKindStruct)
	handler    = external("System", "EventHandler", symbol.TypeKindDelegate)
	disposable = external("System", "IDisposable", symbol.TypeKindInterface)
)

func TestDeclareClassKeepsUnfilteredBasesAndMembers(t *testing.T) {
	hidden := &symbol.Type{Common: symbol.Common{Name: "HiddenBase", Access: symbol.AccessInternal}, Namespace: "Contoso"}
	widget := &symbol.Type{
		Common:     symbol.Common{Name: "Widget", Access: symbol.AccessPublic, Abstract: true},
		Namespace:  "Contoso",
		BaseType:   hidden,
		Interfaces: []*symbol.Type{disposable},
	}
	widget.Members = []symbol.Symbol{
		&symbol.Method{Common: symbol.Common{Name: "Dispose", Access: symbol.AccessPublic, Container: widget}, ReturnType: voidType},
		&symbol.Method{Common: symbol.Common{Name: "get_Count", Access: symbol.AccessPublic, Container: widget}, MethodKind: symbol.MethodPropertyGet, ReturnType: intType},
	}

	decl, err := NewBuilder().Declare(widget)
	require.NoError(t, err)

	td, ok := decl.(*syntax.TypeDecl)
	require.True(t, ok)
	assert.Equal(t, syntax.Class, td.Kind)
	assert.Equal(t, "public", td.Accessibility)
	assert.True(t, td.Modifiers.Has(syntax.ModAbstract))
	assert.Equal(t, []string{"Contoso.HiddenBase", "System.IDisposable"}, td.BaseList)
	require.Len(t, td.Members, 1, "accessors are not declared on their own")
	assert.Equal(t, "Dispose", td.Members[0].(*syntax.MethodDecl).Name)
}

func TestDeclareStructNeverListsBaseClass(t *testing.T) {
	point := &symbol.Type{
		Common:     symbol.Common{Name: "Point", Access: symbol.AccessPublic},
		Namespace:  "Contoso",
		TypeKind:   symbol.TypeKindStruct,
		BaseType:   external("System", "ValueType", symbol.TypeKindClass),
		Interfaces: []*symbol.Type{disposable},
	}

	decl, err := NewBuilder().Declare(point)
	require.NoError(t, err)
	assert.Equal(t, []string{"System.IDisposable"}, decl.(*syntax.TypeDecl).BaseList)
}

func TestDeclareEnum(t *testing.T) {
	color := &symbol.Type{
		Common:     symbol.Common{Name: "Color", Access: symbol.AccessPublic},
		Namespace:  "Contoso",
		TypeKind:   symbol.TypeKindEnum,
		Underlying: external("System", "Byte", symbol.TypeKindStruct),
	}
	color.Members = []symbol.Symbol{
		&symbol.Field{Common: symbol.Common{Name: "Red", Access: symbol.AccessPublic, Static: true, Container: color}, Type: color, Const: true, Value: "0"},
	}

	decl, err := NewBuilder().Declare(color)
	require.NoError(t, err)

	ed := decl.(*syntax.EnumDecl)
	assert.Equal(t, "byte", ed.Underlying)
	assert.Equal(t, []syntax.Decl{&syntax.EnumMemberDecl{Name: "Red", Value: "0"}}, ed.Members)
}

func TestDeclareConstructorHasNoInitializer(t *testing.T) {
	widget := &symbol.Type{Common: symbol.Common{Name: "Widget", Access: symbol.AccessPublic}, Namespace: "Contoso",
		BaseType: &symbol.Type{Common: symbol.Common{Name: "Base", Access: symbol.AccessPublic}, Namespace: "Contoso"}}
	ctor := &symbol.Method{
		Common:     symbol.Common{Name: ".ctor", Access: symbol.AccessProtected, Container: widget},
		MethodKind: symbol.MethodConstructor,
		Parameters: []*symbol.Parameter{{Name: "id", Type: intType}},
	}

	decl, err := NewBuilder().Declare(ctor)
	require.NoError(t, err)
	assert.Equal(t, &syntax.ConstructorDecl{
		Accessibility: "protected",
		Name:          "Widget",
		Parameters:    []syntax.Parameter{{Type: "int", Name: "id"}},
	}, decl)
}

func TestDeclareStaticConstructor(t *testing.T) {
	widget := &symbol.Type{Common: symbol.Common{Name: "Widget", Access: symbol.AccessPublic}, Namespace: "Contoso"}
	cctor := &symbol.Method{
		Common:     symbol.Common{Name: ".cctor", Access: symbol.AccessPrivate, Static: true, Container: widget},
		MethodKind: symbol.MethodStaticConstructor,
	}

	decl, err := NewBuilder().Declare(cctor)
	require.NoError(t, err)
	assert.Equal(t, "static Widget() { }\n", syntax.Format(decl))
}

func TestDeclareEventIsFieldLikeAndNeverAbstract(t *testing.T) {
	widget := &symbol.Type{Common: symbol.Common{Name: "Widget", Access: symbol.AccessPublic, Abstract: true}, Namespace: "Contoso"}
	ev := &symbol.Event{
		Common: symbol.Common{Name: "Changed", Access: symbol.AccessPublic, Abstract: true, Container: widget},
		Type:   handler,
	}

	decl, err := NewBuilder().Declare(ev)
	require.NoError(t, err)
	assert.Equal(t, &syntax.EventFieldDecl{Accessibility: "public", Type: "System.EventHandler", Name: "Changed"}, decl)
}

func TestDeclareProperty(t *testing.T) {
	widget := &symbol.Type{Common: symbol.Common{Name: "Widget", Access: symbol.AccessPublic}, Namespace: "Contoso"}
	prop := &symbol.Property{
		Common:    symbol.Common{Name: "Label", Access: symbol.AccessPublic, Virtual: true, Container: widget},
		Type:      stringType,
		HasGet:    true,
		HasSet:    true,
		SetAccess: symbol.AccessProtected,
	}

	decl, err := NewBuilder().Declare(prop)
	require.NoError(t, err)
	assert.Equal(t, "public virtual string Label { get { throw null; } protected set { } }\n", syntax.Format(decl))
}

func TestDeclareConst(t *testing.T) {
	widget := &symbol.Type{Common: symbol.Common{Name: "Widget", Access: symbol.AccessPublic}, Namespace: "Contoso"}
	maxField := &symbol.Field{Common: symbol.Common{Name: "Max", Access: symbol.AccessPublic, Static: true, Container: widget},
		Type: intType, Const: true, Value: "10"}

	decl, err := NewBuilder().Declare(maxField)
	require.NoError(t, err)
	assert.Equal(t, "public const int Max = 10;\n", syntax.Format(decl))
}

func TestDeclareInterfaceMembersOmitAccessibility(t *testing.T) {
	iface := &symbol.Type{Common: symbol.Common{Name: "IWidget", Access: symbol.AccessPublic}, Namespace: "Contoso", TypeKind: symbol.TypeKindInterface}
	m := &symbol.Method{Common: symbol.Common{Name: "Run", Access: symbol.AccessPublic, Abstract: true, Container: iface}, ReturnType: voidType}

	decl, err := NewBuilder().Declare(m)
	require.NoError(t, err)
	assert.Equal(t, &syntax.MethodDecl{ReturnType: "void", Name: "Run"}, decl)
}

func TestDeclareExplicitImplementation(t *testing.T) {
	widget := &symbol.Type{Common: symbol.Common{Name: "Widget", Access: symbol.AccessPublic}, Namespace: "Contoso"}
	m := &symbol.Method{Common: symbol.Common{Name: "Dispose", Access: symbol.AccessPrivate, Container: widget},
		ReturnType: voidType, ExplicitInterface: disposable}

	decl, err := NewBuilder().Declare(m)
	require.NoError(t, err)
	assert.Equal(t, "void System.IDisposable.Dispose() { }\n", syntax.Format(decl))
}

func TestDeclareOperators(t *testing.T) {
	money := &symbol.Type{Common: symbol.Common{Name: "Money", Access: symbol.AccessPublic}, Namespace: "Contoso", TypeKind: symbol.TypeKindStruct}
	add := &symbol.Method{Common: symbol.Common{Name: "op_Addition", Access: symbol.AccessPublic, Static: true, Container: money},
		MethodKind: symbol.MethodOperator, ReturnType: money,
		Parameters: []*symbol.Parameter{{Name: "a", Type: money}, {Name: "b", Type: money}}}
	conv := &symbol.Method{Common: symbol.Common{Name: "op_Explicit", Access: symbol.AccessPublic, Static: true, Container: money},
		MethodKind: symbol.MethodConversion, ReturnType: intType,
		Parameters: []*symbol.Parameter{{Name: "value", Type: money}}}

	decl, err := NewBuilder().Declare(add)
	require.NoError(t, err)
	assert.Equal(t, "public static Contoso.Money operator +(Contoso.Money a, Contoso.Money b) { throw null; }\n", syntax.Format(decl))

	decl, err = NewBuilder().Declare(conv)
	require.NoError(t, err)
	assert.Equal(t, "public static explicit operator int(Contoso.Money value) { throw null; }\n", syntax.Format(decl))
}

func TestDeclareUnsupportedShapes(t *testing.T) {
	widget := &symbol.Type{Common: symbol.Common{Name: "Widget", Access: symbol.AccessPublic}, Namespace: "Contoso"}

	tests := []struct {
		name string
		sym  symbol.Symbol
	}{
		{"destructor", &symbol.Method{Common: symbol.Common{Name: "Finalize", Container: widget}, MethodKind: symbol.MethodDestructor}},
		{"accessor", &symbol.Method{Common: symbol.Common{Name: "add_Changed", Container: widget}, MethodKind: symbol.MethodEventAdd}},
		{"unknown operator", &symbol.Method{Common: symbol.Common{Name: "op_Pow", Container: widget}, MethodKind: symbol.MethodOperator}},
		{"array type", &symbol.Type{TypeKind: symbol.TypeKindArray, ElementType: intType, Rank: 1}},
		{"delegate without signature", &symbol.Type{Common: symbol.Common{Name: "Callback"}, TypeKind: symbol.TypeKindDelegate}},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().Declare(tt.sym)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestDeclareDelegate(t *testing.T) {
	callback := &symbol.Type{
		Common:    symbol.Common{Name: "Callback", Access: symbol.AccessPublic},
		Namespace: "Contoso",
		TypeKind:  symbol.TypeKindDelegate,
		Invoke: &symbol.Method{Common: symbol.Common{Name: "Invoke"}, ReturnType: voidType,
			Parameters: []*symbol.Parameter{{Name: "value", Type: stringType, Annotation: symbol.NullableAnnotated}}},
	}

	decl, err := NewBuilder().Declare(callback)
	require.NoError(t, err)
	assert.Equal(t, "public delegate void Callback(string? value);\n", syntax.Format(decl))
}
