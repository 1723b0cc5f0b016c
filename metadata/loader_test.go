package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/symbol"
)

const widgetsManifest = `
assembly: Contoso.Widgets
version: 1.4.0
types:
  - name: Contoso.Widgets.Widget
    kind: class
    accessibility: public
    base: Contoso.Core.Component
    interfaces: [System.IDisposable, Contoso.Widgets.IWidget]
    members:
      - kind: constructor
        accessibility: public
        parameters:
          - {name: label, type: string?}
          - {name: count, type: int, default: "0"}
      - kind: method
        name: Dispose
        accessibility: public
      - kind: event
        name: Changed
        accessibility: public
        type: System.EventHandler?
      - kind: property
        name: Label
        accessibility: public
        type: string
        get: true
        set: true
        setAccessibility: protected
      - kind: property
        accessibility: public
        type: int
        parameters: [{name: index, type: int}]
      - kind: operator
        name: op_Equality
        accessibility: public
        returns: bool
        parameters: [{name: a, type: Contoso.Widgets.Widget}, {name: b, type: Contoso.Widgets.Widget}]
  - name: Contoso.Widgets.Widget+Part
    kind: struct
    accessibility: public
  - name: Contoso.Widgets.IWidget
    kind: interface
    accessibility: public
    members:
      - kind: method
        name: Render
        returns: Contoso.Widgets.Widget.Part[]
        typeParameters: [TContext]
        parameters: [{name: context, type: TContext, refKind: in}]
      - kind: event
        name: Rendered
        type: System.EventHandler
  - name: Contoso.Widgets.Color
    kind: enum
    accessibility: public
    underlying: byte
    members:
      - {name: Red, value: "0"}
      - {name: Green, value: "1"}
  - name: Contoso.Widgets.Callback
    kind: delegate
    accessibility: public
    returns: void
    parameters: [{name: value, type: "int?"}]
  - name: Contoso.Widgets.Box
    accessibility: public
    typeParameters: [T]
    members:
      - kind: constructor
        accessibility: protected
        parameters: [{name: value, type: T}]
      - kind: method
        name: Legacy
        accessibility: public
        attributes:
          - type: Obsolete
            arguments: ['"use Modern"', "true"]
references:
  - name: Contoso.Core.Component
    kind: class
    accessibility: public
    abstract: true
    members:
      - kind: constructor
        accessibility: protected
        parameters: [{name: id, type: int}]
`

func findType(t *testing.T, asm *symbol.Assembly, name string) *symbol.Type {
	t.Helper()
	for _, typ := range asm.Types {
		if typ.FullName() == name {
			return typ
		}
	}
	t.Fatalf("type %s not found", name)
	return nil
}

func findMember(t *testing.T, typ *symbol.Type, name string) symbol.Symbol {
	t.Helper()
	for _, m := range typ.Members {
		if m.MetadataName() == name {
			return m
		}
	}
	t.Fatalf("member %s not found in %s", name, typ.FullName())
	return nil
}

func TestParseManifest(t *testing.T) {
	asm, err := Parse([]byte(widgetsManifest))
	require.NoError(t, err)

	assert.Equal(t, "Contoso.Widgets", asm.Name)
	assert.Equal(t, "1.4.0", asm.Version)

	names := make([]string, len(asm.Types))
	for i, typ := range asm.Types {
		names[i] = typ.FullName()
	}
	assert.Equal(t, []string{
		"Contoso.Widgets.Widget",
		"Contoso.Widgets.IWidget",
		"Contoso.Widgets.Color",
		"Contoso.Widgets.Callback",
		"Contoso.Widgets.Box",
	}, names, "top-level defined types in manifest order, references excluded")
}

func TestParseResolvesBasesAndInterfaces(t *testing.T) {
	asm, err := Parse([]byte(widgetsManifest))
	require.NoError(t, err)

	widget := findType(t, asm, "Contoso.Widgets.Widget")
	require.NotNil(t, widget.BaseType)
	assert.Equal(t, "Contoso.Core.Component", widget.BaseType.DisplayName())
	assert.True(t, widget.BaseType.External)
	assert.True(t, widget.BaseType.Abstract)
	require.Len(t, widget.BaseType.Constructors(), 1)

	require.Len(t, widget.Interfaces, 2)
	assert.Equal(t, "System.IDisposable", widget.Interfaces[0].DisplayName())
	assert.Same(t, findType(t, asm, "Contoso.Widgets.IWidget"), widget.Interfaces[1])
}

func TestParseMembers(t *testing.T) {
	asm, err := Parse([]byte(widgetsManifest))
	require.NoError(t, err)
	widget := findType(t, asm, "Contoso.Widgets.Widget")

	ctor := findMember(t, widget, ".ctor").(*symbol.Method)
	assert.Equal(t, symbol.MethodConstructor, ctor.MethodKind)
	assert.Equal(t, "Contoso.Widgets.Widget.Widget(string?, int)", ctor.DisplayName())
	assert.Equal(t, symbol.NullableAnnotated, ctor.Parameters[0].Annotation)
	assert.Equal(t, "0", ctor.Parameters[1].Default)

	dispose := findMember(t, widget, "Dispose").(*symbol.Method)
	assert.Equal(t, "void", dispose.ReturnType.DisplayName())

	changed := findMember(t, widget, "Changed").(*symbol.Event)
	assert.Equal(t, symbol.NullableAnnotated, changed.Annotation)
	assert.False(t, changed.Abstract)

	label := findMember(t, widget, "Label").(*symbol.Property)
	assert.True(t, label.HasGet)
	assert.True(t, label.HasSet)
	assert.Equal(t, symbol.AccessProtected, label.SetAccess)
	assert.Equal(t, symbol.NullableNotAnnotated, label.Annotation)

	indexer := findMember(t, widget, "Item").(*symbol.Property)
	assert.True(t, indexer.HasGet, "get is implied when no accessor is listed")
	assert.Equal(t, "P:Contoso.Widgets.Widget.Item(System.Int32)", indexer.DocID())

	eq := findMember(t, widget, "op_Equality").(*symbol.Method)
	assert.Equal(t, symbol.MethodOperator, eq.MethodKind)
	assert.True(t, eq.Static)

	part := findMember(t, widget, "Part").(*symbol.Type)
	assert.Equal(t, "Contoso.Widgets.Widget.Part", part.DisplayName())
	assert.Equal(t, "Contoso.Widgets", part.Namespace)
	assert.Same(t, widget, part.Container)
}

func TestParseInterfaceMembersAreAbstract(t *testing.T) {
	asm, err := Parse([]byte(widgetsManifest))
	require.NoError(t, err)
	iwidget := findType(t, asm, "Contoso.Widgets.IWidget")

	render := findMember(t, iwidget, "Render").(*symbol.Method)
	assert.True(t, render.Abstract)
	assert.Equal(t, symbol.AccessPublic, render.Access)
	assert.Equal(t, "Contoso.Widgets.Widget.Part[]", render.ReturnType.DisplayName())
	require.Len(t, render.Parameters, 1)
	assert.Equal(t, symbol.TypeKindTypeParameter, render.Parameters[0].Type.TypeKind)
	assert.True(t, render.Parameters[0].Type.MethodTypeParameter)
	assert.Equal(t, symbol.RefIn, render.Parameters[0].RefKind)
	assert.Equal(t, "M:Contoso.Widgets.IWidget.Render``1(``0@)", render.DocID())

	rendered := findMember(t, iwidget, "Rendered").(*symbol.Event)
	assert.True(t, rendered.Abstract)
}

func TestParseEnumAndDelegate(t *testing.T) {
	asm, err := Parse([]byte(widgetsManifest))
	require.NoError(t, err)

	color := findType(t, asm, "Contoso.Widgets.Color")
	assert.Equal(t, "byte", color.Underlying.DisplayName())
	require.Len(t, color.Members, 2)
	green := color.Members[1].(*symbol.Field)
	assert.Equal(t, "1", green.Value)
	assert.True(t, green.Const)
	assert.Same(t, color, green.Type)

	callback := findType(t, asm, "Contoso.Widgets.Callback")
	require.NotNil(t, callback.Invoke)
	param := callback.Invoke.Parameters[0]
	assert.Equal(t, "int?", param.Type.DisplayName())
	assert.True(t, param.Type.IsValueType())
}

func TestParseGenericsAndAttributes(t *testing.T) {
	asm, err := Parse([]byte(widgetsManifest))
	require.NoError(t, err)
	box := findType(t, asm, "Contoso.Widgets.Box")

	ctor := findMember(t, box, ".ctor").(*symbol.Method)
	assert.Equal(t, symbol.TypeKindTypeParameter, ctor.Parameters[0].Type.TypeKind)
	assert.Equal(t, 0, ctor.Parameters[0].Type.Ordinal)

	legacy := findMember(t, box, "Legacy")
	require.Len(t, legacy.Attributes(), 1)
	assert.Equal(t, symbol.Attribute{Type: "System.ObsoleteAttribute", Arguments: []string{`"use Modern"`, "true"}}, legacy.Attributes()[0])
}

func TestParseImplicitObjectBase(t *testing.T) {
	asm, err := Parse([]byte(`
assembly: A
version: 1.0.0
types:
  - {name: A.Plain, accessibility: public, base: object}
  - {name: A.Explicit, accessibility: public, base: System.Object}
`))
	require.NoError(t, err)
	for _, typ := range asm.Types {
		assert.Nil(t, typ.BaseType, typ.FullName())
	}
}

func TestParseUnknownTypesBecomeExternalClasses(t *testing.T) {
	asm, err := Parse([]byte(`
assembly: A
version: 1.0.0
types:
  - name: A.Holder
    accessibility: public
    members:
      - {kind: field, name: Items, accessibility: public, type: "System.Collections.Generic.Dictionary<string, int?>"}
      - {kind: field, name: Other, accessibility: public, type: Vendor.Thing}
`))
	require.NoError(t, err)
	holder := asm.Types[0]

	items := findMember(t, holder, "Items").(*symbol.Field)
	assert.Equal(t, "System.Collections.Generic.Dictionary<string, int?>", items.Type.DisplayName())
	assert.True(t, items.Type.Definition.External)

	other := findMember(t, holder, "Other").(*symbol.Field)
	assert.Equal(t, "Vendor.Thing", other.Type.DisplayName())
	assert.Equal(t, symbol.AccessPublic, other.Type.Access)
}

func TestParseNullableContextDisabled(t *testing.T) {
	asm, err := Parse([]byte(`
assembly: A
version: 1.0.0
nullableContext: disabled
types:
  - name: A.Holder
    accessibility: public
    members:
      - {kind: field, name: Name, accessibility: public, type: string}
`))
	require.NoError(t, err)
	name := findMember(t, asm.Types[0], "Name").(*symbol.Field)
	assert.Equal(t, symbol.NullableOblivious, name.Annotation)
}

func TestParseDefaultAccessibility(t *testing.T) {
	asm, err := Parse([]byte(`
assembly: A
version: 1.0.0
types:
  - name: A.Outer
    members:
      - {kind: method, name: Run}
  - name: A.Outer+Inner
`))
	require.NoError(t, err)
	outer := asm.Types[0]
	assert.Equal(t, symbol.AccessInternal, outer.Access)
	assert.Equal(t, symbol.AccessPrivate, findMember(t, outer, "Run").Accessibility())
	assert.Equal(t, symbol.AccessPrivate, findMember(t, outer, "Inner").Accessibility())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"empty", ``},
		{"missing assembly", "version: 1.0.0\ntypes: []\n"},
		{"bad version", "assembly: A\nversion: one\n"},
		{"unknown key", "assembly: A\nversion: 1.0.0\ncolour: red\n"},
		{"unknown kind", "assembly: A\nversion: 1.0.0\ntypes:\n  - {name: A.T, kind: record}\n"},
		{"unknown accessibility", "assembly: A\nversion: 1.0.0\ntypes:\n  - {name: A.T, accessibility: friend}\n"},
		{"duplicate", "assembly: A\nversion: 1.0.0\ntypes:\n  - {name: A.T}\n  - {name: A.T}\n"},
		{"malformed reference", "assembly: A\nversion: 1.0.0\ntypes:\n  - {name: A.T, base: 'List<'}\n"},
		{"struct base", "assembly: A\nversion: 1.0.0\ntypes:\n  - {name: A.T, kind: struct, base: A.U}\n"},
		{"orphan nested", "assembly: A\nversion: 1.0.0\ntypes:\n  - {name: A.Missing+T}\n"},
		{"unknown member kind", "assembly: A\nversion: 1.0.0\ntypes:\n  - name: A.T\n    members: [{kind: indexer, name: X}]\n"},
		{"unknown operator", "assembly: A\nversion: 1.0.0\ntypes:\n  - name: A.T\n    members: [{kind: operator, name: op_Pow}]\n"},
		{"arity mismatch", "assembly: A\nversion: 1.0.0\ntypes:\n  - name: A.T\n    members: [{kind: field, name: X, type: 'System.Nullable<int, int>'}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.manifest))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidManifest), "got %v", err)
		})
	}
}

func TestParseErrorHintsNameTheEntry(t *testing.T) {
	_, err := Parse([]byte("assembly: A\nversion: 1.0.0\ntypes:\n  - name: A.T\n    members: [{kind: event, name: E}]\n"))
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "in type A.T")
}

func TestParseJSON(t *testing.T) {
	asm, err := Parse([]byte(`{"assembly": "A", "version": "2.0.0", "types": [{"name": "A.T", "accessibility": "public"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "A.T", asm.Types[0].FullName())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widgets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(widgetsManifest), 0o644))

	asm, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Contoso.Widgets", asm.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestCheckVersion(t *testing.T) {
	asm := &symbol.Assembly{Name: "A", Version: "1.4.0"}

	assert.NoError(t, CheckVersion(asm, ""))
	assert.NoError(t, CheckVersion(asm, ">= 1.0, < 2.0"))
	assert.Error(t, CheckVersion(asm, ">= 2.0"))

	err := CheckVersion(asm, "not a constraint")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}
