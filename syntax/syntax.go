// Package syntax defines the declaration nodes emitted for an API surface
// and prints them as C# source.
//
// Nodes carry rendered type expressions and accessibility keywords as
// strings, so the tree has no dependency on the symbol model and two trees
// compare equal with reflect.DeepEqual or cmp.Diff when they would print
// the same.
package syntax

import "strings"

// Decl is a declaration node. The set of implementations is closed.
type Decl interface {
	decl()
}

// Expr is an expression node used in constructor initializers.
type Expr interface {
	expr()
}

// Modifiers is a set of declaration modifiers.
type Modifiers uint16

const (
	ModNew Modifiers = 1 << iota
	ModConst
	ModStatic
	ModAbstract
	ModVirtual
	ModSealed
	ModOverride
	ModReadOnly
)

var modifierKeywords = []struct {
	mod     Modifiers
	keyword string
}{
	{ModNew, "new"},
	{ModConst, "const"},
	{ModStatic, "static"},
	{ModAbstract, "abstract"},
	{ModVirtual, "virtual"},
	{ModSealed, "sealed"},
	{ModOverride, "override"},
	{ModReadOnly, "readonly"},
}

// Has reports whether every modifier in x is set.
func (m Modifiers) Has(x Modifiers) bool { return m&x == x }

// With returns m with x added.
func (m Modifiers) With(x Modifiers) Modifiers { return m | x }

// Without returns m with x removed.
func (m Modifiers) Without(x Modifiers) Modifiers { return m &^ x }

// Keywords returns the modifier keywords in canonical order.
func (m Modifiers) Keywords() []string {
	var out []string
	for _, mk := range modifierKeywords {
		if m.Has(mk.mod) {
			out = append(out, mk.keyword)
		}
	}
	return out
}

func (m Modifiers) String() string {
	return strings.Join(m.Keywords(), " ")
}

// TypeKind is the keyword of a type declaration.
type TypeKind int

const (
	Class TypeKind = iota
	Struct
	Interface
)

func (k TypeKind) String() string {
	switch k {
	case Struct:
		return "struct"
	case Interface:
		return "interface"
	default:
		return "class"
	}
}

// TypeDecl declares a class, struct or interface. A nil BaseList means the
// declaration has no base clause at all.
type TypeDecl struct {
	Kind           TypeKind
	Accessibility  string
	Modifiers      Modifiers
	Name           string
	TypeParameters []string
	BaseList       []string
	Members        []Decl
}

// EnumDecl declares an enum. Underlying is "" for the default int.
type EnumDecl struct {
	Accessibility string
	Name          string
	Underlying    string
	Members       []Decl
}

// EnumMemberDecl declares one enum member.
type EnumMemberDecl struct {
	Name  string
	Value string
}

// DelegateDecl declares a delegate type.
type DelegateDecl struct {
	Accessibility  string
	Name           string
	TypeParameters []string
	ReturnType     string
	Parameters     []Parameter
}

// MethodDecl declares an ordinary method. Name includes the explicit
// interface prefix when there is one.
type MethodDecl struct {
	Accessibility  string
	Modifiers      Modifiers
	ReturnType     string
	Name           string
	TypeParameters []string
	Parameters     []Parameter
}

// OperatorDecl declares a user-defined operator or, when Conversion is
// set, an implicit or explicit conversion (Operator is then "implicit" or
// "explicit").
type OperatorDecl struct {
	Accessibility string
	Modifiers     Modifiers
	ReturnType    string
	Operator      string
	Conversion    bool
	Parameters    []Parameter
}

// ConstructorDecl declares an instance or static constructor.
type ConstructorDecl struct {
	Accessibility string
	Modifiers     Modifiers
	Name          string
	Parameters    []Parameter
	Initializer   *ConstructorInitializer
}

// ConstructorInitializer is a ": base(...)" or ": this(...)" chaining call.
type ConstructorInitializer struct {
	This      bool
	Arguments []Expr
}

// DefaultLiteral is "default(T)", or "default(T)!" when SuppressNullable
// is set.
type DefaultLiteral struct {
	Type             string
	SuppressNullable bool
}

// FieldDecl declares a field or constant. Value is the constant initializer.
type FieldDecl struct {
	Accessibility string
	Modifiers     Modifiers
	Type          string
	Name          string
	Value         string
}

// AccessorKind is the keyword of a property or event accessor.
type AccessorKind int

const (
	Get AccessorKind = iota
	Set
	Init
	Add
	Remove
)

func (k AccessorKind) String() string {
	switch k {
	case Set:
		return "set"
	case Init:
		return "init"
	case Add:
		return "add"
	case Remove:
		return "remove"
	default:
		return "get"
	}
}

// Accessor is a property or event accessor. Accessibility is "" when it
// matches the owning member.
type Accessor struct {
	Kind          AccessorKind
	Accessibility string
}

// PropertyDecl declares a property, or an indexer when Parameters is
// non-empty.
type PropertyDecl struct {
	Accessibility string
	Modifiers     Modifiers
	Type          string
	Name          string
	Parameters    []Parameter
	Accessors     []Accessor
}

// EventFieldDecl declares a field-like event: "event T Name;".
type EventFieldDecl struct {
	Accessibility string
	Modifiers     Modifiers
	Type          string
	Name          string
}

// EventDecl declares an event with explicit accessors.
type EventDecl struct {
	Accessibility string
	Modifiers     Modifiers
	Type          string
	Name          string
	Accessors     []Accessor
}

// Parameter is a parameter in a signature. Modifier is "ref", "out",
// "in", "params" or "".
type Parameter struct {
	Modifier string
	Type     string
	Name     string
	Default  string
}

// NamespaceDecl groups top-level declarations.
type NamespaceDecl struct {
	Name    string
	Members []Decl
}

// CompilationUnit is a complete surface file.
type CompilationUnit struct {
	Header     []string
	Namespaces []*NamespaceDecl
}

func (*TypeDecl) decl()        {}
func (*EnumDecl) decl()        {}
func (*EnumMemberDecl) decl()  {}
func (*DelegateDecl) decl()    {}
func (*MethodDecl) decl()      {}
func (*OperatorDecl) decl()    {}
func (*ConstructorDecl) decl() {}
func (*FieldDecl) decl()       {}
func (*PropertyDecl) decl()    {}
func (*EventFieldDecl) decl()  {}
func (*EventDecl) decl()       {}
func (*NamespaceDecl) decl()   {}

func (*DefaultLiteral) expr() {}
