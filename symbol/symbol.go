// Package symbol is the read-only model of a compiled library's declared
// elements: types, methods, events, fields and properties.
//
// Symbols are built once by the metadata loader and never mutated
// afterwards, so they may be read from any number of goroutines.
package symbol

// Symbol is a declared program element. The set of implementations is
// closed: *Type, *Method, *Event, *Field and *Property.
type Symbol interface {
	Kind() Kind
	MetadataName() string
	DisplayName() string
	DocID() string
	Accessibility() Accessibility
	Attributes() []Attribute
	ContainingType() *Type
	IsAbstract() bool
	IsStatic() bool

	// Info exposes the fields shared by every symbol.
	Info() *Common

	common() *Common
}

// Attribute is a custom attribute applied to a symbol. Arguments are the
// positional constructor arguments as source literals.
type Attribute struct {
	Type      string
	Arguments []string
}

// Common holds the fields shared by every symbol.
type Common struct {
	Name      string
	Access    Accessibility
	Attrs     []Attribute
	Container *Type

	Abstract bool
	Sealed   bool
	Static   bool
	Virtual  bool
	Override bool
	ReadOnly bool
}

func (c *Common) common() *Common { return c }

func (c *Common) Info() *Common { return c }

func (c *Common) MetadataName() string         { return c.Name }
func (c *Common) Accessibility() Accessibility { return c.Access }
func (c *Common) Attributes() []Attribute      { return c.Attrs }
func (c *Common) ContainingType() *Type        { return c.Container }
func (c *Common) IsAbstract() bool             { return c.Abstract }
func (c *Common) IsStatic() bool               { return c.Static }

// HasAttribute reports whether an attribute of the given fully qualified
// type is applied to the symbol.
func (c *Common) HasAttribute(typeName string) bool {
	for _, a := range c.Attrs {
		if a.Type == typeName {
			return true
		}
	}
	return false
}

// Type is a named type, a constructed generic type, an array or a type
// parameter.
type Type struct {
	Common

	Namespace string
	TypeKind  TypeKind

	// BaseType is nil when the base is implicit (System.Object for classes,
	// System.ValueType for structs, System.Enum for enums).
	BaseType   *Type
	Interfaces []*Type

	TypeParameters []string

	// Definition and TypeArguments are set on constructed generic types.
	Definition    *Type
	TypeArguments []*Type

	// ElementType and Rank are set on arrays.
	ElementType *Type
	Rank        int

	// Ordinal and MethodTypeParameter are set on type parameters.
	Ordinal             int
	MethodTypeParameter bool

	// Underlying is the enum underlying type; nil means int.
	Underlying *Type

	// Invoke is the delegate signature.
	Invoke *Method

	Members []Symbol

	// External is true for types defined outside the loaded assembly.
	External bool
}

func (t *Type) Kind() Kind { return KindType }

// IsValueType reports whether the type is a struct or an enum.
func (t *Type) IsValueType() bool {
	switch t.TypeKind {
	case TypeKindStruct, TypeKindEnum:
		return true
	default:
		return false
	}
}

// OriginalDefinition returns the generic definition for constructed types
// and the type itself otherwise.
func (t *Type) OriginalDefinition() *Type {
	if t.Definition != nil {
		return t.Definition
	}
	return t
}

// Constructors returns the instance constructors in declaration order.
// Parameter types of constructed generic types are substituted with the
// type arguments; each copy links back to its declared constructor through
// Definition.
func (t *Type) Constructors() []*Method {
	def := t.OriginalDefinition()

	var ctors []*Method
	for _, m := range def.Members {
		if method, ok := m.(*Method); ok && method.MethodKind == MethodConstructor {
			ctors = append(ctors, method)
		}
	}

	if t.Definition == nil || len(t.TypeArguments) == 0 {
		return ctors
	}

	substituted := make([]*Method, len(ctors))
	for i, ctor := range ctors {
		substituted[i] = ctor.substitute(t)
	}
	return substituted
}

// Method is any method-like member: ordinary methods, constructors,
// operators, conversions and accessors.
type Method struct {
	Common

	MethodKind       MethodKind
	ReturnType       *Type
	ReturnAnnotation NullableAnnotation
	Parameters       []*Parameter
	TypeParameters   []string

	// ExplicitInterface is set on explicit interface implementations.
	ExplicitInterface *Type

	// Definition is the declared method when this one is a member of a
	// constructed generic type; nil otherwise.
	Definition *Method
}

func (m *Method) Kind() Kind { return KindMethod }

// OriginalDefinition returns the declared method for members of
// constructed types and the method itself otherwise.
func (m *Method) OriginalDefinition() *Method {
	if m.Definition != nil {
		return m.Definition
	}
	return m
}

// substitute returns a copy of m whose parameter types have the type
// arguments of the constructed type in place of its type parameters.
func (m *Method) substitute(constructed *Type) *Method {
	cp := *m
	cp.Container = constructed
	cp.Definition = m.OriginalDefinition()
	cp.Parameters = make([]*Parameter, len(m.Parameters))
	for i, p := range m.Parameters {
		pc := *p
		pc.Type = Substitute(p.Type, constructed.TypeArguments)
		cp.Parameters[i] = &pc
	}
	return &cp
}

// Parameter is a method, constructor, indexer or delegate parameter.
type Parameter struct {
	Name       string
	Type       *Type
	Annotation NullableAnnotation
	RefKind    RefKind
	IsParams   bool

	// Default is the explicit default value as a source literal; "" when
	// the parameter is required.
	Default string
}

// Event is an event member.
type Event struct {
	Common

	Type              *Type
	Annotation        NullableAnnotation
	ExplicitInterface *Type
}

func (e *Event) Kind() Kind { return KindEvent }

// Field is a field, constant or enum member.
type Field struct {
	Common

	Type       *Type
	Annotation NullableAnnotation
	Const      bool

	// Value is the constant value as a source literal.
	Value string
}

func (f *Field) Kind() Kind { return KindField }

// Property is a property or an indexer (when Parameters is non-empty).
type Property struct {
	Common

	Type       *Type
	Annotation NullableAnnotation
	Parameters []*Parameter

	HasGet  bool
	HasSet  bool
	InitSet bool

	// GetAccess and SetAccess are AccessNotApplicable when the accessor
	// shares the property's accessibility.
	GetAccess Accessibility
	SetAccess Accessibility

	ExplicitInterface *Type
}

func (p *Property) Kind() Kind { return KindProperty }

// Assembly is a loaded library.
type Assembly struct {
	Name    string
	Version string

	// Types are the top-level types defined in the assembly, in manifest order.
	Types []*Type
}
