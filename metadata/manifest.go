// Package metadata loads a compiled library's metadata manifest into the
// symbol model.
//
// A manifest is a YAML (or JSON) document listing the library's types and
// members, plus any external types it references:
//
//	assembly: Contoso.Widgets
//	version: 1.4.0
//	types:
//	  - name: Contoso.Widgets.Widget
//	    kind: class
//	    accessibility: public
//	    base: Contoso.Core.Component
//	    members:
//	      - kind: constructor
//	        accessibility: public
//	        parameters:
//	          - {name: label, type: string?}
//	references:
//	  - name: Contoso.Core.Component
//	    kind: class
//	    accessibility: public
//	    members:
//	      - {kind: constructor, accessibility: protected, parameters: [{name: id, type: int}]}
package metadata

// Manifest is the document root.
type Manifest struct {
	// Assembly is the library name
	Assembly string `yaml:"assembly"`

	// Version is the library version (semver)
	Version string `yaml:"version"`

	// NullableContext is "enabled" (default) or "disabled". In a disabled
	// context reference types without '?' are oblivious rather than
	// non-nullable.
	NullableContext string `yaml:"nullableContext,omitempty"`

	// Types are the types defined by the library, in declaration order
	Types []TypeEntry `yaml:"types"`

	// References are external types the library depends on
	References []TypeEntry `yaml:"references,omitempty"`
}

// TypeEntry describes a type definition.
type TypeEntry struct {
	// Name is fully qualified; nested types use '+' ("Ns.Outer+Inner")
	Name string `yaml:"name"`

	// Kind is class, struct, interface, enum or delegate (default class)
	Kind string `yaml:"kind,omitempty"`

	Accessibility string `yaml:"accessibility,omitempty"`

	Abstract bool `yaml:"abstract,omitempty"`
	Sealed   bool `yaml:"sealed,omitempty"`
	Static   bool `yaml:"static,omitempty"`
	ReadOnly bool `yaml:"readonly,omitempty"`

	Base           string   `yaml:"base,omitempty"`
	Interfaces     []string `yaml:"interfaces,omitempty"`
	TypeParameters []string `yaml:"typeParameters,omitempty"`

	// Underlying is the enum underlying type (default int)
	Underlying string `yaml:"underlying,omitempty"`

	// Returns and Parameters are the delegate signature
	Returns    string           `yaml:"returns,omitempty"`
	Parameters []ParameterEntry `yaml:"parameters,omitempty"`

	Attributes []AttributeEntry `yaml:"attributes,omitempty"`
	Members    []MemberEntry    `yaml:"members,omitempty"`
}

// MemberEntry describes a member of a type.
type MemberEntry struct {
	// Kind is constructor, staticConstructor, destructor, method, operator,
	// conversion, event, field or property
	Kind string `yaml:"kind"`

	// Name is required except for constructors and destructors. Operators
	// use metadata names ("op_Addition").
	Name string `yaml:"name,omitempty"`

	Accessibility string `yaml:"accessibility,omitempty"`

	Abstract bool `yaml:"abstract,omitempty"`
	Virtual  bool `yaml:"virtual,omitempty"`
	Override bool `yaml:"override,omitempty"`
	Sealed   bool `yaml:"sealed,omitempty"`
	Static   bool `yaml:"static,omitempty"`
	ReadOnly bool `yaml:"readonly,omitempty"`
	Const    bool `yaml:"const,omitempty"`

	// Returns is the method return type (default void)
	Returns        string           `yaml:"returns,omitempty"`
	Parameters     []ParameterEntry `yaml:"parameters,omitempty"`
	TypeParameters []string         `yaml:"typeParameters,omitempty"`

	// Type is the event, field or property type
	Type string `yaml:"type,omitempty"`

	// Value is the constant or enum member value as a source literal
	Value string `yaml:"value,omitempty"`

	// Property accessors
	Get              bool   `yaml:"get,omitempty"`
	Set              bool   `yaml:"set,omitempty"`
	Init             bool   `yaml:"init,omitempty"`
	GetAccessibility string `yaml:"getAccessibility,omitempty"`
	SetAccessibility string `yaml:"setAccessibility,omitempty"`

	ExplicitInterface string `yaml:"explicitInterface,omitempty"`

	Attributes []AttributeEntry `yaml:"attributes,omitempty"`
}

// ParameterEntry describes a parameter.
type ParameterEntry struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// Nullable overrides the annotation implied by Type: annotated,
	// notAnnotated or oblivious
	Nullable string `yaml:"nullable,omitempty"`

	// RefKind is ref, out or in
	RefKind string `yaml:"refKind,omitempty"`
	Params  bool   `yaml:"params,omitempty"`

	// Default is the default value as a source literal
	Default string `yaml:"default,omitempty"`
}

// AttributeEntry describes an applied attribute.
type AttributeEntry struct {
	// Type is the attribute type; the "Attribute" suffix may be omitted
	Type string `yaml:"type"`

	// Arguments are positional arguments as source literals
	Arguments []string `yaml:"arguments,omitempty"`
}
