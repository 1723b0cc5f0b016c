package symbol

// Kind identifies the broad category of a symbol.
type Kind int

const (
	KindType Kind = iota
	KindMethod
	KindEvent
	KindField
	KindProperty
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindMethod:
		return "method"
	case KindEvent:
		return "event"
	case KindField:
		return "field"
	case KindProperty:
		return "property"
	default:
		return "unknown"
	}
}

// TypeKind distinguishes the declared shape of a type.
type TypeKind int

const (
	TypeKindClass TypeKind = iota
	TypeKindStruct
	TypeKindInterface
	TypeKindEnum
	TypeKindDelegate
	TypeKindArray
	TypeKindTypeParameter
)

func (k TypeKind) String() string {
	switch k {
	case TypeKindClass:
		return "class"
	case TypeKindStruct:
		return "struct"
	case TypeKindInterface:
		return "interface"
	case TypeKindEnum:
		return "enum"
	case TypeKindDelegate:
		return "delegate"
	case TypeKindArray:
		return "array"
	case TypeKindTypeParameter:
		return "type parameter"
	default:
		return "unknown"
	}
}

// MethodKind distinguishes ordinary methods from constructors, operators
// and accessors.
type MethodKind int

const (
	MethodOrdinary MethodKind = iota
	MethodConstructor
	MethodStaticConstructor
	MethodDestructor
	MethodOperator
	MethodConversion
	MethodPropertyGet
	MethodPropertySet
	MethodEventAdd
	MethodEventRemove
)

func (k MethodKind) String() string {
	switch k {
	case MethodOrdinary:
		return "ordinary"
	case MethodConstructor:
		return "constructor"
	case MethodStaticConstructor:
		return "static constructor"
	case MethodDestructor:
		return "destructor"
	case MethodOperator:
		return "operator"
	case MethodConversion:
		return "conversion"
	case MethodPropertyGet:
		return "property get"
	case MethodPropertySet:
		return "property set"
	case MethodEventAdd:
		return "event add"
	case MethodEventRemove:
		return "event remove"
	default:
		return "unknown"
	}
}

// Accessibility is the declared accessibility of a symbol.
type Accessibility int

const (
	AccessNotApplicable Accessibility = iota
	AccessPrivate
	AccessPrivateProtected
	AccessProtected
	AccessInternal
	AccessProtectedInternal
	AccessPublic
)

// Keyword returns the C# accessibility keyword, or "" when not applicable.
func (a Accessibility) Keyword() string {
	switch a {
	case AccessPrivate:
		return "private"
	case AccessPrivateProtected:
		return "private protected"
	case AccessProtected:
		return "protected"
	case AccessInternal:
		return "internal"
	case AccessProtectedInternal:
		return "protected internal"
	case AccessPublic:
		return "public"
	default:
		return ""
	}
}

func (a Accessibility) String() string {
	if kw := a.Keyword(); kw != "" {
		return kw
	}
	return "not applicable"
}

// NullableAnnotation is the top-level nullable reference annotation of a
// type usage.
type NullableAnnotation int

const (
	// NullableOblivious means the usage was compiled without nullable context.
	NullableOblivious NullableAnnotation = iota
	NullableNotAnnotated
	NullableAnnotated
)

func (n NullableAnnotation) String() string {
	switch n {
	case NullableNotAnnotated:
		return "not annotated"
	case NullableAnnotated:
		return "annotated"
	default:
		return "oblivious"
	}
}

// RefKind is the passing mode of a parameter.
type RefKind int

const (
	RefNone RefKind = iota
	RefRef
	RefOut
	RefIn
)

// Keyword returns the C# parameter modifier, or "" for by-value parameters.
func (r RefKind) Keyword() string {
	switch r {
	case RefRef:
		return "ref"
	case RefOut:
		return "out"
	case RefIn:
		return "in"
	default:
		return ""
	}
}
