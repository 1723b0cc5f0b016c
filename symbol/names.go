package symbol

import (
	"strconv"
	"strings"
)

// keywords maps fully qualified system type names to their C# aliases.
var keywords = map[string]string{
	"System.Object":  "object",
	"System.String":  "string",
	"System.Void":    "void",
	"System.Boolean": "bool",
	"System.Char":    "char",
	"System.SByte":   "sbyte",
	"System.Byte":    "byte",
	"System.Int16":   "short",
	"System.UInt16":  "ushort",
	"System.Int32":   "int",
	"System.UInt32":  "uint",
	"System.Int64":   "long",
	"System.UInt64":  "ulong",
	"System.Single":  "float",
	"System.Double":  "double",
	"System.Decimal": "decimal",
	"System.IntPtr":  "nint",
	"System.UIntPtr": "nuint",
}

// Keywords returns a copy of the keyword alias table, keyed by fully
// qualified name.
func Keywords() map[string]string {
	out := make(map[string]string, len(keywords))
	for k, v := range keywords {
		out[k] = v
	}
	return out
}

// operatorTokens maps operator metadata names to their C# tokens.
var operatorTokens = map[string]string{
	"op_Addition":           "+",
	"op_Subtraction":        "-",
	"op_Multiply":           "*",
	"op_Division":           "/",
	"op_Modulus":            "%",
	"op_BitwiseAnd":         "&",
	"op_BitwiseOr":          "|",
	"op_ExclusiveOr":        "^",
	"op_LeftShift":          "<<",
	"op_RightShift":         ">>",
	"op_Equality":           "==",
	"op_Inequality":         "!=",
	"op_LessThan":           "<",
	"op_GreaterThan":        ">",
	"op_LessThanOrEqual":    "<=",
	"op_GreaterThanOrEqual": ">=",
	"op_UnaryPlus":          "+",
	"op_UnaryNegation":      "-",
	"op_LogicalNot":         "!",
	"op_OnesComplement":     "~",
	"op_Increment":          "++",
	"op_Decrement":          "--",
	"op_True":               "true",
	"op_False":              "false",
}

// OperatorToken returns the C# token for an operator's metadata name.
func OperatorToken(metadataName string) (string, bool) {
	tok, ok := operatorTokens[metadataName]
	return tok, ok
}

// FullName returns the namespace-qualified name of a named type without
// type arguments. Nested types are joined with '.'.
func (t *Type) FullName() string {
	if t.Definition != nil {
		return t.Definition.FullName()
	}
	if t.Container != nil {
		return t.Container.FullName() + "." + t.Name
	}
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// DisplayName returns the type as a C# type expression.
func (t *Type) DisplayName() string {
	switch t.TypeKind {
	case TypeKindTypeParameter:
		return t.Name
	case TypeKindArray:
		return t.ElementType.DisplayName() + "[" + strings.Repeat(",", max(t.Rank-1, 0)) + "]"
	}

	if t.Definition != nil {
		def := t.Definition
		if def.FullName() == "System.Nullable" && len(t.TypeArguments) == 1 {
			return t.TypeArguments[0].DisplayName() + "?"
		}
		args := make([]string, len(t.TypeArguments))
		for i, a := range t.TypeArguments {
			args[i] = a.DisplayName()
		}
		return def.qualifier() + def.Name + "<" + strings.Join(args, ", ") + ">"
	}

	if kw, ok := keywords[t.FullName()]; ok {
		return kw
	}

	name := t.qualifier() + t.Name
	if len(t.TypeParameters) > 0 {
		name += "<" + strings.Join(t.TypeParameters, ", ") + ">"
	}
	return name
}

// qualifier returns the prefix placed before the simple name in display
// strings: the containing type or the namespace, followed by '.'.
func (t *Type) qualifier() string {
	if t.Container != nil {
		return t.Container.DisplayName() + "."
	}
	if t.Namespace != "" {
		return t.Namespace + "."
	}
	return ""
}

// TypeString renders a type usage, appending '?' for annotated reference
// types.
func TypeString(t *Type, annotation NullableAnnotation) string {
	s := t.DisplayName()
	if annotation == NullableAnnotated && !t.IsValueType() {
		return s + "?"
	}
	return s
}

func (m *Method) DisplayName() string {
	var sb strings.Builder
	if m.Container != nil {
		sb.WriteString(m.Container.DisplayName())
		sb.WriteString(".")
	}
	if m.ExplicitInterface != nil {
		sb.WriteString(m.ExplicitInterface.DisplayName())
		sb.WriteString(".")
	}
	sb.WriteString(m.displaySimpleName())
	if len(m.TypeParameters) > 0 {
		sb.WriteString("<" + strings.Join(m.TypeParameters, ", ") + ">")
	}
	sb.WriteString("(")
	sb.WriteString(displayParameters(m.Parameters))
	sb.WriteString(")")
	return sb.String()
}

func (m *Method) displaySimpleName() string {
	switch m.MethodKind {
	case MethodConstructor, MethodStaticConstructor:
		if m.Container != nil {
			return m.Container.Name
		}
	case MethodDestructor:
		if m.Container != nil {
			return "~" + m.Container.Name
		}
	case MethodOperator:
		if tok, ok := OperatorToken(m.Name); ok {
			return "operator " + tok
		}
	case MethodConversion:
		if m.ReturnType != nil {
			return "operator " + m.ReturnType.DisplayName()
		}
	}
	return m.Name
}

func displayParameters(params []*Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		s := TypeString(p.Type, p.Annotation)
		if kw := p.RefKind.Keyword(); kw != "" {
			s = kw + " " + s
		}
		if p.IsParams {
			s = "params " + s
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

func memberDisplayName(container *Type, explicit *Type, name string) string {
	prefix := ""
	if container != nil {
		prefix = container.DisplayName() + "."
	}
	if explicit != nil {
		prefix += explicit.DisplayName() + "."
	}
	return prefix + name
}

func (e *Event) DisplayName() string {
	return memberDisplayName(e.Container, e.ExplicitInterface, e.Name)
}

func (f *Field) DisplayName() string {
	return memberDisplayName(f.Container, nil, f.Name)
}

func (p *Property) DisplayName() string {
	if len(p.Parameters) > 0 {
		return memberDisplayName(p.Container, p.ExplicitInterface, "this["+displayParameters(p.Parameters)+"]")
	}
	return memberDisplayName(p.Container, p.ExplicitInterface, p.Name)
}

// docName returns the documentation-ID name of a named type definition.
func (t *Type) docName() string {
	var name string
	if t.Container != nil {
		name = t.Container.docName() + "." + t.Name
	} else if t.Namespace != "" {
		name = t.Namespace + "." + t.Name
	} else {
		name = t.Name
	}
	if len(t.TypeParameters) > 0 {
		name += "`" + strconv.Itoa(len(t.TypeParameters))
	}
	return name
}

// docTypeRef renders a type usage inside a documentation ID.
func docTypeRef(t *Type) string {
	switch t.TypeKind {
	case TypeKindTypeParameter:
		if t.MethodTypeParameter {
			return "``" + strconv.Itoa(t.Ordinal)
		}
		return "`" + strconv.Itoa(t.Ordinal)
	case TypeKindArray:
		if t.Rank <= 1 {
			return docTypeRef(t.ElementType) + "[]"
		}
		dims := make([]string, t.Rank)
		for i := range dims {
			dims[i] = "0:"
		}
		return docTypeRef(t.ElementType) + "[" + strings.Join(dims, ",") + "]"
	}
	if t.Definition != nil {
		name := t.Definition.docName()
		if i := strings.LastIndexByte(name, '`'); i >= 0 {
			name = name[:i]
		}
		args := make([]string, len(t.TypeArguments))
		for i, a := range t.TypeArguments {
			args[i] = docTypeRef(a)
		}
		return name + "{" + strings.Join(args, ",") + "}"
	}
	return t.docName()
}

func docParameters(params []*Parameter) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = docTypeRef(p.Type)
		if p.RefKind != RefNone {
			parts[i] += "@"
		}
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func docMemberPrefix(container *Type) string {
	if container == nil {
		return ""
	}
	return container.OriginalDefinition().docName() + "."
}

func (t *Type) DocID() string {
	return "T:" + t.OriginalDefinition().docName()
}

func (m *Method) DocID() string {
	name := strings.ReplaceAll(m.Name, ".", "#")
	switch m.MethodKind {
	case MethodConstructor:
		name = "#ctor"
	case MethodStaticConstructor:
		name = "#cctor"
	case MethodDestructor:
		name = "Finalize"
	}
	if m.ExplicitInterface != nil {
		name = strings.ReplaceAll(m.ExplicitInterface.FullName(), ".", "#") + "#" + name
	}
	if len(m.TypeParameters) > 0 {
		name += "``" + strconv.Itoa(len(m.TypeParameters))
	}
	// IDs always name the declared signature, never a substituted one
	def := m.OriginalDefinition()
	id := "M:" + docMemberPrefix(def.Container) + name + docParameters(def.Parameters)
	if m.MethodKind == MethodConversion && def.ReturnType != nil {
		id += "~" + docTypeRef(def.ReturnType)
	}
	return id
}

func (e *Event) DocID() string {
	return "E:" + docMemberPrefix(e.Container) + e.Name
}

func (f *Field) DocID() string {
	return "F:" + docMemberPrefix(f.Container) + f.Name
}

func (p *Property) DocID() string {
	name := p.Name
	if len(p.Parameters) > 0 && name == "" {
		name = "Item"
	}
	return "P:" + docMemberPrefix(p.Container) + name + docParameters(p.Parameters)
}

// Substitute replaces class-level type parameters in t with the matching
// entries of args. Types that mention no type parameters are returned as is.
func Substitute(t *Type, args []*Type) *Type {
	if t == nil {
		return nil
	}
	switch t.TypeKind {
	case TypeKindTypeParameter:
		if !t.MethodTypeParameter && t.Ordinal < len(args) {
			return args[t.Ordinal]
		}
		return t
	case TypeKindArray:
		elem := Substitute(t.ElementType, args)
		if elem == t.ElementType {
			return t
		}
		cp := *t
		cp.ElementType = elem
		return &cp
	}
	if t.Definition == nil {
		return t
	}
	changed := false
	newArgs := make([]*Type, len(t.TypeArguments))
	for i, a := range t.TypeArguments {
		newArgs[i] = Substitute(a, args)
		changed = changed || newArgs[i] != a
	}
	if !changed {
		return t
	}
	cp := *t
	cp.TypeArguments = newArgs
	return &cp
}
