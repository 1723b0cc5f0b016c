package metadata

import "github.com/Luna88k/msbuild/symbol"

// systemTypes are predeclared in every manifest so that keyword aliases,
// implicit bases and attribute checks resolve without a references section.
var systemTypes = []struct {
	name       string
	kind       symbol.TypeKind
	typeParams []string
}{
	{"Object", symbol.TypeKindClass, nil},
	{"ValueType", symbol.TypeKindClass, nil},
	{"Enum", symbol.TypeKindClass, nil},
	{"String", symbol.TypeKindClass, nil},
	{"Void", symbol.TypeKindStruct, nil},
	{"Boolean", symbol.TypeKindStruct, nil},
	{"Char", symbol.TypeKindStruct, nil},
	{"SByte", symbol.TypeKindStruct, nil},
	{"Byte", symbol.TypeKindStruct, nil},
	{"Int16", symbol.TypeKindStruct, nil},
	{"UInt16", symbol.TypeKindStruct, nil},
	{"Int32", symbol.TypeKindStruct, nil},
	{"UInt32", symbol.TypeKindStruct, nil},
	{"Int64", symbol.TypeKindStruct, nil},
	{"UInt64", symbol.TypeKindStruct, nil},
	{"Single", symbol.TypeKindStruct, nil},
	{"Double", symbol.TypeKindStruct, nil},
	{"Decimal", symbol.TypeKindStruct, nil},
	{"IntPtr", symbol.TypeKindStruct, nil},
	{"UIntPtr", symbol.TypeKindStruct, nil},
	{"Nullable", symbol.TypeKindStruct, []string{"T"}},
	{"Delegate", symbol.TypeKindClass, nil},
	{"MulticastDelegate", symbol.TypeKindClass, nil},
	{"EventArgs", symbol.TypeKindClass, nil},
	{"EventHandler", symbol.TypeKindDelegate, nil},
	{"Attribute", symbol.TypeKindClass, nil},
	{"ObsoleteAttribute", symbol.TypeKindClass, nil},
	{"Exception", symbol.TypeKindClass, nil},
	{"IDisposable", symbol.TypeKindInterface, nil},
}

// declareSystem registers the predeclared types with the resolver.
func (r *resolver) declareSystem() {
	for _, st := range systemTypes {
		t := &symbol.Type{
			Common:         symbol.Common{Name: st.name, Access: symbol.AccessPublic},
			Namespace:      "System",
			TypeKind:       st.kind,
			TypeParameters: st.typeParams,
			External:       true,
		}
		r.types["System."+st.name] = t
		r.predeclared["System."+st.name] = true
	}

	object := r.types["System.Object"]
	object.Members = []symbol.Symbol{r.systemCtor(object, symbol.AccessPublic)}

	exception := r.types["System.Exception"]
	exception.Members = []symbol.Symbol{
		r.systemCtor(exception, symbol.AccessPublic),
		r.systemCtor(exception, symbol.AccessPublic,
			&symbol.Parameter{Name: "message", Type: r.types["System.String"], Annotation: symbol.NullableAnnotated}),
	}

	eventArgs := r.types["System.EventArgs"]
	eventArgs.Members = []symbol.Symbol{r.systemCtor(eventArgs, symbol.AccessPublic)}

	attribute := r.types["System.Attribute"]
	attribute.Abstract = true
	attribute.Members = []symbol.Symbol{r.systemCtor(attribute, symbol.AccessProtected)}

	handler := r.types["System.EventHandler"]
	handler.Invoke = &symbol.Method{
		Common:     symbol.Common{Name: "Invoke", Access: symbol.AccessPublic, Container: handler},
		ReturnType: r.types["System.Void"],
		Parameters: []*symbol.Parameter{
			{Name: "sender", Type: r.types["System.Object"], Annotation: symbol.NullableAnnotated},
			{Name: "e", Type: eventArgs},
		},
	}

	disposable := r.types["System.IDisposable"]
	disposable.Members = []symbol.Symbol{&symbol.Method{
		Common:     symbol.Common{Name: "Dispose", Access: symbol.AccessPublic, Abstract: true, Container: disposable},
		ReturnType: r.types["System.Void"],
	}}
}

func (r *resolver) systemCtor(container *symbol.Type, access symbol.Accessibility, params ...*symbol.Parameter) *symbol.Method {
	return &symbol.Method{
		Common:     symbol.Common{Name: ".ctor", Access: access, Container: container},
		MethodKind: symbol.MethodConstructor,
		Parameters: params,
	}
}

// keywordTypes maps C# aliases ("int") to fully qualified names.
var keywordTypes = func() map[string]string {
	out := make(map[string]string)
	for full, kw := range symbol.Keywords() {
		out[kw] = full
	}
	return out
}()
