package metadata

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/logger"
	"github.com/Luna88k/msbuild/symbol"
)

// Load reads the manifest at path and resolves it into an assembly.
func Load(path string) (*symbol.Assembly, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "manifest %s", path)
		}
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}

	asm, err := Parse(data)
	if err != nil {
		return nil, errors.WithDetailf(err, "manifest: %s", path)
	}

	logger.Logger.Infow("Loaded manifest",
		logger.FieldFile, path,
		logger.FieldAssembly, asm.Name,
		logger.FieldVersion, asm.Version,
		logger.FieldCount, len(asm.Types),
	)
	return asm, nil
}

// Parse decodes and resolves a manifest document.
func Parse(data []byte) (*symbol.Assembly, error) {
	m, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Resolve(m)
}

// Decode decodes a manifest document without resolving it. Unknown keys
// are rejected.
func Decode(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.NewManifestError("empty manifest")
		}
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidManifest, "failed to decode manifest: %v", err),
			"manifests are YAML or JSON documents with assembly, version and types keys")
	}
	return &m, nil
}

// Resolve turns a decoded manifest into an assembly. Type names are
// declared first so entries may reference each other in any order.
func Resolve(m *Manifest) (*symbol.Assembly, error) {
	if strings.TrimSpace(m.Assembly) == "" {
		return nil, errors.WithHint(errors.NewManifestError("missing assembly name"),
			"add an 'assembly:' key naming the library")
	}
	version, err := semver.NewVersion(m.Version)
	if err != nil {
		return nil, errors.WithHintf(errors.NewManifestError("invalid assembly version %q: %v", m.Version, err),
			"versions are semantic versions such as 1.4.0")
	}

	r := newResolver()
	switch m.NullableContext {
	case "", "enabled":
	case "disabled":
		r.oblivious = true
	default:
		return nil, errors.WithHint(errors.NewManifestError("unknown nullableContext %q", m.NullableContext),
			"use enabled or disabled")
	}
	r.declareSystem()

	for i := range m.References {
		if err := r.declare(&m.References[i], true); err != nil {
			return nil, err
		}
	}
	for i := range m.Types {
		if err := r.declare(&m.Types[i], false); err != nil {
			return nil, err
		}
	}
	if err := r.link(); err != nil {
		return nil, err
	}
	for _, p := range r.pending {
		if err := r.define(p); err != nil {
			return nil, errors.WithHintf(err, "in type %s", p.entry.Name)
		}
	}

	asm := &symbol.Assembly{Name: m.Assembly, Version: version.String()}
	for _, p := range r.pending {
		if !p.typ.External && p.typ.Container == nil {
			asm.Types = append(asm.Types, p.typ)
		}
	}
	return asm, nil
}

// CheckVersion reports whether asm satisfies a semver constraint such as
// ">= 2.0". An empty constraint always passes.
func CheckVersion(asm *symbol.Assembly, constraint string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidArgument, "invalid version constraint %q: %v", constraint, err)
	}
	v, err := semver.NewVersion(asm.Version)
	if err != nil {
		return errors.NewManifestError("invalid assembly version %q: %v", asm.Version, err)
	}
	if !c.Check(v) {
		return errors.Newf("%s %s does not satisfy %s", asm.Name, asm.Version, constraint)
	}
	return nil
}

// pendingType is a declared type whose references are not resolved yet.
type pendingType struct {
	entry *TypeEntry
	typ   *symbol.Type
	outer string
}

type resolver struct {
	types       map[string]*symbol.Type
	predeclared map[string]bool
	pending     []*pendingType
	nested      map[*symbol.Type][]*symbol.Type
	oblivious   bool
}

func newResolver() *resolver {
	return &resolver{
		types:       make(map[string]*symbol.Type),
		predeclared: make(map[string]bool),
		nested:      make(map[*symbol.Type][]*symbol.Type),
	}
}

// declare registers a type name and its declared shape.
func (r *resolver) declare(e *TypeEntry, external bool) error {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return errors.WithHint(errors.NewManifestError("type entry without a name"),
			"every entry under types and references needs a 'name:'")
	}
	if _, exists := r.types[name]; exists && !r.predeclared[name] {
		return errors.WithHintf(errors.NewManifestError("duplicate type %s", name),
			"each type may be listed once across types and references")
	}
	delete(r.predeclared, name)

	kind, err := parseTypeKind(e.Kind)
	if err != nil {
		return errors.WithHintf(err, "in type %s", name)
	}

	var outer, simple, namespace string
	if i := strings.LastIndexByte(name, '+'); i >= 0 {
		outer, simple = name[:i], name[i+1:]
	} else if i := strings.LastIndexByte(name, '.'); i >= 0 {
		namespace, simple = name[:i], name[i+1:]
	} else {
		simple = name
	}

	access, err := parseAccessibility(e.Accessibility, defaultTypeAccess(outer))
	if err != nil {
		return errors.WithHintf(err, "in type %s", name)
	}

	t := &symbol.Type{
		Common: symbol.Common{
			Name:     simple,
			Access:   access,
			Abstract: e.Abstract || e.Static,
			Sealed:   e.Sealed || e.Static,
			Static:   e.Static,
			ReadOnly: e.ReadOnly,
		},
		Namespace:      namespace,
		TypeKind:       kind,
		TypeParameters: e.TypeParameters,
		External:       external,
	}
	r.types[name] = t
	r.pending = append(r.pending, &pendingType{entry: e, typ: t, outer: outer})
	return nil
}

func defaultTypeAccess(outer string) symbol.Accessibility {
	if outer != "" {
		return symbol.AccessPrivate
	}
	return symbol.AccessInternal
}

// link attaches nested types to their containers.
func (r *resolver) link() error {
	for _, p := range r.pending {
		if p.outer == "" {
			continue
		}
		container, ok := r.types[p.outer]
		if !ok {
			return errors.WithHintf(errors.NewManifestError("nested type %s has no containing type %s", p.entry.Name, p.outer),
				"declare %s as its own entry", p.outer)
		}
		p.typ.Container = container
		r.nested[container] = append(r.nested[container], p.typ)
	}
	for _, p := range r.pending {
		root := p.typ
		for root.Container != nil {
			root = root.Container
		}
		p.typ.Namespace = root.Namespace
		p.typ.External = root.External
	}
	return nil
}

// scope lists the type parameters visible while resolving a reference.
type scope struct {
	typeParams   []string
	methodParams []string
}

func (r *resolver) define(p *pendingType) error {
	e, t := p.entry, p.typ
	sc := scope{typeParams: t.TypeParameters}

	if e.Base != "" {
		if t.TypeKind != symbol.TypeKindClass {
			return errors.WithHint(errors.NewManifestError("%s %s cannot declare a base type", t.TypeKind, e.Name),
				"list base interfaces under 'interfaces:'")
		}
		base, _, err := r.resolve(e.Base, sc)
		if err != nil {
			return err
		}
		if base.FullName() != "System.Object" {
			t.BaseType = base
		}
	}

	for _, name := range e.Interfaces {
		iface, _, err := r.resolve(name, sc)
		if err != nil {
			return err
		}
		t.Interfaces = append(t.Interfaces, iface)
	}

	if e.Underlying != "" {
		if t.TypeKind != symbol.TypeKindEnum {
			return errors.NewManifestError("only enums have an underlying type")
		}
		u, _, err := r.resolve(e.Underlying, sc)
		if err != nil {
			return err
		}
		t.Underlying = u
	}

	if t.TypeKind == symbol.TypeKindDelegate {
		invoke := &symbol.Method{Common: symbol.Common{Name: "Invoke", Access: symbol.AccessPublic, Container: t}}
		if err := r.signature(invoke, e.Returns, e.Parameters, sc); err != nil {
			return err
		}
		t.Invoke = invoke
	}

	attrs, err := r.attributes(e.Attributes)
	if err != nil {
		return err
	}
	t.Attrs = attrs

	for i := range e.Members {
		m, err := r.member(t, &e.Members[i], sc)
		if err != nil {
			return errors.WithHintf(err, "in member %d (%s %s)", i, e.Members[i].Kind, e.Members[i].Name)
		}
		t.Members = append(t.Members, m)
	}
	for _, n := range r.nested[t] {
		t.Members = append(t.Members, n)
	}
	return nil
}

// resolve parses and resolves a type reference, returning the top-level
// nullable annotation alongside the type.
func (r *resolver) resolve(s string, sc scope) (*symbol.Type, symbol.NullableAnnotation, error) {
	ref, err := ParseTypeRef(s)
	if err != nil {
		return nil, symbol.NullableOblivious, err
	}
	t, err := r.resolveRef(ref, sc)
	if err != nil {
		return nil, symbol.NullableOblivious, err
	}

	switch {
	case t.IsValueType():
		return t, symbol.NullableNotAnnotated, nil
	case ref.Nullable:
		return t, symbol.NullableAnnotated, nil
	case r.oblivious:
		return t, symbol.NullableOblivious, nil
	default:
		return t, symbol.NullableNotAnnotated, nil
	}
}

func (r *resolver) resolveRef(ref TypeRef, sc scope) (*symbol.Type, error) {
	if ref.IsArray() {
		elem, err := r.resolveRef(*ref.Elem, sc)
		if err != nil {
			return nil, err
		}
		return &symbol.Type{TypeKind: symbol.TypeKindArray, ElementType: elem, Rank: ref.Rank}, nil
	}

	var t *symbol.Type
	if len(ref.Args) == 0 {
		t = sc.typeParameter(ref.Name)
	}
	if t == nil {
		def := r.lookup(ref.Name, len(ref.Args))
		t = def
		if len(ref.Args) > 0 {
			if len(def.TypeParameters) != len(ref.Args) {
				return nil, errors.NewManifestError("%s takes %d type arguments, got %d",
					def.FullName(), len(def.TypeParameters), len(ref.Args))
			}
			args := make([]*symbol.Type, len(ref.Args))
			for i, a := range ref.Args {
				arg, err := r.resolveRef(a, sc)
				if err != nil {
					return nil, err
				}
				args[i] = arg
			}
			t = construct(def, args)
		}
	}

	if ref.Nullable && t.IsValueType() {
		t = construct(r.types["System.Nullable"], []*symbol.Type{t})
	}
	return t, nil
}

func construct(def *symbol.Type, args []*symbol.Type) *symbol.Type {
	return &symbol.Type{
		Common:        def.Common,
		Namespace:     def.Namespace,
		TypeKind:      def.TypeKind,
		Definition:    def,
		TypeArguments: args,
		External:      def.External,
	}
}

func (sc scope) typeParameter(name string) *symbol.Type {
	for i, p := range sc.methodParams {
		if p == name {
			return &symbol.Type{Common: symbol.Common{Name: name}, TypeKind: symbol.TypeKindTypeParameter, Ordinal: i, MethodTypeParameter: true}
		}
	}
	for i, p := range sc.typeParams {
		if p == name {
			return &symbol.Type{Common: symbol.Common{Name: name}, TypeKind: symbol.TypeKindTypeParameter, Ordinal: i}
		}
	}
	return nil
}

// lookup finds a named type. Keyword aliases and '.'-separated nested
// names are accepted. Unknown names become external public classes.
func (r *resolver) lookup(name string, arity int) *symbol.Type {
	if full, ok := keywordTypes[name]; ok {
		name = full
	}
	if t, ok := r.types[name]; ok {
		return t
	}
	for candidate := name; ; {
		i := strings.LastIndexByte(candidate, '.')
		if i < 0 {
			break
		}
		candidate = candidate[:i] + "+" + candidate[i+1:]
		if t, ok := r.types[candidate]; ok {
			return t
		}
	}

	t := &symbol.Type{
		Common:   symbol.Common{Name: name, Access: symbol.AccessPublic},
		TypeKind: symbol.TypeKindClass,
		External: true,
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		t.Namespace, t.Name = name[:i], name[i+1:]
	}
	if arity == 1 {
		t.TypeParameters = []string{"T"}
	}
	for i := 1; arity > 1 && i <= arity; i++ {
		t.TypeParameters = append(t.TypeParameters, "T"+strconv.Itoa(i))
	}
	r.types[name] = t

	logger.Logger.Debugw("Unknown type resolved as external class",
		logger.FieldSymbol, name,
	)
	return t
}

func (r *resolver) attributes(entries []AttributeEntry) ([]symbol.Attribute, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	attrs := make([]symbol.Attribute, len(entries))
	for i, a := range entries {
		name := strings.TrimSpace(a.Type)
		if name == "" {
			return nil, errors.NewManifestError("attribute without a type")
		}
		if !strings.HasSuffix(name, "Attribute") {
			name += "Attribute"
		}
		if !strings.Contains(name, ".") {
			if _, ok := r.types["System."+name]; ok {
				name = "System." + name
			}
		}
		attrs[i] = symbol.Attribute{Type: name, Arguments: a.Arguments}
	}
	return attrs, nil
}
