package metadata

import (
	"strings"
	"unicode"

	"github.com/Luna88k/msbuild/errors"
)

// TypeRef is a parsed type reference as written in a manifest.
//
// Grammar:
//
//	ref    = name [ "<" ref { "," ref } ">" ] { suffix }
//	suffix = "?" | "[" { "," } "]"
//
// Nested types are written with '+' ("Contoso.Outer+Inner").
type TypeRef struct {
	// Name is the qualified name, or "" for arrays.
	Name string
	Args []TypeRef

	// Elem and Rank describe an array of Elem.
	Elem *TypeRef
	Rank int

	// Nullable is set by a trailing '?'.
	Nullable bool
}

// IsArray reports whether the reference is an array.
func (r TypeRef) IsArray() bool { return r.Elem != nil }

// String renders the reference back into manifest syntax.
func (r TypeRef) String() string {
	var sb strings.Builder
	if r.Elem != nil {
		sb.WriteString(r.Elem.String())
		sb.WriteString("[" + strings.Repeat(",", r.Rank-1) + "]")
	} else {
		sb.WriteString(r.Name)
		if len(r.Args) > 0 {
			args := make([]string, len(r.Args))
			for i, a := range r.Args {
				args[i] = a.String()
			}
			sb.WriteString("<" + strings.Join(args, ", ") + ">")
		}
	}
	if r.Nullable {
		sb.WriteString("?")
	}
	return sb.String()
}

// ParseTypeRef parses a type reference such as "int", "string?",
// "byte[]" or "System.Collections.Generic.Dictionary<string, int?>".
func ParseTypeRef(s string) (TypeRef, error) {
	p := &refParser{src: s}
	ref, err := p.parse()
	if err != nil {
		return TypeRef{}, errors.WithHintf(
			errors.Wrapf(errors.ErrInvalidManifest, "malformed type reference %q: %v", s, err),
			"type references look like Ns.Name, Ns.Name<Arg>, Name[] or Name?")
	}
	p.skipSpace()
	if !p.done() {
		return TypeRef{}, errors.Wrapf(errors.ErrInvalidManifest,
			"malformed type reference %q: unexpected %q at offset %d", s, p.src[p.pos], p.pos)
	}
	return ref, nil
}

type refParser struct {
	src string
	pos int
}

func (p *refParser) done() bool { return p.pos >= len(p.src) }

func (p *refParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.src[p.pos]
}

func (p *refParser) skipSpace() {
	for !p.done() && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *refParser) parse() (TypeRef, error) {
	p.skipSpace()
	name := p.name()
	if name == "" {
		if p.done() {
			return TypeRef{}, errors.New("missing type name")
		}
		return TypeRef{}, errors.Newf("unexpected %q at offset %d", p.peek(), p.pos)
	}
	ref := TypeRef{Name: name}

	p.skipSpace()
	if p.peek() == '<' {
		p.pos++
		for {
			arg, err := p.parse()
			if err != nil {
				return TypeRef{}, err
			}
			ref.Args = append(ref.Args, arg)
			p.skipSpace()
			switch p.peek() {
			case ',':
				p.pos++
				continue
			case '>':
				p.pos++
			default:
				return TypeRef{}, errors.Newf("expected ',' or '>' at offset %d", p.pos)
			}
			break
		}
	}

	for {
		p.skipSpace()
		switch p.peek() {
		case '?':
			if ref.Nullable {
				return TypeRef{}, errors.Newf("repeated '?' at offset %d", p.pos)
			}
			p.pos++
			ref.Nullable = true
		case '[':
			p.pos++
			rank := 1
			for p.peek() == ',' {
				rank++
				p.pos++
			}
			if p.peek() != ']' {
				return TypeRef{}, errors.Newf("expected ']' at offset %d", p.pos)
			}
			p.pos++
			elem := ref
			ref = TypeRef{Elem: &elem, Rank: rank}
		default:
			return ref, nil
		}
	}
}

func (p *refParser) name() string {
	start := p.pos
	for !p.done() {
		c := rune(p.src[p.pos])
		if c == '.' || c == '+' || c == '_' || c == '`' || unicode.IsLetter(c) || unicode.IsDigit(c) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}
