package syntax

import (
	"fmt"
	"io"
	"strings"
)

const indentUnit = "    "

// Format renders a single declaration as C# source.
func Format(d Decl) string {
	p := &printer{}
	p.decl(d, false)
	return p.sb.String()
}

// FormatExpr renders an expression.
func FormatExpr(e Expr) string {
	return expression(e)
}

// FormatUnit renders a compilation unit: the header as line comments, then
// each namespace block separated by a blank line.
func FormatUnit(u *CompilationUnit) string {
	p := &printer{}
	for _, h := range u.Header {
		p.line("// " + h)
	}
	if len(u.Header) > 0 && len(u.Namespaces) > 0 {
		p.sb.WriteString("\n")
	}
	for i, ns := range u.Namespaces {
		if i > 0 {
			p.sb.WriteString("\n")
		}
		p.decl(ns, false)
	}
	return p.sb.String()
}

// Fprint writes the rendered declaration to w.
func Fprint(w io.Writer, d Decl) error {
	_, err := io.WriteString(w, Format(d))
	return err
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) line(s string) {
	p.sb.WriteString(strings.Repeat(indentUnit, p.indent))
	p.sb.WriteString(s)
	p.sb.WriteString("\n")
}

func (p *printer) block(head string, members []Decl, inInterface bool, enum bool) {
	p.line(head)
	p.line("{")
	p.indent++
	for _, m := range members {
		if em, ok := m.(*EnumMemberDecl); ok && enum {
			p.line(enumMember(em) + ",")
			continue
		}
		p.decl(m, inInterface)
	}
	p.indent--
	p.line("}")
}

func (p *printer) decl(d Decl, inInterface bool) {
	switch d := d.(type) {
	case *NamespaceDecl:
		if d.Name == "" {
			// global namespace
			for _, m := range d.Members {
				p.decl(m, false)
			}
			return
		}
		p.block("namespace "+d.Name, d.Members, false, false)
	case *TypeDecl:
		head := join(d.Accessibility, d.Modifiers.String(), d.Kind.String(), d.Name+typeParameters(d.TypeParameters))
		if d.BaseList != nil {
			head += " : " + strings.Join(d.BaseList, ", ")
		}
		p.block(head, d.Members, d.Kind == Interface, false)
	case *EnumDecl:
		head := join(d.Accessibility, "enum", d.Name)
		if d.Underlying != "" {
			head += " : " + d.Underlying
		}
		p.block(head, d.Members, false, true)
	case *EnumMemberDecl:
		p.line(enumMember(d))
	case *DelegateDecl:
		p.line(join(d.Accessibility, "delegate", d.ReturnType,
			d.Name+typeParameters(d.TypeParameters)+parameters(d.Parameters)) + ";")
	case *MethodDecl:
		head := join(d.Accessibility, d.Modifiers.String(), d.ReturnType,
			d.Name+typeParameters(d.TypeParameters)+parameters(d.Parameters))
		p.line(head + body(d.ReturnType, d.Modifiers, inInterface))
	case *OperatorDecl:
		var head string
		if d.Conversion {
			head = join(d.Accessibility, d.Modifiers.String(), d.Operator, "operator", d.ReturnType+parameters(d.Parameters))
		} else {
			head = join(d.Accessibility, d.Modifiers.String(), d.ReturnType, "operator", d.Operator+parameters(d.Parameters))
		}
		p.line(head + body(d.ReturnType, d.Modifiers, inInterface))
	case *ConstructorDecl:
		head := join(d.Accessibility, d.Modifiers.String(), d.Name+parameters(d.Parameters))
		if d.Initializer != nil {
			head += " : " + initializer(d.Initializer)
		}
		p.line(head + " { }")
	case *FieldDecl:
		s := join(d.Accessibility, d.Modifiers.String(), d.Type, d.Name)
		if d.Value != "" {
			s += " = " + d.Value
		}
		p.line(s + ";")
	case *PropertyDecl:
		name := d.Name
		if len(d.Parameters) > 0 {
			name = "this[" + parameterList(d.Parameters) + "]"
		}
		head := join(d.Accessibility, d.Modifiers.String(), d.Type, name)
		p.line(head + " " + accessors(d.Accessors, d.Modifiers.Has(ModAbstract) || inInterface))
	case *EventFieldDecl:
		p.line(join(d.Accessibility, d.Modifiers.String(), "event", d.Type, d.Name) + ";")
	case *EventDecl:
		head := join(d.Accessibility, d.Modifiers.String(), "event", d.Type, d.Name)
		p.line(head + " " + accessors(d.Accessors, false))
	default:
		p.line(fmt.Sprintf("/* unknown declaration %T */", d))
	}
}

func enumMember(d *EnumMemberDecl) string {
	if d.Value == "" {
		return d.Name
	}
	return d.Name + " = " + d.Value
}

// body returns the placeholder body for a method-like member.
func body(returnType string, mods Modifiers, inInterface bool) string {
	switch {
	case mods.Has(ModAbstract) || (inInterface && !mods.Has(ModStatic)):
		return ";"
	case returnType == "void":
		return " { }"
	default:
		return " { throw null; }"
	}
}

func accessors(list []Accessor, bodiless bool) string {
	parts := make([]string, 0, len(list))
	for _, a := range list {
		s := join(a.Accessibility, a.Kind.String())
		switch {
		case bodiless:
			s += ";"
		case a.Kind == Get:
			s += " { throw null; }"
		default:
			s += " { }"
		}
		parts = append(parts, s)
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

func initializer(init *ConstructorInitializer) string {
	target := "base"
	if init.This {
		target = "this"
	}
	args := make([]string, len(init.Arguments))
	for i, a := range init.Arguments {
		args[i] = expression(a)
	}
	return target + "(" + strings.Join(args, ", ") + ")"
}

func expression(e Expr) string {
	switch e := e.(type) {
	case *DefaultLiteral:
		s := "default(" + e.Type + ")"
		if e.SuppressNullable {
			s += "!"
		}
		return s
	default:
		return fmt.Sprintf("/* unknown expression %T */", e)
	}
}

func typeParameters(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func parameters(params []Parameter) string {
	return "(" + parameterList(params) + ")"
}

func parameterList(params []Parameter) string {
	parts := make([]string, len(params))
	for i, prm := range params {
		s := join(prm.Modifier, prm.Type, prm.Name)
		if prm.Default != "" {
			s += " = " + prm.Default
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

// join concatenates the non-empty parts with single spaces.
func join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " ")
}
