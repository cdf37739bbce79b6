package model

import (
	"go/token"
	"unicode"
	"unicode/utf8"
)

// ParameterSpec declares one argument of the function and its inclusive domain.
type ParameterSpec struct {
	Name  string
	Kind  Kind
	Lower Bound
	Upper Bound
}

// FunctionSpec is a parsed declaration: what to tabulate and how to dispatch.
// It is built once from the declaration site and consumed once by the generator.
type FunctionSpec struct {
	// Name is the public name the dispatch function takes over.
	Name string
	// OriginalName is the internal identity of the original computation.
	// Empty means OriginalNameFor(Name).
	OriginalName string
	Params       []ParameterSpec
	// Result is the Go type of the return value, as written in source.
	Result string
	Mode   Mode
	// Body is an optional Go integer expression over Params. When set, the
	// original computation is compiled from it and emitted with the table.
	Body string
}

// OriginalNameFor derives the internal name of an original from a public name.
func OriginalNameFor(name string) string {
	return lowerFirst(name) + "Original"
}

// Internal returns the name under which the original computation is kept.
func (f FunctionSpec) Internal() string {
	if f.OriginalName != "" {
		return f.OriginalName
	}
	return OriginalNameFor(f.Name)
}

// ParamNames lists the parameter names in declaration order.
func (f FunctionSpec) ParamNames() []string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return names
}

// Validate checks the declaration's shape. Bounds are checked by the resolver.
func (f FunctionSpec) Validate() error {
	if !token.IsIdentifier(f.Name) {
		return NewError(ErrUnsupportedType).Detail("invalid function name %q", f.Name).Build()
	}
	if !token.IsIdentifier(f.Internal()) || f.Internal() == f.Name {
		return NewError(ErrUnsupportedType).
			Function(f.Name).
			Detail("original name %q must be an identifier distinct from %q", f.Internal(), f.Name).
			Build()
	}
	if len(f.Params) == 0 {
		return NewError(ErrInvalidRange).Function(f.Name).Detail("no parameters to tabulate").Build()
	}
	seen := make(map[string]struct{}, len(f.Params))
	for _, p := range f.Params {
		if !token.IsIdentifier(p.Name) {
			return NewError(ErrUnsupportedType).Function(f.Name).Detail("invalid parameter name %q", p.Name).Build()
		}
		if _, dup := seen[p.Name]; dup {
			return NewError(ErrInvalidRange).Function(f.Name).Param(p.Name).Detail("declared twice").Build()
		}
		seen[p.Name] = struct{}{}
		if !p.Kind.Valid() {
			return NewError(ErrUnsupportedType).Function(f.Name).Param(p.Name).
				Detail("%s is not an integer kind", p.Kind).Build()
		}
	}
	return nil
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
