package domain

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"strings"

	"github.com/on-the-ground/precalc/model"
)

// Scope evaluates named bounds and body identifiers at build time.
type Scope interface {
	// Lookup evaluates expr to a constant. Constants without a declared type
	// carry an untyped basic type.
	Lookup(expr string) (types.TypeAndValue, error)
}

// MapScope holds named constants given as integer literals, typically from a
// declaration file. Bounds may be constant expressions over these names.
type MapScope map[string]string

func (s MapScope) Lookup(expr string) (types.TypeAndValue, error) {
	if lit, ok := s[strings.TrimSpace(expr)]; ok {
		v, err := literalConstant(strings.TrimSpace(expr), lit)
		if err != nil {
			return types.TypeAndValue{}, err
		}
		return types.TypeAndValue{Type: types.Typ[types.UntypedInt], Value: v}, nil
	}
	pkg := types.NewPackage("scope", "scope")
	for name, lit := range s {
		v, err := literalConstant(name, lit)
		if err != nil {
			return types.TypeAndValue{}, err
		}
		pkg.Scope().Insert(types.NewConst(token.NoPos, pkg, name, types.Typ[types.UntypedInt], v))
	}
	return evalConstant(token.NewFileSet(), pkg, expr)
}

func evalConstant(fset *token.FileSet, pkg *types.Package, expr string) (types.TypeAndValue, error) {
	tv, err := types.Eval(fset, pkg, token.NoPos, expr)
	if err != nil {
		return types.TypeAndValue{}, err
	}
	if tv.Value == nil {
		return types.TypeAndValue{}, fmt.Errorf("%s is not a constant", expr)
	}
	return tv, nil
}

func literalConstant(name, lit string) (constant.Value, error) {
	v, ok := model.Bound{Expr: lit}.Literal()
	if !ok {
		return nil, fmt.Errorf("%s = %q is not an integer literal", name, lit)
	}
	return constant.Make(v), nil
}

// Scopes chains lookups; the first scope that resolves expr wins.
func Scopes(scopes ...Scope) Scope {
	return chain(scopes)
}

type chain []Scope

func (c chain) Lookup(expr string) (types.TypeAndValue, error) {
	err := fmt.Errorf("%s is not defined", expr)
	for _, s := range c {
		if s == nil {
			continue
		}
		tv, lookupErr := s.Lookup(expr)
		if lookupErr == nil {
			return tv, nil
		}
		err = lookupErr
	}
	return types.TypeAndValue{}, err
}
