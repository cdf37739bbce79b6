package domain

import (
	"go/constant"
	"math/big"

	"github.com/on-the-ground/precalc/model"
	"go.uber.org/multierr"
)

// Resolve turns a parameter's bound expressions into values of its kind.
// Literal bounds never consult scope; scope may be nil when no bound is named.
func Resolve(p model.ParameterSpec, scope Scope) (model.Range, error) {
	if !p.Kind.Valid() {
		return model.Range{}, model.NewError(model.ErrUnsupportedType).
			Param(p.Name).
			Detail("%s is not an integer kind", p.Kind).
			Build()
	}

	lower, err := resolveBound(p, "lower", p.Lower, scope)
	if err != nil {
		return model.Range{}, err
	}
	upper, err := resolveBound(p, "upper", p.Upper, scope)
	if err != nil {
		return model.Range{}, err
	}
	if lower.Cmp(upper) > 0 {
		return model.Range{}, model.NewError(model.ErrInvalidRange).
			Param(p.Name).
			Detail("lower bound %s exceeds upper bound %s", lower, upper).
			Build()
	}
	return model.Range{Name: p.Name, Kind: p.Kind, Lower: lower, Upper: upper}, nil
}

// ResolveAll resolves every parameter of f, reporting all failures together.
func ResolveAll(f model.FunctionSpec, scope Scope) ([]model.Range, error) {
	ranges := make([]model.Range, 0, len(f.Params))
	var errs error
	for _, p := range f.Params {
		r, err := Resolve(p, scope)
		if err != nil {
			errs = multierr.Append(errs, model.InFunction(err, f.Name))
			continue
		}
		ranges = append(ranges, r)
	}
	if errs != nil {
		return nil, errs
	}
	return ranges, nil
}

func resolveBound(p model.ParameterSpec, which string, b model.Bound, scope Scope) (model.Int, error) {
	v, ok := b.Literal()
	if !ok {
		var err error
		if v, err = evalNamed(b, scope); err != nil {
			return model.Int{}, model.NewError(model.ErrUnresolvedConstant).
				Param(p.Name).
				Detail("%s bound %q", which, b.Expr).
				Cause(err).
				Build()
		}
	}
	resolved, fits := model.IntFromBig(p.Kind, v)
	if !fits {
		return model.Int{}, model.NewError(model.ErrInvalidRange).
			Param(p.Name).
			Detail("%s bound %s = %s overflows %s", which, b.Expr, v, p.Kind).
			Build()
	}
	return resolved, nil
}

func evalNamed(b model.Bound, scope Scope) (*big.Int, error) {
	if scope == nil {
		return nil, errNoScope
	}
	tv, err := scope.Lookup(b.Expr)
	if err != nil {
		return nil, err
	}
	return constantToBig(tv.Value)
}

func constantToBig(c constant.Value) (*big.Int, error) {
	i := constant.ToInt(c)
	if i.Kind() != constant.Int {
		return nil, errNotInteger{c}
	}
	switch v := constant.Val(i).(type) {
	case int64:
		return big.NewInt(v), nil
	case *big.Int:
		return new(big.Int).Set(v), nil
	}
	return nil, errNotInteger{c}
}
