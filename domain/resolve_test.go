package domain_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/on-the-ground/precalc/domain"
	"github.com/on-the-ground/precalc/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func param(name string, k model.Kind, lo, hi model.Bound) model.ParameterSpec {
	return model.ParameterSpec{Name: name, Kind: k, Lower: lo, Upper: hi}
}

func TestResolve_Literals(t *testing.T) {
	r, err := domain.Resolve(param("a", model.Int8, model.Lit(-10), model.Lit(10)), nil)
	require.NoError(t, err)
	assert.Equal(t, "a", r.Name)
	assert.Equal(t, int64(-10), r.Lower.Int64())
	assert.Equal(t, int64(10), r.Upper.Int64())
	assert.Equal(t, uint64(20), r.Span())

	r, err = domain.Resolve(param("u", model.Uint64, model.LitU(0), model.LitU(1<<64-1)), nil)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551616", r.Extent().String())

	r, err = domain.Resolve(param("h", model.Uint8, model.Named("0x0f"), model.Named("0b1_0000")), nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(15), r.Lower.Uint64())
	assert.Equal(t, uint64(16), r.Upper.Uint64())
}

func TestResolve_Named(t *testing.T) {
	scope := domain.MapScope{"START": "2", "END": "0x20"}

	r, err := domain.Resolve(param("x", model.Uint16, model.Named("START"), model.Named("END")), scope)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), r.Lower.Uint64())
	assert.Equal(t, uint64(32), r.Upper.Uint64())

	r, err = domain.Resolve(param("x", model.Int32, model.Named("-END"), model.Named("END/START - 1")), scope)
	require.NoError(t, err)
	assert.Equal(t, int64(-32), r.Lower.Int64())
	assert.Equal(t, int64(15), r.Upper.Int64())
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name  string
		p     model.ParameterSpec
		scope domain.Scope
		want  error
	}{
		{"reversed", param("a", model.KindInt, model.Lit(5), model.Lit(4)), nil, model.ErrInvalidRange},
		{"lower overflows", param("a", model.Uint8, model.Lit(-1), model.Lit(4)), nil, model.ErrInvalidRange},
		{"upper overflows", param("a", model.Int8, model.Lit(0), model.Lit(128)), nil, model.ErrInvalidRange},
		{"named without scope", param("a", model.KindInt, model.Lit(0), model.Named("MAX")), nil, model.ErrUnresolvedConstant},
		{"undefined name", param("a", model.KindInt, model.Lit(0), model.Named("MAX")), domain.MapScope{"MIN": "0"}, model.ErrUnresolvedConstant},
		{"not an integer", param("a", model.KindInt, model.Lit(0), model.Named("1.5")), domain.MapScope{}, model.ErrUnresolvedConstant},
		{"not an integer kind", param("a", model.KindInvalid, model.Lit(0), model.Lit(1)), nil, model.ErrUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.Resolve(tt.p, tt.scope)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "%v", err)
			var e *model.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, "a", e.Param)
		})
	}
}

func TestResolveAll_ReportsEveryParameter(t *testing.T) {
	f := model.FunctionSpec{
		Name: "F",
		Params: []model.ParameterSpec{
			param("a", model.KindInt, model.Lit(5), model.Lit(4)),
			param("b", model.KindInt, model.Lit(0), model.Lit(4)),
			param("c", model.KindInt, model.Lit(0), model.Named("MISSING")),
		},
	}
	_, err := domain.ResolveAll(f, domain.MapScope{})
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.True(t, errors.Is(errs[0], model.ErrInvalidRange))
	assert.True(t, errors.Is(errs[1], model.ErrUnresolvedConstant))
	assert.Contains(t, errs[0].Error(), "F: parameter a: invalid range")
}

func TestScopes_FirstMatchWins(t *testing.T) {
	s := domain.Scopes(nil, domain.MapScope{"A": "1"}, domain.MapScope{"A": "2", "B": "3"})

	v, err := s.Lookup("A")
	require.NoError(t, err)
	assert.Equal(t, "1", v.Value.ExactString())

	v, err = s.Lookup("B")
	require.NoError(t, err)
	assert.Equal(t, "3", v.Value.ExactString())

	_, err = s.Lookup("C")
	assert.Error(t, err)
}

func TestMapScope_RejectsNonLiterals(t *testing.T) {
	_, err := domain.MapScope{"A": "B"}.Lookup("A")
	assert.Error(t, err)
}

func TestPackageScope(t *testing.T) {
	dir := t.TempDir()
	src := `package limits

const (
	START = 3
	END   = START << 2
	Name  = "not a number"
)

type Level uint8

const MaxLevel Level = 7

var notConst = 4
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "limits.go"), []byte(src), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "limits_gen.go"), []byte("package limits\n\nconst START = 99\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "limits_test.go"), []byte("package limits_test\n"), 0o644))

	scope, err := domain.LoadPackageScope(dir, "limits_gen.go")
	require.NoError(t, err)
	assert.Equal(t, "limits", scope.Name())

	r, err := domain.Resolve(param("x", model.Uint8, model.Named("START"), model.Named("END - 1")), scope)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), r.Lower.Uint64())
	assert.Equal(t, uint64(11), r.Upper.Uint64())

	r, err = domain.Resolve(param("l", model.Uint8, model.Lit(0), model.Named("MaxLevel")), scope)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), r.Upper.Uint64())

	_, err = domain.Resolve(param("x", model.Uint8, model.Lit(0), model.Named("notConst")), scope)
	assert.True(t, errors.Is(err, model.ErrUnresolvedConstant), "%v", err)

	_, err = domain.Resolve(param("x", model.Uint8, model.Lit(0), model.Named("Name")), scope)
	assert.True(t, errors.Is(err, model.ErrUnresolvedConstant), "%v", err)

	_, err = domain.LoadPackageScope(t.TempDir())
	assert.Error(t, err)
}
