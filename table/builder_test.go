package table_test

import (
	"errors"
	"testing"

	"github.com/on-the-ground/precalc/domain"
	"github.com/on-the-ground/precalc/internal/log"
	"github.com/on-the-ground/precalc/model"
	"github.com/on-the-ground/precalc/preserve"
	"github.com/on-the-ground/precalc/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subtractSpec() model.FunctionSpec {
	return model.FunctionSpec{
		Name:   "Subtract",
		Result: "int8",
		Params: []model.ParameterSpec{
			{Name: "a", Kind: model.Int8, Lower: model.Lit(-5), Upper: model.Lit(5)},
			{Name: "b", Kind: model.Int8, Lower: model.Lit(-3), Upper: model.Lit(3)},
		},
	}
}

func subtract(args []model.Int) (int8, error) {
	return model.As[int8](args[0]) - model.As[int8](args[1]), nil
}

func build[R any](t *testing.T, spec model.FunctionSpec, fn preserve.Func[R], def table.DefaultFunc[R]) (*table.Table[R], table.Stats, error) {
	t.Helper()
	m, err := domain.Enumerate(spec, nil, domain.DefaultMaxTableSize)
	require.NoError(t, err)
	orig, err := preserve.New(spec, fn)
	require.NoError(t, err)
	return table.Build(orig, m, def)
}

func TestBuild_EveryEntryMatchesOriginal(t *testing.T) {
	t.Cleanup(log.SetLogger(log.NewTest()))

	tbl, stats, err := build(t, subtractSpec(), subtract, table.Zero[int8]())
	require.NoError(t, err)
	assert.Equal(t, "Subtract", tbl.Name())
	assert.Equal(t, 11*7, tbl.Len())
	assert.Equal(t, tbl.Len(), stats.Entries)
	assert.GreaterOrEqual(t, int64(stats.Span.Duration()), int64(0))

	for a := int8(-5); a <= 5; a++ {
		for b := int8(-3); b <= 3; b++ {
			v, ok := tbl.Lookup([]model.Int{model.IntOf(a), model.IntOf(b)})
			require.True(t, ok)
			assert.Equal(t, a-b, v)
		}
	}
	assert.Equal(t, int8(-5-(-3)), tbl.At(0))
	assert.Equal(t, int8(5-3), tbl.At(tbl.Len()-1))

	_, ok := tbl.Lookup([]model.Int{model.IntOf(int8(6)), model.IntOf(int8(0))})
	assert.False(t, ok)
	_, ok = tbl.Lookup([]model.Int{model.IntOf(int8(0)), model.IntOf(int8(-4))})
	assert.False(t, ok)
}

func TestBuild_EntriesIsACopy(t *testing.T) {
	tbl, _, err := build(t, subtractSpec(), subtract, table.Zero[int8]())
	require.NoError(t, err)
	entries := tbl.Entries()
	entries[0] = 100
	assert.NotEqual(t, int8(100), tbl.At(0))
}

func TestBuild_DefaultIsOverwritten(t *testing.T) {
	spec := subtractSpec()
	pair := func(args []model.Int) (model.Tuple2[int8, bool], error) {
		d, _ := subtract(args)
		return model.Tuple2[int8, bool]{V1: d, V2: d >= 0}, nil
	}
	sentinel := table.Pair(table.Value[int8](99), table.Value(true))
	tbl, _, err := build(t, spec, pair, sentinel)
	require.NoError(t, err)
	for _, e := range tbl.Entries() {
		assert.NotEqual(t, int8(99), e.V1)
		assert.Equal(t, e.V1 >= 0, e.V2)
	}
}

func TestBuild_Errors(t *testing.T) {
	_, _, err := build[int8](t, subtractSpec(), subtract, nil)
	assert.True(t, errors.Is(err, model.ErrUnsupportedType), "%v", err)

	fails := func(args []model.Int) (int8, error) {
		if args[0].Int64() == 2 && args[1].Int64() == -1 {
			return 0, errors.New("undefined here")
		}
		return 0, nil
	}
	_, _, err = build(t, subtractSpec(), fails, table.Zero[int8]())
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNonTotalComputation))
	var e *model.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "Subtract", e.Function)
	assert.Equal(t, "Subtract(a=2, b=-1): non-total computation (caused by: undefined here)", err.Error())

	panics := func(args []model.Int) (int8, error) {
		return 10 / model.As[int8](args[1]), nil
	}
	_, _, err = build(t, subtractSpec(), panics, table.Zero[int8]())
	assert.True(t, errors.Is(err, model.ErrNonTotalComputation), "%v", err)
	assert.Contains(t, err.Error(), "b=0")
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, 0.0, table.Zero[float64]()())
	assert.False(t, table.Absent[int]()().IsSome())
	assert.Nil(t, table.Pair[int, int](nil, table.Zero[int]()))
	assert.Nil(t, table.Triple[int, string, int](table.Zero[int](), nil, table.Zero[int]()))

	tr := table.Triple(table.Zero[int](), table.Value("x"), table.Absent[bool]())()
	assert.Equal(t, 0, tr.V1)
	assert.Equal(t, "x", tr.V2)
	assert.False(t, tr.V3.IsSome())
}
