package dispatch_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/on-the-ground/precalc/dispatch"
	"github.com/on-the-ground/precalc/domain"
	"github.com/on-the-ground/precalc/model"
	"github.com/on-the-ground/precalc/preserve"
	"github.com/on-the-ground/precalc/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i32(v int32) model.Int { return model.IntOf(v) }

func addSpec() model.FunctionSpec {
	return model.FunctionSpec{
		Name:   "add",
		Result: "int32",
		Params: []model.ParameterSpec{
			{Name: "a", Kind: model.Int32, Lower: model.Lit(0), Upper: model.Lit(10)},
			{Name: "b", Kind: model.Int32, Lower: model.Lit(0), Upper: model.Lit(4)},
		},
	}
}

func setup(t *testing.T) (*table.Table[int32], *preserve.Original[int32]) {
	t.Helper()
	spec := addSpec()
	m, err := domain.Enumerate(spec, nil, domain.DefaultMaxTableSize)
	require.NoError(t, err)
	orig, err := preserve.New(spec, func(args []model.Int) (int32, error) {
		return model.As[int32](args[0]) + model.As[int32](args[1]), nil
	})
	require.NoError(t, err)
	tbl, _, err := table.Build(orig, m, table.Zero[int32]())
	require.NoError(t, err)
	return tbl, orig
}

func TestSynthesize_Panic(t *testing.T) {
	tbl, orig := setup(t)
	a, err := dispatch.Synthesize(model.ModePanic, tbl, orig)
	require.NoError(t, err)
	require.NotNil(t, a.Call)
	assert.Nil(t, a.Get)

	assert.Equal(t, int32(7), a.Call(i32(5), i32(2)))
	assert.Equal(t, int32(14), a.Call(i32(10), i32(4)))
	assert.Panics(t, func() { a.Call(i32(11), i32(0)) })
	assert.Panics(t, func() { a.Call(i32(-1), i32(0)) })
	assert.Panics(t, func() { a.Call(i32(0), i32(5)) }, "last argument must not alias the next row")
	assert.Panics(t, func() { a.Call(i32(1), i32(-1)) })
}

func TestSynthesize_Option(t *testing.T) {
	tbl, orig := setup(t)
	a, err := dispatch.Synthesize(model.ModeOption, tbl, orig)
	require.NoError(t, err)
	require.NotNil(t, a.Get)

	v, ok := a.Get(i32(5), i32(2))
	assert.True(t, ok)
	assert.Equal(t, int32(7), v)
	for _, c := range [][2]int32{{11, 0}, {-1, 0}, {0, 5}, {0, -1}} {
		_, ok := a.Get(i32(c[0]), i32(c[1]))
		assert.False(t, ok, "%v", c)
	}
}

func TestSynthesize_Fallback(t *testing.T) {
	tbl, orig := setup(t)
	a, err := dispatch.Synthesize(model.ModeFallback, tbl, orig)
	require.NoError(t, err)

	assert.Equal(t, int32(7), a.Call(i32(5), i32(2)))
	assert.Equal(t, int32(11), a.Call(i32(11), i32(0)))
	assert.Equal(t, int32(-3), a.Call(i32(-1), i32(-2)))

	_, err = dispatch.Synthesize(model.ModeFallback, tbl, nil)
	assert.Error(t, err)
	_, err = dispatch.Synthesize(model.Mode(9), tbl, orig)
	assert.Error(t, err)
}

func TestFallback_PropagatesOriginalFailure(t *testing.T) {
	tbl, _ := setup(t)
	orig, err := preserve.New(addSpec(), func(args []model.Int) (int32, error) {
		return 0, errors.New("outside the model")
	})
	require.NoError(t, err)
	fn := dispatch.Fallback(tbl, orig)
	assert.Equal(t, int32(7), fn(i32(5), i32(2)))
	assert.Panics(t, func() { fn(i32(50), i32(2)) })
}

func TestDispatch_ModesAgreeInRange(t *testing.T) {
	tbl, orig := setup(t)
	unchecked := dispatch.Unchecked(tbl)
	checked := dispatch.Checked(tbl)
	fallback := dispatch.Fallback(tbl, orig)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for a := int32(0); a <= 10; a++ {
				for b := int32(0); b <= 4; b++ {
					v, ok := checked(i32(a), i32(b))
					assert.True(t, ok)
					assert.Equal(t, a+b, v)
					assert.Equal(t, v, unchecked(i32(a), i32(b)))
					assert.Equal(t, v, fallback(i32(a), i32(b)))
				}
			}
		}()
	}
	wg.Wait()
}

func TestDispatch_WrongArityPanics(t *testing.T) {
	tbl, orig := setup(t)
	unchecked := dispatch.Unchecked(tbl)
	fallback := dispatch.Fallback(tbl, orig)

	assert.PanicsWithValue(t, "add: called with 3 arguments, want 2", func() { unchecked(i32(1), i32(2), i32(3)) })
	assert.PanicsWithValue(t, "add: called with 1 arguments, want 2", func() { unchecked(i32(1)) })
	assert.PanicsWithValue(t, "add: called with 3 arguments, want 2", func() { fallback(i32(1), i32(2), i32(3)) })

	_, ok := dispatch.Checked(tbl)(i32(1), i32(2), i32(3))
	assert.False(t, ok, "the checked form reports a wrong arity as absent")
}
