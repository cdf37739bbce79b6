package preserve_test

import (
	"errors"
	"testing"

	"github.com/on-the-ground/precalc/model"
	"github.com/on-the-ground/precalc/preserve"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func double(args []model.Int) (int, error) {
	return 2 * model.As[int](args[0]), nil
}

func TestNew_Identity(t *testing.T) {
	spec := model.FunctionSpec{Name: "Double"}
	a, err := preserve.New(spec, double)
	require.NoError(t, err)
	assert.Equal(t, "Double", a.Name)
	assert.Equal(t, "doubleOriginal", a.Internal)

	b, err := preserve.New(spec, double)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID, "identity is stable across builds")
	assert.Equal(t, 5, int(a.ID.Version()))

	spec.OriginalName = "slowDouble"
	c, err := preserve.New(spec, double)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)
	assert.Equal(t, "slowDouble", c.Internal)
}

func TestCall(t *testing.T) {
	o, err := preserve.New(model.FunctionSpec{Name: "Double"}, double)
	require.NoError(t, err)
	v, err := o.Call([]model.Int{model.IntOf(21)})
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = o.Compute()([]model.Int{model.IntOf(-4)})
	require.NoError(t, err)
	assert.Equal(t, -8, v)

	boom, err := preserve.New(model.FunctionSpec{Name: "Boom"}, func([]model.Int) (int, error) {
		panic("boom")
	})
	require.NoError(t, err)
	_, err = boom.Call(nil)
	assert.EqualError(t, err, "panic: boom")
	assert.Panics(t, func() { _, _ = boom.Compute()(nil) })
}

func TestNew_RequiresComputation(t *testing.T) {
	_, err := preserve.New[int](model.FunctionSpec{Name: "Nothing"}, nil)
	assert.True(t, errors.Is(err, model.ErrNonTotalComputation))
}
