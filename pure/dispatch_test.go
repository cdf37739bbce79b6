package pure_test

import (
	"testing"

	"github.com/on-the-ground/precalc/config"
	"github.com/on-the-ground/precalc/model"
	"github.com/on-the-ground/precalc/pure"
	"github.com/on-the-ground/precalc/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_DefaultsToPanic(t *testing.T) {
	p, err := pure.PrecalculateI2O1(add, pure.Range[int32]("a", 0, 10), pure.Range[int32]("b", 0, 4), table.Zero[int32]())
	require.NoError(t, err)
	assert.Equal(t, model.ModePanic, p.Mode())

	fn, err := p.Dispatch()
	require.NoError(t, err)
	assert.Equal(t, int32(7), fn(5, 2))
	assert.Panics(t, func() { fn(11, 0) })

	assert.Equal(t, int32(7), p.Artifact().Call(model.IntOf(int32(5)), model.IntOf(int32(2))))
	assert.Nil(t, p.Artifact().Get)
}

func TestDispatch_FallbackFromModeOrConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultMode = model.ModeFallback

	for name, opt := range map[string]pure.BuildOption{
		"WithMode":   pure.WithMode(model.ModeFallback),
		"WithConfig": pure.WithConfig(cfg),
	} {
		t.Run(name, func(t *testing.T) {
			p, err := pure.PrecalculateI2O1(add, pure.Range[int32]("a", 0, 10), pure.Range[int32]("b", 0, 4), table.Zero[int32](), opt)
			require.NoError(t, err)
			assert.Equal(t, model.ModeFallback, p.Mode())

			fn, err := p.Dispatch()
			require.NoError(t, err)
			assert.Equal(t, int32(7), fn(5, 2))
			assert.Equal(t, int32(11), fn(11, 0))
			assert.Equal(t, int32(-3), fn(-1, -2))
		})
	}
}

func TestDispatch_OptionModeIsCheckedOnly(t *testing.T) {
	p, err := pure.PrecalculateI1O1(func(a uint8) uint8 { return a * 2 }, pure.Range[uint8]("a", 0, 9), table.Zero[uint8](),
		pure.WithMode(model.ModeOption))
	require.NoError(t, err)

	_, err = p.Dispatch()
	assert.ErrorIs(t, err, pure.ErrCheckedOnly)

	get := p.Artifact().Get
	require.NotNil(t, get)
	v, ok := get(model.IntOf(uint8(4)))
	assert.True(t, ok)
	assert.Equal(t, uint8(8), v)
	_, ok = get(model.IntOf(uint8(10)))
	assert.False(t, ok)
}

func TestDispatch_TwoResults(t *testing.T) {
	p, err := pure.PrecalculateI1O2(func(v int8) (int8, bool) { return -v, v < 0 }, pure.Range[int8]("v", -3, 3),
		table.Zero[int8](), table.Value(false), pure.WithMode(model.ModeFallback))
	require.NoError(t, err)

	fn, err := p.Dispatch()
	require.NoError(t, err)
	neg, wasNegative := fn(-50)
	assert.Equal(t, int8(50), neg)
	assert.True(t, wasNegative)
}

func TestDispatch_InvalidPolicy(t *testing.T) {
	_, err := pure.PrecalculateI1O1(func(a uint8) uint8 { return a }, pure.Range[uint8]("a", 0, 1), table.Zero[uint8](),
		pure.WithMode(model.Mode(9)))
	assert.Error(t, err)

	_, err = pure.PrecalculateI1O1(func(a uint8) uint8 { return a }, pure.Range[uint8]("a", 0, 1), table.Zero[uint8](),
		pure.WithConfig(config.Config{}))
	assert.Error(t, err, "a zero config has no table-size ceiling")
}
