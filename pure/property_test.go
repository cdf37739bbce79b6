package pure_test

import (
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/on-the-ground/precalc/model"
	"github.com/on-the-ground/precalc/pure"
	"github.com/on-the-ground/precalc/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var identityRange = pure.Range[int32]("", -10, 10)

// arbitraryInt32 draws arguments over the whole int32 range, with every other
// draw landing in or just around [-10, 10].
var arbitraryInt32 = &quick.Config{
	MaxCount: 2000,
	Values: func(args []reflect.Value, r *rand.Rand) {
		for i := range args {
			v := int32(r.Uint32())
			if r.Intn(2) == 0 {
				v = int32(r.Intn(25)) - 12
			}
			args[i] = reflect.ValueOf(v)
		}
	},
}

func TestFallbackNeverFails_OneArgument(t *testing.T) {
	identity := func(a int32) int32 { return a }
	p, err := pure.PrecalculateI1O1(identity, identityRange, table.Zero[int32](), pure.WithMode(model.ModeFallback))
	require.NoError(t, err)
	fn, err := p.Dispatch()
	require.NoError(t, err)

	assert.NoError(t, quick.CheckEqual(identity, fn, arbitraryInt32))
}

func TestFallbackNeverFails_TwoArguments(t *testing.T) {
	identity := func(a, b int32) (int32, int32) { return a, b }
	p, err := pure.PrecalculateI2O2(identity, identityRange, identityRange,
		table.Zero[int32](), table.Zero[int32](), pure.WithMode(model.ModeFallback))
	require.NoError(t, err)
	fn, err := p.Dispatch()
	require.NoError(t, err)

	assert.NoError(t, quick.CheckEqual(identity, fn, arbitraryInt32))
}

func TestFallbackNeverFails_ThreeArguments(t *testing.T) {
	identity := func(a, b, c int32) model.Tuple3[int32, int32, int32] {
		return model.Tuple3[int32, int32, int32]{V1: a, V2: b, V3: c}
	}
	p, err := pure.PrecalculateI3O1(identity, identityRange, identityRange, identityRange,
		table.Triple(table.Zero[int32](), table.Zero[int32](), table.Zero[int32]()),
		pure.WithMode(model.ModeFallback))
	require.NoError(t, err)
	assert.Equal(t, 21*21*21, p.Table().Len())
	fn, err := p.Dispatch()
	require.NoError(t, err)

	assert.NoError(t, quick.CheckEqual(identity, fn, arbitraryInt32))
}

func TestFallbackNeverFails_FourArguments(t *testing.T) {
	identity := func(a, b, c, d int32) [4]int32 { return [4]int32{a, b, c, d} }
	p, err := pure.PrecalculateI4O1(identity, identityRange, identityRange, identityRange, identityRange,
		table.Value([4]int32{}), pure.WithMode(model.ModeFallback))
	require.NoError(t, err)
	fn, err := p.Dispatch()
	require.NoError(t, err)

	assert.NoError(t, quick.CheckEqual(identity, fn, arbitraryInt32))
}

func TestIdentity_InRangeFromTable(t *testing.T) {
	identity := func(a, b int32) (int32, int32) { return a, b }
	p, err := pure.PrecalculateI2O2(identity, identityRange, identityRange, table.Zero[int32](), table.Zero[int32]())
	require.NoError(t, err)

	unchecked := p.Unchecked()
	checked := p.Checked()
	for a := int32(-10); a <= 10; a++ {
		for b := int32(-10); b <= 10; b++ {
			x, y := unchecked(a, b)
			assert.Equal(t, [2]int32{a, b}, [2]int32{x, y})
			x, y, ok := checked(a, b)
			assert.True(t, ok)
			assert.Equal(t, [2]int32{a, b}, [2]int32{x, y})
		}
	}
	_, _, ok := checked(11, 0)
	assert.False(t, ok)
	_, _, ok = checked(0, -11)
	assert.False(t, ok)
}
