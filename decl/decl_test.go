package decl_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/on-the-ground/precalc/config"
	"github.com/on-the-ground/precalc/decl"
	"github.com/on-the-ground/precalc/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const curves = `
package: curves
output: curves_precalc.go
max_table_size: 65536
default_mode: option
constants: { STEPS: 16, START: -3 }
functions:
  - name: Gain
    original: gainOriginal
    mode: fallback
    result: int32
    params:
      - { name: level, type: uint8, lower: 0, upper: STEPS }
    body: int32(level) * int32(level) / 4
  - name: Shift
    result: int8
    params:
      - { name: x, type: int8, lower: START, upper: "3" }
      - { name: y, type: byte, lower: 0x0, upper: 2 }
    body: x + int8(y)
`

func TestParse(t *testing.T) {
	f, err := decl.Parse(strings.NewReader(curves))
	require.NoError(t, err)

	assert.Equal(t, "curves", f.Package)
	assert.Equal(t, uint64(65536), f.MaxTableSize)
	assert.Equal(t, model.ModeOption, f.DefaultMode)
	assert.Equal(t, []string{"START", "STEPS"}, f.ConstantNames())
	assert.Equal(t, "curves_precalc.go", f.OutputPath())

	cfg := config.Default().Merge(f.Config)
	specs, err := f.Specs(cfg)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	gain := specs[0]
	assert.Equal(t, "Gain", gain.Name)
	assert.Equal(t, "gainOriginal", gain.Internal())
	assert.Equal(t, model.ModeFallback, gain.Mode)
	assert.Equal(t, model.Uint8, gain.Params[0].Kind)
	assert.Equal(t, model.Lit(0), gain.Params[0].Lower)
	assert.Equal(t, model.Named("STEPS"), gain.Params[0].Upper)

	shift := specs[1]
	assert.Equal(t, model.ModeOption, shift.Mode, "a missing mode takes default_mode")
	assert.Equal(t, "shiftOriginal", shift.Internal())
	assert.Equal(t, model.Uint8, shift.Params[1].Kind)
	assert.Equal(t, "0x0", shift.Params[1].Lower.Expr)

	v, err := f.Scope().Lookup("START")
	require.NoError(t, err)
	assert.Equal(t, "-3", v.Value.ExactString())
}

func TestSpecs_DefaultModeIsPanic(t *testing.T) {
	f, err := decl.Parse(strings.NewReader(`
package: p
functions:
  - name: Id
    result: uint8
    params: [{ name: v, type: uint8, lower: 0, upper: 255 }]
    body: v
`))
	require.NoError(t, err)
	specs, err := f.Specs(config.Default().Merge(f.Config))
	require.NoError(t, err)
	assert.Equal(t, model.ModePanic, specs[0].Mode)
	assert.Equal(t, "precalc_gen.go", f.OutputPath())
}

func TestSpecs_ReportsEveryInvalidDeclaration(t *testing.T) {
	f, err := decl.Parse(strings.NewReader(`
package: p
constants: { BAD: twelve }
functions:
  - name: A
    result: float64
    params: [{ name: v, type: uint8, lower: 0, upper: 1 }]
    body: v
  - name: B
    result: uint8
    params: [{ name: v, type: string, lower: 0, upper: 1 }]
    body: v
  - name: C
    mode: sometimes
    result: uint8
    params: [{ name: v, type: uint8, lower: 0, upper: 1 }]
    body: v
  - name: D
    result: uint8
    params: [{ name: v, type: uint8, lower: 0, upper: 1 }]
  - name: E
    result: uint8
    params: [{ name: v, type: uint8, lower: 0, upper: 1 }]
    body: v
  - name: E
    result: uint8
    params: [{ name: v, type: uint8, lower: 0, upper: 1 }]
    body: v
`))
	require.NoError(t, err)

	_, err = f.Specs(config.Default())
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 6)
	assert.True(t, errors.Is(err, model.ErrUnsupportedType))
	assert.True(t, errors.Is(err, model.ErrNonTotalComputation))
	assert.Contains(t, err.Error(), "BAD")
}

func TestParse_Errors(t *testing.T) {
	_, err := decl.Parse(strings.NewReader(""))
	assert.Error(t, err)

	_, err = decl.Parse(strings.NewReader("package: p\nfunktions: []\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = decl.Parse(strings.NewReader("package: p\ndefault_mode: never\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(curves), 0o644))

	f, err := decl.Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, f.Dir())
	assert.Equal(t, filepath.Join(dir, "curves_precalc.go"), f.OutputPath())

	f.Output = ""
	assert.Equal(t, filepath.Join(dir, "tables_gen.go"), f.OutputPath())

	_, err = decl.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
