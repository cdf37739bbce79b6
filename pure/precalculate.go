package pure

import (
	"golang.org/x/exp/constraints"

	"github.com/on-the-ground/precalc/model"
	"github.com/on-the-ground/precalc/table"
)

type Integer = constraints.Integer

// PrecalcI1O1 is a one-argument function answered from a precomputed table.
type PrecalcI1O1[I1 Integer, O1 any] struct {
	core[O1]
	pureFn func(I1) O1
}

// PrecalculateI1O1 evaluates pureFn over every value of r1 and keeps the results.
// pureFn must be pure and total over r1; def provides the placeholder results
// storage is pre-filled with.
func PrecalculateI1O1[I1 Integer, O1 any](
	pureFn func(I1) O1,
	r1 Bounds[I1],
	def table.DefaultFunc[O1],
	opts ...BuildOption,
) (*PrecalcI1O1[I1, O1], error) {
	c, err := precalculate(
		[]model.ParameterSpec{r1.param(0)},
		func(args []model.Int) (O1, error) {
			return pureFn(model.As[I1](args[0])), nil
		},
		def,
		opts,
	)
	if err != nil {
		return nil, err
	}
	return &PrecalcI1O1[I1, O1]{core: c, pureFn: pureFn}, nil
}

// Unchecked returns the Panic-mode dispatch: no bounds check, an out-of-range
// argument panics with an index out of range.
func (p *PrecalcI1O1[I1, O1]) Unchecked() func(I1) O1 {
	entries, d1 := p.entries, p.dims[0]
	return func(i1 I1) O1 {
		return entries[d1.rows[uint64(i1)-d1.lo]]
	}
}

// Checked returns the Option-mode dispatch: false for out-of-range arguments.
func (p *PrecalcI1O1[I1, O1]) Checked() func(I1) (O1, bool) {
	entries, d1 := p.entries, p.dims[0]
	return func(i1 I1) (O1, bool) {
		x1 := uint64(i1) - d1.lo
		if x1 > d1.span {
			var zero O1
			return zero, false
		}
		return entries[x1], true
	}
}

// Fallback returns the Fallback-mode dispatch: out-of-range arguments are
// computed by the original function.
func (p *PrecalcI1O1[I1, O1]) Fallback() func(I1) O1 {
	entries, d1, pureFn := p.entries, p.dims[0], p.pureFn
	return func(i1 I1) O1 {
		x1 := uint64(i1) - d1.lo
		if x1 > d1.span {
			return pureFn(i1)
		}
		return entries[x1]
	}
}

// Original returns the untouched function.
// Dispatch returns the dispatch of the mode chosen with WithMode, or the
// config default: Unchecked for Panic, Fallback for Fallback. Option mode
// yields ErrCheckedOnly.
func (p *PrecalcI1O1[I1, O1]) Dispatch() (func(I1) O1, error) {
	fallback, err := p.fallback()
	if err != nil {
		return nil, err
	}
	if fallback {
		return p.Fallback(), nil
	}
	return p.Unchecked(), nil
}

func (p *PrecalcI1O1[I1, O1]) Original() func(I1) O1 {
	return p.pureFn
}

// PrecalcI2O1 is a two-argument function answered from a precomputed table.
type PrecalcI2O1[I1, I2 Integer, O1 any] struct {
	core[O1]
	pureFn func(I1, I2) O1
}

func PrecalculateI2O1[I1, I2 Integer, O1 any](
	pureFn func(I1, I2) O1,
	r1 Bounds[I1],
	r2 Bounds[I2],
	def table.DefaultFunc[O1],
	opts ...BuildOption,
) (*PrecalcI2O1[I1, I2, O1], error) {
	c, err := precalculate(
		[]model.ParameterSpec{r1.param(0), r2.param(1)},
		func(args []model.Int) (O1, error) {
			return pureFn(model.As[I1](args[0]), model.As[I2](args[1])), nil
		},
		def,
		opts,
	)
	if err != nil {
		return nil, err
	}
	return &PrecalcI2O1[I1, I2, O1]{core: c, pureFn: pureFn}, nil
}

func (p *PrecalcI2O1[I1, I2, O1]) Unchecked() func(I1, I2) O1 {
	entries, d1, d2 := p.entries, p.dims[0], p.dims[1]
	return func(i1 I1, i2 I2) O1 {
		return entries[d1.rows[uint64(i1)-d1.lo]+d2.rows[uint64(i2)-d2.lo]]
	}
}

func (p *PrecalcI2O1[I1, I2, O1]) Checked() func(I1, I2) (O1, bool) {
	entries, d1, d2 := p.entries, p.dims[0], p.dims[1]
	return func(i1 I1, i2 I2) (O1, bool) {
		x1, x2 := uint64(i1)-d1.lo, uint64(i2)-d2.lo
		if x1 > d1.span || x2 > d2.span {
			var zero O1
			return zero, false
		}
		return entries[int(x1)*d1.stride+int(x2)], true
	}
}

func (p *PrecalcI2O1[I1, I2, O1]) Fallback() func(I1, I2) O1 {
	entries, d1, d2, pureFn := p.entries, p.dims[0], p.dims[1], p.pureFn
	return func(i1 I1, i2 I2) O1 {
		x1, x2 := uint64(i1)-d1.lo, uint64(i2)-d2.lo
		if x1 > d1.span || x2 > d2.span {
			return pureFn(i1, i2)
		}
		return entries[int(x1)*d1.stride+int(x2)]
	}
}

func (p *PrecalcI2O1[I1, I2, O1]) Dispatch() (func(I1, I2) O1, error) {
	fallback, err := p.fallback()
	if err != nil {
		return nil, err
	}
	if fallback {
		return p.Fallback(), nil
	}
	return p.Unchecked(), nil
}

func (p *PrecalcI2O1[I1, I2, O1]) Original() func(I1, I2) O1 {
	return p.pureFn
}

// PrecalcI3O1 is a three-argument function answered from a precomputed table.
type PrecalcI3O1[I1, I2, I3 Integer, O1 any] struct {
	core[O1]
	pureFn func(I1, I2, I3) O1
}

func PrecalculateI3O1[I1, I2, I3 Integer, O1 any](
	pureFn func(I1, I2, I3) O1,
	r1 Bounds[I1],
	r2 Bounds[I2],
	r3 Bounds[I3],
	def table.DefaultFunc[O1],
	opts ...BuildOption,
) (*PrecalcI3O1[I1, I2, I3, O1], error) {
	c, err := precalculate(
		[]model.ParameterSpec{r1.param(0), r2.param(1), r3.param(2)},
		func(args []model.Int) (O1, error) {
			return pureFn(model.As[I1](args[0]), model.As[I2](args[1]), model.As[I3](args[2])), nil
		},
		def,
		opts,
	)
	if err != nil {
		return nil, err
	}
	return &PrecalcI3O1[I1, I2, I3, O1]{core: c, pureFn: pureFn}, nil
}

func (p *PrecalcI3O1[I1, I2, I3, O1]) Unchecked() func(I1, I2, I3) O1 {
	entries, d1, d2, d3 := p.entries, p.dims[0], p.dims[1], p.dims[2]
	return func(i1 I1, i2 I2, i3 I3) O1 {
		return entries[d1.rows[uint64(i1)-d1.lo]+d2.rows[uint64(i2)-d2.lo]+d3.rows[uint64(i3)-d3.lo]]
	}
}

func (p *PrecalcI3O1[I1, I2, I3, O1]) Checked() func(I1, I2, I3) (O1, bool) {
	entries, d1, d2, d3 := p.entries, p.dims[0], p.dims[1], p.dims[2]
	return func(i1 I1, i2 I2, i3 I3) (O1, bool) {
		x1, x2, x3 := uint64(i1)-d1.lo, uint64(i2)-d2.lo, uint64(i3)-d3.lo
		if x1 > d1.span || x2 > d2.span || x3 > d3.span {
			var zero O1
			return zero, false
		}
		return entries[int(x1)*d1.stride+int(x2)*d2.stride+int(x3)], true
	}
}

func (p *PrecalcI3O1[I1, I2, I3, O1]) Fallback() func(I1, I2, I3) O1 {
	entries, d1, d2, d3, pureFn := p.entries, p.dims[0], p.dims[1], p.dims[2], p.pureFn
	return func(i1 I1, i2 I2, i3 I3) O1 {
		x1, x2, x3 := uint64(i1)-d1.lo, uint64(i2)-d2.lo, uint64(i3)-d3.lo
		if x1 > d1.span || x2 > d2.span || x3 > d3.span {
			return pureFn(i1, i2, i3)
		}
		return entries[int(x1)*d1.stride+int(x2)*d2.stride+int(x3)]
	}
}

func (p *PrecalcI3O1[I1, I2, I3, O1]) Dispatch() (func(I1, I2, I3) O1, error) {
	fallback, err := p.fallback()
	if err != nil {
		return nil, err
	}
	if fallback {
		return p.Fallback(), nil
	}
	return p.Unchecked(), nil
}

func (p *PrecalcI3O1[I1, I2, I3, O1]) Original() func(I1, I2, I3) O1 {
	return p.pureFn
}

// PrecalcI4O1 is a four-argument function answered from a precomputed table.
type PrecalcI4O1[I1, I2, I3, I4 Integer, O1 any] struct {
	core[O1]
	pureFn func(I1, I2, I3, I4) O1
}

func PrecalculateI4O1[I1, I2, I3, I4 Integer, O1 any](
	pureFn func(I1, I2, I3, I4) O1,
	r1 Bounds[I1],
	r2 Bounds[I2],
	r3 Bounds[I3],
	r4 Bounds[I4],
	def table.DefaultFunc[O1],
	opts ...BuildOption,
) (*PrecalcI4O1[I1, I2, I3, I4, O1], error) {
	c, err := precalculate(
		[]model.ParameterSpec{r1.param(0), r2.param(1), r3.param(2), r4.param(3)},
		func(args []model.Int) (O1, error) {
			return pureFn(
				model.As[I1](args[0]),
				model.As[I2](args[1]),
				model.As[I3](args[2]),
				model.As[I4](args[3]),
			), nil
		},
		def,
		opts,
	)
	if err != nil {
		return nil, err
	}
	return &PrecalcI4O1[I1, I2, I3, I4, O1]{core: c, pureFn: pureFn}, nil
}

func (p *PrecalcI4O1[I1, I2, I3, I4, O1]) Unchecked() func(I1, I2, I3, I4) O1 {
	entries, d := p.entries, p.dims
	d1, d2, d3, d4 := d[0], d[1], d[2], d[3]
	return func(i1 I1, i2 I2, i3 I3, i4 I4) O1 {
		return entries[d1.rows[uint64(i1)-d1.lo]+
			d2.rows[uint64(i2)-d2.lo]+
			d3.rows[uint64(i3)-d3.lo]+
			d4.rows[uint64(i4)-d4.lo]]
	}
}

func (p *PrecalcI4O1[I1, I2, I3, I4, O1]) Checked() func(I1, I2, I3, I4) (O1, bool) {
	entries, d := p.entries, p.dims
	d1, d2, d3, d4 := d[0], d[1], d[2], d[3]
	return func(i1 I1, i2 I2, i3 I3, i4 I4) (O1, bool) {
		x1, x2, x3, x4 := uint64(i1)-d1.lo, uint64(i2)-d2.lo, uint64(i3)-d3.lo, uint64(i4)-d4.lo
		if x1 > d1.span || x2 > d2.span || x3 > d3.span || x4 > d4.span {
			var zero O1
			return zero, false
		}
		return entries[int(x1)*d1.stride+int(x2)*d2.stride+int(x3)*d3.stride+int(x4)], true
	}
}

func (p *PrecalcI4O1[I1, I2, I3, I4, O1]) Fallback() func(I1, I2, I3, I4) O1 {
	entries, d, pureFn := p.entries, p.dims, p.pureFn
	d1, d2, d3, d4 := d[0], d[1], d[2], d[3]
	return func(i1 I1, i2 I2, i3 I3, i4 I4) O1 {
		x1, x2, x3, x4 := uint64(i1)-d1.lo, uint64(i2)-d2.lo, uint64(i3)-d3.lo, uint64(i4)-d4.lo
		if x1 > d1.span || x2 > d2.span || x3 > d3.span || x4 > d4.span {
			return pureFn(i1, i2, i3, i4)
		}
		return entries[int(x1)*d1.stride+int(x2)*d2.stride+int(x3)*d3.stride+int(x4)]
	}
}

func (p *PrecalcI4O1[I1, I2, I3, I4, O1]) Dispatch() (func(I1, I2, I3, I4) O1, error) {
	fallback, err := p.fallback()
	if err != nil {
		return nil, err
	}
	if fallback {
		return p.Fallback(), nil
	}
	return p.Unchecked(), nil
}

func (p *PrecalcI4O1[I1, I2, I3, I4, O1]) Original() func(I1, I2, I3, I4) O1 {
	return p.pureFn
}
