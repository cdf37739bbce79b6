package pure

import (
	"github.com/on-the-ground/precalc/model"
	"github.com/on-the-ground/precalc/table"
)

// PrecalcI1O2 is a one-argument, two-result function answered from a table.
type PrecalcI1O2[I1 Integer, O1, O2 any] struct {
	core[model.Tuple2[O1, O2]]
	pureFn func(I1) (O1, O2)
}

// PrecalculateI1O2 tabulates a function with two results. Each result has its
// own default; the table stores them component-wise.
func PrecalculateI1O2[I1 Integer, O1, O2 any](
	pureFn func(I1) (O1, O2),
	r1 Bounds[I1],
	def1 table.DefaultFunc[O1],
	def2 table.DefaultFunc[O2],
	opts ...BuildOption,
) (*PrecalcI1O2[I1, O1, O2], error) {
	c, err := precalculate(
		[]model.ParameterSpec{r1.param(0)},
		func(args []model.Int) (model.Tuple2[O1, O2], error) {
			v1, v2 := pureFn(model.As[I1](args[0]))
			return model.Tuple2[O1, O2]{V1: v1, V2: v2}, nil
		},
		table.Pair(def1, def2),
		opts,
	)
	if err != nil {
		return nil, err
	}
	return &PrecalcI1O2[I1, O1, O2]{core: c, pureFn: pureFn}, nil
}

func (p *PrecalcI1O2[I1, O1, O2]) Unchecked() func(I1) (O1, O2) {
	entries, d1 := p.entries, p.dims[0]
	return func(i1 I1) (O1, O2) {
		res := entries[d1.rows[uint64(i1)-d1.lo]]
		return res.V1, res.V2
	}
}

func (p *PrecalcI1O2[I1, O1, O2]) Checked() func(I1) (O1, O2, bool) {
	entries, d1 := p.entries, p.dims[0]
	return func(i1 I1) (O1, O2, bool) {
		x1 := uint64(i1) - d1.lo
		if x1 > d1.span {
			var (
				zero1 O1
				zero2 O2
			)
			return zero1, zero2, false
		}
		res := entries[x1]
		return res.V1, res.V2, true
	}
}

func (p *PrecalcI1O2[I1, O1, O2]) Fallback() func(I1) (O1, O2) {
	entries, d1, pureFn := p.entries, p.dims[0], p.pureFn
	return func(i1 I1) (O1, O2) {
		x1 := uint64(i1) - d1.lo
		if x1 > d1.span {
			return pureFn(i1)
		}
		res := entries[x1]
		return res.V1, res.V2
	}
}

func (p *PrecalcI1O2[I1, O1, O2]) Dispatch() (func(I1) (O1, O2), error) {
	fallback, err := p.fallback()
	if err != nil {
		return nil, err
	}
	if fallback {
		return p.Fallback(), nil
	}
	return p.Unchecked(), nil
}

func (p *PrecalcI1O2[I1, O1, O2]) Original() func(I1) (O1, O2) {
	return p.pureFn
}

// PrecalcI2O2 is a two-argument, two-result function answered from a table.
type PrecalcI2O2[I1, I2 Integer, O1, O2 any] struct {
	core[model.Tuple2[O1, O2]]
	pureFn func(I1, I2) (O1, O2)
}

func PrecalculateI2O2[I1, I2 Integer, O1, O2 any](
	pureFn func(I1, I2) (O1, O2),
	r1 Bounds[I1],
	r2 Bounds[I2],
	def1 table.DefaultFunc[O1],
	def2 table.DefaultFunc[O2],
	opts ...BuildOption,
) (*PrecalcI2O2[I1, I2, O1, O2], error) {
	c, err := precalculate(
		[]model.ParameterSpec{r1.param(0), r2.param(1)},
		func(args []model.Int) (model.Tuple2[O1, O2], error) {
			v1, v2 := pureFn(model.As[I1](args[0]), model.As[I2](args[1]))
			return model.Tuple2[O1, O2]{V1: v1, V2: v2}, nil
		},
		table.Pair(def1, def2),
		opts,
	)
	if err != nil {
		return nil, err
	}
	return &PrecalcI2O2[I1, I2, O1, O2]{core: c, pureFn: pureFn}, nil
}

func (p *PrecalcI2O2[I1, I2, O1, O2]) Unchecked() func(I1, I2) (O1, O2) {
	entries, d1, d2 := p.entries, p.dims[0], p.dims[1]
	return func(i1 I1, i2 I2) (O1, O2) {
		res := entries[d1.rows[uint64(i1)-d1.lo]+d2.rows[uint64(i2)-d2.lo]]
		return res.V1, res.V2
	}
}

func (p *PrecalcI2O2[I1, I2, O1, O2]) Checked() func(I1, I2) (O1, O2, bool) {
	entries, d1, d2 := p.entries, p.dims[0], p.dims[1]
	return func(i1 I1, i2 I2) (O1, O2, bool) {
		x1, x2 := uint64(i1)-d1.lo, uint64(i2)-d2.lo
		if x1 > d1.span || x2 > d2.span {
			var (
				zero1 O1
				zero2 O2
			)
			return zero1, zero2, false
		}
		res := entries[int(x1)*d1.stride+int(x2)]
		return res.V1, res.V2, true
	}
}

func (p *PrecalcI2O2[I1, I2, O1, O2]) Fallback() func(I1, I2) (O1, O2) {
	entries, d1, d2, pureFn := p.entries, p.dims[0], p.dims[1], p.pureFn
	return func(i1 I1, i2 I2) (O1, O2) {
		x1, x2 := uint64(i1)-d1.lo, uint64(i2)-d2.lo
		if x1 > d1.span || x2 > d2.span {
			return pureFn(i1, i2)
		}
		res := entries[int(x1)*d1.stride+int(x2)]
		return res.V1, res.V2
	}
}

func (p *PrecalcI2O2[I1, I2, O1, O2]) Dispatch() (func(I1, I2) (O1, O2), error) {
	fallback, err := p.fallback()
	if err != nil {
		return nil, err
	}
	if fallback {
		return p.Fallback(), nil
	}
	return p.Unchecked(), nil
}

func (p *PrecalcI2O2[I1, I2, O1, O2]) Original() func(I1, I2) (O1, O2) {
	return p.pureFn
}
