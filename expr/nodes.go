package expr

import (
	"go/token"
	"math/big"

	"github.com/on-the-ground/precalc/model"
)

type node interface {
	kind() model.Kind
	eval(args []model.Int) (uint64, error)
}

type untypedConst struct {
	v *big.Int
}

func (untypedConst) kind() model.Kind { return untyped }

// eval is never reached: untyped constants are converted before evaluation.
func (u untypedConst) eval([]model.Int) (uint64, error) {
	return u.v.Uint64(), nil
}

type typedConst struct {
	k    model.Kind
	v    *big.Int
	bits uint64
}

func (c typedConst) kind() model.Kind { return c.k }

func (c typedConst) eval([]model.Int) (uint64, error) {
	return c.bits, nil
}

type param struct {
	idx int
	k   model.Kind
}

func (p param) kind() model.Kind { return p.k }

func (p param) eval(args []model.Int) (uint64, error) {
	return args[p.idx].Bits, nil
}

type conversion struct {
	x node
	k model.Kind
}

func (c conversion) kind() model.Kind { return c.k }

func (c conversion) eval(args []model.Int) (uint64, error) {
	x, err := c.x.eval(args)
	if err != nil {
		return 0, err
	}
	return wrap(c.k, x), nil
}

type unaryOp struct {
	op token.Token
	x  node
}

func (u unaryOp) kind() model.Kind { return u.x.kind() }

func (u unaryOp) eval(args []model.Int) (uint64, error) {
	x, err := u.x.eval(args)
	if err != nil {
		return 0, err
	}
	if u.op == token.SUB {
		return wrap(u.kind(), -x), nil
	}
	return wrap(u.kind(), ^x), nil
}

type binaryOp struct {
	op   token.Token
	x, y node
	k    model.Kind
}

func (b binaryOp) kind() model.Kind { return b.k }

func (b binaryOp) eval(args []model.Int) (uint64, error) {
	x, err := b.x.eval(args)
	if err != nil {
		return 0, err
	}
	y, err := b.y.eval(args)
	if err != nil {
		return 0, err
	}
	switch b.op {
	case token.ADD:
		return wrap(b.k, x+y), nil
	case token.SUB:
		return wrap(b.k, x-y), nil
	case token.MUL:
		return wrap(b.k, x*y), nil
	case token.QUO, token.REM:
		if y == 0 {
			return 0, ErrDivideByZero
		}
		if b.k.Signed() {
			// MinInt64 / -1 yields MinInt64 in Go, as it does here.
			if b.op == token.QUO {
				return wrap(b.k, uint64(int64(x)/int64(y))), nil
			}
			return wrap(b.k, uint64(int64(x)%int64(y))), nil
		}
		if b.op == token.QUO {
			return x / y, nil
		}
		return x % y, nil
	case token.AND:
		return x & y, nil
	case token.OR:
		return x | y, nil
	case token.XOR:
		return x ^ y, nil
	case token.AND_NOT:
		return x &^ y, nil
	}
	panic("expr: unreachable operator " + b.op.String())
}

type shiftOp struct {
	op   token.Token
	x, y node
}

func (s shiftOp) kind() model.Kind { return s.x.kind() }

func (s shiftOp) eval(args []model.Int) (uint64, error) {
	x, err := s.x.eval(args)
	if err != nil {
		return 0, err
	}
	n, err := s.y.eval(args)
	if err != nil {
		return 0, err
	}
	if s.y.kind().Signed() && int64(n) < 0 {
		return 0, ErrNegativeShift
	}
	k := s.kind()
	if s.op == token.SHL {
		if n >= 64 {
			return 0, nil
		}
		return wrap(k, x<<n), nil
	}
	if k.Signed() {
		if n >= 64 {
			n = 63
		}
		return wrap(k, uint64(int64(x)>>n)), nil
	}
	if n >= 64 {
		return 0, nil
	}
	return x >> n, nil
}

type minMaxOp struct {
	isMin bool
	args  []node
	k     model.Kind
}

func (m minMaxOp) kind() model.Kind { return m.k }

func (m minMaxOp) eval(args []model.Int) (uint64, error) {
	best, err := m.args[0].eval(args)
	if err != nil {
		return 0, err
	}
	for _, a := range m.args[1:] {
		v, err := a.eval(args)
		if err != nil {
			return 0, err
		}
		c := model.Int{Kind: m.k, Bits: v}.Cmp(model.Int{Kind: m.k, Bits: best})
		if (m.isMin && c < 0) || (!m.isMin && c > 0) {
			best = v
		}
	}
	return best, nil
}

func wrap(k model.Kind, bits uint64) uint64 {
	return model.NewInt(k, bits).Bits
}
