package pure

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/on-the-ground/precalc/config"
	"github.com/on-the-ground/precalc/dispatch"
	"github.com/on-the-ground/precalc/domain"
	"github.com/on-the-ground/precalc/model"
	"github.com/on-the-ground/precalc/preserve"
	"github.com/on-the-ground/precalc/table"
)

// Bounds declares the inclusive domain of one argument.
type Bounds[T constraints.Integer] struct {
	Name  string
	Lower T
	Upper T
}

// Range declares that argument name takes values in [lower, upper].
func Range[T constraints.Integer](name string, lower, upper T) Bounds[T] {
	return Bounds[T]{Name: name, Lower: lower, Upper: upper}
}

func (b Bounds[T]) param(pos int) model.ParameterSpec {
	name := b.Name
	if name == "" {
		name = "arg" + string(rune('1'+pos))
	}
	return model.ParameterSpec{
		Name:  name,
		Kind:  model.KindOf[T](),
		Lower: model.Bound{Expr: model.IntOf(b.Lower).String()},
		Upper: model.Bound{Expr: model.IntOf(b.Upper).String()},
	}
}

// BuildOption adjusts how a table is built.
type BuildOption func(*settings)

type settings struct {
	name string
	cfg  config.Config
}

// WithName names the function in errors and logs.
func WithName(name string) BuildOption {
	return func(s *settings) { s.name = name }
}

// WithMaxTableSize overrides the table-size ceiling.
func WithMaxTableSize(n uint64) BuildOption {
	return func(s *settings) { s.cfg.MaxTableSize = n }
}

// WithConfig replaces the whole policy. Its DefaultMode selects what Dispatch
// returns unless WithMode overrides it.
func WithConfig(c config.Config) BuildOption {
	return func(s *settings) { s.cfg = c }
}

// WithMode selects the mode Dispatch synthesizes.
func WithMode(m model.Mode) BuildOption {
	return func(s *settings) { s.cfg.DefaultMode = m }
}

// ErrCheckedOnly is returned by Dispatch for Option mode, whose comma-ok
// signature is only available through Checked.
var ErrCheckedOnly = errors.New("option mode dispatches through Checked")

// dim is the per-dimension state of a typed dispatch function.
type dim struct {
	lo     uint64
	span   uint64
	stride int
	rows   []int
}

type core[R any] struct {
	table    *table.Table[R]
	artifact dispatch.Artifact[R]
	entries  []R
	dims     []dim
}

func precalculate[R any](
	params []model.ParameterSpec,
	compute preserve.Func[R],
	def table.DefaultFunc[R],
	opts []BuildOption,
) (core[R], error) {
	s := settings{name: "precalculated", cfg: config.Default()}
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.cfg.Validate(); err != nil {
		return core[R]{}, fmt.Errorf("%s: %w", s.name, err)
	}

	spec := model.FunctionSpec{Name: s.name, Params: params}
	if err := spec.Validate(); err != nil {
		return core[R]{}, err
	}
	m, err := domain.Enumerate(spec, nil, s.cfg.MaxTableSize)
	if err != nil {
		return core[R]{}, err
	}
	orig, err := preserve.New(spec, compute)
	if err != nil {
		return core[R]{}, err
	}
	t, _, err := table.Build(orig, m, def)
	if err != nil {
		return core[R]{}, err
	}
	artifact, err := dispatch.Synthesize(s.cfg.DefaultMode, t, orig)
	if err != nil {
		return core[R]{}, err
	}

	dims := make([]dim, m.Dims())
	for d := range dims {
		r := m.Range(d)
		dims[d] = dim{
			lo:     r.Lower.Bits,
			span:   r.Span(),
			stride: m.Stride(d),
			rows:   m.Rows(d),
		}
	}
	return core[R]{table: t, artifact: artifact, entries: t.Raw(), dims: dims}, nil
}

// Table exposes the built table.
func (c core[R]) Table() *table.Table[R] {
	return c.table
}

// Artifact is the N-ary dispatch of the configured mode.
func (c core[R]) Artifact() dispatch.Artifact[R] {
	return c.artifact
}

// Mode is the mode Dispatch synthesizes.
func (c core[R]) Mode() model.Mode {
	return c.artifact.Mode
}

// fallback reports whether Dispatch answers misses with the original. Option
// mode has no single-result form and fails.
func (c core[R]) fallback() (bool, error) {
	switch c.artifact.Mode {
	case model.ModeOption:
		return false, fmt.Errorf("%s: %w", c.table.Name(), ErrCheckedOnly)
	case model.ModeFallback:
		return true, nil
	}
	return false, nil
}
