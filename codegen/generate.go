package codegen

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/on-the-ground/precalc/domain"
	"github.com/on-the-ground/precalc/expr"
	"github.com/on-the-ground/precalc/internal/log"
	"github.com/on-the-ground/precalc/model"
	"github.com/on-the-ground/precalc/preserve"
	"github.com/on-the-ground/precalc/table"
)

// Options configures the generation of one function.
type Options[R any] struct {
	// Default pre-fills table storage. Required.
	Default table.DefaultFunc[R]
	// Render writes table values as Go literals. Nil means Literal[R]().
	Render Renderer[R]
	// Scope resolves named bounds and constants in bodies.
	Scope domain.Scope
	// MaxTableSize caps the table; zero means domain.DefaultMaxTableSize.
	MaxTableSize uint64
}

// Unit is one generated function: its resolved domain and rendered declarations.
type Unit struct {
	Spec     model.FunctionSpec
	Identity uuid.UUID
	Mapper   *domain.Mapper
	Entries  int
	decls    string
}

// Decls is the Go source of the unit's declarations, unformatted.
func (u *Unit) Decls() string {
	return u.decls
}

// Generate runs the whole pipeline for spec: resolve bounds, enumerate the
// domain, build the table with compute, and render the dispatch function for
// spec.Mode. compute is the original computation; spec.Internal() is the name it
// has in the target package.
func Generate[R any](spec model.FunctionSpec, compute preserve.Func[R], opts Options[R]) (*Unit, error) {
	if err := validate(spec); err != nil {
		return nil, err
	}
	ceiling := opts.MaxTableSize
	if ceiling == 0 {
		ceiling = domain.DefaultMaxTableSize
	}
	render := opts.Render
	if render == nil {
		render = Literal[R]()
	}

	m, err := domain.Enumerate(spec, opts.Scope, ceiling)
	if err != nil {
		return nil, err
	}
	orig, err := preserve.New(spec, compute)
	if err != nil {
		return nil, err
	}
	t, stats, err := table.Build(orig, m, opts.Default)
	if err != nil {
		return nil, err
	}

	values := make([]string, t.Len())
	for i := range values {
		s, err := render(t.At(i))
		if err != nil {
			return nil, model.NewError(model.ErrUnsupportedType).
				Function(spec.Name).
				Tuple(m.Names(), m.Tuple(i)).
				Detail("cannot render table value").
				Cause(err).
				Build()
		}
		values[i] = s
	}

	e := emitter{spec: spec, m: m, identity: orig.ID}
	e.unit(values)

	log.Logger().Info("generated precalculated function",
		zap.String("function", spec.Name),
		zap.Stringer("mode", spec.Mode),
		zap.Int("entries", stats.Entries),
		zap.Duration("build", stats.Span.Duration()),
	)
	return &Unit{
		Spec:     spec,
		Identity: orig.ID,
		Mapper:   m,
		Entries:  stats.Entries,
		decls:    e.String(),
	}, nil
}

// GenerateBody generates a function whose original is spec.Body, an integer
// expression compiled by package expr. The original is emitted alongside the
// table under spec.Internal().
func GenerateBody(spec model.FunctionSpec, scope domain.Scope, maxTableSize uint64) (*Unit, error) {
	if strings.TrimSpace(spec.Body) == "" {
		return nil, model.NewError(model.ErrNonTotalComputation).
			Function(spec.Name).
			Detail("declaration has no body").
			Build()
	}
	result, err := model.ParseKind(spec.Result)
	if err != nil {
		return nil, model.InFunction(err, spec.Name)
	}
	prog, err := expr.Compile(spec.Body, spec.Params, result, scope)
	if err != nil {
		return nil, model.InFunction(err, spec.Name)
	}
	zero := model.Int{Kind: result}
	return Generate(spec, prog.Eval, Options[model.Int]{
		Default:      table.Value(zero),
		Render:       IntRenderer(),
		Scope:        scope,
		MaxTableSize: maxTableSize,
	})
}

func validate(spec model.FunctionSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(spec.Result) == "" {
		return model.NewError(model.ErrUnsupportedType).Function(spec.Name).Detail("no result type").Build()
	}
	for _, p := range spec.Params {
		if strings.HasPrefix(p.Name, "_") {
			return model.NewError(model.ErrUnsupportedType).
				Function(spec.Name).
				Param(p.Name).
				Detail("names starting with _ are reserved for generated code").
				Build()
		}
	}
	return nil
}
