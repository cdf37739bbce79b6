// Package preserve keeps the original computation of a precalculated function
// reachable under its own identity.
package preserve

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/on-the-ground/precalc/model"
)

// Namespace scopes the name-based identities of preserved originals.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/on-the-ground/precalc/original"))

// Func is an original computation over a tuple of integer arguments. A failure
// is reported either as an error or as a panic.
type Func[R any] func(args []model.Int) (R, error)

// Original is the untouched computation a dispatch function replaces.
type Original[R any] struct {
	// Name is the public name the dispatch function takes over.
	Name string
	// Internal is the distinct name the original stays reachable under.
	Internal string
	// ID is stable across builds: it is derived from Name and Internal only.
	ID uuid.UUID

	fn Func[R]
}

// New preserves fn for the function declared by spec.
func New[R any](spec model.FunctionSpec, fn Func[R]) (*Original[R], error) {
	if fn == nil {
		return nil, model.NewError(model.ErrNonTotalComputation).
			Function(spec.Name).
			Detail("no original computation").
			Build()
	}
	internal := spec.Internal()
	return &Original[R]{
		Name:     spec.Name,
		Internal: internal,
		ID:       uuid.NewSHA1(Namespace, []byte(spec.Name+"/"+internal)),
		fn:       fn,
	}, nil
}

// Call evaluates the original on args, turning a panic into an error.
func (o *Original[R]) Call(args []model.Int) (res R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return o.fn(args)
}

// Compute returns the raw computation, without panic recovery.
func (o *Original[R]) Compute() Func[R] {
	return o.fn
}
