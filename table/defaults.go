package table

import (
	"golang.org/x/exp/constraints"

	"github.com/on-the-ground/precalc/model"
)

// DefaultFunc provides the DefaultBuildTimeValue of a result type: a placeholder
// used only to pre-fill table storage before it is built.
type DefaultFunc[R any] func() R

// Number is the set of result types with a built-in zero default.
type Number interface {
	constraints.Integer | constraints.Float
}

// Zero provides 0 for numeric results.
func Zero[R Number]() DefaultFunc[R] {
	return func() R { return 0 }
}

// Absent provides None for optional results.
func Absent[T any]() DefaultFunc[model.Option[T]] {
	return model.None[T]
}

// Pair provides a component-wise default for two results.
func Pair[A, B any](a DefaultFunc[A], b DefaultFunc[B]) DefaultFunc[model.Tuple2[A, B]] {
	if a == nil || b == nil {
		return nil
	}
	return func() model.Tuple2[A, B] {
		return model.Tuple2[A, B]{V1: a(), V2: b()}
	}
}

// Triple provides a component-wise default for three results.
func Triple[A, B, C any](a DefaultFunc[A], b DefaultFunc[B], c DefaultFunc[C]) DefaultFunc[model.Tuple3[A, B, C]] {
	if a == nil || b == nil || c == nil {
		return nil
	}
	return func() model.Tuple3[A, B, C] {
		return model.Tuple3[A, B, C]{V1: a(), V2: b(), V3: c()}
	}
}

// Value provides a fixed placeholder.
func Value[R any](v R) DefaultFunc[R] {
	return func() R { return v }
}
