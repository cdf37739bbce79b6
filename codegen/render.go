package codegen

import (
	"math"
	"strconv"

	"github.com/on-the-ground/precalc/model"
)

// Renderer writes a table value as a Go expression of the result type.
type Renderer[R any] func(R) (string, error)

// Literal renders integers, floats and bools, and model.Int values.
// Non-finite floats have no literal form and are rejected.
func Literal[R any]() Renderer[R] {
	return func(v R) (string, error) {
		switch v := any(v).(type) {
		case model.Int:
			return v.String(), nil
		case int:
			return strconv.FormatInt(int64(v), 10), nil
		case int8:
			return strconv.FormatInt(int64(v), 10), nil
		case int16:
			return strconv.FormatInt(int64(v), 10), nil
		case int32:
			return strconv.FormatInt(int64(v), 10), nil
		case int64:
			return strconv.FormatInt(v, 10), nil
		case uint:
			return strconv.FormatUint(uint64(v), 10), nil
		case uint8:
			return strconv.FormatUint(uint64(v), 10), nil
		case uint16:
			return strconv.FormatUint(uint64(v), 10), nil
		case uint32:
			return strconv.FormatUint(uint64(v), 10), nil
		case uint64:
			return strconv.FormatUint(v, 10), nil
		case uintptr:
			return strconv.FormatUint(uint64(v), 10), nil
		case float32:
			return float(float64(v), 32)
		case float64:
			return float(v, 64)
		case bool:
			return strconv.FormatBool(v), nil
		}
		return "", model.NewError(model.ErrUnsupportedType).
			Detail("no literal form for %T; supply a renderer", v).
			Build()
	}
}

func float(f float64, bitSize int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", model.NewError(model.ErrUnsupportedType).
			Detail("%v has no literal form", f).
			Build()
	}
	if f == 0 && math.Signbit(f) {
		// a -0 constant is +0
		return "", model.NewError(model.ErrUnsupportedType).Detail("negative zero has no literal form").Build()
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize), nil
}

// Struct renders composite values with a caller-supplied field formatter, for
// example Struct("Point", func(p Point) []string { ... }).
func Struct[R any](typeName string, fields func(R) ([]string, error)) Renderer[R] {
	return func(v R) (string, error) {
		fs, err := fields(v)
		if err != nil {
			return "", err
		}
		s := typeName + "{"
		for i, f := range fs {
			if i > 0 {
				s += ", "
			}
			s += f
		}
		return s + "}", nil
	}
}

// IntRenderer renders values produced by compiled expression bodies.
func IntRenderer() Renderer[model.Int] {
	return func(v model.Int) (string, error) {
		if !v.Kind.Valid() {
			return "", model.NewError(model.ErrUnsupportedType).Detail("value has no integer kind").Build()
		}
		return v.String(), nil
	}
}
