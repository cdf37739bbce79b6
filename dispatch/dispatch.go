// Package dispatch synthesizes the calling conventions that answer calls from a
// built table.
//
// Each mode produces its own closure; the mode is never consulted at call time.
// The closures only read the table and are safe for concurrent use.
package dispatch

import (
	"fmt"

	"github.com/on-the-ground/precalc/model"
	"github.com/on-the-ground/precalc/preserve"
	"github.com/on-the-ground/precalc/table"
)

// Func is the dispatch signature of the Panic and Fallback modes.
type Func[R any] func(args ...model.Int) R

// OptionFunc is the dispatch signature of the Option mode.
type OptionFunc[R any] func(args ...model.Int) (R, bool)

// Artifact is a synthesized dispatch function. Exactly one of Call and Get is
// set, depending on Mode.
type Artifact[R any] struct {
	Mode model.Mode
	Call Func[R]
	Get  OptionFunc[R]
}

// Synthesize builds the dispatch function for mode. orig is required for
// Fallback only.
func Synthesize[R any](mode model.Mode, t *table.Table[R], orig *preserve.Original[R]) (Artifact[R], error) {
	switch mode {
	case model.ModePanic:
		return Artifact[R]{Mode: mode, Call: Unchecked(t)}, nil
	case model.ModeOption:
		return Artifact[R]{Mode: mode, Get: Checked(t)}, nil
	case model.ModeFallback:
		if orig == nil {
			return Artifact[R]{}, fmt.Errorf("%s: fallback dispatch needs the original computation", t.Name())
		}
		return Artifact[R]{Mode: mode, Call: Fallback(t, orig)}, nil
	}
	return Artifact[R]{}, fmt.Errorf("%s: unknown mode %v", t.Name(), mode)
}

// Unchecked looks arguments up assuming they are in range. Each argument's
// unsigned distance from its lower bound indexes that dimension's stride table,
// so an out-of-range argument faults with a runtime index panic. So does a call
// with the wrong number of arguments.
func Unchecked[R any](t *table.Table[R]) Func[R] {
	m := t.Mapper()
	name, entries := t.Name(), t.Raw()
	rows := make([][]int, m.Dims())
	lows := make([]uint64, m.Dims())
	for d := range rows {
		rows[d] = m.Rows(d)
		lows[d] = m.Range(d).Lower.Bits
	}
	return func(args ...model.Int) R {
		checkArity(name, len(rows), args)
		off := 0
		for d, row := range rows {
			off += row[args[d].Bits-lows[d]]
		}
		return entries[off]
	}
}

// Checked returns the entry and true for in-range arguments, and false otherwise.
func Checked[R any](t *table.Table[R]) OptionFunc[R] {
	return func(args ...model.Int) (R, bool) {
		return t.Lookup(args)
	}
}

// Fallback answers in-range calls from the table and recomputes the rest with
// the original. A failure of the original on an out-of-range call panics, as
// calling the original directly would. So does a call with the wrong number of
// arguments.
func Fallback[R any](t *table.Table[R], orig *preserve.Original[R]) Func[R] {
	compute := orig.Compute()
	name, dims := t.Name(), t.Mapper().Dims()
	return func(args ...model.Int) R {
		checkArity(name, dims, args)
		if v, ok := t.Lookup(args); ok {
			return v
		}
		v, err := compute(args)
		if err != nil {
			panic(err)
		}
		return v
	}
}

func checkArity(name string, dims int, args []model.Int) {
	if len(args) != dims {
		panic(fmt.Sprintf("%s: called with %d arguments, want %d", name, len(args), dims))
	}
}
