// Package table builds lookup tables by evaluating an original computation over
// its whole domain.
package table

import (
	"github.com/on-the-ground/precalc/domain"
	"github.com/on-the-ground/precalc/model"
)

// Table is a flat, fully built lookup table. It is read-only once returned by
// Build and safe for concurrent use.
type Table[R any] struct {
	name    string
	entries []R
	mapper  *domain.Mapper
}

// Name is the public name of the tabulated function.
func (t *Table[R]) Name() string {
	return t.name
}

func (t *Table[R]) Len() int {
	return len(t.entries)
}

// At returns the entry at offset. It panics if offset is out of range.
func (t *Table[R]) At(offset int) R {
	return t.entries[offset]
}

// Lookup returns the entry for an argument tuple, or false if it is out of range.
func (t *Table[R]) Lookup(args []model.Int) (R, bool) {
	off, ok := t.mapper.Offset(args)
	if !ok {
		var zero R
		return zero, false
	}
	return t.entries[off], true
}

// Entries returns a copy of the entries in offset order.
func (t *Table[R]) Entries() []R {
	return append([]R(nil), t.entries...)
}

// Raw exposes the backing slice for dispatch synthesis. Callers must not modify it.
func (t *Table[R]) Raw() []R {
	return t.entries
}

func (t *Table[R]) Mapper() *domain.Mapper {
	return t.mapper
}
