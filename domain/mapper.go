package domain

import (
	"github.com/on-the-ground/precalc/model"
)

// Mapper is the row-major bijection between in-range argument tuples and table
// offsets: offset = sum((v_i - lower_i) * stride_i), the last stride being 1.
type Mapper struct {
	ranges  []model.Range
	extents []uint64
	strides []int
	size    int
}

// NewMapper derives strides from a shape computed for the same ranges.
func NewMapper(ranges []model.Range, shape Shape) *Mapper {
	strides := make([]int, len(ranges))
	stride := 1
	for i := len(ranges) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= int(shape.Extents[i])
	}
	return &Mapper{
		ranges:  append([]model.Range(nil), ranges...),
		extents: append([]uint64(nil), shape.Extents...),
		strides: strides,
		size:    shape.Size,
	}
}

// Enumerate resolves f's bounds and builds its mapper, enforcing the ceiling.
func Enumerate(f model.FunctionSpec, scope Scope, ceiling uint64) (*Mapper, error) {
	ranges, err := ResolveAll(f, scope)
	if err != nil {
		return nil, err
	}
	shape, err := NewShape(ranges, ceiling)
	if err != nil {
		return nil, model.InFunction(err, f.Name)
	}
	return NewMapper(ranges, shape), nil
}

func (m *Mapper) Dims() int {
	return len(m.ranges)
}

// Size is the number of table entries.
func (m *Mapper) Size() int {
	return m.size
}

func (m *Mapper) Range(dim int) model.Range {
	return m.ranges[dim]
}

// Ranges returns a copy of the resolved ranges.
func (m *Mapper) Ranges() []model.Range {
	return append([]model.Range(nil), m.ranges...)
}

func (m *Mapper) Names() []string {
	names := make([]string, len(m.ranges))
	for i, r := range m.ranges {
		names[i] = r.Name
	}
	return names
}

func (m *Mapper) Extent(dim int) uint64 {
	return m.extents[dim]
}

func (m *Mapper) Stride(dim int) int {
	return m.strides[dim]
}

// Index is the unsigned distance of v from the dimension's lower bound. It is
// below Extent(dim) exactly when v is in range.
func (m *Mapper) Index(dim int, v model.Int) uint64 {
	return v.Bits - m.ranges[dim].Lower.Bits
}

// Contains reports whether every value of t is within its dimension's bounds.
func (m *Mapper) Contains(t []model.Int) bool {
	if len(t) != len(m.ranges) {
		return false
	}
	for i, v := range t {
		if m.Index(i, v) >= m.extents[i] {
			return false
		}
	}
	return true
}

// Offset maps an in-range tuple to its table offset. ok is false for tuples of
// the wrong arity or with an out-of-range value.
func (m *Mapper) Offset(t []model.Int) (offset int, ok bool) {
	if len(t) != len(m.ranges) {
		return 0, false
	}
	for i, v := range t {
		idx := m.Index(i, v)
		if idx >= m.extents[i] {
			return 0, false
		}
		offset += int(idx) * m.strides[i]
	}
	return offset, true
}

// Tuple is the inverse of Offset for offset in [0, Size).
func (m *Mapper) Tuple(offset int) []model.Int {
	t := make([]model.Int, len(m.ranges))
	for i, r := range m.ranges {
		idx := offset / m.strides[i]
		offset -= idx * m.strides[i]
		t[i] = r.Lower.Add(uint64(idx))
	}
	return t
}

// Rows is the stride table of a dimension: entry k is k * Stride(dim), for k in
// [0, Extent(dim)). Indexing it with an unchecked Index faults on out-of-range
// values.
func (m *Mapper) Rows(dim int) []int {
	rows := make([]int, m.extents[dim])
	for k := range rows {
		rows[k] = k * m.strides[dim]
	}
	return rows
}

// Each visits every tuple in ascending row-major order: the first dimension
// varies slowest. The tuple passed to fn is reused between calls. Each stops at
// the first error returned by fn.
func (m *Mapper) Each(fn func(offset int, t []model.Int) error) error {
	t := make([]model.Int, len(m.ranges))
	idx := make([]uint64, len(m.ranges))
	for i, r := range m.ranges {
		t[i] = r.Lower
	}
	for offset := 0; offset < m.size; offset++ {
		if err := fn(offset, t); err != nil {
			return err
		}
		for d := len(m.ranges) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < m.extents[d] {
				t[d] = t[d].Add(1)
				break
			}
			idx[d] = 0
			t[d] = m.ranges[d].Lower
		}
	}
	return nil
}
