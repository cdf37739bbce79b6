package domain

import (
	"math"
	"math/big"

	"github.com/on-the-ground/precalc/model"
)

// DefaultMaxTableSize is the table-size ceiling used when none is configured.
const DefaultMaxTableSize uint64 = 1 << 20

// Shape is the extent of every dimension and the total number of table entries.
type Shape struct {
	Extents []uint64
	Size    int
}

// NewShape computes the domain shape of ranges. Extents and their product are
// computed exactly, so a domain that would overflow any machine word is reported
// as ErrDomainTooLarge instead of wrapping.
func NewShape(ranges []model.Range, ceiling uint64) (Shape, error) {
	if len(ranges) == 0 {
		return Shape{}, model.NewError(model.ErrInvalidRange).Detail("no dimensions").Build()
	}
	if ceiling == 0 {
		return Shape{}, model.NewError(model.ErrDomainTooLarge).Detail("table size ceiling is zero").Build()
	}

	limit := new(big.Int).SetUint64(ceiling)
	if maxInt := big.NewInt(math.MaxInt); limit.Cmp(maxInt) > 0 {
		limit = maxInt
	}

	total := big.NewInt(1)
	extents := make([]uint64, len(ranges))
	for i, r := range ranges {
		e := r.Extent()
		total.Mul(total, e)
		if total.Cmp(limit) > 0 {
			return Shape{}, model.NewError(model.ErrDomainTooLarge).
				Param(r.Name).
				Detail("%s entries so far exceed the ceiling of %d", total, ceiling).
				Build()
		}
		extents[i] = e.Uint64()
	}
	return Shape{Extents: extents, Size: int(total.Int64())}, nil
}
