package model

import "math/big"

// Range is a parameter whose bounds have been resolved to values of its kind.
type Range struct {
	Name  string
	Kind  Kind
	Lower Int
	Upper Int
}

// Extent is Upper - Lower + 1, exact even for full 64-bit ranges.
func (r Range) Extent() *big.Int {
	e := new(big.Int).Sub(r.Upper.Big(), r.Lower.Big())
	return e.Add(e, big.NewInt(1))
}

// Contains reports whether v lies in [Lower, Upper].
func (r Range) Contains(v Int) bool {
	return v.Bits-r.Lower.Bits <= r.Upper.Bits-r.Lower.Bits
}

// Span is Upper - Lower as an unsigned distance.
func (r Range) Span() uint64 {
	return r.Upper.Bits - r.Lower.Bits
}
