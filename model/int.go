package model

import (
	"math/big"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Int is an integer value of a given Kind. Bits holds the value's 64-bit two's
// complement pattern: signed kinds are sign-extended, unsigned kinds are
// zero-extended. This makes uint64(v) in Go and Bits agree for every kind.
type Int struct {
	Kind Kind
	Bits uint64
}

// IntOf captures a Go integer as an Int.
func IntOf[T constraints.Integer](v T) Int {
	k := KindOf[T]()
	if k.Signed() {
		return Int{Kind: k, Bits: uint64(int64(v))}
	}
	return Int{Kind: k, Bits: uint64(v)}
}

// As converts an Int back into a Go integer. The conversion truncates exactly as
// a Go conversion from uint64 would.
func As[T constraints.Integer](v Int) T {
	return T(v.Bits)
}

// NewInt wraps bits to the width of k and re-extends them.
func NewInt(k Kind, bits uint64) Int {
	return Int{Kind: k, Bits: normalize(k, bits)}
}

// IntFromBig converts v, which must fit k.
func IntFromBig(k Kind, v *big.Int) (Int, bool) {
	if !k.Fits(v) {
		return Int{}, false
	}
	if k.Signed() {
		return Int{Kind: k, Bits: uint64(v.Int64())}, true
	}
	return Int{Kind: k, Bits: v.Uint64()}, true
}

func normalize(k Kind, bits uint64) uint64 {
	switch k {
	case Int8:
		return uint64(int64(int8(bits)))
	case Int16:
		return uint64(int64(int16(bits)))
	case Int32:
		return uint64(int64(int32(bits)))
	case Uint8:
		return uint64(uint8(bits))
	case Uint16:
		return uint64(uint16(bits))
	case Uint32:
		return uint64(uint32(bits))
	}
	return bits
}

// Int64 is the signed interpretation of v.
func (v Int) Int64() int64 {
	return int64(v.Bits)
}

// Uint64 is the unsigned interpretation of v.
func (v Int) Uint64() uint64 {
	return v.Bits
}

// Big returns the mathematical value of v.
func (v Int) Big() *big.Int {
	if v.Kind.Signed() {
		return big.NewInt(int64(v.Bits))
	}
	return new(big.Int).SetUint64(v.Bits)
}

// Cmp compares two values of the same kind.
func (v Int) Cmp(w Int) int {
	if v.Kind.Signed() {
		a, b := int64(v.Bits), int64(w.Bits)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	switch {
	case v.Bits < w.Bits:
		return -1
	case v.Bits > w.Bits:
		return 1
	}
	return 0
}

// Add returns v + n wrapped to the width of v's kind.
func (v Int) Add(n uint64) Int {
	return NewInt(v.Kind, v.Bits+n)
}

func (v Int) String() string {
	if v.Kind.Signed() {
		return strconv.FormatInt(int64(v.Bits), 10)
	}
	return strconv.FormatUint(v.Bits, 10)
}
