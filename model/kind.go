package model

import (
	"fmt"
	"math/big"
	"reflect"

	"golang.org/x/exp/constraints"
)

// Kind is the integer kind of a parameter or of an integer result.
type Kind uint8

const (
	KindInvalid Kind = iota
	Int8
	Int16
	Int32
	Int64
	KindInt
	Uint8
	Uint16
	Uint32
	Uint64
	Uint
	Uintptr
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	Int8:        "int8",
	Int16:       "int16",
	Int32:       "int32",
	Int64:       "int64",
	KindInt:     "int",
	Uint8:       "uint8",
	Uint16:      "uint16",
	Uint32:      "uint32",
	Uint64:      "uint64",
	Uint:        "uint",
	Uintptr:     "uintptr",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Valid reports whether k names a supported integer kind.
func (k Kind) Valid() bool {
	return k > KindInvalid && k <= Uintptr
}

// Signed reports whether values of kind k carry a sign.
func (k Kind) Signed() bool {
	return k >= Int8 && k <= KindInt
}

// Bits is the width of k. Platform kinds are treated as 64 bits wide.
func (k Kind) Bits() uint {
	switch k {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32:
		return 32
	default:
		return 64
	}
}

// Min is the smallest value representable by k.
func (k Kind) Min() *big.Int {
	if !k.Signed() {
		return new(big.Int)
	}
	return new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), k.Bits()-1))
}

// Max is the largest value representable by k.
func (k Kind) Max() *big.Int {
	one := big.NewInt(1)
	if k.Signed() {
		return new(big.Int).Sub(new(big.Int).Lsh(one, k.Bits()-1), one)
	}
	return new(big.Int).Sub(new(big.Int).Lsh(one, k.Bits()), one)
}

// Fits reports whether v is representable by k.
func (k Kind) Fits(v *big.Int) bool {
	return v.Cmp(k.Min()) >= 0 && v.Cmp(k.Max()) <= 0
}

// ParseKind maps a Go integer type name to its Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "byte":
		return Uint8, nil
	case "rune":
		return Int32, nil
	}
	for k, n := range kindNames {
		if k != int(KindInvalid) && n == name {
			return Kind(k), nil
		}
	}
	return KindInvalid, NewError(ErrUnsupportedType).
		Detail("%q is not an integer type", name).
		Build()
}

// MustParseKind is ParseKind for names known at compile time.
func MustParseKind(name string) Kind {
	k, err := ParseKind(name)
	if err != nil {
		panic(err)
	}
	return k
}

// KindOf returns the Kind of the integer type T, looking through named types.
func KindOf[T constraints.Integer]() Kind {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Int:
		return KindInt
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64:
		return Uint64
	case reflect.Uint:
		return Uint
	case reflect.Uintptr:
		return Uintptr
	}
	return KindInvalid
}
