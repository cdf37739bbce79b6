package model

import (
	"math/big"
	"strconv"
	"strings"
)

// Bound is an unresolved bound expression: an integer literal or the name of a
// build-time constant (or any constant expression the resolving scope accepts).
type Bound struct {
	Expr string
}

// Lit is a literal signed bound.
func Lit(v int64) Bound {
	return Bound{Expr: strconv.FormatInt(v, 10)}
}

// LitU is a literal unsigned bound.
func LitU(v uint64) Bound {
	return Bound{Expr: strconv.FormatUint(v, 10)}
}

// Named refers to a constant resolved at build time.
func Named(expr string) Bound {
	return Bound{Expr: expr}
}

// Literal parses the bound as an integer literal. Go literal syntax is accepted:
// an optional sign, 0x/0o/0b prefixes and underscores.
func (b Bound) Literal() (*big.Int, bool) {
	s := strings.TrimSpace(b.Expr)
	if s == "" {
		return nil, false
	}
	if s[0] != '-' && s[0] != '+' && (s[0] < '0' || s[0] > '9') {
		return nil, false
	}
	v, ok := new(big.Int).SetString(s, 0)
	return v, ok
}

func (b Bound) String() string {
	return b.Expr
}

func (b Bound) MarshalText() ([]byte, error) {
	return []byte(b.Expr), nil
}

func (b *Bound) UnmarshalText(text []byte) error {
	b.Expr = string(text)
	return nil
}
