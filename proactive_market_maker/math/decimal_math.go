package math

import (
	"math/big"

	pmm "github.com/proactivemm/pmm-go/proactive_market_maker/shared"
)

// MulDiv computes x*y/denominator with the requested rounding. The
// intermediate product is a full-width big.Int, so it never overflows
// before the division.
func MulDiv(x, y, denominator *big.Int, rounding pmm.Rounding) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, pmm.ErrDivisionByZero
	}
	prod := new(big.Int).Mul(x, y)
	if rounding == pmm.RoundingUp {
		numerator := new(big.Int).Add(prod, new(big.Int).Sub(denominator, big.NewInt(1)))
		return new(big.Int).Div(numerator, denominator), nil
	}
	return new(big.Int).Div(prod, denominator), nil
}

// Mul multiplies two 10^18-scaled values.
func Mul(a, b *big.Int, rounding pmm.Rounding) (*big.Int, error) {
	return MulDiv(a, b, pmm.One, rounding)
}

// Div divides two 10^18-scaled values, keeping the scale.
func Div(a, b *big.Int, rounding pmm.Rounding) (*big.Int, error) {
	return MulDiv(a, pmm.One, b, rounding)
}

// Sqrt is the integer square root, floor semantics.
func Sqrt(value *big.Int) *big.Int {
	if value.Sign() == 0 {
		return big.NewInt(0)
	}
	if value.Cmp(big.NewInt(1)) == 0 {
		return big.NewInt(1)
	}
	x := new(big.Int).Set(value)
	y := new(big.Int).Add(value, big.NewInt(1))
	y = y.Div(y, big.NewInt(2))

	for y.Cmp(x) < 0 {
		x = new(big.Int).Set(y)
		y = new(big.Int).Add(x, new(big.Int).Div(value, x))
		y = y.Div(y, big.NewInt(2))
	}
	return x
}
