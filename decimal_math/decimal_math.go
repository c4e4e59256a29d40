package decimal_math

import (
	"math/big"

	"github.com/shopspring/decimal"
)

func Pow10(n int32) decimal.Decimal {
	return decimal.New(1, n)
}

// Sqrt computes the square root of x at the given big.Float precision in
// bits. Panics on negative input.
func Sqrt(x decimal.Decimal, prec uint) decimal.Decimal {
	if x.Sign() < 0 {
		panic("sqrt on negative decimal")
	}

	out, _ := decimal.NewFromString(
		new(big.Float).SetPrec(prec).Sqrt(
			x.BigFloat().SetPrec(prec),
		).Text('f', -1),
	)
	return out
}
