package math

import (
	"math/big"

	pmm "github.com/proactivemm/pmm-go/proactive_market_maker/shared"
)

// curveWeight is the common numerator factor of the curve integral between
// balances with product v1v2 on the curve with target v0:
//
//	(One-k)*v1*v2 + k*v0^2
//
// The result carries one factor of the 10^18 scale.
func curveWeight(v0, v1v2, k *big.Int) *big.Int {
	oneMinusK := new(big.Int).Sub(pmm.One, k)
	weight := new(big.Int).Mul(oneMinusK, v1v2)
	penalty := new(big.Int).Mul(k, new(big.Int).Mul(v0, v0))
	return weight.Add(weight, penalty)
}

// IntegrateBase computes the quote amount that corresponds to the base
// balance moving from b1 down to b2 (b1 >= b2) on the curve with target b0:
//
//	i * (b1-b2) * ((One-k)*b1*b2 + k*b0^2) / (b1*b2*One*One)
//
// Numerator and denominator are assembled in full width so the result
// rounds exactly once.
func IntegrateBase(b0, b1, b2, i, k *big.Int, rounding pmm.Rounding) (*big.Int, error) {
	if b1.Sign() <= 0 || b2.Sign() <= 0 {
		return nil, pmm.ErrDivisionByZero
	}
	if b1.Cmp(b2) < 0 {
		return nil, pmm.ErrInvariantViolation
	}
	b1b2 := new(big.Int).Mul(b1, b2)
	delta := new(big.Int).Sub(b1, b2)
	numerator := new(big.Int).Mul(delta, curveWeight(b0, b1b2, k))
	denominator := new(big.Int).Mul(b1b2, new(big.Int).Mul(pmm.One, pmm.One))
	return MulDiv(numerator, i, denominator, rounding)
}

// IntegrateQuote is the quote-side counterpart: the base amount that
// corresponds to the quote balance moving from q1 down to q2 (q1 >= q2) on
// the curve with target q0. The oracle price divides instead of
// multiplying, the 10^18 scale cancels against it:
//
//	(q1-q2) * ((One-k)*q1*q2 + k*q0^2) / (q1*q2*i)
func IntegrateQuote(q0, q1, q2, i, k *big.Int, rounding pmm.Rounding) (*big.Int, error) {
	if q1.Sign() <= 0 || q2.Sign() <= 0 {
		return nil, pmm.ErrDivisionByZero
	}
	if q1.Cmp(q2) < 0 {
		return nil, pmm.ErrInvariantViolation
	}
	q1q2 := new(big.Int).Mul(q1, q2)
	delta := new(big.Int).Sub(q1, q2)
	denominator := new(big.Int).Mul(q1q2, i)
	return MulDiv(delta, curveWeight(q0, q1q2, k), denominator, rounding)
}
