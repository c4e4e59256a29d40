package math

import (
	"math/big"

	pmm "github.com/proactivemm/pmm-go/proactive_market_maker/shared"
)

// SolveQuadraticForTrade returns the balance v2 that the curve with target
// v0 reaches from balance v1 after absorbing the signed fair value delta.
// delta > 0 moves the balance down (the pool pays this side out),
// delta < 0 moves it up (the taker pays this side in).
//
// v2 is the positive root of
//
//	(One-k)*v1*v2^2 - N*v2 - k*v0^2*v1 = 0
//	N = (One-k)*v1^2 - k*v0^2 - delta*v1*One
//
// which is the trade relation (v1-v2)*((One-k)*v1*v2 + k*v0^2) = delta*v1*v2*One
// cleared of fractions. At k == One the quadratic coefficient vanishes and
// the equation collapses to constant product, solved directly.
func SolveQuadraticForTrade(v0, v1, delta, k *big.Int, rounding pmm.Rounding) (*big.Int, error) {
	if v1.Sign() <= 0 {
		return nil, pmm.ErrDivisionByZero
	}
	v0v0 := new(big.Int).Mul(v0, v0)
	oneMinusK := new(big.Int).Sub(pmm.One, k)

	if oneMinusK.Sign() == 0 {
		// constant product: v2 = v0^2*v1 / (v0^2 + delta*v1)
		denominator := new(big.Int).Add(v0v0, new(big.Int).Mul(delta, v1))
		if denominator.Sign() <= 0 {
			return nil, pmm.ErrInsufficientLiquidity
		}
		return MulDiv(v0v0, v1, denominator, rounding)
	}

	a := new(big.Int).Mul(oneMinusK, v1)
	n := new(big.Int).Mul(oneMinusK, new(big.Int).Mul(v1, v1))
	n.Sub(n, new(big.Int).Mul(k, v0v0))
	n.Sub(n, new(big.Int).Mul(delta, new(big.Int).Mul(v1, pmm.One)))
	c := new(big.Int).Mul(k, new(big.Int).Mul(v0v0, v1))

	discriminant := new(big.Int).Mul(n, n)
	discriminant.Add(discriminant, new(big.Int).Mul(big.NewInt(4), new(big.Int).Mul(a, c)))
	if discriminant.Sign() < 0 {
		return nil, pmm.ErrNegativeDiscriminant
	}

	numerator := new(big.Int).Add(n, Sqrt(discriminant))
	if numerator.Sign() <= 0 {
		return nil, pmm.ErrInsufficientLiquidity
	}
	return MulDiv(numerator, big.NewInt(1), new(big.Int).Lsh(a, 1), rounding)
}

// SolveQuadraticForTarget returns the target v0 >= v1 whose curve absorbs
// fairAmount of value between v0 and the current balance v1:
//
//	v0 = v1 * (One + (sqrt(One^2 + 4*k*fairAmount*One/v1) - One) / (2k)) / One
//
// At k == 0 the premium limit is fairAmount/v1, so v0 = v1 + fairAmount.
// Intermediate divisions round up so the reconciled target never
// understates the pool's position.
func SolveQuadraticForTarget(v1, fairAmount, k *big.Int) (*big.Int, error) {
	if v1.Sign() <= 0 {
		return nil, pmm.ErrDivisionByZero
	}
	if fairAmount.Sign() == 0 {
		return new(big.Int).Set(v1), nil
	}
	if k.Sign() == 0 {
		return new(big.Int).Add(v1, fairAmount), nil
	}

	inner := new(big.Int).Mul(k, fairAmount)
	inner.Mul(inner, big.NewInt(4))
	inner, err := MulDiv(inner, pmm.One, v1, pmm.RoundingUp)
	if err != nil {
		return nil, err
	}
	inner.Add(inner, new(big.Int).Mul(pmm.One, pmm.One))
	root := Sqrt(inner)

	premium, err := MulDiv(new(big.Int).Sub(root, pmm.One), pmm.One, new(big.Int).Lsh(k, 1), pmm.RoundingUp)
	if err != nil {
		return nil, err
	}
	return Mul(v1, new(big.Int).Add(pmm.One, premium), pmm.RoundingDown)
}
