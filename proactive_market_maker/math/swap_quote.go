package math

import (
	"math/big"

	pmm "github.com/proactivemm/pmm-go/proactive_market_maker/shared"
)

// RStateOf classifies the pool against its equilibrium targets. A pool
// below both targets cannot occur under the conservation invariant and is
// reported as a violation, never guessed around.
func RStateOf(state *pmm.PoolState, params *pmm.CurveParams) (pmm.RState, error) {
	baseBelow := state.BaseBalance.Cmp(params.BaseTarget) < 0
	quoteBelow := state.QuoteBalance.Cmp(params.QuoteTarget) < 0
	switch {
	case baseBelow && quoteBelow:
		return 0, pmm.ErrInvariantViolation
	case baseBelow:
		return pmm.RStateAboveOne, nil
	case quoteBelow:
		return pmm.RStateBelowOne, nil
	}
	return pmm.RStateOne, nil
}

func validatePool(state *pmm.PoolState, params *pmm.CurveParams) error {
	if state == nil || state.BaseBalance == nil || state.QuoteBalance == nil ||
		state.BaseBalance.Sign() <= 0 || state.QuoteBalance.Sign() <= 0 {
		return pmm.ErrBothBalancesRequired
	}
	if params == nil || params.Depth == nil || params.Depth.Sign() < 0 || params.Depth.Cmp(pmm.MaxDepth) > 0 {
		return pmm.ErrInvalidDepthParameter
	}
	if params.OraclePrice == nil || params.OraclePrice.Sign() <= 0 {
		return pmm.ErrDivisionByZero
	}
	if params.BaseTarget == nil || params.QuoteTarget == nil ||
		params.BaseTarget.Sign() <= 0 || params.QuoteTarget.Sign() <= 0 {
		return pmm.ErrInvariantViolation
	}
	return nil
}

func validateQuoteInputs(state *pmm.PoolState, params *pmm.CurveParams, amount *big.Int) error {
	if err := validatePool(state, params); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return pmm.ErrAmountNotPositive
	}
	return nil
}

// ComputeSwap prices one swap against the current reserves, equilibrium
// targets, oracle price and depth. For ExactIn requests Amount is what the
// taker pays in and the result is what the pool pays out; for ExactOut the
// roles are swapped. The engine is pure: identical inputs always produce
// identical results, and no input is ever mutated.
func ComputeSwap(state *pmm.PoolState, params *pmm.CurveParams, req *pmm.SwapRequest) (*big.Int, error) {
	if req == nil {
		return nil, pmm.ErrAmountNotPositive
	}
	if err := validateQuoteInputs(state, params, req.Amount); err != nil {
		return nil, err
	}
	r, err := RStateOf(state, params)
	if err != nil {
		return nil, err
	}

	var result *big.Int
	switch {
	case req.SellingBase && req.Direction == pmm.ExactIn:
		result, err = sellBaseExactIn(r, state, params, req.Amount)
	case req.SellingBase && req.Direction == pmm.ExactOut:
		result, err = sellBaseExactOut(r, state, params, req.Amount)
	case !req.SellingBase && req.Direction == pmm.ExactIn:
		result, err = buyBaseExactIn(r, state, params, req.Amount)
	default:
		result, err = buyBaseExactOut(r, state, params, req.Amount)
	}
	if err != nil {
		return nil, err
	}

	// Exact-in outputs come out of a finite reserve. The single-segment
	// calculators price on one curve only, so a large enough input can
	// price out more than the pool holds.
	if req.Direction == pmm.ExactIn {
		reserve := state.QuoteBalance
		if !req.SellingBase {
			reserve = state.BaseBalance
		}
		if result.Cmp(reserve) >= 0 {
			return nil, pmm.ErrInsufficientLiquidity
		}
	}
	return result, nil
}

// sellBaseOnQuoteCurve prices a base sale by solving the quote-side curve:
// the pool's quote balance drops from qBalance to the root, and the
// difference is the taker's proceeds.
func sellBaseOnQuoteCurve(qTarget, qBalance *big.Int, params *pmm.CurveParams, baseAmount *big.Int) (*big.Int, error) {
	fair, err := Mul(params.OraclePrice, baseAmount, pmm.RoundingDown)
	if err != nil {
		return nil, err
	}
	q2, err := SolveQuadraticForTrade(qTarget, qBalance, fair, params.Depth, pmm.RoundingUp)
	if err != nil {
		return nil, err
	}
	if q2.Cmp(qBalance) > 0 {
		return nil, pmm.ErrInsufficientLiquidity
	}
	return new(big.Int).Sub(qBalance, q2), nil
}

func sellBaseExactIn(r pmm.RState, state *pmm.PoolState, params *pmm.CurveParams, amountIn *big.Int) (*big.Int, error) {
	switch r {
	case pmm.RStateAboveOne:
		// base is short: integrate the base curve as the balance recovers
		b1 := new(big.Int).Add(state.BaseBalance, amountIn)
		return IntegrateBase(params.BaseTarget, b1, state.BaseBalance, params.OraclePrice, params.Depth, pmm.RoundingDown)
	case pmm.RStateBelowOne:
		return sellBaseOnQuoteCurve(params.QuoteTarget, state.QuoteBalance, params, amountIn)
	}
	return sellBaseOnQuoteCurve(params.QuoteTarget, params.QuoteTarget, params, amountIn)
}

func sellBaseExactOut(r pmm.RState, state *pmm.PoolState, params *pmm.CurveParams, amountOut *big.Int) (*big.Int, error) {
	switch r {
	case pmm.RStateAboveOne:
		if amountOut.Cmp(state.QuoteBalance) >= 0 {
			return nil, pmm.ErrInsufficientLiquidity
		}
		fair, err := MulDiv(amountOut, pmm.One, params.OraclePrice, pmm.RoundingUp)
		if err != nil {
			return nil, err
		}
		b2, err := SolveQuadraticForTrade(params.BaseTarget, state.BaseBalance, fair.Neg(fair), params.Depth, pmm.RoundingUp)
		if err != nil {
			return nil, err
		}
		return new(big.Int).Sub(b2, state.BaseBalance), nil
	case pmm.RStateBelowOne:
		if amountOut.Cmp(state.QuoteBalance) >= 0 {
			return nil, pmm.ErrInsufficientLiquidity
		}
		q2 := new(big.Int).Sub(state.QuoteBalance, amountOut)
		return IntegrateQuote(params.QuoteTarget, state.QuoteBalance, q2, params.OraclePrice, params.Depth, pmm.RoundingUp)
	}
	if amountOut.Cmp(params.QuoteTarget) >= 0 {
		return nil, pmm.ErrInsufficientLiquidity
	}
	q2 := new(big.Int).Sub(params.QuoteTarget, amountOut)
	return IntegrateQuote(params.QuoteTarget, params.QuoteTarget, q2, params.OraclePrice, params.Depth, pmm.RoundingUp)
}

func buyBaseExactIn(r pmm.RState, state *pmm.PoolState, params *pmm.CurveParams, amountIn *big.Int) (*big.Int, error) {
	if r == pmm.RStateBelowOne {
		q1 := new(big.Int).Add(state.QuoteBalance, amountIn)
		return IntegrateQuote(params.QuoteTarget, q1, state.QuoteBalance, params.OraclePrice, params.Depth, pmm.RoundingDown)
	}
	fair, err := MulDiv(amountIn, pmm.One, params.OraclePrice, pmm.RoundingDown)
	if err != nil {
		return nil, err
	}
	bBalance := params.BaseTarget
	if r == pmm.RStateAboveOne {
		bBalance = state.BaseBalance
	}
	b2, err := SolveQuadraticForTrade(params.BaseTarget, bBalance, fair, params.Depth, pmm.RoundingUp)
	if err != nil {
		return nil, err
	}
	if b2.Cmp(bBalance) > 0 {
		return nil, pmm.ErrInsufficientLiquidity
	}
	return new(big.Int).Sub(bBalance, b2), nil
}

func buyBaseExactOut(r pmm.RState, state *pmm.PoolState, params *pmm.CurveParams, amountOut *big.Int) (*big.Int, error) {
	switch r {
	case pmm.RStateAboveOne:
		if amountOut.Cmp(state.BaseBalance) >= 0 {
			return nil, pmm.ErrInsufficientLiquidity
		}
		b2 := new(big.Int).Sub(state.BaseBalance, amountOut)
		return IntegrateBase(params.BaseTarget, state.BaseBalance, b2, params.OraclePrice, params.Depth, pmm.RoundingUp)
	case pmm.RStateBelowOne:
		if amountOut.Cmp(state.BaseBalance) >= 0 {
			return nil, pmm.ErrInsufficientLiquidity
		}
		fair, err := Mul(params.OraclePrice, amountOut, pmm.RoundingUp)
		if err != nil {
			return nil, err
		}
		q2, err := SolveQuadraticForTrade(params.QuoteTarget, state.QuoteBalance, fair.Neg(fair), params.Depth, pmm.RoundingUp)
		if err != nil {
			return nil, err
		}
		return new(big.Int).Sub(q2, state.QuoteBalance), nil
	}
	if amountOut.Cmp(params.BaseTarget) >= 0 {
		return nil, pmm.ErrInsufficientLiquidity
	}
	b2 := new(big.Int).Sub(params.BaseTarget, amountOut)
	return IntegrateBase(params.BaseTarget, params.BaseTarget, b2, params.OraclePrice, params.Depth, pmm.RoundingUp)
}

// QuerySellBase prices a base sale that may cross the equilibrium point.
// The leg that brings the short base balance back to target is settled at
// the recorded quote surplus; the remainder is priced from equilibrium on
// the quote curve.
func QuerySellBase(state *pmm.PoolState, params *pmm.CurveParams, amount *big.Int) (*big.Int, error) {
	if err := validateQuoteInputs(state, params, amount); err != nil {
		return nil, err
	}
	r, err := RStateOf(state, params)
	if err != nil {
		return nil, err
	}

	var receive *big.Int
	if r == pmm.RStateAboveOne {
		backToOnePayBase := new(big.Int).Sub(params.BaseTarget, state.BaseBalance)
		backToOneReceiveQuote := new(big.Int).Sub(state.QuoteBalance, params.QuoteTarget)
		switch amount.Cmp(backToOnePayBase) {
		case -1:
			receive, err = sellBaseExactIn(r, state, params, amount)
		case 0:
			receive = backToOneReceiveQuote
		default:
			rest := new(big.Int).Sub(amount, backToOnePayBase)
			second, serr := sellBaseOnQuoteCurve(params.QuoteTarget, params.QuoteTarget, params, rest)
			if serr != nil {
				return nil, serr
			}
			receive = new(big.Int).Add(backToOneReceiveQuote, second)
		}
	} else {
		receive, err = sellBaseExactIn(r, state, params, amount)
	}
	if err != nil {
		return nil, err
	}
	if receive.Cmp(state.QuoteBalance) >= 0 {
		return nil, pmm.ErrInsufficientLiquidity
	}
	return receive, nil
}

// QueryBuyBase prices a purchase of an exact base amount that may cross the
// equilibrium point, mirroring QuerySellBase.
func QueryBuyBase(state *pmm.PoolState, params *pmm.CurveParams, amount *big.Int) (*big.Int, error) {
	if err := validateQuoteInputs(state, params, amount); err != nil {
		return nil, err
	}
	r, err := RStateOf(state, params)
	if err != nil {
		return nil, err
	}

	if r != pmm.RStateBelowOne {
		return buyBaseExactOut(r, state, params, amount)
	}
	backToOneReceiveBase := new(big.Int).Sub(state.BaseBalance, params.BaseTarget)
	backToOnePayQuote := new(big.Int).Sub(params.QuoteTarget, state.QuoteBalance)
	switch amount.Cmp(backToOneReceiveBase) {
	case -1:
		return buyBaseExactOut(r, state, params, amount)
	case 0:
		return backToOnePayQuote, nil
	}
	rest := new(big.Int).Sub(amount, backToOneReceiveBase)
	if rest.Cmp(params.BaseTarget) >= 0 {
		return nil, pmm.ErrInsufficientLiquidity
	}
	b2 := new(big.Int).Sub(params.BaseTarget, rest)
	second, err := IntegrateBase(params.BaseTarget, params.BaseTarget, b2, params.OraclePrice, params.Depth, pmm.RoundingUp)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Add(backToOnePayQuote, second), nil
}

// MidPrice is the marginal price of base in quote units at the current
// reserves.
func MidPrice(state *pmm.PoolState, params *pmm.CurveParams) (*big.Int, error) {
	if err := validatePool(state, params); err != nil {
		return nil, err
	}
	r, err := RStateOf(state, params)
	if err != nil {
		return nil, err
	}

	switch r {
	case pmm.RStateAboveOne:
		factor, err := curveFactor(params.BaseTarget, state.BaseBalance, params.Depth)
		if err != nil {
			return nil, err
		}
		return Mul(params.OraclePrice, factor, pmm.RoundingDown)
	case pmm.RStateBelowOne:
		factor, err := curveFactor(params.QuoteTarget, state.QuoteBalance, params.Depth)
		if err != nil {
			return nil, err
		}
		return MulDiv(params.OraclePrice, pmm.One, factor, pmm.RoundingDown)
	}
	return new(big.Int).Set(params.OraclePrice), nil
}

// curveFactor is 1 - k + k*(target/balance)^2, 10^18 scaled.
func curveFactor(target, balance, k *big.Int) (*big.Int, error) {
	ratio, err := MulDiv(new(big.Int).Mul(target, target), pmm.One, new(big.Int).Mul(balance, balance), pmm.RoundingDown)
	if err != nil {
		return nil, err
	}
	scaled, err := Mul(k, ratio, pmm.RoundingDown)
	if err != nil {
		return nil, err
	}
	factor := new(big.Int).Sub(pmm.One, k)
	return factor.Add(factor, scaled), nil
}

// ExpectedTargets reconciles the equilibrium targets with the current
// reserves: the side that drifted above its target keeps its balance-implied
// target, derived through the target-form quadratic, while the other side's
// configured target stands.
func ExpectedTargets(state *pmm.PoolState, params *pmm.CurveParams) (*big.Int, *big.Int, error) {
	if err := validatePool(state, params); err != nil {
		return nil, nil, err
	}
	r, err := RStateOf(state, params)
	if err != nil {
		return nil, nil, err
	}

	switch r {
	case pmm.RStateAboveOne:
		spareQuote := new(big.Int).Sub(state.QuoteBalance, params.QuoteTarget)
		fair, err := MulDiv(spareQuote, pmm.One, params.OraclePrice, pmm.RoundingDown)
		if err != nil {
			return nil, nil, err
		}
		baseTarget, err := SolveQuadraticForTarget(state.BaseBalance, fair, params.Depth)
		if err != nil {
			return nil, nil, err
		}
		return baseTarget, new(big.Int).Set(params.QuoteTarget), nil
	case pmm.RStateBelowOne:
		spareBase := new(big.Int).Sub(state.BaseBalance, params.BaseTarget)
		fair, err := Mul(params.OraclePrice, spareBase, pmm.RoundingDown)
		if err != nil {
			return nil, nil, err
		}
		quoteTarget, err := SolveQuadraticForTarget(state.QuoteBalance, fair, params.Depth)
		if err != nil {
			return nil, nil, err
		}
		return new(big.Int).Set(params.BaseTarget), quoteTarget, nil
	}
	return new(big.Int).Set(params.BaseTarget), new(big.Int).Set(params.QuoteTarget), nil
}
