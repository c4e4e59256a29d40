package helpers

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/proactivemm/pmm-go/decimal_math"
	mathutil "github.com/proactivemm/pmm-go/proactive_market_maker/math"
	pmm "github.com/proactivemm/pmm-go/proactive_market_maker/shared"
)

// TargetStrategy produces the equilibrium targets a quote is priced
// against. Static and derived targets are interchangeable behind it.
type TargetStrategy interface {
	Targets(state *pmm.PoolState, oraclePrice, depth *big.Int) (*pmm.CurveParams, error)
}

// StaticTargets passes caller-configured equilibrium targets through
// unchanged. Targets configured once drift from the market over time; that
// trade-off belongs to the deployment, not the engine.
type StaticTargets struct {
	BaseTarget  *big.Int
	QuoteTarget *big.Int
}

func (s StaticTargets) Targets(state *pmm.PoolState, oraclePrice, depth *big.Int) (*pmm.CurveParams, error) {
	if s.BaseTarget == nil || s.QuoteTarget == nil || s.BaseTarget.Sign() <= 0 || s.QuoteTarget.Sign() <= 0 {
		return nil, pmm.ErrInvariantViolation
	}
	return &pmm.CurveParams{
		BaseTarget:  new(big.Int).Set(s.BaseTarget),
		QuoteTarget: new(big.Int).Set(s.QuoteTarget),
		OraclePrice: oraclePrice,
		Depth:       depth,
	}, nil
}

// ConservedTargets derives the equilibrium point fresh on every call,
// assuming the total pool value V = B*i + Q is conserved and split evenly
// at equilibrium: Q0 = V/2, B0 = V/(2i).
type ConservedTargets struct{}

func (ConservedTargets) Targets(state *pmm.PoolState, oraclePrice, depth *big.Int) (*pmm.CurveParams, error) {
	if state == nil || state.BaseBalance == nil || state.QuoteBalance == nil ||
		state.BaseBalance.Sign() <= 0 || state.QuoteBalance.Sign() <= 0 {
		return nil, pmm.ErrBothBalancesRequired
	}
	if oraclePrice == nil || oraclePrice.Sign() <= 0 {
		return nil, pmm.ErrDivisionByZero
	}

	baseValue, err := mathutil.Mul(oraclePrice, state.BaseBalance, pmm.RoundingDown)
	if err != nil {
		return nil, err
	}
	totalValue := new(big.Int).Add(baseValue, state.QuoteBalance)

	quoteTarget := new(big.Int).Rsh(totalValue, 1)
	baseTarget, err := mathutil.MulDiv(totalValue, pmm.One, new(big.Int).Lsh(oraclePrice, 1), pmm.RoundingDown)
	if err != nil {
		return nil, err
	}
	if baseTarget.Sign() <= 0 || quoteTarget.Sign() <= 0 {
		return nil, pmm.ErrInvariantViolation
	}
	return &pmm.CurveParams{
		BaseTarget:  baseTarget,
		QuoteTarget: quoteTarget,
		OraclePrice: oraclePrice,
		Depth:       depth,
	}, nil
}

// ParamsFromDecimals builds CurveParams from human-unit decimal strings,
// e.g. ("1000", "2000", "2", "0.1").
func ParamsFromDecimals(baseTarget, quoteTarget, oraclePrice, depth string) (*pmm.CurveParams, error) {
	bt, err := ToFixedPoint(baseTarget)
	if err != nil {
		return nil, err
	}
	qt, err := ToFixedPoint(quoteTarget)
	if err != nil {
		return nil, err
	}
	price, err := ToFixedPoint(oraclePrice)
	if err != nil {
		return nil, err
	}
	k, err := ToFixedPoint(depth)
	if err != nil {
		return nil, err
	}
	if bt.Sign() <= 0 || qt.Sign() <= 0 {
		return nil, pmm.ErrInvariantViolation
	}
	if price.Sign() <= 0 {
		return nil, errors.New("oracle price must be positive")
	}
	if k.Sign() < 0 || k.Cmp(pmm.MaxDepth) > 0 {
		return nil, pmm.ErrInvalidDepthParameter
	}
	return &pmm.CurveParams{BaseTarget: bt, QuoteTarget: qt, OraclePrice: price, Depth: k}, nil
}

// ToFixedPoint converts a human-unit decimal string to a 10^18-scaled
// integer, truncating below the scale.
func ToFixedPoint(value string) (*big.Int, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, err
	}
	return d.Mul(decimal_math.Pow10(18)).Truncate(0).BigInt(), nil
}
