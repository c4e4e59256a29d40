package shared

import "math/big"

var (
	// One is the fixed-point scale. Balances, targets, prices and the depth
	// parameter are unsigned integers scaled by 10^18.
	One = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

	// MaxDepth is the largest accepted depth parameter. At Depth == MaxDepth
	// the curve degenerates to constant product.
	MaxDepth = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

type Rounding uint8

const (
	RoundingUp   Rounding = 0
	RoundingDown Rounding = 1
)

// RState classifies current reserves against the equilibrium targets.
// The marginal price sits above the oracle price when the base balance is
// short, below it when the quote balance is short.
type RState uint8

const (
	RStateOne      RState = 0 // reserves at or above both targets
	RStateAboveOne RState = 1 // base balance below target
	RStateBelowOne RState = 2 // quote balance below target
)

func (r RState) String() string {
	switch r {
	case RStateOne:
		return "ONE"
	case RStateAboveOne:
		return "ABOVE_ONE"
	case RStateBelowOne:
		return "BELOW_ONE"
	}
	return "UNKNOWN"
}

type SwapDirection uint8

const (
	ExactIn  SwapDirection = 0
	ExactOut SwapDirection = 1
)

// PoolState holds the pool's current reserves. The engine only reads it;
// applying a computed amount to the reserves is the caller's job.
type PoolState struct {
	BaseBalance  *big.Int
	QuoteBalance *big.Int
}

// CurveParams is the full parameter set of the price curve.
//
// BaseTarget and QuoteTarget are the reserve pair at which the pool price
// equals OraclePrice exactly. OraclePrice is quote per base, 10^18 scaled.
// Depth in [0, One] blends the oracle price (0) with constant-product
// behavior (One).
type CurveParams struct {
	BaseTarget  *big.Int
	QuoteTarget *big.Int
	OraclePrice *big.Int
	Depth       *big.Int
}

// SwapRequest describes one quote: which side the taker fixes and whether
// the taker is selling or buying base. Amount is the fixed side.
type SwapRequest struct {
	Direction   SwapDirection
	SellingBase bool
	Amount      *big.Int
}
