package shared

import "errors"

var (
	ErrInvalidDepthParameter = errors.New("depth parameter exceeds One")
	ErrBothBalancesRequired  = errors.New("both pool balances must be positive")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	ErrNegativeDiscriminant  = errors.New("quadratic has no real solution")
	ErrDivisionByZero        = errors.New("division by zero")
	ErrInvariantViolation    = errors.New("pool state violates target invariant")
	ErrAmountNotPositive     = errors.New("amount must be positive")
)
