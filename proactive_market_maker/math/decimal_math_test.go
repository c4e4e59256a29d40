package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	pmm "github.com/proactivemm/pmm-go/proactive_market_maker/shared"
)

func TestMulDivRounding(t *testing.T) {
	down, err := MulDiv(big.NewInt(7), big.NewInt(3), big.NewInt(2), pmm.RoundingDown)
	require.NoError(t, err)
	require.Zero(t, down.Cmp(big.NewInt(10)))

	up, err := MulDiv(big.NewInt(7), big.NewInt(3), big.NewInt(2), pmm.RoundingUp)
	require.NoError(t, err)
	require.Zero(t, up.Cmp(big.NewInt(11)))

	exact, err := MulDiv(big.NewInt(6), big.NewInt(3), big.NewInt(2), pmm.RoundingUp)
	require.NoError(t, err)
	require.Zero(t, exact.Cmp(big.NewInt(9)))
}

func TestMulDivByZero(t *testing.T) {
	_, err := MulDiv(big.NewInt(1), big.NewInt(1), big.NewInt(0), pmm.RoundingDown)
	require.ErrorIs(t, err, pmm.ErrDivisionByZero)
}

func TestMulDivFullWidth(t *testing.T) {
	x := new(big.Int).Lsh(big.NewInt(1), 200)
	got, err := MulDiv(x, x, x, pmm.RoundingDown)
	require.NoError(t, err)
	require.Zero(t, got.Cmp(x))
}

func TestMulKeepsScale(t *testing.T) {
	two := new(big.Int).Lsh(pmm.One, 1)
	got, err := Mul(two, pmm.One, pmm.RoundingDown)
	require.NoError(t, err)
	require.Zero(t, got.Cmp(two))

	half := new(big.Int).Rsh(pmm.One, 1)
	got, err = Div(pmm.One, two, pmm.RoundingDown)
	require.NoError(t, err)
	require.Zero(t, got.Cmp(half))
}

func TestSqrtFloor(t *testing.T) {
	require.Zero(t, Sqrt(big.NewInt(0)).Cmp(big.NewInt(0)))
	require.Zero(t, Sqrt(big.NewInt(1)).Cmp(big.NewInt(1)))
	require.Zero(t, Sqrt(big.NewInt(144)).Cmp(big.NewInt(12)))
	require.Zero(t, Sqrt(big.NewInt(145)).Cmp(big.NewInt(12)))
	require.Zero(t, Sqrt(big.NewInt(168)).Cmp(big.NewInt(12)))
	require.Zero(t, Sqrt(big.NewInt(169)).Cmp(big.NewInt(13)))

	// floor semantics on a large non-square value
	v := new(big.Int).Lsh(big.NewInt(1), 127)
	root := Sqrt(v)
	require.True(t, new(big.Int).Mul(root, root).Cmp(v) <= 0)
	next := new(big.Int).Add(root, big.NewInt(1))
	require.True(t, new(big.Int).Mul(next, next).Cmp(v) > 0)
}
