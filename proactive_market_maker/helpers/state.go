package helpers

import (
	"fmt"
	"math/big"

	"github.com/tidwall/gjson"

	pmm "github.com/proactivemm/pmm-go/proactive_market_maker/shared"
)

// ParsePoolState reads a pool snapshot of the form
//
//	{"baseBalance":"1000000000000000000000","quoteBalance":"..."}
//
// with 10^18-scaled integer strings.
func ParsePoolState(data []byte) (*pmm.PoolState, error) {
	base, err := bigField(data, "baseBalance")
	if err != nil {
		return nil, err
	}
	quote, err := bigField(data, "quoteBalance")
	if err != nil {
		return nil, err
	}
	return &pmm.PoolState{BaseBalance: base, QuoteBalance: quote}, nil
}

// ParseCurveParams reads curve parameters of the form
//
//	{"baseTarget":"...","quoteTarget":"...","oraclePrice":"...","depth":"..."}
func ParseCurveParams(data []byte) (*pmm.CurveParams, error) {
	baseTarget, err := bigField(data, "baseTarget")
	if err != nil {
		return nil, err
	}
	quoteTarget, err := bigField(data, "quoteTarget")
	if err != nil {
		return nil, err
	}
	oraclePrice, err := bigField(data, "oraclePrice")
	if err != nil {
		return nil, err
	}
	depth, err := bigField(data, "depth")
	if err != nil {
		return nil, err
	}
	return &pmm.CurveParams{
		BaseTarget:  baseTarget,
		QuoteTarget: quoteTarget,
		OraclePrice: oraclePrice,
		Depth:       depth,
	}, nil
}

func bigField(data []byte, path string) (*big.Int, error) {
	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return nil, fmt.Errorf("pool snapshot: missing field %q", path)
	}
	value, ok := new(big.Int).SetString(result.String(), 10)
	if !ok {
		return nil, fmt.Errorf("pool snapshot: field %q is not an integer: %q", path, result.String())
	}
	return value, nil
}
