package pmm

import (
	"github.com/proactivemm/pmm-go/proactive_market_maker/helpers"
	"github.com/proactivemm/pmm-go/proactive_market_maker/math"
)

// ComputeSwap prices a single swap against a pool snapshot.
//
// Example:
//
// state, _ := pmm.ParsePoolState(snapshot)
//
// params, _ := pmm.ParseCurveParams(config)
//
// out, _ := pmm.ComputeSwap(state, params, &shared.SwapRequest{Direction: shared.ExactIn, SellingBase: true, Amount: amount})
var ComputeSwap = math.ComputeSwap

// QuerySellBase and QueryBuyBase price base-denominated trades that may
// cross the equilibrium point.
var QuerySellBase = math.QuerySellBase

var QueryBuyBase = math.QueryBuyBase

// MidPrice is the marginal price at the current reserves.
var MidPrice = math.MidPrice

// ExpectedTargets reconciles equilibrium targets with drifted reserves.
var ExpectedTargets = math.ExpectedTargets

var ParsePoolState = helpers.ParsePoolState

var ParseCurveParams = helpers.ParseCurveParams
