package chain

import (
	"fmt"

	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/model"
)

// Score runs the three-factor call/put comparison for one joined row.
// Each factor awards exactly one point under strict inequality, so ties
// go to the put side:
//
//  1. implied volatility, lower wins
//  2. open interest, higher wins
//  3. bid-ask spread, tighter wins
//
// Exactly three points are always distributed, so the result is 3-0 or
// 2-1 and the direction can never be NEUTRAL with this factor set.
// Pure computation; never fails for a well-formed row.
func Score(row model.ChainRow) model.Recommendation {
	var rec model.Recommendation

	if row.Call.ImpliedVolatility < row.Put.ImpliedVolatility {
		rec.CallScore++
		rec.Rationale = append(rec.Rationale, fmt.Sprintf(
			"IV: call %.2f%% below put %.2f%%", row.Call.ImpliedVolatility, row.Put.ImpliedVolatility))
	} else {
		rec.PutScore++
		rec.Rationale = append(rec.Rationale, fmt.Sprintf(
			"IV: put %.2f%% at or below call %.2f%%", row.Put.ImpliedVolatility, row.Call.ImpliedVolatility))
	}

	if row.Call.OpenInterest > row.Put.OpenInterest {
		rec.CallScore++
		rec.Rationale = append(rec.Rationale, fmt.Sprintf(
			"OI: call %.0f above put %.0f", row.Call.OpenInterest, row.Put.OpenInterest))
	} else {
		rec.PutScore++
		rec.Rationale = append(rec.Rationale, fmt.Sprintf(
			"OI: put %.0f at or above call %.0f", row.Put.OpenInterest, row.Call.OpenInterest))
	}

	if row.Call.Spread() < row.Put.Spread() {
		rec.CallScore++
		rec.Rationale = append(rec.Rationale, fmt.Sprintf(
			"Spread: call %.2f tighter than put %.2f", row.Call.Spread(), row.Put.Spread()))
	} else {
		rec.PutScore++
		rec.Rationale = append(rec.Rationale, fmt.Sprintf(
			"Spread: put %.2f at or tighter than call %.2f", row.Put.Spread(), row.Call.Spread()))
	}

	switch {
	case rec.CallScore > rec.PutScore:
		rec.Direction = model.DirectionCall
	case rec.PutScore > rec.CallScore:
		rec.Direction = model.DirectionPut
	default:
		rec.Direction = model.DirectionNeutral
	}
	return rec
}
