package analyze

import (
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/chain"
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/model"
)

// AnalyzeStrike builds the on-demand view for one queried strike: both
// sides' price/OI/IV/spread, the row's moneyness, and the three-factor
// recommendation. The table is threaded in explicitly; there is no
// analyzer state to go stale between fetches. A strike absent from the
// table returns a StrikeNotFoundError with the nearest available strike.
func AnalyzeStrike(t *model.OptionChainTable, strike float64) (*model.StrikeAnalysis, error) {
	row, ok := t.Row(strike)
	if !ok {
		nearest, hasNearest := t.NearestStrike(strike)
		return nil, &chain.StrikeNotFoundError{
			Strike:     strike,
			Nearest:    nearest,
			HasNearest: hasNearest,
		}
	}

	return &model.StrikeAnalysis{
		Strike:    row.StrikePrice,
		Moneyness: row.Moneyness,
		Call: model.SideQuote{
			Price:             row.Call.LastPrice,
			OpenInterest:      row.Call.OpenInterest,
			ImpliedVolatility: row.Call.ImpliedVolatility,
			Spread:            row.Call.Spread(),
		},
		Put: model.SideQuote{
			Price:             row.Put.LastPrice,
			OpenInterest:      row.Put.OpenInterest,
			ImpliedVolatility: row.Put.ImpliedVolatility,
			Spread:            row.Put.Spread(),
		},
		Recommendation: chain.Score(row),
	}, nil
}

// Leaderboard groups the closest-to-ATM rows per moneyness bucket and
// browsing side.
type Leaderboard struct {
	ITMCalls []model.ChainRow `json:"itm_calls"`
	OTMCalls []model.ChainRow `json:"otm_calls"`
	ITMPuts  []model.ChainRow `json:"itm_puts"`
	OTMPuts  []model.ChainRow `json:"otm_puts"`
}

// BuildLeaderboard collects the top n rows of each bucket, each ordered
// closest-to-ATM first for its side.
func BuildLeaderboard(t *model.OptionChainTable, n int) *Leaderboard {
	return &Leaderboard{
		ITMCalls: chain.TopRows(t, model.MoneynessITM, chain.SideCall, n),
		OTMCalls: chain.TopRows(t, model.MoneynessOTM, chain.SideCall, n),
		ITMPuts:  chain.TopRows(t, model.MoneynessITM, chain.SidePut, n),
		OTMPuts:  chain.TopRows(t, model.MoneynessOTM, chain.SidePut, n),
	}
}
