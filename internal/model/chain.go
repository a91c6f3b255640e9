package model

import "math"

// Moneyness classifies a strike relative to the ATM strike. The label is
// applied uniformly to the whole row, not per side: strikes below ATM are
// ITM, above are OTM. This mirrors the upstream analyzer's rule rather
// than standard per-side option convention.
type Moneyness string

const (
	MoneynessITM Moneyness = "ITM"
	MoneynessOTM Moneyness = "OTM"
	MoneynessATM Moneyness = "ATM"
)

// NormalizedOptionRecord is one validated option quote. All fields are
// coerced floats; optional fields default to zero when the feed omits or
// mangles them.
type NormalizedOptionRecord struct {
	StrikePrice       float64 `json:"strike_price"`
	OpenInterest      float64 `json:"open_interest"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	LastPrice         float64 `json:"last_price"`
	BidPrice          float64 `json:"bid_price"`
	AskPrice          float64 `json:"ask_price"`
}

// Spread returns the bid-ask spread, a liquidity proxy.
func (r NormalizedOptionRecord) Spread() float64 {
	return r.AskPrice - r.BidPrice
}

// ChainRow is one strike of the merged chain: the call side and the put
// side joined on strike price, with a missing side zero-filled.
type ChainRow struct {
	StrikePrice float64                `json:"strike_price"`
	Call        NormalizedOptionRecord `json:"call"`
	Put         NormalizedOptionRecord `json:"put"`
	Moneyness   Moneyness              `json:"moneyness"`
}

// OptionChainTable is the assembled chain for one fetch: one row per
// distinct strike, sorted ascending, plus the detected ATM strike.
// The table is immutable once built; a re-fetch produces a new table
// rather than patching this one.
type OptionChainTable struct {
	ATMStrike  float64    `json:"atm_strike"`
	ExpiryDate string     `json:"expiry_date"`
	Rows       []ChainRow `json:"rows"`
}

// Row returns the row for an exact strike.
func (t *OptionChainTable) Row(strike float64) (ChainRow, bool) {
	for _, row := range t.Rows {
		if row.StrikePrice == strike {
			return row, true
		}
	}
	return ChainRow{}, false
}

// Strikes lists every strike in the table, ascending.
func (t *OptionChainTable) Strikes() []float64 {
	strikes := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		strikes[i] = row.StrikePrice
	}
	return strikes
}

// NearestStrike returns the strike numerically closest to the given one.
// The second return value is false for an empty table.
func (t *OptionChainTable) NearestStrike(strike float64) (float64, bool) {
	if len(t.Rows) == 0 {
		return 0, false
	}
	nearest := t.Rows[0].StrikePrice
	best := math.Abs(nearest - strike)
	for _, row := range t.Rows[1:] {
		if d := math.Abs(row.StrikePrice - strike); d < best {
			best = d
			nearest = row.StrikePrice
		}
	}
	return nearest, true
}
