package model

// Direction is the side a recommendation favors.
type Direction string

const (
	DirectionCall    Direction = "CALL"
	DirectionPut     Direction = "PUT"
	DirectionNeutral Direction = "NEUTRAL"
)

// Recommendation is the outcome of the three-factor call/put comparison
// for one strike. Rationale lists, in factor order, which side won each
// comparison and why.
type Recommendation struct {
	Direction Direction `json:"direction"`
	CallScore int       `json:"call_score"`
	PutScore  int       `json:"put_score"`
	Rationale []string  `json:"rationale"`
}

// SideQuote re-exposes one side of a strike for presentation.
type SideQuote struct {
	Price             float64 `json:"price"`
	OpenInterest      float64 `json:"open_interest"`
	ImpliedVolatility float64 `json:"implied_volatility"`
	Spread            float64 `json:"spread"`
}

// StrikeAnalysis is the on-demand view for one queried strike. Computed
// per query from the immutable table; never persisted.
type StrikeAnalysis struct {
	Strike         float64        `json:"strike"`
	Moneyness      Moneyness      `json:"moneyness"`
	Call           SideQuote      `json:"call"`
	Put            SideQuote      `json:"put"`
	Recommendation Recommendation `json:"recommendation"`
}
