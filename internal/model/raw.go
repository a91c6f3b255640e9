package model

// RawChainResponse mirrors the strategy-chain endpoint payload. Only the
// fields the pipeline reads are declared; everything else is discarded at
// decode time.
type RawChainResponse struct {
	Data *RawChainData `json:"data"`
}

// RawChainData is the `data` section of the response.
type RawChainData struct {
	StrikePrices []RawStrikeEntry `json:"strikePrices"`
	CallOptions  []RawOptionEntry `json:"callOptions"`
	PutOptions   []RawOptionEntry `json:"putOptions"`
}

// RawStrikeEntry is one entry of the strike ladder.
type RawStrikeEntry struct {
	StrikePrice any  `json:"strikePrice"`
	IsAtm       bool `json:"isAtm"`
}

// RawOptionEntry is one untrusted option quote from the feed. Every field
// may be absent, null, or non-numeric, so they are decoded as `any` and
// coerced individually. Only strikePrice is required downstream.
type RawOptionEntry struct {
	StrikePrice       any `json:"strikePrice"`
	OpenInterest      any `json:"openInterest"`
	ImpliedVolatility any `json:"impliedVolatility"`
	LastPrice         any `json:"lastPrice"`
	BidPrice          any `json:"bidPrice"`
	AskPrice          any `json:"askPrice"`
}
