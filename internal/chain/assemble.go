package chain

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/model"
)

// Assembler builds an OptionChainTable from a raw strategy-chain
// response. It holds no state across calls; each Assemble is a pure
// function of its input.
type Assembler struct {
	logger zerolog.Logger
}

// NewAssembler creates a chain assembler.
func NewAssembler() *Assembler {
	return &Assembler{
		logger: log.With().Str("component", "chain_assembler").Logger(),
	}
}

// Assemble validates the response shape, detects the ATM strike,
// normalizes both option sides, and full-outer-joins them on strike
// price. Malformed individual entries are dropped with a warning;
// structural problems fail the whole assembly.
func (a *Assembler) Assemble(resp *model.RawChainResponse, expiry string) (*model.OptionChainTable, error) {
	if resp == nil || resp.Data == nil || resp.Data.StrikePrices == nil {
		return nil, ErrInvalidResponseStructure
	}

	atmStrike, err := a.detectATMStrike(resp.Data.StrikePrices)
	if err != nil {
		return nil, err
	}

	calls := a.normalizeSide(resp.Data.CallOptions, "call")
	puts := a.normalizeSide(resp.Data.PutOptions, "put")

	rows, err := joinSides(calls, puts, atmStrike)
	if err != nil {
		return nil, &DataProcessingError{Cause: err}
	}

	a.logger.Debug().
		Float64("atm_strike", atmStrike).
		Int("rows", len(rows)).
		Msg("Assembled option chain")

	return &model.OptionChainTable{
		ATMStrike:  atmStrike,
		ExpiryDate: expiry,
		Rows:       rows,
	}, nil
}

// detectATMStrike picks the first ladder entry flagged isAtm, falling
// back to the first entry whose strike coerces when none is flagged.
func (a *Assembler) detectATMStrike(strikes []model.RawStrikeEntry) (float64, error) {
	for _, s := range strikes {
		if !s.IsAtm {
			continue
		}
		strike, ok := coerceFloat(s.StrikePrice)
		if !ok {
			a.logger.Warn().Interface("strike", s.StrikePrice).Msg("ATM-flagged strike is not numeric, skipping")
			continue
		}
		return strike, nil
	}
	for _, s := range strikes {
		if strike, ok := coerceFloat(s.StrikePrice); ok {
			a.logger.Warn().Float64("strike", strike).Msg("No strike flagged ATM, falling back to first entry")
			return strike, nil
		}
	}
	return 0, ErrATMStrikeNotFound
}

// normalizeSide runs every raw entry through Normalize, dropping
// malformed ones. A drop is never fatal for the batch.
func (a *Assembler) normalizeSide(entries []model.RawOptionEntry, side string) []model.NormalizedOptionRecord {
	records := make([]model.NormalizedOptionRecord, 0, len(entries))
	for i, e := range entries {
		rec, ok := Normalize(e)
		if !ok {
			a.logger.Warn().
				Str("side", side).
				Int("index", i).
				Interface("strike", e.StrikePrice).
				Msg("Dropping option entry with non-numeric strike")
			continue
		}
		records = append(records, rec)
	}
	return records
}

// joinSides performs the full outer join on strike price. Rows present on
// only one side get the other side zero-filled. Repeated strikes on the
// same side are resolved first-wins, so the row count equals the number
// of distinct strikes. Output is sorted ascending by strike.
func joinSides(calls, puts []model.NormalizedOptionRecord, atmStrike float64) ([]model.ChainRow, error) {
	callsBy := make(map[float64]model.NormalizedOptionRecord, len(calls))
	putsBy := make(map[float64]model.NormalizedOptionRecord, len(puts))

	for _, c := range calls {
		if _, seen := callsBy[c.StrikePrice]; !seen {
			callsBy[c.StrikePrice] = c
		}
	}
	for _, p := range puts {
		if _, seen := putsBy[p.StrikePrice]; !seen {
			putsBy[p.StrikePrice] = p
		}
	}

	strikes := make([]float64, 0, len(callsBy)+len(putsBy))
	for k := range callsBy {
		strikes = append(strikes, k)
	}
	for k := range putsBy {
		if _, onCallSide := callsBy[k]; !onCallSide {
			strikes = append(strikes, k)
		}
	}
	sort.Float64s(strikes)

	rows := make([]model.ChainRow, 0, len(strikes))
	for _, strike := range strikes {
		call, hasCall := callsBy[strike]
		put, hasPut := putsBy[strike]
		if !hasCall {
			call = model.NormalizedOptionRecord{StrikePrice: strike}
		}
		if !hasPut {
			put = model.NormalizedOptionRecord{StrikePrice: strike}
		}
		if !hasCall && !hasPut {
			return nil, fmt.Errorf("strike %v on neither side after join", strike)
		}
		rows = append(rows, model.ChainRow{
			StrikePrice: strike,
			Call:        call,
			Put:         put,
			Moneyness:   Classify(strike, atmStrike),
		})
	}
	return rows, nil
}
