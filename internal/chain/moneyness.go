package chain

import (
	"sort"

	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/model"
)

// Classify labels a strike relative to the ATM strike: below is ITM,
// above is OTM, equal is ATM. Applied uniformly to both sides of the row.
func Classify(strike, atmStrike float64) model.Moneyness {
	switch {
	case strike == atmStrike:
		return model.MoneynessATM
	case strike < atmStrike:
		return model.MoneynessITM
	default:
		return model.MoneynessOTM
	}
}

// Side selects which option side a leaderboard is browsed as.
type Side string

const (
	SideCall Side = "call"
	SidePut  Side = "put"
)

// TopRows returns up to n rows of the given moneyness bucket, ordered
// closest-to-ATM first for the requested side: ITM calls descend by
// strike, ITM puts ascend, OTM calls ascend, OTM puts descend.
func TopRows(t *model.OptionChainTable, m model.Moneyness, side Side, n int) []model.ChainRow {
	rows := make([]model.ChainRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.Moneyness == m {
			rows = append(rows, row)
		}
	}

	ascending := (m == model.MoneynessITM && side == SidePut) ||
		(m == model.MoneynessOTM && side == SideCall)
	sort.Slice(rows, func(i, j int) bool {
		if ascending {
			return rows[i].StrikePrice < rows[j].StrikePrice
		}
		return rows[i].StrikePrice > rows[j].StrikePrice
	})

	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
