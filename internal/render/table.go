package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/analyze"
	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/model"
)

// PrintStrikeAnalysis writes the per-strike breakdown and recommendation
// as console tables.
func PrintStrikeAnalysis(w io.Writer, a *model.StrikeAnalysis) {
	fmt.Fprintf(w, "\nAnalysis for Strike: %s (%s)\n", strikeLabel(a.Strike), a.Moneyness)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Side", "Price", "Open Interest", "IV (%)", "Bid-Ask Spread"})
	table.Append(sideRow("CALL", a.Call))
	table.Append(sideRow("PUT", a.Put))
	table.Render()

	rec := a.Recommendation
	fmt.Fprintf(w, "\nRECOMMENDATION: %s (Score %d-%d)\n", rec.Direction, rec.CallScore, rec.PutScore)
	for _, reason := range rec.Rationale {
		fmt.Fprintf(w, "  - %s\n", reason)
	}
}

func sideRow(side string, q model.SideQuote) []string {
	return []string{
		side,
		strconv.FormatFloat(q.Price, 'f', 2, 64),
		strconv.FormatFloat(q.OpenInterest, 'f', 0, 64),
		strconv.FormatFloat(q.ImpliedVolatility, 'f', 2, 64),
		strconv.FormatFloat(q.Spread, 'f', 2, 64),
	}
}

// PrintLeaderboard writes the four moneyness buckets, each already
// ordered closest-to-ATM first.
func PrintLeaderboard(w io.Writer, lb *analyze.Leaderboard) {
	printBucket(w, "ITM strikes (call view)", lb.ITMCalls, callColumns)
	printBucket(w, "OTM strikes (call view)", lb.OTMCalls, callColumns)
	printBucket(w, "ITM strikes (put view)", lb.ITMPuts, putColumns)
	printBucket(w, "OTM strikes (put view)", lb.OTMPuts, putColumns)
}

func printBucket(w io.Writer, title string, rows []model.ChainRow, columns func(model.ChainRow) []string) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Strike", "Last Price", "Open Interest", "IV (%)"})
	for _, row := range rows {
		table.Append(columns(row))
	}
	table.Render()
}

func callColumns(row model.ChainRow) []string {
	return recordColumns(row.StrikePrice, row.Call)
}

func putColumns(row model.ChainRow) []string {
	return recordColumns(row.StrikePrice, row.Put)
}

func recordColumns(strike float64, rec model.NormalizedOptionRecord) []string {
	return []string{
		strikeLabel(strike),
		strconv.FormatFloat(rec.LastPrice, 'f', 2, 64),
		strconv.FormatFloat(rec.OpenInterest, 'f', 0, 64),
		strconv.FormatFloat(rec.ImpliedVolatility, 'f', 2, 64),
	}
}
