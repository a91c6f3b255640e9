package render

import (
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/model"
)

// WriteCharts renders the three chain panels (last price, open interest,
// implied volatility vs strike) to a single HTML page. Each panel draws
// call and put series plus a vertical mark line at the ATM strike.
func WriteCharts(t *model.OptionChainTable, path string) error {
	page := components.NewPage()
	page.PageTitle = "Option Chain " + t.ExpiryDate

	page.AddCharts(
		chainPanel(t, "Option Prices (Expiry: "+t.ExpiryDate+")", "Last Price",
			func(r model.ChainRow) (float64, float64) { return r.Call.LastPrice, r.Put.LastPrice }),
		chainPanel(t, "Open Interest", "Open Interest",
			func(r model.ChainRow) (float64, float64) { return r.Call.OpenInterest, r.Put.OpenInterest }),
		chainPanel(t, "Implied Volatility", "IV (%)",
			func(r model.ChainRow) (float64, float64) { return r.Call.ImpliedVolatility, r.Put.ImpliedVolatility }),
	)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}

// chainPanel builds one call/put line chart over the strike axis.
func chainPanel(t *model.OptionChainTable, title, yName string, pick func(model.ChainRow) (float64, float64)) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Strike Price"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)

	xAxis := make([]string, len(t.Rows))
	callData := make([]opts.LineData, len(t.Rows))
	putData := make([]opts.LineData, len(t.Rows))
	for i, row := range t.Rows {
		xAxis[i] = strikeLabel(row.StrikePrice)
		callVal, putVal := pick(row)
		callData[i] = opts.LineData{Value: callVal}
		putData[i] = opts.LineData{Value: putVal}
	}

	line.SetXAxis(xAxis).
		AddSeries("Call", callData).
		AddSeries("Put", putData).
		SetSeriesOptions(
			charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
				Name:  "ATM",
				XAxis: strikeLabel(t.ATMStrike),
			}),
		)
	return line
}

func strikeLabel(strike float64) string {
	return strconv.FormatFloat(strike, 'f', -1, 64)
}
