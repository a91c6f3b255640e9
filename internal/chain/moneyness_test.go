package chain

import (
	"reflect"
	"testing"

	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		strike float64
		atm    float64
		want   model.Moneyness
	}{
		{name: "Below ATM is ITM", strike: 100, atm: 105, want: model.MoneynessITM},
		{name: "At ATM is ATM", strike: 105, atm: 105, want: model.MoneynessATM},
		{name: "Above ATM is OTM", strike: 110, atm: 105, want: model.MoneynessOTM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.strike, tt.atm); got != tt.want {
				t.Errorf("Classify(%v, %v) = %v, want %v", tt.strike, tt.atm, got, tt.want)
			}
		})
	}
}

func ladderTable() *model.OptionChainTable {
	atm := 105.0
	strikes := []float64{85, 90, 95, 100, 105, 110, 115, 120, 125}
	rows := make([]model.ChainRow, len(strikes))
	for i, s := range strikes {
		rows[i] = model.ChainRow{
			StrikePrice: s,
			Call:        model.NormalizedOptionRecord{StrikePrice: s},
			Put:         model.NormalizedOptionRecord{StrikePrice: s},
			Moneyness:   Classify(s, atm),
		}
	}
	return &model.OptionChainTable{ATMStrike: atm, Rows: rows}
}

func TestTopRowsOrdering(t *testing.T) {
	table := ladderTable()

	tests := []struct {
		name      string
		moneyness model.Moneyness
		side      Side
		n         int
		want      []float64
	}{
		{
			name:      "ITM calls descend toward ATM first",
			moneyness: model.MoneynessITM,
			side:      SideCall,
			n:         3,
			want:      []float64{100, 95, 90},
		},
		{
			name:      "ITM puts ascend",
			moneyness: model.MoneynessITM,
			side:      SidePut,
			n:         3,
			want:      []float64{85, 90, 95},
		},
		{
			name:      "OTM calls ascend toward ATM first",
			moneyness: model.MoneynessOTM,
			side:      SideCall,
			n:         3,
			want:      []float64{110, 115, 120},
		},
		{
			name:      "OTM puts descend",
			moneyness: model.MoneynessOTM,
			side:      SidePut,
			n:         3,
			want:      []float64{125, 120, 115},
		},
		{
			name:      "Zero n returns the whole bucket",
			moneyness: model.MoneynessATM,
			side:      SideCall,
			n:         0,
			want:      []float64{105},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := TopRows(table, tt.moneyness, tt.side, tt.n)
			got := make([]float64, len(rows))
			for i, row := range rows {
				got[i] = row.StrikePrice
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopRows() strikes = %v, want %v", got, tt.want)
			}
		})
	}
}
