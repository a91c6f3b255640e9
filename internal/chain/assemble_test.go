package chain

import (
	"errors"
	"reflect"
	"testing"

	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/model"
)

func entry(strike float64, oi, iv, last, bid, ask float64) model.RawOptionEntry {
	return model.RawOptionEntry{
		StrikePrice:       strike,
		OpenInterest:      oi,
		ImpliedVolatility: iv,
		LastPrice:         last,
		BidPrice:          bid,
		AskPrice:          ask,
	}
}

func threeStrikeResponse() *model.RawChainResponse {
	return &model.RawChainResponse{
		Data: &model.RawChainData{
			StrikePrices: []model.RawStrikeEntry{
				{StrikePrice: 100.0, IsAtm: false},
				{StrikePrice: 105.0, IsAtm: true},
				{StrikePrice: 110.0, IsAtm: false},
			},
			CallOptions: []model.RawOptionEntry{
				entry(100, 400, 12, 6.0, 5.5, 6.5),
				entry(105, 500, 10, 3.0, 2.5, 3.5),
				entry(110, 450, 13, 1.0, 0.5, 1.5),
			},
			PutOptions: []model.RawOptionEntry{
				entry(100, 350, 15, 1.2, 0.8, 2.0),
				entry(105, 300, 20, 3.2, 2.2, 4.2),
				entry(110, 380, 16, 6.2, 5.2, 7.2),
			},
		},
	}
}

func TestAssembleThreeStrikeChain(t *testing.T) {
	table, err := NewAssembler().Assemble(threeStrikeResponse(), "10-04-2025")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if table.ATMStrike != 105 {
		t.Errorf("ATMStrike = %v, want 105", table.ATMStrike)
	}
	if table.ExpiryDate != "10-04-2025" {
		t.Errorf("ExpiryDate = %q, want 10-04-2025", table.ExpiryDate)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(table.Rows))
	}

	wantMoneyness := map[float64]model.Moneyness{
		100: model.MoneynessITM,
		105: model.MoneynessATM,
		110: model.MoneynessOTM,
	}
	for _, row := range table.Rows {
		if row.Moneyness != wantMoneyness[row.StrikePrice] {
			t.Errorf("moneyness@%v = %v, want %v", row.StrikePrice, row.Moneyness, wantMoneyness[row.StrikePrice])
		}
	}

	row, ok := table.Row(105)
	if !ok {
		t.Fatal("Row(105) not found")
	}
	if row.Call.OpenInterest != 500 || row.Put.OpenInterest != 300 {
		t.Errorf("OI@105 = call %v put %v, want 500/300", row.Call.OpenInterest, row.Put.OpenInterest)
	}
}

func TestAssembleOuterJoinZeroFillsMissingSide(t *testing.T) {
	resp := &model.RawChainResponse{
		Data: &model.RawChainData{
			StrikePrices: []model.RawStrikeEntry{
				{StrikePrice: 100.0, IsAtm: true},
			},
			CallOptions: []model.RawOptionEntry{
				entry(100, 400, 12, 6.0, 5.5, 6.5),
				entry(110, 450, 13, 1.0, 0.5, 1.5), // no matching put
			},
			PutOptions: []model.RawOptionEntry{
				entry(100, 350, 15, 1.2, 0.8, 2.0),
				entry(90, 380, 16, 6.2, 5.2, 7.2), // no matching call
			},
		},
	}

	table, err := NewAssembler().Assemble(resp, "10-04-2025")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3 distinct strikes", len(table.Rows))
	}

	// Rows come back sorted ascending.
	wantOrder := []float64{90, 100, 110}
	for i, row := range table.Rows {
		if row.StrikePrice != wantOrder[i] {
			t.Errorf("Rows[%d].StrikePrice = %v, want %v", i, row.StrikePrice, wantOrder[i])
		}
	}

	callOnly, _ := table.Row(110)
	if callOnly.Put != (model.NormalizedOptionRecord{StrikePrice: 110}) {
		t.Errorf("put side@110 = %+v, want zero-filled", callOnly.Put)
	}
	putOnly, _ := table.Row(90)
	if putOnly.Call != (model.NormalizedOptionRecord{StrikePrice: 90}) {
		t.Errorf("call side@90 = %+v, want zero-filled", putOnly.Call)
	}
}

func TestAssembleDropsMalformedEntriesWithoutFailing(t *testing.T) {
	resp := threeStrikeResponse()
	resp.Data.CallOptions = append(resp.Data.CallOptions,
		model.RawOptionEntry{StrikePrice: "garbage"},
		model.RawOptionEntry{StrikePrice: nil},
	)

	table, err := NewAssembler().Assemble(resp, "10-04-2025")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(table.Rows) != 3 {
		t.Errorf("len(Rows) = %d, want 3 after dropping malformed entries", len(table.Rows))
	}
}

func TestAssembleDuplicateStrikesFirstWins(t *testing.T) {
	resp := threeStrikeResponse()
	resp.Data.CallOptions = append(resp.Data.CallOptions,
		entry(105, 9999, 99, 99, 99, 99))

	table, err := NewAssembler().Assemble(resp, "10-04-2025")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3 (no duplicated row)", len(table.Rows))
	}
	row, _ := table.Row(105)
	if row.Call.OpenInterest != 500 {
		t.Errorf("call OI@105 = %v, want first occurrence 500", row.Call.OpenInterest)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	a := NewAssembler()
	first, err := a.Assemble(threeStrikeResponse(), "10-04-2025")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	second, err := a.Assemble(threeStrikeResponse(), "10-04-2025")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Assemble() is not deterministic for identical input")
	}
}

func TestAssembleStructuralFailures(t *testing.T) {
	tests := []struct {
		name    string
		resp    *model.RawChainResponse
		wantErr error
	}{
		{
			name:    "Nil response",
			resp:    nil,
			wantErr: ErrInvalidResponseStructure,
		},
		{
			name:    "Missing data section",
			resp:    &model.RawChainResponse{},
			wantErr: ErrInvalidResponseStructure,
		},
		{
			name: "Missing strikePrices",
			resp: &model.RawChainResponse{
				Data: &model.RawChainData{},
			},
			wantErr: ErrInvalidResponseStructure,
		},
		{
			name: "Empty strikePrices",
			resp: &model.RawChainResponse{
				Data: &model.RawChainData{StrikePrices: []model.RawStrikeEntry{}},
			},
			wantErr: ErrATMStrikeNotFound,
		},
		{
			name: "No coercible strike in ladder",
			resp: &model.RawChainResponse{
				Data: &model.RawChainData{
					StrikePrices: []model.RawStrikeEntry{
						{StrikePrice: "junk"},
						{StrikePrice: nil, IsAtm: true},
					},
				},
			},
			wantErr: ErrATMStrikeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewAssembler().Assemble(tt.resp, "10-04-2025")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Assemble() error = %v, want %v", err, tt.wantErr)
			}
			if table != nil {
				t.Error("Assemble() returned a table alongside a structural error")
			}
		})
	}
}

func TestAssembleATMFallbackToFirstStrike(t *testing.T) {
	resp := threeStrikeResponse()
	for i := range resp.Data.StrikePrices {
		resp.Data.StrikePrices[i].IsAtm = false
	}

	table, err := NewAssembler().Assemble(resp, "10-04-2025")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if table.ATMStrike != 100 {
		t.Errorf("ATMStrike = %v, want fallback to first entry 100", table.ATMStrike)
	}
}
