package chain

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/PyStatIQ-Lab/OptionChain-callput-Predictor/internal/model"
)

// coerceFloat converts an untyped JSON value to a finite float64. It
// accepts JSON numbers, numeric strings and json.Number; nil, booleans,
// objects, NaN and infinities all fail coercion.
func coerceFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// coerceOrZero is the lenient variant used for optional fields: anything
// that fails coercion becomes zero. Downstream makes no distinction
// between missing and zero.
func coerceOrZero(v any) float64 {
	f, ok := coerceFloat(v)
	if !ok {
		return 0
	}
	return f
}

// Normalize converts one raw option entry into a validated record. The
// strike price must coerce to a finite float; otherwise the entry is
// dropped (ok is false) and the caller warns and continues. All other
// fields default to zero. Values are passed through without bound checks,
// so negative prices or IV survive unchanged.
func Normalize(raw model.RawOptionEntry) (model.NormalizedOptionRecord, bool) {
	strike, ok := coerceFloat(raw.StrikePrice)
	if !ok {
		return model.NormalizedOptionRecord{}, false
	}
	return model.NormalizedOptionRecord{
		StrikePrice:       strike,
		OpenInterest:      coerceOrZero(raw.OpenInterest),
		ImpliedVolatility: coerceOrZero(raw.ImpliedVolatility),
		LastPrice:         coerceOrZero(raw.LastPrice),
		BidPrice:          coerceOrZero(raw.BidPrice),
		AskPrice:          coerceOrZero(raw.AskPrice),
	}, true
}
