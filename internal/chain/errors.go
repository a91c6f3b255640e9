package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResponseStructure reports a response missing the expected
	// data/strikePrices shape.
	ErrInvalidResponseStructure = errors.New("invalid response structure: missing data.strikePrices")

	// ErrATMStrikeNotFound reports a strike ladder from which no ATM
	// strike could be determined.
	ErrATMStrikeNotFound = errors.New("ATM strike not found")
)

// DataProcessingError wraps an unexpected failure during normalization or
// the join, carrying the original cause.
type DataProcessingError struct {
	Cause error
}

func (e *DataProcessingError) Error() string {
	return fmt.Sprintf("data processing error: %v", e.Cause)
}

func (e *DataProcessingError) Unwrap() error {
	return e.Cause
}

// StrikeNotFoundError reports a query for a strike absent from the table.
// It is recoverable at the query boundary; Nearest carries the closest
// available strike as a hint when the table is non-empty.
type StrikeNotFoundError struct {
	Strike     float64
	Nearest    float64
	HasNearest bool
}

func (e *StrikeNotFoundError) Error() string {
	if e.HasNearest {
		return fmt.Sprintf("strike %v not found (nearest available: %v)", e.Strike, e.Nearest)
	}
	return fmt.Sprintf("strike %v not found", e.Strike)
}
