package model

// CompressedSeries is the delta-compressed form of a price sequence: the
// first price plus consecutive differences. Count is the number of original
// prices; Count 0 means the empty series and leaves BasePrice meaningless.
// Timestamps are not part of the compressed form and travel with the caller.
type CompressedSeries struct {
	BasePrice float64   `json:"base_price"`
	Deltas    []float64 `json:"deltas"`
	Count     int       `json:"count"`
}
