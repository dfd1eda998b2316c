package model

import "errors"

// Error kinds shared across packages. Callers classify with errors.Is so a
// report consumer can tell "ran with zero trades" from "failed to run" from
// "bad configuration".
var (
	// ErrInvalidInput marks a malformed series or compressed payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidConfig marks non-positive windows, capital, or other bad settings.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInsufficientData marks a series too short for the requested windows.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrDataUnavailable marks a failed or unusable market-data fetch.
	ErrDataUnavailable = errors.New("data unavailable")
)
