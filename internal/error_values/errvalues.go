package errorvalues

import "errors"

var (
	// Remote collection failures
	ErrNetworkFailure = errors.New("habit collection unreachable")
	ErrBadStatus      = errors.New("habit collection returned bad status")
	ErrMalformedData  = errors.New("habit collection returned malformed data")

	ErrInvalidDate   = errors.New("invalid habit date")
	ErrInvalidHabit  = errors.New("invalid habit")
	ErrHabitNotFound = errors.New("habit doesn't exist")
	ErrStorageLocked = errors.New("storage is locked by another process")
)
