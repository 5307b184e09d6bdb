package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReportDate is returned when a report date is not a bare YYYY-MM-DD.
	ErrInvalidReportDate = errors.New("invalid report date")

	// ErrConfiguration is returned when the data source lacks credentials or
	// identifiers. No fetch is attempted.
	ErrConfiguration = errors.New("data source not configured")

	// ErrSourceUnavailable is returned when every range fetch failed.
	ErrSourceUnavailable = errors.New("data source unavailable")
)

// SourceFetchError records the failure of a single range fetch.
type SourceFetchError struct {
	Sheet string
	Err   error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Sheet, e.Err)
}

func (e *SourceFetchError) Unwrap() error { return e.Err }
