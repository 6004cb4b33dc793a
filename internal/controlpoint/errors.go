package controlpoint

import (
	"errors"
	"fmt"
)

// DataErrorCode categorizes malformed control point data.
type DataErrorCode string

const (
	// ErrCodeShortRecord indicates fewer bytes than the records require.
	ErrCodeShortRecord DataErrorCode = "SHORT_RECORD"

	// ErrCodeBadCount indicates a negative or otherwise impossible count.
	ErrCodeBadCount DataErrorCode = "BAD_COUNT"

	// ErrCodeTrailingBytes indicates bytes left over after the last record.
	ErrCodeTrailingBytes DataErrorCode = "TRAILING_BYTES"
)

// DataError reports malformed persisted control point data.
type DataError struct {
	Code    DataErrorCode
	Message string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsDataError reports whether err is or wraps a *DataError.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}

func NewShortRecordError(got, want int) *DataError {
	return &DataError{
		Code:    ErrCodeShortRecord,
		Message: fmt.Sprintf("have %d bytes, need %d", got, want),
	}
}

func NewBadCountError(count int) *DataError {
	return &DataError{
		Code:    ErrCodeBadCount,
		Message: fmt.Sprintf("invalid control point count %d", count),
	}
}

func NewTrailingBytesError(extra int) *DataError {
	return &DataError{
		Code:    ErrCodeTrailingBytes,
		Message: fmt.Sprintf("%d bytes after last record", extra),
	}
}
