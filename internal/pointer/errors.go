package pointer

import (
	"errors"
	"fmt"
)

// ConfigErrorCode categorizes pool configuration errors.
type ConfigErrorCode string

const (
	// ErrCodePoolCapacity indicates a symmetry mode needs more user slots
	// than the pool has.
	ErrCodePoolCapacity ConfigErrorCode = "POOL_CAPACITY"

	// ErrCodeInvalidPool indicates impossible pool dimensions.
	ErrCodeInvalidPool ConfigErrorCode = "INVALID_POOL"

	// ErrCodeSlotRange indicates a slot index outside its region.
	ErrCodeSlotRange ConfigErrorCode = "SLOT_RANGE"

	// ErrCodeStrokeOpen indicates a symmetry change while a user slot is
	// mid-stroke.
	ErrCodeStrokeOpen ConfigErrorCode = "STROKE_OPEN"
)

// ConfigError reports a request the pool's fixed configuration cannot satisfy.
type ConfigError struct {
	Code      ConfigErrorCode
	Message   string
	Required  int
	Available int
}

func (e *ConfigError) Error() string {
	if e.Required > 0 {
		return fmt.Sprintf("%s: %s (required=%d, available=%d)", e.Code, e.Message, e.Required, e.Available)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsCapacityError reports whether err is a POOL_CAPACITY error.
func IsCapacityError(err error) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodePoolCapacity
	}
	return false
}

func NewCapacityError(mode string, required, available int) *ConfigError {
	return &ConfigError{
		Code:      ErrCodePoolCapacity,
		Message:   fmt.Sprintf("symmetry mode %s needs more pointers than the pool holds", mode),
		Required:  required,
		Available: available,
	}
}

func NewInvalidPoolError(capacity, user int) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidPool,
		Message: fmt.Sprintf("capacity %d cannot hold %d user pointers", capacity, user),
	}
}

func NewSlotRangeError(region string, index, size int) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeSlotRange,
		Message: fmt.Sprintf("%s slot %d out of range [0,%d)", region, index, size),
	}
}

func NewStrokeOpenError(mode string, slot int) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeStrokeOpen,
		Message: fmt.Sprintf("cannot switch to symmetry mode %s while slot %d is drawing", mode, slot),
	}
}

// IsStrokeOpenError reports whether err is a STROKE_OPEN error.
func IsStrokeOpenError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce) && ce.Code == ErrCodeStrokeOpen
}
