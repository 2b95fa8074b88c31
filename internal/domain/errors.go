package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrInvalidQuantity    = errors.New("item quantity must be positive")
	ErrDuplicateProduct   = errors.New("product code already exists")
	ErrMissingParticipant = errors.New("participant id is required")
	ErrValidation         = errors.New("validation failed")
)

// FailureCause is the operator-facing classification of a store failure.
type FailureCause string

const (
	CauseAuth         FailureCause = "auth"
	CauseMissingTable FailureCause = "missing_table"
	CauseNetwork      FailureCause = "network"
	CauseUnknown      FailureCause = "unknown"
)

// DataAccessError wraps any store failure other than "no rows".
type DataAccessError struct {
	Op    string
	Code  string
	Cause FailureCause
	Err   error
}

func (e *DataAccessError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: [%s] %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// FailureCauseOf returns the cause carried by a DataAccessError anywhere in err's chain.
func FailureCauseOf(err error) FailureCause {
	var dae *DataAccessError
	if errors.As(err, &dae) && dae.Cause != "" {
		return dae.Cause
	}
	return CauseUnknown
}
