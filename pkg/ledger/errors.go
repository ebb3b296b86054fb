package ledger

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/tcfw/powledger/pkg/tx"
)

var (
	ErrValidationFailure = errors.New("transaction failed validation")
	ErrChainIntegrity    = errors.New("chain integrity check failed")
)

// RejectedError reports a well formed tx that was refused at the ledger
// boundary. The pending pool is unchanged when it is returned.
type RejectedError struct {
	Tx     *tx.Tx
	Reason error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationFailure, e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return e.Reason
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrValidationFailure
}

// IntegrityError describes the first block that failed verification
type IntegrityError struct {
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s", ErrChainIntegrity, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrChainIntegrity
}
