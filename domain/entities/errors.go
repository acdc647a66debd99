package entities

import (
	"errors"
	"fmt"
)

// ErrSelfTransfer is returned when a transfer names the same account on both
// sides instead of silently doing nothing.
var ErrSelfTransfer = errors.New("cannot transfer to yourself")

// ErrInvalidOpponent is returned when a duel targets the challenger themselves
// or a bot account.
var ErrInvalidOpponent = errors.New("invalid duel opponent")

// InsufficientFundsError is an expected, recoverable outcome of a guarded
// debit; the balance is left untouched.
type InsufficientFundsError struct {
	DiscordID int64
	Have      int64
	Need      int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %d: have %d, need %d", e.DiscordID, e.Have, e.Need)
}

// TransferError wraps a failure inside a two-party transfer with enough
// context to report which side failed.
type TransferError struct {
	FromDiscordID int64
	ToDiscordID   int64
	Amount        int64
	Err           error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer of %d from %d to %d failed: %v", e.Amount, e.FromDiscordID, e.ToDiscordID, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// StorageError marks an infrastructure fault from the ledger's storage layer.
// It is never produced for expected outcomes like insufficient funds.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps a driver error with the operation that produced it
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// IsInsufficientFunds reports whether err is (or wraps) an insufficient funds
// failure, including one buried inside a TransferError.
func IsInsufficientFunds(err error) bool {
	var ife *InsufficientFundsError
	return errors.As(err, &ife)
}
