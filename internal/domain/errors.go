package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUntracked is returned when a chain fact references no object this indexer tracks yet
	ErrUntracked = errors.New("state object not tracked")

	// ErrMasterViewSeedNotFound is returned when an account has no registered master view seed
	ErrMasterViewSeedNotFound = errors.New("master view seed not found")

	// ErrStateObjectNotFound is returned when a state object lookup finds no row
	ErrStateObjectNotFound = errors.New("state object not found")

	// ErrPublicIntentNotFound is returned when a public intent lookup finds no row
	ErrPublicIntentNotFound = errors.New("public intent not found")
)

// ErrorKind classifies how a failure should be handled by its caller
type ErrorKind int

const (
	// KindTransient failures are retried with backoff
	KindTransient ErrorKind = iota
	// KindSetup failures are fatal at boot
	KindSetup
	// KindData failures come from malformed payloads; the message is dropped
	KindData
	// KindConsistency failures mean an invariant was violated and an operator must look
	KindConsistency
)

func (k ErrorKind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindData:
		return "data"
	case KindConsistency:
		return "consistency"
	default:
		return "transient"
	}
}

// Error is a classified failure
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewSetupError wraps err as a fatal boot failure
func NewSetupError(op string, err error) error {
	return &Error{Kind: KindSetup, Op: op, Err: err}
}

// NewTransientError wraps err as a retryable failure
func NewTransientError(op string, err error) error {
	return &Error{Kind: KindTransient, Op: op, Err: err}
}

// NewDataError wraps err as a malformed payload failure
func NewDataError(op string, err error) error {
	return &Error{Kind: KindData, Op: op, Err: err}
}

// NewConsistencyError wraps err as an invariant violation
func NewConsistencyError(op string, err error) error {
	return &Error{Kind: KindConsistency, Op: op, Err: err}
}

// KindOf returns the kind of the outermost classified error in err's chain.
// Unclassified errors are transient.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindTransient
}

// IsData reports whether err is a data error
func IsData(err error) bool {
	return err != nil && KindOf(err) == KindData
}

// IsConsistency reports whether err is a consistency error
func IsConsistency(err error) bool {
	return err != nil && KindOf(err) == KindConsistency
}
