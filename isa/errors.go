package isa

import "fmt"

// ErrorKind is the stable taxonomy of engine-level failures. Callers outside
// this module (the job registry, test harnesses) branch on Kind rather than
// parsing messages.
type ErrorKind string

const (
	InvalidArgument       ErrorKind = "InvalidArgument"
	OutOfRange            ErrorKind = "OutOfRange"
	InvalidSequence       ErrorKind = "InvalidSequence"
	UnsupportedGate       ErrorKind = "UnsupportedGate"
	TimingViolation       ErrorKind = "TimingViolation"
	BlockadeViolation     ErrorKind = "BlockadeViolation"
	ConnectivityViolation ErrorKind = "ConnectivityViolation"
	InvalidState          ErrorKind = "InvalidState"
	InvalidConfig         ErrorKind = "InvalidConfig"
	UnsupportedVersion    ErrorKind = "UnsupportedVersion"
)

// VMError carries a stable Kind alongside a human-readable message so
// callers can both branch (errors.As) and log.
type VMError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *VMError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *VMError) Unwrap() error { return e.Cause }

// Errorf builds a *VMError with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *VMError {
	return &VMError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a *VMError that carries an underlying cause.
func Wrap(kind ErrorKind, cause error, format string, args ...any) *VMError {
	return &VMError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}
