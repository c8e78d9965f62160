package runtime

import "fmt"

// ErrorCode classifies evaluation failures. Codes let callers and the
// conformance fixtures branch on the failure variant without parsing
// messages.
type ErrorCode string

const (
	UndefinedVariable     ErrorCode = "UndefinedVariable"
	UnknownFunction       ErrorCode = "UnknownFunction"
	ArityMismatch         ErrorCode = "ArityMismatch"
	NonIntegerIndex       ErrorCode = "NonIntegerIndex"
	IndexOutOfRange       ErrorCode = "IndexOutOfRange"
	UnsupportedOperator   ErrorCode = "UnsupportedOperator"
	UnsupportedNode       ErrorCode = "UnsupportedNode"
	InvalidCondition      ErrorCode = "InvalidCondition"
	InvalidOperand        ErrorCode = "InvalidOperand"
	DivisionByZero        ErrorCode = "DivisionByZero"
	ReturnOutsideFunction ErrorCode = "ReturnOutsideFunction"
)

// Error is a fatal evaluation failure. Evaluation stops at the first one;
// the language exposes no catching construct.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError builds an evaluation error with a formatted message.
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
