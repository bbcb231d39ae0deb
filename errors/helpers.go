package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode from the outermost CodedError in err's chain.
// Returns CodeUnknown if err is nil or carries no code.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}
	var coded CodedError
	if stderrors.As(err, &coded) {
		return coded.Code()
	}
	return CodeUnknown
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && GetCode(err) == code
}

// IsRetryable returns true if the error is classified as retryable.
// Returns false if err is nil or uncoded.
func IsRetryable(err error) bool {
	var coded CodedError
	if err == nil || !stderrors.As(err, &coded) {
		return false
	}
	return coded.Classification().IsRetryable()
}
