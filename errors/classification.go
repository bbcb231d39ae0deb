package errors

// ErrorClassification indicates whether retrying the failed operation can
// succeed without any change in state.
type ErrorClassification string

const (
	// ClassificationRetryable indicates temporary failures that may succeed on retry.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on retry.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodePartialIO: ClassificationRetryable,

	CodeAccessDenied:      ClassificationPermanent,
	CodeNotFound:          ClassificationPermanent,
	CodeAlreadyExists:     ClassificationPermanent,
	CodeReadOnly:          ClassificationPermanent,
	CodeMountFailed:       ClassificationPermanent,
	CodeSpawnFailed:       ClassificationPermanent,
	CodeExecDisabled:      ClassificationPermanent,
	CodeThreadingDisabled: ClassificationPermanent,
	CodeInvalidInput:      ClassificationPermanent,
	CodeInternal:          ClassificationPermanent,
	CodeUnknown:           ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error code.
// Unknown codes are permanent.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
