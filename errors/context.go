package errors

import stderrors "errors"

// WithContext returns a copy of err with key set to value in its context.
// A plain error is first converted to a CodedError with CodeUnknown.
// Returns nil if err is nil.
//
//	err = errors.WithContext(err, "path", name)
func WithContext(err error, key string, value any) CodedError {
	if err == nil {
		return nil
	}

	coded := asCoded(err)
	ctx := coded.Context()
	if ctx == nil {
		ctx = make(map[string]any, 1)
	}
	ctx[key] = value

	return &codedError{
		code:           coded.Code(),
		classification: coded.Classification(),
		message:        coded.Message(),
		context:        ctx,
		cause:          coded.Unwrap(),
	}
}

func asCoded(err error) CodedError {
	var coded CodedError
	if stderrors.As(err, &coded) {
		return coded
	}
	return &codedError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}
