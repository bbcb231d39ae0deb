// Package errors provides the coded errors used across the virtual
// filesystem and process runner.
//
// Every failure produced by this module carries an ErrorCode that tells
// callers which part of the taxonomy it belongs to: an access guard
// rejection, a resolution failure, a partial read or write, a process spawn
// failure, or an unavailable feature. Errors remain compatible with the
// standard library (errors.Is, errors.As, errors.Unwrap).
//
// # Quick Start
//
//	err := errors.New(errors.CodeAccessDenied, "access denied to data/")
//	err = errors.WithContext(err, "path", "data/")
//
//	info, err := driver.Stat(name)
//	if err != nil {
//	    return errors.Wrapf(err, errors.CodeNotFound, "stat %s", name)
//	}
//
//	if errors.GetCode(err) == errors.CodeAccessDenied {
//	    // denied, as opposed to missing
//	}
//
// # Classification
//
// Each code has a default classification. Only partial I/O is considered
// retryable; every other failure is permanent until the caller changes
// something (permissions, mounts, arguments).
package errors
