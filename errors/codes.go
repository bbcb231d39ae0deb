package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and log readability.
type ErrorCode string

const (
	// Filesystem errors.

	// CodeAccessDenied indicates the access guard rejected the path.
	CodeAccessDenied ErrorCode = "ACCESS_DENIED"

	// CodeNotFound indicates a path is not present in any mounted container.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates the target already exists.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeReadOnly indicates a write was attempted against a read-only
	// container, or no write directory is configured.
	CodeReadOnly ErrorCode = "READ_ONLY"

	// CodePartialIO indicates a read or write transferred fewer bytes than
	// requested.
	CodePartialIO ErrorCode = "PARTIAL_IO"

	// CodeMountFailed indicates a container could not be opened or mounted.
	CodeMountFailed ErrorCode = "MOUNT_FAILED"

	// Process errors.

	// CodeSpawnFailed indicates a child process could not be created.
	CodeSpawnFailed ErrorCode = "SPAWN_FAILED"

	// CodeExecDisabled indicates external execution is refused because the
	// access guard is restricted.
	CodeExecDisabled ErrorCode = "EXEC_DISABLED"

	// CodeThreadingDisabled indicates asynchronous execution is unavailable.
	CodeThreadingDisabled ErrorCode = "THREADING_DISABLED"

	// Generic errors.

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInternal indicates an unexpected internal failure.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unclassified error.
	CodeUnknown ErrorCode = "UNKNOWN"
)
