package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal     ErrorCode = "COMMON_001"
	ErrCodeInvalidParam ErrorCode = "COMMON_002"
	ErrCodeNotFound     ErrorCode = "COMMON_003"
)

// Source-loading error codes.
//
// A missing required source aborts the run; a missing optional source
// degrades to an empty dataset. Malformed per-record values are coerced,
// never raised, so ErrCodeMalformedValue only appears when a loader cannot
// open or decode an entire file it was told is present.
const (
	ErrCodeMissingRequiredSource ErrorCode = "SRC_001"
	ErrCodeMissingOptionalSource ErrorCode = "SRC_002"
	ErrCodeMalformedValue        ErrorCode = "SRC_003"
)

// Scoring and profile-catalog error codes.
const (
	ErrCodeProfileNotFound ErrorCode = "SCORE_001"
	ErrCodeInvalidProfile  ErrorCode = "SCORE_002"
	ErrCodeInvalidTiers    ErrorCode = "SCORE_003"
)

// Aliases kept for call-site readability.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeInvalidParam
	CodeNotFound     = ErrCodeNotFound
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)
