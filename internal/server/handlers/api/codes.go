package api

const (
	// Generic request/server errors
	CodeInvalidRequest = "E_INVALID_REQUEST" // bad or invalid request
	CodeRateLimited    = "E_RATE_LIMITED"    // rate limit exceeded
	CodeInternalError  = "E_INTERNAL_ERROR"  // internal server error

	// Root errors (fatal per spec: no partial report is produced)
	CodeRootNotFound  = "E_ROOT_NOT_FOUND"  // a configured root does not exist
	CodeRootNotDir    = "E_ROOT_NOT_DIR"    // a configured root is not a directory
	CodeInvalidRoot   = "E_INVALID_ROOT"    // a root failed resolution or validation
	CodeBadPattern    = "E_BAD_PATTERN"     // an unwanted-file glob does not parse
	CodeJournalFailed = "E_JOURNAL_FAILED"  // the operation journal could not be read
	CodeUnknownSource = "E_UNKNOWN_SOURCE"  // subtitle sync source is not salvaged|migrated
)
