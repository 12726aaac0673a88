package logging

// Field name constants for structured logging.
const (
	FieldError    = "error"
	FieldPath     = "path"
	FieldLanguage = "language"
	FieldStyle    = "style"
	FieldJobs     = "jobs"
	FieldConfig   = "config"

	FieldFiles        = "files"
	FieldFilesChanged = "files_changed"
	FieldFilesFailed  = "files_failed"
	FieldWrapped      = "wrapped"
	FieldSkipped      = "skipped"
)
