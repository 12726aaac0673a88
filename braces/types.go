package braces

// FileJob represents a file to be processed.
type FileJob struct {
	AbsPath     string
	DisplayPath string
	Language    Language
}

// Result is the outcome of rewriting one unit.
type Result struct {
	// Output is the rewritten text, or the original text when Changed is false.
	Output []byte

	// Changed is false when no clause needed braces.
	Changed bool

	// Wrapped counts clauses that received braces.
	Wrapped int

	// Skipped counts clauses left alone because their boundaries were
	// invalid or came from a macro expansion.
	Skipped int

	// Edits lists the applied insertions in application order.
	Edits []Edit
}

// FileResult is the outcome of processing one file in a batch.
type FileResult struct {
	File     string `json:"file"`
	Language string `json:"language,omitempty"`
	Changed  bool   `json:"changed"`
	Wrapped  int    `json:"wrapped"`
	Skipped  int    `json:"skipped"`
	Error    string `json:"error,omitempty"`

	AbsPath string `json:"-"`
	Source  []byte `json:"-"`
	Output  []byte `json:"-"`
	Err     error  `json:"-"`
}
