package format

// FormatError reports a table lookup that has no entry for a format.
type FormatError struct {
	Op     string
	Format Format
	Err    error
}

func (e *FormatError) Error() string {
	return "format: " + e.Op + ": unsupported format " + e.Format.String()
}

// Unwrap returns the sentinel the error matches.
func (e *FormatError) Unwrap() error { return e.Err }
