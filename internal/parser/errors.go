package parser

import "fmt"

// ExtractionError reports a document that could not be turned into a
// ShiftReport: not a readable DOCX, or a required section is missing.
type ExtractionError struct {
	File    string
	Section string // "document", "date", "items"
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %q (%s): %v", e.File, e.Section, e.Err)
	}
	return fmt.Sprintf("extract %q: missing or malformed %s section", e.File, e.Section)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func newExtractionError(file, section string, err error) *ExtractionError {
	return &ExtractionError{File: file, Section: section, Err: err}
}
