package omimparser

import "fmt"

// SchemaMismatchError is fatal: the file's header row does not match the
// expected column schema, so none of the field offsets can be trusted.
type SchemaMismatchError struct {
	File     string
	Expected int
	Got      int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch in %s: expected %d columns, header has %d", e.File, e.Expected, e.Got)
}

// MalformedRowError is recoverable: a single data row could not be parsed.
// Callers log it, count it, and move on to the next row.
type MalformedRowError struct {
	File   string
	Line   int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row in %s line %d: %s", e.File, e.Line, e.Reason)
}
