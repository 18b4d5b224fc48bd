package model

import "fmt"

const NoSuitableColumnMessage = "Could not find a suitable column for deduplication. " +
	"Please ensure your table has at least one column with text data."

// NoSuitableColumnError: в таблице нет ни одной текстовой колонки.
type NoSuitableColumnError struct{}

func (*NoSuitableColumnError) Error() string { return NoSuitableColumnMessage }

type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

type InvalidThresholdError struct {
	Threshold int
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("threshold %d out of range 0..100", e.Threshold)
}

// MalformedTableError wraps a failure to parse the source file into a table.
type MalformedTableError struct {
	File string
	Err  error
}

func (e *MalformedTableError) Error() string {
	if e.File == "" {
		return "malformed table: " + e.Err.Error()
	}
	return fmt.Sprintf("malformed table %s: %v", e.File, e.Err)
}

func (e *MalformedTableError) Unwrap() error { return e.Err }
