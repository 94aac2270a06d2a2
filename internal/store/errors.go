package store

import "fmt"

// WriteError reports a failed bulk insert along with the number of rows
// that were about to be written, so the operator knows the size of the
// rolled-back batch.
type WriteError struct {
	Table string
	Rows  int
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("bulk insert into %s failed, %d rows rolled back: %v", e.Table, e.Rows, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
