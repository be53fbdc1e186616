package workbook

import (
	"fmt"
	"strings"
)

// AccessError reports a master workbook that could not be opened, read or
// saved (missing directory, locked file, bad permissions).
type AccessError struct {
	Path string
	Op   string // "open", "read", "save"
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s master workbook %q: %v", e.Op, e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// SchemaError reports an existing master whose header row does not match the
// expected column schema. Nothing is written when this happens.
type SchemaError struct {
	Path     string
	Expected []string
	Actual   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("master workbook %q has incompatible columns: want [%s], got [%s]",
		e.Path, strings.Join(e.Expected, ", "), strings.Join(e.Actual, ", "))
}
