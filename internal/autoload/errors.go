package autoload

import (
	"errors"
	"fmt"
)

// ErrFormat indicates the always-load block could not be located
var ErrFormat = errors.New("always-load block not found")

// FormatError reports which marker of a Format was missing from the text
type FormatError struct {
	Format Format
	Marker string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: %s marker %q missing", ErrFormat, e.Format.Name, e.Marker)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}
