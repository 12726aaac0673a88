package braces

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLanguage is returned when no grammar matches a name or extension.
	ErrUnknownLanguage = errors.New("language not registered")

	// ErrNoInput is returned when a batch run is given nothing to process.
	ErrNoInput = errors.New("no input files")
)

func unknownLanguage(name string) error {
	if name == "" {
		name = "(none)"
	}
	return fmt.Errorf("%s %w", name, ErrUnknownLanguage)
}
