package cli

import (
	"errors"

	domainerrors "github.com/leengari/csvbreaker/internal/domain/errors"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitUsageError      = 2
	ExitPanic           = 3
	ExitOutputDirectory = 10
	ExitLoadError       = 11
	ExitWriteError      = 12
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		argErr   *domainerrors.ArgumentError
		dirErr   *domainerrors.OutputDirectoryError
		loadErr  *domainerrors.LoadError
		writeErr *domainerrors.WriteError
	)
	switch {
	case errors.As(err, &argErr):
		return ExitUsageError
	case errors.As(err, &dirErr):
		return ExitOutputDirectory
	case errors.As(err, &loadErr):
		return ExitLoadError
	case errors.As(err, &writeErr):
		return ExitWriteError
	}

	return ExitGeneralError
}
