package main

import (
	"errors"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

// exitCodeFor maps a command error to one of the exit codes defined for
// the `run` subcommand. report and serve reuse the same mapping: they
// return exitValidationFailure for unreadable inputs or config and
// exitInternalError for render, write, directory or listen failures;
// neither wraps ErrTransport.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrValidation):
		return exitValidationFailure
	case errors.Is(err, domain.ErrTransport):
		return exitLLMUnreachable
	case errors.Is(err, domain.ErrInternal):
		return exitInternalError
	default:
		return exitInternalError
	}
}
