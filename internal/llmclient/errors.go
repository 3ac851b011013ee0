package llmclient

import (
	"fmt"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

// TransportError wraps a failed call to the underlying provider:
// network errors, rate limits, and timeouts. It always unwraps to
// domain.ErrTransport so callers can classify it with errors.Is without
// depending on this package's concrete types.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("llm transport error (%s): %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return domain.ErrTransport }

// ParseError wraps a response that did not parse as the expected JSON
// shape. It always unwraps to domain.ErrParse.
type ParseError struct {
	Provider string
	Body     string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("llm response parse error (%s): %v", e.Provider, e.Err)
}

func (e *ParseError) Unwrap() error { return domain.ErrParse }
