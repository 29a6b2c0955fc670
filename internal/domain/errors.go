package domain

import "errors"

var (
	// Failure taxonomy for the remote pipelines. Clients wrap one of these
	// so callers can classify with errors.Is without inspecting transport
	// details.
	ErrValidation = errors.New("invalid local input")
	ErrNetwork    = errors.New("no response from remote service")
	ErrService    = errors.New("remote service returned failure status")
	ErrParse      = errors.New("remote response does not match expected schema")

	// Controller / chat manager no-op signals.
	ErrBusy         = errors.New("request already in flight")
	ErrNoImage      = errors.New("no image selected")
	ErrEmptyMessage = errors.New("empty message")
	ErrStale        = errors.New("response discarded, session changed")

	ErrGrowerNotFound  = errors.New("grower not found")
	ErrSessionNotFound = errors.New("chat session not found")
	ErrRateLimited     = errors.New("rate limit exceeded")
)
