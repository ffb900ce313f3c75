package entities

import "errors"

// Pipeline errors. Callers match them with errors.Is; every layer wraps
// them with context using %w.
var (
	ErrSourceNotFound     = errors.New("audio source not found")
	ErrPreconditionFailed = errors.New("transcript not found")
	ErrEngineUnavailable  = errors.New("engine unavailable")
	ErrAuthentication     = errors.New("engine authentication failed")
	ErrMalformedUpload    = errors.New("malformed upload")
	ErrMeetingNotFound    = errors.New("meeting not found")
)
