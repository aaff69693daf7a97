package orchestrator

import (
	"fmt"
	"net/http"
)

// Kind classifies a request failure.
type Kind string

const (
	KindInput       Kind = "InputError"
	KindFetch       Kind = "FetchError"
	KindExtraction  Kind = "ExtractionError"
	KindTranslation Kind = "TranslationError"
	KindPersistence Kind = "PersistenceError"
	KindUnhandled   Kind = "UnhandledError"
)

// User-facing messages.
const (
	msgNoInput      = "No URL or paragraph provided"
	msgFetchBlocked = "Failed to fetch blog URL. The site may be blocking bots or require login."
	msgFetchStatus  = "Failed to fetch blog URL (status %d)"
	msgExtraction   = "Could not extract blog text. The site may be protected or not a blog."
	msgSaveSummary  = "Failed to save summary in %s"
	msgSaveFullText = "Failed to save full text in %s"
)

// Error is a terminal request failure carrying the HTTP status and the
// message shown to the caller.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func inputError() *Error {
	return &Error{Kind: KindInput, Status: http.StatusBadRequest, Message: msgNoInput}
}

func fetchBlocked(err error) *Error {
	return &Error{Kind: KindFetch, Status: http.StatusBadRequest, Message: msgFetchBlocked, Err: err}
}

func fetchStatus(status int) *Error {
	return &Error{Kind: KindFetch, Status: http.StatusBadRequest, Message: fmt.Sprintf(msgFetchStatus, status)}
}

func extractionError(err error) *Error {
	return &Error{Kind: KindExtraction, Status: http.StatusBadRequest, Message: msgExtraction, Err: err}
}

func translationError(err error) *Error {
	return &Error{Kind: KindTranslation, Status: http.StatusInternalServerError, Message: err.Error(), Err: err}
}

func persistenceError(format, sink string, err error) *Error {
	return &Error{Kind: KindPersistence, Status: http.StatusInternalServerError, Message: fmt.Sprintf(format, sink), Err: err}
}

// Unhandled wraps any other failure; its message is surfaced verbatim.
func Unhandled(err error) *Error {
	return &Error{Kind: KindUnhandled, Status: http.StatusInternalServerError, Message: err.Error(), Err: err}
}
