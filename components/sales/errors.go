package sales

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSession is returned when no business or token is available.
	ErrMissingSession = errors.New("sales: session is missing business or token")
	// ErrSessionExpired is returned when the token could not be refreshed.
	ErrSessionExpired = errors.New("sales: session expired")
	// ErrTransport wraps network failures talking to the backend.
	ErrTransport = errors.New("sales: transport failure")
	// ErrDateRangeRequired is returned when either bound of a load is missing.
	ErrDateRangeRequired = errors.New("sales: start and end dates are required")
	// ErrInvalidDateRange is returned when start is after end.
	ErrInvalidDateRange = errors.New("sales: start date is after end date")
	// ErrEmptySelection is returned by bulk delete when nothing is selected.
	ErrEmptySelection = errors.New("sales: no rows selected")
	// ErrUnknownColumn is returned for columns that are missing or not usable for the operation.
	ErrUnknownColumn = errors.New("sales: unknown column")
	// ErrRowNotFound is returned when an id is not part of the loaded rows.
	ErrRowNotFound = errors.New("sales: row not found")
	// ErrInvalidInput wraps sale form validation failures.
	ErrInvalidInput = errors.New("sales: invalid sale input")
	// ErrDialogClosed is returned when submitting a dialog that is not open.
	ErrDialogClosed = errors.New("sales: edit dialog is not open")
	// ErrDialogBusy is returned while a submission is in flight.
	ErrDialogBusy = errors.New("sales: edit dialog is submitting")
	// ErrStaleLoad marks a load whose response was superseded by a newer request.
	ErrStaleLoad = errors.New("sales: load superseded by a newer request")
)

// RemoteError is a non-2xx response from the backend.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("sales: remote error %d", e.Status)
	}
	return fmt.Sprintf("sales: remote error %d: %s", e.Status, e.Message)
}

// Unauthorized reports whether the backend rejected the credentials.
func (e *RemoteError) Unauthorized() bool {
	return e.Status == 401 || e.Status == 403
}

// DecodeError reports a response that does not match the expected shape.
type DecodeError struct {
	Resource string
	Field    string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("sales: decode %s field %s: %v", e.Resource, e.Field, e.Err)
	}
	return fmt.Sprintf("sales: decode %s: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrorKind classifies failures into the user-facing taxonomy.
type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindTransport  ErrorKind = "transport"
	KindRemote     ErrorKind = "remote"
	KindSession    ErrorKind = "session"
	KindDecode     ErrorKind = "decode"
	KindValidation ErrorKind = "validation"
	KindUnknown    ErrorKind = "unknown"
)

// Classify maps an error onto an ErrorKind.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var remote *RemoteError
	var decode *DecodeError
	switch {
	case errors.Is(err, ErrMissingSession), errors.Is(err, ErrSessionExpired):
		return KindSession
	case errors.As(err, &remote):
		if remote.Unauthorized() {
			return KindSession
		}
		return KindRemote
	case errors.As(err, &decode):
		return KindDecode
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrDateRangeRequired),
		errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrEmptySelection),
		errors.Is(err, ErrUnknownColumn),
		errors.Is(err, ErrRowNotFound):
		return KindValidation
	default:
		return KindUnknown
	}
}
