package cargo

import (
	"errors"
	"net/http"
)

// Application error codes, mapped to HTTP statuses at the edge.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

const DefaultErrorMessage = "An internal error has occurred."

type Error struct {
	Op      string
	Code    string
	Message string
	Err     error
	Fields  map[string]interface{}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return DefaultErrorMessage
}

func (e *Error) Unwrap() error {
	return e.Err
}

func OpError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

func ErrorWithCode(err error, code string) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		// Copy so shared sentinel errors keep their code.
		coded := *appErr
		coded.Code = code
		return &coded
	}

	return &Error{Code: code, Err: err}
}

// ErrorCode walks the chain until it finds a code, EINTERNAL otherwise.
func ErrorCode(err error) string {
	var appErr *Error
	for errors.As(err, &appErr) {
		if appErr.Code != "" {
			return appErr.Code
		}
		err = appErr.Err
	}
	return EINTERNAL
}

func ErrorMessage(err error) string {
	var appErr *Error
	for errors.As(err, &appErr) {
		if appErr.Message != "" {
			return appErr.Message
		}
		err = appErr.Err
	}
	if err != nil {
		return err.Error()
	}
	return DefaultErrorMessage
}

func ErrCodeToHTTPStatus(err error) int {
	switch ErrorCode(err) {
	case EINVALID:
		return http.StatusBadRequest
	case ENOTFOUND:
		return http.StatusNotFound
	case ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
