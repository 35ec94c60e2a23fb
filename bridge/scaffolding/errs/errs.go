// Package errs provides the application error type returned by bridges and
// translated to HTTP responses by the web layer.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrCode is an application error class with its HTTP status.
type ErrCode struct {
	value  string
	status int
}

// Set of error codes.
var (
	InvalidArgument = ErrCode{value: "invalid_argument", status: http.StatusBadRequest}
	NotFound        = ErrCode{value: "not_found", status: http.StatusNotFound}
	Internal        = ErrCode{value: "internal", status: http.StatusInternalServerError}
	InternalOnlyLog = ErrCode{value: "internal_only_log", status: http.StatusInternalServerError}
)

// String returns the wire name of the code.
func (ec ErrCode) String() string {
	return ec.value
}

// HTTPStatus returns the status the code maps to.
func (ec ErrCode) HTTPStatus() int {
	return ec.status
}

// Error is the error value handlers return to the web layer.
type Error struct {
	Code     ErrCode `json:"-"`
	Message  string  `json:"message"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
	err      error
}

// New wraps err under code. The error's text becomes the message.
func New(code ErrCode, err error) *Error {
	e := newError(code, err.Error())
	e.err = err
	return e
}

// Newf builds an Error from a format string.
func Newf(code ErrCode, format string, v ...any) *Error {
	return newError(code, fmt.Sprintf(format, v...))
}

func newError(code ErrCode, msg string) *Error {
	pc, filename, line, _ := runtime.Caller(2)
	funcName := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = fn.Name()
	}

	return &Error{
		Code:     code,
		Message:  msg,
		FuncName: funcName,
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped cause for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.err
}

// Encode implements the web.Encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    e.Code.String(),
		Message: e.Message,
	})
	return data, "application/json", err
}

// HTTPStatus implements the web layer's status interface.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// IsError reports whether err carries an *Error.
func IsError(err error) bool {
	var er *Error
	return errors.As(err, &er)
}

// GetError returns the *Error inside err, or nil.
func GetError(err error) *Error {
	var er *Error
	if !errors.As(err, &er) {
		return nil
	}
	return er
}
