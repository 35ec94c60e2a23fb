package web

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the bare framework level failure body. Application errors
// travel as errs.Error instead.
type ErrorResponse struct {
	Message string `json:"message"`
}

func NewError(msg string) ErrorResponse {
	return ErrorResponse{Message: msg}
}

func (e ErrorResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

func (e ErrorResponse) HTTPStatus() int {
	return http.StatusInternalServerError
}
