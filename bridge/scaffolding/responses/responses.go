// Package responses holds the small JSON bodies shared by the bridges.
package responses

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is a plain acknowledgement, e.g. {"message":"Task deleted"}.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewMessage(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

func (m MessageResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

// StatusResponse reports service health.
type StatusResponse struct {
	Status string `json:"status"`
	code   int
}

// NewStatus returns "ok" with 200 when healthy, otherwise "unavailable" with 500.
func NewStatus(healthy bool) StatusResponse {
	if healthy {
		return StatusResponse{Status: "ok", code: http.StatusOK}
	}
	return StatusResponse{Status: "unavailable", code: http.StatusInternalServerError}
}

func (s StatusResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json", err
}

func (s StatusResponse) HTTPStatus() int {
	if s.code == 0 {
		return http.StatusOK
	}
	return s.code
}
