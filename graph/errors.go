package graph

import (
	"encoding/json"
	"fmt"
)

// Error is an error returned by the Graph API.
type Error struct {
	HTTPStatus int

	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
	Subcode int    `json:"error_subcode"`
	TraceID string `json:"fbtrace_id"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("received non-OK HTTP status: %d", e.HTTPStatus)
	}
	return fmt.Sprintf("graph api error (code %d, subcode %d): %s", e.Code, e.Subcode, e.Message)
}

type errorEnvelope struct {
	Error *Error `json:"error"`
}

func parseErrorResponse(httpStatus int, responseBytes []byte) *Error {
	var envelope errorEnvelope
	if err := json.Unmarshal(responseBytes, &envelope); err != nil || envelope.Error == nil {
		return &Error{HTTPStatus: httpStatus}
	}

	envelope.Error.HTTPStatus = httpStatus
	return envelope.Error
}
