package graph

import (
	"net/http"
	"strings"
	"testing"
)

func TestParseErrorResponse(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    int
		wantMessage string
	}{
		{"full envelope", 400, `{"error":{"message":"Invalid parameter","code":100,"error_subcode":2018001}}`, 100, "Invalid parameter"},
		{"malformed json", 500, `<html>boom</html>`, 0, ""},
		{"missing error key", 500, `{"unexpected":true}`, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiError := parseErrorResponse(tt.status, []byte(tt.body))
			if apiError.HTTPStatus != tt.status {
				t.Errorf("HTTPStatus = %d, want %d", apiError.HTTPStatus, tt.status)
			}
			if apiError.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", apiError.Code, tt.wantCode)
			}
			if apiError.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiError.Message, tt.wantMessage)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	withMessage := &Error{HTTPStatus: 400, Code: 100, Subcode: 33, Message: "Unsupported request"}
	if !strings.Contains(withMessage.Error(), "Unsupported request") {
		t.Errorf("Error() = %q, want it to contain the message", withMessage.Error())
	}

	bare := &Error{HTTPStatus: http.StatusBadGateway}
	if !strings.Contains(bare.Error(), "502") {
		t.Errorf("Error() = %q, want it to contain the status", bare.Error())
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"server error", &Error{HTTPStatus: 500}, true},
		{"rate limited", &Error{HTTPStatus: 429}, true},
		{"client error", &Error{HTTPStatus: 400}, false},
		{"not found", &Error{HTTPStatus: 404}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
