package errors

import (
	"encoding/json"
	stderrors "errors"
	"strings"
)

// upstreamPayload covers the common JSON error shapes services return:
// an enveloped {"error": {"code", "message"}} object, a flat {"message"},
// or a flat {"detail"} / {"error": "..."} string.
type upstreamPayload struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
	Detail  string          `json:"detail"`
}

type upstreamBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseErrorBody extracts a human-readable message from an upstream error
// response body. Returns false when the body carries no recognizable
// error payload.
func ParseErrorBody(body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}

	var payload upstreamPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}

	if len(payload.Error) > 0 {
		var nested upstreamBody
		if err := json.Unmarshal(payload.Error, &nested); err == nil && nested.Message != "" {
			if nested.Code != "" {
				return nested.Code + ": " + nested.Message, true
			}
			return nested.Message, true
		}
		var flat string
		if err := json.Unmarshal(payload.Error, &flat); err == nil && strings.TrimSpace(flat) != "" {
			return flat, true
		}
	}
	if payload.Message != "" {
		return payload.Message, true
	}
	if payload.Detail != "" {
		return payload.Detail, true
	}
	return "", false
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
