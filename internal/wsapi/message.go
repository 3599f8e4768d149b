// Package wsapi speaks the daemon's websocket API: JSON envelopes
// correlated by a per-request uuid, with a status code on every response.
package wsapi

import (
	"encoding/json"
	"fmt"
)

// StatusCode mirrors the daemon's API status codes. Zero is success;
// everything else is a failure described by the response's status string.
type StatusCode int

const (
	StatusSuccess StatusCode = iota
	StatusGeneralFailure
	StatusPermissionDenied
	StatusRateLimited
	StatusMalformed
	StatusInvalidCall
	StatusTimeout
	StatusSessionAborted
	StatusEntityNotFound
	StatusDatabaseError
	StatusUnknown
)

// ClientMessage is a request sent to the daemon.
type ClientMessage struct {
	UUID    string          `json:"uuid"`
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
}

// ServerMessage is a response or notification from the daemon.
type ServerMessage struct {
	StatusCode   StatusCode      `json:"status_code"`
	StatusString string          `json:"status_string"`
	UUID         string          `json:"uuid"`
	Type         string          `json:"type"`
	Content      json.RawMessage `json:"content"`
}

// Err returns nil for a successful response and an *APIError otherwise.
func (m *ServerMessage) Err() error {
	if m.StatusCode == StatusSuccess {
		return nil
	}
	return &APIError{Code: m.StatusCode, Status: m.StatusString}
}

// DecodeContent unmarshals the response content into v.
func (m *ServerMessage) DecodeContent(v any) error {
	if err := json.Unmarshal(m.Content, v); err != nil {
		return fmt.Errorf("decode %s content: %w", m.Type, err)
	}
	return nil
}

// APIError is a daemon-reported failure.
type APIError struct {
	Code   StatusCode
	Status string
}

func (e *APIError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("daemon API error (status %d)", e.Code)
	}
	return fmt.Sprintf("daemon API error (status %d): %s", e.Code, e.Status)
}
