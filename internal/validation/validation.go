// Package validation checks harness configuration values and runtime
// assumptions, reporting failures with actionable remediation hints.
package validation

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Error represents a validation error with an actionable remediation hint.
type Error struct {
	Field       string
	Value       string
	Message     string
	Remediation string
}

func (e *Error) Error() string {
	if e.Remediation != "" {
		return fmt.Sprintf("%s: %s\nRemediation: %s", e.Field, e.Message, e.Remediation)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Required validates that a field is not empty.
func Required(field, value string) error {
	if value == "" {
		return &Error{
			Field:       field,
			Value:       value,
			Message:     "field is required but not set",
			Remediation: fmt.Sprintf("Set %s via environment variable or command-line flag", field),
		}
	}
	return nil
}

// Port validates a port number (1-65535).
func Port(field, value string) error {
	if value == "" {
		return nil // Empty values are handled by Required()
	}

	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return &Error{
			Field:       field,
			Value:       value,
			Message:     fmt.Sprintf("invalid port number: %q", value),
			Remediation: "Provide a valid port number between 1 and 65535",
		}
	}
	return nil
}

// URL validates a URL with an explicit scheme and host.
func URL(field, value string) error {
	if value == "" {
		return nil // Empty values are handled by Required()
	}

	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &Error{
			Field:       field,
			Value:       value,
			Message:     fmt.Sprintf("invalid URL: %q", value),
			Remediation: "Provide a valid URL with scheme and host (e.g., ws://127.0.0.1:8888/websocket)",
		}
	}
	return nil
}

// SocketAddr validates a container daemon address: either a unix:// socket
// path or a tcp:// host:port endpoint.
func SocketAddr(field, value string) error {
	if value == "" {
		return nil // Empty values are handled by Required()
	}

	u, err := url.Parse(value)
	if err != nil {
		return &Error{
			Field:       field,
			Value:       value,
			Message:     fmt.Sprintf("invalid daemon address: %q", value),
			Remediation: "Provide a unix:///path/to/daemon.sock or tcp://host:port address",
		}
	}

	switch u.Scheme {
	case "unix":
		if u.Path == "" {
			return &Error{
				Field:       field,
				Value:       value,
				Message:     fmt.Sprintf("unix address without a socket path: %q", value),
				Remediation: "Provide the socket path, e.g. unix:///var/run/docker.sock",
			}
		}
	case "tcp":
		if u.Hostname() == "" {
			return &Error{
				Field:       field,
				Value:       value,
				Message:     fmt.Sprintf("tcp address without a host: %q", value),
				Remediation: "Provide a host and port, e.g. tcp://127.0.0.1:2375",
			}
		}
		if port := u.Port(); port != "" {
			if err := Port(field, port); err != nil {
				return err
			}
		}
	default:
		return &Error{
			Field:       field,
			Value:       value,
			Message:     fmt.Sprintf("unsupported daemon address scheme: %q", u.Scheme),
			Remediation: "Use a unix:// or tcp:// address",
		}
	}
	return nil
}

// OneOf validates that a value is one of the allowed values.
func OneOf(field, value string, allowed []string) error {
	if value == "" {
		return nil // Empty values are handled by Required()
	}

	for _, a := range allowed {
		if value == a {
			return nil
		}
	}

	return &Error{
		Field:       field,
		Value:       value,
		Message:     fmt.Sprintf("invalid value: %q", value),
		Remediation: fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// Instance validates that value's dynamic type is exactly want. It returns
// nil on a match and a validation error otherwise; a nil value never
// matches.
func Instance(field string, value any, want reflect.Type) error {
	got := reflect.TypeOf(value)
	if got != nil && got == want {
		return nil
	}

	gotName := "nil"
	if got != nil {
		gotName = got.String()
	}
	wantName := "nil"
	if want != nil {
		wantName = want.String()
	}
	return &Error{
		Field:   field,
		Value:   fmt.Sprint(value),
		Message: fmt.Sprintf("%v is not a %s (got %s)", value, wantName, gotName),
	}
}

// Errors collects multiple validation errors.
type Errors []error

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed:\n%s", strings.Join(messages, "\n"))
}

// HasErrors returns true if there are any errors.
func (e Errors) HasErrors() bool {
	return len(e) > 0
}
