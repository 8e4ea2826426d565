package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// UnreachableError means no HTTP response was received.
type UnreachableError struct {
	URL string
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("api unreachable at %s: %v", e.URL, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// APIError is a non-2xx response. The body is parsed as either
// {"detail": "..."} or {"field": ["message", ...]}.
type APIError struct {
	StatusCode  int
	Detail      string
	FieldErrors map[string][]string
	Body        []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	if len(e.FieldErrors) > 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, strings.Join(e.Messages(), "; "))
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Messages flattens field errors into "field: message" lines, sorted by field.
func (e *APIError) Messages() []string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var out []string
	for _, f := range fields {
		for _, msg := range e.FieldErrors[f] {
			out = append(out, f+": "+msg)
		}
	}
	return out
}

// IsNotFound reports a 404 response.
func (e *APIError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: body}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return e
	}
	if d, ok := raw["detail"]; ok {
		var s string
		if json.Unmarshal(d, &s) == nil {
			e.Detail = s
			return e
		}
	}

	e.FieldErrors = make(map[string][]string, len(raw))
	for field, v := range raw {
		var list []string
		if json.Unmarshal(v, &list) == nil {
			e.FieldErrors[field] = list
			continue
		}
		var s string
		if json.Unmarshal(v, &s) == nil {
			e.FieldErrors[field] = []string{s}
			continue
		}
		// nested errors (e.g. per-card) are kept as raw JSON
		e.FieldErrors[field] = []string{string(v)}
	}
	return e
}
