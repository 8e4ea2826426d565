package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/BergomiStore/bergomi_store/internal/apiclient"
	"github.com/BergomiStore/bergomi_store/internal/editor"
)

// FailureClass buckets write-path failures for reporting.
type FailureClass int

const (
	FailureNone FailureClass = iota
	FailureValidation
	FailureUnreachable
	FailureRejected
	FailureUnexpected
)

func (f FailureClass) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureValidation:
		return "validation"
	case FailureUnreachable:
		return "unreachable"
	case FailureRejected:
		return "rejected"
	default:
		return "unexpected"
	}
}

// Messages shown to the admin.
const (
	MsgServerNotRunning = "Backend server is not running! Please start the API server and try again."
	MsgUnknownServer    = "Unknown server error"
)

const bodyExcerpt = 200

// Classify maps err to its failure class.
func Classify(err error) FailureClass {
	if err == nil {
		return FailureNone
	}
	var ve *editor.ValidationError
	if errors.As(err, &ve) {
		return FailureValidation
	}
	var ue *apiclient.UnreachableError
	if errors.As(err, &ue) {
		return FailureUnreachable
	}
	var ae *apiclient.APIError
	if errors.As(err, &ae) {
		return FailureRejected
	}
	return FailureUnexpected
}

// Describe renders err as the message the admin sees.
func Describe(err error) string {
	switch Classify(err) {
	case FailureNone:
		return ""
	case FailureValidation:
		var ve *editor.ValidationError
		errors.As(err, &ve)
		return ve.Message
	case FailureUnreachable:
		return MsgServerNotRunning
	case FailureRejected:
		var ae *apiclient.APIError
		errors.As(err, &ae)
		return describeRejected(ae)
	default:
		return "Unexpected error: " + err.Error()
	}
}

func describeRejected(ae *apiclient.APIError) string {
	if ae.Detail != "" {
		return "Error: " + ae.Detail
	}
	if msgs := ae.Messages(); len(msgs) > 0 {
		return "Validation errors:\n" + strings.Join(msgs, "\n")
	}
	body := strings.TrimSpace(string(ae.Body))
	if body == "" {
		if ae.StatusCode >= http.StatusInternalServerError {
			return fmt.Sprintf("Server error (%d)", ae.StatusCode)
		}
		return MsgUnknownServer
	}
	if len(body) > bodyExcerpt {
		body = body[:bodyExcerpt]
	}
	return fmt.Sprintf("Server error (%d): %s", ae.StatusCode, body)
}
