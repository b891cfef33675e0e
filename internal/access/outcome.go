package access

import "net/http"

type RejectionKind string

const (
	RejectionBadRequest RejectionKind = "bad_request"
	RejectionForbidden  RejectionKind = "forbidden"
)

// Outcome is the structured result of a resource validator. Failures
// carry a kind and a message instead of crossing the boundary as
// errors; the HTTP layer maps them onto status codes.
type Outcome struct {
	OK      bool
	Kind    RejectionKind
	Message string
}

func Pass() Outcome {
	return Outcome{OK: true}
}

func RejectBadRequest(message string) Outcome {
	return Outcome{Kind: RejectionBadRequest, Message: message}
}

func RejectForbidden(message string) Outcome {
	return Outcome{Kind: RejectionForbidden, Message: message}
}

func (o Outcome) HTTPStatus() int {
	if o.OK {
		return http.StatusOK
	}
	if o.Kind == RejectionBadRequest {
		return http.StatusBadRequest
	}
	return http.StatusForbidden
}
