package flows

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Envelope is the wire envelope every authentication-boundary response
// carries: {success, message, data, code?}.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code,omitempty"`
}

// Responses larger than this are treated as protocol violations.
const maxEnvelopeBytes = 1 << 20

// DecodeEnvelope reads and decodes one response envelope from r.
func DecodeEnvelope(r io.Reader) (*Envelope, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxEnvelopeBytes))
	if err != nil {
		return nil, err
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// StatusClass buckets an HTTP status code for failure classification.
type StatusClass int

const (
	// StatusOK is an exported constant or variable used by the flow layer.
	StatusOK StatusClass = iota
	// StatusDenied is an exported constant or variable used by the flow layer.
	StatusDenied
	// StatusServerFailure is an exported constant or variable used by the flow layer.
	StatusServerFailure
	// StatusUnexpected is an exported constant or variable used by the flow layer.
	StatusUnexpected
)

// ClassifyStatus maps an HTTP status code onto its failure class.
func ClassifyStatus(code int) StatusClass {
	switch {
	case code >= 200 && code < 300:
		return StatusOK
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return StatusDenied
	case code >= 500:
		return StatusServerFailure
	default:
		return StatusUnexpected
	}
}

// ErrMissingDeps is returned when a flow is invoked without its client or URL.
var ErrMissingDeps = errors.New("flow dependencies incomplete")
