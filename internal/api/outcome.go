package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// OutcomeKind labels the result of one dispatched request.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeTransportFailure
	OutcomeServerFailure
	OutcomeUnknownResponse
	OutcomeDecodeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeTransportFailure:
		return "transport_failure"
	case OutcomeServerFailure:
		return "server_failure"
	case OutcomeUnknownResponse:
		return "unknown_response"
	case OutcomeDecodeFailure:
		return "decode_failure"
	default:
		return "invalid"
	}
}

// successStatus lists the status codes treated as success. Everything else,
// including 1xx and 304, is a server failure.
var successStatus = map[int]bool{
	http.StatusOK:                   true,
	http.StatusCreated:              true,
	http.StatusAccepted:             true,
	http.StatusNonAuthoritativeInfo: true,
	http.StatusNoContent:            true,
	http.StatusResetContent:         true,
}

// IsSuccessStatus reports whether code is in the success table.
func IsSuccessStatus(code int) bool {
	return successStatus[code]
}

// Outcome is the classified result of a request. Only the fields relevant
// to Kind are set.
type Outcome struct {
	Kind       OutcomeKind
	StatusCode int
	Header     http.Header
	Body       []byte
	Err        error
}

// Classify labels a transport result. A transport error always wins over
// any status that came with it.
func Classify(resp *Response, err error) Outcome {
	if err != nil {
		return Outcome{Kind: OutcomeTransportFailure, Err: err}
	}
	if resp == nil || (resp.StatusCode == 0 && resp.Body == nil) {
		return Outcome{Kind: OutcomeUnknownResponse}
	}
	if resp.StatusCode != 0 && !IsSuccessStatus(resp.StatusCode) {
		return Outcome{
			Kind:       OutcomeServerFailure,
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       resp.Body,
		}
	}
	return Outcome{
		Kind:       OutcomeSuccess,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}
}

// AsError converts a failed outcome into the typed error returned to callers.
// It returns nil for a success.
func (o Outcome) AsError(req *Request) error {
	var method, url string
	if req != nil {
		method, url = req.Method, req.URL
	}
	switch o.Kind {
	case OutcomeSuccess:
		return nil
	case OutcomeTransportFailure:
		return &TransportError{Method: method, URL: url, Err: o.Err}
	case OutcomeServerFailure:
		return &APIError{
			StatusCode: o.StatusCode,
			Body:       sanitizeErrorBody(string(o.Body)),
			RequestID:  requestIDFromHeader(o.Header),
		}
	case OutcomeDecodeFailure:
		return o.Err
	default:
		return &UnknownResponseError{Method: method, URL: url}
	}
}

func requestIDFromHeader(header http.Header) string {
	if header == nil {
		return ""
	}
	return strings.TrimSpace(header.Get("X-Request-Id"))
}

const redactedErrorBody = "API request failed (response body redacted for security)"

// sanitizeErrorBody keeps the human-readable messages of an error payload
// and drops everything else. Unsplash reports {"errors": ["..."]}; the
// OAuth endpoints use {"error": "...", "error_description": "..."}.
func sanitizeErrorBody(body string) string {
	var errResp struct {
		Errors           []string `json:"errors"`
		Error            string   `json:"error"`
		ErrorDescription string   `json:"error_description"`
	}
	if err := json.Unmarshal([]byte(body), &errResp); err != nil {
		return redactedErrorBody
	}

	switch {
	case len(errResp.Errors) > 0:
		return strings.Join(errResp.Errors, "; ")
	case errResp.ErrorDescription != "":
		return errResp.ErrorDescription
	case errResp.Error != "":
		return errResp.Error
	default:
		return redactedErrorBody
	}
}
