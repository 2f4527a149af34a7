package api

import (
	"context"
	"net/http"
)

// RequestBuilder turns an endpoint and its parameters into a signed
// request. It never fails; input validation is the caller's job.
type RequestBuilder interface {
	buildRequest(endpoint Endpoint, params Parameters) *Request
}

// Dispatcher sends a built request and classifies what came back.
//
// This is the only blocking step of a call. Implementations must not retry
// and must stop when ctx is cancelled.
type Dispatcher interface {
	dispatch(ctx context.Context, req *Request) Outcome
}

// Requester combines RequestBuilder and Dispatcher into the complete
// surface used by resource helpers.
//
// Resource helpers take a Requester rather than a *Client so tests can
// substitute a stub that records the endpoint and parameters it received:
//
//	type recordingRequester struct{ *Client; got []Endpoint }
//	func (r *recordingRequester) send(ctx context.Context, e Endpoint, p Parameters) (Outcome, error) {
//		r.got = append(r.got, e)
//		return r.Client.send(ctx, e, p)
//	}
type Requester interface {
	RequestBuilder
	Dispatcher

	// send builds, dispatches and classifies one call. A non-success
	// outcome is returned together with its typed error.
	send(ctx context.Context, endpoint Endpoint, params Parameters) (Outcome, error)

	// recordRateLimit stores the counters carried by a successful
	// response.
	recordRateLimit(h http.Header)
}
