package testutil

import (
	"net/http"
	"time"

	"numcheck/pkg/requestcontext"
)

// WithClientIP adds client metadata to the request context.
// This simulates what the metadata middleware does for every request.
func WithClientIP(req *http.Request, clientIP string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), clientIP, req.UserAgent())
	return req.WithContext(ctx)
}

// WithRequestTime pins the request time seen by services.
func WithRequestTime(req *http.Request, at time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), at))
}

// WithRequestID sets the request ID normally assigned by middleware.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
