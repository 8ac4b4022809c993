// Package httpx defines the error taxonomy shared by the storefront's
// client-side components. Callers distinguish failure classes with
// errors.As rather than string matching.
package httpx

import "fmt"

// NetworkError wraps a transport-level failure: the request never produced
// an HTTP response.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response. Detail carries the server's message when
// one was present in the body.
type HTTPError struct {
	URL        string
	StatusCode int
	Detail     string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d from %s: %s", e.StatusCode, e.URL, e.Detail)
	}
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// NotFoundError marks a 404 for a specific resource so callers can render a
// dedicated "not found" view instead of a generic failure.
type NotFoundError struct {
	Resource string
	HTTPError
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found (%s)", e.Resource, e.URL)
}

// ValidationError is raised client-side before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}
