package service

import "net/http"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	StatusCode int
	Wrapped    error
}

func (e HTTPError) Error() string {
	return e.Wrapped.Error()
}

func (e HTTPError) Unwrap() error {
	return e.Wrapped
}

func (e HTTPError) HTTPStatus() int {
	return e.StatusCode
}

func httpError(statusCode int, err error) HTTPError {
	return HTTPError{
		StatusCode: statusCode,
		Wrapped:    err,
	}
}

// upstreamError is used when the issuer could not be reached or answered with garbage.
func upstreamError(err error) HTTPError {
	return httpError(http.StatusBadGateway, err)
}
