// Package sharedtest provides helper functions and fixtures used by tests
// throughout the relay. Non-test code must not import it.
package sharedtest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
)

// BuildRequest is a simple shortcut for creating a request that may or may not
// have a body.
func BuildRequest(method, url string, body []byte, headers http.Header) *http.Request {
	var bodyBuffer io.Reader
	if body != nil {
		bodyBuffer = bytes.NewBuffer(body)
	}
	r, err := http.NewRequest(method, url, bodyBuffer)
	if err != nil {
		panic(err)
	}
	if headers != nil {
		r.Header = headers
	}
	return r
}

// DoRequest is a shortcut for executing an endpoint handler against a request
// and getting the response.
func DoRequest(req *http.Request, handler http.Handler) (*http.Response, []byte) {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	result := w.Result()
	var body []byte
	if result.Body != nil {
		body, _ = io.ReadAll(result.Body)
		_ = result.Body.Close()
	}
	return result, body
}
