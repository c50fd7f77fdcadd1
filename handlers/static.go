package handlers

import (
	"context"
	"net/http"
)

// StaticRoute is a minimal concrete handler: it matches on method and URL path
// only, and answers with a fixed response. More elaborate matching lives
// outside this module; StaticRoute exists so that file-defined routes and
// tests have something to run through the pipeline.
type StaticRoute struct {
	// Method is the HTTP method to match. An empty string matches any method.
	Method string

	// Path is the URL path to match, compared exactly.
	Path string

	// StatusCode is the response status; 0 means 200.
	StatusCode int

	// Header contains response headers to send, if any.
	Header http.Header

	// Body is the response body to send, if any.
	Body []byte
}

// Attempt matches the request against the route and returns the fixed
// response, or declines.
func (s *StaticRoute) Attempt(ctx context.Context, req *Request) (*Response, error) {
	if s.Method != "" && s.Method != req.Method {
		return nil, nil
	}
	if req.URL == nil || req.URL.Path != s.Path {
		return nil, nil
	}
	status := s.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	resp := &Response{
		StatusCode: status,
		Header:     s.Header.Clone(),
		Body:       append([]byte(nil), s.Body...),
	}
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	return resp, nil
}
