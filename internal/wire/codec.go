package wire

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/netmock/relay/handlers"
)

// IsForwardedRequest reports whether an incoming request carries the relay
// accept marker. Forwarded requests are disambiguated by this marker, never by
// path.
func IsForwardedRequest(req *http.Request) bool {
	return req.Header.Get(AcceptHeader) == AcceptValue
}

// EncodeRequest builds the HTTP request that carries an abstract request to
// the relay server at serverURL. The original method, path, headers, and body
// are preserved; the wire attributes ride in headers.
func EncodeRequest(serverURL string, info ForwardedInfo, abstract *handlers.Request) (*http.Request, error) {
	target := strings.TrimSuffix(serverURL, "/") + abstract.URL.RequestURI()
	var body io.Reader
	if len(abstract.Body) > 0 {
		body = bytes.NewReader(abstract.Body)
	}
	req, err := http.NewRequest(abstract.Method, target, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range abstract.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set(AcceptHeader, AcceptValue)
	req.Header.Set(RequestIDHeader, info.RequestID)
	req.Header.Set(RequestURLHeader, abstract.URL.String())
	if id, ok := info.BoundaryID.Get(); ok {
		req.Header.Set(BoundaryIDHeader, id)
	}
	return req, nil
}

// DecodeRequest reconstructs the wire attributes and the abstract request from
// an incoming forwarded request. Missing required attributes produce
// ErrMissingRequestID / ErrMissingRequestURL.
func DecodeRequest(req *http.Request) (ForwardedInfo, *handlers.Request, error) {
	var info ForwardedInfo

	info.RequestID = req.Header.Get(RequestIDHeader)
	if info.RequestID == "" {
		return info, nil, ErrMissingRequestID
	}

	rawURL := req.Header.Get(RequestURLHeader)
	if rawURL == "" {
		return info, nil, ErrMissingRequestURL
	}
	u, err := parseAbsoluteURL(rawURL)
	if err != nil {
		return info, nil, err
	}
	info.RequestURL = u

	if id := req.Header.Get(BoundaryIDHeader); id != "" {
		info.BoundaryID = ldvalue.NewOptionalString(id)
	}

	var body []byte
	if req.Body != nil {
		body, err = io.ReadAll(req.Body)
		if err != nil {
			return info, nil, err
		}
	}

	header := req.Header.Clone()
	for _, h := range []string{AcceptHeader, RequestIDHeader, RequestURLHeader, BoundaryIDHeader} {
		header.Del(h)
	}

	abstract := &handlers.Request{
		Method: req.Method,
		URL:    u,
		Header: header,
		Body:   body,
	}
	return info, abstract, nil
}

// WriteResponse writes a synthesized response back over the wire verbatim.
func WriteResponse(w http.ResponseWriter, resp *handlers.Response) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}

// WriteUnhandled writes the "no handler matched" wire status.
func WriteUnhandled(w http.ResponseWriter) {
	w.Header().Set(UnhandledHeader, UnhandledValue)
	w.WriteHeader(http.StatusNotFound)
}

// IsUnhandledResponse reports whether a wire reply means "no handler matched"
// as opposed to a handler-synthesized response.
func IsUnhandledResponse(resp *http.Response) bool {
	return resp.Header.Get(UnhandledHeader) == UnhandledValue
}

// DecodeResponse reconstructs an abstract response from a wire reply.
func DecodeResponse(resp *http.Response) (*handlers.Response, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	header := resp.Header.Clone()
	header.Del(UnhandledHeader)
	return &handlers.Response{
		StatusCode: resp.StatusCode,
		Header:     header,
		Body:       body,
	}, nil
}
