package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestRequest(method, rawURL string) *Request {
	u, err := url.Parse(rawURL)
	if err != nil {
		panic(err)
	}
	return &Request{Method: method, URL: u, Header: make(http.Header)}
}

func respondWith(status int) Handler {
	return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		return &Response{StatusCode: status, Header: make(http.Header)}, nil
	})
}

func decline() Handler {
	return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		return nil, nil
	})
}

func TestExecuteFirstMatchWins(t *testing.T) {
	mockLog := ldlogtest.NewMockLog()
	req := makeTestRequest("GET", "http://example.com/thing")

	resp, err := Execute(context.Background(), req,
		[]Handler{decline(), respondWith(201), respondWith(500)}, mockLog.Loggers)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 201, resp.StatusCode)
}

func TestExecuteAllDecline(t *testing.T) {
	mockLog := ldlogtest.NewMockLog()
	req := makeTestRequest("GET", "http://example.com/thing")

	resp, err := Execute(context.Background(), req, []Handler{decline(), decline()}, mockLog.Loggers)

	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestExecuteEmptyListDeclines(t *testing.T) {
	resp, err := Execute(context.Background(), makeTestRequest("GET", "http://example.com/"),
		nil, ldlog.NewDisabledLoggers())

	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestExecuteHandlerErrorAborts(t *testing.T) {
	fakeError := errors.New("sorry")
	failing := HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		return nil, fakeError
	})

	resp, err := Execute(context.Background(), makeTestRequest("GET", "http://example.com/"),
		[]Handler{failing, respondWith(200)}, ldlog.NewDisabledLoggers())

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, fakeError)
}

func TestSetOrdering(t *testing.T) {
	h1, h2, h3 := respondWith(1), respondWith(2), respondWith(3)

	s := NewSet(h2)
	s.Prepend(h1)
	s.Append(h3)

	items := s.Handlers()
	require.Len(t, items, 3)
	statusOf := func(h Handler) int {
		resp, _ := h.Attempt(context.Background(), makeTestRequest("GET", "http://example.com/"))
		return resp.StatusCode
	}
	assert.Equal(t, []int{1, 2, 3}, []int{statusOf(items[0]), statusOf(items[1]), statusOf(items[2])})
}

func TestSetReplace(t *testing.T) {
	s := NewSet(respondWith(1), respondWith(2))
	s.Replace(respondWith(9))
	assert.Equal(t, 1, s.Len())
}

func TestSetSnapshotIsACopy(t *testing.T) {
	s := NewSet(respondWith(1))
	snapshot := s.Handlers()
	s.Append(respondWith(2))
	assert.Len(t, snapshot, 1)
	assert.Equal(t, 2, s.Len())
}

func TestStaticRoute(t *testing.T) {
	route := &StaticRoute{
		Method:     "GET",
		Path:       "/ping",
		StatusCode: 200,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(`{"ok":true}`),
	}

	t.Run("matches method and path", func(t *testing.T) {
		resp, err := route.Attempt(context.Background(), makeTestRequest("GET", "http://anything.test/ping"))
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, `{"ok":true}`, string(resp.Body))
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	})

	t.Run("declines other path", func(t *testing.T) {
		resp, err := route.Attempt(context.Background(), makeTestRequest("GET", "http://anything.test/missing"))
		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("declines other method", func(t *testing.T) {
		resp, err := route.Attempt(context.Background(), makeTestRequest("POST", "http://anything.test/ping"))
		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("empty method matches anything", func(t *testing.T) {
		anyMethod := &StaticRoute{Path: "/ping"}
		resp, err := anyMethod.Attempt(context.Background(), makeTestRequest("DELETE", "http://anything.test/ping"))
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestRequestClone(t *testing.T) {
	req := makeTestRequest("POST", "http://example.com/data")
	req.Header.Set("X-Custom", "yes")
	req.Body = []byte("hello")

	c := req.Clone()
	c.Header.Set("X-Custom", "no")
	c.Body[0] = 'j'
	c.URL.Path = "/other"

	assert.Equal(t, "yes", req.Header.Get("X-Custom"))
	assert.Equal(t, "hello", string(req.Body))
	assert.Equal(t, "/data", req.URL.Path)
}
