package handlers

import (
	"context"
	"fmt"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

func errHandlerFailed(index int, err error) error {
	return fmt.Errorf("handler at position %d failed: %w", index, err)
}

// Execute runs the ordered handler list against the request. It returns the
// first synthesized response, or nil if every handler declined. A handler
// error stops execution immediately.
func Execute(ctx context.Context, req *Request, hs []Handler, loggers ldlog.Loggers) (*Response, error) {
	for i, h := range hs {
		resp, err := h.Attempt(ctx, req)
		if err != nil {
			return nil, errHandlerFailed(i, err)
		}
		if resp != nil {
			loggers.Debugf("Request %s %s matched handler at position %d", req.Method, req.URL, i)
			return resp, nil
		}
	}
	loggers.Debugf("Request %s %s did not match any of %d handlers", req.Method, req.URL, len(hs))
	return nil, nil
}
