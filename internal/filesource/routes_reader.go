package filesource

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/netmock/relay/handlers"
)

// routesFile is the document shape of a routes file.
type routesFile struct {
	Routes []routeSpec `json:"routes"`
}

// routeSpec is one route entry. Body may be any JSON value: a string becomes
// the literal response body, anything else is serialized back to JSON.
type routeSpec struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    ldvalue.Value     `json:"body"`
}

func (r routeSpec) toHandler() *handlers.StaticRoute {
	header := make(http.Header)
	for k, v := range r.Headers {
		header.Set(k, v)
	}
	var body []byte
	switch r.Body.Type() {
	case ldvalue.NullType:
	case ldvalue.StringType:
		body = []byte(r.Body.StringValue())
	default:
		body = []byte(r.Body.JSONString())
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", "application/json")
		}
	}
	return &handlers.StaticRoute{
		Method:     r.Method,
		Path:       r.Path,
		StatusCode: r.Status,
		Header:     header,
		Body:       body,
	}
}

// readRoutesFile parses a routes file into a handler list. The file must
// exist, parse as JSON, and give every route a path.
func readRoutesFile(path string) ([]handlers.Handler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errCannotOpenRoutesFile(path, err)
	}

	var doc routesFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errRoutesFileFormat(path, err)
	}

	hs := make([]handlers.Handler, 0, len(doc.Routes))
	for i, spec := range doc.Routes {
		if spec.Path == "" {
			return nil, errRoutesFileFormat(path, errRouteMissingPath(i))
		}
		hs = append(hs, spec.toHandler())
	}
	return hs, nil
}
