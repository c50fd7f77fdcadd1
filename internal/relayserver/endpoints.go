package relayserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/netmock/relay/boundary"
	"github.com/netmock/relay/handlers"
	"github.com/netmock/relay/internal/logging"
	"github.com/netmock/relay/internal/util"
	"github.com/netmock/relay/internal/version"
	"github.com/netmock/relay/internal/wire"
)

// handshakeHandler answers the liveness probe. It never touches handlers.
func (s *Server) handshakeHandler(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// lifeCycleEvent is the minimal shape we decode from a life-cycle payload.
// Full event semantics live outside the relay core; this endpoint only
// acknowledges receipt.
type lifeCycleEvent struct {
	Type string `json:"type"`
}

func (s *Server) lifeCycleEventsHandler(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err == nil && len(body) > 0 {
		var event lifeCycleEvent
		if json.Unmarshal(body, &event) == nil && event.Type != "" {
			s.loggers.Debugf("Received life-cycle event %q", event.Type)
		}
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) statusHandler(w http.ResponseWriter, req *http.Request) {
	resp := struct {
		Status     string `json:"status"`
		Version    string `json:"version"`
		Boundaries int    `json:"boundaries"`
	}{
		Status:     "healthy",
		Version:    version.Version,
		Boundaries: s.registry.Count(),
	}

	data, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// forwardedRequestHandler serves one forwarded interception: decode the wire
// attributes, resolve the applicable handler list, run the pipeline, and write
// back either the synthesized response or the unhandled status.
func (s *Server) forwardedRequestHandler(w http.ResponseWriter, req *http.Request) {
	info, abstract, err := wire.DecodeRequest(req)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(util.ErrorJSONMsg(err.Error()))
		return
	}

	boundaryID := boundary.ID(info.BoundaryID.StringValue())
	hs, err := s.resolver.ResolveHandlers(boundaryID)
	if err != nil {
		if errors.Is(err, boundary.ErrUnknownBoundary) {
			// an unknown boundary reference is a contract violation by the
			// client process, not a normal miss
			s.loggers.Errorf("Request %s referenced unknown boundary %s",
				info.RequestID, logging.TruncateID(string(boundaryID)))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write(util.ErrorJSONMsg(err.Error()))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(util.ErrorJSONMsg(err.Error()))
		return
	}

	resp, err := handlers.Execute(req.Context(), abstract, hs, s.loggers)
	if err != nil {
		s.loggers.Errorf("Request %s: %s", info.RequestID, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(util.ErrorJSONMsg(err.Error()))
		return
	}
	if resp == nil {
		wire.WriteUnhandled(w)
		return
	}
	wire.WriteResponse(w, resp)
}
