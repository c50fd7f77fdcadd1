package relayserver

import (
	"github.com/gorilla/mux"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/netmock/relay/internal/logging"
	"github.com/netmock/relay/internal/wire"
)

// makeHandler creates the router for all relay endpoints. Forwarded requests
// may use any path and method, so they are matched by the accept-marker header
// and must be registered ahead of the path-based routes.
func (s *Server) makeHandler() *mux.Router {
	router := mux.NewRouter()
	if s.loggers.GetMinLevel() == ldlog.Debug {
		router.Use(logging.RequestLoggerMiddleware(s.loggers))
	}

	router.PathPrefix("/").
		Headers(wire.AcceptHeader, wire.AcceptValue).
		HandlerFunc(s.forwardedRequestHandler)

	router.HandleFunc(wire.LifeCycleEventsPath, s.lifeCycleEventsHandler).Methods("POST")
	router.HandleFunc("/status", s.statusHandler).Methods("GET")
	router.HandleFunc("/", s.handshakeHandler).Methods("GET", "HEAD")

	return router
}
