// Package relay is the public entry point for the netmock relay: a loopback
// HTTP service that lets one process answer requests intercepted in another.
//
// The process that owns the mock definitions creates a Relay and calls Listen;
// intercepting processes are given the relay's URL and use a Client to forward
// each intercepted request. Handlers registered on the Relay (or on a Boundary
// created from it) decide whether to synthesize a response.
package relay

import (
	"sync"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/netmock/relay/boundary"
	"github.com/netmock/relay/config"
	"github.com/netmock/relay/handlers"
	"github.com/netmock/relay/internal/filesource"
	"github.com/netmock/relay/internal/logging"
	"github.com/netmock/relay/internal/relayserver"
)

// Relay is the server-side facade. A process normally creates one Relay; the
// underlying socket is a process-wide singleton, so a second Relay that calls
// Listen attaches to the already-running server.
type Relay struct {
	config   config.Config
	loggers  ldlog.Loggers
	registry *boundary.Registry
	resolver *boundary.Resolver

	lock         sync.Mutex
	server       *relayserver.Server
	url          string
	programmatic []handlers.Handler
	fileRoutes   []handlers.Handler
	routeManager *filesource.RouteManager
}

// NewRelay creates a Relay with the given configuration and initial default
// handlers. It does not bind a socket until Listen is called.
func NewRelay(c config.Config, defaultHandlers ...handlers.Handler) (*Relay, error) {
	loggers := logging.MakeDefaultLoggers("Relay")
	if err := config.ValidateConfig(&c, loggers); err != nil {
		return nil, err
	}

	registry := boundary.NewRegistry()
	return &Relay{
		config:       c,
		loggers:      loggers,
		registry:     registry,
		resolver:     boundary.NewResolver(registry, defaultHandlers),
		programmatic: append([]handlers.Handler(nil), defaultHandlers...),
	}, nil
}

// Listen starts the relay server and returns its base URL. If this process
// already has a running relay server, Listen attaches to it instead of
// starting a second one. Calling Listen on an already-listening Relay just
// returns the URL.
func (r *Relay) Listen() (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.server != nil {
		return r.url, nil
	}

	server, url, err := relayserver.Acquire(func() *relayserver.Server {
		return relayserver.New(r.registry, r.resolver, r.loggers)
	})
	if err != nil {
		return "", err
	}
	r.server = server
	r.url = url

	if path := r.config.Server.RoutesFile; path != "" && r.routeManager == nil {
		rm, err := filesource.NewRouteManager(path, routeUpdateFunc(r.setFileRoutes), 0, r.loggers)
		if err != nil {
			r.server = nil
			r.url = ""
			_ = relayserver.Release()
			return "", err
		}
		r.routeManager = rm
	}

	return r.url, nil
}

// URL returns the running server's base URL, or ErrNotInitialized if Listen
// has not succeeded.
func (r *Relay) URL() (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.server == nil {
		return "", ErrNotInitialized
	}
	return r.url, nil
}

// Close shuts down the relay server and discards all registered boundaries.
// Closing a Relay that is not listening is a no-op.
func (r *Relay) Close() error {
	r.lock.Lock()
	rm := r.routeManager
	wasListening := r.server != nil
	r.server = nil
	r.url = ""
	r.routeManager = nil
	r.lock.Unlock()

	if rm != nil {
		rm.Close()
	}
	if !wasListening {
		return nil
	}
	return relayserver.Release()
}

// NewBoundary registers a new boundary whose handler list starts as the given
// handlers. Requests forwarded under this boundary's ID see only its handlers,
// never the relay's defaults. The relay must be listening.
func (r *Relay) NewBoundary(initial ...handlers.Handler) (*boundary.Context, error) {
	r.lock.Lock()
	server := r.server
	url := r.url
	r.lock.Unlock()

	if server == nil {
		return nil, ErrNotInitialized
	}
	b := boundary.NewContext(url, initial)
	if err := server.Registry().Register(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Use adds handlers to the front of the default handler list, so the newest
// registration wins when several handlers could match.
func (r *Relay) Use(hs ...handlers.Handler) {
	r.lock.Lock()
	r.programmatic = append(append([]handlers.Handler(nil), hs...), r.programmatic...)
	r.lock.Unlock()
	r.rebuildDefaults()
}

// setFileRoutes replaces the routes-file portion of the default handler list.
// Programmatic handlers always run ahead of file routes.
func (r *Relay) setFileRoutes(routes []handlers.Handler) {
	r.lock.Lock()
	r.fileRoutes = routes
	r.lock.Unlock()
	r.rebuildDefaults()
}

func (r *Relay) rebuildDefaults() {
	r.lock.Lock()
	combined := make([]handlers.Handler, 0, len(r.programmatic)+len(r.fileRoutes))
	combined = append(combined, r.programmatic...)
	combined = append(combined, r.fileRoutes...)
	set := r.resolver.DefaultSet()
	if r.server != nil {
		set = r.server.DefaultSet()
	}
	r.lock.Unlock()
	set.Replace(combined...)
}

// routeUpdateFunc adapts a function to the filesource.UpdateHandler interface.
type routeUpdateFunc func(routes []handlers.Handler)

func (f routeUpdateFunc) UpdateRoutes(routes []handlers.Handler) { f(routes) }
