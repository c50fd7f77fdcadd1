package relayserver

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/netmock/relay/boundary"
	"github.com/netmock/relay/handlers"
)

// Server is the relay server for one process. It owns the boundary registry,
// the singleton loopback socket, and the HTTP machinery that serves the wire
// protocol.
//
// A process runs at most one live Server (see Acquire/Release); Listen is
// idempotent so that re-entrant setup code does not leak sockets.
type Server struct {
	registry *boundary.Registry
	resolver *boundary.Resolver
	loggers  ldlog.Loggers

	lock       sync.Mutex
	listener   net.Listener
	httpServer *http.Server
	url        string
}

// New creates a Server. It does not bind a socket until Listen is called.
func New(registry *boundary.Registry, resolver *boundary.Resolver, loggers ldlog.Loggers) *Server {
	loggers.SetPrefix("[RelayServer]")
	return &Server{
		registry: registry,
		resolver: resolver,
		loggers:  loggers,
	}
}

// Listen binds the loopback socket on an OS-assigned ephemeral port and starts
// serving, or returns the existing address if the socket is already bound.
func (s *Server) Listen() (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.listener != nil {
		return s.url, nil
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("unable to bind relay listener: %w", err)
	}

	srv := &http.Server{Handler: s.makeHandler()}
	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.loggers.Errorf("Relay listener terminated unexpectedly: %s", err)
		}
	}()

	s.listener = listener
	s.httpServer = srv
	s.url = "http://" + listener.Addr().String()
	s.loggers.Infof("Listening on %s", s.url)
	return s.url, nil
}

// URL returns the server's base URL. It returns ErrNotInitialized before
// Listen has succeeded.
func (s *Server) URL() (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.listener == nil {
		return "", ErrNotInitialized
	}
	return s.url, nil
}

// Registry returns the boundary registry this server resolves against.
func (s *Server) Registry() *boundary.Registry {
	return s.registry
}

// DefaultSet returns the handler set used when a request names no boundary.
func (s *Server) DefaultSet() *handlers.Set {
	return s.resolver.DefaultSet()
}

// Close shuts the socket down if it is open (a no-op otherwise) and clears the
// boundary registry.
func (s *Server) Close() error {
	s.lock.Lock()
	srv := s.httpServer
	s.listener = nil
	s.httpServer = nil
	s.url = ""
	s.lock.Unlock()

	s.registry.Clear()

	if srv == nil {
		return nil
	}
	s.loggers.Info("Shutting down")
	return srv.Close()
}

// The process-wide singleton slot. Acquire and Release are the only code that
// touches it.
var (
	sharedLock    sync.Mutex
	sharedServer  *Server
	signalHandler sync.Once
)

// Acquire returns the process's live relay server, creating and starting one
// from the factory if none exists. The first successful acquire also installs
// a termination-signal handler that releases the server on SIGINT/SIGTERM.
func Acquire(factory func() *Server) (*Server, string, error) {
	sharedLock.Lock()
	defer sharedLock.Unlock()

	if sharedServer != nil {
		url, err := sharedServer.URL()
		return sharedServer, url, err
	}

	srv := factory()
	url, err := srv.Listen()
	if err != nil {
		return nil, "", err
	}
	sharedServer = srv

	signalHandler.Do(func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			for range sigCh {
				_ = Release()
			}
		}()
	})

	return srv, url, nil
}

// Release closes the process's live relay server, if any. Idempotent.
func Release() error {
	sharedLock.Lock()
	srv := sharedServer
	sharedServer = nil
	sharedLock.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Close()
}
