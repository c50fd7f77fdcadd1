// Package boundary implements isolated logical execution scopes for the relay.
//
// A boundary is one scoped execution (typically one test) with its own mock
// handler list. All boundaries in a process share one relay server; the
// registry in this package is what keeps their handler state apart, and the
// ambient-context helpers are what let code deep inside a request-handling
// call chain discover which boundary it belongs to without parameter
// threading.
package boundary
