// Package handlers defines the abstract request/response model and the handler
// execution pipeline.
//
// The relay core treats a handler as an opaque unit that either synthesizes a
// response for a request or declines it. The actual matching logic (path
// patterns, query matching, and so on) is supplied by callers; this package
// only provides the ordered-list semantics and a minimal static route handler.
package handlers
