// Package logging provides the leveled loggers used throughout the relay, and
// a debug-level request-logging middleware for the relay server.
package logging

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// MakeDefaultLoggers returns a Loggers instance configured with the standard
// output streams (debug/info/warn on stdout, error on stderr) and an optional
// category prefix.
func MakeDefaultLoggers(category string) ldlog.Loggers {
	loggers := ldlog.Loggers{}
	loggers.SetBaseLoggerForLevel(ldlog.Debug, makeLog(os.Stdout))
	loggers.SetBaseLoggerForLevel(ldlog.Info, makeLog(os.Stdout))
	loggers.SetBaseLoggerForLevel(ldlog.Warn, makeLog(os.Stdout))
	loggers.SetBaseLoggerForLevel(ldlog.Error, makeLog(os.Stderr))
	if category != "" {
		loggers.SetPrefix(fmt.Sprintf("[%s]", category))
	}
	return loggers
}

func makeLog(w io.Writer) *log.Logger {
	return log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds)
}

// TruncateID shortens an opaque ID for log output so that full boundary and
// request IDs do not clutter every line.
func TruncateID(id string) string {
	if len(id) > 8 {
		return id[:8] + "…"
	}
	return id
}

type loggingResponseWriter struct {
	writer       http.ResponseWriter
	statusCode   int
	bytesWritten uint64
}

func (w *loggingResponseWriter) Header() http.Header {
	return w.writer.Header()
}

func (w *loggingResponseWriter) Write(data []byte) (int, error) {
	if w.statusCode == 0 {
		w.WriteHeader(http.StatusOK)
	}
	w.bytesWritten += uint64(len(data))
	return w.writer.Write(data)
}

func (w *loggingResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.writer.WriteHeader(statusCode)
}

func (w *loggingResponseWriter) Flush() {
	if f, ok := w.writer.(http.Flusher); ok {
		f.Flush()
	}
}

// RequestLoggerMiddleware logs one line per served request at debug level.
// Enabled by the relay server only when the minimum log level is debug.
func RequestLoggerMiddleware(loggers ldlog.Loggers) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			wrapped := loggingResponseWriter{writer: w}
			next.ServeHTTP(&wrapped, req)
			if wrapped.statusCode == 0 {
				wrapped.statusCode = http.StatusOK
			}
			loggers.Debugf("Request: method=%s url=%s status=%d bytes=%d",
				req.Method, req.URL, wrapped.statusCode, wrapped.bytesWritten)
		})
	}
}
