package httpdeco

import (
	"net/http"
	"time"
)

// Logger knows how to log messages.
type Logger interface {
	Printf(string, ...interface{})
}

// WithLogs logs a line per request: method, URL, status, size of the
// body and how long it took to answer.
func WithLogs(l Logger) Decorator {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			verbose := &verboseResponseWriter{ResponseWriter: w}

			start := time.Now()
			h.ServeHTTP(verbose, r)
			elapsed := time.Since(start)

			if verbose.writeError != nil {
				l.Printf("%s %s - %d %dB %v %v", r.Method, r.URL,
					verbose.Status(), verbose.written, elapsed,
					verbose.writeError)
				return
			}

			l.Printf("%s %s - %d %dB %v", r.Method, r.URL,
				verbose.Status(), verbose.written, elapsed)
		})
	}
}

// WithRecover answers with a 500 the requests whose handler panics, and
// logs the panic, instead of letting the server drop the connection.
func WithRecover(l Logger) Decorator {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			verbose := &verboseResponseWriter{ResponseWriter: w}

			defer func() {
				p := recover()
				if p == nil {
					return
				}

				if p == http.ErrAbortHandler {
					panic(p)
				}

				l.Printf("panic serving %s %s: %v", r.Method, r.URL, p)

				if verbose.status == 0 {
					http.Error(verbose, http.StatusText(http.StatusInternalServerError),
						http.StatusInternalServerError)
				}
			}()

			h.ServeHTTP(verbose, r)
		})
	}
}

// VerboseResponseWriter wraps an http.ResponseWriter so you can
// inspect the status code, the size of the body and the write error
// after writing the response.
//
// Note this will hide optional methods in the http.ResponseWriter like
// http.Flusher or http.Hijacker.
type verboseResponseWriter struct {
	http.ResponseWriter
	status     int   // the status code set by the handler
	written    int   // bytes of the body written so far
	writeError error // the error returned by the last call to Write
}

// Status returns the status code of the response. Handlers that write
// nothing answer with a 200.
func (w *verboseResponseWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}

	return w.status
}

func (w *verboseResponseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}

	w.ResponseWriter.WriteHeader(status)
}

func (w *verboseResponseWriter) Write(b []byte) (int, error) {
	// If WriteHeader has not yet been called, Write sets
	// status to http.StatusOK before writing the data.
	if w.status == 0 {
		w.status = http.StatusOK
	}

	var n int
	n, w.writeError = w.ResponseWriter.Write(b)
	w.written += n

	return n, w.writeError
}
