/*
Package httpdeco has decorators for http.Handlers: request logs and
panic recovery. They are plain func(http.Handler) http.Handler, so they
can be applied with Decorate or used as chi middlewares.
*/
package httpdeco

import (
	"net/http"
)

// Decorator decorates http.Handlers.
type Decorator func(http.Handler) http.Handler

// Decorate applies a bunch of decorators to an http.Handler. The last
// decorator is the outermost one.
func Decorate(h http.Handler, dd ...Decorator) http.Handler {
	result := h

	for _, d := range dd {
		result = d(result)
	}

	return result
}
