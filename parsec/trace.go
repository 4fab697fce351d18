package parsec

import (
	"strings"

	"github.com/tliron/commonlog"
)

// Trace wraps p so that every run is logged at debug level under name.
// The result of p is returned unchanged.
func Trace[T any](log commonlog.Logger, name string, p Parser[T]) Parser[T] {
	return func(s State) Result[T] {
		if !log.AllowLevel(commonlog.Debug) {
			return p(s)
		}
		log.Debugf("%s: enter at %s", name, s)
		r := p(s)
		if r.ok {
			log.Debugf("%s: matched %s..%s", name, s, r.state)
		} else {
			log.Debugf("%s: failed at %s: %s", name, r.state, strings.Join(r.errors, "; "))
		}
		return r
	}
}
