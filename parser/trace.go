package parser

import (
	"github.com/dhamidi/pcx/stream"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("pcx.parser")

// Trace wraps p so that every attempt and its outcome is logged at debug
// level under the "pcx.parser" logger. It does not change p's behavior.
func Trace[I, O any](name string, p Parser[I, O]) Parser[I, O] {
	return Func[I, O](func(s *stream.Stream[I]) (O, error) {
		start := s.Pos()
		log.Debugf("%s: attempt at %d", name, start)
		v, err := p.ParseIter(s)
		if err != nil {
			log.Debugf("%s: failed at %d: %s", name, s.Pos(), err)
			return v, err
		}
		log.Debugf("%s: matched %d..%d", name, start, s.Pos())
		return v, nil
	})
}
