package pdf

import (
	"go.uber.org/zap"
	"pkt.systems/agenda"
)

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for font fallback and progress messages.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// WithClock replaces the wall clock used to decide today's date and the
// document creation time.
func WithClock(clock agenda.Clock) Option {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}
