package runtime

import (
	"log/slog"

	"github.com/aretw0/cmdbot/pkg/domain"
)

// Option defines a functional option for configuring the Scheduler.
type Option func(*Scheduler)

// WithLogger sets a structured logger for the scheduler.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
// Calling it more than once merges the hooks in order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Scheduler) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithMode sets the initial mode. The default is disabled.
func WithMode(m domain.Mode) Option {
	return func(s *Scheduler) {
		s.mode = m
	}
}
