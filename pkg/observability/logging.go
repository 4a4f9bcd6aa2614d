package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/cmdbot/pkg/domain"
)

// LogHooks logs command lifecycle changes at debug level. Per-tick execute
// events are not logged.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandInitialize: func(ctx context.Context, e *domain.CommandEvent) {
			logger.DebugContext(ctx, "command_initialize", "command", e.Command, "tick", e.Tick, "requirements", e.Requirements)
		},
		OnCommandFinish: func(ctx context.Context, e *domain.CommandEvent) {
			logger.DebugContext(ctx, "command_finish", "command", e.Command, "tick", e.Tick)
		},
		OnCommandInterrupt: func(ctx context.Context, e *domain.CommandEvent) {
			logger.DebugContext(ctx, "command_interrupt", "command", e.Command, "tick", e.Tick)
		},
	}
}
