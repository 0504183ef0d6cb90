package components

import (
	"context"
	"log/slog"

	"transfer-portal/internal/infra/dispatch"
	"transfer-portal/internal/pkg/clock"
	"transfer-portal/internal/pkg/config"
	"transfer-portal/internal/usecase/commands"

	"go.uber.org/fx"
)

var WebhookModule = fx.Module("webhook",
	fx.Provide(
		NewDispatcher,
		func(d *dispatch.Dispatcher) commands.EventEmitter { return d },
	),
	fx.Invoke(registerDispatcherShutdown),
)

func NewDispatcher(
	subs dispatch.SubscriptionStore,
	deliveries dispatch.DeliveryStore,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) *dispatch.Dispatcher {
	return dispatch.NewDispatcher(subs, deliveries, clk, cfg.Webhook, logger)
}

// registerDispatcherShutdown drains in-flight deliveries before the process
// exits so the audit trail stays complete.
func registerDispatcherShutdown(lc fx.Lifecycle, d *dispatch.Dispatcher) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			d.Wait()
			return nil
		},
	})
}
