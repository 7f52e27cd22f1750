package bootstrap

import (
	"context"
	"log/slog"

	"tablebook/internal/infra/events"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase/commands"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
)

var NATSModule = fx.Module("nats",
	fx.Provide(
		NewNATSConn,
		fx.Annotate(
			NewChangePublisher,
			fx.As(new(commands.ChangePublisher)),
		),
	),
)

// NewNATSConn returns nil when NATS is unconfigured or unreachable; the
// change publisher treats a nil connection as "events disabled".
func NewNATSConn(lc fx.Lifecycle, cfg config.Config) *nats.Conn {
	if cfg.NATS.URL == "" {
		slog.Info("nats not configured, change events disabled")
		return nil
	}

	conn, err := nats.Connect(cfg.NATS.URL, nats.Name("tablebook"))
	if err != nil {
		slog.Warn("nats unreachable, change events disabled", "url", cfg.NATS.URL, "error", err)
		return nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			conn.Drain() //nolint:errcheck
			return nil
		},
	})

	return conn
}

func NewChangePublisher(conn *nats.Conn, cfg config.Config) *events.Publisher {
	return events.NewPublisher(conn, cfg.NATS.SubjectPrefix)
}
