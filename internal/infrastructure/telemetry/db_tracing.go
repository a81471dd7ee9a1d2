package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterOtelGorm registers the otelgorm plugin so every GORM query
// becomes a child span of the surrounding request trace. Query variables
// are excluded from span attributes unless logFullSQL is set.
func RegisterOtelGorm(db *gorm.DB, p *Provider, logFullSQL bool, logger *zap.Logger) error {
	if p == nil || !p.Enabled() {
		logger.Debug("Telemetry disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName("postgresql"),
	}
	if !logFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled", zap.Bool("log_full_sql", logFullSQL))
	return nil
}
