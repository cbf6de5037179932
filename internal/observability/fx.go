package observability

import (
	"github.com/fairmog/tagihin/internal/config"
	"github.com/fairmog/tagihin/internal/observability/logger"
	"github.com/fairmog/tagihin/internal/observability/tracing"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module wires logging and tracing for the API process.
var Module = fx.Module("observability",
	logger.Module,
	fx.Invoke(func(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) error {
		_, err := tracing.NewProvider(lc, cfg, log)
		return err
	}),
)
