package deps

import (
	"github.com/and161185/pedidos/internal/clock"
	"github.com/and161185/pedidos/internal/metrics"
	"go.uber.org/zap"
)

type Deps struct {
	Logger  *zap.SugaredLogger
	Clock   clock.Clock
	Metrics *metrics.ServerMetrics
}

func NewDependencies(logger *zap.SugaredLogger) *Deps {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Deps{
		Logger:  logger,
		Clock:   clock.Real(),
		Metrics: metrics.NewServerMetrics(nil),
	}
}
