package services

import (
	"context"

	"github.com/taskforge/backend/internal/metrics"
	taskUC "github.com/taskforge/backend/usecase/task"
)

// InstrumentedGenerator decorates a title generator with call metrics.
type InstrumentedGenerator struct {
	inner   taskUC.TitleGenerator
	metrics *metrics.Metrics
}

func NewInstrumentedGenerator(inner taskUC.TitleGenerator, m *metrics.Metrics) *InstrumentedGenerator {
	return &InstrumentedGenerator{inner: inner, metrics: m}
}

func (g *InstrumentedGenerator) Generate(ctx context.Context, topic string) ([]string, error) {
	titles, err := g.inner.Generate(ctx, topic)
	if g.metrics != nil {
		g.metrics.ObserveGeneration(err)
	}
	return titles, err
}

var _ taskUC.TitleGenerator = (*InstrumentedGenerator)(nil)
