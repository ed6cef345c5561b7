// Package unsupported covers session-gated ATS families (Workday, Taleo and
// similar) that are not scraped. Fetch always returns no postings.
package unsupported

import (
	"context"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/logger"

	"go.uber.org/zap"
)

type Adapter struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Adapter {
	return &Adapter{log: logger.OrNop(log)}
}

func (a *Adapter) Fetch(_ context.Context, src domain.SourceDefinition, _ string) ([]domain.Posting, error) {
	a.log.Debug("source not scraped: unsupported ats",
		zap.String(logger.FieldSource, src.ID),
		zap.String("url", src.CareerPageURL))
	return nil, nil
}
