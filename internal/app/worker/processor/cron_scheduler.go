package processor

import (
	"context"

	"honeymart/internal/app/worker/service"
	"honeymart/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronScheduler запускает периодическую сверку остатков по расписанию
type CronScheduler struct {
	cron     *cron.Cron
	stockSvc service.StockAlertServiceInterface
}

func NewCronScheduler(stockSvc service.StockAlertServiceInterface) *CronScheduler {
	c := cron.New(cron.WithSeconds())

	return &CronScheduler{
		cron:     c,
		stockSvc: stockSvc,
	}
}

func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("Cron job triggered: running stock sweep")

		if err := s.stockSvc.RunStockSweep(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to run stock sweep")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Msg("Cron scheduler started")

	// Первая сверка сразу при старте, чтобы не ждать расписания
	logger.Info().Msg("Performing initial stock sweep...")
	if err := s.stockSvc.RunStockSweep(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed initial stock sweep")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
