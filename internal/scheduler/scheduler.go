package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tomasrg/jobhunter/internal/usecase"
)

// Scheduler runs the full pipeline on a fixed interval in the background.
type Scheduler struct {
	cron   *cron.Cron
	uc     *usecase.PipelineUsecase
	logger *zap.Logger
}

func New(uc *usecase.PipelineUsecase, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		uc:     uc,
		logger: logger,
	}
}

// Start schedules the pipeline every intervalHours hours. Overlapping runs
// are prevented by cron's default serial job execution per entry.
func (s *Scheduler) Start(intervalHours int) error {
	if intervalHours <= 0 {
		intervalHours = 24
	}
	spec := fmt.Sprintf("@every %dh", intervalHours)

	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		s.logger.Info("scheduled pipeline run starting")
		if _, err := s.uc.RunAll(ctx); err != nil {
			s.logger.Error("scheduled pipeline run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule pipeline: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("interval", spec))
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
