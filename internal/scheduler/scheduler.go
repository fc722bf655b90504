package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/sleeperboard/internal/config"
	"github.com/omarshaarawi/sleeperboard/internal/service"
)

type FantasyService interface {
	Refresh(ctx context.Context) error
	GetWeeklyReport() (string, error)
}

type Scheduler struct {
	s              gocron.Scheduler
	ctx            context.Context
	cfg            config.Schedule
	fantasyService FantasyService
	sendMessage    func(string) error
}

// NewScheduler builds the job scheduler. sendMessage may be nil, in which
// case the weekly report job is not registered.
func NewScheduler(ctx context.Context, cfg config.Schedule, fantasyService FantasyService, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", cfg.Timezone, err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:              s,
		ctx:            ctx,
		cfg:            cfg,
		fantasyService: fantasyService,
		sendMessage:    sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	var err error

	// Initial load as soon as the scheduler starts
	_, err = s.s.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartImmediately()),
		gocron.NewTask(s.refresh),
	)
	if err != nil {
		return fmt.Errorf("failed to create initial load job: %w", err)
	}

	_, err = s.s.NewJob(
		gocron.CronJob(s.cfg.RefreshCron, false),
		gocron.NewTask(s.refresh),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}

	if s.sendMessage != nil {
		// Weekly recap - Tuesday 7:30, after Monday night is final
		_, err = s.s.NewJob(
			gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
			gocron.NewTask(s.sendWeeklyReport),
		)
		if err != nil {
			return fmt.Errorf("failed to create weekly report job: %w", err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) refresh() {
	err := s.fantasyService.Refresh(s.ctx)
	if errors.Is(err, service.ErrRefreshInProgress) {
		slog.Info("Scheduled refresh skipped, load already in flight")
		return
	}
	if err != nil {
		slog.Error("Scheduled refresh failed", "error", err)
	}
}

// sendWeeklyReport reloads before posting so the recap reflects final stats.
// A failed reload skips the post rather than recapping last cycle's data.
func (s *Scheduler) sendWeeklyReport() {
	if err := s.fantasyService.Refresh(s.ctx); err != nil && !errors.Is(err, service.ErrRefreshInProgress) {
		slog.Error("Skipping weekly report, refresh failed", "error", err)
		return
	}

	report, err := s.fantasyService.GetWeeklyReport()
	if err != nil {
		slog.Error("Failed to get weekly report", "error", err)
		return
	}
	if err := s.sendMessage(report); err != nil {
		slog.Error("Failed to send weekly report", "error", err)
	}
}
