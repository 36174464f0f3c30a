package alert

import (
	"context"
	"time"

	"github.com/wpo70/RateEdge/internal/adapters"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultCheckInterval = 60 * time.Second

type Scheduler struct {
	alertRepo     adapters.AlertRepository
	rateRepo      adapters.RateRepository
	checkInterval time.Duration
	// -----
	sched gocron.Scheduler
}

func NewScheduler(alertRepo adapters.AlertRepository, rateRepo adapters.RateRepository, checkInterval time.Duration) *Scheduler {
	if checkInterval <= 0 {
		checkInterval = defaultCheckInterval
	}
	return &Scheduler{alertRepo: alertRepo, rateRepo: rateRepo, checkInterval: checkInterval}
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = scheduler

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if checkErr := CheckAlerts(jobCtx, execID, s.alertRepo, s.rateRepo); checkErr != nil {
			logrus.Errorf("Alert check job %s failed: %v", execID, checkErr)
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.checkInterval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}
