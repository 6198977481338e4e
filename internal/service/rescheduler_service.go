package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RescheduleService periodically stretches upcoming events toward
// their successors so freed time is reclaimed without user action.
type RescheduleService struct {
	events *EventService
	logger *zap.Logger
	spec   string
	cron   *cron.Cron
}

// NewRescheduleService constructs the service. The spec uses standard
// five-field cron syntax.
func NewRescheduleService(events *EventService, logger *zap.Logger, spec string) *RescheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RescheduleService{events: events, logger: logger, spec: spec}
}

// Start registers the cron entry and begins the schedule.
func (s *RescheduleService) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("reschedule job started", zap.String("spec", s.spec))
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *RescheduleService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *RescheduleService) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	changed, err := s.events.Reschedule(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("reschedule run failed", zap.Error(err))
		return
	}
	if changed > 0 {
		s.logger.Info("reschedule run rewrote events", zap.Int("changed", changed))
	}
}
