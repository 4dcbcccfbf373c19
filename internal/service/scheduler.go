package service

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// JobScheduler implements ports.TaskScheduler on top of gocron.
type JobScheduler struct {
	sched gocron.Scheduler
	log   zerolog.Logger
}

// NewJobScheduler creates a scheduler. Call Start before jobs can run.
func NewJobScheduler(log zerolog.Logger) (*JobScheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLogger(gocronLogger{log: log}))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &JobScheduler{sched: sched, log: log}, nil
}

// Start begins running scheduled jobs.
func (s *JobScheduler) Start() {
	s.sched.Start()
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *JobScheduler) Shutdown() error {
	return s.sched.Shutdown()
}

// After runs task once after delay.
func (s *JobScheduler) After(name string, delay time.Duration, task func()) error {
	start := gocron.OneTimeJobStartImmediately()
	if delay > 0 {
		start = gocron.OneTimeJobStartDateTime(time.Now().Add(delay))
	}

	_, err := s.sched.NewJob(
		gocron.OneTimeJob(start),
		gocron.NewTask(task),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

// Every runs task at a fixed interval.
func (s *JobScheduler) Every(name string, interval time.Duration, task func()) error {
	_, err := s.sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

// gocronLogger routes scheduler logs into zerolog.
type gocronLogger struct {
	log zerolog.Logger
}

func (l gocronLogger) Debug(msg string, args ...any) { l.log.Debug().Fields(args).Msg(msg) }
func (l gocronLogger) Info(msg string, args ...any)  { l.log.Info().Fields(args).Msg(msg) }
func (l gocronLogger) Warn(msg string, args ...any)  { l.log.Warn().Fields(args).Msg(msg) }
func (l gocronLogger) Error(msg string, args ...any) { l.log.Error().Fields(args).Msg(msg) }
