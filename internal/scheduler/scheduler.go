// Package scheduler runs periodic housekeeping tasks on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Task is one unit of periodic work. An error is logged and the task stays
// scheduled.
type Task func(ctx context.Context) error

// Scheduler owns a cron instance and the named tasks registered on it.
type Scheduler struct {
	cron   *cron.Cron
	names  []string
	logger *slog.Logger

	// ctx is handed to tasks once Run starts.
	ctx context.Context
}

// NewScheduler creates an idle scheduler. Tasks run on cron's own goroutines.
func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cronLogger{logger: logger})),
		logger: logger,
		ctx:    context.Background(),
	}
}

// AddTask registers fn under name on spec (standard 5-field cron or
// descriptors such as "@every 1m").
func (s *Scheduler) AddTask(name, spec string, fn Task) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := fn(s.ctx); err != nil {
			s.logger.Error("scheduled task failed", "task", name, "error", err)
			return
		}
		s.logger.Debug("scheduled task done", "task", name)
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	s.names = append(s.names, name)
	return nil
}

// Tasks returns the registered task names in registration order.
func (s *Scheduler) Tasks() []string {
	return append([]string(nil), s.names...)
}

// Run starts the cron loop and blocks until ctx is cancelled, then stops cron
// and waits for running tasks. It returns nil on graceful shutdown.
func (s *Scheduler) Run(ctx context.Context) error {
	s.ctx = ctx
	s.logger.Info("starting scheduler", "tasks", len(s.names))
	s.cron.Start()

	<-ctx.Done()
	s.logger.Info("shutting down scheduler")
	<-s.cron.Stop().Done()
	return nil
}

// cronLogger adapts slog to cron's logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
