package maintenance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

const (
	DefaultSchedule = "@every 5m"
	DefaultIdle     = 2 * time.Hour
)

var ErrInvalidSchedule = errors.New("invalid sweep schedule")

// Sweepable discards sessions idle for longer than idle and reports how many
// went away. *notifications.Registry satisfies it.
type Sweepable interface {
	Sweep(idle time.Duration) int
}

// Sweeper periodically drops idle sessions so their stores and streams do
// not outlive the browser tab.
type Sweeper struct {
	target   Sweepable
	cron     *cron.Cron
	schedule string
	idle     time.Duration
	logger   *slog.Logger
}

type Option func(*Sweeper)

// WithCron injects a preconfigured scheduler, mostly for tests.
func WithCron(c *cron.Cron) Option {
	return func(s *Sweeper) {
		if c != nil {
			s.cron = c
		}
	}
}

// WithSchedule sets the cron spec, e.g. "@every 1m" or "*/10 * * * *".
func WithSchedule(spec string) Option {
	return func(s *Sweeper) {
		if spec != "" {
			s.schedule = spec
		}
	}
}

func WithIdle(d time.Duration) Option {
	return func(s *Sweeper) {
		if d > 0 {
			s.idle = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Sweeper) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewSweeper(target Sweepable, opts ...Option) *Sweeper {
	s := &Sweeper{
		target:   target,
		schedule: DefaultSchedule,
		idle:     DefaultIdle,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cron == nil {
		s.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}
	return s
}

// Start registers the sweep job and launches the scheduler.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return errors.Join(ErrInvalidSchedule, err)
	}
	s.cron.Start()

	s.logger.Info("Session sweeper started",
		logger.Component("maintenance"),
		slog.String("schedule", s.schedule),
		logger.Duration(s.idle),
	)
	return nil
}

// Stop halts the scheduler and waits for a running sweep or until ctx is
// done.
func (s *Sweeper) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce sweeps immediately and returns the number of discarded sessions.
func (s *Sweeper) RunOnce(ctx context.Context) int {
	removed := s.target.Sweep(s.idle)
	if removed > 0 {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "Idle sessions swept",
			logger.Component("maintenance"),
			slog.Int("removed", removed),
		)
	}
	return removed
}
