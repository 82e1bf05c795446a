// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// OrphanStore is what the sweeper needs from the order repository
type OrphanStore interface {
	FindOrphanIDs(ctx context.Context, createdBefore time.Time) ([]uuid.UUID, error)
	DeleteItems(ctx context.Context, orderID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrphanSweeperConfig holds configuration for the orphaned-order sweep
type OrphanSweeperConfig struct {
	// Schedule is a cron expression or descriptor such as "@hourly"
	Schedule string
	// OlderThan keeps the sweep away from orders still being written
	OlderThan time.Duration
	// Timeout bounds a single run
	Timeout time.Duration
	// Location is the timezone cron expressions are evaluated in
	Location *time.Location
}

// DefaultOrphanSweeperConfig returns the default sweep configuration
func DefaultOrphanSweeperConfig() OrphanSweeperConfig {
	return OrphanSweeperConfig{
		Schedule:  "@hourly",
		OlderThan: time.Hour,
		Timeout:   time.Minute,
		Location:  time.UTC,
	}
}

// SweepResult summarizes one run
type SweepResult struct {
	Found   int
	Removed int
}

// OrphanSweeper removes orders whose item inserts never completed. Such
// headers can survive when the compensating delete itself failed.
type OrphanSweeper struct {
	config OrphanSweeperConfig
	store  OrphanStore
	logger *zap.Logger
	now    func() time.Time

	mu        sync.Mutex
	cron      *cron.Cron
	isRunning bool
}

// NewOrphanSweeper validates the schedule and builds a stopped sweeper
func NewOrphanSweeper(store OrphanStore, cfg OrphanSweeperConfig, logger *zap.Logger) (*OrphanSweeper, error) {
	if cfg.Schedule == "" || cfg.OlderThan <= 0 {
		return nil, ErrInvalidConfig
	}
	if _, err := cronParser.Parse(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("%w: schedule %q: %v", ErrInvalidConfig, cfg.Schedule, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrphanSweeper{
		config: cfg,
		store:  store,
		logger: logger.With(zap.String("job", "orphan_sweep")),
		now:    time.Now,
	}, nil
}

// Start registers the job and starts the cron loop
func (s *OrphanSweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return ErrSchedulerRunning
	}

	c := cron.New(
		cron.WithLocation(s.config.Location),
		cron.WithParser(cronParser),
		cron.WithChain(cron.Recover(cronLogger{s.logger}), cron.SkipIfStillRunning(cronLogger{s.logger})),
	)
	if _, err := c.AddFunc(s.config.Schedule, s.runScheduled); err != nil {
		return fmt.Errorf("failed to schedule orphan sweep: %w", err)
	}
	c.Start()

	s.cron = c
	s.isRunning = true
	s.logger.Info("Orphan sweeper started",
		zap.String("schedule", s.config.Schedule),
		zap.Duration("older_than", s.config.OlderThan),
	)
	return nil
}

// Stop halts the cron loop and waits for an in-flight run
func (s *OrphanSweeper) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	c := s.cron
	s.isRunning = false
	s.cron = nil
	s.mu.Unlock()

	<-c.Stop().Done()
	s.logger.Info("Orphan sweeper stopped")
}

// IsRunning reports whether the cron loop is active
func (s *OrphanSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *OrphanSweeper) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.Error("Orphan sweep failed", zap.Error(err))
	}
}

// RunOnce deletes every orphan older than the configured age. A failure on
// one order is logged and the sweep moves on; only the lookup error aborts.
func (s *OrphanSweeper) RunOnce(ctx context.Context) (SweepResult, error) {
	cutoff := s.now().Add(-s.config.OlderThan)

	ids, err := s.store.FindOrphanIDs(ctx, cutoff)
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to find orphaned orders: %w", err)
	}

	result := SweepResult{Found: len(ids)}
	for _, id := range ids {
		if err := s.store.DeleteItems(ctx, id); err != nil {
			s.logger.Warn("Failed to delete orphan items", zap.String("order_id", id.String()), zap.Error(err))
			continue
		}
		if err := s.store.Delete(ctx, id); err != nil {
			s.logger.Warn("Failed to delete orphan order", zap.String("order_id", id.String()), zap.Error(err))
			continue
		}
		result.Removed++
	}

	if result.Found > 0 {
		s.logger.Info("Orphan sweep finished",
			zap.Int("found", result.Found),
			zap.Int("removed", result.Removed),
		)
	}
	return result, nil
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	l *zap.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, zap.Any("details", keysAndValues))
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, zap.Error(err), zap.Any("details", keysAndValues))
}
