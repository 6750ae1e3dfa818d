// Package expiry periodically marks pending verification requests whose
// expiry date has passed as Expired.
package expiry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
)

// Expirer is satisfied by the portfolio service.
type Expirer interface {
	ExpireStaleRequests(ctx context.Context) (int, error)
}

// Sweeper runs Expirer on a fixed interval.
type Sweeper struct {
	expirer  Expirer
	interval time.Duration
	clock    func() time.Time
	logger   *slog.Logger
}

type Option func(*Sweeper)

// WithInterval overrides the sweep interval when greater than zero.
func WithInterval(interval time.Duration) Option {
	return func(s *Sweeper) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now as the sweep's notion of the current time.
func WithClock(clock func() time.Time) Option {
	return func(s *Sweeper) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func New(expirer Expirer, opts ...Option) (*Sweeper, error) {
	if expirer == nil {
		return nil, errors.New("expirer is required")
	}
	s := &Sweeper{
		expirer:  expirer,
		interval: time.Hour,
		clock:    time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Start sweeps every interval until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "request expiry sweeper started", "interval", s.interval.String())
	for {
		select {
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.logger.ErrorContext(ctx, "request expiry sweep failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce performs a single sweep and returns how many requests expired.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	ctx = requestcontext.WithTime(ctx, s.clock())
	return s.expirer.ExpireStaleRequests(ctx)
}
