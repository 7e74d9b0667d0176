package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/giuliopb/surf-bot-whatsapp/internal/forecast"
)

// Sweeper periodically evicts stale hour buckets from the reply
// cache. The cache stays correct without it; the sweep only bounds
// memory growth.
type Sweeper struct {
	cron   *cron.Cron
	cache  *forecast.HourCache
	maxAge time.Duration
	logger *zap.Logger
}

func NewSweeper(cache *forecast.HourCache, maxAge time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		cache:  cache,
		maxAge: maxAge,
		logger: logger,
	}
}

func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.sweep); err != nil {
		return err
	}
	s.cron.Start()

	s.logger.Info("cache sweeper started", zap.Duration("max_age", s.maxAge))
	return nil
}

func (s *Sweeper) sweep() {
	cutoff := time.Now().UTC().Add(-s.maxAge)
	removed := s.cache.EvictBefore(cutoff)
	if removed > 0 {
		s.logger.Info("evicted stale cache buckets",
			zap.Int("entries", removed),
			zap.Time("cutoff", cutoff))
	}
}

// Stop halts the cron scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
