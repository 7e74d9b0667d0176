package forecast

import (
	"context"
	"errors"
	"time"

	"github.com/giuliopb/surf-bot-whatsapp/internal/models"
	"github.com/giuliopb/surf-bot-whatsapp/internal/spots"
	"github.com/giuliopb/surf-bot-whatsapp/pkg/client"
	"go.uber.org/zap"
)

// MarineProvider is the primary point-forecast source.
type MarineProvider interface {
	Fetch(ctx context.Context, spot models.Spot, start, end time.Time) ([]models.HourlyRecord, error)
}

// FallbackSummarizer is the coarse secondary source consulted when the
// primary is unreachable, over quota, or returns no usable data.
type FallbackSummarizer interface {
	Fetch(ctx context.Context, spot models.Spot) (models.FallbackSummary, error)
}

// Service runs the forecast pipeline: cache check, primary fetch,
// aggregation, fallback on failure, cache store. Every failure is
// converted to user-facing text here; callers never see an error.
type Service struct {
	registry *spots.Registry
	cache    ReplyCache
	primary  MarineProvider
	fallback FallbackSummarizer
	logger   *zap.Logger
	timeout  time.Duration
	priority []string
	now      func() time.Time
}

func NewService(
	registry *spots.Registry,
	cache ReplyCache,
	primary MarineProvider,
	fallback FallbackSummarizer,
	timeout time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		registry: registry,
		cache:    cache,
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		timeout:  timeout,
		priority: DefaultSourcePriority,
		now:      time.Now,
	}
}

// Forecast answers a request for one spot and window with rendered
// reply text.
//
// Quota exhaustion and empty data escalate to the fallback provider;
// any other non-success status returns the generic failure text
// without touching the fallback. The asymmetry is deliberate,
// preserved from the observed behavior of the original bot. Fallback
// results are never cached: only primary-sourced replies are.
func (s *Service) Forecast(ctx context.Context, key string, w Window) string {
	spot, err := s.registry.Resolve(key)
	if err != nil {
		return MsgUnknownSpot
	}

	if text, ok := s.cache.Get(spot.Key, w); ok {
		s.logger.Debug("reply served from cache",
			zap.String("spot", spot.Key),
			zap.String("window", w.String()))
		return text
	}

	now := s.now().UTC()
	start := now.Truncate(time.Hour)
	end := start.Add(time.Duration(w.Days()) * 24 * time.Hour)

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.primary.Fetch(fetchCtx, spot, start, end)
	switch {
	case err == nil:
	case errors.Is(err, client.ErrQuotaExceeded):
		s.logger.Warn("primary quota exhausted, using fallback",
			zap.String("spot", spot.Key),
			zap.Error(err))
		return s.fallbackReply(ctx, spot)
	case errors.Is(err, client.ErrUpstreamStatus):
		s.logger.Warn("primary provider failed",
			zap.String("spot", spot.Key),
			zap.Error(err))
		return MsgPrimaryFailed
	default:
		// Network failure, timeout, open circuit or empty payload.
		s.logger.Warn("primary unreachable, using fallback",
			zap.String("spot", spot.Key),
			zap.Error(err))
		return s.fallbackReply(ctx, spot)
	}

	byDay := GroupByDay(records, s.priority)

	var text string
	switch w {
	case Window3Days:
		total := 0
		for _, measures := range byDay {
			total += len(measures)
		}
		if total == 0 {
			s.logger.Warn("no resolvable hours in primary data, using fallback",
				zap.String("spot", spot.Key))
			return s.fallbackReply(ctx, spot)
		}
		text = renderThreeDays(spot, byDay, now)
	default:
		today := byDay[now.Format(dayLayout)]
		if len(today) == 0 {
			s.logger.Warn("no resolvable hours for current date, using fallback",
				zap.String("spot", spot.Key))
			return s.fallbackReply(ctx, spot)
		}
		text = renderDaily(spot, Average(now.Format(dayLayout), today), now)
	}

	s.cache.Put(spot.Key, w, text)

	s.logger.Info("forecast served from primary",
		zap.String("spot", spot.Key),
		zap.String("window", w.String()),
		zap.Int("hours", len(records)))

	return text
}

// fallbackReply consults the secondary source once. Its result,
// success or failure text, goes straight back to the caller and is
// never written to the cache. There is no further fallback.
func (s *Service) fallbackReply(ctx context.Context, spot models.Spot) string {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	summary, err := s.fallback.Fetch(fetchCtx, spot)
	switch {
	case err == nil:
		s.logger.Info("forecast served from fallback", zap.String("spot", spot.Key))
		return renderFallback(spot, summary)
	case errors.Is(err, client.ErrEmptyForecast):
		s.logger.Warn("fallback returned no data", zap.String("spot", spot.Key))
		return MsgFallbackEmpty
	case errors.Is(err, client.ErrUpstreamStatus):
		s.logger.Warn("fallback provider failed",
			zap.String("spot", spot.Key),
			zap.Error(err))
		return MsgFallbackStatus
	default:
		s.logger.Warn("fallback unreachable",
			zap.String("spot", spot.Key),
			zap.Error(err))
		return MsgFallbackNetwork
	}
}
