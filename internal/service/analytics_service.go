package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chronicle-app/chronicle-api/internal/dto"
	"github.com/chronicle-app/chronicle-api/internal/models"
	"github.com/chronicle-app/chronicle-api/internal/scheduling"
	appErrors "github.com/chronicle-app/chronicle-api/pkg/errors"
)

// AnalyticsService computes category share breakdowns over day and
// week windows, caching the computed payloads.
type AnalyticsService struct {
	repo     eventRepository
	analyzer *scheduling.Analyzer
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(repo eventRepository, analyzer *scheduling.Analyzer, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if analyzer == nil {
		a := scheduling.NewAnalyzer("")
		analyzer = &a
	}
	return &AnalyticsService{
		repo:     repo,
		analyzer: analyzer,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// Day reports the category breakdown for the calendar day containing
// the reference time.
func (s *AnalyticsService) Day(ctx context.Context, ref time.Time, includeSystem bool) (*dto.AnalyticsResponse, error) {
	windowStart := scheduling.StartOfDay(ref.UTC())
	windowEnd := windowStart.Add(24 * time.Hour)
	key := fmt.Sprintf("analytics:day:%s", windowStart.Format("2006-01-02"))

	return s.window(ctx, key, windowStart, windowEnd, includeSystem, func(events []models.Event) models.ScheduleAnalytics {
		return s.analyzer.AnalyzeDay(ref.UTC(), events)
	})
}

// Week reports the category breakdown for the Sunday-aligned week
// containing the reference time.
func (s *AnalyticsService) Week(ctx context.Context, ref time.Time, includeSystem bool) (*dto.AnalyticsResponse, error) {
	windowStart := scheduling.StartOfWeek(ref.UTC())
	windowEnd := windowStart.AddDate(0, 0, 7)
	key := fmt.Sprintf("analytics:week:%s", windowStart.Format("2006-01-02"))

	return s.window(ctx, key, windowStart, windowEnd, includeSystem, func(events []models.Event) models.ScheduleAnalytics {
		return s.analyzer.AnalyzeWeek(ref.UTC(), events)
	})
}

func (s *AnalyticsService) window(ctx context.Context, key string, windowStart, windowEnd time.Time, includeSystem bool, analyze func([]models.Event) models.ScheduleAnalytics) (*dto.AnalyticsResponse, error) {
	var analytics models.ScheduleAnalytics
	hit, err := s.cache.Get(ctx, key, &analytics)
	if err != nil {
		s.logger.Warn("analytics cache lookup failed", zap.String("key", key), zap.Error(err))
	}

	if !hit {
		events, err := s.repo.List(ctx, models.EventFilter{After: &windowStart, Before: &windowEnd})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
		}
		analytics = analyze(events)
		if err := s.cache.Set(ctx, key, analytics, s.cacheTTL); err != nil {
			s.logger.Warn("analytics cache store failed", zap.String("key", key), zap.Error(err))
		}
	}

	resp := &dto.AnalyticsResponse{
		WindowStart:         windowStart,
		WindowEnd:           windowEnd,
		TotalMinutes:        analytics.TotalMinutes,
		CategoryMinutes:     analytics.CategoryMinutes,
		CategoryPercentages: analytics.CategoryPercentages,
	}
	if includeSystem && s.metrics != nil {
		snapshot := s.metrics.Snapshot()
		resp.System = &snapshot
	}
	return resp, nil
}
