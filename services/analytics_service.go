package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"campusevents/analytics"
	"campusevents/metrics"
	"campusevents/utils"
)

// Breakdown kinds served by GetBreakdown and exported as CSV.
const (
	BreakdownDepartments       = "departments"
	BreakdownEvents            = "events"
	BreakdownOrganisers        = "organisers"
	BreakdownFests             = "fests"
	BreakdownTimeline          = "timeline"
	BreakdownRegistrationTypes = "registration_types"
	BreakdownFeeTypes          = "fee_types"
	BreakdownUserRoles         = "user_roles"
)

// BreakdownKinds lists every supported breakdown in display order.
var BreakdownKinds = []string{
	BreakdownDepartments,
	BreakdownEvents,
	BreakdownOrganisers,
	BreakdownFests,
	BreakdownTimeline,
	BreakdownRegistrationTypes,
	BreakdownFeeTypes,
	BreakdownUserRoles,
}

var ErrUnknownBreakdown = errors.New("unknown breakdown")

// SnapshotSource supplies the collections a dashboard is computed from.
type SnapshotSource interface {
	Load(ctx context.Context) (*analytics.Collections, error)
}

// AnalyticsService computes dashboards from snapshots, caching results per
// filter combination and data fingerprint.
type AnalyticsService struct {
	source   SnapshotSource
	cache    *ResultCache
	logger   *logrus.Logger
	defaults analytics.Params
	now      func() time.Time
}

// NewAnalyticsService creates the service. defaults fill in a missing range or
// Top-N before normalization.
func NewAnalyticsService(source SnapshotSource, cache *ResultCache, logger *logrus.Logger, defaults analytics.Params) *AnalyticsService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AnalyticsService{
		source:   source,
		cache:    cache,
		logger:   logger,
		defaults: defaults,
		now:      time.Now,
	}
}

// SetClock replaces the time source
func (as *AnalyticsService) SetClock(now func() time.Time) {
	as.now = now
}

// ResolveParams applies configured defaults and normalizes the result
func (as *AnalyticsService) ResolveParams(p analytics.Params) analytics.Params {
	if p.DateRange == "" {
		p.DateRange = as.defaults.DateRange
	}
	if p.TopN == 0 {
		p.TopN = as.defaults.TopN
	}
	return p.Normalize()
}

// GetDashboard returns the full dashboard for the given filters. The clock is
// read at minute resolution: every request in the same minute, cached or not,
// gets the dashboard computed as of the start of that minute, with the same
// GeneratedAt and window cutoff.
func (as *AnalyticsService) GetDashboard(ctx context.Context, p analytics.Params) (*analytics.Dashboard, error) {
	start := time.Now()
	p = as.ResolveParams(p)
	now := as.now().UTC().Truncate(time.Minute)

	snapshot, err := as.source.Load(ctx)
	if err != nil {
		metrics.SnapshotErrors.Inc()
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	key := cacheKey(p, now, snapshot.Fingerprint())
	entry := as.logger.WithFields(logrus.Fields{
		"range":  p.DateRange,
		"search": p.Search,
		"top_n":  p.TopN,
	})

	if dashboard, ok := as.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		entry.WithFields(logrus.Fields{
			"cache_hit": true,
			"duration":  time.Since(start).String(),
		}).Debug("Dashboard served")
		return dashboard, nil
	}

	dashboard := analytics.Compute(*snapshot, p, now)
	as.cache.Set(key, dashboard)

	elapsed := time.Since(start)
	metrics.DashboardComputations.Inc()
	metrics.ComputeDuration.Observe(elapsed.Seconds())
	entry.WithFields(logrus.Fields{
		"cache_hit": false,
		"duration":  elapsed.String(),
	}).Debug("Dashboard computed")

	return dashboard, nil
}

// GetGrowth returns only the growth block. It is nil for the all-time range.
func (as *AnalyticsService) GetGrowth(ctx context.Context, p analytics.Params) (*analytics.GrowthSummary, error) {
	dashboard, err := as.GetDashboard(ctx, p)
	if err != nil {
		return nil, err
	}
	return dashboard.Growth, nil
}

// GetBreakdown returns one view-model of the dashboard by kind
func (as *AnalyticsService) GetBreakdown(ctx context.Context, p analytics.Params, kind string) (interface{}, error) {
	if !IsBreakdownKind(kind) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBreakdown, kind)
	}

	dashboard, err := as.GetDashboard(ctx, p)
	if err != nil {
		return nil, err
	}
	return SelectBreakdown(dashboard, kind)
}

// ClearCache drops all cached dashboards
func (as *AnalyticsService) ClearCache() int {
	n := as.cache.Purge()
	as.logger.WithField("entries", n).Info("Dashboard cache cleared")
	return n
}

// SelectBreakdown picks the view-model for kind out of a computed dashboard.
// Tables are returned in full, not chart-capped.
func SelectBreakdown(d *analytics.Dashboard, kind string) (interface{}, error) {
	switch kind {
	case BreakdownDepartments:
		return d.DepartmentTable, nil
	case BreakdownEvents:
		return d.TopEventsTable, nil
	case BreakdownOrganisers:
		return d.TopOrganisers, nil
	case BreakdownFests:
		return d.FestRegistrations, nil
	case BreakdownTimeline:
		return d.Timeline, nil
	case BreakdownRegistrationTypes:
		return d.RegistrationTypes, nil
	case BreakdownFeeTypes:
		return d.FeeTypes, nil
	case BreakdownUserRoles:
		return d.UserRoles, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBreakdown, kind)
	}
}

func IsBreakdownKind(kind string) bool {
	return utils.SliceContains(BreakdownKinds, kind)
}

// cacheKey identifies a result by its filters, the minute it was computed in and
// the snapshot content
func cacheKey(p analytics.Params, now time.Time, fingerprint string) string {
	return fmt.Sprintf("%s|%q|%d|%s|%s",
		p.DateRange,
		p.Search,
		p.TopN,
		now.UTC().Truncate(time.Minute).Format(time.RFC3339),
		fingerprint,
	)
}
