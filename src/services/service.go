package services

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/username/fraudsight/src/models"
	"github.com/username/fraudsight/src/store"
)

// Cache keys for assembled views.
const (
	cacheKeyFlaggedAll       = "flagged:all"
	cacheKeyDashboardSummary = "analytics:dashboard-summary"
)

type dashboardService struct {
	store *store.Store
	cache *cache.Cache

	// now is injectable so time-windowed views are testable.
	now func() time.Time
}

// NewDashboardService builds the service over an injected store handle. The
// cache may be nil to disable view caching.
func NewDashboardService(st *store.Store, viewCache *cache.Cache) DashboardService {
	return &dashboardService{
		store: st,
		cache: viewCache,
		now:   time.Now,
	}
}

// snapshot is the per-request view of both collections. Each call fetches
// fresh; requests never share mutable state.
type snapshot struct {
	Users   []models.User
	Flagged []models.FlaggedTransaction
}

func (s *dashboardService) loadSnapshot(ctx context.Context) (*snapshot, error) {
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	flagged, err := s.store.LoadFlagged(ctx)
	if err != nil {
		return nil, err
	}
	return &snapshot{Users: users, Flagged: flagged}, nil
}

func (s *dashboardService) cacheGet(key string) (any, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *dashboardService) cacheSet(key string, value any) {
	if s.cache != nil {
		s.cache.SetDefault(key, value)
	}
}

// formatRate renders a percentage with two decimals, the fixed format the
// dashboard expects.
func formatRate(numerator, denominator int) string {
	if denominator == 0 {
		return "0.00"
	}
	return strconv.FormatFloat(float64(numerator)/float64(denominator)*100, 'f', 2, 64)
}
