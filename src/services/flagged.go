package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/username/fraudsight/src/fraud"
	"github.com/username/fraudsight/src/models"
)

const (
	topIPLimit       = 10
	topLocationLimit = 5
)

// ListFlagged returns the full enriched flagged-transaction list. The
// assembled view is cached; reconciliation is deterministic over an
// unchanged snapshot, so serving a cached copy is indistinguishable from
// recomputing.
func (s *dashboardService) ListFlagged(ctx context.Context) ([]models.EnrichedFlaggedTransaction, error) {
	if cached, ok := s.cacheGet(cacheKeyFlaggedAll); ok {
		if enriched, ok := cached.([]models.EnrichedFlaggedTransaction); ok {
			return enriched, nil
		}
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	enriched := fraud.Reconcile(snap.Users, snap.Flagged)
	s.cacheSet(cacheKeyFlaggedAll, enriched)
	return enriched, nil
}

// ListFlaggedForUser returns the flagged records attributable to one known
// user, or ErrUserNotFound.
func (s *dashboardService) ListFlaggedForUser(ctx context.Context, userID string) ([]models.EnrichedFlaggedTransaction, error) {
	user, ok, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	flagged, err := s.store.LoadFlagged(ctx)
	if err != nil {
		return nil, err
	}
	matched := fraud.ReconcileForUser(user, flagged, userID)
	if matched == nil {
		matched = []models.EnrichedFlaggedTransaction{}
	}
	return matched, nil
}

// ListFlaggedByIP returns enriched flagged records whose document-reported
// IP address equals ip. The reported address is an input attribute, distinct
// from the synthesized display address.
func (s *dashboardService) ListFlaggedByIP(ctx context.Context, ip string) ([]models.EnrichedFlaggedTransaction, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []models.FlaggedTransaction
	for _, f := range snap.Flagged {
		if f.ReportedIP == ip {
			filtered = append(filtered, f)
		}
	}
	return fraud.Reconcile(snap.Users, filtered), nil
}

// TopReportedIPs counts flagged records per reported IP, descending,
// truncated to the top ten.
func (s *dashboardService) TopReportedIPs(ctx context.Context) ([]models.IPCount, error) {
	flagged, err := s.store.LoadFlagged(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, f := range flagged {
		if f.ReportedIP != "" {
			counts[f.ReportedIP]++
		}
	}
	return topIPCounts(counts, topIPLimit), nil
}

// FlaggedSummary aggregates the flagged collection for the stats endpoint.
func (s *dashboardService) FlaggedSummary(ctx context.Context) (*models.FlaggedSummary, error) {
	flagged, err := s.store.LoadFlagged(ctx)
	if err != nil {
		return nil, err
	}

	totalAmount := decimal.Zero
	ips := map[string]struct{}{}
	locationCounts := map[string]int{}
	for _, f := range flagged {
		totalAmount = totalAmount.Add(f.Amount)
		if f.ReportedIP != "" {
			ips[f.ReportedIP] = struct{}{}
		}
		locationCounts[f.Location]++
	}

	locations := make([]models.LocationCount, 0, len(locationCounts))
	for location, count := range locationCounts {
		locations = append(locations, models.LocationCount{Location: location, Count: count})
	}
	sort.SliceStable(locations, func(i, j int) bool {
		if locations[i].Count != locations[j].Count {
			return locations[i].Count > locations[j].Count
		}
		return locations[i].Location < locations[j].Location
	})
	if len(locations) > topLocationLimit {
		locations = locations[:topLocationLimit]
	}

	return &models.FlaggedSummary{
		TotalFlagged:    len(flagged),
		TotalAmount:     totalAmount,
		UniqueIPs:       len(ips),
		UniqueLocations: len(locationCounts),
		TopLocations:    locations,
	}, nil
}

// topIPCounts orders a count map descending with a lexicographic tie-break
// for deterministic output, truncated to limit.
func topIPCounts(counts map[string]int, limit int) []models.IPCount {
	result := make([]models.IPCount, 0, len(counts))
	for ip, count := range counts {
		result = append(result, models.IPCount{IP: ip, Count: count})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].IP < result[j].IP
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}
