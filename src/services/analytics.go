package services

import (
	"context"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/username/fraudsight/src/fraud"
	"github.com/username/fraudsight/src/models"
)

const chartWindowDays = 7

// TransactionChart returns per-day transaction volume and flagged counts
// for the trailing seven days, oldest first.
func (s *dashboardService) TransactionChart(ctx context.Context) ([]models.ChartPoint, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC()
	points := make([]models.ChartPoint, 0, chartWindowDays)
	for i := chartWindowDays - 1; i >= 0; i-- {
		dateStr := today.AddDate(0, 0, -i).Format("2006-01-02")

		count := 0
		amount := decimal.Zero
		for _, u := range snap.Users {
			for _, tx := range u.Transactions {
				if fraud.NormalizeDate(tx.Date) == dateStr {
					count++
					amount = amount.Add(tx.Amount)
				}
			}
		}

		flaggedCount := 0
		for _, f := range snap.Flagged {
			if fraud.ComposeFlaggedDate(f) == dateStr {
				flaggedCount++
			}
		}

		points = append(points, models.ChartPoint{
			Date:    dateStr,
			Amount:  amount,
			Count:   count,
			Flagged: flaggedCount,
		})
	}
	return points, nil
}

// IPChart counts flagged records per synthesized display address. Shared
// fraud-ring addresses dominate this view because roughly a third of
// records cluster into the eight-address pool.
func (s *dashboardService) IPChart(ctx context.Context) ([]models.IPCount, error) {
	flagged, err := s.store.LoadFlagged(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, f := range flagged {
		seed := f.UserRef
		if seed == "" {
			seed = "unknown"
		}
		counts[fraud.SynthesizeIP(seed, f.ID)]++
	}
	return topIPCounts(counts, topIPLimit), nil
}

// DashboardSummary assembles the headline dashboard card. The view is
// cached for the configured expiration.
func (s *dashboardService) DashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	if cached, ok := s.cacheGet(cacheKeyDashboardSummary); ok {
		if summary, ok := cached.(*models.DashboardSummary); ok {
			return summary, nil
		}
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	totalTransactions := 0
	totalAmount := decimal.Zero
	for _, u := range snap.Users {
		totalTransactions += len(u.Transactions)
		for _, tx := range u.Transactions {
			totalAmount = totalAmount.Add(tx.Amount)
		}
	}

	flaggedAmount := decimal.Zero
	for _, f := range snap.Flagged {
		flaggedAmount = flaggedAmount.Add(f.Amount)
	}

	var risk models.RiskLevelCounts
	for _, u := range snap.Users {
		count := 0
		for _, f := range snap.Flagged {
			if f.UserRef != "" && f.UserRef == u.ID {
				count++
			}
		}
		switch models.RiskLevel(count) {
		case "high":
			risk.High++
		case "medium":
			risk.Medium++
		default:
			risk.Low++
		}
	}

	now := s.now().UTC()
	yesterdayStr := now.AddDate(0, 0, -1).Format("2006-01-02")
	weekAgoStr := now.AddDate(0, 0, -7).Format("2006-01-02")
	var recent models.RecentActivity
	for _, u := range snap.Users {
		for _, tx := range u.Transactions {
			d := fraud.NormalizeDate(tx.Date)
			if d >= yesterdayStr {
				recent.Last24Hours++
			}
			if d >= weekAgoStr {
				recent.Last7Days++
			}
		}
	}

	summary := &models.DashboardSummary{
		TotalUsers:        len(snap.Users),
		TotalTransactions: totalTransactions,
		TotalFlagged:      len(snap.Flagged),
		TotalAmount:       totalAmount,
		FlaggedAmount:     flaggedAmount,
		FraudRate:         formatRate(len(snap.Flagged), totalTransactions),
		RiskLevels:        risk,
		UserStatus:        models.UserStatusCounts{Active: len(snap.Users), Disabled: 0},
		RecentActivity:    recent,
	}
	s.cacheSet(cacheKeyDashboardSummary, summary)
	return summary, nil
}

// LocationAnalytics returns per-location transaction and fraud volume,
// sorted by fraud rate descending.
func (s *dashboardService) LocationAnalytics(ctx context.Context) ([]models.LocationAnalytics, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	type locationStats struct {
		totalTransactions   int
		totalAmount         decimal.Decimal
		flaggedTransactions int
		flaggedAmount       decimal.Decimal
	}
	stats := map[string]*locationStats{}
	get := func(location string) *locationStats {
		if location == "" {
			location = "Unknown"
		}
		if st, ok := stats[location]; ok {
			return st
		}
		st := &locationStats{totalAmount: decimal.Zero, flaggedAmount: decimal.Zero}
		stats[location] = st
		return st
	}

	for _, u := range snap.Users {
		for _, tx := range u.Transactions {
			st := get(tx.Location)
			st.totalTransactions++
			st.totalAmount = st.totalAmount.Add(tx.Amount)
		}
	}
	for _, f := range snap.Flagged {
		st := get(f.Location)
		st.flaggedTransactions++
		st.flaggedAmount = st.flaggedAmount.Add(f.Amount)
	}

	result := make([]models.LocationAnalytics, 0, len(stats))
	for location, st := range stats {
		result = append(result, models.LocationAnalytics{
			Location:            location,
			TotalTransactions:   st.totalTransactions,
			TotalAmount:         st.totalAmount,
			FlaggedTransactions: st.flaggedTransactions,
			FlaggedAmount:       st.flaggedAmount,
			FraudRate:           formatRate(st.flaggedTransactions, st.totalTransactions),
		})
	}
	sortByFraudRate(result)
	return result, nil
}

func sortByFraudRate(result []models.LocationAnalytics) {
	sort.SliceStable(result, func(i, j int) bool {
		ri, _ := strconv.ParseFloat(result[i].FraudRate, 64)
		rj, _ := strconv.ParseFloat(result[j].FraudRate, 64)
		if ri != rj {
			return ri > rj
		}
		return result[i].Location < result[j].Location
	})
}
