package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/username/fraudsight/src/fraud"
	"github.com/username/fraudsight/src/models"
)

// ListUsers returns the user list with activity and risk annotations.
func (s *dashboardService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(snap.Users))
	for _, u := range snap.Users {
		summaries = append(summaries, summarizeUser(u, snap.Flagged))
	}
	return summaries, nil
}

// GetUser returns a single user's summary, or ErrUserNotFound.
func (s *dashboardService) GetUser(ctx context.Context, id string) (*models.UserSummary, error) {
	user, ok, err := s.store.LoadUser(ctx, id)
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
	summary := summarizeUser(user, flagged)
	return &summary, nil
}

// GetUserStats aggregates a user's transactions and the flagged records
// attributable to them via the reconciler's per-user predicate.
func (s *dashboardService) GetUserStats(ctx context.Context, id string) (*models.UserStats, error) {
	user, ok, err := s.store.LoadUser(ctx, id)
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

	totalAmount := decimal.Zero
	for _, tx := range user.Transactions {
		totalAmount = totalAmount.Add(tx.Amount)
	}

	matched := fraud.ReconcileForUser(user, flagged, id)
	flaggedAmount := decimal.Zero
	for _, m := range matched {
		flaggedAmount = flaggedAmount.Add(m.Amount)
	}

	return &models.UserStats{
		TotalTransactions:   len(user.Transactions),
		FlaggedTransactions: len(matched),
		TotalAmount:         totalAmount,
		FlaggedAmount:       flaggedAmount,
	}, nil
}

// summarizeUser computes one user-list row. The flagged count only follows
// explicit user references; attribute matching is reserved for the flagged
// views themselves.
func summarizeUser(u models.User, flagged []models.FlaggedTransaction) models.UserSummary {
	flaggedCount := 0
	for _, f := range flagged {
		if f.UserRef != "" && f.UserRef == u.ID {
			flaggedCount++
		}
	}

	lastActivity := fraud.SentinelDate
	for _, tx := range u.Transactions {
		if d := fraud.NormalizeDate(tx.Date); d > lastActivity {
			lastActivity = d
		}
	}

	return models.UserSummary{
		ID:                      u.ID,
		Name:                    u.Name,
		City:                    u.City,
		SendTransactionCount:    len(u.Transactions),
		FlaggedTransactionCount: flaggedCount,
		RiskLevel:               models.RiskLevel(flaggedCount),
		Status:                  "active",
		LastActivity:            lastActivity,
	}
}
