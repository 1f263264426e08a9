package services

import (
	"context"
	"errors"

	"github.com/username/fraudsight/src/models"
)

// ErrUserNotFound is returned by user-scoped queries for unknown user ids.
var ErrUserNotFound = errors.New("user not found")

// DashboardService is the read/reshape layer behind the API routes. All
// methods operate on a snapshot fetched per call; nothing here mutates the
// store.
type DashboardService interface {
	// User views
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
	GetUser(ctx context.Context, id string) (*models.UserSummary, error)
	GetUserStats(ctx context.Context, id string) (*models.UserStats, error)

	// Transaction views
	ListTransactions(ctx context.Context) ([]models.TransactionView, error)
	ListUserTransactions(ctx context.Context, userID string) ([]models.TransactionView, error)
	TransactionSummary(ctx context.Context) (*models.TransactionSummary, error)

	// Flagged-transaction views
	ListFlagged(ctx context.Context) ([]models.EnrichedFlaggedTransaction, error)
	ListFlaggedForUser(ctx context.Context, userID string) ([]models.EnrichedFlaggedTransaction, error)
	ListFlaggedByIP(ctx context.Context, ip string) ([]models.EnrichedFlaggedTransaction, error)
	TopReportedIPs(ctx context.Context) ([]models.IPCount, error)
	FlaggedSummary(ctx context.Context) (*models.FlaggedSummary, error)

	// Analytics views
	TransactionChart(ctx context.Context) ([]models.ChartPoint, error)
	IPChart(ctx context.Context) ([]models.IPCount, error)
	DashboardSummary(ctx context.Context) (*models.DashboardSummary, error)
	LocationAnalytics(ctx context.Context) ([]models.LocationAnalytics, error)
}
