package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/username/fraudsight/src/fraud"
	"github.com/username/fraudsight/src/models"
)

// ListTransactions flattens every user's transactions into one list.
func (s *dashboardService) ListTransactions(ctx context.Context) ([]models.TransactionView, error) {
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}

	views := []models.TransactionView{}
	for _, u := range users {
		views = append(views, transactionViews(u)...)
	}
	return views, nil
}

// ListUserTransactions returns one user's transactions, or ErrUserNotFound.
func (s *dashboardService) ListUserTransactions(ctx context.Context, userID string) ([]models.TransactionView, error) {
	user, ok, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return transactionViews(user), nil
}

// TransactionSummary aggregates all transactions. Every stored transaction
// is considered successful; the source data carries no failure states.
func (s *dashboardService) TransactionSummary(ctx context.Context) (*models.TransactionSummary, error) {
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	totalAmount := decimal.Zero
	for _, u := range users {
		total += len(u.Transactions)
		for _, tx := range u.Transactions {
			totalAmount = totalAmount.Add(tx.Amount)
		}
	}

	return &models.TransactionSummary{
		TotalTransactions:      total,
		TotalAmount:            totalAmount,
		SuccessfulTransactions: total,
		FailedTransactions:     0,
		SuccessRate:            formatRate(total, total),
	}, nil
}

func transactionViews(u models.User) []models.TransactionView {
	views := make([]models.TransactionView, 0, len(u.Transactions))
	for _, tx := range u.Transactions {
		views = append(views, models.TransactionView{
			ID:       tx.ID,
			UserID:   u.ID,
			UserName: u.Name,
			UserCity: u.City,
			Amount:   tx.Amount,
			Location: tx.Location,
			DateTime: fraud.NormalizeDate(tx.Date),
			Status:   "success",
		})
	}
	return views
}
