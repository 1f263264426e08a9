package models

import "github.com/shopspring/decimal"

// View types returned by the API routes. Field names follow the JSON shapes
// the dashboard frontend renders.

// UserSummary is one row of the user list.
type UserSummary struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	City                    string `json:"city"`
	SendTransactionCount    int    `json:"sendTransactionCount"`
	FlaggedTransactionCount int    `json:"flaggedTransactionCount"`
	RiskLevel               string `json:"riskLevel"`
	Status                  string `json:"status"`
	LastActivity            string `json:"lastActivity"`
}

// UserStats aggregates a single user's transaction and flagged activity.
type UserStats struct {
	TotalTransactions   int             `json:"totalTransactions"`
	FlaggedTransactions int             `json:"flaggedTransactions"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	FlaggedAmount       decimal.Decimal `json:"flaggedAmount"`
}

// TransactionView is a user-owned transaction flattened for the global list.
type TransactionView struct {
	ID       string          `json:"id"`
	UserID   string          `json:"userId"`
	UserName string          `json:"userName"`
	UserCity string          `json:"userCity"`
	Amount   decimal.Decimal `json:"amount"`
	Location string          `json:"location"`
	DateTime string          `json:"dateTime"`
	Status   string          `json:"status"`
}

// TransactionSummary aggregates all transactions across users.
type TransactionSummary struct {
	TotalTransactions      int             `json:"totalTransactions"`
	TotalAmount            decimal.Decimal `json:"totalAmount"`
	SuccessfulTransactions int             `json:"successfulTransactions"`
	FailedTransactions     int             `json:"failedTransactions"`
	SuccessRate            string          `json:"successRate"`
}

// IPCount pairs an IP address with how many flagged records carry it.
type IPCount struct {
	IP    string `json:"ip"`
	Count int    `json:"count"`
}

// LocationCount pairs a location with a flagged-record count.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// FlaggedSummary aggregates the flagged-transaction collection.
type FlaggedSummary struct {
	TotalFlagged    int             `json:"totalFlagged"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	UniqueIPs       int             `json:"uniqueIPs"`
	UniqueLocations int             `json:"uniqueLocations"`
	TopLocations    []LocationCount `json:"topLocations"`
}

// ChartPoint is one day of the transaction chart.
type ChartPoint struct {
	Date    string          `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	Count   int             `json:"count"`
	Flagged int             `json:"flagged"`
}

// RiskLevelCounts is the per-risk-level user histogram.
type RiskLevelCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// UserStatusCounts buckets users by account status.
type UserStatusCounts struct {
	Active   int `json:"active"`
	Disabled int `json:"disabled"`
}

// RecentActivity counts transactions in trailing windows.
type RecentActivity struct {
	Last24Hours int `json:"last24Hours"`
	Last7Days   int `json:"last7Days"`
}

// DashboardSummary is the headline view of the monitoring dashboard.
type DashboardSummary struct {
	TotalUsers        int              `json:"totalUsers"`
	TotalTransactions int              `json:"totalTransactions"`
	TotalFlagged      int              `json:"totalFlagged"`
	TotalAmount       decimal.Decimal  `json:"totalAmount"`
	FlaggedAmount     decimal.Decimal  `json:"flaggedAmount"`
	FraudRate         string           `json:"fraudRate"`
	RiskLevels        RiskLevelCounts  `json:"riskLevels"`
	UserStatus        UserStatusCounts `json:"userStatus"`
	RecentActivity    RecentActivity   `json:"recentActivity"`
}

// LocationAnalytics is per-location transaction and fraud volume.
type LocationAnalytics struct {
	Location            string          `json:"location"`
	TotalTransactions   int             `json:"totalTransactions"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	FlaggedTransactions int             `json:"flaggedTransactions"`
	FlaggedAmount       decimal.Decimal `json:"flaggedAmount"`
	FraudRate           string          `json:"fraudRate"`
}
