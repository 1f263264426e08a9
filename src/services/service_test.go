package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/username/fraudsight/src/models"
	"github.com/username/fraudsight/src/store"
)

// newTestService seeds a throwaway store with two users and four flagged
// records covering both document conventions, and pins the clock to
// 2025-01-16 UTC so the time-windowed views are stable.
func newTestService(t *testing.T) *dashboardService {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "services_test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE documents (
		collection TEXT NOT NULL,
		key        TEXT NOT NULL,
		doc        TEXT NOT NULL,
		PRIMARY KEY (collection, key)
	)`); err != nil {
		t.Fatalf("creating documents table: %v", err)
	}

	st := store.New(db)

	seedDoc(t, st, store.CollectionUsers, "UserID_1", map[string]any{
		"name": "Rahul",
		"city": "Mumbai",
		"sendTransaction": map[string]any{
			"T1": map[string]any{"amount": 1000, "location": "Mumbai", "date": "2025-01-15"},
			"T2": map[string]any{"amount": 500, "location": "Delhi", "date": "14-01-2025"},
		},
	})
	seedDoc(t, st, store.CollectionUsers, "UserID_2", map[string]any{
		"Name": "Priya",
		"City": "Bangalore",
		"SendTransaction": map[string]any{
			"T4": map[string]any{"Amount": 250, "Location": "Bangalore", "Date": "2025-01-15"},
		},
	})

	seedDoc(t, st, store.CollectionFlagged, "F1", map[string]any{
		"Amount": 1000, "Location": "Mumbai", "Date": "2025-01-15", "IPAddress": "192.168.1.1",
	})
	seedDoc(t, st, store.CollectionFlagged, "F2", map[string]any{
		"Amount": 250, "City": "Bangalore", "Day": 15, "Month": 1, "Year": 2025,
	})
	seedDoc(t, st, store.CollectionFlagged, "F3", map[string]any{
		"Amount": 999, "Location": "Nowhere", "Date": "2020-05-05",
		"User": "UserID_1", "IPAddress": "192.168.1.1",
	})
	seedDoc(t, st, store.CollectionFlagged, "F4", map[string]any{
		"Amount": 77, "Location": "X", "Date": "2025-01-10",
	})

	svc := NewDashboardService(st, cache.New(time.Minute, time.Minute)).(*dashboardService)
	svc.now = func() time.Time {
		return time.Date(2025, 1, 16, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func seedDoc(t *testing.T, st *store.Store, collection, key string, doc map[string]any) {
	t.Helper()
	if err := st.Put(context.Background(), collection, key, doc); err != nil {
		t.Fatalf("seeding %s/%s: %v", collection, key, err)
	}
}

func TestListUsers(t *testing.T) {
	svc := newTestService(t)
	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	rahul := users[0]
	if rahul.ID != "UserID_1" || rahul.Name != "Rahul" {
		t.Fatalf("unexpected first user: %+v", rahul)
	}
	if rahul.SendTransactionCount != 2 {
		t.Errorf("expected 2 transactions, got %d", rahul.SendTransactionCount)
	}
	// Only F3 carries an explicit reference to UserID_1.
	if rahul.FlaggedTransactionCount != 1 || rahul.RiskLevel != "medium" {
		t.Errorf("expected 1 flagged / medium risk, got %d / %s", rahul.FlaggedTransactionCount, rahul.RiskLevel)
	}
	// Day-first T2 normalizes to 2025-01-14, so T1 wins.
	if rahul.LastActivity != "2025-01-15" {
		t.Errorf("expected last activity 2025-01-15, got %s", rahul.LastActivity)
	}

	priya := users[1]
	if priya.FlaggedTransactionCount != 0 || priya.RiskLevel != "low" {
		t.Errorf("expected 0 flagged / low risk, got %d / %s", priya.FlaggedTransactionCount, priya.RiskLevel)
	}
	if priya.Status != "active" {
		t.Errorf("expected active status, got %s", priya.Status)
	}
}

func TestGetUser(t *testing.T) {
	svc := newTestService(t)
	u, err := svc.GetUser(context.Background(), "UserID_2")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Name != "Priya" || u.City != "Bangalore" {
		t.Errorf("unexpected user: %+v", u)
	}

	_, err = svc.GetUser(context.Background(), "nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUserStats(t *testing.T) {
	svc := newTestService(t)
	stats, err := svc.GetUserStats(context.Background(), "UserID_1")
	if err != nil {
		t.Fatalf("GetUserStats: %v", err)
	}
	if stats.TotalTransactions != 2 {
		t.Errorf("expected 2 transactions, got %d", stats.TotalTransactions)
	}
	if !stats.TotalAmount.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected total amount 1500, got %s", stats.TotalAmount)
	}
	// Only F1 matches UserID_1's transactions on all three attributes; the
	// explicit reference on F3 does not count here.
	if stats.FlaggedTransactions != 1 {
		t.Errorf("expected 1 flagged transaction, got %d", stats.FlaggedTransactions)
	}
	if !stats.FlaggedAmount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected flagged amount 1000, got %s", stats.FlaggedAmount)
	}
}

func TestListTransactions(t *testing.T) {
	svc := newTestService(t)
	txs, err := svc.ListTransactions(context.Background())
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	for _, tx := range txs {
		if tx.Status != "success" {
			t.Errorf("expected success status, got %s", tx.Status)
		}
	}
	// The day-first date must come out normalized.
	if txs[1].ID != "T2" || txs[1].DateTime != "2025-01-14" {
		t.Errorf("expected T2 normalized to 2025-01-14, got %+v", txs[1])
	}
}

func TestListUserTransactionsNotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ListUserTransactions(context.Background(), "nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestTransactionSummary(t *testing.T) {
	svc := newTestService(t)
	summary, err := svc.TransactionSummary(context.Background())
	if err != nil {
		t.Fatalf("TransactionSummary: %v", err)
	}
	if summary.TotalTransactions != 3 || summary.SuccessfulTransactions != 3 || summary.FailedTransactions != 0 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if !summary.TotalAmount.Equal(decimal.NewFromInt(1750)) {
		t.Errorf("expected total amount 1750, got %s", summary.TotalAmount)
	}
	if summary.SuccessRate != "100.00" {
		t.Errorf("expected success rate 100.00, got %s", summary.SuccessRate)
	}
}

func TestListFlagged(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	enriched, err := svc.ListFlagged(ctx)
	if err != nil {
		t.Fatalf("ListFlagged: %v", err)
	}
	if len(enriched) != 4 {
		t.Fatalf("expected 4 enriched records, got %d", len(enriched))
	}

	byID := map[string]models.EnrichedFlaggedTransaction{}
	for _, e := range enriched {
		byID[e.ID] = e
	}

	if e := byID["F1"]; e.UserID == nil || *e.UserID != "UserID_1" {
		t.Errorf("F1 should attribute-match UserID_1, got %+v", e)
	}
	if e := byID["F2"]; e.UserID == nil || *e.UserID != "UserID_2" || e.Date != "2025-01-15" {
		t.Errorf("F2 should match UserID_2 via split date, got %+v", e)
	}
	if e := byID["F3"]; e.UserID == nil || *e.UserID != "UserID_1" || e.UserName == nil || *e.UserName != "Rahul" {
		t.Errorf("F3 should resolve via explicit reference, got %+v", e)
	}
	if e := byID["F4"]; e.UserID != nil {
		t.Errorf("F4 should stay unresolved, got %+v", e)
	}
	if byID["F4"].IPAddress == "" {
		t.Error("unresolved record must still carry a synthesized IP")
	}

	// The cached second read is identical.
	again, err := svc.ListFlagged(ctx)
	if err != nil {
		t.Fatalf("ListFlagged (cached): %v", err)
	}
	if !reflect.DeepEqual(enriched, again) {
		t.Error("cached flagged view differs from computed view")
	}
}

func TestListFlaggedForUser(t *testing.T) {
	svc := newTestService(t)
	matched, err := svc.ListFlaggedForUser(context.Background(), "UserID_2")
	if err != nil {
		t.Fatalf("ListFlaggedForUser: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "F2" {
		t.Fatalf("expected exactly F2 for UserID_2, got %+v", matched)
	}

	_, err = svc.ListFlaggedForUser(context.Background(), "nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListFlaggedByIP(t *testing.T) {
	svc := newTestService(t)
	records, err := svc.ListFlaggedByIP(context.Background(), "192.168.1.1")
	if err != nil {
		t.Fatalf("ListFlaggedByIP: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records for the reported IP, got %d", len(records))
	}

	records, err = svc.ListFlaggedByIP(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("ListFlaggedByIP (no match): %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty result for unknown IP, got %d", len(records))
	}
}

func TestTopReportedIPs(t *testing.T) {
	svc := newTestService(t)
	top, err := svc.TopReportedIPs(context.Background())
	if err != nil {
		t.Fatalf("TopReportedIPs: %v", err)
	}
	if len(top) != 1 || top[0].IP != "192.168.1.1" || top[0].Count != 2 {
		t.Errorf("unexpected top IPs: %+v", top)
	}
}

func TestFlaggedSummary(t *testing.T) {
	svc := newTestService(t)
	summary, err := svc.FlaggedSummary(context.Background())
	if err != nil {
		t.Fatalf("FlaggedSummary: %v", err)
	}
	if summary.TotalFlagged != 4 {
		t.Errorf("expected 4 flagged, got %d", summary.TotalFlagged)
	}
	if !summary.TotalAmount.Equal(decimal.NewFromInt(2326)) {
		t.Errorf("expected total amount 2326, got %s", summary.TotalAmount)
	}
	if summary.UniqueIPs != 1 {
		t.Errorf("expected 1 unique IP, got %d", summary.UniqueIPs)
	}
	if summary.UniqueLocations != 4 {
		t.Errorf("expected 4 unique locations, got %d", summary.UniqueLocations)
	}
	if len(summary.TopLocations) != 4 {
		t.Errorf("expected 4 top locations, got %d", len(summary.TopLocations))
	}
}

func TestTransactionChart(t *testing.T) {
	svc := newTestService(t)
	points, err := svc.TransactionChart(context.Background())
	if err != nil {
		t.Fatalf("TransactionChart: %v", err)
	}
	if len(points) != 7 {
		t.Fatalf("expected 7 chart points, got %d", len(points))
	}
	if points[0].Date != "2025-01-10" || points[6].Date != "2025-01-16" {
		t.Fatalf("unexpected window: %s .. %s", points[0].Date, points[6].Date)
	}

	byDate := map[string]models.ChartPoint{}
	for _, p := range points {
		byDate[p.Date] = p
	}
	jan15 := byDate["2025-01-15"]
	if jan15.Count != 2 || !jan15.Amount.Equal(decimal.NewFromInt(1250)) {
		t.Errorf("unexpected 2025-01-15 volume: %+v", jan15)
	}
	if jan15.Flagged != 2 {
		t.Errorf("expected 2 flagged on 2025-01-15, got %d", jan15.Flagged)
	}
	jan14 := byDate["2025-01-14"]
	if jan14.Count != 1 || !jan14.Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("unexpected 2025-01-14 volume: %+v", jan14)
	}
	if byDate["2025-01-10"].Flagged != 1 {
		t.Errorf("expected F4 flagged on 2025-01-10, got %d", byDate["2025-01-10"].Flagged)
	}
}

func TestIPChart(t *testing.T) {
	svc := newTestService(t)
	chart, err := svc.IPChart(context.Background())
	if err != nil {
		t.Fatalf("IPChart: %v", err)
	}
	total := 0
	for _, entry := range chart {
		total += entry.Count
	}
	if total != 4 {
		t.Errorf("expected all 4 flagged records counted, got %d", total)
	}
	if len(chart) > 10 {
		t.Errorf("chart must be truncated to 10 entries, got %d", len(chart))
	}
}

func TestDashboardSummary(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	summary, err := svc.DashboardSummary(ctx)
	if err != nil {
		t.Fatalf("DashboardSummary: %v", err)
	}
	if summary.TotalUsers != 2 || summary.TotalTransactions != 3 || summary.TotalFlagged != 4 {
		t.Errorf("unexpected totals: %+v", summary)
	}
	if !summary.TotalAmount.Equal(decimal.NewFromInt(1750)) {
		t.Errorf("expected total amount 1750, got %s", summary.TotalAmount)
	}
	if !summary.FlaggedAmount.Equal(decimal.NewFromInt(2326)) {
		t.Errorf("expected flagged amount 2326, got %s", summary.FlaggedAmount)
	}
	if summary.FraudRate != "133.33" {
		t.Errorf("expected fraud rate 133.33, got %s", summary.FraudRate)
	}
	if summary.RiskLevels.Medium != 1 || summary.RiskLevels.Low != 1 || summary.RiskLevels.High != 0 {
		t.Errorf("unexpected risk levels: %+v", summary.RiskLevels)
	}
	// Clock is 2025-01-16: T1 and T4 fall within 24h, everything within 7d.
	if summary.RecentActivity.Last24Hours != 2 || summary.RecentActivity.Last7Days != 3 {
		t.Errorf("unexpected recent activity: %+v", summary.RecentActivity)
	}
	if summary.UserStatus.Active != 2 || summary.UserStatus.Disabled != 0 {
		t.Errorf("unexpected user status: %+v", summary.UserStatus)
	}

	again, err := svc.DashboardSummary(ctx)
	if err != nil {
		t.Fatalf("DashboardSummary (cached): %v", err)
	}
	if !reflect.DeepEqual(summary, again) {
		t.Error("cached summary differs from computed summary")
	}
}

func TestLocationAnalytics(t *testing.T) {
	svc := newTestService(t)
	analytics, err := svc.LocationAnalytics(context.Background())
	if err != nil {
		t.Fatalf("LocationAnalytics: %v", err)
	}
	if len(analytics) != 5 {
		t.Fatalf("expected 5 locations, got %d", len(analytics))
	}
	// Bangalore and Mumbai both run at 100.00; the tie breaks alphabetically.
	if analytics[0].Location != "Bangalore" || analytics[0].FraudRate != "100.00" {
		t.Errorf("unexpected first location: %+v", analytics[0])
	}
	if analytics[1].Location != "Mumbai" {
		t.Errorf("unexpected second location: %+v", analytics[1])
	}
	for _, a := range analytics {
		if a.Location == "Nowhere" && a.FraudRate != "0.00" {
			t.Errorf("locations without transactions report 0.00 rate, got %s", a.FraudRate)
		}
	}
}
