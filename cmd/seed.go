package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/username/fraudsight/src/config"
	"github.com/username/fraudsight/src/database"
	"github.com/username/fraudsight/src/logger"
	"github.com/username/fraudsight/src/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo dataset into the document store",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedDocument struct {
	key string
	doc map[string]any
}

// The demo dataset: five users across five cities, plus flagged records in
// both field-naming conventions and both date conventions, with and without
// explicit user references.
var seedUsers = []seedDocument{
	{"UserID_1", map[string]any{
		"Name": "Rahul",
		"City": "Mumbai",
		"SendTransaction": map[string]any{
			"TransactionID_1": map[string]any{"Amount": 1000, "Location": "Mumbai", "Date": "2025-01-15"},
			"TransactionID_2": map[string]any{"Amount": 500, "Location": "Delhi", "Date": "2025-01-14"},
			"TransactionID_3": map[string]any{"Amount": 750, "Location": "Mumbai", "Date": "2025-01-13"},
		},
	}},
	{"UserID_2", map[string]any{
		"Name": "Priya",
		"City": "Bangalore",
		"SendTransaction": map[string]any{
			"TransactionID_4": map[string]any{"Amount": 250, "Location": "Bangalore", "Date": "2025-01-15"},
			"TransactionID_5": map[string]any{"Amount": 1200, "Location": "Chennai", "Date": "2025-01-14"},
		},
	}},
	{"UserID_3", map[string]any{
		"Name": "Amit",
		"City": "Delhi",
		"SendTransaction": map[string]any{
			"TransactionID_6": map[string]any{"Amount": 800, "Location": "Delhi", "Date": "2025-01-15"},
			"TransactionID_7": map[string]any{"Amount": 300, "Location": "Mumbai", "Date": "2025-01-13"},
			"TransactionID_8": map[string]any{"Amount": 1500, "Location": "Delhi", "Date": "2025-01-12"},
		},
	}},
	{"UserID_4", map[string]any{
		"Name": "Sneha",
		"City": "Chennai",
		"SendTransaction": map[string]any{
			"TransactionID_9":  map[string]any{"Amount": 600, "Location": "Chennai", "Date": "2025-01-15"},
			"TransactionID_10": map[string]any{"Amount": 900, "Location": "Bangalore", "Date": "2025-01-14"},
		},
	}},
	{"UserID_5", map[string]any{
		"Name": "Vikram",
		"City": "Hyderabad",
		"SendTransaction": map[string]any{
			"TransactionID_11": map[string]any{"Amount": 400, "Location": "Hyderabad", "Date": "2025-01-15"},
			"TransactionID_12": map[string]any{"Amount": 1100, "Location": "Mumbai", "Date": "2025-01-13"},
			"TransactionID_13": map[string]any{"Amount": 700, "Location": "Delhi", "Date": "2025-01-12"},
		},
	}},
}

var seedFlagged = []seedDocument{
	{"TransactionID_1", map[string]any{"Amount": 1000, "Location": "Mumbai", "Date": "2025-01-15", "IPAddress": "192.168.1.1"}},
	{"TransactionID_4", map[string]any{"Amount": 250, "Location": "Bangalore", "Date": "2025-01-15", "IPAddress": "192.168.1.2"}},
	{"TransactionID_6", map[string]any{"Amount": 800, "Location": "Delhi", "Date": "2025-01-15", "IPAddress": "192.168.1.3"}},
	{"TransactionID_9", map[string]any{"Amount": 600, "Location": "Chennai", "Date": "2025-01-15", "IPAddress": "192.168.1.1"}},
	{"TransactionID_11", map[string]any{"Amount": 400, "Location": "Hyderabad", "Date": "2025-01-15", "IPAddress": "192.168.1.4"}},
	{"TransactionID_2", map[string]any{"Amount": 500, "Location": "Delhi", "Date": "2025-01-14", "IPAddress": "192.168.1.5"}},
	{"TransactionID_7", map[string]any{"Amount": 300, "Location": "Mumbai", "Date": "2025-01-13", "IPAddress": "192.168.1.1"}},
	// Split-date convention with an explicit user reference.
	{"TransactionID_8", map[string]any{"amount": 1500, "location": "Delhi", "day": 12, "month": 1, "year": 2025, "user": "UserID_3", "ipAddress": "192.168.1.6"}},
	// Split-date, no match anywhere: stays unattributed.
	{"Flagged_Unknown_1", map[string]any{"amount": 999, "city": "Pune", "day": 5, "month": 1, "year": 2025}},
}

func runSeed(cmd *cobra.Command, args []string) error {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	db, err := database.Open(config.Cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, config.Cfg.DatabasePath); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	st := store.New(db)
	ctx := context.Background()

	logger.L.Info("Seeding users...")
	for _, d := range seedUsers {
		if err := st.Put(ctx, store.CollectionUsers, d.key, d.doc); err != nil {
			return fmt.Errorf("seeding user %s: %w", d.key, err)
		}
	}

	logger.L.Info("Seeding flagged transactions...")
	for _, d := range seedFlagged {
		if err := st.Put(ctx, store.CollectionFlagged, d.key, d.doc); err != nil {
			return fmt.Errorf("seeding flagged transaction %s: %w", d.key, err)
		}
	}

	transactions := 0
	for _, d := range seedUsers {
		if txs, ok := d.doc["SendTransaction"].(map[string]any); ok {
			transactions += len(txs)
		}
	}
	logger.L.Info("Seed data loaded",
		"users", len(seedUsers),
		"transactions", transactions,
		"flagged", len(seedFlagged))
	return nil
}
