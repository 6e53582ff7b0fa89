package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"mikopo.org/internal/insight"
	"mikopo.org/internal/portfolio"
)

// insightdemo generates a demo portfolio and prints every insight panel as
// JSON. It runs entirely offline; use it to eyeball the heuristics or to
// produce fixtures.
func main() {
	var (
		seed    = flag.Int64("seed", 42, "Portfolio generator seed (0 uses the clock)")
		clients = flag.Int("clients", 25, "Number of demo clients")
		orgID   = flag.String("org", "demo-org", "Organization identifier stamped on records")
	)
	flag.Parse()

	gen := portfolio.NewGenerator(*seed)
	clientList, loans, savings := gen.Portfolio(*orgID, *clients)

	now := time.Now().UTC()
	out := map[string]any{
		"generated_at": now.Format(time.RFC3339),
		"clients":      len(clientList),
		"loans":        len(loans),
		"savings":      len(savings),
		"risk":         insight.Risk(loans),
		"cashflow":     insight.Cashflow(loans, now),
		"fraud":        insight.Fraud(clientList, loans),
		"reminders":    insight.Reminders(clientList, loans, now),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode output: %v", err)
	}
}
