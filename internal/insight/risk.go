// Package insight derives display-ready analytics from the in-memory
// portfolio snapshot. Every generator is a pure function: same collections
// in, same buckets and messages out, no side effects. Nothing here is a
// model; the "AI" panels select canned templates by fixed thresholds.
package insight

import (
	"context"
	"fmt"
	"time"

	"mikopo.org/internal/portfolio"
)

// Arrears thresholds, in days, that split the book into severity buckets.
const (
	WatchThreshold    = 7
	HighRiskThreshold = 30
)

// Bucket is one severity slice of the loan book.
type Bucket struct {
	Label       string  `json:"label"`
	Loans       int     `json:"loans"`
	Outstanding int64   `json:"outstanding"`
	Share       float64 `json:"share"`
}

// RiskReport is the risk-scoring panel payload.
type RiskReport struct {
	Buckets          []Bucket `json:"buckets"`
	PAR7             float64  `json:"par7"`
	PAR30            float64  `json:"par30"`
	TotalOutstanding int64    `json:"total_outstanding"`
	Message          string   `json:"message"`
}

// Risk buckets the loan book by arrears days (0, 1-7, 8-30, >30) and picks a
// headline message by PAR30 bracket.
func Risk(loans []portfolio.Loan) RiskReport {
	var current, watch, overdue, high Tally
	var par7, par30 int64
	var total int64

	for _, l := range loans {
		if l.Status != portfolio.LoanActive {
			continue
		}
		total += l.OutstandingBalance
		switch {
		case l.ArrearsDays <= 0:
			current.Add(l)
		case l.ArrearsDays <= WatchThreshold:
			watch.Add(l)
		case l.ArrearsDays <= HighRiskThreshold:
			overdue.Add(l)
		default:
			high.Add(l)
		}
		if l.ArrearsDays > WatchThreshold {
			par7 += l.OutstandingBalance
		}
		if l.ArrearsDays > HighRiskThreshold {
			par30 += l.OutstandingBalance
		}
	}

	report := RiskReport{
		Buckets: []Bucket{
			bucket("Current", current, total),
			bucket("Watch (1-7 days)", watch, total),
			bucket("Overdue (8-30 days)", overdue, total),
			bucket("High risk (>30 days)", high, total),
		},
		PAR7:             share(par7, total),
		PAR30:            share(par30, total),
		TotalOutstanding: total,
	}
	report.Message = riskMessage(report.PAR30, high.Loans)
	return report
}

func bucket(label string, t Tally, total int64) Bucket {
	return Bucket{
		Label:       label,
		Loans:       t.Loans,
		Outstanding: t.Outstanding,
		Share:       share(t.Outstanding, total),
	}
}

func share(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

func riskMessage(par30 float64, highRiskLoans int) string {
	switch {
	case par30 == 0 && highRiskLoans == 0:
		return "Portfolio is fully current. No loans past the 30-day threshold."
	case par30 < 0.05:
		return fmt.Sprintf("Portfolio quality is healthy: PAR 30 at %.1f%%.", par30*100)
	case par30 < 0.15:
		return fmt.Sprintf("PAR 30 at %.1f%% is drifting; %d loans need follow-up this week.", par30*100, highRiskLoans)
	default:
		return fmt.Sprintf("High risk: PAR 30 at %.1f%% with %d loans past 30 days. Prioritise recovery visits.", par30*100, highRiskLoans)
	}
}

// Process models the fixed-duration "analysis" pause the panels show before
// results. It returns early when the caller goes away.
func Process(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
