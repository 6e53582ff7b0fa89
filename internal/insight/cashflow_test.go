package insight

import (
	"math"
	"strings"
	"testing"
	"time"

	"mikopo.org/internal/portfolio"
)

func TestCashflowWindow(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	inside := loan("l1", 500_00, 0)
	inside.InstallmentAmount = 50_00
	inside.NextDueDate = asOf.AddDate(0, 0, 10)

	today := loan("l2", 500_00, 0)
	today.InstallmentAmount = 40_00
	today.NextDueDate = asOf

	beyond := loan("l3", 500_00, 0)
	beyond.InstallmentAmount = 60_00
	beyond.NextDueDate = asOf.AddDate(0, 0, 31)

	past := loan("l4", 500_00, 0)
	past.InstallmentAmount = 70_00
	past.NextDueDate = asOf.AddDate(0, 0, -1)

	r := Cashflow([]portfolio.Loan{inside, today, beyond, past}, asOf)
	if r.DueLoans != 2 {
		t.Fatalf("due loans = %d", r.DueLoans)
	}
	if r.ScheduledCollection != 90_00 {
		t.Fatalf("scheduled = %d", r.ScheduledCollection)
	}
	if r.CollectionRate != 1 || r.ExpectedCollection != 90_00 {
		t.Fatalf("rate=%v expected=%d", r.CollectionRate, r.ExpectedCollection)
	}
}

func TestCashflowDiscountsByArrears(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	good := loan("l1", 800_00, 0)
	good.InstallmentAmount = 100_00
	good.NextDueDate = asOf.AddDate(0, 0, 5)

	bad := loan("l2", 200_00, 45)
	bad.NextDueDate = asOf.AddDate(0, 0, 60)

	r := Cashflow([]portfolio.Loan{good, bad}, asOf)
	// 20% of the outstanding book is past 30 days, so the forecast keeps 80%.
	if math.Abs(r.CollectionRate-0.8) > 1e-9 {
		t.Fatalf("rate = %v", r.CollectionRate)
	}
	if r.ExpectedCollection != 80_00 {
		t.Fatalf("expected = %d", r.ExpectedCollection)
	}
	if !strings.Contains(r.Message, "risk") {
		t.Fatalf("message = %q", r.Message)
	}
}

func TestCashflowEmptyWindowMessage(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	r := Cashflow(nil, asOf)
	if r.DueLoans != 0 || !strings.Contains(r.Message, "No installments") {
		t.Fatalf("unexpected report: %+v", r)
	}
}
