package insight

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"mikopo.org/internal/portfolio"
)

func loan(id string, outstanding int64, arrears int) portfolio.Loan {
	return portfolio.Loan{
		ID:                 id,
		ClientID:           "c-" + id,
		OutstandingBalance: outstanding,
		Principal:          outstanding,
		ArrearsDays:        arrears,
		Status:             portfolio.LoanActive,
	}
}

func TestRiskBucketsAndPAR(t *testing.T) {
	loans := []portfolio.Loan{
		loan("l1", 100_00, 0),
		loan("l2", 200_00, 3),
		loan("l3", 300_00, 15),
		loan("l4", 400_00, 45),
	}
	r := Risk(loans)

	if r.TotalOutstanding != 1000_00 {
		t.Fatalf("total = %d", r.TotalOutstanding)
	}
	wantLoans := []int{1, 1, 1, 1}
	for i, b := range r.Buckets {
		if b.Loans != wantLoans[i] {
			t.Fatalf("bucket %q loans = %d", b.Label, b.Loans)
		}
	}
	// PAR 7 counts everything past 7 days; PAR 30 only past 30.
	if math.Abs(r.PAR7-0.7) > 1e-9 {
		t.Fatalf("par7 = %v", r.PAR7)
	}
	if math.Abs(r.PAR30-0.4) > 1e-9 {
		t.Fatalf("par30 = %v", r.PAR30)
	}
}

func TestRiskIgnoresClosedLoans(t *testing.T) {
	closed := loan("l1", 500_00, 60)
	closed.Status = portfolio.LoanClosed
	written := loan("l2", 500_00, 60)
	written.Status = portfolio.LoanWritten

	r := Risk([]portfolio.Loan{closed, written, loan("l3", 100_00, 0)})
	if r.TotalOutstanding != 100_00 {
		t.Fatalf("total = %d", r.TotalOutstanding)
	}
	if r.PAR30 != 0 {
		t.Fatalf("par30 = %v", r.PAR30)
	}
}

func TestRiskMessages(t *testing.T) {
	cases := []struct {
		name  string
		loans []portfolio.Loan
		want  string
	}{
		{"clean", []portfolio.Loan{loan("l1", 100_00, 0)}, "fully current"},
		{"healthy", []portfolio.Loan{loan("l1", 99_000_00, 0), loan("l2", 1_000_00, 40)}, "healthy"},
		{"drifting", []portfolio.Loan{loan("l1", 90_000_00, 0), loan("l2", 10_000_00, 40)}, "drifting"},
		{"high", []portfolio.Loan{loan("l1", 50_000_00, 0), loan("l2", 50_000_00, 40)}, "High risk"},
	}
	for _, tc := range cases {
		r := Risk(tc.loans)
		if !strings.Contains(r.Message, tc.want) {
			t.Fatalf("%s: message %q does not contain %q", tc.name, r.Message, tc.want)
		}
	}
}

func TestRiskEmptyBook(t *testing.T) {
	r := Risk(nil)
	if r.TotalOutstanding != 0 || r.PAR7 != 0 || r.PAR30 != 0 {
		t.Fatalf("unexpected report: %+v", r)
	}
	if len(r.Buckets) != 4 {
		t.Fatalf("expected all four buckets, got %d", len(r.Buckets))
	}
}

func TestRiskIsIdempotent(t *testing.T) {
	loans := []portfolio.Loan{loan("l1", 100_00, 0), loan("l2", 250_00, 12)}
	first := Risk(loans)
	second := Risk(loans)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated runs differ:\n%+v\n%+v", first, second)
	}
}

func TestProcessHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Process(ctx, time.Minute); err == nil {
		t.Fatal("expected context error")
	}

	if err := Process(context.Background(), 0); err != nil {
		t.Fatalf("zero delay: %v", err)
	}
}
