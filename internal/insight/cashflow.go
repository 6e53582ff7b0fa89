package insight

import (
	"fmt"
	"time"

	"mikopo.org/internal/portfolio"
)

// ForecastWindow is how far ahead the cash-flow panel looks.
const ForecastWindow = 30 * 24 * time.Hour

// CashflowReport is the cash-flow forecasting panel payload.
type CashflowReport struct {
	DueLoans            int     `json:"due_loans"`
	ScheduledCollection int64   `json:"scheduled_collection"`
	ExpectedCollection  int64   `json:"expected_collection"`
	CollectionRate      float64 `json:"collection_rate"`
	Message             string  `json:"message"`
}

// Cashflow forecasts the next 30 days of collections from the installment
// schedule, discounted by the PAR 30 share of the book. asOf anchors the
// window so the function stays pure.
func Cashflow(loans []portfolio.Loan, asOf time.Time) CashflowReport {
	horizon := asOf.Add(ForecastWindow)

	var scheduled int64
	var due int
	var total, par30 int64
	for _, l := range loans {
		if l.Status != portfolio.LoanActive {
			continue
		}
		total += l.OutstandingBalance
		if l.ArrearsDays > HighRiskThreshold {
			par30 += l.OutstandingBalance
		}
		if !l.NextDueDate.Before(asOf) && l.NextDueDate.Before(horizon) {
			due++
			scheduled += l.InstallmentAmount
		}
	}

	rate := 1 - share(par30, total)
	report := CashflowReport{
		DueLoans:            due,
		ScheduledCollection: scheduled,
		ExpectedCollection:  int64(float64(scheduled) * rate),
		CollectionRate:      rate,
	}
	report.Message = cashflowMessage(report)
	return report
}

func cashflowMessage(r CashflowReport) string {
	switch {
	case r.DueLoans == 0:
		return "No installments fall due in the next 30 days."
	case r.CollectionRate >= 0.95:
		return fmt.Sprintf("Expect %.2f in collections from %d installments over the next 30 days.",
			float64(r.ExpectedCollection)/100, r.DueLoans)
	case r.CollectionRate >= 0.85:
		return fmt.Sprintf("Collections forecast %.2f, trimmed by arrears exposure. Follow up before due dates.",
			float64(r.ExpectedCollection)/100)
	default:
		return fmt.Sprintf("Collections at risk: only %.0f%% of the %.2f scheduled is likely to arrive.",
			r.CollectionRate*100, float64(r.ScheduledCollection)/100)
	}
}
