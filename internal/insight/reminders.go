package insight

import (
	"fmt"
	"sort"
	"time"

	"mikopo.org/internal/portfolio"
)

// DueSoonWindow is how close a due date must be before a reminder appears.
const DueSoonWindow = 3 * 24 * time.Hour

// Reminders derives repayment reminder lines for loans in arrears or due
// within the next three days. Identifiers are derived from the loan so the
// function stays deterministic.
func Reminders(clients []portfolio.Client, loans []portfolio.Loan, asOf time.Time) []portfolio.Reminder {
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}

	var out []portfolio.Reminder
	for _, l := range loans {
		if l.Status != portfolio.LoanActive {
			continue
		}
		name := names[l.ClientID]
		if name == "" {
			name = l.ClientID
		}
		switch {
		case l.ArrearsDays > 0:
			out = append(out, portfolio.Reminder{
				ID:       "rem-" + l.ID,
				ClientID: l.ClientID,
				LoanID:   l.ID,
				DueDate:  l.NextDueDate,
				Message: fmt.Sprintf("%s is %d days in arrears on loan %s (%.2f outstanding).",
					name, l.ArrearsDays, l.ID, float64(l.OutstandingBalance)/100),
			})
		case !l.NextDueDate.Before(asOf) && l.NextDueDate.Before(asOf.Add(DueSoonWindow)):
			out = append(out, portfolio.Reminder{
				ID:       "rem-" + l.ID,
				ClientID: l.ClientID,
				LoanID:   l.ID,
				DueDate:  l.NextDueDate,
				Message: fmt.Sprintf("%s has an installment of %.2f due on %s.",
					name, float64(l.InstallmentAmount)/100, l.NextDueDate.Format("2006-01-02")),
			})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
