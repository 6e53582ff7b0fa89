package insight

import "mikopo.org/internal/portfolio"

// Tally accumulates loan counts and outstanding principal while a report is
// being built.
type Tally struct {
	Loans       int
	Outstanding int64
}

func (t *Tally) Add(l portfolio.Loan) {
	t.Loans++
	t.Outstanding += l.OutstandingBalance
}
