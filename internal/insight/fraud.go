package insight

import (
	"fmt"
	"sort"
	"time"

	"mikopo.org/internal/portfolio"
)

// Signal is one matched fraud pattern with a display message.
type Signal struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// FraudReport is the fraud-pattern panel payload.
type FraudReport struct {
	Signals []Signal `json:"signals"`
	Message string   `json:"message"`
}

const (
	signalDuplicateContact = "duplicate_contact"
	signalRoundAmounts     = "round_amounts"
	signalRapidDisbursal   = "rapid_disbursement"
)

// Fraud runs the fixed pattern checks: shared phone numbers across clients,
// clusters of suspiciously round principals, and several disbursements to
// one client inside a week. Output is sorted by code so repeated runs over
// the same snapshot render identically.
func Fraud(clients []portfolio.Client, loans []portfolio.Loan) FraudReport {
	var signals []Signal

	if dup := duplicateContacts(clients); dup > 0 {
		signals = append(signals, Signal{
			Code:    signalDuplicateContact,
			Message: fmt.Sprintf("%d clients share a phone number with another client.", dup),
			Count:   dup,
		})
	}
	if round, total := roundAmounts(loans); total >= 5 && round*2 > total {
		signals = append(signals, Signal{
			Code:    signalRoundAmounts,
			Message: fmt.Sprintf("%d of %d loans have perfectly round principals.", round, total),
			Count:   round,
		})
	}
	if rapid := rapidDisbursements(loans); rapid > 0 {
		signals = append(signals, Signal{
			Code:    signalRapidDisbursal,
			Message: fmt.Sprintf("%d clients received multiple loans within seven days.", rapid),
			Count:   rapid,
		})
	}

	sort.Slice(signals, func(i, j int) bool { return signals[i].Code < signals[j].Code })

	report := FraudReport{Signals: signals}
	if len(signals) == 0 {
		report.Message = "No known fraud patterns in the current portfolio."
	} else {
		report.Message = fmt.Sprintf("%d fraud patterns matched. Review flagged records before month close.", len(signals))
	}
	return report
}

func duplicateContacts(clients []portfolio.Client) int {
	byPhone := make(map[string]int)
	for _, c := range clients {
		if c.Phone == "" {
			continue
		}
		byPhone[c.Phone]++
	}
	var dup int
	for _, n := range byPhone {
		if n > 1 {
			dup += n
		}
	}
	return dup
}

func roundAmounts(loans []portfolio.Loan) (round, total int) {
	for _, l := range loans {
		if l.Status != portfolio.LoanActive {
			continue
		}
		total++
		if l.Principal > 0 && l.Principal%100_000 == 0 {
			round++
		}
	}
	return round, total
}

func rapidDisbursements(loans []portfolio.Loan) int {
	byClient := make(map[string][]portfolio.Loan)
	for _, l := range loans {
		byClient[l.ClientID] = append(byClient[l.ClientID], l)
	}
	var flagged int
	for _, ls := range byClient {
		if len(ls) < 2 {
			continue
		}
		sort.Slice(ls, func(i, j int) bool { return ls[i].DisbursedAt.Before(ls[j].DisbursedAt) })
		for i := 1; i < len(ls); i++ {
			if ls[i].DisbursedAt.Sub(ls[i-1].DisbursedAt) <= 7*24*time.Hour {
				flagged++
				break
			}
		}
	}
	return flagged
}
