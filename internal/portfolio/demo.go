package portfolio

import (
	"fmt"
	"math/rand"
	"time"
)

var demoRegions = []string{"Nairobi", "Kisumu", "Mombasa", "Nakuru", "Eldoret"}

var demoNames = []string{
	"Amina Wanjiru", "Joseph Otieno", "Grace Achieng", "Peter Mwangi",
	"Fatuma Hassan", "Daniel Kiprop", "Mary Njeri", "Samuel Oduya",
	"Esther Chebet", "John Kamau", "Lydia Atieno", "Brian Mutua",
}

// Generator produces a deterministic demo portfolio for the insight demo
// binary and for tests. A zero seed falls back to the clock.
type Generator struct {
	rnd *rand.Rand
	now time.Time
}

// NewGenerator seeds a demo portfolio generator.
func NewGenerator(seed int64) Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return Generator{rnd: rand.New(rand.NewSource(seed)), now: time.Now().UTC()}
}

// Portfolio builds n clients with one or two loans each plus savings, spread
// across the arrears buckets the risk panels care about.
func (g Generator) Portfolio(orgID string, n int) ([]Client, []Loan, []SavingsAccount) {
	if n <= 0 {
		n = 12
	}
	clients := make([]Client, 0, n)
	var loans []Loan
	var savings []SavingsAccount

	for i := 0; i < n; i++ {
		c := Client{
			ID:             fmt.Sprintf("client-%03d", i+1),
			OrganizationID: orgID,
			Name:           demoNames[i%len(demoNames)],
			Phone:          fmt.Sprintf("+2547%08d", g.rnd.Intn(100_000_000)),
			Email:          fmt.Sprintf("client%03d@example.com", i+1),
			Region:         demoRegions[g.rnd.Intn(len(demoRegions))],
			JoinedAt:       g.now.AddDate(0, -g.rnd.Intn(24), 0),
		}
		clients = append(clients, c)

		loanCount := 1 + g.rnd.Intn(2)
		for j := 0; j < loanCount; j++ {
			principal := int64(g.rnd.Intn(90)+10) * 10_000 // 100.00 - 1000.00 major units
			outstanding := principal * int64(g.rnd.Intn(80)+20) / 100
			arrears := g.arrearsDays()
			loans = append(loans, Loan{
				ID:                 fmt.Sprintf("loan-%03d-%d", i+1, j+1),
				OrganizationID:     orgID,
				ClientID:           c.ID,
				Principal:          principal,
				OutstandingBalance: outstanding,
				InstallmentAmount:  principal / 12,
				ArrearsDays:        arrears,
				Status:             LoanActive,
				DisbursedAt:        g.now.AddDate(0, 0, -(arrears + g.rnd.Intn(180))),
				NextDueDate:        g.now.AddDate(0, 0, g.rnd.Intn(30)-arrears),
			})
		}

		savings = append(savings, SavingsAccount{
			ID:             fmt.Sprintf("sav-%03d", i+1),
			OrganizationID: orgID,
			ClientID:       c.ID,
			Balance:        int64(g.rnd.Intn(50_000)),
			UpdatedAt:      g.now,
		})
	}
	return clients, loans, savings
}

// arrearsDays skews towards current loans with a tail into the 7- and 30-day
// buckets, roughly matching a healthy book.
func (g Generator) arrearsDays() int {
	switch v := g.rnd.Intn(10); {
	case v < 6:
		return 0
	case v < 8:
		return 1 + g.rnd.Intn(7)
	case v < 9:
		return 8 + g.rnd.Intn(23)
	default:
		return 31 + g.rnd.Intn(60)
	}
}
