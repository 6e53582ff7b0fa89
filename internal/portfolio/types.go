package portfolio

import "time"

// Loan status values as stored in the cache document.
const (
	LoanActive  = "active"
	LoanClosed  = "closed"
	LoanWritten = "written_off"
)

// Client is a borrower or saver registered under an organization.
type Client struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Region         string    `json:"region"`
	JoinedAt       time.Time `json:"joined_at"`
}

// Loan is one disbursed facility. Monetary fields are in minor units.
type Loan struct {
	ID                 string    `json:"id"`
	OrganizationID     string    `json:"organization_id"`
	ClientID           string    `json:"client_id"`
	Principal          int64     `json:"principal"`
	OutstandingBalance int64     `json:"outstanding_balance"`
	InstallmentAmount  int64     `json:"installment_amount"`
	ArrearsDays        int       `json:"arrears_days"`
	Status             string    `json:"status"`
	DisbursedAt        time.Time `json:"disbursed_at"`
	NextDueDate        time.Time `json:"next_due_date"`
}

// SavingsAccount is a client deposit balance in minor units.
type SavingsAccount struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	ClientID       string    `json:"client_id"`
	Balance        int64     `json:"balance"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Reminder is a stored repayment reminder line.
type Reminder struct {
	ID       string    `json:"id"`
	ClientID string    `json:"client_id"`
	LoanID   string    `json:"loan_id"`
	Message  string    `json:"message"`
	DueDate  time.Time `json:"due_date"`
}
