package tenant

import "time"

// Organization is a tenant's registration profile. It doubles as the login
// record for the organization-admin role and as the tenant-scoping key for
// everything else in the product.
//
// Password is stored and compared in plain text. That mirrors the records the
// hosted directory already holds; see DESIGN.md before changing it.
type Organization struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registration_number"`
	Industry           string    `json:"industry"`
	OrgType            string    `json:"org_type"`
	IncorporationDate  string    `json:"incorporation_date"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Country            string    `json:"country"`
	Region             string    `json:"region"`
	City               string    `json:"city"`
	Address            string    `json:"address"`
	ContactFirstName   string    `json:"contact_first_name"`
	ContactLastName    string    `json:"contact_last_name"`
	ContactEmail       string    `json:"contact_email"`
	ContactPhone       string    `json:"contact_phone"`
	Password           string    `json:"password"`
	Username           string    `json:"username"`
	Status             string    `json:"status"`
	SubscriptionPlan   string    `json:"subscription_plan,omitempty"`
	TrialEndsAt        time.Time `json:"trial_ends_at,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// MatchesIdentifier reports whether the submitted login identifier refers to
// this organization: either the organization email or the contact person's.
func (o Organization) MatchesIdentifier(identifier string) bool {
	if identifier == "" {
		return false
	}
	return o.Email == identifier || o.ContactEmail == identifier
}
