package tenant

import "strings"

// RegistrationForm carries the raw multi-section sign-up submission:
// identity, contact, location and credentials.
type RegistrationForm struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Industry           string `json:"industry"`
	OrgType            string `json:"org_type"`
	IncorporationDate  string `json:"incorporation_date"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Country            string `json:"country"`
	Region             string `json:"region"`
	City               string `json:"city"`
	Address            string `json:"address"`
	ContactFirstName   string `json:"contact_first_name"`
	ContactLastName    string `json:"contact_last_name"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
	Password           string `json:"password"`
	PasswordConfirm    string `json:"password_confirm"`
}

type requiredField struct {
	label string
	value func(f *RegistrationForm) string
}

var requiredFields = []requiredField{
	{"Organization name", func(f *RegistrationForm) string { return f.Name }},
	{"Incorporation date", func(f *RegistrationForm) string { return f.IncorporationDate }},
	{"Email", func(f *RegistrationForm) string { return f.Email }},
	{"Phone", func(f *RegistrationForm) string { return f.Phone }},
	{"Region", func(f *RegistrationForm) string { return f.Region }},
	{"City", func(f *RegistrationForm) string { return f.City }},
	{"Address", func(f *RegistrationForm) string { return f.Address }},
	{"Contact first name", func(f *RegistrationForm) string { return f.ContactFirstName }},
	{"Contact last name", func(f *RegistrationForm) string { return f.ContactLastName }},
	{"Contact email", func(f *RegistrationForm) string { return f.ContactEmail }},
	{"Contact phone", func(f *RegistrationForm) string { return f.ContactPhone }},
	{"Password", func(f *RegistrationForm) string { return f.Password }},
}

// Validate runs the flat required-field checks and returns every problem at
// once. An empty slice means the form is submittable.
func (f *RegistrationForm) Validate() []string {
	var problems []string
	for _, field := range requiredFields {
		if strings.TrimSpace(field.value(f)) == "" {
			problems = append(problems, field.label)
		}
	}
	if f.Password != f.PasswordConfirm {
		problems = append(problems, "Passwords must match")
	}
	return problems
}
