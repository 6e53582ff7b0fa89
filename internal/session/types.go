package session

import "time"

// Role identifies what a session is allowed to see.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleOrgAdmin Role = "organization-admin"
)

// Session identifies the currently authenticated user. Sessions have no
// expiry, rotation or revocation; they live until explicit logout or until
// the cached snapshot is removed.
type Session struct {
	UserID         string    `json:"user_id"`
	DisplayName    string    `json:"display_name"`
	Role           Role      `json:"role"`
	OrganizationID string    `json:"organization_id,omitempty"`
	Offline        bool      `json:"offline"`
	CreatedAt      time.Time `json:"created_at"`
}

// RememberedCredentials is the raw identifier/password pair persisted when
// the caller asks to be remembered. Stored unencrypted in the local cache.
type RememberedCredentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}
