package session

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer            = "mikopo"
	secretEnvVariable = "MIKOPO_AUTH_SECRET"
)

var (
	errMissingSecret = errors.New("session secret is not configured")

	secretMu sync.Mutex
	secret   cachedSecret
)

type cachedSecret struct {
	value []byte
	err   error
	ready bool
}

// Claims carries a full session inside a signed token. Tokens intentionally
// have no expiry claim: sessions live until explicit logout, so validation
// checks signature and issuer only.
type Claims struct {
	DisplayName    string `json:"name"`
	Role           Role   `json:"role"`
	OrganizationID string `json:"org,omitempty"`
	Offline        bool   `json:"offline,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs the session with HS256.
func GenerateToken(s Session) (string, error) {
	if strings.TrimSpace(s.UserID) == "" {
		return "", errors.New("session user id is required")
	}
	secretBytes, err := loadSecret()
	if err != nil {
		return "", err
	}

	claims := Claims{
		DisplayName:    s.DisplayName,
		Role:           s.Role,
		OrganizationID: s.OrganizationID,
		Offline:        s.Offline,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  s.UserID,
			IssuedAt: jwt.NewNumericDate(s.CreatedAt.UTC()),
			ID:       uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretBytes)
}

// ParseToken verifies the token signature and reconstructs the session.
func ParseToken(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrInvalidToken
	}
	secretBytes, err := loadSecret()
	if err != nil {
		return Session{}, err
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return secretBytes, nil
	})
	if err != nil {
		return Session{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Session{}, ErrInvalidToken
	}
	if claims.Issuer != issuer || strings.TrimSpace(claims.Subject) == "" {
		return Session{}, ErrInvalidToken
	}
	var created time.Time
	if claims.IssuedAt != nil {
		created = claims.IssuedAt.Time
	}
	return Session{
		UserID:         claims.Subject,
		DisplayName:    claims.DisplayName,
		Role:           claims.Role,
		OrganizationID: claims.OrganizationID,
		Offline:        claims.Offline,
		CreatedAt:      created,
	}, nil
}

func loadSecret() ([]byte, error) {
	secretMu.Lock()
	defer secretMu.Unlock()
	if secret.ready {
		return secret.value, secret.err
	}
	raw := strings.TrimSpace(os.Getenv(secretEnvVariable))
	if raw == "" {
		secret.err = errMissingSecret
		secret.ready = true
		return nil, secret.err
	}
	secret.value = []byte(raw)
	secret.err = nil
	secret.ready = true
	return secret.value, nil
}

// ResetSecretForTests clears the cached secret value. Only intended for test use.
func ResetSecretForTests() {
	secretMu.Lock()
	defer secretMu.Unlock()
	secret = cachedSecret{}
}
