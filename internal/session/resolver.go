package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mikopo.org/internal/audit"
	"mikopo.org/internal/obs"
	"mikopo.org/internal/tenant"
)

// demoAccount is a hardcoded credential pair kept for product demos. Demo
// logins never touch the directory or the cache.
type demoAccount struct {
	password    string
	displayName string
	role        Role
}

var demoAccounts = map[string]demoAccount{
	"12345": {password: "Test@1234", displayName: "Demo Admin", role: RoleAdmin},
	"67890": {password: "Work@1234", displayName: "Demo Officer", role: RoleEmployee},
}

// Cache is the slice of the local mirror the resolver needs.
// internal/store/local implements it.
type Cache interface {
	Organizations(ctx context.Context) ([]tenant.Organization, error)
	UpsertOrganization(ctx context.Context, org tenant.Organization) error
	SaveRememberedCredentials(ctx context.Context, creds RememberedCredentials) error
	SaveCurrentOrganization(ctx context.Context, org tenant.Organization) error
	ClearCurrentOrganization(ctx context.Context) error
}

// Resolver turns an identifier/password pair into a Session. Sources are
// tried in fixed priority order: hardcoded demo accounts, the remote
// organization directory, then the local cache mirror.
type Resolver struct {
	dir   tenant.Directory
	cache Cache
	now   func() time.Time
}

// ResolverOption configures Resolver behavior.
type ResolverOption func(*Resolver)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ResolverOption {
	return func(r *Resolver) {
		if fn != nil {
			r.now = fn
		}
	}
}

// NewResolver constructs a Resolver. dir may be nil for offline-only
// deployments; every remote lookup then falls through to the cache.
func NewResolver(dir tenant.Directory, cache Cache, opts ...ResolverOption) *Resolver {
	r := &Resolver{dir: dir, cache: cache, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve authenticates one submitted credential pair.
//
// There is no lockout, retry or per-identifier throttling here; repeated
// failures cost the caller nothing but another round trip. All misses map to
// ErrInvalidCredentials; the mismatch/not-found distinction goes only to the
// debug channel.
func (r *Resolver) Resolve(ctx context.Context, identifier, password string, remember bool) (Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		obs.ObserveLogin("failure", "none")
		return Session{}, ErrInvalidCredentials
	}

	if acct, ok := demoAccounts[identifier]; ok && acct.password == password {
		s := Session{
			UserID:      identifier,
			DisplayName: acct.displayName,
			Role:        acct.role,
			CreatedAt:   r.now().UTC(),
		}
		obs.ObserveLogin("success", "demo")
		_ = audit.LogEvent(ctx, "session.login.demo", map[string]any{"identifier": identifier})
		return s, nil
	}

	s, err := r.resolveRemote(ctx, identifier, password, remember)
	switch {
	case err == nil:
		obs.ObserveLogin("success", "remote")
		_ = audit.LogEvent(ctx, "session.login.remote", map[string]any{"org_id": s.OrganizationID})
		return s, nil
	case errors.Is(err, ErrInvalidCredentials):
		obs.ObserveLogin("failure", "remote")
		return Session{}, ErrInvalidCredentials
	}

	// Remote transport failure or no matching row: same comparison rule
	// against the cache mirror, flagged as offline.
	s, cacheErr := r.resolveFromCache(ctx, identifier, password, remember)
	switch {
	case cacheErr == nil:
		obs.ObserveLogin("success", "cache")
		_ = audit.LogEvent(ctx, "session.login.offline", map[string]any{"org_id": s.OrganizationID})
		return s, nil
	case errors.Is(cacheErr, ErrInvalidCredentials):
		obs.ObserveLogin("failure", "cache")
		return Session{}, ErrInvalidCredentials
	default:
		obs.ObserveLogin("failure", "cache")
		return Session{}, fmt.Errorf("scan local cache: %w", cacheErr)
	}
}

// resolveRemote returns ErrInvalidCredentials on a password mismatch,
// tenant.ErrNotFound when no row matched, and the transport error otherwise.
func (r *Resolver) resolveRemote(ctx context.Context, identifier, password string, remember bool) (Session, error) {
	if r.dir == nil {
		return Session{}, tenant.ErrRemoteUnavailable
	}
	org, err := r.dir.FindByEmail(ctx, identifier)
	if err != nil {
		if !errors.Is(err, tenant.ErrNotFound) {
			obs.Debug("remote directory lookup failed", map[string]any{"error": err.Error()})
		} else {
			obs.Debug("organization not found in remote directory", map[string]any{"identifier": identifier})
		}
		return Session{}, err
	}
	if org.Password != password {
		obs.Debug("password mismatch for remote organization", map[string]any{"identifier": identifier})
		return Session{}, ErrInvalidCredentials
	}
	if err := r.establish(ctx, *org, remember, identifier, password); err != nil {
		return Session{}, err
	}
	return r.buildSession(*org, false), nil
}

func (r *Resolver) resolveFromCache(ctx context.Context, identifier, password string, remember bool) (Session, error) {
	orgs, err := r.cache.Organizations(ctx)
	if err != nil {
		return Session{}, err
	}
	for _, org := range orgs {
		if !org.MatchesIdentifier(identifier) {
			continue
		}
		if org.Password != password {
			obs.Debug("password mismatch for cached organization", map[string]any{"identifier": identifier})
			return Session{}, ErrInvalidCredentials
		}
		if remember {
			if err := r.cache.SaveRememberedCredentials(ctx, RememberedCredentials{Identifier: identifier, Password: password}); err != nil {
				return Session{}, err
			}
		}
		if err := r.cache.SaveCurrentOrganization(ctx, org); err != nil {
			return Session{}, err
		}
		return r.buildSession(org, true), nil
	}
	return Session{}, ErrInvalidCredentials
}

// establish mirrors the remote record locally so the next outage can still
// authenticate, and optionally persists the raw credentials.
func (r *Resolver) establish(ctx context.Context, org tenant.Organization, remember bool, identifier, password string) error {
	if err := r.cache.UpsertOrganization(ctx, org); err != nil {
		return fmt.Errorf("mirror organization: %w", err)
	}
	if remember {
		if err := r.cache.SaveRememberedCredentials(ctx, RememberedCredentials{Identifier: identifier, Password: password}); err != nil {
			return fmt.Errorf("persist remembered credentials: %w", err)
		}
	}
	if err := r.cache.SaveCurrentOrganization(ctx, org); err != nil {
		return fmt.Errorf("persist current organization: %w", err)
	}
	return nil
}

func (r *Resolver) buildSession(org tenant.Organization, offline bool) Session {
	name := org.Name
	if name == "" {
		name = org.Username
	}
	return Session{
		UserID:         org.ID,
		DisplayName:    name,
		Role:           RoleOrgAdmin,
		OrganizationID: org.ID,
		Offline:        offline,
		CreatedAt:      r.now().UTC(),
	}
}

// Logout removes the persisted current-organization snapshot. Remembered
// credentials, when present, survive logout by design.
func (r *Resolver) Logout(ctx context.Context) error {
	_ = audit.LogEvent(ctx, "session.logout", nil)
	return r.cache.ClearCurrentOrganization(ctx)
}
