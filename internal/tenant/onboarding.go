package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mikopo.org/internal/audit"
	"mikopo.org/internal/ids"
	"mikopo.org/internal/notify"
	"mikopo.org/internal/obs"
)

const (
	defaultStatus   = "active"
	trialPlan       = "trial"
	trialPeriod     = 30 * 24 * time.Hour
	usernameLength  = 8
	idRegenAttempts = 5
)

// Onboarding registers organizations: validate the form, synthesize
// identifiers, append to the local cache, then best-effort sync to the remote
// directory. The local write is authoritative; remote failure only produces a
// notice.
type Onboarding struct {
	cache   Cache
	dir     Directory
	notices *notify.Hub
	now     func() time.Time
}

// OnboardingOption configures Onboarding behavior.
type OnboardingOption func(*Onboarding)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) OnboardingOption {
	return func(o *Onboarding) {
		if fn != nil {
			o.now = fn
		}
	}
}

// NewOnboarding constructs the registration flow. dir may be nil when the
// deployment runs without a remote directory; notices may be nil in tests.
func NewOnboarding(cache Cache, dir Directory, notices *notify.Hub, opts ...OnboardingOption) *Onboarding {
	o := &Onboarding{
		cache:   cache,
		dir:     dir,
		notices: notices,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RegistrationResult reports the created record and how the remote sync went.
type RegistrationResult struct {
	Organization Organization
	Synced       bool
	Notice       string
}

// Register processes one sign-up submission end to end.
//
// Validation problems abort before any write and come back as a
// *ValidationError listing every missing field. After the local append
// succeeds the record is considered created regardless of the remote outcome.
func (o *Onboarding) Register(ctx context.Context, form *RegistrationForm) (RegistrationResult, error) {
	if problems := form.Validate(); len(problems) > 0 {
		obs.ObserveOnboarding("validation_failed")
		return RegistrationResult{}, &ValidationError{Fields: problems}
	}

	now := o.now().UTC()
	org := Organization{
		Name:               form.Name,
		RegistrationNumber: form.RegistrationNumber,
		Industry:           form.Industry,
		OrgType:            form.OrgType,
		IncorporationDate:  form.IncorporationDate,
		Email:              form.Email,
		Phone:              form.Phone,
		Country:            form.Country,
		Region:             form.Region,
		City:               form.City,
		Address:            form.Address,
		ContactFirstName:   form.ContactFirstName,
		ContactLastName:    form.ContactLastName,
		ContactEmail:       form.ContactEmail,
		ContactPhone:       form.ContactPhone,
		Password:           form.Password,
		Username:           ids.NewUsername(usernameLength),
		Status:             defaultStatus,
		SubscriptionPlan:   trialPlan,
		TrialEndsAt:        now.Add(trialPeriod),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	id, err := o.uniqueID(ctx)
	if err != nil {
		obs.ObserveOnboarding("failed")
		return RegistrationResult{}, err
	}
	org.ID = id

	if err := o.cache.AppendOrganization(ctx, org); err != nil {
		obs.ObserveOnboarding("failed")
		return RegistrationResult{}, fmt.Errorf("append organization to cache: %w", err)
	}

	result := RegistrationResult{Organization: org, Synced: true}
	if err := o.syncRemote(ctx, &org); err != nil {
		result.Synced = false
		result.Notice = "Registration saved locally; remote sync failed and will not be retried automatically."
		if o.notices != nil {
			o.notices.Publish(notify.KindSyncFailed, result.Notice)
		}
		obs.Debug("organization remote sync failed", map[string]any{
			"org_id": org.ID,
			"error":  err.Error(),
		})
	}

	_ = audit.LogEvent(ctx, "tenant.organization.registered", map[string]any{
		"org_id":   org.ID,
		"username": org.Username,
		"synced":   result.Synced,
	})
	obs.ObserveOnboarding("created")
	return result, nil
}

// uniqueID draws identifiers until one is unique among the cached records.
// Collisions are vanishingly rare; the retry bound only guards a broken
// random source.
func (o *Onboarding) uniqueID(ctx context.Context) (string, error) {
	existing, err := o.cache.Organizations(ctx)
	if err != nil {
		return "", fmt.Errorf("read cached organizations: %w", err)
	}
	taken := make(map[string]struct{}, len(existing))
	for _, org := range existing {
		taken[org.ID] = struct{}{}
	}
	for i := 0; i < idRegenAttempts; i++ {
		id := ids.NewOrgID()
		if _, dup := taken[id]; !dup {
			return id, nil
		}
	}
	return "", errors.New("tenant: could not generate a unique identifier")
}

func (o *Onboarding) syncRemote(ctx context.Context, org *Organization) error {
	if o.dir == nil {
		return ErrRemoteUnavailable
	}
	err := o.dir.Insert(ctx, org)
	if errors.Is(err, ErrTrialColumnsMissing) {
		// Older hosted tables predate the trial columns.
		err = o.dir.InsertLegacy(ctx, org)
	}
	return err
}
