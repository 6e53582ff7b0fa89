package local

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mikopo.org/internal/portfolio"
	"mikopo.org/internal/session"
	"mikopo.org/internal/tenant"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRunsMigrations(t *testing.T) {
	s := newTestStore(t)

	var name string
	err := s.DB().QueryRow(
		`select name from sqlite_master where type = 'table' and name = 'storage'`,
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "storage", name)
}

func TestDocumentEmptyByDefault(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.Document(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Organizations)
	assert.Empty(t, doc.Loans)
}

func TestDocumentRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := Document{
		Organizations: []tenant.Organization{{ID: "org-1", Name: "Acme"}},
		Clients:       []portfolio.Client{{ID: "c-1", Name: "Amina"}},
		Loans:         []portfolio.Loan{{ID: "l-1", ClientID: "c-1", Principal: 5_000_00, Status: portfolio.LoanActive}},
	}
	require.NoError(t, s.SaveDocument(ctx, in))

	out, err := s.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, in.Organizations, out.Organizations)
	assert.Equal(t, in.Clients, out.Clients)
	assert.Equal(t, in.Loans, out.Loans)
}

func TestAppendOrganizationRejectsDuplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	org := tenant.Organization{ID: "org-1", Name: "Acme"}
	require.NoError(t, s.AppendOrganization(ctx, org))

	err := s.AppendOrganization(ctx, org)
	assert.ErrorIs(t, err, tenant.ErrAlreadyExists)

	orgs, err := s.Organizations(ctx)
	require.NoError(t, err)
	assert.Len(t, orgs, 1)
}

func TestUpsertOrganizationKeepsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendOrganization(ctx, tenant.Organization{ID: "org-1", Name: "First"}))
	require.NoError(t, s.AppendOrganization(ctx, tenant.Organization{ID: "org-2", Name: "Second"}))

	require.NoError(t, s.UpsertOrganization(ctx, tenant.Organization{ID: "org-1", Name: "Renamed"}))
	require.NoError(t, s.UpsertOrganization(ctx, tenant.Organization{ID: "org-3", Name: "Third"}))

	orgs, err := s.Organizations(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 3)
	assert.Equal(t, "Renamed", orgs[0].Name)
	assert.Equal(t, "org-2", orgs[1].ID)
	assert.Equal(t, "org-3", orgs[2].ID)
}

func TestRememberedCredentialsLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.RememberedCredentials(ctx)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	creds := session.RememberedCredentials{Identifier: "acme@example.com", Password: "pw"}
	require.NoError(t, s.SaveRememberedCredentials(ctx, creds))

	got, err := s.RememberedCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	require.NoError(t, s.ClearRememberedCredentials(ctx))
	_, err = s.RememberedCredentials(ctx)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCurrentOrganizationLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	org := tenant.Organization{ID: "org-1", Name: "Acme", Username: "ab12cd34"}
	require.NoError(t, s.SaveCurrentOrganization(ctx, org))

	got, err := s.CurrentOrganization(ctx)
	require.NoError(t, err)
	assert.Equal(t, org.ID, got.ID)
	assert.Equal(t, org.Username, got.Username)

	require.NoError(t, s.ClearCurrentOrganization(ctx))
	_, err = s.CurrentOrganization(ctx)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Clearing an absent snapshot is not an error; logout is idempotent.
	assert.NoError(t, s.ClearCurrentOrganization(ctx))
}

func TestLastWriterWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := Document{Organizations: []tenant.Organization{{ID: "org-1"}}}
	second := Document{Organizations: []tenant.Organization{{ID: "org-2"}}}
	require.NoError(t, s.SaveDocument(ctx, first))
	require.NoError(t, s.SaveDocument(ctx, second))

	out, err := s.Document(ctx)
	require.NoError(t, err)
	require.Len(t, out.Organizations, 1)
	assert.Equal(t, "org-2", out.Organizations[0].ID)
}
