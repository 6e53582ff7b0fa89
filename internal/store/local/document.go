package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mikopo.org/internal/portfolio"
	"mikopo.org/internal/session"
	"mikopo.org/internal/tenant"
)

// Document is the full mock-database blob: one ordered list per entity
// collection, serialized as a single JSON value under one key. Reads and
// writes always go through the whole document, exactly like the browser
// storage it mirrors.
type Document struct {
	Organizations []tenant.Organization      `json:"organizations"`
	Clients       []portfolio.Client         `json:"clients"`
	Loans         []portfolio.Loan           `json:"loans"`
	Savings       []portfolio.SavingsAccount `json:"savings"`
	Reminders     []portfolio.Reminder       `json:"reminders"`
}

// Interface checks against the consumers.
var (
	_ tenant.Cache  = (*Store)(nil)
	_ session.Cache = (*Store)(nil)
)

// Document loads the cache document; a missing key yields an empty document.
func (s *Store) Document(ctx context.Context) (Document, error) {
	raw, err := s.get(ctx, keyDocument)
	if errors.Is(err, ErrKeyNotFound) {
		return Document{}, nil
	}
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("decode cache document: %w", err)
	}
	return doc, nil
}

// SaveDocument replaces the cache document wholesale.
func (s *Store) SaveDocument(ctx context.Context, doc Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode cache document: %w", err)
	}
	return s.set(ctx, keyDocument, raw)
}

// Organizations returns the cached organization list in insertion order.
func (s *Store) Organizations(ctx context.Context) ([]tenant.Organization, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Organizations, nil
}

// AppendOrganization adds a record, rejecting duplicate identifiers. The
// check is a linear scan over the list, matching the document's semantics.
func (s *Store) AppendOrganization(ctx context.Context, org tenant.Organization) error {
	doc, err := s.Document(ctx)
	if err != nil {
		return err
	}
	for _, existing := range doc.Organizations {
		if existing.ID == org.ID {
			return tenant.ErrAlreadyExists
		}
	}
	doc.Organizations = append(doc.Organizations, org)
	return s.SaveDocument(ctx, doc)
}

// UpsertOrganization inserts or replaces by identifier, keeping list order
// stable on replace.
func (s *Store) UpsertOrganization(ctx context.Context, org tenant.Organization) error {
	doc, err := s.Document(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i, existing := range doc.Organizations {
		if existing.ID == org.ID {
			doc.Organizations[i] = org
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Organizations = append(doc.Organizations, org)
	}
	return s.SaveDocument(ctx, doc)
}

// SaveRememberedCredentials persists the raw pair under its own key.
func (s *Store) SaveRememberedCredentials(ctx context.Context, creds session.RememberedCredentials) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode remembered credentials: %w", err)
	}
	return s.set(ctx, keyRemembered, raw)
}

// RememberedCredentials returns the stored pair, or ErrKeyNotFound.
func (s *Store) RememberedCredentials(ctx context.Context) (session.RememberedCredentials, error) {
	raw, err := s.get(ctx, keyRemembered)
	if err != nil {
		return session.RememberedCredentials{}, err
	}
	var creds session.RememberedCredentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return session.RememberedCredentials{}, fmt.Errorf("decode remembered credentials: %w", err)
	}
	return creds, nil
}

// ClearRememberedCredentials drops the stored pair.
func (s *Store) ClearRememberedCredentials(ctx context.Context) error {
	return s.delete(ctx, keyRemembered)
}

// SaveCurrentOrganization persists the session-continuity snapshot.
func (s *Store) SaveCurrentOrganization(ctx context.Context, org tenant.Organization) error {
	raw, err := json.Marshal(org)
	if err != nil {
		return fmt.Errorf("encode current organization: %w", err)
	}
	return s.set(ctx, keyCurrentOrg, raw)
}

// CurrentOrganization returns the snapshot, or ErrKeyNotFound.
func (s *Store) CurrentOrganization(ctx context.Context) (tenant.Organization, error) {
	raw, err := s.get(ctx, keyCurrentOrg)
	if err != nil {
		return tenant.Organization{}, err
	}
	var org tenant.Organization
	if err := json.Unmarshal(raw, &org); err != nil {
		return tenant.Organization{}, fmt.Errorf("decode current organization: %w", err)
	}
	return org, nil
}

// ClearCurrentOrganization removes the snapshot; this is what logout does.
func (s *Store) ClearCurrentOrganization(ctx context.Context) error {
	return s.delete(ctx, keyCurrentOrg)
}
