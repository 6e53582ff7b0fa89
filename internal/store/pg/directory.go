// Package pg implements the tenant.Directory against the hosted Postgres
// organizations table.
package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"mikopo.org/internal/tenant"
)

const pgUndefinedColumn = "42703"

// Directory queries and writes the remote organizations table.
type Directory struct {
	db *sql.DB
}

var _ tenant.Directory = (*Directory)(nil)

// Open connects to the hosted directory.
func Open(dsn string) (*Directory, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// Tuned pool defaults; adjust under load tests
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Directory{db: db}, nil
}

// NewDirectory wraps an existing handle (used by tests with sqlmock).
func NewDirectory(db *sql.DB) *Directory { return &Directory{db: db} }

// Close closes the pool.
func (d *Directory) Close() error { return d.db.Close() }

// DB exposes the handle for readiness probes.
func (d *Directory) DB() *sql.DB { return d.db }

const organizationColumns = `
	id, name, registration_number, industry, org_type, incorporation_date,
	email, phone, country, region, city, address,
	contact_first_name, contact_last_name, contact_email, contact_phone,
	password, username, status, created_at, updated_at`

// FindByEmail resolves an organization whose email or contact email equals
// the identifier.
func (d *Directory) FindByEmail(ctx context.Context, identifier string) (*tenant.Organization, error) {
	row := d.db.QueryRowContext(ctx, `
		select`+organizationColumns+`
		from organizations
		where email = $1 or contact_email = $1
		limit 1
	`, identifier)

	var org tenant.Organization
	err := row.Scan(
		&org.ID, &org.Name, &org.RegistrationNumber, &org.Industry, &org.OrgType, &org.IncorporationDate,
		&org.Email, &org.Phone, &org.Country, &org.Region, &org.City, &org.Address,
		&org.ContactFirstName, &org.ContactLastName, &org.ContactEmail, &org.ContactPhone,
		&org.Password, &org.Username, &org.Status, &org.CreatedAt, &org.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tenant.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query organization: %w", err)
	}
	return &org, nil
}

// Insert writes the record including the subscription-trial columns. When
// the hosted table predates those columns the caller gets
// tenant.ErrTrialColumnsMissing and should fall back to InsertLegacy.
func (d *Directory) Insert(ctx context.Context, org *tenant.Organization) error {
	_, err := d.db.ExecContext(ctx, `
		insert into organizations(`+organizationColumns+`, subscription_plan, trial_ends_at)
		values($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
	`, insertArgs(org, true)...)
	if err != nil {
		if isUndefinedColumn(err) {
			return fmt.Errorf("%w: %v", tenant.ErrTrialColumnsMissing, err)
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// InsertLegacy writes the record without the trial columns.
func (d *Directory) InsertLegacy(ctx context.Context, org *tenant.Organization) error {
	_, err := d.db.ExecContext(ctx, `
		insert into organizations(`+organizationColumns+`)
		values($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
	`, insertArgs(org, false)...)
	if err != nil {
		return fmt.Errorf("insert organization (legacy): %w", err)
	}
	return nil
}

func insertArgs(org *tenant.Organization, withTrial bool) []any {
	args := []any{
		org.ID, org.Name, org.RegistrationNumber, org.Industry, org.OrgType, org.IncorporationDate,
		org.Email, org.Phone, org.Country, org.Region, org.City, org.Address,
		org.ContactFirstName, org.ContactLastName, org.ContactEmail, org.ContactPhone,
		org.Password, org.Username, org.Status, org.CreatedAt, org.UpdatedAt,
	}
	if withTrial {
		args = append(args, org.SubscriptionPlan, org.TrialEndsAt)
	}
	return args
}

func isUndefinedColumn(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUndefinedColumn
}
