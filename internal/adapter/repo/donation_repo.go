package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"charity/internal/domain"
	"charity/internal/infra"
	"charity/internal/sqlinline"
)

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(sql infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: sql}
}

// Create inserts a new donation record.
func (r *DonationRepositoryPG) Create(ctx context.Context, d *domain.Donation) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	d.UpdatedAt = d.CreatedAt
	if d.IsConfirmed && d.ConfirmedAt == nil {
		at := d.CreatedAt
		d.ConfirmedAt = &at
	}
	d.ActivityID = emptyToNil(d.ActivityID)
	d.PaymentMethodID = emptyToNil(d.PaymentMethodID)
	_, err := r.sql.Exec(ctx, sqlinline.QInsertDonation,
		d.ID, d.ActivityID, d.PaymentMethodID, d.Name, d.Amount, d.Message,
		d.IsPublic, d.IsAnonymous, d.IsConfirmed, d.ConfirmedAt, d.CreatedAt)
	return mapErr("insert donation", err)
}

func (r *DonationRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	d, err := scanDonation(r.sql.QueryRow(ctx, sqlinline.QGetDonation, id))
	if err != nil {
		return nil, mapErr("get donation", err)
	}
	return d, nil
}

// List returns donations newest first.
func (r *DonationRepositoryPG) List(ctx context.Context, f domain.DonationFilter) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonations,
		emptyToNil(f.ActivityID), f.General, f.Confirmed, f.CreatedBefore, f.OnlyPublic,
		f.Search, f.Since, f.Until, f.Limit, f.Offset)
	if err != nil {
		return nil, mapErr("list donations", err)
	}
	items, err := collect(rows, scanDonation)
	return items, mapErr("list donations", err)
}

func (r *DonationRepositoryPG) Confirm(ctx context.Context, id string, at time.Time) (*domain.Donation, error) {
	d, err := scanDonation(r.sql.QueryRow(ctx, sqlinline.QConfirmDonation, id, at))
	if err != nil {
		return nil, mapErr("confirm donation", err)
	}
	return d, nil
}

func (r *DonationRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteDonation, id)
	return expectOne("delete donation", tag, err)
}

// ListOverdueUnreminded returns unconfirmed donations created at or before
// createdBefore that have not had a reminder yet, oldest first.
func (r *DonationRepositoryPG) ListOverdueUnreminded(ctx context.Context, createdBefore time.Time, limit int) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListOverdueUnreminded, createdBefore, limit)
	if err != nil {
		return nil, mapErr("list overdue donations", err)
	}
	items, err := collect(rows, scanDonation)
	return items, mapErr("list overdue donations", err)
}

func (r *DonationRepositoryPG) MarkReminded(ctx context.Context, id string, at time.Time) error {
	_, err := r.sql.Exec(ctx, sqlinline.QMarkDonationReminded, id, at)
	return mapErr("mark donation reminded", err)
}

func scanDonation(row rowScanner) (*domain.Donation, error) {
	var d domain.Donation
	if err := row.Scan(&d.ID, &d.ActivityID, &d.PaymentMethodID, &d.Name, &d.Amount, &d.Message,
		&d.IsPublic, &d.IsAnonymous, &d.IsConfirmed, &d.ConfirmedAt, &d.RemindedAt,
		&d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
