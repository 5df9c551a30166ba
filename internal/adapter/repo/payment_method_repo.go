package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"charity/internal/domain"
	"charity/internal/infra"
	"charity/internal/sqlinline"
)

type PaymentMethodRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewPaymentMethodRepository(sql infra.SQLExecutor) *PaymentMethodRepositoryPG {
	return &PaymentMethodRepositoryPG{sql: sql}
}

func (r *PaymentMethodRepositoryPG) Create(ctx context.Context, p *domain.PaymentMethod) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = p.CreatedAt
	_, err := r.sql.Exec(ctx, sqlinline.QInsertPaymentMethod,
		p.ID, string(p.Type), p.Name, p.AccountName, p.AccountNumber, p.Branch,
		p.QRImageURL, p.Instructions, p.IsActive, p.SortOrder, p.CreatedAt)
	return mapErr("insert payment method", err)
}

func (r *PaymentMethodRepositoryPG) Update(ctx context.Context, p *domain.PaymentMethod) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	row := r.sql.QueryRow(ctx, sqlinline.QUpdatePaymentMethod,
		p.ID, string(p.Type), p.Name, p.AccountName, p.AccountNumber, p.Branch,
		p.QRImageURL, p.Instructions, p.IsActive, p.SortOrder, p.UpdatedAt)
	return mapErr("update payment method", row.Scan(&p.CreatedAt))
}

func (r *PaymentMethodRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeletePaymentMethod, id)
	return expectOne("delete payment method", tag, err)
}

// List returns methods in display order.
func (r *PaymentMethodRepositoryPG) List(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListPaymentMethods, activeOnly)
	if err != nil {
		return nil, mapErr("list payment methods", err)
	}
	items, err := collect(rows, scanPaymentMethod)
	return items, mapErr("list payment methods", err)
}

func scanPaymentMethod(row rowScanner) (*domain.PaymentMethod, error) {
	var p domain.PaymentMethod
	var kind string
	if err := row.Scan(&p.ID, &kind, &p.Name, &p.AccountName, &p.AccountNumber, &p.Branch,
		&p.QRImageURL, &p.Instructions, &p.IsActive, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Type = domain.PaymentMethodType(kind)
	return &p, nil
}

var _ domain.PaymentMethodRepository = (*PaymentMethodRepositoryPG)(nil)
