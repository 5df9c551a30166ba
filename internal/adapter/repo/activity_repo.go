package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"charity/internal/domain"
	"charity/internal/infra"
	"charity/internal/sqlinline"
)

// ActivityRepositoryPG implements domain.ActivityRepository.
type ActivityRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewActivityRepository(sql infra.SQLExecutor) *ActivityRepositoryPG {
	return &ActivityRepositoryPG{sql: sql}
}

// Create assigns an id and timestamps when missing and inserts the row.
func (r *ActivityRepositoryPG) Create(ctx context.Context, a *domain.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	a.UpdatedAt = a.CreatedAt
	images, err := marshalImages(a.Images)
	if err != nil {
		return err
	}
	_, err = r.sql.Exec(ctx, sqlinline.QInsertActivity,
		a.ID, a.Title, a.Slug, a.Location, a.TripDate, a.Category,
		a.Description, a.Content, images, a.IsPublished, a.IsUpcoming, a.CreatedAt)
	return mapErr("insert activity", err)
}

func (r *ActivityRepositoryPG) Update(ctx context.Context, a *domain.Activity) error {
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = time.Now().UTC()
	}
	images, err := marshalImages(a.Images)
	if err != nil {
		return err
	}
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateActivity,
		a.ID, a.Title, a.Slug, a.Location, a.TripDate, a.Category,
		a.Description, a.Content, images, a.IsPublished, a.IsUpcoming, a.UpdatedAt)
	return mapErr("update activity", row.Scan(&a.CreatedAt))
}

func (r *ActivityRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteActivity, id)
	return expectOne("delete activity", tag, err)
}

func (r *ActivityRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	a, err := scanActivity(r.sql.QueryRow(ctx, sqlinline.QGetActivityByID, id))
	if err != nil {
		return nil, mapErr("get activity", err)
	}
	return a, nil
}

func (r *ActivityRepositoryPG) GetBySlug(ctx context.Context, slug string) (*domain.Activity, error) {
	a, err := scanActivity(r.sql.QueryRow(ctx, sqlinline.QGetActivityBySlug, slug))
	if err != nil {
		return nil, mapErr("get activity by slug", err)
	}
	return a, nil
}

func (r *ActivityRepositoryPG) List(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListActivities, f.Published, f.Upcoming, f.Category)
	if err != nil {
		return nil, mapErr("list activities", err)
	}
	items, err := collect(rows, scanActivity)
	return items, mapErr("list activities", err)
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	var images []byte
	if err := row.Scan(&a.ID, &a.Title, &a.Slug, &a.Location, &a.TripDate, &a.Category,
		&a.Description, &a.Content, &images, &a.IsPublished, &a.IsUpcoming, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Images = []string{}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &a.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	return &a, nil
}

func marshalImages(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}
	return b, nil
}

// collect drains rows through scan, closing them on return.
func collect[T any](rows pgx.Rows, scan func(rowScanner) (*T, error)) ([]T, error) {
	defer rows.Close()
	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.ActivityRepository = (*ActivityRepositoryPG)(nil)
