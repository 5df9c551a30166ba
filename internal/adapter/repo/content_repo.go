package repo

import (
	"context"
	"time"

	"charity/internal/domain"
	"charity/internal/infra"
	"charity/internal/sqlinline"
)

// ContentRepositoryPG stores page content blocks and site settings, both
// being keyed JSON documents.
type ContentRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewContentRepository(sql infra.SQLExecutor) *ContentRepositoryPG {
	return &ContentRepositoryPG{sql: sql}
}

func (r *ContentRepositoryPG) Get(ctx context.Context, key string) (*domain.ContentBlock, error) {
	var b domain.ContentBlock
	var value []byte
	if err := r.sql.QueryRow(ctx, sqlinline.QGetContentBlock, key).Scan(&b.Key, &value, &b.UpdatedAt); err != nil {
		return nil, mapErr("get content block", err)
	}
	b.Value = value
	return &b, nil
}

func (r *ContentRepositoryPG) List(ctx context.Context) ([]domain.ContentBlock, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListContentBlocks)
	if err != nil {
		return nil, mapErr("list content blocks", err)
	}
	items, err := collect(rows, func(row rowScanner) (*domain.ContentBlock, error) {
		var b domain.ContentBlock
		var value []byte
		if err := row.Scan(&b.Key, &value, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.Value = value
		return &b, nil
	})
	return items, mapErr("list content blocks", err)
}

func (r *ContentRepositoryPG) Upsert(ctx context.Context, b *domain.ContentBlock) error {
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = time.Now().UTC()
	}
	_, err := r.sql.Exec(ctx, sqlinline.QUpsertContentBlock, b.Key, []byte(b.Value), b.UpdatedAt)
	return mapErr("upsert content block", err)
}

// ListSettings returns every setting ordered by key.
func (r *ContentRepositoryPG) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListSettings)
	if err != nil {
		return nil, mapErr("list settings", err)
	}
	items, err := collect(rows, func(row rowScanner) (*domain.Setting, error) {
		var s domain.Setting
		var value []byte
		if err := row.Scan(&s.Key, &value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Value = value
		return &s, nil
	})
	return items, mapErr("list settings", err)
}

// UpsertSettings writes all pairs atomically.
func (r *ContentRepositoryPG) UpsertSettings(ctx context.Context, settings []domain.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	keys := make([]string, len(settings))
	values := make([]string, len(settings))
	for i, s := range settings {
		keys[i] = s.Key
		values[i] = string(s.Value)
	}
	_, err := r.sql.Exec(ctx, sqlinline.QUpsertSettings, keys, values, time.Now().UTC())
	return mapErr("upsert settings", err)
}

// SettingsRepositoryPG adapts ContentRepositoryPG to domain.SettingsRepository.
type SettingsRepositoryPG struct {
	content *ContentRepositoryPG
}

func NewSettingsRepository(sql infra.SQLExecutor) *SettingsRepositoryPG {
	return &SettingsRepositoryPG{content: NewContentRepository(sql)}
}

func (r *SettingsRepositoryPG) List(ctx context.Context) ([]domain.Setting, error) {
	return r.content.ListSettings(ctx)
}

func (r *SettingsRepositoryPG) UpsertAll(ctx context.Context, settings []domain.Setting) error {
	return r.content.UpsertSettings(ctx, settings)
}

var (
	_ domain.ContentRepository  = (*ContentRepositoryPG)(nil)
	_ domain.SettingsRepository = (*SettingsRepositoryPG)(nil)
)
