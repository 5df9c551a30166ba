package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"charity/internal/domain"
	"charity/internal/infra"
	"charity/internal/sqlinline"
)

type TeamRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewTeamRepository(sql infra.SQLExecutor) *TeamRepositoryPG {
	return &TeamRepositoryPG{sql: sql}
}

func (r *TeamRepositoryPG) Create(ctx context.Context, m *domain.TeamMember) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	m.UpdatedAt = m.CreatedAt
	_, err := r.sql.Exec(ctx, sqlinline.QInsertTeamMember,
		m.ID, m.Name, m.Position, m.Bio, m.AvatarURL, m.SortOrder, m.IsActive, m.CreatedAt)
	return mapErr("insert team member", err)
}

func (r *TeamRepositoryPG) Update(ctx context.Context, m *domain.TeamMember) error {
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now().UTC()
	}
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateTeamMember,
		m.ID, m.Name, m.Position, m.Bio, m.AvatarURL, m.SortOrder, m.IsActive, m.UpdatedAt)
	return mapErr("update team member", row.Scan(&m.CreatedAt))
}

func (r *TeamRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteTeamMember, id)
	return expectOne("delete team member", tag, err)
}

func (r *TeamRepositoryPG) List(ctx context.Context, activeOnly bool) ([]domain.TeamMember, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListTeamMembers, activeOnly)
	if err != nil {
		return nil, mapErr("list team members", err)
	}
	items, err := collect(rows, scanTeamMember)
	return items, mapErr("list team members", err)
}

func scanTeamMember(row rowScanner) (*domain.TeamMember, error) {
	var m domain.TeamMember
	if err := row.Scan(&m.ID, &m.Name, &m.Position, &m.Bio, &m.AvatarURL, &m.SortOrder, &m.IsActive,
		&m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

var _ domain.TeamRepository = (*TeamRepositoryPG)(nil)
