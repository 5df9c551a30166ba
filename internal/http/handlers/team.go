package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"charity/internal/domain"
	"charity/internal/middleware"
)

type teamMemberDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  string `json:"position"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
	SortOrder int    `json:"sortOrder"`
	IsActive  bool   `json:"isActive"`
}

type teamMemberRequest struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
	SortOrder int    `json:"sortOrder"`
	IsActive  *bool  `json:"isActive"`
}

func (req teamMemberRequest) apply(m *domain.TeamMember) error {
	m.Name = strings.TrimSpace(req.Name)
	m.Position = strings.TrimSpace(req.Position)
	m.Bio = req.Bio
	m.AvatarURL = strings.TrimSpace(req.AvatarURL)
	m.SortOrder = req.SortOrder
	m.IsActive = req.IsActive == nil || *req.IsActive
	return m.Validate()
}

func toTeamMemberDTO(m domain.TeamMember) teamMemberDTO {
	return teamMemberDTO{
		ID:        m.ID,
		Name:      m.Name,
		Position:  m.Position,
		Bio:       m.Bio,
		AvatarURL: m.AvatarURL,
		SortOrder: m.SortOrder,
		IsActive:  m.IsActive,
	}
}

func (a *App) TeamList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Team.List(r.Context(), !middleware.IsStaff(r.Context()))
	if err != nil {
		a.fail(w, r, err, "list team failed")
		return
	}
	out := make([]teamMemberDTO, 0, len(items))
	for _, m := range items {
		out = append(out, toTeamMemberDTO(m))
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}

func (a *App) TeamCreate(w http.ResponseWriter, r *http.Request) {
	var req teamMemberRequest
	if !a.decode(w, r, &req) {
		return
	}
	m := &domain.TeamMember{CreatedAt: a.now().UTC()}
	if err := req.apply(m); err != nil {
		a.fail(w, r, err, "validate team member")
		return
	}
	if err := a.Team.Create(r.Context(), m); err != nil {
		a.fail(w, r, err, "create team member failed")
		return
	}
	a.json(w, http.StatusCreated, toTeamMemberDTO(*m))
}

func (a *App) TeamUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var req teamMemberRequest
	if !a.decode(w, r, &req) {
		return
	}
	m := &domain.TeamMember{ID: id, UpdatedAt: a.now().UTC()}
	if err := req.apply(m); err != nil {
		a.fail(w, r, err, "validate team member")
		return
	}
	if err := a.Team.Update(r.Context(), m); err != nil {
		a.fail(w, r, err, "update team member failed")
		return
	}
	a.json(w, http.StatusOK, toTeamMemberDTO(*m))
}

func (a *App) TeamDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := a.Team.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err, "delete team member failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
