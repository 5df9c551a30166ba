package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"charity/internal/domain"
	"charity/internal/middleware"
)

const minPasswordLength = 8

type userDTO struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      domain.UserRole `json:"role"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func toUserDTO(u domain.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type userRequest struct {
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	Role     domain.UserRole `json:"role"`
	Password string          `json:"password"`
	IsActive *bool           `json:"isActive"`
}

// apply copies the request onto u. An empty password is rejected on create
// and means "unchanged" on update.
func (req userRequest) apply(u *domain.User, creating bool) error {
	u.Email = strings.ToLower(strings.TrimSpace(req.Email))
	u.Name = strings.TrimSpace(req.Name)
	u.Role = domain.UserRole(strings.ToLower(strings.TrimSpace(string(req.Role))))
	u.IsActive = req.IsActive == nil || *req.IsActive
	if err := u.Validate(); err != nil {
		return err
	}
	if req.Password == "" && !creating {
		return nil
	}
	if len(req.Password) < minPasswordLength {
		return domain.Invalid("password", "too short")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt rejects passwords over 72 bytes
		return domain.Invalid("password", "too long")
	}
	u.PasswordHash = string(hash)
	return nil
}

func (a *App) UsersList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Users.List(r.Context())
	if err != nil {
		a.fail(w, r, err, "list users failed")
		return
	}
	out := make([]userDTO, 0, len(items))
	for _, u := range items {
		out = append(out, toUserDTO(u))
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}

func (a *App) UsersGet(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	u, err := a.Users.GetByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, err, "get user failed")
		return
	}
	a.json(w, http.StatusOK, toUserDTO(*u))
}

func (a *App) UsersCreate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !a.decode(w, r, &req) {
		return
	}
	u := &domain.User{CreatedAt: a.now().UTC()}
	if err := req.apply(u, true); err != nil {
		a.fail(w, r, err, "validate user")
		return
	}
	if err := a.Users.Create(r.Context(), u); err != nil {
		a.fail(w, r, err, "create user failed")
		return
	}
	a.json(w, http.StatusCreated, toUserDTO(*u))
}

func (a *App) UsersUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var req userRequest
	if !a.decode(w, r, &req) {
		return
	}
	u := &domain.User{ID: id, UpdatedAt: a.now().UTC()}
	if err := req.apply(u, false); err != nil {
		a.fail(w, r, err, "validate user")
		return
	}
	if a.isSelf(r, id) && (!u.IsAdmin() || !u.IsActive) {
		// an admin cannot lock themselves out
		a.fail(w, r, domain.ErrForbidden, "update own user")
		return
	}
	if err := a.Users.Update(r.Context(), u); err != nil {
		a.fail(w, r, err, "update user failed")
		return
	}
	a.json(w, http.StatusOK, toUserDTO(*u))
}

func (a *App) UsersDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if a.isSelf(r, id) {
		a.fail(w, r, domain.ErrForbidden, "delete own user")
		return
	}
	if err := a.Users.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err, "delete user failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) isSelf(r *http.Request, id string) bool {
	claims := middleware.ClaimsFromContext(r.Context())
	return claims != nil && claims.Subject == id
}
