package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"charity/internal/domain"
)

type contentDTO struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type contentRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// ContentGet returns one block when ?key= is given, otherwise every block.
func (a *App) ContentGet(w http.ResponseWriter, r *http.Request) {
	if key := strings.TrimSpace(r.URL.Query().Get("key")); key != "" {
		if err := domain.ValidateKey(key); err != nil {
			a.fail(w, r, err, "validate content key")
			return
		}
		b, err := a.Content.Get(r.Context(), key)
		if err != nil {
			a.fail(w, r, err, "get content failed")
			return
		}
		a.json(w, http.StatusOK, contentDTO{Key: b.Key, Value: b.Value, UpdatedAt: b.UpdatedAt})
		return
	}
	blocks, err := a.Content.List(r.Context())
	if err != nil {
		a.fail(w, r, err, "list content failed")
		return
	}
	out := make([]contentDTO, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, contentDTO{Key: b.Key, Value: b.Value, UpdatedAt: b.UpdatedAt})
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}

func (a *App) ContentUpsert(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !a.decode(w, r, &req) {
		return
	}
	key := strings.TrimSpace(req.Key)
	if err := domain.ValidateKey(key); err != nil {
		a.fail(w, r, err, "validate content key")
		return
	}
	if len(req.Value) == 0 {
		a.fail(w, r, domain.Invalid("value", "required"), "validate content value")
		return
	}
	b := &domain.ContentBlock{Key: key, Value: req.Value, UpdatedAt: a.now().UTC()}
	if err := a.Content.Upsert(r.Context(), b); err != nil {
		a.fail(w, r, err, "upsert content failed")
		return
	}
	a.json(w, http.StatusOK, contentDTO{Key: b.Key, Value: b.Value, UpdatedAt: b.UpdatedAt})
}

// SettingsGet returns settings as a single key to value object.
func (a *App) SettingsGet(w http.ResponseWriter, r *http.Request) {
	items, err := a.Settings.List(r.Context())
	if err != nil {
		a.fail(w, r, err, "list settings failed")
		return
	}
	out := make(map[string]json.RawMessage, len(items))
	for _, s := range items {
		out[s.Key] = s.Value
	}
	a.json(w, http.StatusOK, out)
}

// SettingsUpdate upserts every key in the body; absent keys are untouched.
func (a *App) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var req map[string]json.RawMessage
	if !a.decode(w, r, &req) {
		return
	}
	settings := make([]domain.Setting, 0, len(req))
	for key, value := range req {
		if err := domain.ValidateKey(key); err != nil {
			a.fail(w, r, err, "validate setting key")
			return
		}
		settings = append(settings, domain.Setting{Key: key, Value: value})
	}
	if err := a.Settings.UpsertAll(r.Context(), settings); err != nil {
		a.fail(w, r, err, "update settings failed")
		return
	}
	a.SettingsGet(w, r)
}
