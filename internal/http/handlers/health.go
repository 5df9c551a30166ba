package handlers

import (
	"context"
	"net/http"
	"time"

	"charity/internal/i18n"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	if a.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			a.logger(r).Error().Err(err).Msg("health ping failed")
			a.error(w, r, http.StatusServiceUnavailable, i18n.MsgUnavailable)
			return
		}
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
