package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/http/requestutil"
	"github.com/preston-bernstein/season-dashboard-service/internal/logging"
)

// Refresher fetches from the live source and persists snapshots.
type Refresher interface {
	Refresh(ctx context.Context, a activity.Activity) (records.Record, error)
}

// AdminHandler exposes admin-only endpoints (e.g., snapshot refresh).
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// RefreshSnapshots pulls live data for ?activity= (all activities when omitted) and writes
// summary and detail snapshots. Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) RefreshSnapshots(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "live source not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	targets := activity.All()
	if raw := strings.TrimSpace(r.URL.Query().Get("activity")); raw != "" {
		a, err := activity.Parse(raw)
		if err != nil {
			logging.Warn(logger, "admin snapshot unknown activity", slog.String(logging.FieldActivity, raw))
			writeError(w, r, http.StatusBadRequest, "unknown activity", logger)
			return
		}
		targets = []activity.Activity{a}
	}

	refreshed := make([]string, 0, len(targets))
	failed := make(map[string]string)
	for _, a := range targets {
		if _, err := h.refresher.Refresh(r.Context(), a); err != nil {
			logging.Warn(logger, "admin snapshot refresh failed",
				slog.String(logging.FieldActivity, a.String()),
				slog.Any("err", err),
			)
			failed[a.String()] = err.Error()
			continue
		}
		refreshed = append(refreshed, a.String())
	}

	status := http.StatusOK
	if len(refreshed) == 0 {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]any{
		"refreshed": refreshed,
		"failed":    failed,
	}, logger)
	logging.Info(logger, "admin snapshot refresh",
		slog.Int(logging.FieldCount, len(refreshed)),
		slog.Int("failed", len(failed)),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
