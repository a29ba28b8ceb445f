package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/season-dashboard-service/internal/app/activities"
	"github.com/preston-bernstein/season-dashboard-service/internal/calendar"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/logging"
	"github.com/preston-bernstein/season-dashboard-service/internal/poller"
)

type nowFunc func() time.Time

var errInvalidLive = errors.New("invalid live flag (expected true or false)")

// Handler wires HTTP routes to the orchestrator and resolver.
type Handler struct {
	svc        *activities.Service
	logger     *slog.Logger
	now        nowFunc
	statusFn   func() poller.Status
	preferLive bool
}

// NewHandler constructs a Handler. preferLive is the default when a request omits ?live.
func NewHandler(svc *activities.Service, logger *slog.Logger, statusFn func() poller.Status, preferLive bool) *Handler {
	return &Handler{
		svc:        svc,
		logger:     logger,
		now:        time.Now,
		statusFn:   statusFn,
		preferLive: preferLive,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic. Without a poller the service is always ready, since
// every read falls back to snapshots or defaults.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Season returns the status of every activity and the primary selection.
func (h *Handler) Season(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, h.svc.Resolver().Overview(h.now()), h.logger)
}

// SeasonByActivity returns the status row for one activity.
func (h *Handler) SeasonByActivity(w nethttp.ResponseWriter, r *nethttp.Request) {
	a, ok := h.activityParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, h.svc.Resolver().Describe(a, h.now()), h.logger)
}

// Activities returns every activity's record, ordered as activity.All.
func (h *Handler) Activities(w nethttp.ResponseWriter, r *nethttp.Request) {
	preferLive, err := h.liveParam(r)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	results := h.svc.FetchAll(r.Context(), preferLive)
	logging.Info(loggerFromContext(r, h.logger), "served activities",
		slog.Int(logging.FieldCount, len(results)),
		slog.Bool("live", preferLive),
	)
	writeJSON(w, nethttp.StatusOK, map[string]any{"activities": results}, h.logger)
}

// ActivityByName returns one activity's record with its source and countdown.
func (h *Handler) ActivityByName(w nethttp.ResponseWriter, r *nethttp.Request) {
	a, ok := h.activityParam(w, r)
	if !ok {
		return
	}
	preferLive, err := h.liveParam(r)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	res, err := h.svc.Fetch(r.Context(), a, preferLive)
	if err != nil {
		writeError(w, r, nethttp.StatusNotFound, "unknown activity", h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "served activity",
		slog.String(logging.FieldActivity, a.String()),
		slog.String(logging.FieldSource, string(res.Source)),
		slog.String(logging.FieldSeason, string(res.Record.SeasonStatus)),
	)
	writeJSON(w, nethttp.StatusOK, res, h.logger)
}

// Calendar serves upcoming fixtures and season windows as text/calendar.
func (h *Handler) Calendar(w nethttp.ResponseWriter, r *nethttp.Request) {
	results := h.svc.FetchAll(r.Context(), false)
	recs := make([]records.Record, 0, len(results))
	for _, res := range results {
		recs = append(recs, res.Record)
	}
	body := calendar.Render(h.svc.Resolver().Config(), recs, h.now())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(nethttp.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "failed to write calendar", slog.Any("err", err))
	}
}

func (h *Handler) activityParam(w nethttp.ResponseWriter, r *nethttp.Request) (activity.Activity, bool) {
	raw := strings.TrimSpace(r.PathValue("activity"))
	a, err := activity.Parse(raw)
	if err != nil {
		writeError(w, r, nethttp.StatusNotFound, "unknown activity", h.logger)
		return "", false
	}
	return a, true
}

func (h *Handler) liveParam(r *nethttp.Request) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("live"))
	if raw == "" {
		return h.preferLive, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errInvalidLive
	}
	return v, nil
}
