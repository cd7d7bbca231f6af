package reach

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/uzstat/clickstream-cli/internal/store"
)

// ReportGetter loads a stored report by ID. A nil report means not found.
type ReportGetter interface {
	GetReport(ctx context.Context, id string) (*store.Report, error)
}

// Handler serves the reach API.
type Handler struct {
	reports ReportGetter
	querier Querier
}

func NewHandler(reports ReportGetter, querier Querier) *Handler {
	return &Handler{reports: reports, querier: querier}
}

// Router builds the chi router with CORS and request logging.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", h.health)
	r.Get("/reports/{id}/cumulative-reach", h.cumulativeReach)
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) cumulativeReach(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := h.reports.GetReport(r.Context(), id)
	if err != nil {
		zap.L().Error("load report", zap.String("report_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load report"})
		return
	}
	if report == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "report not found"})
		return
	}

	opts := QueryOptions{Platforms: r.URL.Query()["platforms"]}
	if raw := r.URL.Query().Get("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "top_n must be a positive integer"})
			return
		}
		opts.TopN = n
	}

	platforms, err := h.querier.PlatformReach(r.Context(), report.Filters, opts)
	if err != nil {
		zap.L().Error("platform reach query", zap.String("report_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "reach query failed"})
		return
	}
	if len(platforms) == 0 {
		writeJSON(w, http.StatusOK, []PlatformReach{})
		return
	}

	writeJSON(w, http.StatusOK, Cumulative(platforms))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
