package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/internal/middleware"
	"github.com/thamirestcrl/eqc-teste/internal/services"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

// FilterQuery is the filter selection as it arrives on the query string
type FilterQuery struct {
	Region   string `query:"region" validate:"max=200,printable"`
	Category string `query:"category" validate:"max=300,printable"`
}

// Selection converts the query into a domain filter
func (q FilterQuery) Selection() domain.FilterSelection {
	return domain.FilterSelection{Region: q.Region, Category: q.Category}
}

// DashboardHandler serves the JSON, chart and export endpoints
type DashboardHandler struct {
	service      DashboardService
	validator    *middleware.QueryValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardService, validator *middleware.QueryValidator,
	logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	if validator == nil {
		validator = middleware.NewQueryValidator()
	}
	return &DashboardHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("handler", "dashboard")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard API router, mounted under /api
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/options", h.GetOptions)
	r.Get("/views", h.GetViews)
	r.Get("/charts/{name}.{format}", h.GetChart)
	r.Get("/export/summary.{format}", h.ExportSummary)
	r.Post("/dataset/reload", h.ReloadDataset)

	return r
}

// GetOptions handles GET /api/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Options(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, opts)
}

// GetViews handles GET /api/views
func (h *DashboardHandler) GetViews(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.bindFilter(w, r)
	if !ok {
		return
	}

	views, err := h.service.Views(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, views)
}

// GetChart handles GET /api/charts/{name}.{format}
func (h *DashboardHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.bindFilter(w, r)
	if !ok {
		return
	}
	name := domain.ViewName(chi.URLParam(r, "name"))
	format := chi.URLParam(r, "format")

	img, f, err := h.service.Chart(r.Context(), name, filter, format)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write chart",
			slog.String("chart", string(name)),
			slog.String("error", err.Error()))
	}
}

// ExportSummary handles GET /api/export/summary.{format}
func (h *DashboardHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.bindFilter(w, r)
	if !ok {
		return
	}

	format := services.ExportFormat(chi.URLParam(r, "format"))
	if format != services.ExportCSV && format != services.ExportXLSX {
		h.errorHandler.HandleError(w, r,
			apierrors.ErrValidation("format", "format must be csv or xlsx"))
		return
	}

	data, err := h.service.Summary(r.Context(), filter, format)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="resumo_subnotificacao.`+string(format)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write export",
			slog.String("format", string(format)),
			slog.String("error", err.Error()))
	}
}

// ReloadDataset handles POST /api/dataset/reload
func (h *DashboardHandler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Reload(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "dataset reload failed",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, opts)
}

func (h *DashboardHandler) bindFilter(w http.ResponseWriter, r *http.Request) (domain.FilterSelection, bool) {
	var q FilterQuery
	if err := h.validator.Bind(r.URL.Query(), &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return domain.FilterSelection{}, false
	}
	return q.Selection(), true
}
