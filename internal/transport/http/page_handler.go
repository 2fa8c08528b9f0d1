package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"

	apierrors "github.com/thamirestcrl/eqc-teste/internal/errors"
	"github.com/thamirestcrl/eqc-teste/internal/middleware"
	"github.com/thamirestcrl/eqc-teste/internal/services"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

// Dashboard tabs, in display order
const (
	TabSummary  = "resumo"
	TabYearly   = "evolucao"
	TabRegional = "regional"
)

var pageTabs = []struct{ ID, Label string }{
	{TabSummary, "Resumo & Top Crimes"},
	{TabYearly, "Evolução Anual"},
	{TabRegional, "Frequência Regional"},
}

type pageTab struct {
	ID     string
	Label  string
	Active bool
	Query  template.URL
}

type pageData struct {
	Title          string
	Options        *services.DashboardOptions
	Filter         domain.FilterSelection
	Views          *domain.Views
	Tab            string
	Tabs           []pageTab
	Query          template.URL
	ChartFormat    string
	SummaryHeaders []string
	HorizonYear    int
	Error          string
}

// PageOptions tunes the dashboard page
type PageOptions struct {
	ChartFormat    string
	SummaryHeaders []string
	HorizonYear    int
}

// PageQuery is the dashboard page's query string
type PageQuery struct {
	Region   string `query:"region" validate:"max=200,printable"`
	Category string `query:"category" validate:"max=300,printable"`
	Tab      string `query:"tab" validate:"omitempty,oneof=resumo evolucao regional"`
}

// Selection converts the query into a domain filter
func (q PageQuery) Selection() domain.FilterSelection {
	return domain.FilterSelection{Region: q.Region, Category: q.Category}
}

// PageHandler renders the HTML dashboard
type PageHandler struct {
	service      DashboardService
	validator    *middleware.QueryValidator
	tmpl         *template.Template
	opts         PageOptions
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewPageHandler parses the embedded page template
func NewPageHandler(service DashboardService, validator *middleware.QueryValidator,
	opts PageOptions, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) (*PageHandler, error) {
	tmpl, err := template.New("dashboard.html").Funcs(template.FuncMap{
		"percent": func(rate float64) string {
			return strconv.FormatFloat(math.Round(rate*1000)/10, 'f', -1, 64) + "%"
		},
		"skipReason": func(v *domain.Views, name string) string {
			if v == nil {
				return ""
			}
			return v.Skipped[domain.ViewName(name)]
		},
	}).ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, err
	}
	if validator == nil {
		validator = middleware.NewQueryValidator()
	}
	if opts.ChartFormat == "" {
		opts.ChartFormat = "svg"
	}
	return &PageHandler{
		service:        service,
		validator:      validator,
		tmpl:         tmpl,
		opts:         opts,
		logger:       logger.With(slog.String("handler", "page")),
		errorHandler: errorHandler,
	}, nil
}

// ServeDashboard handles GET /
func (h *PageHandler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	var q PageQuery
	if err := h.validator.Bind(r.URL.Query(), &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if q.Tab == "" {
		q.Tab = TabSummary
	}

	data := pageData{
		Title:          "Análise de Violência de Gênero - PE",
		Tab:            q.Tab,
		ChartFormat:    h.opts.ChartFormat,
		SummaryHeaders: h.opts.SummaryHeaders,
		HorizonYear:    h.opts.HorizonYear,
	}
	status := http.StatusOK

	opts, err := h.service.Options(r.Context())
	if err == nil {
		data.Options = opts
		data.Views, err = h.service.Views(r.Context(), q.Selection())
	}
	if err != nil {
		status = h.errorHandler.ErrorToProblem(err, r).Status
		data.Error = pageMessage(err)
		h.logger.WarnContext(r.Context(), "dashboard unavailable",
			slog.String("error", err.Error()),
			slog.Int("status", status))
	}

	if data.Views != nil {
		// Selectors show the resolved selection, defaults included.
		data.Filter = data.Views.Filter
	} else {
		data.Filter = q.Selection()
	}
	data.Query = filterQuery(data.Filter)
	for _, t := range pageTabs {
		data.Tabs = append(data.Tabs, pageTab{
			ID:     t.ID,
			Label:  t.Label,
			Active: t.ID == q.Tab,
			Query:  data.Query + template.URL("&tab="+t.ID),
		})
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write page", slog.String("error", err.Error()))
	}
}

// filterQuery encodes the selection for chart and tab links. The encoded
// form is safe to splice into a URL query.
func filterQuery(f domain.FilterSelection) template.URL {
	v := url.Values{}
	region := f.Region
	if region == "" {
		region = domain.AllRegions
	}
	v.Set("region", region)
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	return template.URL(v.Encode())
}

func pageMessage(err error) string {
	switch {
	case errors.Is(err, apierrors.ErrStorage):
		return "Base de dados não encontrada ou ilegível. Execute \"eqc prepare\" e recarregue o conjunto de dados."
	case errors.Is(err, apierrors.ErrMissingColumn):
		return "A base de dados preparada não possui as colunas esperadas. Execute \"eqc prepare\" novamente."
	default:
		return "Não foi possível carregar o painel."
	}
}
