package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"socialdash/internal/engine"
	"socialdash/internal/metrics"
	"socialdash/internal/models"
	apperrors "socialdash/pkg/errors"
)

// Handler serves dashboard views over one shared Selection. Requests run
// concurrently, so the selection and dataset sit behind mu.
type Handler struct {
	mu      sync.RWMutex
	data    *engine.Dataset
	sel     *engine.Selection
	topN    int
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewHandler(data *engine.Dataset, topN int, logger *zap.Logger, m *metrics.Metrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if topN <= 0 {
		topN = engine.DefaultTopN
	}
	h := &Handler{topN: topN, logger: logger, metrics: m}
	if data != nil {
		h.SetData(data)
	}
	return h
}

// SetData swaps in a loaded dataset and resets the selection to its latest period.
func (h *Handler) SetData(data *engine.Dataset) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.data = data
	h.sel = engine.NewSelection(data.Periods())
	if h.metrics != nil {
		h.metrics.DatasetRecords.Set(float64(data.RecordCount()))
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/periods", h.GetPeriods)
	api.POST("/selection", h.SelectPeriod)
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/summary", h.GetSummary)
	api.GET("/rankings/:metric", h.GetRanking)
	api.GET("/entities/:name", h.GetEntity)

	e.GET("/healthz", h.Health)
	if h.metrics != nil {
		e.GET("/metrics", h.metrics.Handler())
	}
}

// --- HELPERS ---

func getLimit(c echo.Context, defaultLimit int) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		return defaultLimit
	}
	return limit
}

// snapshot returns the dataset and a private copy of the selection, moved to
// ?period= when that names a known period.
func (h *Handler) snapshot(c echo.Context) (*engine.Dataset, *engine.Selection, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.data == nil {
		return nil, nil, apperrors.NewDashboardError("dataset is still loading", apperrors.CodeUnavailable, http.StatusServiceUnavailable, nil)
	}
	sel := h.sel.With(h.sel.Current())
	if p := c.QueryParam("period"); p != "" {
		sel = h.sel.With(engine.PeriodKey(p))
	}
	return h.data, sel, nil
}

func writeError(c echo.Context, err error) error {
	var coded apperrors.Coded
	if errors.As(err, &coded) {
		return c.JSON(coded.HTTPStatus(), map[string]any{"error": coded.Error(), "code": coded.ErrorCode()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error(), "code": apperrors.CodeDashboardError})
}

// --- HANDLERS ---

func (h *Handler) Health(c echo.Context) error {
	h.mu.RLock()
	ready := h.data != nil
	h.mu.RUnlock()
	if !ready {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetPeriods(c echo.Context) error {
	_, sel, err := h.snapshot(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, engine.SelectionView(sel, false))
}

type selectRequest struct {
	Period string `json:"period"`
}

// SelectPeriod moves the shared selection. Unknown periods are ignored and
// reported with applied=false.
func (h *Handler) SelectPeriod(c echo.Context) error {
	var req selectRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.NewValidationError("invalid selection body", "period", nil))
	}

	h.mu.Lock()
	if h.data == nil {
		h.mu.Unlock()
		return writeError(c, apperrors.NewDashboardError("dataset is still loading", apperrors.CodeUnavailable, http.StatusServiceUnavailable, nil))
	}
	applied := h.sel.SelectPeriod(engine.PeriodKey(req.Period))
	view := engine.SelectionView(h.sel, applied)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ObserveSelection(applied)
	}
	if !applied {
		h.logger.Debug("Ignored unknown period", zap.String("period", req.Period))
	} else {
		h.logger.Info("Period selected", zap.String("period", view.Current), zap.Bool("earliest", view.Earliest))
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) GetDashboard(c echo.Context) error {
	ds, sel, err := h.snapshot(c)
	if err != nil {
		return writeError(c, err)
	}

	start := time.Now()
	view := engine.BuildView(ds, sel, getLimit(c, h.topN))
	if h.metrics != nil {
		h.metrics.ObserveView(view.Period.Key, time.Since(start))
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) GetSummary(c echo.Context) error {
	ds, sel, err := h.snapshot(c)
	if err != nil {
		return writeError(c, err)
	}

	key := sel.Current()
	prior, _ := ds.PriorRecords(key)
	sum := engine.ComputeSummary(ds.Records(key), prior)
	return c.JSON(http.StatusOK, engine.SummaryView(key, sum, sel))
}

func (h *Handler) GetRanking(c echo.Context) error {
	metric, ok := engine.ParseMetric(c.Param("metric"))
	if !ok {
		return writeError(c, apperrors.NewValidationError("unknown metric", "metric", c.Param("metric")))
	}
	ds, sel, err := h.snapshot(c)
	if err != nil {
		return writeError(c, err)
	}

	ranked := engine.TopN(ds.Records(sel.Current()), metric, getLimit(c, h.topN))
	return c.JSON(http.StatusOK, engine.RankingView(metric, ranked))
}

// GetEntity backs chart clicks: it hands back the record exactly as stored.
func (h *Handler) GetEntity(c echo.Context) error {
	name := c.Param("name")
	// echo matches on RawPath, leaving the param escaped, only when one is set
	if c.Request().URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}
	ds, sel, err := h.snapshot(c)
	if err != nil {
		return writeError(c, err)
	}

	record, ok := ds.Entity(sel.Current(), name)
	if !ok {
		return writeError(c, apperrors.NewNotFoundError("entity", name))
	}
	return c.JSON(http.StatusOK, entityResponse{Period: string(sel.Current()), Entity: record})
}

type entityResponse struct {
	Period string              `json:"period"`
	Entity models.EntityRecord `json:"entity"`
}
