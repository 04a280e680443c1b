// Package api exposes the analysis engine and snapshot store over HTTP.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"slotsense/domain/core"
	"slotsense/domain/evidence"
	"slotsense/domain/setting"
	"slotsense/domain/snapshot"
	"slotsense/domain/stats"
	"slotsense/internal/analysis"
	"slotsense/internal/errors"
	"slotsense/internal/logging"
	"slotsense/internal/report"
	"slotsense/internal/testkit"
	"slotsense/internal/validation"
	"slotsense/ports"
)

// MaxBatchSize bounds POST /api/v1/analyze/batch
const MaxBatchSize = 500

// Handler serves the HTTP API
type Handler struct {
	engine   *analysis.Engine
	repo     ports.SnapshotRepository
	logger   *zap.Logger
	metrics  *Metrics
	gatherer prometheus.Gatherer
}

// NewHandler creates a new API handler. Metrics are registered on reg and
// served from the same registry at /metrics.
func NewHandler(engine *analysis.Engine, repo ports.SnapshotRepository, logger *zap.Logger, reg *prometheus.Registry) *Handler {
	return &Handler{
		engine:   engine,
		repo:     repo,
		logger:   logging.OrNop(logger),
		metrics:  NewMetrics(reg),
		gatherer: reg,
	}
}

// Router builds the gin engine with every route registered
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.metrics.middleware(), h.requestLogger())

	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/analyze", h.analyze)
		v1.POST("/analyze/batch", h.analyzeBatch)
		v1.GET("/scenarios", h.scenarios)
		v1.GET("/rates", h.rateTable)
		v1.POST("/snapshots", h.createSnapshot)
		v1.GET("/snapshots", h.listSnapshots)
		v1.GET("/snapshots/:id", h.getSnapshot)
		v1.GET("/snapshots/:id/report", h.snapshotReport)
	}
	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) analyze(c *gin.Context) {
	counters, ok := h.bindCounters(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.run(counters))
}

func (h *Handler) analyzeBatch(c *gin.Context) {
	var batch []evidence.Counters
	if err := c.ShouldBindJSON(&batch); err != nil {
		h.respondError(c, errors.ValidationError("malformed request body", err))
		return
	}
	if len(batch) > MaxBatchSize {
		h.respondError(c, errors.InvalidInput("batch exceeds "+strconv.Itoa(MaxBatchSize)+" sessions"))
		return
	}
	for i, counters := range batch {
		batch[i] = validation.Normalize(counters)
		if err := validation.Validate(batch[i]); err != nil {
			h.respondError(c, errors.Wrapf(err, "session %d", i))
			return
		}
	}

	start := time.Now()
	results, err := h.engine.AnalyzeBatch(c.Request.Context(), batch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	per := time.Since(start)
	if len(results) > 0 {
		per /= time.Duration(len(results))
	}
	for _, r := range results {
		h.metrics.observeAnalysis(string(r.Conclusion.Recommendation), per)
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) scenarios(c *gin.Context) {
	c.JSON(http.StatusOK, testkit.Scenarios())
}

// rateTable serves the published per-setting rate table the engine scores against
func (h *Handler) rateTable(c *gin.Context) {
	table := h.engine.Rates()
	out := make(map[setting.Channel]map[setting.Setting]float64, len(setting.Channels()))
	for _, ch := range setting.Channels() {
		out[ch] = table.Row(ch)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) createSnapshot(c *gin.Context) {
	counters, ok := h.bindCounters(c)
	if !ok {
		return
	}

	snap := snapshot.New(counters, h.run(counters))
	if err := h.repo.Save(c.Request.Context(), snap); err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.snapshotsSaved.Inc()
	h.logger.Info("snapshot saved",
		zap.String("snapshot_id", snap.ID.String()),
		zap.String("recommendation", string(snap.Result.Conclusion.Recommendation)))

	c.JSON(http.StatusCreated, snap)
}

func (h *Handler) listSnapshots(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.respondError(c, errors.InvalidInput("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	snaps, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snaps, "count": len(snaps)})
}

func (h *Handler) getSnapshot(c *gin.Context) {
	snap, ok := h.loadSnapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) snapshotReport(c *gin.Context) {
	snap, ok := h.loadSnapshot(c)
	if !ok {
		return
	}

	md := report.Snapshot(snap)
	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(md))
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

func (h *Handler) bindCounters(c *gin.Context) (evidence.Counters, bool) {
	var counters evidence.Counters
	if err := c.ShouldBindJSON(&counters); err != nil {
		h.respondError(c, errors.ValidationError("malformed request body", err))
		return counters, false
	}
	counters = validation.Normalize(counters)
	if err := validation.Validate(counters); err != nil {
		h.respondError(c, err)
		return counters, false
	}
	return counters, true
}

func (h *Handler) loadSnapshot(c *gin.Context) (*snapshot.Snapshot, bool) {
	id, err := core.ParseSnapshotID(c.Param("id"))
	if err != nil {
		h.respondError(c, errors.InvalidInput(err.Error()))
		return nil, false
	}
	snap, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return snap, true
}

func (h *Handler) run(counters evidence.Counters) stats.AnalysisResult {
	start := time.Now()
	result := h.engine.Analyze(counters)
	h.metrics.observeAnalysis(string(result.Conclusion.Recommendation), time.Since(start))
	return result
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

// StatusFor maps an error code to an HTTP status
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeValidationError, errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
