package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
	"github.com/MikeSquared-Agency/Candyboard/internal/engine"
	"github.com/MikeSquared-Agency/Candyboard/internal/events"
	"github.com/MikeSquared-Agency/Candyboard/internal/metrics"
	"github.com/MikeSquared-Agency/Candyboard/internal/narrative"
)

type AnalyzeResponse struct {
	AnalysisID string                  `json:"analysis_id"`
	Matched    int                     `json:"matched"`
	Candies    []Card                  `json:"candies"`
	Comparison engine.Comparison       `json:"comparison"`
	RadarAxes  []string                `json:"radar_axes"`
	Insights   []narrative.InsightView `json:"insights"`
}

type SelectionsHandler struct {
	data     DatasetProvider
	events   events.Publisher
	validate *validator.Validate
	logger   *slog.Logger
}

func NewSelectionsHandler(d DatasetProvider, p events.Publisher, v *validator.Validate, logger *slog.Logger) *SelectionsHandler {
	return &SelectionsHandler{data: d, events: p, validate: v, logger: logger}
}

// Analyze handles POST /api/v1/selections/analyze
func (h *SelectionsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		metrics.EngineRequests.WithLabelValues("analyze", "invalid").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	criteria, err := req.Criteria.Criteria()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ds, err := h.data.Load(r.Context())
	if err != nil {
		metrics.EngineRequests.WithLabelValues("analyze", "error").Inc()
		writeError(w, err)
		return
	}

	// Only candies passing the current filter may be selected.
	subset := engine.Filter(ds, criteria)
	selected, err := engine.ResolveSelection(subset, req.Names)
	if err != nil {
		metrics.EngineRequests.WithLabelValues("analyze", "rejected").Inc()
		writeError(w, err)
		return
	}
	assessment, err := engine.Assess(selected, ds)
	if err != nil {
		metrics.EngineRequests.WithLabelValues("analyze", "rejected").Inc()
		writeError(w, err)
		return
	}

	resp := AnalyzeResponse{
		AnalysisID: uuid.New().String(),
		Matched:    len(subset),
		Candies:    make([]Card, 0, len(selected)),
		Comparison: assessment.Comparison,
		RadarAxes:  engine.RadarAxes,
		Insights:   narrative.Describe(assessment.Insights),
	}
	for _, s := range selected {
		resp.Candies = append(resp.Candies, newCard(s))
	}

	metrics.EngineRequests.WithLabelValues("analyze", "ok").Inc()
	h.publish(resp.AnalysisID, criteria, selected, assessment)
	writeJSON(w, http.StatusOK, resp)
}

func (h *SelectionsHandler) publish(id string, c engine.Criteria, selected []candy.Record, a engine.Assessment) {
	if h.events == nil {
		return
	}

	ev := events.SelectionAnalyzedEvent{
		AnalysisID: id,
		SugarRange: [2]float64{c.Sugar.Low, c.Sugar.High},
		PriceRange: [2]float64{c.Price.Low, c.Price.High},
		Metrics:    make(map[string]events.MetricDelta, len(a.Comparison)),
		Timestamp:  time.Now().UTC(),
	}
	for _, s := range selected {
		ev.Names = append(ev.Names, s.Name)
	}
	for _, f := range c.Required {
		ev.RequiredFlags = append(ev.RequiredFlags, string(f))
	}
	for f, m := range a.Comparison {
		ev.Metrics[string(f)] = events.MetricDelta{SubsetMean: m.SubsetMean, DatasetMean: m.DatasetMean, Delta: m.Delta}
	}
	for _, in := range a.Insights {
		ev.Insights = append(ev.Insights, string(in))
	}

	if err := h.events.Publish(events.SubjectSelectionAnalyzed(id), ev); err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		h.logger.Warn("failed to publish selection event", "analysis_id", id, "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
}
