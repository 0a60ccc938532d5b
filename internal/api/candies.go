package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
	"github.com/MikeSquared-Agency/Candyboard/internal/engine"
	"github.com/MikeSquared-Agency/Candyboard/internal/metrics"
	"github.com/MikeSquared-Agency/Candyboard/internal/narrative"
)

// DatasetProvider hands out the memoized dataset.
type DatasetProvider interface {
	Load(ctx context.Context) (*candy.Dataset, error)
}

// Card is one candy as the dashboard shows it.
type Card struct {
	Candy     candy.Record   `json:"candy"`
	Profile   engine.Profile `json:"profile"`
	Rationale string         `json:"rationale,omitempty"`
}

func newCard(r candy.Record) Card {
	return Card{Candy: r, Profile: engine.BuildProfile(r)}
}

type FilterResponse struct {
	Count   int            `json:"count"`
	Candies []candy.Record `json:"candies"`
}

type CandiesHandler struct {
	data     DatasetProvider
	validate *validator.Validate
}

func NewCandiesHandler(d DatasetProvider, v *validator.Validate) *CandiesHandler {
	return &CandiesHandler{data: d, validate: v}
}

// List handles GET /api/v1/candies
func (h *CandiesHandler) List(w http.ResponseWriter, r *http.Request) {
	req, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.filter(w, r, req)
}

// Filter handles POST /api/v1/candies/filter
func (h *CandiesHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var req CriteriaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	h.filter(w, r, req)
}

func (h *CandiesHandler) filter(w http.ResponseWriter, r *http.Request, req CriteriaRequest) {
	if err := h.validate.Struct(&req); err != nil {
		metrics.EngineRequests.WithLabelValues("filter", "invalid").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	criteria, err := req.Criteria()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ds, err := h.data.Load(r.Context())
	if err != nil {
		metrics.EngineRequests.WithLabelValues("filter", "error").Inc()
		writeError(w, err)
		return
	}

	subset := engine.Filter(ds, criteria)
	metrics.EngineRequests.WithLabelValues("filter", "ok").Inc()
	metrics.FilterResultSize.Observe(float64(len(subset)))
	writeJSON(w, http.StatusOK, FilterResponse{Count: len(subset), Candies: subset})
}

// Get handles GET /api/v1/candies/{name}
func (h *CandiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ds, err := h.data.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rec, ok := ds.Lookup(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "candy not found"})
		return
	}
	card := newCard(rec)
	card.Rationale = narrative.Rationale(rec.Name)
	writeJSON(w, http.StatusOK, card)
}
