package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
	"github.com/MikeSquared-Agency/Candyboard/internal/engine"
	"github.com/MikeSquared-Agency/Candyboard/internal/narrative"
)

type RecommendationsResponse struct {
	Candies    []Card            `json:"candies"`
	Comparison engine.Comparison `json:"comparison"`
	RadarAxes  []string          `json:"radar_axes"`
}

type RecommendationsHandler struct {
	data  DatasetProvider
	names []string
}

func NewRecommendationsHandler(d DatasetProvider, names []string) *RecommendationsHandler {
	return &RecommendationsHandler{data: d, names: names}
}

// List handles GET /api/v1/recommendations
func (h *RecommendationsHandler) List(w http.ResponseWriter, r *http.Request) {
	ds, err := h.data.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	picks, err := engine.ResolveSelection(ds.Records(), h.names)
	if err != nil {
		// The curated list is configuration, not user input.
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	resp := RecommendationsResponse{
		Candies:   make([]Card, 0, len(picks)),
		RadarAxes: engine.RadarAxes,
	}
	for _, p := range picks {
		card := newCard(p)
		card.Rationale = narrative.Rationale(p.Name)
		resp.Candies = append(resp.Candies, card)
	}

	resp.Comparison, err = engine.Compare(picks, ds, engine.AllFields...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// MissingRecommendations returns the curated names absent from ds.
func MissingRecommendations(ds *candy.Dataset, names []string) []string {
	var missing []string
	for _, n := range names {
		if _, ok := ds.Lookup(n); !ok {
			missing = append(missing, n)
		}
	}
	return missing
}
