package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
	"github.com/MikeSquared-Agency/Candyboard/internal/engine"
)

type StatsResponse struct {
	engine.Summary
	Flags      []candy.Flag `json:"flags"`
	RadarAxes  []string     `json:"radar_axes"`
	MaxSelects int          `json:"max_selection"`
}

type StatsHandler struct {
	data DatasetProvider
}

func NewStatsHandler(d DatasetProvider) *StatsHandler {
	return &StatsHandler{data: d}
}

// Stats handles GET /api/v1/stats
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ds, err := h.data.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	summary, err := engine.Summarize(ds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{
		Summary:    summary,
		Flags:      candy.Flags,
		RadarAxes:  engine.RadarAxes,
		MaxSelects: candy.MaxSelection,
	})
}
