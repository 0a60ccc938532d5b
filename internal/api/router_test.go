package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
	"github.com/MikeSquared-Agency/Candyboard/internal/config"
	"github.com/MikeSquared-Agency/Candyboard/internal/engine"
	"github.com/MikeSquared-Agency/Candyboard/internal/events"
)

type stubProvider struct {
	ds  *candy.Dataset
	err error
}

func (p *stubProvider) Load(_ context.Context) (*candy.Dataset, error) {
	return p.ds, p.err
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(subject string, data interface{}) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

func (m *mockPublisher) Close() {}

func testDataset(t *testing.T) *candy.Dataset {
	t.Helper()
	ds, err := candy.NewDataset([]candy.Record{
		{Name: "Twix", Chocolate: true, Caramel: true, CrispedRiceWafer: true, Bar: true, SugarPercent: 0.546, PricePercent: 0.906, WinPercent: 81.64},
		{Name: "Starburst", Fruity: true, Pluribus: true, SugarPercent: 0.151, PricePercent: 0.22, WinPercent: 67.04},
		{Name: "Reese's Peanut Butter cup", Chocolate: true, PeanutyAlmondy: true, SugarPercent: 0.72, PricePercent: 0.651, WinPercent: 84.18},
		{Name: "Lemonhead", Fruity: true, Hard: true, SugarPercent: 0.046, PricePercent: 0.104, WinPercent: 39.14},
		{Name: "Snickers", Chocolate: true, Caramel: true, PeanutyAlmondy: true, Nougat: true, Bar: true, SugarPercent: 0.546, PricePercent: 0.651, WinPercent: 76.67},
		{Name: "Dum Dums", Fruity: true, Hard: true, Pluribus: true, SugarPercent: 0.732, PricePercent: 0.034, WinPercent: 39.46},
	})
	require.NoError(t, err)
	return ds
}

func setupTestRouter(t *testing.T, pub events.Publisher) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(&stubProvider{ds: testDataset(t)}, pub, config.DefaultRecommendations, 0, logger)
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func candyNames(records []candy.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestListCandies_NoCriteria(t *testing.T) {
	router := setupTestRouter(t, nil)

	w := do(router, "GET", "/api/v1/candies", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp FilterResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 6, resp.Count)
	assert.Equal(t, "Twix", resp.Candies[0].Name)
}

func TestListCandies_QueryCriteria(t *testing.T) {
	router := setupTestRouter(t, nil)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"comma flags", "?flags=chocolate,caramel", []string{"Twix", "Snickers"}},
		{"repeated flags", "?flags=fruity&flags=hard", []string{"Lemonhead", "Dum Dums"}},
		{"uppercase flag", "?flags=Pluribus", []string{"Starburst", "Dum Dums"}},
		{"sugar min only", "?sugar_min=70", []string{"Reese's Peanut Butter cup", "Dum Dums"}},
		{"price window", "?price_min=20&price_max=70", []string{"Starburst", "Reese's Peanut Butter cup", "Snickers"}},
		{"inverted range", "?sugar_min=80&sugar_max=20", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, "GET", "/api/v1/candies"+tt.query, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp FilterResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, len(tt.want), resp.Count)
			assert.Equal(t, tt.want, candyNames(resp.Candies))
		})
	}
}

func TestListCandies_BadQuery(t *testing.T) {
	router := setupTestRouter(t, nil)

	for _, q := range []string{"?sugar_min=abc", "?flags=gummy", "?price_max=140"} {
		w := do(router, "GET", "/api/v1/candies"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestFilterCandies(t *testing.T) {
	router := setupTestRouter(t, nil)

	w := do(router, "POST", "/api/v1/candies/filter", `{"required_flags":["chocolate"],"sugar_range":[50,60]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp FilterResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []string{"Twix", "Snickers"}, candyNames(resp.Candies))
}

func TestFilterCandies_Invalid(t *testing.T) {
	router := setupTestRouter(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"required_flags":`},
		{"unknown flag", `{"required_flags":["licorice"]}`},
		{"range out of bounds", `{"sugar_range":[0,120]}`},
		{"range wrong length", `{"price_range":[10]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, "POST", "/api/v1/candies/filter", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestDataUnavailableIs503(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := &stubProvider{err: fmt.Errorf("%w: csv:missing.csv: no such file", candy.ErrDataUnavailable)}
	router := NewRouter(p, nil, config.DefaultRecommendations, 0, logger)

	for _, path := range []string{"/api/v1/candies", "/api/v1/candies/Twix", "/api/v1/recommendations", "/api/v1/stats"} {
		w := do(router, "GET", path, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
	w := do(router, "POST", "/api/v1/selections/analyze", `{"names":["Twix"]}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetCandy(t *testing.T) {
	router := setupTestRouter(t, nil)

	w := do(router, "GET", "/api/v1/candies/Twix", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var card Card
	require.NoError(t, json.NewDecoder(w.Body).Decode(&card))
	assert.Equal(t, "Twix", card.Candy.Name)
	assert.Equal(t, []string{"Chocolate", "Caramel", "Crispy/Wafer", "Bar"}, card.Profile.Characteristics)
	assert.Len(t, card.Profile.Radar, len(engine.RadarAxes))
	assert.NotEmpty(t, card.Rationale)
}

func TestGetCandy_EscapedName(t *testing.T) {
	router := setupTestRouter(t, nil)

	w := do(router, "GET", "/api/v1/candies/Dum%20Dums", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var card Card
	require.NoError(t, json.NewDecoder(w.Body).Decode(&card))
	assert.Equal(t, "Dum Dums", card.Candy.Name)
	assert.Empty(t, card.Rationale)
}

func TestGetCandy_NotFound(t *testing.T) {
	router := setupTestRouter(t, nil)

	w := do(router, "GET", "/api/v1/candies/Nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendations(t *testing.T) {
	router := setupTestRouter(t, nil)

	w := do(router, "GET", "/api/v1/recommendations", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp RecommendationsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Candies, 3)
	assert.Equal(t, "Reese's Peanut Butter cup", resp.Candies[0].Candy.Name)
	assert.Equal(t, "Twix", resp.Candies[1].Candy.Name)
	assert.Equal(t, "Starburst", resp.Candies[2].Candy.Name)
	for _, c := range resp.Candies {
		assert.NotEmpty(t, c.Rationale, c.Candy.Name)
	}

	// The comparison covers all three picks.
	win := resp.Comparison[engine.FieldWin]
	assert.InDelta(t, (84.18+81.64+67.04)/3, win.SubsetMean, 1e-9)
	assert.InDelta(t, win.SubsetMean-win.DatasetMean, win.Delta, 1e-9)
	assert.Equal(t, engine.RadarAxes, resp.RadarAxes)
}

func TestRecommendations_MissingPickIs500(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(&stubProvider{ds: testDataset(t)}, nil, []string{"Twix", "Kit Kat"}, 0, logger)

	w := do(router, "GET", "/api/v1/recommendations", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMissingRecommendations(t *testing.T) {
	ds := testDataset(t)
	assert.Empty(t, MissingRecommendations(ds, config.DefaultRecommendations))
	assert.Equal(t, []string{"Kit Kat"}, MissingRecommendations(ds, []string{"Twix", "Kit Kat"}))
}

func TestAnalyzeSelection_PublishesEvent(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish",
		mock.MatchedBy(func(s string) bool { return strings.HasPrefix(s, "candy.selection.") }),
		mock.AnythingOfType("events.SelectionAnalyzedEvent"),
	).Return(nil)
	router := setupTestRouter(t, pub)

	w := do(router, "POST", "/api/v1/selections/analyze",
		`{"criteria":{"required_flags":["chocolate"]},"names":["Twix","Snickers"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AnalysisID)
	assert.Equal(t, 3, resp.Matched)
	require.Len(t, resp.Candies, 2)
	assert.Equal(t, "Twix", resp.Candies[0].Candy.Name)
	assert.Equal(t, "Snickers", resp.Candies[1].Candy.Name)

	codes := make([]engine.Insight, len(resp.Insights))
	for i, in := range resp.Insights {
		codes[i] = in.Code
		assert.NotEmpty(t, in.Text, in.Code)
	}
	assert.Equal(t, []engine.Insight{
		engine.InsightWinAbove,
		engine.InsightSugarAbove,
		engine.InsightPriceAbove,
		engine.InsightContainsNuts,
		engine.InsightMissingFruity,
	}, codes)

	pub.AssertNumberOfCalls(t, "Publish", 1)
	call := pub.Calls[0]
	assert.Equal(t, events.SubjectSelectionAnalyzed(resp.AnalysisID), call.Arguments.String(0))
	ev := call.Arguments.Get(1).(events.SelectionAnalyzedEvent)
	assert.Equal(t, resp.AnalysisID, ev.AnalysisID)
	assert.Equal(t, []string{"Twix", "Snickers"}, ev.Names)
	assert.Equal(t, []string{"chocolate"}, ev.RequiredFlags)
	assert.Equal(t, [2]float64{0, 100}, ev.SugarRange)
	assert.Contains(t, ev.Metrics, string(engine.FieldWin))
	assert.Len(t, ev.Insights, 5)
}

func TestAnalyzeSelection_PublishFailureStillSucceeds(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("nats: connection closed"))
	router := setupTestRouter(t, pub)

	w := do(router, "POST", "/api/v1/selections/analyze", `{"names":["Starburst"]}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	pub.AssertExpectations(t)
}

func TestAnalyzeSelection_Rejected(t *testing.T) {
	pub := &mockPublisher{}
	router := setupTestRouter(t, pub)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty selection", `{"names":[]}`, http.StatusUnprocessableEntity},
		{"no names field", `{}`, http.StatusUnprocessableEntity},
		{"too many", `{"names":["Twix","Snickers","Starburst","Lemonhead"]}`, http.StatusBadRequest},
		{"duplicate", `{"names":["Twix","Twix"]}`, http.StatusBadRequest},
		{"unknown candy", `{"names":["Kit Kat"]}`, http.StatusBadRequest},
		{"filtered out", `{"criteria":{"required_flags":["fruity"]},"names":["Twix"]}`, http.StatusBadRequest},
		{"blank name", `{"names":[""]}`, http.StatusBadRequest},
		{"bad criteria", `{"criteria":{"sugar_range":[-5,50]},"names":["Twix"]}`, http.StatusBadRequest},
		{"malformed json", `{"names":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, "POST", "/api/v1/selections/analyze", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestStats(t *testing.T) {
	router := setupTestRouter(t, nil)

	w := do(router, "GET", "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp StatsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 6, resp.Count)
	assert.Equal(t, candy.MaxSelection, resp.MaxSelects)
	assert.Equal(t, candy.Flags, resp.Flags)
	assert.InDelta(t, 388.13/6, resp.Means[engine.FieldWin], 1e-9)
	assert.InDelta(t, 274.1/6, resp.Means[engine.FieldSugar], 1e-9)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{candy.ErrEmptySelection, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", candy.ErrInvalidSelectionSize), http.StatusBadRequest},
		{fmt.Errorf("%w: %q", candy.ErrUnknownCandy, "x"), http.StatusBadRequest},
		{fmt.Errorf("%w: boom", candy.ErrDataUnavailable), http.StatusServiceUnavailable},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorStatus(tt.err), tt.err.Error())
	}
}

func TestMetricsRouter(t *testing.T) {
	router := NewMetricsRouter()

	w := do(router, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)

	w = do(router, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, http.StatusOK, map[string]float64{"mean": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "encode response")
}
