package events

import "time"

type MetricDelta struct {
	SubsetMean  float64 `json:"subset_mean"`
	DatasetMean float64 `json:"dataset_mean"`
	Delta       float64 `json:"delta"`
}

type SelectionAnalyzedEvent struct {
	AnalysisID    string                 `json:"analysis_id"`
	Names         []string               `json:"names"`
	RequiredFlags []string               `json:"required_flags,omitempty"`
	SugarRange    [2]float64             `json:"sugar_range"`
	PriceRange    [2]float64             `json:"price_range"`
	Metrics       map[string]MetricDelta `json:"metrics"`
	Insights      []string               `json:"insights,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
}
