package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/Candyboard/internal/candy"
	"github.com/MikeSquared-Agency/Candyboard/internal/engine"
)

// CriteriaRequest is the wire form of engine.Criteria. Ranges are [low, high] in
// percentile points; an omitted range spans 0..100.
type CriteriaRequest struct {
	RequiredFlags []string  `json:"required_flags" validate:"dive,oneof=chocolate fruity caramel peanutyalmondy nougat crispedricewafer hard bar pluribus"`
	SugarRange    []float64 `json:"sugar_range,omitempty" validate:"omitempty,len=2,dive,gte=0,lte=100"`
	PriceRange    []float64 `json:"price_range,omitempty" validate:"omitempty,len=2,dive,gte=0,lte=100"`
}

type AnalyzeRequest struct {
	Criteria CriteriaRequest `json:"criteria"`
	Names    []string        `json:"names" validate:"dive,required"`
}

// Criteria converts a validated request.
func (r CriteriaRequest) Criteria() (engine.Criteria, error) {
	c := engine.DefaultCriteria()
	for _, s := range r.RequiredFlags {
		f, err := candy.ParseFlag(s)
		if err != nil {
			return engine.Criteria{}, err
		}
		c.Required = append(c.Required, f)
	}
	if len(r.SugarRange) == 2 {
		c.Sugar = engine.Range{Low: r.SugarRange[0], High: r.SugarRange[1]}
	}
	if len(r.PriceRange) == 2 {
		c.Price = engine.Range{Low: r.PriceRange[0], High: r.PriceRange[1]}
	}
	return c, nil
}

// criteriaFromQuery reads ?flags=a,b&sugar_min=&sugar_max=&price_min=&price_max=.
// flags may also be repeated.
func criteriaFromQuery(q url.Values) (CriteriaRequest, error) {
	var req CriteriaRequest
	for _, v := range q["flags"] {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				req.RequiredFlags = append(req.RequiredFlags, strings.ToLower(f))
			}
		}
	}

	var err error
	if req.SugarRange, err = rangeFromQuery(q, "sugar"); err != nil {
		return req, err
	}
	if req.PriceRange, err = rangeFromQuery(q, "price"); err != nil {
		return req, err
	}
	return req, nil
}

func rangeFromQuery(q url.Values, prefix string) ([]float64, error) {
	minKey, maxKey := prefix+"_min", prefix+"_max"
	if q.Get(minKey) == "" && q.Get(maxKey) == "" {
		return nil, nil
	}
	out := []float64{engine.FullRange.Low, engine.FullRange.High}
	for i, key := range []string{minKey, maxKey} {
		s := q.Get(key)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", key, s)
		}
		out[i] = v
	}
	return out, nil
}
