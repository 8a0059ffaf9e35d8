package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/pulsemobile/pulse-insights/internal/pricing"
)

// SimulationResponse bundles the point metrics with the per-segment
// adoption breakdown for the dashboard's scalar displays.
type SimulationResponse struct {
	Metrics         pricing.Metrics    `json:"metrics"`
	SegmentAdoption map[string]float64 `json:"segment_adoption"`
}

// HandleSimulate recomputes all derived metrics for one (price, scenario).
//
//	GET /api/pricing/simulate?price=5&scenario=realistic
func (h *Handlers) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	if !h.store.Ready() {
		respondError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}

	price, err := strconv.ParseFloat(r.URL.Query().Get("price"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid price")
		return
	}
	if price < h.pricingCfg.MinPrice || price > h.pricingCfg.MaxPrice {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("price must be between %.2f and %.2f", h.pricingCfg.MinPrice, h.pricingCfg.MaxPrice))
		return
	}

	scenario, err := pricing.ScenarioByName(r.URL.Query().Get("scenario"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics := h.model().Evaluate(price, scenario)
	respondJSON(w, http.StatusOK, SimulationResponse{
		Metrics:         metrics,
		SegmentAdoption: pricing.SegmentAdoption(metrics.AdoptionRate),
	})
}

// HandleSweep returns the dense price-sweep curve for charting.
//
//	GET /api/pricing/sweep?scenario=realistic&step=0.05
func (h *Handlers) HandleSweep(w http.ResponseWriter, r *http.Request) {
	if !h.store.Ready() {
		respondError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}

	scenario, err := pricing.ScenarioByName(r.URL.Query().Get("scenario"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	step := 0.05
	if s := r.URL.Query().Get("step"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			respondError(w, http.StatusBadRequest, "invalid step")
			return
		}
		step = v
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"scenario": scenario.Name,
		"step":     step,
		"points":   h.model().SweepCurve(scenario, step),
	})
}

// HandleScenarios lists the adoption presets for the UI selector.
//
//	GET /api/pricing/scenarios
func (h *Handlers) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios": pricing.Scenarios(),
		"min_price": h.pricingCfg.MinPrice,
		"max_price": h.pricingCfg.MaxPrice,
	})
}
