package api

import (
	"encoding/json"
	"net/http"

	"github.com/pulsemobile/pulse-insights/internal/pkg/logger"
	"github.com/pulsemobile/pulse-insights/internal/synth"
)

// DatasetSummary describes the loaded dataset for the dashboard header.
type DatasetSummary struct {
	Customers     int            `json:"customers"`
	UsageRows     int            `json:"usage_rows"`
	Tickets       int            `json:"tickets"`
	Interventions int            `json:"interventions"`
	Segments      map[string]int `json:"segments"`
	Manifest      synth.Manifest `json:"manifest"`
}

// HandleDatasetSummary returns row counts and run provenance.
//
//	GET /api/datasets/summary
func (h *Handlers) HandleDatasetSummary(w http.ResponseWriter, r *http.Request) {
	ds := h.store.Dataset()
	if ds == nil {
		respondError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	respondJSON(w, http.StatusOK, DatasetSummary{
		Customers:     len(ds.Customers),
		UsageRows:     len(ds.Usage),
		Tickets:       len(ds.Tickets),
		Interventions: len(ds.Interventions),
		Segments:      ds.SegmentCounts(),
		Manifest:      ds.Manifest,
	})
}

// RegenerateRequest overrides generation parameters for a rerun. Zero
// values fall back to the configured defaults.
type RegenerateRequest struct {
	Seed          int64 `json:"seed"`
	CustomerCount int   `json:"customer_count"`
}

// HandleRegenerate reruns the generator, rewrites the CSV artifacts, and
// swaps the in-memory snapshot. Generation is synchronous — the dataset is
// small enough that a blocking request beats background bookkeeping.
//
//	POST /api/datasets/regenerate
func (h *Handlers) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	req := RegenerateRequest{
		Seed:          h.dataCfg.Seed,
		CustomerCount: h.dataCfg.CustomerCount,
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.CustomerCount <= 0 {
		req.CustomerCount = h.dataCfg.CustomerCount
	}
	if req.Seed == 0 {
		req.Seed = h.dataCfg.Seed
	}

	ref, err := h.dataCfg.Reference()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "invalid reference date in config")
		return
	}

	gen := synth.New(synth.Config{
		CustomerCount: req.CustomerCount,
		UsageMonths:   h.dataCfg.UsageMonths,
		ReferenceDate: ref,
	}, req.Seed)
	ds := gen.GenerateAll()

	if err := synth.WriteAll(h.store.Dir(), ds); err != nil {
		logger.Error("dataset regeneration failed", "error", err)
		respondError(w, http.StatusInternalServerError, "writing dataset artifacts failed")
		return
	}
	h.store.SetDataset(ds)

	logger.Info("dataset regenerated",
		"run_id", ds.Manifest.RunID,
		"seed", req.Seed,
		"customers", len(ds.Customers))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "regenerated",
		"manifest": ds.Manifest,
	})
}

// HandleBrand serves the brand theming metadata for the UI.
//
//	GET /api/brand
func (h *Handlers) HandleBrand(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.brand)
}
