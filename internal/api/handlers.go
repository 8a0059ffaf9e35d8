package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pulsemobile/pulse-insights/internal/brand"
	"github.com/pulsemobile/pulse-insights/internal/config"
	"github.com/pulsemobile/pulse-insights/internal/insights"
	"github.com/pulsemobile/pulse-insights/internal/pricing"
	"github.com/pulsemobile/pulse-insights/internal/storage"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	store      *storage.Store
	dataCfg    config.DataConfig
	pricingCfg config.PricingConfig
	brand      *brand.Brand
}

// NewHandlers creates a new Handlers instance
func NewHandlers(store *storage.Store, dataCfg config.DataConfig, pricingCfg config.PricingConfig) *Handlers {
	return &Handlers{
		store:      store,
		dataCfg:    dataCfg,
		pricingCfg: pricingCfg,
		brand:      brand.Default(),
	}
}

// SetBrand sets the brand theming served to the UI
func (h *Handlers) SetBrand(b *brand.Brand) {
	if b != nil {
		h.brand = b
	}
}

// model builds a pricing model over the current customer sample.
func (h *Handlers) model() *pricing.Model {
	econ := pricing.Economics{
		FixedMonthlyCost:    h.pricingCfg.FixedMonthlyCost,
		VariableCostPerUser: h.pricingCfg.VariableCostPerUser,
		MarketMultiplier:    h.pricingCfg.MarketMultiplier,
	}
	return pricing.NewModel(econ, h.store.CustomerCount())
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// parseFilter extracts an insights filter from query parameters.
// Recognized params: start_date, end_date ("2006-01-02"), types and
// segments (comma-separated). Absent params match everything.
func parseFilter(r *http.Request) (insights.Filter, error) {
	var f insights.Filter

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, err
		}
		f.Start = t
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, err
		}
		// End of day so the end date is inclusive
		f.End = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	if s := r.URL.Query().Get("types"); s != "" {
		f.Types = splitList(s)
	}
	if s := r.URL.Query().Get("segments"); s != "" {
		f.Segments = splitList(s)
	}
	return f, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
