package api

import (
	"net/http"

	"github.com/pulsemobile/pulse-insights/internal/insights"
)

// insightsService builds an analytics service over the current snapshot,
// or reports why it can't.
func (h *Handlers) insightsService(w http.ResponseWriter) *insights.Service {
	ds := h.store.Dataset()
	if ds == nil {
		respondError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return nil
	}
	return insights.NewService(ds)
}

// HandleInsightsSummary returns the KPI box values.
//
//	GET /api/insights/summary?start_date=&end_date=&types=&segments=
func (h *Handlers) HandleInsightsSummary(w http.ResponseWriter, r *http.Request) {
	svc := h.insightsService(w)
	if svc == nil {
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date filter")
		return
	}
	respondJSON(w, http.StatusOK, svc.Summarize(f))
}

// HandleInsightsTrends returns the weekly trend, per-type portfolio,
// monthly trends, and cumulative savings series in one call.
//
//	GET /api/insights/trends
func (h *Handlers) HandleInsightsTrends(w http.ResponseWriter, r *http.Request) {
	svc := h.insightsService(w)
	if svc == nil {
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date filter")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"weekly":     svc.WeeklyTrend(f),
		"portfolio":  svc.Portfolio(f),
		"monthly":    svc.MonthlyTrends(f),
		"cumulative": svc.Cumulative(f),
	})
}

// HandleInsightsSegments returns observed AI adoption per customer segment.
//
//	GET /api/insights/segments
func (h *Handlers) HandleInsightsSegments(w http.ResponseWriter, r *http.Request) {
	svc := h.insightsService(w)
	if svc == nil {
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date filter")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"segments": svc.SegmentAdoption(f),
	})
}

// HandleInsightsFinancial returns the financial impact summary.
//
//	GET /api/insights/financial
func (h *Handlers) HandleInsightsFinancial(w http.ResponseWriter, r *http.Request) {
	svc := h.insightsService(w)
	if svc == nil {
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date filter")
		return
	}
	respondJSON(w, http.StatusOK, svc.Financial(f))
}
