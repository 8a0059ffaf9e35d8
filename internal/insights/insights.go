package insights

import (
	"sort"
	"time"

	"github.com/pulsemobile/pulse-insights/internal/synth"
)

// ============================================================================
// AI PERFORMANCE ANALYTICS
// In-memory aggregation over the synthetic dataset, feeding the performance
// dashboard: KPI boxes, savings trends, intervention portfolio, observed
// segment adoption, and the financial impact summary. Every computation is
// pure and every degenerate input (empty filter result) yields zeros.
// ============================================================================

// Filter narrows interventions by date range, intervention type, and the
// owning customer's segment. Zero-valued fields match everything.
type Filter struct {
	Start    time.Time
	End      time.Time
	Types    []string
	Segments []string
}

func (f Filter) matches(iv synth.AIIntervention, customer synth.Customer) bool {
	if !f.Start.IsZero() && iv.InterventionDate.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && iv.InterventionDate.After(f.End) {
		return false
	}
	if len(f.Types) > 0 && !contains(f.Types, iv.InterventionType) {
		return false
	}
	if len(f.Segments) > 0 && !contains(f.Segments, customer.Segment) {
		return false
	}
	return true
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// Service computes dashboard analytics over a dataset snapshot.
type Service struct {
	ds  *synth.Dataset
	idx map[string]synth.Customer
}

// NewService builds an analytics service over the dataset.
func NewService(ds *synth.Dataset) *Service {
	return &Service{ds: ds, idx: ds.CustomerIndex()}
}

func (s *Service) filtered(f Filter) []synth.AIIntervention {
	var out []synth.AIIntervention
	for _, iv := range s.ds.Interventions {
		if f.matches(iv, s.idx[iv.CustomerID]) {
			out = append(out, iv)
		}
	}
	return out
}

// Summary holds the dashboard KPI boxes.
type Summary struct {
	TotalSavings    float64 `json:"total_savings"`
	Interventions   int     `json:"total_interventions"`
	AvgConfidence   float64 `json:"avg_confidence"`
	UniqueCustomers int     `json:"unique_customers"`
}

// Summarize computes the KPI box values for a filter.
func (s *Service) Summarize(f Filter) Summary {
	matched := s.filtered(f)

	var savings, confidence float64
	unique := make(map[string]struct{})
	for _, iv := range matched {
		savings += iv.SavingsAmount
		confidence += iv.ConfidenceScore
		unique[iv.CustomerID] = struct{}{}
	}

	summary := Summary{
		TotalSavings:    savings,
		Interventions:   len(matched),
		UniqueCustomers: len(unique),
	}
	if len(matched) > 0 {
		summary.AvgConfidence = confidence / float64(len(matched))
	}
	return summary
}

// TrendPoint is one weekly savings bucket.
type TrendPoint struct {
	WeekStart time.Time `json:"week_start"`
	Savings   float64   `json:"savings"`
	Count     int       `json:"count"`
}

// WeeklyTrend buckets filtered savings by ISO week, sorted ascending.
func (s *Service) WeeklyTrend(f Filter) []TrendPoint {
	buckets := make(map[time.Time]*TrendPoint)
	for _, iv := range s.filtered(f) {
		week := weekStart(iv.InterventionDate)
		p, ok := buckets[week]
		if !ok {
			p = &TrendPoint{WeekStart: week}
			buckets[week] = p
		}
		p.Savings += iv.SavingsAmount
		p.Count++
	}

	points := make([]TrendPoint, 0, len(buckets))
	for _, p := range buckets {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].WeekStart.Before(points[j].WeekStart) })
	return points
}

// weekStart truncates a date to its Monday.
func weekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// TypePerformance is one intervention type's portfolio entry.
type TypePerformance struct {
	Type          string  `json:"intervention_type"`
	TotalSavings  float64 `json:"total_savings"`
	AvgConfidence float64 `json:"avg_confidence"`
	Count         int     `json:"count"`
}

// Portfolio aggregates performance per intervention type, ordered by total
// savings descending.
func (s *Service) Portfolio(f Filter) []TypePerformance {
	agg := make(map[string]*TypePerformance)
	for _, iv := range s.filtered(f) {
		p, ok := agg[iv.InterventionType]
		if !ok {
			p = &TypePerformance{Type: iv.InterventionType}
			agg[iv.InterventionType] = p
		}
		p.TotalSavings += iv.SavingsAmount
		p.AvgConfidence += iv.ConfidenceScore
		p.Count++
	}

	out := make([]TypePerformance, 0, len(agg))
	for _, p := range agg {
		p.AvgConfidence /= float64(p.Count)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalSavings > out[j].TotalSavings })
	return out
}

// SegmentStats reports observed AI adoption within one customer segment.
type SegmentStats struct {
	Segment           string  `json:"customer_segment"`
	AssistedCustomers int     `json:"assisted_customers"`
	TotalCustomers    int     `json:"total_customers"`
	AdoptionRate      float64 `json:"adoption_rate"`
	TotalSavings      float64 `json:"total_savings"`
}

// SegmentAdoption computes observed adoption per segment: unique AI-assisted
// customers over the segment's population. This is measured from the data,
// unlike the pricing simulator's factor-weighted projection.
func (s *Service) SegmentAdoption(f Filter) []SegmentStats {
	populations := s.ds.SegmentCounts()
	assisted := make(map[string]map[string]struct{})
	savings := make(map[string]float64)

	for _, iv := range s.filtered(f) {
		segment := s.idx[iv.CustomerID].Segment
		if assisted[segment] == nil {
			assisted[segment] = make(map[string]struct{})
		}
		assisted[segment][iv.CustomerID] = struct{}{}
		savings[segment] += iv.SavingsAmount
	}

	out := make([]SegmentStats, 0, len(synth.Segments))
	for _, segment := range synth.Segments {
		stats := SegmentStats{
			Segment:           segment,
			AssistedCustomers: len(assisted[segment]),
			TotalCustomers:    populations[segment],
			TotalSavings:      savings[segment],
		}
		if stats.TotalCustomers > 0 {
			stats.AdoptionRate = float64(stats.AssistedCustomers) / float64(stats.TotalCustomers)
		}
		out = append(out, stats)
	}
	return out
}

// MonthlyPoint is one (month, intervention type) savings bucket.
type MonthlyPoint struct {
	Month         string  `json:"month"` // Format: "2006-01"
	Type          string  `json:"intervention_type"`
	Savings       float64 `json:"savings"`
	AvgConfidence float64 `json:"avg_confidence"`
	Count         int     `json:"count"`
}

// MonthlyTrends buckets savings by month and intervention type, sorted by
// month then type.
func (s *Service) MonthlyTrends(f Filter) []MonthlyPoint {
	type key struct{ month, itype string }
	agg := make(map[key]*MonthlyPoint)

	for _, iv := range s.filtered(f) {
		k := key{iv.InterventionDate.Format("2006-01"), iv.InterventionType}
		p, ok := agg[k]
		if !ok {
			p = &MonthlyPoint{Month: k.month, Type: k.itype}
			agg[k] = p
		}
		p.Savings += iv.SavingsAmount
		p.AvgConfidence += iv.ConfidenceScore
		p.Count++
	}

	out := make([]MonthlyPoint, 0, len(agg))
	for _, p := range agg {
		p.AvgConfidence /= float64(p.Count)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// FinancialImpact is the financial summary panel.
type FinancialImpact struct {
	TotalSavings       float64 `json:"total_savings"`
	Interventions      int     `json:"total_interventions"`
	AvgPerIntervention float64 `json:"avg_per_intervention"`
	ProjectedAnnual    float64 `json:"projected_annual_savings"`
}

// Financial computes the impact summary. The projection extrapolates the
// filter window's daily average to a full year; the day count floors at 1.
func (s *Service) Financial(f Filter) FinancialImpact {
	matched := s.filtered(f)

	impact := FinancialImpact{Interventions: len(matched)}
	if len(matched) == 0 {
		return impact
	}

	start, end := f.Start, f.End
	if start.IsZero() || end.IsZero() {
		start, end = dateSpan(matched)
	}

	for _, iv := range matched {
		impact.TotalSavings += iv.SavingsAmount
	}
	impact.AvgPerIntervention = impact.TotalSavings / float64(len(matched))

	days := end.Sub(start).Hours() / 24
	if days < 1 {
		days = 1
	}
	impact.ProjectedAnnual = impact.TotalSavings / days * 365
	return impact
}

// CumulativePoint is one step of the cumulative savings series.
type CumulativePoint struct {
	Date       time.Time `json:"date"`
	Cumulative float64   `json:"cumulative_savings"`
}

// Cumulative returns the running savings total ordered by intervention date.
func (s *Service) Cumulative(f Filter) []CumulativePoint {
	matched := s.filtered(f)
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].InterventionDate.Before(matched[j].InterventionDate)
	})

	points := make([]CumulativePoint, 0, len(matched))
	var running float64
	for _, iv := range matched {
		running += iv.SavingsAmount
		points = append(points, CumulativePoint{Date: iv.InterventionDate, Cumulative: running})
	}
	return points
}

func dateSpan(interventions []synth.AIIntervention) (time.Time, time.Time) {
	min, max := interventions[0].InterventionDate, interventions[0].InterventionDate
	for _, iv := range interventions[1:] {
		if iv.InterventionDate.Before(min) {
			min = iv.InterventionDate
		}
		if iv.InterventionDate.After(max) {
			max = iv.InterventionDate
		}
	}
	return min, max
}
