package pricing

import (
	"fmt"
	"math"

	"github.com/pulsemobile/pulse-insights/internal/synth"
)

// ============================================================================
// PRICING / ADOPTION SIMULATOR
// Pure functions of (price, scenario) plus the static customer count and
// the economic constants. No state survives between calls — the dashboard
// recomputes everything on every parameter change.
// ============================================================================

// Price sweep bounds. Adoption interpolates linearly from the scenario
// maximum at PriceFloor down to the minimum at PriceCeil.
const (
	PriceFloor = 0.99
	PriceCeil  = 20.0
)

// Scenario defines an adoption-curve preset.
type Scenario struct {
	Name        string  `json:"name"`
	MaxAdoption float64 `json:"max_adoption"`
	MinAdoption float64 `json:"min_adoption"`
}

// scenarioOrder keeps the preset listing stable for the UI selector.
var scenarioOrder = []string{"optimistic", "realistic", "conservative", "underwhelming"}

var scenarios = map[string]Scenario{
	"optimistic":    {Name: "optimistic", MaxAdoption: 0.60, MinAdoption: 0.10},
	"realistic":     {Name: "realistic", MaxAdoption: 0.45, MinAdoption: 0.05},
	"conservative":  {Name: "conservative", MaxAdoption: 0.35, MinAdoption: 0.03},
	"underwhelming": {Name: "underwhelming", MaxAdoption: 0.25, MinAdoption: 0.02},
}

// ScenarioByName resolves a preset by name.
func ScenarioByName(name string) (Scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario %q", name)
	}
	return s, nil
}

// Scenarios returns the presets in selector order.
func Scenarios() []Scenario {
	out := make([]Scenario, 0, len(scenarioOrder))
	for _, name := range scenarioOrder {
		out = append(out, scenarios[name])
	}
	return out
}

// AdoptionRate interpolates the adoption rate for a price under a scenario,
// floored at the scenario minimum. The floor, not extrapolation, governs
// out-of-range prices on both ends.
func AdoptionRate(price float64, s Scenario) float64 {
	rate := s.MaxAdoption - (price-PriceFloor)*(s.MaxAdoption-s.MinAdoption)/(PriceCeil-PriceFloor)
	return math.Max(s.MinAdoption, rate)
}

// Economics holds the fixed financial constants of the simulation.
type Economics struct {
	FixedMonthlyCost    float64 // Monthly platform cost independent of subscribers
	VariableCostPerUser float64 // Marginal monthly cost per subscriber
	MarketMultiplier    float64 // Addressable market = sample size × multiplier
}

// DefaultEconomics mirrors the dashboard's baked-in constants.
func DefaultEconomics() Economics {
	return Economics{
		FixedMonthlyCost:    15000,
		VariableCostPerUser: 2.25,
		MarketMultiplier:    50,
	}
}

// Model evaluates pricing outcomes against a customer sample.
type Model struct {
	econ          Economics
	customerCount int
}

// NewModel creates a model over a customer sample of the given size.
func NewModel(econ Economics, customerCount int) *Model {
	return &Model{econ: econ, customerCount: customerCount}
}

// Base returns the total addressable subscriber base.
func (m *Model) Base() float64 {
	return float64(m.customerCount) * m.econ.MarketMultiplier
}

// Metrics are the derived point-estimate outputs for one (price, scenario).
type Metrics struct {
	Price        float64 `json:"price"`
	Scenario     string  `json:"scenario"`
	AdoptionRate float64 `json:"adoption_rate"`
	Subscribers  int     `json:"subscribers"`
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
	ROI          float64 `json:"roi"`
}

// Evaluate computes the full metric set for one price point. Subscribers are
// rounded here; the sweep path deliberately is not.
func (m *Model) Evaluate(price float64, s Scenario) Metrics {
	rate := AdoptionRate(price, s)
	subscribers := int(math.Round(m.Base() * rate))
	revenue := float64(subscribers) * price
	cost := m.econ.FixedMonthlyCost + float64(subscribers)*m.econ.VariableCostPerUser
	profit := revenue - cost

	return Metrics{
		Price:        price,
		Scenario:     s.Name,
		AdoptionRate: rate,
		Subscribers:  subscribers,
		Revenue:      revenue,
		Cost:         cost,
		Profit:       profit,
		ROI:          roi(profit, cost),
	}
}

// roi guards the degenerate divisor: a non-positive cost yields exactly zero
// rather than a division by zero or a negative denominator.
func roi(profit, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return 100 * profit / cost
}

// segmentFactors weight the scalar adoption rate per behavioral segment.
// Unlisted segments pass through at ×1.0.
var segmentFactors = map[string]float64{
	synth.SegmentBusiness: 1.5,
	synth.SegmentPower:    1.2,
	synth.SegmentSocial:   0.9,
	synth.SegmentBudget:   0.6,
}

// segmentAdoptionCap bounds every per-segment adoption value.
const segmentAdoptionCap = 0.8

// SegmentAdoption applies the fixed per-segment factors to a scalar adoption
// rate, capping every value at 0.8.
func SegmentAdoption(rate float64) map[string]float64 {
	out := make(map[string]float64, len(synth.Segments))
	for _, segment := range synth.Segments {
		factor, ok := segmentFactors[segment]
		if !ok {
			factor = 1.0
		}
		out[segment] = math.Min(rate*factor, segmentAdoptionCap)
	}
	return out
}

// SweepPoint is one sample of the continuous price-sweep curve.
type SweepPoint struct {
	Price        float64 `json:"price"`
	AdoptionRate float64 `json:"adoption_rate"`
	Subscribers  float64 `json:"subscribers"`
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
}

// SweepCurve samples revenue/cost/profit across [PriceFloor, PriceCeil] at
// the given step. Subscriber counts stay unrounded so the chart is smooth —
// this path intentionally diverges from Evaluate.
func (m *Model) SweepCurve(s Scenario, step float64) []SweepPoint {
	if step <= 0 {
		step = 0.05
	}
	base := m.Base()

	var points []SweepPoint
	for price := PriceFloor; price <= PriceCeil+1e-9; price += step {
		rate := AdoptionRate(price, s)
		subscribers := base * rate
		revenue := subscribers * price
		cost := m.econ.FixedMonthlyCost + subscribers*m.econ.VariableCostPerUser

		points = append(points, SweepPoint{
			Price:        price,
			AdoptionRate: rate,
			Subscribers:  subscribers,
			Revenue:      revenue,
			Cost:         cost,
			Profit:       revenue - cost,
		})
	}
	return points
}
