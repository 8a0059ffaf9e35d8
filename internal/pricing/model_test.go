package pricing

import (
	"math"
	"testing"

	"github.com/pulsemobile/pulse-insights/internal/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdoptionRateBounds(t *testing.T) {
	for _, s := range Scenarios() {
		// Endpoints hit the preset bounds exactly
		assert.InDelta(t, s.MaxAdoption, AdoptionRate(PriceFloor, s), 1e-12, s.Name)
		assert.InDelta(t, s.MinAdoption, AdoptionRate(PriceCeil, s), 1e-12, s.Name)

		// Never below the floor anywhere in range
		for price := PriceFloor; price <= PriceCeil; price += 0.25 {
			rate := AdoptionRate(price, s)
			assert.GreaterOrEqual(t, rate, s.MinAdoption, "%s at price %.2f", s.Name, price)
			assert.LessOrEqual(t, rate, s.MaxAdoption, "%s at price %.2f", s.Name, price)
		}

		// The floor, not extrapolation, governs out-of-range prices
		assert.Equal(t, s.MinAdoption, AdoptionRate(35, s), s.Name)
	}
}

func TestAdoptionRateMonotonic(t *testing.T) {
	for _, s := range Scenarios() {
		prev := AdoptionRate(PriceFloor, s)
		for price := PriceFloor + 0.1; price <= PriceCeil; price += 0.1 {
			rate := AdoptionRate(price, s)
			assert.LessOrEqual(t, rate, prev+1e-12, "%s not non-increasing at price %.2f", s.Name, price)
			prev = rate
		}
	}
}

func TestEvaluateRealisticAtFive(t *testing.T) {
	scenario, err := ScenarioByName("realistic")
	require.NoError(t, err)

	model := NewModel(DefaultEconomics(), 5000)
	m := model.Evaluate(5, scenario)

	wantRate := 0.45 - (5-0.99)*0.40/(20-0.99)
	assert.InDelta(t, wantRate, m.AdoptionRate, 1e-12)
	assert.InDelta(t, wantRate, 0.3655, 0.001)

	wantSubs := int(math.Round(250000 * wantRate))
	assert.Equal(t, wantSubs, m.Subscribers)
	assert.InDelta(t, float64(wantSubs)*5, m.Revenue, 1e-6)
	assert.InDelta(t, 15000+float64(wantSubs)*2.25, m.Cost, 1e-6)
	assert.InDelta(t, m.Revenue-m.Cost, m.Profit, 1e-6)
	assert.InDelta(t, 107.1, m.ROI, 0.5)
}

func TestROIZeroCost(t *testing.T) {
	// Degenerate: no fixed cost, no variable cost, empty sample → cost is 0
	model := NewModel(Economics{MarketMultiplier: 50}, 0)
	scenario, err := ScenarioByName("realistic")
	require.NoError(t, err)

	m := model.Evaluate(5, scenario)
	assert.Zero(t, m.Cost)
	assert.Zero(t, m.ROI)

	// Unit-test the branch directly
	assert.Zero(t, roi(100, 0))
	assert.Zero(t, roi(100, -50))
	assert.InDelta(t, 50.0, roi(50, 100), 1e-12)
}

func TestEvaluateNonDegenerateScenarioKeepsPositiveCost(t *testing.T) {
	// Zero subscribers still carries the fixed monthly cost
	model := NewModel(DefaultEconomics(), 0)
	scenario, _ := ScenarioByName("underwhelming")
	m := model.Evaluate(20, scenario)

	assert.Zero(t, m.Subscribers)
	assert.Greater(t, m.Cost, 0.0)
	assert.Less(t, m.ROI, 0.0) // fixed cost with no revenue is a loss
}

func TestSegmentAdoptionCap(t *testing.T) {
	// Even a scalar rate of 1.0 caps every segment at 0.8
	capped := SegmentAdoption(1.0)
	for segment, rate := range capped {
		assert.LessOrEqual(t, rate, 0.8, segment)
	}
	assert.Equal(t, 0.8, capped[synth.SegmentBusiness])

	uncapped := SegmentAdoption(0.4)
	assert.InDelta(t, 0.60, uncapped[synth.SegmentBusiness], 1e-12)
	assert.InDelta(t, 0.48, uncapped[synth.SegmentPower], 1e-12)
	assert.InDelta(t, 0.36, uncapped[synth.SegmentSocial], 1e-12)
	assert.InDelta(t, 0.24, uncapped[synth.SegmentBudget], 1e-12)
}

func TestSweepCurveShape(t *testing.T) {
	model := NewModel(DefaultEconomics(), 5000)
	scenario, _ := ScenarioByName("optimistic")

	points := model.SweepCurve(scenario, 0.05)
	require.NotEmpty(t, points)

	first := points[0]
	assert.InDelta(t, PriceFloor, first.Price, 1e-9)
	assert.InDelta(t, scenario.MaxAdoption, first.AdoptionRate, 1e-12)

	// The sweep keeps subscribers unrounded for curve smoothness
	fractional := false
	for _, p := range points {
		if p.Subscribers != math.Trunc(p.Subscribers) {
			fractional = true
		}
		assert.InDelta(t, p.Subscribers*p.Price, p.Revenue, 1e-6)
		assert.InDelta(t, p.Revenue-p.Cost, p.Profit, 1e-6)
	}
	assert.True(t, fractional, "sweep should not round subscriber counts")

	// Prices strictly increase and stay within the sweep range
	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].Price, points[i-1].Price)
	}
	assert.LessOrEqual(t, points[len(points)-1].Price, PriceCeil+1e-9)
}

func TestScenarioByNameUnknown(t *testing.T) {
	_, err := ScenarioByName("miraculous")
	assert.Error(t, err)
}
