package synth

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// DATASET GENERATOR
// One-shot batch generation of the four tables. The generator owns its
// random source — callers pass a seed, never touch a process-global one —
// and all date windows are anchored to a fixed reference date so a seed
// reproduces the exact same rows on every run.
//
// Draw order is part of the contract: tables generate in the order
// customers → usage → tickets → interventions; customers draw their fields
// in struct order; usage iterates customer-outer, month-inner (oldest month
// first) and draws data, voice, text per row. Reordering any of these draws
// changes every downstream value for a given seed.
// ============================================================================

// Config holds the generation parameters.
type Config struct {
	CustomerCount int
	UsageMonths   int
	ReferenceDate time.Time
}

// Generator produces the synthetic dataset from a seeded random source.
type Generator struct {
	cfg  Config
	seed int64
	rng  *rand.Rand
}

// New creates a generator with its own seeded random source.
func New(cfg Config, seed int64) *Generator {
	if cfg.CustomerCount <= 0 {
		cfg.CustomerCount = 5000
	}
	if cfg.UsageMonths <= 0 {
		cfg.UsageMonths = 12
	}
	if cfg.ReferenceDate.IsZero() {
		cfg.ReferenceDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &Generator{
		cfg:  cfg,
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// GenerateAll produces all four tables in the fixed table order and stamps
// the run manifest.
func (g *Generator) GenerateAll() *Dataset {
	customers := g.GenerateCustomers(g.cfg.CustomerCount)
	usage := g.GenerateUsage(customers)
	tickets := g.GenerateTickets(customers)
	interventions := g.GenerateInterventions(customers)

	return &Dataset{
		Customers:     customers,
		Usage:         usage,
		Tickets:       tickets,
		Interventions: interventions,
		Manifest: Manifest{
			RunID:            uuid.New().String(),
			Seed:             g.seed,
			GeneratedAt:      time.Now().UTC(),
			ReferenceDate:    g.cfg.ReferenceDate.Format("2006-01-02"),
			CustomerCount:    len(customers),
			UsageRows:        len(usage),
			TicketRows:       len(tickets),
			InterventionRows: len(interventions),
		},
	}
}

// GenerateCustomers samples n independent customer rows.
func (g *Generator) GenerateCustomers(n int) []Customer {
	customers := make([]Customer, 0, n)
	for i := 1; i <= n; i++ {
		age := 18 + g.rng.Intn(48) // 18–65
		plan := g.samplePlanType()
		band := billBands[plan]
		bill := g.uniform(band[0], band[1])
		signup := g.cfg.ReferenceDate.AddDate(0, 0, -g.rng.Intn(730))
		segment := Segments[g.rng.Intn(len(Segments))]
		autopay := g.rng.Float64() < 0.70
		satisfaction := clampInt(int(math.Round(g.rng.NormFloat64()*1.5+7.5)), 1, 10)
		ltv := g.uniform(200, 2500)

		customers = append(customers, Customer{
			CustomerID:        fmt.Sprintf("CUST%06d", i),
			Age:               age,
			PlanType:          plan,
			MonthlyBill:       bill,
			SignupDate:        signup,
			Segment:           segment,
			HasAutopay:        autopay,
			SatisfactionScore: satisfaction,
			LifetimeValue:     ltv,
		})
	}
	return customers
}

// GenerateUsage emits one row per customer per billing month across the
// trailing window, oldest month first. Volumes come from tier-, age-, and
// segment-conditioned normals clipped at zero.
func (g *Generator) GenerateUsage(customers []Customer) []UsageRecord {
	months := g.billingMonths()
	records := make([]UsageRecord, 0, len(customers)*len(months))

	for _, c := range customers {
		for _, month := range months {
			dataGB := clipZero(g.rng.NormFloat64()*dataSD(c.PlanType) + dataMean(c.PlanType))
			voice := clipZero(g.rng.NormFloat64()*120 + voiceMean(c.Age))
			texts := clipZero(g.rng.NormFloat64()*textSD(c.Segment) + textMean(c.Segment))

			records = append(records, UsageRecord{
				CustomerID:     c.CustomerID,
				BillingMonth:   month,
				DataGB:         dataGB,
				VoiceMinutes:   voice,
				TextMessages:   texts,
				OverageCharges: clipZero(OverageCharge(c.PlanType, dataGB)),
			})
		}
	}
	return records
}

// GenerateTickets creates round(0.8 × customer count) tickets, each assigned
// to a random customer with replacement.
func (g *Generator) GenerateTickets(customers []Customer) []SupportTicket {
	count := int(math.Round(0.8 * float64(len(customers))))
	tickets := make([]SupportTicket, 0, count)

	for i := 1; i <= count; i++ {
		customer := customers[g.rng.Intn(len(customers))]
		issue := IssueTypes[g.rng.Intn(len(IssueTypes))]
		created := g.cfg.ReferenceDate.AddDate(0, 0, -g.rng.Intn(180))
		bucket := resolutionHours[issue]

		tickets = append(tickets, SupportTicket{
			TicketID:         fmt.Sprintf("TKT%06d", i),
			CustomerID:       customer.CustomerID,
			IssueType:        issue,
			CreatedDate:      created,
			ResolutionHours:  g.uniform(bucket[0], bucket[1]),
			AIPreventable:    IsPreventable(issue),
			PotentialSavings: TicketSavings(issue),
		})
	}
	return tickets
}

// interventionCountProbs is the cumulative distribution over 1–5
// interventions per AI-assisted customer.
var interventionCountProbs = [5]float64{0.40, 0.70, 0.90, 0.98, 1.00}

// GenerateInterventions selects a random 30% cohort of customers without
// replacement and draws 1–5 interventions for each over the trailing 90 days.
func (g *Generator) GenerateInterventions(customers []Customer) []AIIntervention {
	cohortSize := int(0.30 * float64(len(customers)))
	perm := g.rng.Perm(len(customers))

	var interventions []AIIntervention
	for _, idx := range perm[:cohortSize] {
		customer := customers[idx]
		count := g.sampleInterventionCount()

		for j := 0; j < count; j++ {
			itype := InterventionTypes[g.rng.Intn(len(InterventionTypes))]
			interventions = append(interventions, AIIntervention{
				CustomerID:       customer.CustomerID,
				InterventionDate: g.cfg.ReferenceDate.AddDate(0, 0, -g.rng.Intn(90)),
				InterventionType: itype,
				SavingsAmount:    InterventionSavings(itype),
				ConfidenceScore:  g.uniform(0.75, 0.98),
			})
		}
	}
	return interventions
}

// billingMonths returns the trailing window of billing-month keys ending at
// the month containing the reference date, oldest first.
func (g *Generator) billingMonths() []string {
	ref := time.Date(g.cfg.ReferenceDate.Year(), g.cfg.ReferenceDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]string, 0, g.cfg.UsageMonths)
	for m := g.cfg.UsageMonths - 1; m >= 0; m-- {
		months = append(months, ref.AddDate(0, -m, 0).Format("2006-01"))
	}
	return months
}

func (g *Generator) samplePlanType() string {
	r := g.rng.Float64()
	cum := 0.0
	for _, p := range PlanTypes {
		cum += p.Weight
		if r < cum {
			return p.Name
		}
	}
	return PlanTypes[len(PlanTypes)-1].Name
}

func (g *Generator) sampleInterventionCount() int {
	r := g.rng.Float64()
	for i, cum := range interventionCountProbs {
		if r < cum {
			return i + 1
		}
	}
	return len(interventionCountProbs)
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// Usage distribution parameters. Data volume is conditioned on plan tier,
// voice minutes on age, text volume on segment.

func dataMean(plan string) float64 {
	switch plan {
	case PlanBasic:
		return 8
	case PlanStandard:
		return 18
	case PlanPremium:
		return 30
	case PlanUnlimited:
		return 45
	}
	return 15
}

func dataSD(plan string) float64 {
	return dataMean(plan) / 4
}

func voiceMean(age int) float64 {
	// Older customers skew toward voice
	return 200 + float64(age)*4
}

func textMean(segment string) float64 {
	switch segment {
	case SegmentSocial:
		return 3000
	case SegmentPower:
		return 1500
	case SegmentBusiness:
		return 1200
	case SegmentBudget:
		return 800
	}
	return 1000
}

func textSD(segment string) float64 {
	return textMean(segment) / 3
}

func clipZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
