package synth

import "time"

// ============================================================================
// SYNTHETIC DATASET TYPES
// Four related tables for the fictional Pulse Mobile customer base. All
// categorical sets are closed enumerations; foreign references always point
// at a generated customer row.
// ============================================================================

// Plan tiers, in sampling-weight order
const (
	PlanBasic     = "Basic"
	PlanStandard  = "Standard"
	PlanPremium   = "Premium"
	PlanUnlimited = "Unlimited"
)

// PlanTypes lists the four plan tiers with their categorical sampling weights.
var PlanTypes = []struct {
	Name   string
	Weight float64
}{
	{PlanBasic, 0.30},
	{PlanStandard, 0.35},
	{PlanPremium, 0.25},
	{PlanUnlimited, 0.10},
}

// Customer behavioral segments
const (
	SegmentBudget   = "Budget Conscious"
	SegmentPower    = "Power User"
	SegmentSocial   = "Social Connector"
	SegmentBusiness = "Business User"
)

// Segments lists the four behavioral segments. Segment assignment is sampled
// uniformly and independently of plan type — the narrative docs imply a
// correlation but the generated data intentionally has none.
var Segments = []string{SegmentBudget, SegmentPower, SegmentSocial, SegmentBusiness}

// IssueTypes lists the nine support ticket categories.
var IssueTypes = []string{
	"Billing Question",
	"Service Outage",
	"Plan Change",
	"Device Support",
	"Network Coverage",
	"Payment Issue",
	"Account Access",
	"Data Usage Inquiry",
	"Roaming Charges",
}

// InterventionTypes lists the five AI assistant intervention categories.
var InterventionTypes = []string{
	"Billing Support",
	"Technical Support",
	"Account Management",
	"Usage Optimization",
	"Plan Recommendation",
}

// preventableSavings maps AI-preventable issue types to their potential
// per-ticket savings. Issue types absent from this table are not preventable
// and carry zero savings — missing lookups must never surface as a gap.
var preventableSavings = map[string]float64{
	"Billing Question":   18.0,
	"Plan Change":        15.0,
	"Payment Issue":      20.0,
	"Account Access":     10.0,
	"Data Usage Inquiry": 12.0,
}

// interventionSavings maps intervention types to their deterministic savings
// amount. Unknown types resolve to zero.
var interventionSavings = map[string]float64{
	"Billing Support":     45.0,
	"Technical Support":   85.0,
	"Account Management":  35.0,
	"Usage Optimization":  60.0,
	"Plan Recommendation": 50.0,
}

// resolutionHours maps each issue type to its [min, max) resolution-time
// bucket. Infrastructure issues resolve slowly; account issues quickly.
var resolutionHours = map[string][2]float64{
	"Billing Question":   {0.5, 8},
	"Service Outage":     {4, 48},
	"Plan Change":        {0.5, 4},
	"Device Support":     {1, 24},
	"Network Coverage":   {4, 72},
	"Payment Issue":      {0.5, 6},
	"Account Access":     {0.25, 3},
	"Data Usage Inquiry": {0.5, 4},
	"Roaming Charges":    {1, 12},
}

// billBands maps each plan type to its uniform monthly-bill range.
var billBands = map[string][2]float64{
	PlanBasic:     {25, 40},
	PlanStandard:  {40, 65},
	PlanPremium:   {65, 90},
	PlanUnlimited: {90, 120},
}

// overageSchedule defines the per-plan data threshold (GB) and per-GB rate
// for overage charges. Unlimited never incurs overage.
var overageSchedule = map[string]struct {
	ThresholdGB float64
	RatePerGB   float64
}{
	PlanBasic:    {10, 10},
	PlanStandard: {20, 8},
	PlanPremium:  {35, 5},
}

// Customer is a single subscriber row, immutable after generation.
type Customer struct {
	CustomerID        string    `json:"customer_id"`
	Age               int       `json:"age"`
	PlanType          string    `json:"plan_type"`
	MonthlyBill       float64   `json:"monthly_bill"`
	SignupDate        time.Time `json:"signup_date"`
	Segment           string    `json:"customer_segment"`
	HasAutopay        bool      `json:"has_autopay"`
	SatisfactionScore int       `json:"satisfaction_score"`
	LifetimeValue     float64   `json:"total_lifetime_value"`
}

// UsageRecord is one (customer, billing month) usage row. The pair is not
// deduplicated at generation time; the generator emits exactly one row per
// customer per month but consumers must not assume uniqueness.
type UsageRecord struct {
	CustomerID     string  `json:"customer_id"`
	BillingMonth   string  `json:"billing_month"` // Format: "2006-01"
	DataGB         float64 `json:"data_gb"`
	VoiceMinutes   float64 `json:"voice_minutes"`
	TextMessages   float64 `json:"text_messages"`
	OverageCharges float64 `json:"overage_charges"`
}

// SupportTicket is a single support interaction. Tickets are assigned to
// customers with replacement — a customer may have zero or many.
type SupportTicket struct {
	TicketID         string    `json:"ticket_id"`
	CustomerID       string    `json:"customer_id"`
	IssueType        string    `json:"issue_type"`
	CreatedDate      time.Time `json:"created_date"`
	ResolutionHours  float64   `json:"resolution_time_hours"`
	AIPreventable    bool      `json:"ai_preventable"`
	PotentialSavings float64   `json:"potential_savings"`
}

// AIIntervention is one automated-assistant action taken for a customer in
// the AI-assisted cohort (a random 30% subset of the base).
type AIIntervention struct {
	CustomerID       string    `json:"customer_id"`
	InterventionDate time.Time `json:"intervention_date"`
	InterventionType string    `json:"intervention_type"`
	SavingsAmount    float64   `json:"savings_amount"`
	ConfidenceScore  float64   `json:"confidence_score"`
}

// Dataset bundles the four generated tables plus the run manifest.
type Dataset struct {
	Customers     []Customer
	Usage         []UsageRecord
	Tickets       []SupportTicket
	Interventions []AIIntervention
	Manifest      Manifest
}

// CustomerIndex returns a lookup from customer id to row.
func (d *Dataset) CustomerIndex() map[string]Customer {
	idx := make(map[string]Customer, len(d.Customers))
	for _, c := range d.Customers {
		idx[c.CustomerID] = c
	}
	return idx
}

// SegmentCounts returns the customer population per segment.
func (d *Dataset) SegmentCounts() map[string]int {
	counts := make(map[string]int, len(Segments))
	for _, c := range d.Customers {
		counts[c.Segment]++
	}
	return counts
}

// TicketSavings returns the potential savings for an issue type. Issue types
// outside the preventable set yield zero, never a missing value.
func TicketSavings(issueType string) float64 {
	return preventableSavings[issueType]
}

// IsPreventable reports whether an issue type is in the AI-preventable set.
func IsPreventable(issueType string) bool {
	_, ok := preventableSavings[issueType]
	return ok
}

// InterventionSavings returns the deterministic savings for an intervention
// type, zero for unknown types.
func InterventionSavings(interventionType string) float64 {
	return interventionSavings[interventionType]
}

// OverageCharge computes the overage charge for a plan given data usage.
// Unlimited plans (and any plan without a schedule entry) never incur one.
func OverageCharge(planType string, dataGB float64) float64 {
	sched, ok := overageSchedule[planType]
	if !ok {
		return 0
	}
	over := dataGB - sched.ThresholdGB
	if over <= 0 {
		return 0
	}
	return over * sched.RatePerGB
}
