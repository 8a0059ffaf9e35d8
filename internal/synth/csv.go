package synth

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ============================================================================
// CSV PERSISTENCE
// The four tables persist as comma-delimited files with header rows. The
// usage file denormalizes the owning customer's columns ahead of the usage
// columns, matching the shape the dashboard's analysis layer expects.
// I/O failures are fatal to the run and propagate wrapped — generation is a
// one-shot batch job, nothing retries.
// ============================================================================

const (
	CustomersFile     = "synthetic-customers.csv"
	UsageFile         = "synthetic-usage-data.csv"
	TicketsFile       = "synthetic-support-tickets.csv"
	InterventionsFile = "synthetic-ai-interventions.csv"
	ManifestFile      = "manifest.json"

	dateLayout = "2006-01-02"
)

// Manifest records the provenance of a generation run.
type Manifest struct {
	RunID            string    `json:"run_id"`
	Seed             int64     `json:"seed"`
	GeneratedAt      time.Time `json:"generated_at"`
	ReferenceDate    string    `json:"reference_date"`
	CustomerCount    int       `json:"customer_count"`
	UsageRows        int       `json:"usage_rows"`
	TicketRows       int       `json:"ticket_rows"`
	InterventionRows int       `json:"intervention_rows"`
	Files            []string  `json:"files"`
}

var customerHeader = []string{
	"customer_id", "age", "plan_type", "monthly_bill", "signup_date",
	"customer_segment", "has_autopay", "satisfaction_score", "total_lifetime_value",
}

var usageHeader = append(append([]string{}, customerHeader...),
	"billing_month", "data_gb", "voice_minutes", "text_messages", "overage_charges")

var ticketHeader = []string{
	"ticket_id", "customer_id", "issue_type", "created_date",
	"resolution_time_hours", "ai_preventable", "potential_savings",
}

var interventionHeader = []string{
	"customer_id", "intervention_date", "intervention_type", "savings_amount", "confidence_score",
}

// WriteAll persists the four tables and the run manifest under dir,
// creating the directory if needed.
func WriteAll(dir string, ds *Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	if err := writeCustomers(filepath.Join(dir, CustomersFile), ds.Customers); err != nil {
		return err
	}
	if err := writeUsage(filepath.Join(dir, UsageFile), ds); err != nil {
		return err
	}
	if err := writeTickets(filepath.Join(dir, TicketsFile), ds.Tickets); err != nil {
		return err
	}
	if err := writeInterventions(filepath.Join(dir, InterventionsFile), ds.Interventions); err != nil {
		return err
	}

	ds.Manifest.Files = []string{CustomersFile, UsageFile, TicketsFile, InterventionsFile}
	data, err := json.MarshalIndent(ds.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Load reads a previously written dataset back from dir. A missing manifest
// is tolerated (older artifacts); missing tables are not.
func Load(dir string) (*Dataset, error) {
	customers, err := readCustomers(filepath.Join(dir, CustomersFile))
	if err != nil {
		return nil, err
	}
	usage, err := readUsage(filepath.Join(dir, UsageFile))
	if err != nil {
		return nil, err
	}
	tickets, err := readTickets(filepath.Join(dir, TicketsFile))
	if err != nil {
		return nil, err
	}
	interventions, err := readInterventions(filepath.Join(dir, InterventionsFile))
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Customers:     customers,
		Usage:         usage,
		Tickets:       tickets,
		Interventions: interventions,
	}
	if data, err := os.ReadFile(filepath.Join(dir, ManifestFile)); err == nil {
		_ = json.Unmarshal(data, &ds.Manifest)
	}
	return ds, nil
}

func customerRecord(c Customer) []string {
	return []string{
		c.CustomerID,
		strconv.Itoa(c.Age),
		c.PlanType,
		strconv.FormatFloat(c.MonthlyBill, 'f', 2, 64),
		c.SignupDate.Format(dateLayout),
		c.Segment,
		strconv.FormatBool(c.HasAutopay),
		strconv.Itoa(c.SatisfactionScore),
		strconv.FormatFloat(c.LifetimeValue, 'f', 2, 64),
	}
}

func writeCustomers(path string, customers []Customer) error {
	return writeCSV(path, customerHeader, len(customers), func(i int) []string {
		return customerRecord(customers[i])
	})
}

func writeUsage(path string, ds *Dataset) error {
	idx := ds.CustomerIndex()
	return writeCSV(path, usageHeader, len(ds.Usage), func(i int) []string {
		u := ds.Usage[i]
		row := customerRecord(idx[u.CustomerID])
		return append(row,
			u.BillingMonth,
			strconv.FormatFloat(u.DataGB, 'f', 2, 64),
			strconv.FormatFloat(u.VoiceMinutes, 'f', 1, 64),
			strconv.FormatFloat(u.TextMessages, 'f', 1, 64),
			strconv.FormatFloat(u.OverageCharges, 'f', 2, 64),
		)
	})
}

func writeTickets(path string, tickets []SupportTicket) error {
	return writeCSV(path, ticketHeader, len(tickets), func(i int) []string {
		t := tickets[i]
		return []string{
			t.TicketID,
			t.CustomerID,
			t.IssueType,
			t.CreatedDate.Format(dateLayout),
			strconv.FormatFloat(t.ResolutionHours, 'f', 2, 64),
			strconv.FormatBool(t.AIPreventable),
			strconv.FormatFloat(t.PotentialSavings, 'f', 2, 64),
		}
	})
}

func writeInterventions(path string, interventions []AIIntervention) error {
	return writeCSV(path, interventionHeader, len(interventions), func(i int) []string {
		iv := interventions[i]
		return []string{
			iv.CustomerID,
			iv.InterventionDate.Format(dateLayout),
			iv.InterventionType,
			strconv.FormatFloat(iv.SavingsAmount, 'f', 2, 64),
			strconv.FormatFloat(iv.ConfidenceScore, 'f', 4, 64),
		}
	})
}

func writeCSV(path string, header []string, rows int, record func(i int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %s header: %w", filepath.Base(path), err)
	}
	for i := 0; i < rows; i++ {
		if err := w.Write(record(i)); err != nil {
			return fmt.Errorf("writing %s row %d: %w", filepath.Base(path), i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

func readCSV(path string, wantCols int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = wantCols
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading %s: empty file", filepath.Base(path))
	}
	return records[1:], nil // skip header
}

func readCustomers(path string) ([]Customer, error) {
	rows, err := readCSV(path, len(customerHeader))
	if err != nil {
		return nil, err
	}
	customers := make([]Customer, 0, len(rows))
	for _, row := range rows {
		c, err := parseCustomerColumns(row)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", CustomersFile, err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func parseCustomerColumns(row []string) (Customer, error) {
	age, err := strconv.Atoi(row[1])
	if err != nil {
		return Customer{}, fmt.Errorf("age %q: %w", row[1], err)
	}
	bill, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return Customer{}, fmt.Errorf("monthly_bill %q: %w", row[3], err)
	}
	signup, err := time.Parse(dateLayout, row[4])
	if err != nil {
		return Customer{}, fmt.Errorf("signup_date %q: %w", row[4], err)
	}
	autopay, err := strconv.ParseBool(row[6])
	if err != nil {
		return Customer{}, fmt.Errorf("has_autopay %q: %w", row[6], err)
	}
	satisfaction, err := strconv.Atoi(row[7])
	if err != nil {
		return Customer{}, fmt.Errorf("satisfaction_score %q: %w", row[7], err)
	}
	ltv, err := strconv.ParseFloat(row[8], 64)
	if err != nil {
		return Customer{}, fmt.Errorf("total_lifetime_value %q: %w", row[8], err)
	}
	return Customer{
		CustomerID:        row[0],
		Age:               age,
		PlanType:          row[2],
		MonthlyBill:       bill,
		SignupDate:        signup,
		Segment:           row[5],
		HasAutopay:        autopay,
		SatisfactionScore: satisfaction,
		LifetimeValue:     ltv,
	}, nil
}

func readUsage(path string) ([]UsageRecord, error) {
	rows, err := readCSV(path, len(usageHeader))
	if err != nil {
		return nil, err
	}
	usage := make([]UsageRecord, 0, len(rows))
	for _, row := range rows {
		// Customer columns occupy 0–8; usage-specific columns follow.
		vals := make([]float64, 4)
		for i, col := range []int{10, 11, 12, 13} {
			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %s column %d %q: %w", UsageFile, col, row[col], err)
			}
			vals[i] = v
		}
		usage = append(usage, UsageRecord{
			CustomerID:     row[0],
			BillingMonth:   row[9],
			DataGB:         vals[0],
			VoiceMinutes:   vals[1],
			TextMessages:   vals[2],
			OverageCharges: vals[3],
		})
	}
	return usage, nil
}

func readTickets(path string) ([]SupportTicket, error) {
	rows, err := readCSV(path, len(ticketHeader))
	if err != nil {
		return nil, err
	}
	tickets := make([]SupportTicket, 0, len(rows))
	for _, row := range rows {
		created, err := time.Parse(dateLayout, row[3])
		if err != nil {
			return nil, fmt.Errorf("parsing %s created_date %q: %w", TicketsFile, row[3], err)
		}
		hours, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %s resolution_time_hours %q: %w", TicketsFile, row[4], err)
		}
		preventable, err := strconv.ParseBool(row[5])
		if err != nil {
			return nil, fmt.Errorf("parsing %s ai_preventable %q: %w", TicketsFile, row[5], err)
		}
		savings, err := strconv.ParseFloat(row[6], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %s potential_savings %q: %w", TicketsFile, row[6], err)
		}
		tickets = append(tickets, SupportTicket{
			TicketID:         row[0],
			CustomerID:       row[1],
			IssueType:        row[2],
			CreatedDate:      created,
			ResolutionHours:  hours,
			AIPreventable:    preventable,
			PotentialSavings: savings,
		})
	}
	return tickets, nil
}

func readInterventions(path string) ([]AIIntervention, error) {
	rows, err := readCSV(path, len(interventionHeader))
	if err != nil {
		return nil, err
	}
	interventions := make([]AIIntervention, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(dateLayout, row[1])
		if err != nil {
			return nil, fmt.Errorf("parsing %s intervention_date %q: %w", InterventionsFile, row[1], err)
		}
		amount, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %s savings_amount %q: %w", InterventionsFile, row[3], err)
		}
		confidence, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %s confidence_score %q: %w", InterventionsFile, row[4], err)
		}
		interventions = append(interventions, AIIntervention{
			CustomerID:       row[0],
			InterventionDate: date,
			InterventionType: row[2],
			SavingsAmount:    amount,
			ConfidenceScore:  confidence,
		})
	}
	return interventions, nil
}
