package synth

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAllAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ds := New(Config{
		CustomerCount: 50,
		UsageMonths:   12,
		ReferenceDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}, 42).GenerateAll()

	require.NoError(t, WriteAll(dir, ds))

	for _, name := range []string{CustomersFile, UsageFile, TicketsFile, InterventionsFile, ManifestFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	loaded, err := Load(dir)
	require.NoError(t, err)

	require.Len(t, loaded.Customers, len(ds.Customers))
	require.Len(t, loaded.Usage, len(ds.Usage))
	require.Len(t, loaded.Tickets, len(ds.Tickets))
	require.Len(t, loaded.Interventions, len(ds.Interventions))

	// Identity columns survive the round trip exactly
	for i := range ds.Customers {
		assert.Equal(t, ds.Customers[i].CustomerID, loaded.Customers[i].CustomerID)
		assert.Equal(t, ds.Customers[i].PlanType, loaded.Customers[i].PlanType)
		assert.Equal(t, ds.Customers[i].Segment, loaded.Customers[i].Segment)
		assert.Equal(t, ds.Customers[i].HasAutopay, loaded.Customers[i].HasAutopay)
		assert.Equal(t, ds.Customers[i].SatisfactionScore, loaded.Customers[i].SatisfactionScore)
		// Monetary columns round to cents on write
		assert.InDelta(t, ds.Customers[i].MonthlyBill, loaded.Customers[i].MonthlyBill, 0.005)
	}

	assert.Equal(t, ds.Manifest.RunID, loaded.Manifest.RunID)
	assert.Equal(t, ds.Manifest.UsageRows, loaded.Manifest.UsageRows)
}

func TestCSVHeaders(t *testing.T) {
	dir := t.TempDir()
	ds := New(Config{CustomerCount: 5, UsageMonths: 2, ReferenceDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}, 1).GenerateAll()
	require.NoError(t, WriteAll(dir, ds))

	cases := map[string][]string{
		CustomersFile:     customerHeader,
		UsageFile:         usageHeader,
		TicketsFile:       ticketHeader,
		InterventionsFile: interventionHeader,
	}
	for name, want := range cases {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		header, err := csv.NewReader(f).Read()
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, want, header, name)
	}
}

func TestUsageCSVEmbedsCustomerColumns(t *testing.T) {
	assert.Equal(t, "customer_id", usageHeader[0])
	assert.Equal(t, "total_lifetime_value", usageHeader[8])
	assert.Equal(t, "billing_month", usageHeader[9])
	assert.Equal(t, "overage_charges", usageHeader[13])
}

func TestLoadMissingTableFails(t *testing.T) {
	dir := t.TempDir()
	ds := New(Config{CustomerCount: 5, UsageMonths: 2, ReferenceDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}, 1).GenerateAll()
	require.NoError(t, WriteAll(dir, ds))

	require.NoError(t, os.Remove(filepath.Join(dir, TicketsFile)))
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestWriteAllUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	// A regular file where a directory is needed makes MkdirAll fail
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	ds := New(Config{CustomerCount: 2, UsageMonths: 1, ReferenceDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}, 1).GenerateAll()
	err := WriteAll(filepath.Join(blocked, "data"), ds)
	assert.Error(t, err)
}
