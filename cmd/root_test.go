package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const networkYAML = `
facilities:
  - {name: Plant, type: Plant}
  - {name: DC1, type: DC}
customer_fulfillment:
  - {customer: C1, product: Widget, facility: DC1}
customer_order_profiles:
  - {customer: C1, product: Widget, demand: "Poisson(20)", inter_arrival: 1, service_window_days: 2}
replenishment:
  - {facility: DC1, product: Widget, source: Plant}
production:
  - {facility: Plant, product: Widget, policy: Continuous, rate: 30, rate_unit: DAY}
inventory_policies:
  - {facility: Plant, product: Widget, value1: 50, value2: 500, initial_inventory: 200}
  - {facility: DC1, product: Widget, value1: 30, value2: 120}
input_factors:
  - {facility: DC1, product: Widget, s: "100,200,50", S: "500,800,100"}
`

// executeRoot runs the root command with args and returns its stdout.
func executeRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		for _, name := range []string{"replications", "horizon", "seed", "workers", "logs", "output", "top", "config"} {
			f := runCmd.Flags().Lookup(name)
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCountCommand_PrintsScenarioCount(t *testing.T) {
	// GIVEN s in {100,150,200} and S in {500,...,800}
	input := writeTempFile(t, "network.yaml", networkYAML)

	// WHEN count runs
	out := executeRoot(t, "count", "--input", input)

	// THEN all 12 pairs are counted
	assert.Equal(t, "12", strings.TrimSpace(out))
}

func TestRunCommand_WritesRankingAndReport(t *testing.T) {
	input := writeTempFile(t, "network.yaml", networkYAML)
	output := filepath.Join(t.TempDir(), "report.json")

	out := executeRoot(t, "run", "--input", input, "--horizon", "20", "--replications", "2",
		"--seed", "5", "--top", "3", "--output", output)

	assert.Contains(t, out, "=== Scenario Ranking ===")
	assert.Contains(t, out, "Seed                 : 5")
	assert.Equal(t, 3, strings.Count(out, "scenario "))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var doc struct {
		Scenarios []json.RawMessage `json:"scenarios"`
		Ranking   []json.RawMessage `json:"ranking"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Scenarios, 12)
	assert.Len(t, doc.Ranking, 12)
}
