package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/inventory-sim/inventory-sim/sim/sweep"
)

// reportDocument is the JSON written by --output and returned by the HTTP API.
type reportDocument struct {
	*sweep.Report
	Ranking []sweep.RankedScenario `json:"ranking"`
}

func newReportDocument(report *sweep.Report) reportDocument {
	return reportDocument{Report: report, Ranking: sweep.Rank(report.Scenarios)}
}

// printRanking writes the top scenarios by mean cost. top <= 0 prints all.
func printRanking(w io.Writer, report *sweep.Report, top int) {
	rows := sweep.Rank(report.Scenarios)
	if top > 0 && top < len(rows) {
		rows = rows[:top]
	}
	fmt.Fprintln(w, "=== Scenario Ranking ===")
	fmt.Fprintf(w, "Run ID               : %s\n", report.RunID)
	fmt.Fprintf(w, "Seed                 : %d\n", report.Seed)
	fmt.Fprintf(w, "Scenarios            : %d\n", len(report.Scenarios))
	fmt.Fprintf(w, "Warnings             : %d\n", len(report.Warnings))
	for _, r := range rows {
		fmt.Fprintf(w, "#%-3d scenario %-4d cost %s ± %s  fill %s%%  ELT %s%%  %s\n",
			r.Rank, r.ScenarioID, r.MeanCost.StringFixed(2), r.CostStdDev.StringFixed(2),
			r.MeanFillRate.StringFixed(2), r.MeanServiceLevel.StringFixed(2), r.Description)
	}
}

// writeReport saves the report and its ranking as indented JSON.
func writeReport(path string, report *sweep.Report) error {
	data, err := json.MarshalIndent(newReportDocument(report), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
