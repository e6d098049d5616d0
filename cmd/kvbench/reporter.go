package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/kvdesign/kvbench/internal/models"
)

// formatDuration formats a duration in a consistent, human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}

// printReport renders per-pairing results and the model ranking.
func printReport(w io.Writer, report *models.ComparisonReport, verbose bool) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("═", 78))
	fmt.Fprintln(w, " EVALUATION RESULTS")
	fmt.Fprintln(w, strings.Repeat("═", 78))
	fmt.Fprintln(w)

	header := padRight("Scenario", 32) + padRight("Model", 20) +
		padRight("Session", 9) + padRight("Design", 9) + "Status"
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	for i := range report.Results {
		r := &report.Results[i]
		session, design := "-", "-"
		status := string(r.Status)
		if r.SessionCard != nil {
			session = fmt.Sprintf("%.2f", r.SessionCard.Overall)
		}
		if r.ModelCard != nil {
			design = fmt.Sprintf("%.2f", r.ModelCard.Overall)
		}
		if r.Status == models.RunFailed {
			status = fmt.Sprintf("failed (%s)", r.FailedPhase)
		}

		fmt.Fprintln(w, padRight(truncateName(r.Scenario, 30), 32)+
			padRight(truncateName(r.Model, 18), 20)+
			padRight(session, 9)+
			padRight(design, 9)+
			status)

		if verbose {
			printRunDetail(w, r)
		}
	}

	if len(report.Rankings) > 1 {
		printRanking(w, report.Rankings)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Completed in %s\n", formatDuration(report.Duration))
}

// printRunDetail renders per-dimension scores and failure detail for one run.
func printRunDetail(w io.Writer, r *models.RunResult) {
	if r.ErrorMsg != "" {
		fmt.Fprintf(w, "    error: %s\n", r.ErrorMsg)
	}
	for _, card := range []*models.ScoreCard{r.SessionCard, r.ModelCard} {
		if card == nil {
			continue
		}
		fmt.Fprintf(w, "    %s rubric (%s):\n", card.RubricKind, card.Quality)
		for _, dim := range card.RubricKind.Dimensions() {
			fmt.Fprintf(w, "      %s %.1f\n", padRight(dim+":", 30), card.DimensionScores[dim])
		}
	}
	fmt.Fprintf(w, "    timings: conversation %s, session eval %s, model eval %s\n",
		formatDuration(r.Timings.Conversation),
		formatDuration(r.Timings.SessionEval),
		formatDuration(r.Timings.ModelEval))
}

// printRanking renders the model comparison for multi-model runs.
func printRanking(w io.Writer, rankings []models.ModelRanking) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, " MODEL RANKING")
	fmt.Fprintln(w, strings.Repeat("─", 78))
	fmt.Fprintln(w, padRight("Rank", 6)+padRight("Model", 24)+padRight("Avg Score", 11)+"Succeeded")
	for i, rk := range rankings {
		fmt.Fprintln(w, padRight(fmt.Sprintf("%d.", i+1), 6)+
			padRight(truncateName(rk.Model, 22), 24)+
			padRight(fmt.Sprintf("%.2f", rk.AvgScore), 11)+
			fmt.Sprintf("%d/%d", rk.Succeeded, rk.Evaluated))
	}
}

// saveReport writes the full report as indented JSON.
func saveReport(report *models.ComparisonReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// truncateName shortens a name to maxLen runes, replacing the last rune with "…" if needed.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
