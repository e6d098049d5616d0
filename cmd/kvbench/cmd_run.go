package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kvdesign/kvbench/internal/aggregate"
	"github.com/kvdesign/kvbench/internal/channel"
	"github.com/kvdesign/kvbench/internal/models"
	"github.com/kvdesign/kvbench/internal/scenario"
	"github.com/kvdesign/kvbench/internal/spinner"
)

var (
	scenarioNames []string
	modelIDs      []string
	provider      string
	judgeModel    string
	scenarioDir   string
	outputPath    string
	parallel      bool
	workers       int
	turnTimeout   time.Duration
	verbose       bool
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the evaluation pipeline",
		Long: `Run the evaluation pipeline over every (scenario, model) pairing.

Scenarios default to the builtin catalog's "` + scenario.DefaultScenario + `".
Models can be repeated to produce a comparison ranking.`,
		Args: cobra.NoArgs,
		RunE: runCommandE,
	}

	cmd.Flags().StringArrayVar(&scenarioNames, "scenario", nil, "Scenario name (can be repeated; default: "+scenario.DefaultScenario+")")
	cmd.Flags().StringArrayVar(&modelIDs, "model", nil, "Model to evaluate (can be repeated for comparison)")
	cmd.Flags().StringVar(&provider, "provider", string(channel.KindCopilot), "Channel provider: copilot, openai, anthropic")
	cmd.Flags().StringVar(&judgeModel, "judge-model", "gpt-4o", "Model used to judge transcripts")
	cmd.Flags().StringVar(&scenarioDir, "scenario-dir", "", "Directory of extra scenario YAML files")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output JSON file for the full report")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Evaluate pairings concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent workers (default: 4, requires --parallel)")
	cmd.Flags().DurationVar(&turnTimeout, "turn-timeout", 0, "Per-turn timeout for assistant calls (default: 5m)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with per-pairing progress")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	catalog, err := scenario.NewCatalog()
	if err != nil {
		return fmt.Errorf("loading builtin scenarios: %w", err)
	}
	if scenarioDir != "" {
		if err := catalog.LoadDir(scenarioDir); err != nil {
			return fmt.Errorf("loading scenarios from %s: %w", scenarioDir, err)
		}
	}

	names := scenarioNames
	if len(names) == 0 {
		names = []string{scenario.DefaultScenario}
	}
	scenarios := make([]*models.Scenario, 0, len(names))
	for _, name := range names {
		s, err := catalog.Lookup(name)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, s)
	}

	modelsToRun := modelIDs
	if len(modelsToRun) == 0 {
		modelsToRun = []string{aggregate.DefaultModel}
	}

	ch, err := channel.New(channel.Kind(provider), map[string]any{
		"judge_model": judgeModel,
		"api_key":     os.Getenv("KVBENCH_API_KEY"),
	})
	if err != nil {
		return err
	}
	defer ch.Close() //nolint:errcheck

	agg := aggregate.New(ch, ch, aggregate.Config{
		Parallel:    parallel,
		Workers:     workers,
		TurnTimeout: turnTimeout,
	})

	// Spinner only on an interactive terminal, and never over verbose
	// progress output.
	var stopSpinner func()
	if !verbose && term.IsTerminal(int(os.Stdout.Fd())) {
		msg := fmt.Sprintf("Evaluating %d scenario(s) x %d model(s)...", len(scenarios), len(modelsToRun))
		stopSpinner = spinner.Start(os.Stdout, msg)
	}

	report, err := agg.Evaluate(cmd.Context(), scenarios, modelsToRun)
	if stopSpinner != nil {
		stopSpinner()
	}
	if err != nil {
		return err
	}

	printReport(os.Stdout, report, verbose)

	if outputPath != "" {
		if err := saveReport(report, outputPath); err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
		fmt.Printf("Results saved to: %s\n", outputPath)
	}

	return nil
}
