package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kvdesign/kvbench/internal/models"
	"github.com/kvdesign/kvbench/internal/scenario"
)

func newScenariosCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := scenario.NewCatalog()
			if err != nil {
				return err
			}
			if dir != "" {
				if err := catalog.LoadDir(dir); err != nil {
					return err
				}
			}

			for _, s := range catalog.Scenarios() {
				fmt.Printf("%-40s %s\n", s.Name, s.Complexity)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "scenario-dir", "", "Directory of extra scenario YAML files")

	cmd.AddCommand(newScenariosValidateCommand())
	return cmd
}

func newScenariosValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Validate a scenario file",
		Long: `Validate a scenario YAML file against the scenario schema and check
that every access pattern references a declared entity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			if errs := scenario.ValidateBytes(data); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(os.Stderr, "  %s\n", e)
				}
				return fmt.Errorf("%s: %d schema violation(s)", args[0], len(errs))
			}

			s, err := models.LoadScenario(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s: OK (%s, %s)\n", args[0], s.Name, s.Complexity)
			return nil
		},
	}
}
