package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/polystrat/geosim/internal/api"
	"github.com/polystrat/geosim/internal/experiments"
	"github.com/polystrat/geosim/internal/pipeline"
	"github.com/polystrat/geosim/internal/store"
)

var (
	configFile   string
	snapshotPath string
	compact      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "geosim",
		Short: "Composite scenario analysis from the command line",
		Long: `Runs the full scenario analysis pipeline on a configuration and prints
the comprehensive result envelope as JSON.`,
	}

	rootCmd.PersistentFlags().StringVarP(&snapshotPath, "snapshot", "s", "", "Path for the scenario store snapshot (empty = no persistence)")
	rootCmd.PersistentFlags().BoolVar(&compact, "compact", false, "Print compact JSON instead of indented")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(experimentCmd())
	rootCmd.AddCommand(idCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runCmd analyzes a scenario configuration from a file or stdin
func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Analyze a scenario configuration",
		Long: `Reads a ScenarioConfig as JSON (from --config or stdin), runs the
analysis pipeline, and prints the result envelope.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			result, err := runPipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Scenario config file (JSON, default stdin)")
	return cmd
}

// experimentCmd lists and runs the built-in scenarios
func experimentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Work with built-in scenarios",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range experiments.Names() {
				fmt.Println(name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "run <name>",
		Short: "Run a built-in scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := experiments.Get(args[0])
			if err != nil {
				return err
			}

			result, err := runPipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	})

	return cmd
}

// idCmd prints the deterministic scenario id for a configuration
func idCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "id",
		Short: "Compute the scenario id for a configuration",
		Long: `Prints the deterministic id derived from the canonicalized
configuration. Identical configs always produce the same id.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			id, err := api.ComputeScenarioID(cfg)
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Scenario config file (JSON, default stdin)")
	return cmd
}

func runPipeline(ctx context.Context, cfg *api.ScenarioConfig) (*api.ComprehensiveResult, error) {
	opts := pipeline.Options{ResultTTL: 24 * time.Hour}
	if snapshotPath != "" {
		st := store.NewMemoryStore(snapshotPath)
		defer st.Close()
		opts.Store = st
	}
	return pipeline.New(opts).Run(ctx, cfg)
}

func loadConfig(path string) (*api.ScenarioConfig, error) {
	var data []byte
	var err error

	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var cfg api.ScenarioConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config JSON: %w", err)
	}
	return &cfg, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
