package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/rsahil/equityscope/internal/config"
	"github.com/rsahil/equityscope/internal/display"
)

// NewRootCmd creates the root command.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "equityscope",
		Short: "EquityScope - company research and investment analysis",
		Long: `EquityScope turns a company name into an investment report: it resolves
the primary ticker, gathers fundamentals, price history, news, and company
details, and synthesizes a recommendation with a SWOT breakdown.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveMode(cfg)
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(cfg))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")

	return rootCmd
}

// newAnalyzeCmd creates the analyze command.
func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [COMPANY]",
		Short: "Run a full analysis for a company name",
		Long: `Run the full analysis chain for a given company name.
Example: equityscope analyze "Reliance Industries"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Unquoted multi-word names arrive as separate args.
			companyName := ""
			for i, arg := range args {
				if i > 0 {
					companyName += " "
				}
				companyName += arg
			}

			return runAnalysis(context.Background(), cfg, companyName)
		},
	}
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("EquityScope v1.0.0")
			fmt.Println("Company research and investment analysis")
		},
	}
}

// newConfigCmd creates the config command.
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Secrets are excluded from the JSON encoding.
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			display.Info("Configuration is valid.")
			if !cfg.HasLongport() {
				display.Info("Longport credentials not set; HK/CN quotes fall back to Yahoo.")
			}
			return nil
		},
	})

	return configCmd
}

// runInteractiveMode loops company prompts until the user declines.
func runInteractiveMode(cfg *config.Config) error {
	display.Banner()

	if err := cfg.Validate(); err != nil {
		return err
	}

	for {
		companyName, err := PromptForCompany()
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}

		if err := runAnalysis(context.Background(), cfg, companyName); err != nil {
			display.Error(err)
		}

		again, err := PromptForAnother()
		if err != nil || !again {
			return nil
		}
	}
}
