// equity-unlock compares the monthly cost of keeping a home and its debts
// with selling it, paying the debts off and buying another home.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/iwvelando/equity-unlock/internal/advisor"
	"github.com/iwvelando/equity-unlock/internal/config"
	"github.com/iwvelando/equity-unlock/internal/logging"
	"github.com/iwvelando/equity-unlock/internal/scenario"
	"github.com/iwvelando/equity-unlock/internal/server"
	"github.com/iwvelando/equity-unlock/pkg/constants"
	"github.com/iwvelando/equity-unlock/pkg/output"
	"github.com/iwvelando/equity-unlock/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "equity-unlock",
		Short:         "Compare keeping your home with selling, paying off debt and buying another",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(newEvaluateCmd())
	root.AddCommand(newPresetCmd())
	root.AddCommand(newPresetsCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// --- Evaluate Command ---

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the scenario described by the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configLocation, _ := cmd.Flags().GetString("config")
			conf, err := config.LoadConfiguration(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
			}
			return runReport(cmd, conf, "")
		},
	}
	addReportFlags(cmd)
	return cmd
}

// --- Preset Command ---

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset [tier]",
		Short: "Evaluate one of the built-in example scenarios",
		Long:  "Evaluate a built-in example scenario. Tiers: conservative, moderate, aggressive.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := scenario.ParseTier(args[0])
			if err != nil {
				return err
			}
			in, err := scenario.Preset(tier)
			if err != nil {
				return err
			}

			conf, err := loadOptionalConfiguration(cmd)
			if err != nil {
				return err
			}
			conf.Current = in.Current
			conf.Liabilities = in.Liabilities
			conf.NewHome = in.NewHome
			return runReport(cmd, conf, strings.ToLower(tier.String()))
		},
	}
	addReportFlags(cmd)
	return cmd
}

// --- Presets Command ---

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Evaluate every built-in example scenario and summarize them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadOptionalConfiguration(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, conf.Logging)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			withInsight, _ := cmd.Flags().GetBool("insight")
			var adv *advisor.Advisor
			if withInsight {
				var closeAdvisor func() error
				adv, closeAdvisor = advisor.FromConfig(cmd.Context(), logger, conf.Advisor, conf.Cache)
				defer func() {
					_ = closeAdvisor()
				}()
			}

			reports, insights, err := evaluatePresets(cmd.Context(), adv)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := output.SummaryFormat(out, reports); err != nil {
				return err
			}
			for i, insight := range insights {
				if insight == "" {
					continue
				}
				if _, err := fmt.Fprintf(out, "\n--- Insight for scenario %s ---\n%s\n", reports[i].Name, insight); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("insight", false, "request commentary on each scenario from the advisor")
	return cmd
}

// evaluatePresets evaluates every tier concurrently. Insights are only
// requested when adv is non-nil.
func evaluatePresets(ctx context.Context, adv *advisor.Advisor) ([]output.Report, []string, error) {
	tiers := scenario.Tiers()
	reports := make([]output.Report, len(tiers))
	insights := make([]string, len(tiers))

	g, gctx := errgroup.WithContext(ctx)
	for i, tier := range tiers {
		i, tier := i, tier
		g.Go(func() error {
			in, err := scenario.Preset(tier)
			if err != nil {
				return fmt.Errorf("%s: %w", tier, err)
			}
			result := in.Evaluate()

			var insight string
			if adv != nil {
				insight = adv.Insight(gctx, in, result)
			}

			reports[i] = output.Report{
				Name:     strings.ToLower(tier.String()),
				Inputs:   in,
				Result:   result,
				Warnings: config.InputWarnings(in),
			}
			insights[i] = insight
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return reports, insights, nil
}

// --- Serve Command ---

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scenario API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverConfigLocation, _ := cmd.Flags().GetString("server-config")
			cfg, err := server.LoadConfig(serverConfigLocation)
			if err != nil {
				return err
			}
			if address, _ := cmd.Flags().GetString("address"); address != "" {
				cfg.Address = address
			}
			if size, _ := cmd.Flags().GetString("max-upload-size"); size != "" {
				bytes, err := server.ParseSize(size)
				if err != nil {
					return err
				}
				cfg.SetUploadSizeBytes(bytes)
			}

			logger, err := newLogger(cmd, cfg.Logging)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			adv, closeAdvisor := advisor.FromConfig(cmd.Context(), logger, cfg.Advisor, cfg.Cache)
			defer func() {
				_ = closeAdvisor()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			handler := server.NewHandler(logger, cfg.UploadSizeBytes(), version, adv)
			return server.Run(ctx, logger, cfg, handler)
		},
	}
	cmd.Flags().String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().String("address", "", "listen address override, e.g. :9090")
	cmd.Flags().String("max-upload-size", "", "request body limit override, e.g. 512K")
	return cmd
}

// --- Version Command ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "equity-unlock %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit:  %s\n", commit)
		},
	}
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().String("output-format", "", "type of output override: pretty, csv, json, yaml")
	cmd.Flags().Bool("insight", false, "request commentary on the scenario from the advisor")
}

// loadOptionalConfiguration loads the --config file when it exists and falls
// back to defaults plus environment overrides otherwise.
func loadOptionalConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	configLocation, _ := cmd.Flags().GetString("config")
	if _, err := os.Stat(configLocation); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.LoadConfigurationFromReader(strings.NewReader(""))
		}
		return nil, fmt.Errorf("failed to stat configuration at %s: %w", configLocation, err)
	}
	conf, err := config.LoadConfiguration(configLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
	}
	return conf, nil
}

func newLogger(cmd *cobra.Command, loggingConfig config.LoggingConfig) (*zap.Logger, error) {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logger, err := logging.New(loggingConfig, logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// runReport validates conf, evaluates it and writes the report in the
// selected format, optionally followed by the advisor's commentary.
func runReport(cmd *cobra.Command, conf *config.Configuration, name string) error {
	logger, err := newLogger(cmd, conf.Logging)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if override, _ := cmd.Flags().GetString("output-format"); override != "" {
		outputFormat = override
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.runReport"),
		)
	}

	in := conf.Inputs()
	result := in.Evaluate()
	logger.Debug("scenario evaluated",
		zap.String("op", "main.runReport"),
		zap.Float64("monthlySavings", result.MonthlySavings),
	)

	out := cmd.OutOrStdout()
	report := output.Report{Name: name, Inputs: in, Result: result, Warnings: warnings}
	if err := output.Write(out, outputFormat, report); err != nil {
		return err
	}

	if withInsight, _ := cmd.Flags().GetBool("insight"); withInsight {
		adv, closeAdvisor := advisor.FromConfig(cmd.Context(), logger, conf.Advisor, conf.Cache)
		defer func() {
			_ = closeAdvisor()
		}()
		return writeInsight(out, adv.Insight(cmd.Context(), in, result))
	}
	return nil
}

func writeInsight(w io.Writer, insight string) error {
	_, err := fmt.Fprintf(w, "\n--- Insight ---\n%s\n", insight)
	return err
}
