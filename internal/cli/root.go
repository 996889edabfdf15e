// Package cli implements the terminal report commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/velocitymart/internal/app"
	"github.com/mamadbah2/velocitymart/internal/config"
	"github.com/mamadbah2/velocitymart/internal/domain/models"
	"github.com/mamadbah2/velocitymart/internal/export"
	"github.com/mamadbah2/velocitymart/internal/service/notify"
	"github.com/mamadbah2/velocitymart/internal/service/reporting"
	"github.com/mamadbah2/velocitymart/pkg/logger"
)

type options struct {
	envFile  string
	dataDir  string
	logLevel string
}

// NewRootCommand builds the velocitymart command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "velocitymart",
		Short:         "Slotting audit report for the VelocityMart dark store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "path to a .env file (default: ./.env when present)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "read the CSV inputs from this directory instead of the configured source")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL")

	root.AddCommand(newReportCommand(opts), newExportCommand(opts), newDigestCommand(opts))
	return root
}

func newReportCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Render the full dashboard in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(a *app.App, _ *zap.Logger) error {
				d, err := a.Reports.BuildDashboard(cmd.Context())
				if err != nil {
					return err
				}
				return RenderReport(cmd.OutOrStdout(), *d)
			})
		},
	}
}

func newExportCommand(opts *options) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the final slotting plan as CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			encode, defaultName, err := encoderFor(format)
			if err != nil {
				return err
			}
			if out == "" {
				out = defaultName
			}

			return withApp(cmd.Context(), opts, func(a *app.App, _ *zap.Logger) error {
				plan, err := a.Reports.SlottingPlan(cmd.Context())
				if err != nil {
					return err
				}
				body, err := encode(plan)
				if err != nil {
					return err
				}
				if dir := filepath.Dir(out); dir != "." {
					if err := os.MkdirAll(dir, 0o755); err != nil {
						return fmt.Errorf("create %s: %w", dir, err)
					}
				}
				if err := os.WriteFile(out, body, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(plan.Rows), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "output path (default: final_slotting_plan.<format>)")
	return cmd
}

func newDigestCommand(opts *options) *cobra.Command {
	var send bool

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the short text digest, optionally sending it over WhatsApp",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(a *app.App, log *zap.Logger) error {
				d, err := a.Reports.BuildDashboard(cmd.Context())
				if err != nil {
					return err
				}

				narrative := digestNarrative(cmd.Context(), a.Narrative, *d, log)

				text := reporting.FormatDigest(*d)
				if narrative != "" {
					text += "\n\n" + narrative
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)

				if !send {
					return nil
				}
				if err := a.Publisher.PublishDigest(cmd.Context(), *d, narrative); err != nil {
					if errors.Is(err, notify.ErrDisabled) {
						return errors.New("whatsapp delivery is not configured (WHATSAPP_TOKEN, WHATSAPP_PHONE_NUMBER_ID, WHATSAPP_RECIPIENT_ID)")
					}
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "digest sent")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&send, "send", false, "deliver the digest over WhatsApp")
	return cmd
}

// narrator is the part of the narrative service the digest command uses.
type narrator interface {
	Enabled() bool
	Generate(ctx context.Context, d models.Dashboard) (string, error)
}

// digestNarrative returns the board narrative, or "" when it is disabled or
// fails. The digest is printed either way.
func digestNarrative(ctx context.Context, n narrator, d models.Dashboard, log *zap.Logger) string {
	if !n.Enabled() {
		return ""
	}
	text, err := n.Generate(ctx, d)
	if err != nil {
		log.Warn("narrative unavailable", zap.Error(err))
		return ""
	}
	return text
}

func encoderFor(format string) (func(models.Table) ([]byte, error), string, error) {
	switch format {
	case "csv":
		return export.CSV, export.CSVFileName, nil
	case "xlsx":
		return export.XLSX, export.XLSXFileName, nil
	default:
		return nil, "", fmt.Errorf("unsupported format %q (want csv or xlsx)", format)
	}
}

func withApp(ctx context.Context, opts *options, run func(a *app.App, log *zap.Logger) error) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	if opts.dataDir != "" {
		cfg.Data.Source = config.SourceCSV
		cfg.Data.Dir = opts.dataDir
	}
	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}

	log, err := logger.NewConsole(level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	a, err := app.New(ctx, cfg, nil, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			log.Warn("failed closing data source", zap.Error(err))
		}
	}()

	return run(a, log)
}
