// Command luis2clu converts a LUIS application export into a CLU-compatible
// JSON file. Child entity names lose their ancestor prefixes, utterance
// references follow the renames, and mojibake left by a windows-1252 round
// trip is repaired.
//
// Usage:
//
//	luis2clu <input_file> [-o|--output_dir DIR] [--config PATH] [--dry-run] [--no-repair] [--mapping]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Jay-Jay-D/luis-json-converter/internal/app"
	"github.com/Jay-Jay-D/luis-json-converter/internal/app/converter"
	"github.com/Jay-Jay-D/luis-json-converter/internal/config"
	"github.com/Jay-Jay-D/luis-json-converter/pkg/ctxutil"
)

// errReported marks failures that were already logged.
var errReported = errors.New("failed")

type options struct {
	outputDir  string
	configPath string
	dryRun     bool
	noRepair   bool
	mapping    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, app.Name+":", err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           app.Name + " <input_file>",
		Short:         "Convert a LUIS JSON export into a CLU-compatible model",
		Args:          cobra.ExactArgs(1),
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, cmd.ErrOrStderr(), opts, args[0])
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	f := cmd.Flags()
	f.StringVarP(&opts.outputDir, "output_dir", "o", "output", "directory for the converted file")
	f.StringVar(&opts.configPath, "config", "", "path to config YAML (default $CONFIG_PATH or "+config.DefaultPath+")")
	f.BoolVar(&opts.dryRun, "dry-run", false, "convert without writing any file")
	f.BoolVar(&opts.noRepair, "no-repair", false, "skip windows-1252 mojibake repair")
	f.BoolVar(&opts.mapping, "mapping", false, "also write the rename mapping report")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, stderr io.Writer, opts options, input string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output_dir") {
		cfg.Convert.OutputDir = opts.outputDir
	}
	if flags.Changed("dry-run") {
		cfg.Convert.DryRun = opts.dryRun
	}
	if flags.Changed("no-repair") {
		cfg.Convert.SkipEncodingRepair = opts.noRepair
	}
	if flags.Changed("mapping") {
		cfg.Convert.WriteMapping = opts.mapping
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}

	logger := app.NewLogger(stderr, cfg.Log)
	ctx, _ = ctxutil.WithNewRunID(ctx)
	log := ctxutil.Logger(ctx, logger)

	log.Debug("starting",
		slog.String("version", app.BuildVersion()),
		slog.String("input", input),
	)

	if err := converter.ValidateInput(input); err != nil {
		log.Error("invalid input", slog.String("error", err.Error()))
		return errReported
	}
	if !cfg.Convert.DryRun {
		if err := converter.EnsureOutputDir(cfg.Convert.OutputDir); err != nil {
			log.Error("prepare output", slog.String("error", err.Error()))
			return errReported
		}
	}

	conv, err := converter.New(cfg.Convert, logger)
	if err != nil {
		return err
	}

	output := converter.OutputPath(input, cfg.Convert.OutputDir, cfg.Convert.OutputSuffix)
	if !conv.Convert(ctx, input, output) {
		return errReported
	}
	return nil
}
