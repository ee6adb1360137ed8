package converter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/Jay-Jay-D/luis-json-converter/internal/adapter/charset"
	"github.com/Jay-Jay-D/luis-json-converter/internal/config"
	"github.com/Jay-Jay-D/luis-json-converter/internal/domain"
	"github.com/Jay-Jay-D/luis-json-converter/internal/service/rename"
	"github.com/Jay-Jay-D/luis-json-converter/pkg/ctxutil"
)

// Converter turns a LUIS export into a CLU-compatible document.
type Converter struct {
	cfg      config.ConvertConfig
	repairer *charset.Repairer
	renamer  *rename.Service
	log      *slog.Logger

	last *Result
}

// Output is the in-memory result of Transform.
type Output struct {
	Document     *domain.Document
	Report       rename.Report
	DroppedBytes int
}

// Result describes one ConvertFile call.
type Result struct {
	Output
	OutputPath  string
	MappingPath string
	Written     bool
}

// New builds a Converter from cfg. Encoding repair is skipped when
// cfg.SkipEncodingRepair is set.
func New(cfg config.ConvertConfig, log *slog.Logger) (*Converter, error) {
	policy, err := rename.ParseCollisionPolicy(cfg.CollisionPolicy)
	if err != nil {
		return nil, fmt.Errorf("converter: %w", err)
	}

	var repairer *charset.Repairer
	if !cfg.SkipEncodingRepair {
		repairer, err = charset.NewRepairer(cfg.SourceCharset)
		if err != nil {
			return nil, fmt.Errorf("converter: %w", err)
		}
	}

	if cfg.Indent <= 0 {
		cfg.Indent = 2
	}
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = DefaultSuffix
	}
	if log == nil {
		log = slog.Default()
	}

	return &Converter{
		cfg:      cfg,
		repairer: repairer,
		renamer:  rename.NewService(log, cfg.SpecialCases, policy),
		log:      log,
	}, nil
}

// Transform repairs, parses and renames one document held in memory.
func (c *Converter) Transform(data []byte) (Output, error) {
	var dropped int
	if c.repairer != nil {
		data, dropped = c.repairer.Repair(data)
	}

	doc, err := domain.ParseDocument(data)
	if err != nil {
		return Output{}, fmt.Errorf("parse document: %w", err)
	}

	converted, report, err := c.renamer.Rename(doc)
	if err != nil {
		return Output{}, err
	}

	return Output{Document: converted, Report: report, DroppedBytes: dropped}, nil
}

// ConvertFile converts inputPath and writes the result to outputPath. The
// output is written atomically, so a failed run leaves no partial file.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	log := ctxutil.Logger(ctx, c.log)

	if err := ValidateInput(inputPath); err != nil {
		return Result{}, err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("read input: %w", err)
	}

	out, err := c.Transform(data)
	if err != nil {
		return Result{}, err
	}
	if out.DroppedBytes > 0 {
		log.Warn("encoding repair dropped characters",
			slog.String("charset", c.repairer.Charset()),
			slog.Int("dropped", out.DroppedBytes),
		)
	}
	log.Debug("renamed entities",
		slog.Int("entities", out.Report.EntitiesRenamed),
		slog.Int("mapping", len(out.Report.Mapping)),
		slog.Int("references", out.Report.ReferencesUpdated),
		slog.Int("conflicts", len(out.Report.Conflicts)),
	)

	rendered, err := renderDocument(out.Document, c.cfg.Indent)
	if err != nil {
		return Result{}, fmt.Errorf("render output: %w", err)
	}

	res := Result{Output: out, OutputPath: outputPath}

	var mappingReport []byte
	if c.cfg.WriteMapping {
		res.MappingPath = MappingPath(outputPath)
		mappingReport, err = renderMapping(out.Report, c.cfg.Indent)
		if err != nil {
			return Result{}, fmt.Errorf("render mapping: %w", err)
		}
	}

	if c.cfg.DryRun {
		log.Info("dry-run: output not written", slog.String("output", outputPath))
		return res, nil
	}

	if err := writeFileAtomic(outputPath, rendered); err != nil {
		return Result{}, fmt.Errorf("write output: %w", err)
	}
	if mappingReport != nil {
		if err := writeFileAtomic(res.MappingPath, mappingReport); err != nil {
			_ = os.Remove(outputPath)
			return Result{}, fmt.Errorf("write mapping: %w", err)
		}
	}
	res.Written = true

	return res, nil
}

// Convert runs ConvertFile and reports success as a boolean. It is the error
// boundary of a conversion: failures, including panics, are logged once and
// never escape.
func (c *Converter) Convert(ctx context.Context, inputPath, outputPath string) (ok bool) {
	if ctxutil.RunIDFromCtx(ctx) == "" {
		ctx, _ = ctxutil.WithNewRunID(ctx)
	}
	log := ctxutil.Logger(ctx, c.log)

	defer func() {
		if r := recover(); r != nil {
			log.Error("conversion failed",
				slog.String("input", inputPath),
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
			)
			ok = false
		}
	}()

	res, err := c.ConvertFile(ctx, inputPath, outputPath)
	if err != nil {
		log.Error("conversion failed",
			slog.String("input", inputPath),
			slog.String("error", err.Error()),
		)
		return false
	}

	c.last = &res
	log.Info("processed file saved",
		slog.String("output", res.OutputPath),
		slog.Int("renamed", res.Report.EntitiesRenamed),
		slog.Int("references", res.Report.ReferencesUpdated),
	)
	return true
}

// CLUModel returns the document produced by the last successful Convert.
func (c *Converter) CLUModel() *domain.Document {
	if c.last == nil {
		return nil
	}
	return c.last.Document
}

// Mapping returns the rename mapping of the last successful Convert.
func (c *Converter) Mapping() rename.Mapping {
	if c.last == nil {
		return nil
	}
	return c.last.Report.Mapping
}
