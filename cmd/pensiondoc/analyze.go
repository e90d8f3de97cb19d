package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pensiondoc/internal/analyzer"
	"pensiondoc/internal/domain"
	"pensiondoc/internal/export"
	"pensiondoc/internal/handler"
	"pensiondoc/internal/port"
	"pensiondoc/internal/service"
	"pensiondoc/internal/validator"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		modality    string
		format      string
		out         string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "analyze [flags] FILE.pdf...",
		Short: "Analyze one or more pension calculation PDFs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := domain.ParseModality(modality)
			if err != nil {
				return err
			}
			switch format {
			case formatJSON, formatCSV, formatXLSX:
			default:
				return fmt.Errorf("unsupported format %q (json, csv, xlsx)", format)
			}
			if concurrency < 1 {
				concurrency = 1
			}

			env, err := setup()
			if err != nil {
				return err
			}
			docAnalyzer := analyzer.New(env.backend, analyzer.WithCleanupTimeout(env.cfg.Analyzer.CleanupTimeout()))
			checks := validator.NewEngine(validator.NewDefaultRegistry())
			svc := service.NewRetirementService(docAnalyzer, checks)

			ctx := env.logger.WithContext(cmd.Context())
			records := analyzeFiles(ctx, svc, checks, m, args, concurrency, env.cfg.Upload.MaxBytes())

			w := cmd.OutOrStdout()
			if out == "" && format == formatXLSX {
				out = export.BuildFilename(string(m), formatXLSX, time.Now())
			}
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := writeRecords(w, format, records); err != nil {
				return err
			}
			if out != "" {
				env.logger.Info().Str("path", out).Int("documents", len(records)).Msg("results written")
			}

			if failed := countFailed(records); failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(records))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modality, "modality", "m", "anticipada", "retirement modality: anticipada or parcial")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json, csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout; xlsx defaults to a dated file name)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 2, "documents analyzed in parallel")
	return cmd
}

// analyzeFiles runs every path through svc. Per-document failures are recorded, not returned.
func analyzeFiles(
	ctx context.Context,
	svc service.RetirementService,
	checks *validator.Engine,
	modality domain.RetirementModality,
	paths []string,
	concurrency int,
	maxBytes int64,
) []export.Record {
	records := make([]export.Record, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			records[i] = analyzeFile(gctx, svc, checks, modality, path, maxBytes)
			return nil
		})
	}
	_ = g.Wait()
	return records
}

func analyzeFile(
	ctx context.Context,
	svc service.RetirementService,
	checks *validator.Engine,
	modality domain.RetirementModality,
	path string,
	maxBytes int64,
) export.Record {
	rec := export.Record{Source: filepath.Base(path)}

	f, err := os.Open(path)
	if err != nil {
		rec.Err = err
		return rec
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		rec.Err = err
		return rec
	}
	if info.Size() > maxBytes {
		rec.Err = domain.ErrFileTooLarge
		return rec
	}

	doc := port.Document{FileName: rec.Source, Content: f, Size: info.Size()}
	switch modality {
	case domain.ModalityPartial:
		rec.Summary, rec.Err = svc.AnalyzePartialRetirement(ctx, doc)
	default:
		rec.Summary, rec.Err = svc.AnalyzeAnticipatedRetirement(ctx, doc)
	}
	if rec.Summary != nil && checks != nil {
		rec.Findings = checks.Check(rec.Summary)
	}
	return rec
}

// jsonResult is one line of the json output format.
type jsonResult struct {
	Document string              `json:"documento"`
	Result   interface{}         `json:"resultado,omitempty"`
	Findings []validator.Finding `json:"hallazgos,omitempty"`
	Error    string              `json:"error,omitempty"`
}

func writeRecords(w io.Writer, format string, records []export.Record) error {
	switch format {
	case formatCSV:
		return export.WriteCSV(w, records)
	case formatXLSX:
		return export.WriteXLSX(w, records)
	}

	results := make([]jsonResult, 0, len(records))
	for i := range records {
		r := &records[i]
		res := jsonResult{Document: r.Source, Findings: r.Findings}
		switch {
		case r.Err != nil:
			res.Error = r.Err.Error()
		case r.Summary.Modality == domain.ModalityPartial:
			res.Result = handler.NewPartialRetirementResponse(r.Summary)
		default:
			res.Result = handler.NewAnticipatedRetirementResponse(r.Summary)
		}
		results = append(results, res)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func countFailed(records []export.Record) int {
	n := 0
	for i := range records {
		if records[i].Err != nil {
			n++
		}
	}
	return n
}
