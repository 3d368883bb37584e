package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dgallion1/docrst/internal/parser"
	"github.com/dgallion1/docrst/internal/render"
)

// Worker converts documents. A worker owns one renderer and must not be
// shared between goroutines.
type Worker struct {
	parserOpts parser.Options
	renderer   *render.Renderer
	log        *slog.Logger
	stats      *ConversionStats
}

func NewWorker(parserOpts parser.Options, renderOpts render.Options, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Worker{
		parserOpts: parserOpts,
		renderer:   render.New(renderOpts, log),
		log:        log,
	}
}

// Convert parses data according to the filename extension and renders it.
// A non-empty title wraps the document in a top-level section.
func (w *Worker) Convert(filename string, data []byte, title string) (out string, err error) {
	defer func(start time.Time) { w.stats.Record(time.Since(start), err != nil) }(time.Now())

	p, err := parser.ForFile(filename, w.parserOpts)
	if err != nil {
		return "", err
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}
	if title != "" {
		doc = parser.WithTitle(doc, title)
	}
	out, err = w.renderer.Render(doc)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return out, nil
}

// Process runs the conversion for a queued job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()
	failed := true
	defer func() { w.stats.Record(time.Since(start), failed) }()

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "cancelled")
		return
	}

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.parserOpts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title != "" {
		doc = parser.WithTitle(doc, job.Title)
	}

	// Phase 2: Render
	job.SetStatus(StatusRendering, "rendering")
	out, err := w.renderer.Render(doc)
	if err != nil {
		log.Error("render failed", "error", err)
		job.AddError(fmt.Sprintf("render: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	job.Complete(out)
	failed = false
	log.Info("conversion complete", "input_bytes", job.Progress.InputBytes, "output_bytes", len(out))
}
