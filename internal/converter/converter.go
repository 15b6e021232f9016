// Package converter runs the ground truth to JAMS conversion pipeline:
// resolve pieces, aggregate their patterns, build and save one document per
// piece.
package converter

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mirex-tools/jku2jams/internal/conf"
	"github.com/mirex-tools/jku2jams/internal/dataset"
	"github.com/mirex-tools/jku2jams/internal/errors"
	"github.com/mirex-tools/jku2jams/internal/jams"
	"github.com/mirex-tools/jku2jams/internal/logging"
)

// Summary reports what one conversion run produced.
type Summary struct {
	Pieces       int
	Documents    int
	Observations int
	Elapsed      time.Duration
}

// Converter converts one dataset tree into per-piece JAMS documents.
type Converter struct {
	settings *conf.Settings
	log      *slog.Logger
	runID    string
}

// New creates a converter for the given settings.
func New(settings *conf.Settings) *Converter {
	runID := uuid.New().String()
	log := logging.ForService("converter").With("run_id", runID)
	return &Converter{
		settings: settings,
		log:      log,
		runID:    runID,
	}
}

// Run converts every piece under datasetDir into a JAMS document in outDir.
// Pieces are processed sequentially; all occurrence files of a piece are
// read before its document is written. Any error aborts the run.
func (c *Converter) Run(ctx context.Context, datasetDir, outDir string) (*Summary, error) {
	start := time.Now()

	pieces, err := dataset.Pieces(datasetDir)
	if err != nil {
		return nil, err
	}
	if len(pieces) == 0 {
		return nil, errors.Newf("no pieces found under %s", filepath.Join(datasetDir, dataset.GroundTruthDir)).
			Component("converter").
			Category(errors.CategoryNotFound).
			Context("dataset_dir", datasetDir).
			Build()
	}

	annTypes := dataset.AnnotationTypesFromConfig(c.settings.Dataset.AnnotationTypes)
	meta := jams.Metadata{
		Namespace: c.settings.Annotation.Namespace,
		Version:   c.settings.Annotation.Version,
		Corpus:    c.settings.Annotation.Corpus,
		Curator: jams.Curator{
			Name:  c.settings.Annotation.Curator.Name,
			Email: c.settings.Annotation.Curator.Email,
		},
	}

	summary := &Summary{Pieces: len(pieces)}
	for _, piece := range pieces {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.log.Info("parsing piece", "piece", piece.ID())

		patterns, err := dataset.CollectPatterns(piece, annTypes, c.settings.Dataset.PolyphonicAnnotators)
		if err != nil {
			return nil, err
		}

		doc, err := jams.BuildDocument(piece, patterns, meta)
		if err != nil {
			return nil, err
		}

		outFile := filepath.Join(outDir, piece.ID()+".jams")
		if err := doc.Save(outFile, c.settings.Output.Indent); err != nil {
			return nil, err
		}

		summary.Documents++
		summary.Observations += len(doc.Annotations[0].Data)
		if c.settings.Debug {
			c.log.Debug("piece written", "piece", piece.ID(),
				"patterns", len(patterns),
				"observations", len(doc.Annotations[0].Data),
				"file", outFile)
		}
	}

	summary.Elapsed = time.Since(start)
	c.log.Info("done",
		"pieces", summary.Pieces,
		"documents", summary.Documents,
		"observations", summary.Observations,
		"elapsed", summary.Elapsed.Round(time.Millisecond).String())
	return summary, nil
}
