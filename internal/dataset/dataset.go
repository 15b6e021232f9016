// Package dataset discovers pieces, annotators, patterns and occurrence
// files in a JKU Patterns Development Dataset ground truth tree.
//
// The expected layout is:
//
//	<root>/groundTruth/<piece>/<monophonic|polyphonic>/repeatedPatterns/<annotator>/<pattern>/occurrences/csv/*.csv
package dataset

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/mirex-tools/jku2jams/internal/errors"
)

// AnnotationType distinguishes monophonic from polyphonic ground truth.
type AnnotationType string

const (
	Monophonic AnnotationType = "monophonic"
	Polyphonic AnnotationType = "polyphonic"
)

// GroundTruthDir is the directory under the dataset root that holds the
// per-piece ground truth.
const GroundTruthDir = "groundTruth"

// Piece is one musical work in the dataset. Collection is the dataset
// collection the piece belongs to (the base name of the dataset root) and
// Name the piece directory name under groundTruth. Together they identify
// the piece and its output document.
type Piece struct {
	Collection string
	Name       string
	Dir        string // absolute or root-relative path to the piece directory
}

// ID returns the dataset-relative identifier of the piece, used as the
// output document name.
func (p Piece) ID() string {
	return p.Collection + "-" + p.Name
}

// Pattern is one repeated musical figure as annotated by one annotator. Its
// occurrences are the CSV files describing each concrete instance of the
// figure, in deterministic (sorted) order.
type Pattern struct {
	Dir         string
	Occurrences []string
}

// Pieces enumerates the pieces of the dataset rooted at root, sorted by
// name. A missing groundTruth directory yields an empty result, consistent
// with treating absent directories as "no pieces found".
func Pieces(root string) ([]Piece, error) {
	gtDir := filepath.Join(root, GroundTruthDir)
	entries, err := os.ReadDir(gtDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.New(err).
			Component("dataset").
			Category(errors.CategoryFileIO).
			Context("path", gtDir).
			Build()
	}

	collection := filepath.Base(absOrClean(root))

	var pieces []Piece
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pieces = append(pieces, Piece{
			Collection: collection,
			Name:       entry.Name(),
			Dir:        filepath.Join(gtDir, entry.Name()),
		})
	}
	slices.SortFunc(pieces, func(a, b Piece) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return pieces, nil
}

func absOrClean(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// listSubdirs returns the sorted names of the immediate subdirectories of
// dir. A missing dir yields an empty result.
func listSubdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.New(err).
			Component("dataset").
			Category(errors.CategoryFileIO).
			Context("path", dir).
			Build()
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}
