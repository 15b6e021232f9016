package converter

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirex-tools/jku2jams/internal/conf"
	"github.com/mirex-tools/jku2jams/internal/errors"
)

func testSettings() *conf.Settings {
	settings := &conf.Settings{}
	settings.Dataset.AnnotationTypes = []string{"monophonic", "polyphonic"}
	settings.Dataset.PolyphonicAnnotators = []string{
		"barlowAndMorgensternRevised",
		"bruhn",
		"schoenberg",
		"sectionalRepetitions",
		"tomCollins",
	}
	settings.Annotation.Namespace = "pattern_jku"
	settings.Annotation.Version = "August2013"
	settings.Annotation.Corpus = "JKU Development Dataset"
	settings.Annotation.Curator.Name = "Tom Collins"
	settings.Annotation.Curator.Email = "tom.collins@dmu.ac.uk"
	settings.Output.Indent = true
	return settings
}

func writeOccurrence(t *testing.T, root, piece, annType, annotator, pattern, name, content string) {
	t.Helper()
	csvDir := filepath.Join(root, "groundTruth", piece, annType, "repeatedPatterns",
		annotator, pattern, "occurrences", "csv")
	require.NoError(t, os.MkdirAll(csvDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(csvDir, name), []byte(content), 0o644))
}

func readDocument(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func observationsOf(t *testing.T, doc map[string]any) []any {
	t.Helper()
	annotations := doc["annotations"].([]any)
	require.Len(t, annotations, 1)
	return annotations[0].(map[string]any)["data"].([]any)
}

func TestRun_SinglePieceTwoOccurrences(t *testing.T) {
	root := t.TempDir()
	writeOccurrence(t, root, "bach_invention1", "monophonic", "annotatorX", "A", "occ1.csv", "0,60,55,1,1\n")
	writeOccurrence(t, root, "bach_invention1", "monophonic", "annotatorX", "A", "occ2.csv", "4,60,55,1,1\n")
	outDir := t.TempDir()

	summary, err := New(testSettings()).Run(context.Background(), root, outDir)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Pieces)
	assert.Equal(t, 1, summary.Documents)
	assert.Equal(t, 2, summary.Observations)

	outFile := filepath.Join(outDir, filepath.Base(root)+"-bach_invention1.jams")
	doc := readDocument(t, outFile)

	observations := observationsOf(t, doc)
	require.Len(t, observations, 2)

	occurrenceIDs := map[float64]bool{}
	for _, o := range observations {
		value := o.(map[string]any)["value"].(map[string]any)
		assert.EqualValues(t, 1, value["pattern_id"])
		occurrenceIDs[value["occurrence_id"].(float64)] = true
	}
	assert.Equal(t, map[float64]bool{1: true, 2: true}, occurrenceIDs)
}

func TestRun_PolyphonicAllowListExcludesUnknownAnnotator(t *testing.T) {
	root := t.TempDir()
	writeOccurrence(t, root, "gibbons_silver_swan", "polyphonic", "tomCollins", "A", "occ1.csv", "0,64,57,1,1\n")
	// valid CSV content under an annotator off the allow-list contributes nothing
	writeOccurrence(t, root, "gibbons_silver_swan", "polyphonic", "unknownGuy", "A", "occ1.csv", "0,65,58,1,1\n")
	outDir := t.TempDir()

	summary, err := New(testSettings()).Run(context.Background(), root, outDir)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Observations)

	outFile := filepath.Join(outDir, filepath.Base(root)+"-gibbons_silver_swan.jams")
	observations := observationsOf(t, readDocument(t, outFile))
	require.Len(t, observations, 1)
	value := observations[0].(map[string]any)["value"].(map[string]any)
	assert.InDelta(t, 64.0, value["midi_pitch"].(float64), 1e-9)
}

func TestRun_OneDocumentPerPiece(t *testing.T) {
	root := t.TempDir()
	writeOccurrence(t, root, "bach_invention1", "monophonic", "annotatorX", "A", "occ1.csv", "0,60,55,1,1\n")
	writeOccurrence(t, root, "chopin_op9_n2", "monophonic", "annotatorY", "A", "occ1.csv", "0,62,56,1,1\n")
	outDir := t.TempDir()

	summary, err := New(testSettings()).Run(context.Background(), root, outDir)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Documents)

	collection := filepath.Base(root)
	assert.FileExists(t, filepath.Join(outDir, collection+"-bach_invention1.jams"))
	assert.FileExists(t, filepath.Join(outDir, collection+"-chopin_op9_n2.jams"))
}

func TestRun_MalformedRowAbortsPiece(t *testing.T) {
	root := t.TempDir()
	writeOccurrence(t, root, "bach_invention1", "monophonic", "annotatorX", "A", "occ1.csv", "0,60,55\n")
	outDir := t.TempDir()

	_, err := New(testSettings()).Run(context.Background(), root, outDir)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileParsing))

	// no partial output
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_PieceWithoutPatternsFails(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "groundTruth", "empty_piece"), 0o755))

	_, err := New(testSettings()).Run(context.Background(), root, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestRun_EmptyDataset(t *testing.T) {
	_, err := New(testSettings()).Run(context.Background(), t.TempDir(), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestRun_ContextCancelled(t *testing.T) {
	root := t.TempDir()
	writeOccurrence(t, root, "bach_invention1", "monophonic", "annotatorX", "A", "occ1.csv", "0,60,55,1,1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testSettings()).Run(ctx, root, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}
