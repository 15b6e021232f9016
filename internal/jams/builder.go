package jams

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mirex-tools/jku2jams/internal/dataset"
	"github.com/mirex-tools/jku2jams/internal/errors"
)

// occurrenceFields is the fixed column count of an occurrence CSV row:
// onset, midi pitch, morphetic pitch, duration, staff.
const occurrenceFields = 5

// Metadata carries the fixed values stamped on a produced annotation.
type Metadata struct {
	Namespace string
	Version   string
	Corpus    string
	Curator   Curator
}

// BuildDocument reads every occurrence file of the piece's patterns and
// assembles one JAMS document. Patterns are numbered 1..n in list order,
// occurrences 1..m within each pattern, restarting at 1 per pattern.
// Observations keep CSV row order within occurrence order within pattern
// order. Any malformed row aborts the whole document.
func BuildDocument(piece dataset.Piece, patterns []dataset.Pattern, meta Metadata) (*Document, error) {
	if len(patterns) == 0 {
		return nil, errors.Newf("piece %s has no patterns", piece.ID()).
			Component("jams").
			Category(errors.CategoryValidation).
			Context("piece", piece.ID()).
			Build()
	}

	annotation := Annotation{
		Namespace: meta.Namespace,
		Metadata: AnnotationMetadata{
			Curator: meta.Curator,
			Version: meta.Version,
			Corpus:  meta.Corpus,
		},
		Data: []Observation{},
	}

	for pi, pattern := range patterns {
		patternID := pi + 1
		for oi, occFile := range pattern.Occurrences {
			occurrenceID := oi + 1
			observations, err := parseOccurrenceFile(occFile, patternID, occurrenceID)
			if err != nil {
				return nil, err
			}
			annotation.Data = append(annotation.Data, observations...)
		}
	}

	return &Document{
		FileMetadata: FileMetadata{
			Title:       piece.Name,
			JAMSVersion: Version,
		},
		Annotations: []Annotation{annotation},
	}, nil
}

// parseOccurrenceFile parses one occurrence CSV into observations tagged
// with the given pattern and occurrence ids. Every row is data, there is no
// header.
func parseOccurrenceFile(path string, patternID, occurrenceID int) ([]Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Component("jams").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var observations []Observation
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(err, path, row)
		}
		row++

		obs, err := parseRow(record)
		if err != nil {
			return nil, parseError(err, path, row)
		}
		obs.Value.PatternID = patternID
		obs.Value.OccurrenceID = occurrenceID
		observations = append(observations, obs)
	}
	return observations, nil
}

// parseRow converts one CSV record with fixed column positions into an
// observation: col 0 onset seconds, col 1 MIDI pitch, col 2 morphetic
// pitch, col 3 duration seconds, col 4 staff.
func parseRow(record []string) (Observation, error) {
	if len(record) < occurrenceFields {
		return Observation{}, fmt.Errorf("row has %d fields, expected %d", len(record), occurrenceFields)
	}

	onset, err := parseFloat(record[0])
	if err != nil {
		return Observation{}, fmt.Errorf("invalid onset %q: %w", record[0], err)
	}
	midiPitch, err := parseFloat(record[1])
	if err != nil {
		return Observation{}, fmt.Errorf("invalid midi pitch %q: %w", record[1], err)
	}
	morphPitch, err := parseFloat(record[2])
	if err != nil {
		return Observation{}, fmt.Errorf("invalid morphetic pitch %q: %w", record[2], err)
	}
	duration, err := parseFloat(record[3])
	if err != nil {
		return Observation{}, fmt.Errorf("invalid duration %q: %w", record[3], err)
	}
	staff, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil {
		return Observation{}, fmt.Errorf("invalid staff %q: %w", record[4], err)
	}

	return Observation{
		Time:     onset,
		Duration: duration,
		Value: PatternValue{
			MidiPitch:  midiPitch,
			MorphPitch: morphPitch,
			Staff:      staff,
		},
	}, nil
}

func parseFloat(field string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(field), 64)
}

func parseError(err error, path string, row int) error {
	return errors.New(err).
		Component("jams").
		Category(errors.CategoryFileParsing).
		Context("path", path).
		Context("row", row).
		Build()
}
