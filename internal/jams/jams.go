// Package jams models the subset of the JAMS annotation container used for
// pattern_jku annotations and writes documents to disk as JSON.
package jams

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/mirex-tools/jku2jams/internal/errors"
)

// Version is the JAMS schema version stamped on produced documents.
const Version = "0.3.4"

// Curator identifies who curated the annotation.
type Curator struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// AnnotationMetadata carries provenance for one annotation.
type AnnotationMetadata struct {
	Curator         Curator        `json:"curator"`
	Annotator       map[string]any `json:"annotator"`
	Version         string         `json:"version" validate:"required"`
	Corpus          string         `json:"corpus"`
	AnnotationTools string         `json:"annotation_tools"`
	AnnotationRules string         `json:"annotation_rules"`
	Validation      string         `json:"validation"`
	DataSource      string         `json:"data_source"`
}

// PatternValue is the value payload of one pattern_jku observation.
type PatternValue struct {
	MidiPitch    float64 `json:"midi_pitch"`
	MorphPitch   float64 `json:"morph_pitch"`
	Staff        int     `json:"staff"`
	PatternID    int     `json:"pattern_id" validate:"gte=1"`
	OccurrenceID int     `json:"occurrence_id" validate:"gte=1"`
}

// Observation is one note event belonging to one occurrence of a pattern.
type Observation struct {
	Time       float64      `json:"time"`
	Duration   float64      `json:"duration"`
	Value      PatternValue `json:"value"`
	Confidence *float64     `json:"confidence"`
}

// Annotation is one namespace worth of observations.
type Annotation struct {
	Namespace string             `json:"namespace" validate:"required"`
	Metadata  AnnotationMetadata `json:"annotation_metadata"`
	Data      []Observation      `json:"data" validate:"dive"`
	Sandbox   map[string]any     `json:"sandbox"`
	Time      float64            `json:"time"`
	Duration  *float64           `json:"duration"`
}

// FileMetadata describes the piece the document annotates.
type FileMetadata struct {
	Title       string         `json:"title"`
	Artist      string         `json:"artist"`
	Release     string         `json:"release"`
	Duration    *float64       `json:"duration"`
	Identifiers map[string]any `json:"identifiers"`
	JAMSVersion string         `json:"jams_version"`
}

// Document is one JAMS file: metadata plus its annotations.
type Document struct {
	FileMetadata FileMetadata   `json:"file_metadata"`
	Annotations  []Annotation   `json:"annotations"`
	Sandbox      map[string]any `json:"sandbox"`
}

var validate = validator.New()

// Validate checks the document for structural problems before it is written.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return errors.New(err).
			Component("jams").
			Category(errors.CategoryValidation).
			Build()
	}
	return nil
}

// Save validates the document and writes it as JSON to path, creating the
// output directory if absent. indent enables pretty-printing.
func (d *Document) Save(path string, indent bool) error {
	if err := d.Validate(); err != nil {
		return err
	}

	var data []byte
	var err error
	if indent {
		data, err = json.MarshalIndent(d, "", "  ")
	} else {
		data, err = json.Marshal(d)
	}
	if err != nil {
		return errors.New(err).
			Component("jams").
			Category(errors.CategoryValidation).
			Context("path", path).
			Build()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.New(err).
			Component("jams").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(err).
			Component("jams").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	return nil
}
