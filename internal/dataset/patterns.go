package dataset

import (
	"path/filepath"
	"slices"
)

// repeatedPatternsDir is the directory under each annotation type that
// holds the annotator directories.
const repeatedPatternsDir = "repeatedPatterns"

// Annotators returns the annotator directories of the given piece and
// annotation type, sorted by name. For polyphonic annotations only
// annotators on the allow-list are returned; monophonic annotators are
// never filtered. Filtering builds a new slice rather than mutating the
// listing being iterated.
func Annotators(piece Piece, annType AnnotationType, allowed []string) ([]string, error) {
	dir := filepath.Join(piece.Dir, string(annType), repeatedPatternsDir)
	names, err := listSubdirs(dir)
	if err != nil {
		return nil, err
	}

	if annType != Polyphonic {
		dirs := make([]string, 0, len(names))
		for _, name := range names {
			dirs = append(dirs, filepath.Join(dir, name))
		}
		return dirs, nil
	}

	var dirs []string
	for _, name := range names {
		if slices.Contains(allowed, name) {
			dirs = append(dirs, filepath.Join(dir, name))
		}
	}
	return dirs, nil
}

// Patterns returns the patterns of one annotator directory: each immediate
// subdirectory is a candidate pattern (plain files are ignored), its
// occurrences the CSV files under <pattern>/occurrences/csv, sorted.
// Patterns without occurrence files are kept with an empty occurrence list.
func Patterns(annotatorDir string) ([]Pattern, error) {
	names, err := listSubdirs(annotatorDir)
	if err != nil {
		return nil, err
	}

	var patterns []Pattern
	for _, name := range names {
		patternDir := filepath.Join(annotatorDir, name)
		occurrences, err := filepath.Glob(filepath.Join(patternDir, "occurrences", "csv", "*.csv"))
		if err != nil {
			return nil, err
		}
		slices.Sort(occurrences)
		patterns = append(patterns, Pattern{
			Dir:         patternDir,
			Occurrences: occurrences,
		})
	}
	return patterns, nil
}

// CollectPatterns aggregates the patterns of one piece across all
// annotation types and their valid annotators into one flat list, in
// {type, annotator, pattern} order. Patterns from different annotators are
// concatenated, never merged or deduplicated.
func CollectPatterns(piece Piece, annTypes []AnnotationType, polyphonicAllowed []string) ([]Pattern, error) {
	var all []Pattern
	for _, annType := range annTypes {
		annotators, err := Annotators(piece, annType, polyphonicAllowed)
		if err != nil {
			return nil, err
		}
		for _, annotator := range annotators {
			patterns, err := Patterns(annotator)
			if err != nil {
				return nil, err
			}
			all = append(all, patterns...)
		}
	}
	return all, nil
}

// AnnotationTypesFromConfig converts configured type names into
// AnnotationType values, preserving order.
func AnnotationTypesFromConfig(names []string) []AnnotationType {
	types := make([]AnnotationType, 0, len(names))
	for _, name := range names {
		types = append(types, AnnotationType(name))
	}
	return types
}
