// Package dataset loads the labeled resume corpus used to train the
// statistical classifier at startup.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

const (
	labelColumn = "Category"
	textColumn  = "Resume"

	// minTextLen drops rows whose resume text is too short to be a
	// meaningful training sample.
	minTextLen = 50

	// MinExamples is the smallest corpus the trainer will accept.
	MinExamples = 10
)

// Example is a single labeled training row. The label has already been
// normalized to its canonical category name.
type Example struct {
	Text  string
	Label string
}

// labelAliases maps dataset label variants to canonical category names.
// Unknown labels pass through unchanged.
var labelAliases = map[string]string{
	"Data Science":         "Data Science",
	"data science":         "Data Science",
	"Data Scientist":       "Data Science",
	"Software Engineering": "Software Engineering",
	"software engineering": "Software Engineering",
	"Software Developer":   "Software Engineering",
	"DevOps":               "DevOps / Cloud",
	"DevOps / Cloud":       "DevOps / Cloud",
	"Cloud Engineer":       "DevOps / Cloud",
	"Product Management":   "Product Management",
	"Product Manager":      "Product Management",
	"UI/UX Design":         "UI/UX Design",
	"UI Designer":          "UI/UX Design",
	"UX Designer":          "UI/UX Design",
	"Data Engineering":     "Data Engineering",
	"Data Engineer":        "Data Engineering",
	"Cybersecurity":        "Cybersecurity",
	"Security Engineer":    "Cybersecurity",
}

// CanonicalLabel normalizes a raw dataset label through the alias table.
func CanonicalLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := labelAliases[trimmed]; ok {
		return canonical
	}
	return trimmed
}

// Locate probes candidate dataset locations in priority order and returns
// the first path that exists. An explicit override is probed first.
func Locate(override string) (string, bool) {
	candidates := []string{
		"data/resume-dataset.csv",
		"resume-dataset.csv",
		"../data/resume-dataset.csv",
	}
	if override != "" {
		candidates = append([]string{override}, candidates...)
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load parses the dataset CSV at path. Malformed rows are skipped rather
// than failing the load; rows with a missing label or text, or with text
// of 50 characters or fewer, are dropped. Fewer than MinExamples usable
// rows is an error.
func Load(path string) ([]Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads dataset rows from r. Split out from Load for testability.
func Parse(r io.Reader) ([]Example, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	labelIdx, textIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case labelColumn:
			labelIdx = i
		case textColumn:
			textIdx = i
		}
	}
	if labelIdx < 0 || textIdx < 0 {
		return nil, fmt.Errorf("dataset missing required columns %q and %q, found %v", labelColumn, textColumn, header)
	}

	var examples []Example
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: skip, don't abort.
			continue
		}
		if labelIdx >= len(record) || textIdx >= len(record) {
			continue
		}
		label := CanonicalLabel(record[labelIdx])
		text := record[textIdx]
		if label == "" || strings.TrimSpace(text) == "" {
			continue
		}
		if len(text) <= minTextLen {
			continue
		}
		examples = append(examples, Example{Text: text, Label: label})
	}

	if len(examples) < MinExamples {
		return nil, fmt.Errorf("dataset too small: %d usable rows, need at least %d", len(examples), MinExamples)
	}
	return examples, nil
}

// Labels returns the sorted set of distinct canonical labels present in
// the examples.
func Labels(examples []Example) []string {
	set := make(map[string]bool, len(examples))
	for _, ex := range examples {
		set[ex.Label] = true
	}
	labels := make([]string, 0, len(set))
	for label := range set {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
