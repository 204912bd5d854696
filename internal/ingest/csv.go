package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pmatveev/stemma/internal/model"
)

// Loader reads the flat survey exports into memory. Record ids are assigned
// sequentially (1-based) in file order at load time and stay stable for the
// lifetime of the run.
type Loader struct {
	textColumn string
	keyColumn  string
	stripHTML  bool
}

// NewLoader creates a loader. textColumn names the response column in the
// records file; keyColumn names the respondent-id column in the demographics
// file.
func NewLoader(textColumn, keyColumn string, stripHTML bool) *Loader {
	return &Loader{
		textColumn: textColumn,
		keyColumn:  keyColumn,
		stripHTML:  stripHTML,
	}
}

// LoadRecords reads the records CSV. The first row is a header; the response
// text is taken from the configured text column. A row with a missing or
// empty response still produces a record (with empty text), so ids stay
// aligned with the source rows.
func (l *Loader) LoadRecords(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("records file %s is empty", path)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	textIdx := columnIndex(header, l.textColumn)
	if textIdx < 0 {
		return nil, fmt.Errorf("records file %s has no column %q", path, l.textColumn)
	}

	var records []model.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}

		text := ""
		if textIdx < len(row) {
			text = row[textIdx]
		}
		if l.stripHTML {
			text = StripHTML(text)
		}

		records = append(records, model.Record{
			ID:      len(records) + 1,
			RawText: text,
		})
	}

	return records, nil
}

// LoadDemographics reads the demographics CSV into a respondent-id keyed
// mapping of attribute name to value. Column names become attribute names;
// values are lower-cased and trimmed so they compare cleanly against the
// configured allow-lists. Rows whose key does not parse as an integer are
// skipped.
func (l *Loader) LoadDemographics(path string) (map[int]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open demographics: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("demographics file %s is empty", path)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	keyIdx := columnIndex(header, l.keyColumn)
	if keyIdx < 0 {
		return nil, fmt.Errorf("demographics file %s has no column %q", path, l.keyColumn)
	}

	demo := make(map[int]map[string]string)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if keyIdx >= len(row) {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(row[keyIdx]))
		if err != nil {
			continue
		}

		attrs := make(map[string]string, len(header)-1)
		for i, name := range header {
			if i == keyIdx || i >= len(row) {
				continue
			}
			value := strings.ToLower(strings.TrimSpace(row[i]))
			if value != "" {
				attrs[normalizeHeader(name)] = value
			}
		}
		demo[id] = attrs
	}

	return demo, nil
}

// JoinAttributes joins demographic attributes onto records by record id.
// Records without a demographics row keep nil attributes; the join never
// relies on row order.
func JoinAttributes(records []model.Record, demo map[int]map[string]string) []model.Record {
	joined := make([]model.Record, len(records))
	for i, rec := range records {
		rec.Attributes = demo[rec.ID]
		joined[i] = rec
	}
	return joined
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if normalizeHeader(h) == normalizeHeader(name) {
			return i
		}
	}
	return -1
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
