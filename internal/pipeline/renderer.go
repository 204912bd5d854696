package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pmatveev/stemma/internal/model"
)

// Renderer writes pipeline outputs as flat files for the reporting
// collaborator: the cleaned corpus, one CSV per frequency table, and a JSON
// report.
type Renderer struct {
	dir string
}

// NewRenderer creates a renderer writing into dir.
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// RenderAll writes every artifact for the result and returns the paths
// written.
func (r *Renderer) RenderAll(p *Pipeline, result *Result) ([]string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var written []string
	write := func(name string, fn func(path string) error) error {
		path := filepath.Join(r.dir, name)
		if err := fn(path); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	if err := write("cleaned.csv", func(path string) error {
		return r.renderCleaned(result.Cleaned, path)
	}); err != nil {
		return written, err
	}

	if err := write("unigrams.csv", func(path string) error {
		return r.renderTable(result.Unigrams, path)
	}); err != nil {
		return written, err
	}

	if err := write("phrases.csv", func(path string) error {
		return r.renderTable(result.Phrases, path)
	}); err != nil {
		return written, err
	}

	for attr, table := range result.Grouped {
		t := table
		if err := write("unigrams_by_"+attr+".csv", func(path string) error {
			return r.renderTable(t, path)
		}); err != nil {
			return written, err
		}
	}

	if err := write("report.json", func(path string) error {
		return r.renderJSON(p.Report(result), path)
	}); err != nil {
		return written, err
	}

	return written, nil
}

// renderCleaned writes the cleaned corpus as id,text rows.
func (r *Renderer) renderCleaned(cleaned []model.CleanedRecord, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "text"}); err != nil {
		return err
	}
	for _, rec := range cleaned {
		if err := w.Write([]string{strconv.Itoa(rec.ID), rec.Text}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// renderTable writes one frequency table, highest counts first. Grouped
// tables carry a group column; ungrouped tables do not.
func (r *Renderer) renderTable(table *model.FrequencyTable, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w := csv.NewWriter(f)
	grouped := table.GroupBy != ""

	header := []string{"gram", "count"}
	if grouped {
		header = []string{"gram", table.GroupBy, "count"}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range table.Rows() {
		fields := []string{row.Gram, strconv.Itoa(row.Count)}
		if grouped {
			fields = []string{row.Gram, row.Group, strconv.Itoa(row.Count)}
		}
		if err := w.Write(fields); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// renderJSON writes the run report.
func (r *Renderer) renderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
