package question

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNothingToSave is returned when saving an empty question list.
var ErrNothingToSave = errors.New("no questions to save")

// SaveFile writes questions as CSV, JSON or YAML, chosen by extension.
func SaveFile(path string, questions []Question) error {
	if len(questions) == 0 {
		return ErrNothingToSave
	}
	records := make([]Record, 0, len(questions))
	for _, q := range questions {
		records = append(records, ToRecord(q))
	}

	var (
		payload []byte
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		payload, err = json.MarshalIndent(records, "", "  ")
	case ".yaml", ".yml":
		payload, err = yaml.Marshal(records)
	default:
		payload, err = encodeCSV(records)
	}
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create question dir: %w", err)
		}
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func encodeCSV(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(Columns); err != nil {
		return nil, err
	}
	for _, record := range records {
		options := record.Options
		if options == nil {
			options = []string{}
		}
		encodedOptions, err := json.Marshal(options)
		if err != nil {
			return nil, err
		}
		row := []string{
			strconv.Itoa(record.ID),
			record.Section,
			record.SectionTitle,
			record.Difficulty,
			record.Type,
			record.Question,
			string(encodedOptions),
			record.Answer,
			record.Explanation,
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
