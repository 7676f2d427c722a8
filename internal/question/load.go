package question

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"quizmaker/internal/logger"
)

// Columns lists the CSV header of a question bank, in write order.
var Columns = []string{"id", "section", "section_title", "difficulty", "type", "question", "options", "answer", "explanation"}

// LoadError reports a question bank that could not be read at all.
type LoadError struct {
	Path string
	Err  error
}

// Error returns a readable message for the failed load.
func (err *LoadError) Error() string {
	return fmt.Sprintf("load questions from %s: %v", err.Path, err.Err)
}

// Unwrap exposes the underlying cause.
func (err *LoadError) Unwrap() error {
	return err.Err
}

// Rejection records a question record excluded from the store.
type Rejection struct {
	// Line is the 1-based source line for CSV input, 0 otherwise.
	Line   int
	Record Record
	Err    error
}

// Reason returns the rule the record failed.
func (r Rejection) Reason() Reason {
	var validationErr *ValidationError
	if errors.As(r.Err, &validationErr) {
		return validationErr.Reason
	}
	return ReasonMalformedRow
}

// LoadResult is the outcome of loading a question bank file.
type LoadResult struct {
	Store    *Store
	Rejected []Rejection
}

// Load validates records and splits them into accepted questions and rejections.
// A record whose id was already accepted is rejected as a duplicate.
func Load(records []Record) ([]Question, []Rejection) {
	return load(records, nil)
}

func load(records []Record, lines []int) ([]Question, []Rejection) {
	accepted := make([]Question, 0, len(records))
	var rejected []Rejection
	seen := map[int]struct{}{}
	for i, record := range records {
		q, err := Parse(record)
		if err == nil {
			if _, dup := seen[record.ID]; dup {
				err = invalid(record.ID, ReasonDuplicateID, "duplicate id %d", record.ID)
			}
		}
		if err != nil {
			rejection := Rejection{Record: record, Err: err}
			if lines != nil {
				rejection.Line = lines[i]
			}
			rejected = append(rejected, rejection)
			continue
		}
		seen[record.ID] = struct{}{}
		accepted = append(accepted, q)
	}
	return accepted, rejected
}

// LoadFile reads a question bank from CSV, JSON or YAML, chosen by extension.
// Invalid records are logged and skipped; only an unreadable file fails the call.
func LoadFile(path string) (LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadResult{}, &LoadError{Path: path, Err: err}
	}

	var (
		records  []Record
		lines    []int
		rejected []Rejection
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		records, err = decodeJSON(data)
	case ".yaml", ".yml":
		records, err = decodeYAML(data)
	default:
		records, lines, rejected, err = decodeCSV(data)
	}
	if err != nil {
		return LoadResult{}, &LoadError{Path: path, Err: err}
	}

	accepted, invalidRecords := load(records, lines)
	rejected = append(rejected, invalidRecords...)
	sort.SliceStable(rejected, func(i, j int) bool { return rejected[i].Line < rejected[j].Line })

	log := logger.Get()
	for _, rejection := range rejected {
		log.Warn("question rejected",
			zap.String("path", path),
			zap.Int("id", rejection.Record.ID),
			zap.Int("line", rejection.Line),
			zap.String("reason", string(rejection.Reason())),
			zap.Error(rejection.Err))
	}
	log.Info("questions loaded",
		zap.String("path", path),
		zap.Int("accepted", len(accepted)),
		zap.Int("rejected", len(rejected)))

	return LoadResult{Store: NewStore(accepted), Rejected: rejected}, nil
}

func decodeJSON(data []byte) ([]Record, error) {
	var records []Record
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return records, nil
}

func decodeYAML(data []byte) ([]Record, error) {
	var records []Record
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&records); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return records, nil
}

// decodeCSV turns CSV rows into records. Rows that cannot be decoded are
// returned as rejections rather than failing the whole file.
func decodeCSV(data []byte) ([]Record, []int, []Rejection, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil, fmt.Errorf("parse csv: missing header")
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	var missing []string
	for _, column := range Columns {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, nil, nil, fmt.Errorf("parse csv: missing columns %s", strings.Join(missing, ", "))
	}

	var (
		records  []Record
		lines    []int
		rejected []Rejection
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rejected = append(rejected, Rejection{Line: parseErr.StartLine, Err: err})
				continue
			}
			return nil, nil, nil, fmt.Errorf("parse csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		record, err := decodeRow(row, index, len(header))
		if err != nil {
			rejected = append(rejected, Rejection{Line: line, Record: record, Err: err})
			continue
		}
		records = append(records, record)
		lines = append(lines, line)
	}
	return records, lines, rejected, nil
}

func decodeRow(row []string, index map[string]int, width int) (Record, error) {
	cell := func(column string) string {
		i := index[column]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}
	if len(row) != width {
		return Record{Question: cell("question")}, fmt.Errorf("expected %d fields, got %d", width, len(row))
	}
	record := Record{
		Section:      strings.TrimSpace(cell("section")),
		SectionTitle: cell("section_title"),
		Difficulty:   strings.TrimSpace(cell("difficulty")),
		Type:         strings.TrimSpace(cell("type")),
		Question:     cell("question"),
		Answer:       cell("answer"),
		Explanation:  cell("explanation"),
	}
	id, err := strconv.Atoi(strings.TrimSpace(cell("id")))
	if err != nil {
		return record, fmt.Errorf("invalid id %q", cell("id"))
	}
	record.ID = id
	options, err := decodeOptions(cell("options"))
	if err != nil {
		return record, err
	}
	record.Options = options
	return record, nil
}

// decodeOptions parses the JSON array stored in an options cell.
func decodeOptions(value string) ([]string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{}, nil
	}
	var options []string
	if err := json.Unmarshal([]byte(value), &options); err != nil {
		return nil, fmt.Errorf("options must be a JSON array of strings: %w", err)
	}
	if options == nil {
		options = []string{}
	}
	return options, nil
}
