package engine

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"socialdash/internal/models"
	apperrors "socialdash/pkg/errors"
)

// --- 1. SMALL PARSERS ---

// parseInt parses "-123" -> -123. ok is false on anything but an optional
// sign followed by digits, and on values outside ±math.MaxInt64.
func parseInt(b []byte) (int64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	neg := b[0] == '-'
	if neg {
		b = b[1:]
		if len(b) == 0 {
			return 0, false
		}
	}
	var n int64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		d := int64(c - '0')
		if n > (math.MaxInt64-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	if neg {
		n = -n
	}
	return n, true
}

// parseFloat parses "123.45" -> 123.45 (no exponents).
func parseFloat(b []byte) (float64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	neg := b[0] == '-'
	if neg {
		b = b[1:]
	}
	var num float64
	var i, digits int
	for i < len(b) && b[i] != '.' {
		if b[i] < '0' || b[i] > '9' {
			return 0, false
		}
		num = num*10 + float64(b[i]-'0')
		i++
		digits++
	}
	if i < len(b) {
		i++
		div := 10.0
		for i < len(b) {
			if b[i] < '0' || b[i] > '9' {
				return 0, false
			}
			num += float64(b[i]-'0') / div
			div *= 10
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		num = -num
	}
	return num, true
}

// --- 2. LOADERS ---

// LoadFile reads a dataset from a .json or .csv file.
func LoadFile(path string, validate bool) (*Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewLoadError("failed to read dataset", path, err)
	}

	var ds *Dataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		ds, err = LoadJSON(content)
	case ".csv":
		ds, err = LoadCSV(content)
	default:
		return nil, apperrors.NewLoadError("unsupported dataset format", path, fmt.Errorf("extension %q", filepath.Ext(path)))
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if validate {
		if err := Validate(ds); err != nil {
			return nil, fmt.Errorf("validate %s: %w", path, err)
		}
	}
	return ds, nil
}

type jsonDataset struct {
	UpdatedAt string       `json:"updated_at"`
	Periods   []jsonPeriod `json:"periods"`
}

type jsonPeriod struct {
	Key     string                `json:"key"`
	Label   string                `json:"label"`
	Records []models.EntityRecord `json:"records"`
}

// LoadJSON decodes the bundled dataset format. Periods are ordered as listed,
// oldest first.
func LoadJSON(content []byte) (*Dataset, error) {
	var raw jsonDataset
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, apperrors.NewLoadError("failed to decode dataset", "json", err)
	}

	keys := make([]PeriodKey, 0, len(raw.Periods))
	labels := make(map[PeriodKey]string, len(raw.Periods))
	records := make(map[PeriodKey][]models.EntityRecord, len(raw.Periods))
	for _, p := range raw.Periods {
		k := PeriodKey(p.Key)
		if _, seen := records[k]; seen {
			return nil, apperrors.NewValidationError("duplicate period", "periods.key", p.Key)
		}
		keys = append(keys, k)
		labels[k] = p.Label
		if p.Records == nil {
			p.Records = []models.EntityRecord{}
		}
		records[k] = p.Records
	}
	return NewDataset(NewPeriods(keys, labels), records, raw.UpdatedAt), nil
}

const csvColumns = 7

// LoadCSV reads rows of
//
//	period,company_name,followers,er_percent,avg_likes,avg_comments,posting_frequency
//
// after a header line. Fields may be quoted, so names can contain commas.
// Periods are ordered by first appearance.
func LoadCSV(content []byte) (*Dataset, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	// skip header
	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return NewDataset(NewPeriods(nil, nil), nil, ""), nil
		}
		return nil, csvRowError(err)
	}

	var keys []PeriodKey
	records := make(map[PeriodKey][]models.EntityRecord)

	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvRowError(err)
		}
		line, _ := r.FieldPos(0)
		if len(fields) != csvColumns {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("line %d: expected %d columns, got %d", line, csvColumns, len(fields)),
				"row", line)
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		rec := models.EntityRecord{Name: fields[1]}
		var ok bool
		if rec.Followers, ok = parseInt([]byte(fields[2])); !ok {
			return nil, csvFieldError(line, "followers", fields[2])
		}
		if rec.EngagementRate, ok = parseFloat([]byte(fields[3])); !ok {
			return nil, csvFieldError(line, "er_percent", fields[3])
		}
		if rec.AvgLikes, ok = parseFloat([]byte(fields[4])); !ok {
			return nil, csvFieldError(line, "avg_likes", fields[4])
		}
		if rec.AvgComments, ok = parseFloat([]byte(fields[5])); !ok {
			return nil, csvFieldError(line, "avg_comments", fields[5])
		}
		if rec.PostingFrequency, ok = parseFloat([]byte(fields[6])); !ok {
			return nil, csvFieldError(line, "posting_frequency", fields[6])
		}

		k := PeriodKey(fields[0])
		if _, seen := records[k]; !seen {
			keys = append(keys, k)
		}
		records[k] = append(records[k], rec)
	}

	return NewDataset(NewPeriods(keys, nil), records, ""), nil
}

func csvRowError(err error) error {
	line := 0
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		line = perr.Line
	}
	verr := apperrors.NewValidationError(fmt.Sprintf("line %d: malformed row", line), "row", line)
	verr.Cause = err
	return verr
}

func csvFieldError(line int, field, value string) error {
	return apperrors.NewValidationError(
		fmt.Sprintf("line %d: invalid %s", line, field), field, value)
}
