package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/storage"
)

// canonicalHeader is the column layout of a canonical record file.
var canonicalHeader = []string{
	"record_id", "name", "role", "team", "game_context", "cost",
	"baseline_rate", "points", "source_slate", "week", "active", "observations",
}

// WriteCanonical writes canonical records as CSV. A nil baseline rate
// is written as an empty field.
func WriteCanonical(w io.Writer, records []*domain.CanonicalRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(canonicalHeader); err != nil {
		return err
	}
	for _, r := range records {
		baseline := ""
		if r.BaselineRate != nil {
			baseline = formatFloat(*r.BaselineRate)
		}
		row := []string{
			r.RecordID,
			r.Name,
			string(r.Role),
			r.Team,
			r.GameContext,
			formatFloat(r.Cost),
			baseline,
			formatFloat(r.Points),
			r.SourceSlate,
			strconv.Itoa(r.Week),
			strconv.FormatBool(r.Active),
			strconv.Itoa(r.Observations),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadCanonical reads a canonical record file written by
// WriteCanonical.
func LoadCanonical(path string) ([]*domain.CanonicalRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open canonical records: %w", err)
	}
	defer f.Close()

	records, err := ReadCanonical(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// ReadCanonical parses canonical records from CSV.
func ReadCanonical(r io.Reader) ([]*domain.CanonicalRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(canonicalHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", storage.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}
	for i, name := range canonicalHeader {
		if header[i] != name {
			return nil, fmt.Errorf("%w: column %d is %q, want %q",
				storage.ErrInvalidInput, i, header[i], name)
		}
	}

	var records []*domain.CanonicalRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		rec, err := parseCanonicalRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseCanonicalRow(row []string) (*domain.CanonicalRecord, error) {
	role := domain.Role(row[2])
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", storage.ErrInvalidInput, row[2])
	}
	cost, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: cost %q", storage.ErrInvalidInput, row[5])
	}
	var baseline *float64
	if row[6] != "" {
		v, err := strconv.ParseFloat(row[6], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: baseline %q", storage.ErrInvalidInput, row[6])
		}
		baseline = &v
	}
	points, err := strconv.ParseFloat(row[7], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: points %q", storage.ErrInvalidInput, row[7])
	}
	week, err := strconv.Atoi(row[9])
	if err != nil {
		return nil, fmt.Errorf("%w: week %q", storage.ErrInvalidInput, row[9])
	}
	active, err := strconv.ParseBool(row[10])
	if err != nil {
		return nil, fmt.Errorf("%w: active %q", storage.ErrInvalidInput, row[10])
	}
	observations := 1
	if row[11] != "" {
		observations, err = strconv.Atoi(row[11])
		if err != nil {
			return nil, fmt.Errorf("%w: observations %q", storage.ErrInvalidInput, row[11])
		}
	}

	return &domain.CanonicalRecord{
		RecordID:     row[0],
		Name:         row[1],
		Role:         role,
		Team:         row[3],
		GameContext:  row[4],
		Cost:         cost,
		BaselineRate: baseline,
		Points:       points,
		SourceSlate:  row[8],
		Week:         week,
		Active:       active,
		Observations: observations,
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
