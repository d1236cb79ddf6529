package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/storage"
)

// strengthHeader is the column layout of an opponent strength file.
var strengthHeader = []string{"team", "role", "rank", "points_allowed"}

// LoadStrengthTable reads opponent strength entries from a CSV file.
// Rank permutation checks happen when the entries are assembled into a
// lookup table, not here.
func LoadStrengthTable(path string) ([]*domain.OpponentStrengthEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open strength table: %w", err)
	}
	defer f.Close()

	entries, err := ReadStrengthTable(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return entries, nil
}

// ReadStrengthTable parses strength entries from CSV.
func ReadStrengthTable(r io.Reader) ([]*domain.OpponentStrengthEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(strengthHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", storage.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}
	for i, name := range strengthHeader {
		if strings.ToLower(strings.TrimSpace(header[i])) != name {
			return nil, fmt.Errorf("%w: column %d is %q, want %q",
				storage.ErrInvalidInput, i, header[i], name)
		}
	}

	var entries []*domain.OpponentStrengthEntry
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		role := domain.Role(strings.ToUpper(strings.TrimSpace(row[1])))
		if !domain.ValidRole(role) {
			return nil, fmt.Errorf("line %d: %w: unknown role %q", line, storage.ErrInvalidInput, row[1])
		}
		rank, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: rank %q", line, storage.ErrInvalidInput, row[2])
		}
		allowed, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: points allowed %q", line, storage.ErrInvalidInput, row[3])
		}

		entries = append(entries, &domain.OpponentStrengthEntry{
			Team:          strings.ToUpper(strings.TrimSpace(row[0])),
			Role:          role,
			Rank:          rank,
			PointsAllowed: allowed,
		})
	}
	return entries, nil
}

// WriteStrengthTable writes strength entries as CSV.
func WriteStrengthTable(w io.Writer, entries []*domain.OpponentStrengthEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strengthHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.Team,
			string(e.Role),
			strconv.Itoa(e.Rank),
			formatFloat(e.PointsAllowed),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
