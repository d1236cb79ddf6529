// Package csvfile reads and writes the pipeline's file formats: raw
// scraped rows, canonical records, and opponent strength tables. CSV
// is the durable artifact format; everything else lives in memory.
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

// Raw scrape column headers. Team, Stats, FPPG, GameTime, Week and Day
// are optional; the rest must be present.
const (
	colPlayer   = "Player"
	colPosition = "Position"
	colTeam     = "Team"
	colGame     = "Game"
	colStats    = "Stats"
	colSalary   = "Salary"
	colFPPG     = "FPPG"
	colPoints   = "Points"
	colGameTime = "GameTime"
	colWeek     = "Week"
	colDay      = "Day"
)

// LoadRawRows reads one scraped slate file. Values are passed through
// untouched; normalization decides later what is usable.
func LoadRawRows(path string) ([]domain.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw rows: %w", err)
	}
	defer f.Close()

	rows, err := ReadRawRows(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// ReadRawRows parses scraped rows from CSV. The header row is matched
// case-insensitively and unknown columns are ignored.
func ReadRawRows(r io.Reader) ([]domain.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", storage.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}

	idx := headerIndex(header)
	for _, required := range []string{colPlayer, colPosition, colSalary, colPoints} {
		if _, ok := idx[strings.ToLower(required)]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", storage.ErrInvalidInput, required)
		}
	}

	var rows []domain.RawRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		get := func(col string) string {
			i, ok := idx[strings.ToLower(col)]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		week, _ := strconv.Atoi(strings.TrimSpace(get(colWeek)))
		rows = append(rows, domain.RawRow{
			Player:   get(colPlayer),
			Position: get(colPosition),
			Team:     get(colTeam),
			Game:     get(colGame),
			Stats:    get(colStats),
			Salary:   get(colSalary),
			FPPG:     get(colFPPG),
			Points:   get(colPoints),
			Slate:    strings.TrimSpace(get(colGameTime)),
			Week:     week,
			Day:      strings.TrimSpace(get(colDay)),
		})
	}
	return rows, nil
}

// headerIndex maps lower-cased column names to positions. The first
// occurrence wins when a header repeats.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	return idx
}
