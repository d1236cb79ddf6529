package normalize

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/idhash"
)

// Drop reasons reported in the normalization result. Keys are stable so
// downstream summaries can aggregate across runs.
const (
	ReasonMissingName   = "missing_name"
	ReasonUnknownRole   = "unknown_role"
	ReasonBadCost       = "bad_cost"
	ReasonMissingPoints = "missing_points"
	ReasonWeekMismatch  = "week_mismatch"
)

// Result carries the outcome of normalizing one batch of raw rows.
type Result struct {
	Records   []domain.ParticipantRecord // rows that normalized cleanly, input order
	Malformed int                        // rows dropped
	Reasons   map[string]int             // drop counts keyed by reason
}

// Engine converts raw scraped rows into participant records. Malformed
// rows are dropped and counted, never fatal.
type Engine struct {
	log zerolog.Logger
}

// NewEngine returns an engine that logs dropped rows at debug level.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{log: log}
}

// NormalizeRows normalizes a batch of raw rows for the given week.
// Rows tagged with a different week are dropped as malformed so a
// batch can never mix weeks.
func (e *Engine) NormalizeRows(rows []domain.RawRow, week int) Result {
	res := Result{
		Records: make([]domain.ParticipantRecord, 0, len(rows)),
		Reasons: make(map[string]int),
	}
	for i, row := range rows {
		rec, reason := e.normalizeRow(row, week)
		if reason != "" {
			res.Malformed++
			res.Reasons[reason]++
			e.log.Debug().
				Int("row", i).
				Str("player", row.Player).
				Str("reason", reason).
				Msg("dropped malformed row")
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

func (e *Engine) normalizeRow(row domain.RawRow, week int) (domain.ParticipantRecord, string) {
	name := idhash.NormalizeName(row.Player)
	if name == "" {
		return domain.ParticipantRecord{}, ReasonMissingName
	}

	role, ok := ParseRole(row.Position)
	if !ok {
		return domain.ParticipantRecord{}, ReasonUnknownRole
	}

	if row.Week != 0 && row.Week != week {
		return domain.ParticipantRecord{}, ReasonWeekMismatch
	}

	cost, err := ParseCost(row.Salary)
	if err != nil {
		return domain.ParticipantRecord{}, ReasonBadCost
	}

	satOut := DidNotPlay(row)
	points, ok := ParsePoints(row.Points)
	if !ok {
		// A blank score is only meaningful for a participant the
		// source marked as not having played.
		if !satOut {
			return domain.ParticipantRecord{}, ReasonMissingPoints
		}
		points = 0
	}

	return domain.ParticipantRecord{
		Name:         name,
		Role:         role,
		Team:         strings.ToUpper(strings.TrimSpace(row.Team)),
		GameContext:  strings.TrimSpace(row.Game),
		Cost:         cost,
		BaselineRate: ParseBaseline(row.FPPG),
		Points:       points,
		SourceSlate:  strings.TrimSpace(row.Slate),
		Week:         week,
		Active:       !(satOut && points == 0),
	}, ""
}
