package pipeline

import "github.com/rs/zerolog"

// Summary holds one weekly run's counters across every stage.
type Summary struct {
	Week                int
	RowsIn              int
	Malformed           int
	MalformedReasons    map[string]int
	DuplicatesCollapsed int
	Conflicts           int
	Canonical           int
	Active              int
	Inactive            int
	Scored              int
	MatchupUnavailable  int
}

// LogTo emits the summary as a single structured event.
func (s Summary) LogTo(log zerolog.Logger) {
	log.Info().
		Int("week", s.Week).
		Int("rows_in", s.RowsIn).
		Int("malformed", s.Malformed).
		Int("duplicates_collapsed", s.DuplicatesCollapsed).
		Int("conflicts", s.Conflicts).
		Int("canonical", s.Canonical).
		Int("active", s.Active).
		Int("inactive", s.Inactive).
		Int("scored", s.Scored).
		Int("matchup_unavailable", s.MatchupUnavailable).
		Msg("run summary")
}

// ValueSummary holds one value run's counters.
type ValueSummary struct {
	Weeks       []int
	Roles       int
	Records     int
	Active      int
	InDomain    int
	OutOfDomain int
	InvalidFits int
}

// LogTo emits the summary as a single structured event.
func (s ValueSummary) LogTo(log zerolog.Logger) {
	log.Info().
		Ints("weeks", s.Weeks).
		Int("roles", s.Roles).
		Int("records", s.Records).
		Int("active", s.Active).
		Int("in_domain", s.InDomain).
		Int("out_of_domain", s.OutOfDomain).
		Int("invalid_fits", s.InvalidFits).
		Msg("value summary")
}
