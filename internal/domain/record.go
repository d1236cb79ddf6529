package domain

// RawRow is one scraped row as handed over by the acquisition layer.
// Source column names map onto these fields; unrecognized columns are
// ignored on read.
type RawRow struct {
	Player   string // participant display name
	Position string // raw role string, mapped case-insensitively
	Team     string // participant team code, may be empty
	Game     string // free-text matchup/score descriptor
	Stats    string // raw stat line, dash-only when the participant sat out
	Salary   string // currency-formatted cost, e.g. "$24"
	FPPG     string // season average, numeric or blank
	Points   string // fantasy points, numeric or blank
	Slate    string // identifier of the originating view
	Week     int    // collection week, 0 when the source omits it
	Day      string // slate day label, e.g. "Sunday"
}

// ParticipantRecord is one observed performance with all fields typed.
// Produced once per scrape row and immutable afterwards.
type ParticipantRecord struct {
	Name         string   // display name
	Role         Role     // QB | RB | WR | TE | DEF
	Team         string   // team code, may be empty
	GameContext  string   // free-text matchup/score descriptor
	Cost         float64  // >= 0
	BaselineRate *float64 // season average, nil when absent
	Points       float64  // signed; negative performances are valid
	SourceSlate  string   // slate identifier
	Week         int      // collection week
	Active       bool     // false when the source marked a did-not-play
}

// CanonicalRecord is the single reconciled record per identity per
// week. Replaces every ParticipantRecord for that identity.
type CanonicalRecord struct {
	RecordID     string // deterministic hash of identity|week
	Name         string // display name from the winning observation
	Role         Role
	Team         string
	GameContext  string
	Cost         float64
	BaselineRate *float64
	Points       float64
	SourceSlate  string // slate of the winning observation
	Week         int
	Active       bool
	Observations int // raw records collapsed into this one
}

// Efficiency returns points per unit cost. ok is false when the cost
// is zero and the ratio is undefined.
func (r *CanonicalRecord) Efficiency() (float64, bool) {
	if r.Cost <= 0 {
		return 0, false
	}
	return r.Points / r.Cost, true
}
