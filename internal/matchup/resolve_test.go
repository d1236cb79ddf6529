package matchup

import "testing"

func TestResolveOpponent(t *testing.T) {
	cases := []struct {
		name    string
		context string
		team    string
		want    string
		ok      bool
	}{
		{"away side", "PHI@NYG", "PHI", "NYG", true},
		{"home side", "PHI@NYG", "NYG", "PHI", true},
		{"spaced at", "PHI @ NYG", "PHI", "NYG", true},
		{"lower-case team", "PHI@NYG", "phi", "NYG", true},
		{"final score context", "Final PHI @ NYG 28-3", "NYG", "PHI", true},
		{"vs separator", "DAL vs WAS", "WAS", "DAL", true},
		{"vs dot separator", "DAL vs. WAS", "DAL", "WAS", true},
		{"kickoff time context", "Sun 1:00PM PHI@NYG", "PHI", "NYG", true},
		{"team not in game", "PHI@NYG", "DAL", "", false},
		{"empty own team", "PHI@NYG", "", "", false},
		{"empty context", "", "PHI", "", false},
		{"no separator", "PHI NYG", "PHI", "", false},
		{"score only side", "28-3 @ NYG", "NYG", "", false},
	}
	for _, c := range cases {
		got, ok := ResolveOpponent(c.context, c.team)
		if ok != c.ok {
			t.Errorf("%s: ok = %v, want %v", c.name, ok, c.ok)
			continue
		}
		if got != c.want {
			t.Errorf("%s: opponent = %q, want %q", c.name, got, c.want)
		}
	}
}
