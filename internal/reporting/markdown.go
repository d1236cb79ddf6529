package reporting

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// RenderWeeklyMarkdown renders a weekly report as Markdown string.
func RenderWeeklyMarkdown(r *WeeklyReport) string {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# Week %d Report\n\n", r.Week))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Run: %s | Data Version: %s | Generator: %s\n\n",
		r.RunID, r.DataVersion, GeneratorVersion))

	// Run Summary
	sb.WriteString("## Run Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Rows In | %d |\n", r.Summary.RowsIn))
	sb.WriteString(fmt.Sprintf("| Malformed | %d |\n", r.Summary.Malformed))
	sb.WriteString(fmt.Sprintf("| Duplicates Collapsed | %d |\n", r.Summary.DuplicatesCollapsed))
	sb.WriteString(fmt.Sprintf("| Duplicate Conflicts | %d |\n", r.Summary.Conflicts))
	sb.WriteString(fmt.Sprintf("| Canonical Records | %d |\n", r.Summary.Canonical))
	sb.WriteString(fmt.Sprintf("| Active | %d |\n", r.Summary.Active))
	sb.WriteString(fmt.Sprintf("| Inactive | %d |\n", r.Summary.Inactive))
	sb.WriteString(fmt.Sprintf("| Scored | %d |\n", r.Summary.Scored))
	sb.WriteString(fmt.Sprintf("| Matchup Unavailable | %d |\n", r.Summary.MatchupUnavailable))
	sb.WriteString("\n")

	if len(r.Summary.MalformedReasons) > 0 {
		sb.WriteString("### Malformed Rows by Reason\n\n")
		sb.WriteString("| Reason | Count |\n")
		sb.WriteString("|--------|-------|\n")
		reasons := make([]string, 0, len(r.Summary.MalformedReasons))
		for reason := range r.Summary.MalformedReasons {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", reason, r.Summary.MalformedReasons[reason]))
		}
		sb.WriteString("\n")
	}

	// Quality Gate
	if r.Quality != nil {
		sb.WriteString("## Quality Gate\n\n")
		sb.WriteString("| Check | Threshold | Actual | Status |\n")
		sb.WriteString("|-------|-----------|--------|--------|\n")
		for _, check := range r.Quality.Checks {
			status := "FAIL"
			if check.Pass {
				status = "PASS"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				check.Name, check.Threshold, check.Actual, status))
		}
		sb.WriteString(fmt.Sprintf("\n**Verdict: %s**\n\n", r.Quality.Verdict))
	}

	// Role Stats
	sb.WriteString("## Role Summary\n\n")
	if len(r.RoleStats) > 0 {
		sb.WriteString("| Role | Records | Active | Mean Points | Mean Cost | Points/Cost |\n")
		sb.WriteString("|------|---------|--------|-------------|-----------|-------------|\n")
		for _, s := range r.RoleStats {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %s | %s | %s |\n",
				s.Role, s.Records, s.Active,
				fmtFloat(s.MeanPoints), fmtFloat(s.MeanCost), fmtFloat(s.MeanEfficiency)))
		}
	} else {
		sb.WriteString("No records stored for this week.\n")
	}
	sb.WriteString("\n")

	// Top Adjusted
	sb.WriteString("## Top Adjusted Scores\n\n")
	if len(r.TopAdjusted) > 0 {
		sb.WriteString("| Name | Role | Team | Opp | Rank | Cost | Points | Mult | Adjusted | Rating |\n")
		sb.WriteString("|------|------|------|-----|------|------|--------|------|----------|--------|\n")
		for _, row := range r.TopAdjusted {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d | %s | %s | %s | %s | %s |\n",
				row.Name, row.Role, row.Team, row.Opponent, row.OpponentRank,
				fmtFloat(row.Cost), fmtFloat(row.Points),
				fmtOptFloat(row.Multiplier), fmtOptFloat(row.Adjusted), row.Rating))
		}
	} else {
		sb.WriteString("No scored records available.\n")
	}
	sb.WriteString("\n")

	// Unavailable matchups
	if len(r.Unavailable) > 0 {
		sb.WriteString("## Unresolved Matchups\n\n")
		for _, name := range r.Unavailable {
			sb.WriteString(fmt.Sprintf("- %s\n", name))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderValueMarkdown renders a value report as Markdown string.
func RenderValueMarkdown(r *ValueReport) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Value Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Run: %s | Data Version: %s | Generator: %s\n\n",
		r.RunID, r.DataVersion, GeneratorVersion))
	sb.WriteString(fmt.Sprintf("Weeks: %s | Bin Width: %s\n\n",
		fmtWeeks(r.Weeks), fmtFloat(r.BinWidth)))

	for i := range r.Roles {
		renderRoleSection(&sb, &r.Roles[i])
	}

	return sb.String()
}

func renderRoleSection(sb *strings.Builder, s *RoleValueSection) {
	sb.WriteString(fmt.Sprintf("## %s\n\n", s.Role))
	sb.WriteString(fmt.Sprintf("Records: %d | Active: %d | In Domain: %d | Out of Domain: %d\n\n",
		s.Records, s.Active, s.InDomain, s.OutOfDomain))

	// Bins
	sb.WriteString("### Cost Bins\n\n")
	if len(s.Bins) > 0 {
		sb.WriteString("| Bin | Count | Mean Points | Mean Cost | Points/Cost | Confidence |\n")
		sb.WriteString("|-----|-------|-------------|-----------|-------------|------------|\n")
		for _, bin := range s.Bins {
			confidence := "ok"
			if bin.LowConfidence {
				confidence = "LOW"
			}
			sb.WriteString(fmt.Sprintf("| [%s, %s) | %d | %s | %s | %s | %s |\n",
				fmtFloat(bin.Lo), fmtFloat(bin.Hi), bin.Count,
				fmtFloat(bin.MeanPoints), fmtFloat(bin.MeanCost),
				fmtFloat(bin.MeanEfficiency), confidence))
		}
		sb.WriteString("\n")
		if s.Best != nil {
			sb.WriteString(fmt.Sprintf("Best value bin: [%s, %s) at %s points per cost unit.\n\n",
				fmtFloat(s.Best.Lo), fmtFloat(s.Best.Hi), fmtFloat(s.Best.MeanEfficiency)))
		} else {
			sb.WriteString("No bin met the confidence floor; best bin not reported.\n\n")
		}
	} else {
		sb.WriteString("No active records to bin.\n\n")
	}

	// Fits
	sb.WriteString("### Model Fits\n\n")
	if len(s.Fits) > 0 {
		sb.WriteString("| Basis | Model | N | R^2 | Quality | p (leading) | Coefficients |\n")
		sb.WriteString("|-------|-------|---|-----|---------|-------------|-------------|\n")
		for _, fit := range s.Fits {
			if !fit.Valid {
				sb.WriteString(fmt.Sprintf("| %s | %s | %d | - | insufficient sample | - | - |\n",
					fit.Granularity, fit.Model, fit.SampleSize))
				continue
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %s | %s | %s | %s |\n",
				fit.Granularity, fit.Model, fit.SampleSize,
				fmtFloat(fit.RSquared), fit.Quality,
				fmtPValue(fit.PValue), fmtCoefficients(fit.Coefficients)))
		}
	} else {
		sb.WriteString("No fits computed.\n")
	}
	sb.WriteString("\n")

	// Correlation
	if s.Correlation != nil {
		sb.WriteString(fmt.Sprintf("Cost-points correlation: r=%s, p=%s, n=%d\n\n",
			fmtFloat(s.Correlation.R), fmtPValue(s.Correlation.PValue), s.Correlation.SampleSize))
	}

	// High performers
	sb.WriteString("### High Performers\n\n")
	sb.WriteString(fmt.Sprintf("Efficiency mean %s, stddev %s.\n\n",
		fmtFloat(s.HighMean), fmtFloat(s.HighStddev)))
	if len(s.Elite) > 0 || len(s.Strong) > 0 {
		sb.WriteString("| Tier | Name | Team | Week | Cost | Points | Points/Cost |\n")
		sb.WriteString("|------|------|------|------|------|--------|-------------|\n")
		for _, p := range s.Elite {
			sb.WriteString(fmt.Sprintf("| Elite | %s | %s | %d | %s | %s | %s |\n",
				p.Name, p.Team, p.Week, fmtFloat(p.Cost), fmtFloat(p.Points), fmtFloat(p.Efficiency)))
		}
		for _, p := range s.Strong {
			sb.WriteString(fmt.Sprintf("| Strong | %s | %s | %d | %s | %s | %s |\n",
				p.Name, p.Team, p.Week, fmtFloat(p.Cost), fmtFloat(p.Points), fmtFloat(p.Efficiency)))
		}
	} else {
		sb.WriteString("No records above one standard deviation.\n")
	}
	sb.WriteString("\n")

	// Top scorers
	sb.WriteString("### Top Scorers\n\n")
	if len(s.Top) > 0 {
		sb.WriteString("| Name | Team | Week | Cost | Points | Points/Cost |\n")
		sb.WriteString("|------|------|------|------|--------|-------------|\n")
		for _, p := range s.Top {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %s | %s | %s |\n",
				p.Name, p.Team, p.Week, fmtFloat(p.Cost), fmtFloat(p.Points), fmtFloat(p.Efficiency)))
		}
	} else {
		sb.WriteString("No active records.\n")
	}
	sb.WriteString("\n")
}

// RenderPreviewMarkdown renders a matchup preview as Markdown string.
func RenderPreviewMarkdown(r *PreviewReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Week %d Matchup Preview\n\n", r.Week))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	if len(r.Rows) == 0 {
		sb.WriteString("No games to preview.\n")
		return sb.String()
	}

	sb.WriteString("| Game | Team | Opp | Role | Opp Rank | Pts Allowed | Mult | Rating |\n")
	sb.WriteString("|------|------|-----|------|----------|-------------|------|--------|\n")
	for _, row := range r.Rows {
		if row.Unavailable {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | - | - | - | UNAVAILABLE |\n",
				row.Game, row.Team, row.Opponent, row.Role))
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d | %s | %s | %s |\n",
			row.Game, row.Team, row.Opponent, row.Role, row.OpponentRank,
			fmtFloat(row.PointsAllowed), fmtOptFloat(row.Multiplier), row.Rating))
	}
	sb.WriteString("\n")

	return sb.String()
}

// fmtFloat renders a float at report precision; NaN renders as "-".
func fmtFloat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4f", v)
}

// fmtOptFloat renders an optional float; nil renders as "-".
func fmtOptFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmtFloat(*v)
}

// fmtPValue renders a p-value compactly; nil renders as "-".
func fmtPValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.4g", *v)
}

func fmtCoefficients(coeffs []float64) string {
	parts := make([]string, len(coeffs))
	for i, c := range coeffs {
		parts[i] = fmt.Sprintf("%.4g", c)
	}
	return strings.Join(parts, ", ")
}

func fmtWeeks(weeks []int) string {
	if len(weeks) == 0 {
		return "-"
	}
	parts := make([]string, len(weeks))
	for i, w := range weeks {
		parts[i] = fmt.Sprintf("%d", w)
	}
	return strings.Join(parts, ", ")
}
