package reporting

import (
	"fmt"
	"math"
	"strings"
)

// RenderAdjustedCSV renders matchup-adjusted rows as CSV string.
func RenderAdjustedCSV(rows []AdjustedRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("record_id,name,role,team,opponent,cost,points,opponent_rank,")
	sb.WriteString("multiplier,adjusted_points,rating,matchup_unavailable,active,week\n")

	// Rows
	for _, r := range rows {
		rank := ""
		if !r.Unavailable {
			rank = fmt.Sprintf("%d", r.OpponentRank)
		}
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%t,%t,%d\n",
			r.RecordID,
			csvEscape(r.Name),
			r.Role,
			r.Team,
			r.Opponent,
			csvFloat(r.Cost),
			csvFloat(r.Points),
			rank,
			csvOptFloat(r.Multiplier),
			csvOptFloat(r.Adjusted),
			r.Rating,
			r.Unavailable,
			r.Active,
			r.Week,
		))
	}

	return sb.String()
}

// RenderBinsCSV renders every role's cost bins as CSV string.
func RenderBinsCSV(roles []RoleValueSection) string {
	var sb strings.Builder

	sb.WriteString("role,bin_lo,bin_hi,count,mean_points,mean_cost,mean_efficiency,low_confidence,best\n")

	for i := range roles {
		s := &roles[i]
		for _, bin := range s.Bins {
			best := s.Best != nil && s.Best.Lo == bin.Lo && s.Best.Hi == bin.Hi
			sb.WriteString(fmt.Sprintf("%s,%s,%s,%d,%s,%s,%s,%t,%t\n",
				s.Role,
				csvFloat(bin.Lo),
				csvFloat(bin.Hi),
				bin.Count,
				csvFloat(bin.MeanPoints),
				csvFloat(bin.MeanCost),
				csvFloat(bin.MeanEfficiency),
				bin.LowConfidence,
				best,
			))
		}
	}

	return sb.String()
}

// RenderFitsCSV renders every role's model fits as CSV string.
// Coefficient columns hold ascending powers; absent powers are empty.
func RenderFitsCSV(roles []RoleValueSection) string {
	var sb strings.Builder

	sb.WriteString("role,granularity,model,sample_size,valid,r_squared,p_value,c0,c1,c2,c3\n")

	for i := range roles {
		s := &roles[i]
		for _, fit := range s.Fits {
			coeffs := [4]string{}
			rsq := ""
			if fit.Valid {
				rsq = csvFloat(fit.RSquared)
				for j, c := range fit.Coefficients {
					if j < len(coeffs) {
						coeffs[j] = csvFloat(c)
					}
				}
			}
			sb.WriteString(fmt.Sprintf("%s,%s,%s,%d,%t,%s,%s,%s,%s,%s,%s\n",
				s.Role,
				fit.Granularity,
				fit.Model,
				fit.SampleSize,
				fit.Valid,
				rsq,
				csvOptFloat(fit.PValue),
				coeffs[0], coeffs[1], coeffs[2], coeffs[3],
			))
		}
	}

	return sb.String()
}

// RenderPreviewCSV renders a matchup preview as CSV string.
func RenderPreviewCSV(rows []PreviewRow) string {
	var sb strings.Builder

	sb.WriteString("game,team,opponent,role,opponent_rank,points_allowed,multiplier,rating,unavailable\n")

	for _, r := range rows {
		rank := ""
		allowed := ""
		if !r.Unavailable {
			rank = fmt.Sprintf("%d", r.OpponentRank)
			allowed = csvFloat(r.PointsAllowed)
		}
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s,%t\n",
			csvEscape(r.Game),
			r.Team,
			r.Opponent,
			r.Role,
			rank,
			allowed,
			csvOptFloat(r.Multiplier),
			r.Rating,
			r.Unavailable,
		))
	}

	return sb.String()
}

// csvFloat renders a float at CSV precision; NaN renders as empty.
func csvFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%.6f", v)
}

// csvOptFloat renders an optional float; nil renders as empty.
func csvOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return csvFloat(*v)
}

// csvEscape quotes a field containing commas or quotes.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
