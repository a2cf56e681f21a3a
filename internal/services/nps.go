package services

import (
	"math"
	"sort"

	"nps/internal/models/response_models"
	"nps/internal/repositories"
)

type Classification string

const (
	Promoter  Classification = "promoter"
	Neutral   Classification = "neutral"
	Detractor Classification = "detractor"
)

const rankingSize = 5

// Classify buckets a 0..10 score: 9-10 promoter, 7-8 neutral, 0-6 detractor.
func Classify(score int) Classification {
	switch {
	case score >= 9:
		return Promoter
	case score >= 7:
		return Neutral
	default:
		return Detractor
	}
}

// NPSScore is the percentage of promoters minus detractors, rounded to one
// decimal. It is 0 when there is nothing to score.
func NPSScore(promoters, detractors, total int64) float64 {
	if total == 0 {
		return 0
	}
	return roundTo(float64(promoters-detractors)/float64(total)*100, 1)
}

// Medal annotates a 1-based ranking position.
func Medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return "🏅"
	}
}

// roundTo rounds half up, so -0.25 becomes -0.2 and 0.25 becomes 0.3.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}

// rankRows orders by average score descending, then id ascending, and keeps
// the first n rows. With skipEmpty, rows without evaluations are left out.
func rankRows(rows []repositories.ScoreRow, n int, skipEmpty bool) []repositories.ScoreRow {
	ranked := make([]repositories.ScoreRow, 0, len(rows))
	for _, r := range rows {
		if skipEmpty && r.Total == 0 {
			continue
		}
		r.Average = roundTo(r.Average, 2)
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Average != ranked[j].Average {
			return ranked[i].Average > ranked[j].Average
		}
		return ranked[i].ID < ranked[j].ID
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// RankCompanies ranks every active company. Companies without evaluations
// take part with an average of 0.
func RankCompanies(rows []repositories.ScoreRow) []response_models.CompanyRanking {
	ranked := rankRows(rows, rankingSize, false)
	out := make([]response_models.CompanyRanking, len(ranked))
	for i, r := range ranked {
		out[i] = response_models.CompanyRanking{
			Rank:             i + 1,
			Medal:            Medal(i + 1),
			CompanyID:        r.ID,
			CompanyName:      r.Name,
			TotalEvaluations: r.Total,
			AverageScore:     r.Average,
		}
	}
	return out
}

// RankEmployees only ranks employees with at least one evaluation.
func RankEmployees(rows []repositories.ScoreRow) []response_models.EmployeeRanking {
	ranked := rankRows(rows, rankingSize, true)
	out := make([]response_models.EmployeeRanking, len(ranked))
	for i, r := range ranked {
		out[i] = response_models.EmployeeRanking{
			Rank:             i + 1,
			Medal:            Medal(i + 1),
			EmployeeID:       r.ID,
			EmployeeName:     r.Name,
			TotalEvaluations: r.Total,
			AverageScore:     r.Average,
			NPSScore:         NPSScore(r.Promoters, r.Detractors, r.Total),
		}
	}
	return out
}
