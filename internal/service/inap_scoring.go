package service

import (
	"sort"

	"github.com/mvaldebenito/vocanta/internal/model"
)

// InapScores is the computed outcome of one closed INAPV answer set.
type InapScores struct {
	ScoresByAreaDim    map[string]model.AreaDimScore
	MaxByAreaDim       map[string]model.AreaDimScore
	PercentByAreaDim   map[string]model.AreaDimPercent
	TopAreasByInterest []string
	TopAreasByAptitude []string
}

// ComputeInapScores scores a closed answer set against the question catalog.
// It is a pure function: same catalog and answers always yield the same
// output, including the ordering of the top-area rankings.
//
// Maxima come from the catalog alone. A question tagged with both dimensions
// contributes 1 to each and 2 to the area total. Points accumulate only for
// answers with value true; an area's total is always interest + aptitude.
func ComputeInapScores(questions []model.InapQuestion, answers []model.InapAnswer) InapScores {
	scores := make(map[string]model.AreaDimScore)
	maxima := make(map[string]model.AreaDimScore)

	byID := make(map[uint]model.InapQuestion, len(questions))
	for _, q := range questions {
		byID[q.ID] = q

		m := maxima[q.Area]
		if q.HasDim(model.DimInterest) {
			m.Interest++
			m.Total++
		}
		if q.HasDim(model.DimAptitude) {
			m.Aptitude++
			m.Total++
		}
		maxima[q.Area] = m
		if _, ok := scores[q.Area]; !ok {
			scores[q.Area] = model.AreaDimScore{}
		}
	}

	for _, a := range answers {
		if !a.Value {
			continue
		}
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		s := scores[q.Area]
		if q.HasDim(model.DimInterest) {
			s.Interest++
		}
		if q.HasDim(model.DimAptitude) {
			s.Aptitude++
		}
		s.Total = s.Interest + s.Aptitude
		scores[q.Area] = s
	}

	percents := make(map[string]model.AreaDimPercent, len(scores))
	for area, s := range scores {
		m := maxima[area]
		percents[area] = model.AreaDimPercent{
			Interest: toPercent(s.Interest, m.Interest),
			Aptitude: toPercent(s.Aptitude, m.Aptitude),
			Total:    toPercent(s.Total, m.Total),
		}
	}

	return InapScores{
		ScoresByAreaDim:    scores,
		MaxByAreaDim:       maxima,
		PercentByAreaDim:   percents,
		TopAreasByInterest: topAreas(percents, model.DimInterest),
		TopAreasByAptitude: topAreas(percents, model.DimAptitude),
	}
}

func toPercent(score, max int) float64 {
	if max == 0 {
		return 0
	}
	return float64(score) / float64(max) * 100
}

// topAreas ranks areas by the target dimension's percentage descending,
// breaking ties on the other dimension's percentage descending and finally
// on the area code ascending, then keeps the first three. The last tie-break
// makes the ranking fully deterministic for reproducible reports.
func topAreas(percents map[string]model.AreaDimPercent, dim string) []string {
	areas := make([]string, 0, len(percents))
	for area := range percents {
		areas = append(areas, area)
	}

	target := func(p model.AreaDimPercent) float64 { return p.Interest }
	other := func(p model.AreaDimPercent) float64 { return p.Aptitude }
	if dim == model.DimAptitude {
		target, other = other, target
	}

	sort.Slice(areas, func(i, j int) bool {
		a, b := percents[areas[i]], percents[areas[j]]
		if target(a) != target(b) {
			return target(a) > target(b)
		}
		if other(a) != other(b) {
			return other(a) > other(b)
		}
		return areas[i] < areas[j]
	})

	if len(areas) > 3 {
		areas = areas[:3]
	}
	return areas
}
