package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mvaldebenito/vocanta/internal/apperr"
	"github.com/mvaldebenito/vocanta/internal/dto"
	"github.com/mvaldebenito/vocanta/internal/model"
	"github.com/mvaldebenito/vocanta/internal/repository"
	"gorm.io/gorm"
)

// PeriodResultsService is the read-side roll-up of per-attempt results into
// period-level aggregates. Purely derived, recomputed on read; never part of
// the write path.
type PeriodResultsService interface {
	GetPeriodResults(periodID uint) (*dto.PeriodResultsResponse, error)
}

type periodResultsService struct {
	store repository.Store
}

func NewPeriodResultsService(store repository.Store) PeriodResultsService {
	return &periodResultsService{store: store}
}

func (s *periodResultsService) GetPeriodResults(periodID uint) (*dto.PeriodResultsResponse, error) {
	period, err := s.store.Periods().FindByIDWithTest(periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("period", periodID)
		}
		return nil, err
	}

	counts, err := s.getCounts(periodID)
	if err != nil {
		return nil, err
	}

	resp := &dto.PeriodResultsResponse{ResultType: period.Test.Key, Counts: counts}

	switch period.Test.Key {
	case model.TestKeyInapv:
		results, err := s.store.InapResults().ListFinishedByPeriod(periodID)
		if err != nil {
			return nil, err
		}
		resp.ResultsAvailableCount = len(results)
		resp.Inap = AggregateInapResults(results)
	case model.TestKeyCaas:
		results, err := s.store.CaasResults().ListFinishedByPeriod(periodID)
		if err != nil {
			return nil, err
		}
		resp.ResultsAvailableCount = len(results)
		resp.Caas = AggregateCaasResults(results)
	default:
		return nil, fmt.Errorf("period %d runs unknown test key %q: %w", periodID, period.Test.Key, apperr.ErrInternal)
	}
	return resp, nil
}

func (s *periodResultsService) getCounts(periodID uint) (dto.PeriodCounts, error) {
	students, err := s.store.Enrollments().CountByPeriod(periodID)
	if err != nil {
		return dto.PeriodCounts{}, err
	}
	finished, err := s.store.Attempts().CountByPeriodAndStatus(periodID, model.AttemptStatusFinished)
	if err != nil {
		return dto.PeriodCounts{}, err
	}
	inProgress, err := s.store.Attempts().CountByPeriodAndStatus(periodID, model.AttemptStatusInProgress)
	if err != nil {
		return dto.PeriodCounts{}, err
	}

	notStarted := students - finished - inProgress
	if notStarted < 0 {
		notStarted = 0
	}
	return dto.PeriodCounts{
		StudentsCount:   int(students),
		FinishedCount:   int(finished),
		InProgressCount: int(inProgress),
		NotStartedCount: int(notStarted),
	}, nil
}

// AggregateInapResults rolls per-attempt INAPV results into per-area
// percentages. Scores and maxima are summed first and divided once —
// averaging per-attempt percentages would over-weight attempts with small
// denominators.
func AggregateInapResults(results []model.InapResult) *dto.InapPeriodAggregate {
	type acc struct{ scoreSum, maxSum model.AreaDimScore }
	byArea := make(map[string]*acc)

	ensure := func(area string) *acc {
		a, ok := byArea[area]
		if !ok {
			a = &acc{}
			byArea[area] = a
		}
		return a
	}

	for _, r := range results {
		for area, s := range r.ScoresByAreaDim.Data() {
			a := ensure(area)
			a.scoreSum.Interest += s.Interest
			a.scoreSum.Aptitude += s.Aptitude
			a.scoreSum.Total += s.Total
		}
		for area, m := range r.MaxByAreaDim.Data() {
			a := ensure(area)
			a.maxSum.Interest += m.Interest
			a.maxSum.Aptitude += m.Aptitude
			a.maxSum.Total += m.Total
		}
	}

	aggregates := make([]dto.AreaAggregate, 0, len(byArea))
	for area, a := range byArea {
		aggregates = append(aggregates, dto.AreaAggregate{
			Area:     area,
			ScoreSum: a.scoreSum,
			MaxSum:   a.maxSum,
			PctAvg: model.AreaDimPercent{
				Interest: round2(toPercent(a.scoreSum.Interest, a.maxSum.Interest)),
				Aptitude: round2(toPercent(a.scoreSum.Aptitude, a.maxSum.Aptitude)),
				Total:    round2(toPercent(a.scoreSum.Total, a.maxSum.Total)),
			},
		})
	}
	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].PctAvg.Total != aggregates[j].PctAvg.Total {
			return aggregates[i].PctAvg.Total > aggregates[j].PctAvg.Total
		}
		return aggregates[i].Area < aggregates[j].Area
	})

	top := make([]string, 0, 5)
	for i := 0; i < len(aggregates) && i < 5; i++ {
		top = append(top, aggregates[i].Area)
	}
	return &dto.InapPeriodAggregate{TopAreas: top, ByArea: aggregates}
}

// AggregateCaasResults rolls per-attempt CAAS results into per-dimension
// percentages, level counts and the overall percentage, using the same
// sum-over-sum rule.
func AggregateCaasResults(results []model.CaasResult) *dto.CaasPeriodAggregate {
	type acc struct{ scoreSum, maxSum int }
	byDim := make(map[string]*acc)
	totalSum, maxSum := 0, 0
	levels := dto.LevelCounts{}

	for _, r := range results {
		totalSum += r.TotalScore
		maxSum += r.MaxScore
		switch r.Level {
		case model.LevelLow:
			levels.Low++
		case model.LevelMedium:
			levels.Medium++
		case model.LevelHigh:
			levels.High++
		}
		for dim, s := range r.ScoresByDimension.Data() {
			a, ok := byDim[dim]
			if !ok {
				a = &acc{}
				byDim[dim] = a
			}
			a.scoreSum += s.Score
			a.maxSum += s.Max
		}
	}

	aggregates := make([]dto.DimensionAggregate, 0, len(byDim))
	for dim, a := range byDim {
		aggregates = append(aggregates, dto.DimensionAggregate{
			Dimension: dim,
			ScoreSum:  a.scoreSum,
			MaxSum:    a.maxSum,
			PctAvg:    round2(toPercent(a.scoreSum, a.maxSum)),
		})
	}
	sort.Slice(aggregates, func(i, j int) bool { return aggregates[i].Dimension < aggregates[j].Dimension })

	return &dto.CaasPeriodAggregate{
		ByDimension:   aggregates,
		AvgPercentage: round2(toPercent(totalSum, maxSum)),
		LevelCounts:   levels,
	}
}
