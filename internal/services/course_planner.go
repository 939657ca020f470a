package services

import (
	"context"
	"log"

	"corso/pkg/utils"
)

const (
	MinCoursePlaces = 3
	MaxCoursePlaces = 6

	DefaultStayMinutes = 60

	// Tolerance when comparing summed leg distances.
	distanceEpsilon = 1e-9
)

// PlanPlace is the planner's read-only view of a resolved place.
type PlanPlace struct {
	ID          string
	Name        string
	Category    string
	Address     string
	Point       GeoPoint
	StayMinutes int
}

// PlanResult is the outcome of one planning run: a visiting order, the
// inbound leg per stop, totals, and the distance bounds across every
// permutation (used by the optimization score).
type PlanResult struct {
	// Order holds indexes into the input place slice.
	Order []int
	// Legs[i] is the inbound leg of stop i. Legs[0] is only meaningful when
	// HasStartLeg is true (a start point was given).
	Legs        []TravelLeg
	HasStartLeg bool

	TotalDistanceKm    float64
	TotalTravelMinutes int

	BestDistanceKm  float64
	WorstDistanceKm float64
}

// SequencePlanner picks a visiting order by exhaustive permutation search.
// The request schema caps the set at 6 places, so the 720 worst-case
// permutations always fit an interactive budget and the chosen order is the
// true optimum, not a heuristic.
type SequencePlanner struct {
	estimator TravelEstimator
}

func NewSequencePlanner(estimator TravelEstimator) *SequencePlanner {
	return &SequencePlanner{estimator: estimator}
}

// Plan searches all permutations and returns the minimum-total-distance
// order. Ties break by total duration, then by the lexicographically
// smallest permutation of the input order (permutations are generated in
// lexicographic index order and only strict improvements are taken), so
// identical input always yields the identical order.
func (p *SequencePlanner) Plan(ctx context.Context, places []PlanPlace, start *GeoPoint, mode TransportMode) (*PlanResult, error) {
	legs, err := p.buildLegs(ctx, places, start, mode)
	if err != nil {
		return nil, err
	}

	n := len(places)
	var (
		bestOrder   []int
		bestDist    = -1.0
		bestMinutes = 0
		worstDist   = -1.0
	)

	forEachPermutation(n, func(perm []int) {
		dist, minutes := legs.totals(perm)

		if dist > worstDist {
			worstDist = dist
		}

		switch {
		case bestDist < 0, dist < bestDist-distanceEpsilon:
			bestOrder = append(bestOrder[:0], perm...)
			bestDist = dist
			bestMinutes = minutes
		case dist <= bestDist+distanceEpsilon && minutes < bestMinutes:
			bestOrder = append(bestOrder[:0], perm...)
			bestDist = dist
			bestMinutes = minutes
		}
	})

	return legs.result(bestOrder, bestDist, bestMinutes, bestDist, worstDist), nil
}

// EvaluateOrder keeps the submitted order and computes its legs and totals,
// still sweeping every permutation for the distance bounds. This is how
// user-reordered courses get a comparable optimization score.
func (p *SequencePlanner) EvaluateOrder(ctx context.Context, places []PlanPlace, start *GeoPoint, mode TransportMode) (*PlanResult, error) {
	legs, err := p.buildLegs(ctx, places, start, mode)
	if err != nil {
		return nil, err
	}

	n := len(places)
	bestDist := -1.0
	worstDist := -1.0
	forEachPermutation(n, func(perm []int) {
		dist, _ := legs.totals(perm)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
		}
		if dist > worstDist {
			worstDist = dist
		}
	})

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	dist, minutes := legs.totals(order)

	return legs.result(order, dist, minutes, bestDist, worstDist), nil
}

// OptimizationScore normalizes a total distance against the best and worst
// permutations: 1.0 at the optimum, 0.0 at the worst ordering. Degenerate
// sets (all bounds equal, e.g. colocated places) score 1.0.
func OptimizationScore(actualKm, bestKm, worstKm float64) float64 {
	spread := worstKm - bestKm
	if spread <= distanceEpsilon {
		return 1.0
	}
	score := 1.0 - (actualKm-bestKm)/spread
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// legTable memoizes every directed pair once, so the permutation sweep never
// estimates the same leg twice within a request.
type legTable struct {
	matrix    [][]TravelLeg
	startLegs []TravelLeg
	hasStart  bool
}

func (p *SequencePlanner) buildLegs(ctx context.Context, places []PlanPlace, start *GeoPoint, mode TransportMode) (*legTable, error) {
	n := len(places)
	if n < MinCoursePlaces || n > MaxCoursePlaces {
		return nil, utils.ErrInvalidPlaceCount
	}

	t := &legTable{
		matrix:   make([][]TravelLeg, n),
		hasStart: start != nil,
	}

	for i := 0; i < n; i++ {
		t.matrix[i] = make([]TravelLeg, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			leg, err := p.estimator.Estimate(ctx, places[i].Point, places[j].Point, mode)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				log.Printf("Leg estimation %s -> %s failed: %v", places[i].ID, places[j].ID, err)
				return nil, utils.ErrCourseGeneration
			}
			t.matrix[i][j] = leg
		}
	}

	if start != nil {
		t.startLegs = make([]TravelLeg, n)
		for i := 0; i < n; i++ {
			leg, err := p.estimator.Estimate(ctx, *start, places[i].Point, mode)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				log.Printf("Start leg estimation to %s failed: %v", places[i].ID, err)
				return nil, utils.ErrCourseGeneration
			}
			t.startLegs[i] = leg
		}
	}

	return t, nil
}

func (t *legTable) totals(perm []int) (float64, int) {
	var dist float64
	var minutes int
	if t.hasStart {
		leg := t.startLegs[perm[0]]
		dist += leg.DistanceKm
		minutes += leg.DurationMinutes
	}
	for i := 1; i < len(perm); i++ {
		leg := t.matrix[perm[i-1]][perm[i]]
		dist += leg.DistanceKm
		minutes += leg.DurationMinutes
	}
	return dist, minutes
}

func (t *legTable) result(order []int, dist float64, minutes int, bestKm, worstKm float64) *PlanResult {
	res := &PlanResult{
		Order:              order,
		Legs:               make([]TravelLeg, len(order)),
		HasStartLeg:        t.hasStart,
		TotalDistanceKm:    dist,
		TotalTravelMinutes: minutes,
		BestDistanceKm:     bestKm,
		WorstDistanceKm:    worstKm,
	}

	if t.hasStart {
		res.Legs[0] = t.startLegs[order[0]]
	}
	for i := 1; i < len(order); i++ {
		res.Legs[i] = t.matrix[order[i-1]][order[i]]
	}
	return res
}

// forEachPermutation visits all permutations of 0..n-1 in lexicographic
// order.
func forEachPermutation(n int, fn func(perm []int)) {
	perm := make([]int, 0, n)
	used := make([]bool, n)

	var rec func()
	rec = func() {
		if len(perm) == n {
			fn(perm)
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			perm = append(perm, i)
			rec()
			perm = perm[:len(perm)-1]
			used[i] = false
		}
	}
	rec()
}
