package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"corso/internal/models/db_models"
	"corso/internal/models/request_models"
	"corso/internal/models/response_models"
	"corso/internal/repositories"
	"corso/pkg/utils"
)

type CourseServiceInterface interface {
	GenerateCourse(ctx context.Context, userID string, req request_models.GenerateCourseRequest) (*response_models.Course, error)
	ScoreCourse(ctx context.Context, req request_models.ScoreCourseRequest) (*response_models.CourseScore, error)
	SaveCourse(ctx context.Context, userID string, req request_models.SaveCourseRequest) (*response_models.SavedCourseResponse, error)
	ListSavedCourses(ctx context.Context, userID string, page, pageSize int) ([]response_models.SavedCourseSummary, error)
	GetSavedCourse(ctx context.Context, userID, courseID string) (*response_models.Course, error)
	DeleteSavedCourse(ctx context.Context, userID, courseID string) error
}

// CourseService orchestrates the whole pipeline: validate the request,
// resolve places, plan the sequence, schedule arrivals, score, and assemble
// the response. Generation never persists anything; saving is its own
// operation over an already computed course.
type CourseService struct {
	placeRepo  repositories.PlaceRepository
	courseRepo repositories.CourseRepository
	planner    *SequencePlanner
}

func NewCourseService(
	placeRepo repositories.PlaceRepository,
	courseRepo repositories.CourseRepository,
	planner *SequencePlanner,
) CourseServiceInterface {
	return &CourseService{
		placeRepo:  placeRepo,
		courseRepo: courseRepo,
		planner:    planner,
	}
}

func (s *CourseService) GenerateCourse(ctx context.Context, userID string, req request_models.GenerateCourseRequest) (*response_models.Course, error) {
	if err := validateCandidateSet(req.PlaceIDs); err != nil {
		return nil, err
	}
	mode, err := ParseTransportMode(req.TransportMode)
	if err != nil {
		return nil, err
	}
	start, err := parseStartPoint(req.StartLatitude, req.StartLongitude)
	if err != nil {
		return nil, err
	}

	startMinutes := -1
	if req.StartTime != "" {
		startMinutes, err = utils.ParseClock(req.StartTime)
		if err != nil {
			return nil, err
		}
	}

	places, err := s.resolvePlaces(ctx, req.PlaceIDs)
	if err != nil {
		return nil, err
	}

	result, err := s.planner.Plan(ctx, places, start, mode)
	if err != nil {
		return nil, err
	}

	// Arrival times need both a start time and a start point; with either
	// missing the course carries no schedule at all.
	var arrivals []int
	if startMinutes >= 0 && start != nil {
		arrivals = BuildSchedule(startMinutes, result.Legs, staysInOrder(places, result.Order))
	}

	score := OptimizationScore(result.TotalDistanceKm, result.BestDistanceKm, result.WorstDistanceKm)

	return s.assembleCourse(userID, places, mode, result, arrivals, score), nil
}

func (s *CourseService) ScoreCourse(ctx context.Context, req request_models.ScoreCourseRequest) (*response_models.CourseScore, error) {
	if err := validateCandidateSet(req.PlaceIDs); err != nil {
		return nil, err
	}
	mode, err := ParseTransportMode(req.TransportMode)
	if err != nil {
		return nil, err
	}
	start, err := parseStartPoint(req.StartLatitude, req.StartLongitude)
	if err != nil {
		return nil, err
	}

	// Submitted order is the sequence being scored, so resolution keeps it.
	places, err := s.resolvePlaces(ctx, req.PlaceIDs)
	if err != nil {
		return nil, err
	}

	result, err := s.planner.EvaluateOrder(ctx, places, start, mode)
	if err != nil {
		return nil, err
	}

	score := OptimizationScore(result.TotalDistanceKm, result.BestDistanceKm, result.WorstDistanceKm)
	totalMinutes := result.TotalTravelMinutes
	for _, p := range places {
		totalMinutes += p.StayMinutes
	}

	return &response_models.CourseScore{
		TotalDistanceKm:      result.TotalDistanceKm,
		TotalDurationMinutes: totalMinutes,
		OptimizationScore:    score,
		BestDistanceKm:       result.BestDistanceKm,
		WorstDistanceKm:      result.WorstDistanceKm,
		TransportMode:        string(mode),
	}, nil
}

func (s *CourseService) SaveCourse(ctx context.Context, userID string, req request_models.SaveCourseRequest) (*response_models.SavedCourseResponse, error) {
	if req.Name == "" || len(req.Course.Stops) == 0 {
		return nil, utils.ErrInvalidInput
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	course := &db_models.SavedCourse{
		UserID:               userUUID,
		Name:                 req.Name,
		Description:          req.Description,
		TransportMode:        req.Course.TransportMode,
		TotalDistanceKm:      req.Course.TotalDistanceKm,
		TotalDurationMinutes: req.Course.TotalDurationMinutes,
		OptimizationScore:    req.Course.OptimizationScore,
	}
	for _, stop := range req.Course.Stops {
		placeUUID, err := uuid.Parse(stop.PlaceID)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}
		course.Stops = append(course.Stops, db_models.SavedCourseStop{
			PlaceID:               placeUUID,
			Position:              stop.Position,
			TravelDistanceKm:      stop.TravelDistanceKm,
			TravelDurationMinutes: stop.TravelDurationMinutes,
			StayMinutes:           stop.StayMinutes,
			ArrivalTime:           stop.ArrivalTime,
		})
	}

	courseID, err := s.courseRepo.SaveCourse(ctx, course)
	if err != nil {
		log.Printf("Error saving course: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.SavedCourseResponse{
		CourseID:   courseID.String(),
		CourseName: req.Name,
		IsSaved:    true,
		SavedAt:    utils.FormatRFC3339KST(time.Now()),
	}, nil
}

func (s *CourseService) ListSavedCourses(ctx context.Context, userID string, page, pageSize int) ([]response_models.SavedCourseSummary, error) {
	courses, err := s.courseRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		log.Printf("Error listing courses: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.SavedCourseSummary, 0, len(courses))
	for _, course := range courses {
		out = append(out, response_models.SavedCourseSummary{
			CourseID:             course.ID.String(),
			Name:                 course.Name,
			Description:          course.Description,
			TransportMode:        course.TransportMode,
			StopCount:            len(course.Stops),
			TotalDistanceKm:      course.TotalDistanceKm,
			TotalDurationMinutes: course.TotalDurationMinutes,
			SavedAt:              utils.FormatRFC3339KST(utils.FromUnixSecondsKST(course.CreatedAt)),
		})
	}
	return out, nil
}

func (s *CourseService) GetSavedCourse(ctx context.Context, userID, courseID string) (*response_models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, userID, courseID)
	if err != nil {
		log.Printf("Error fetching course: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if course == nil {
		return nil, utils.ErrCourseNotFound
	}

	stops := make([]response_models.CourseStop, 0, len(course.Stops))
	for _, stop := range course.Stops {
		rs := response_models.CourseStop{
			PlaceID:                  stop.PlaceID.String(),
			PlaceName:                stop.Place.Name,
			Category:                 stop.Place.Category,
			Address:                  stop.Place.Address,
			Latitude:                 stop.Place.Latitude,
			Longitude:                stop.Place.Longitude,
			Position:                 stop.Position,
			EstimatedDurationMinutes: stop.StayMinutes,
			ArrivalTime:              stop.ArrivalTime,
		}
		if stop.Position > 0 || stop.TravelDurationMinutes > 0 {
			distance := stop.TravelDistanceKm
			duration := stop.TravelDurationMinutes
			rs.TravelDistanceKm = &distance
			rs.TravelDurationMinutes = &duration
		}
		stops = append(stops, rs)
	}

	return &response_models.Course{
		CourseID:             course.ID.String(),
		UserID:               course.UserID.String(),
		Stops:                stops,
		TotalDistanceKm:      course.TotalDistanceKm,
		TotalDurationMinutes: course.TotalDurationMinutes,
		OptimizationScore:    course.OptimizationScore,
		TransportMode:        course.TransportMode,
		CreatedAt:            utils.FormatRFC3339KST(utils.FromUnixSecondsKST(course.CreatedAt)),
	}, nil
}

func (s *CourseService) DeleteSavedCourse(ctx context.Context, userID, courseID string) error {
	courseUUID, err := uuid.Parse(courseID)
	if err != nil {
		return utils.ErrInvalidInput
	}
	if err := s.courseRepo.Delete(ctx, userID, courseUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrCourseNotFound
		}
		log.Printf("Error deleting course: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func validateCandidateSet(ids []string) error {
	if len(ids) < MinCoursePlaces || len(ids) > MaxCoursePlaces {
		return utils.ErrInvalidPlaceCount
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return utils.ErrDuplicatePlaceID
		}
		seen[id] = struct{}{}
	}
	return nil
}

// parseStartPoint requires latitude and longitude together; a lone half of a
// coordinate is malformed.
func parseStartPoint(lat, lng *float64) (*GeoPoint, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, utils.ErrInvalidCoordinate
	}
	p := GeoPoint{Lat: *lat, Lng: *lng}
	if !p.Valid() {
		return nil, utils.ErrInvalidCoordinate
	}
	return &p, nil
}

// resolvePlaces maps request ids to records, preserving request order; any
// unresolved id fails the whole request.
func (s *CourseService) resolvePlaces(ctx context.Context, ids []string) ([]PlanPlace, error) {
	records, err := s.placeRepo.GetByIDs(ctx, ids)
	if err != nil {
		log.Printf("Error resolving places: %v", err)
		return nil, utils.ErrDatabaseError
	}

	byID := make(map[string]db_models.Place, len(records))
	for _, rec := range records {
		byID[rec.ID.String()] = rec
	}

	places := make([]PlanPlace, 0, len(ids))
	for _, id := range ids {
		rec, ok := byID[id]
		if !ok {
			return nil, utils.ErrPlaceNotFound
		}
		stay := rec.StayMinutes
		if stay <= 0 {
			stay = DefaultStayMinutes
		}
		places = append(places, PlanPlace{
			ID:          id,
			Name:        rec.Name,
			Category:    rec.Category,
			Address:     rec.Address,
			Point:       GeoPoint{Lat: rec.Latitude, Lng: rec.Longitude},
			StayMinutes: stay,
		})
	}
	return places, nil
}

func staysInOrder(places []PlanPlace, order []int) []int {
	stays := make([]int, len(order))
	for i, idx := range order {
		stays[i] = places[idx].StayMinutes
	}
	return stays
}

func (s *CourseService) assembleCourse(
	userID string,
	places []PlanPlace,
	mode TransportMode,
	result *PlanResult,
	arrivals []int,
	score float64,
) *response_models.Course {

	stops := make([]response_models.CourseStop, 0, len(result.Order))
	totalMinutes := result.TotalTravelMinutes

	for pos, idx := range result.Order {
		place := places[idx]
		totalMinutes += place.StayMinutes

		stop := response_models.CourseStop{
			PlaceID:                  place.ID,
			PlaceName:                place.Name,
			Category:                 place.Category,
			Address:                  place.Address,
			Latitude:                 place.Point.Lat,
			Longitude:                place.Point.Lng,
			Position:                 pos,
			EstimatedDurationMinutes: place.StayMinutes,
		}
		if pos > 0 || result.HasStartLeg {
			leg := result.Legs[pos]
			distance := leg.DistanceKm
			duration := leg.DurationMinutes
			stop.TravelDistanceKm = &distance
			stop.TravelDurationMinutes = &duration
		}
		if arrivals != nil {
			stop.ArrivalTime = utils.FormatClock(arrivals[pos])
		}
		stops = append(stops, stop)
	}

	return &response_models.Course{
		CourseID:             uuid.New().String(),
		UserID:               userID,
		Stops:                stops,
		TotalDistanceKm:      result.TotalDistanceKm,
		TotalDurationMinutes: totalMinutes,
		OptimizationScore:    score,
		TransportMode:        string(mode),
		CreatedAt:            utils.FormatRFC3339KST(time.Now()),
	}
}
