package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"corso/internal/models/db_models"
	"corso/internal/models/request_models"
	"corso/pkg/utils"
)

type mockPlaceRepo struct {
	places   map[string]db_models.Place
	tagCalls map[string][]string
	err      error
}

func (m *mockPlaceRepo) CreatePlace(ctx context.Context, place *db_models.Place) (uuid.UUID, error) {
	if m.err != nil {
		return uuid.Nil, m.err
	}
	if place.ID == uuid.Nil {
		place.ID = uuid.New()
	}
	m.places[place.ID.String()] = *place
	return place.ID, nil
}

func (m *mockPlaceRepo) UpdatePlace(ctx context.Context, place *db_models.Place) error {
	if _, ok := m.places[place.ID.String()]; !ok {
		return errors.New("no such place")
	}
	m.places[place.ID.String()] = *place
	return nil
}

func (m *mockPlaceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.places, id.String())
	return nil
}

func (m *mockPlaceRepo) GetByID(ctx context.Context, id string) (*db_models.Place, error) {
	if p, ok := m.places[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *mockPlaceRepo) GetByIDs(ctx context.Context, ids []string) ([]db_models.Place, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []db_models.Place
	for _, id := range ids {
		if p, ok := m.places[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPlaceRepo) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]db_models.Place, error) {
	return nil, errors.New("not implemented")
}

func (m *mockPlaceRepo) AttachTags(ctx context.Context, place *db_models.Place, names []string) error {
	if m.tagCalls == nil {
		m.tagCalls = map[string][]string{}
	}
	m.tagCalls[place.ID.String()] = append(m.tagCalls[place.ID.String()], names...)
	return nil
}

type mockCourseRepo struct {
	saved  *db_models.SavedCourse
	stored *db_models.SavedCourse
	err    error
}

func (m *mockCourseRepo) SaveCourse(ctx context.Context, course *db_models.SavedCourse) (uuid.UUID, error) {
	if m.err != nil {
		return uuid.Nil, m.err
	}
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	m.saved = course
	return course.ID, nil
}

func (m *mockCourseRepo) GetByID(ctx context.Context, userID, courseID string) (*db_models.SavedCourse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.stored == nil || m.stored.ID.String() != courseID {
		return nil, nil
	}
	return m.stored, nil
}

func (m *mockCourseRepo) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]db_models.SavedCourse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.stored == nil {
		return nil, nil
	}
	return []db_models.SavedCourse{*m.stored}, nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, userID string, courseID uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	// Mirrors the repository: ownership is verified before anything is
	// deleted, and a miss reports record-not-found.
	if m.stored == nil || m.stored.ID != courseID || m.stored.UserID.String() != userID {
		return gorm.ErrRecordNotFound
	}
	m.stored = nil
	return nil
}

func dbPlace(name string, lat, lng float64, stay int) db_models.Place {
	return db_models.Place{
		BaseModel:   db_models.BaseModel{ID: uuid.New()},
		Name:        name,
		Category:    "cafe",
		Address:     "Seoul",
		Latitude:    lat,
		Longitude:   lng,
		StayMinutes: stay,
	}
}

func newTestCourseService(places ...db_models.Place) (CourseServiceInterface, *mockCourseRepo, []string) {
	repo := &mockPlaceRepo{places: map[string]db_models.Place{}}
	ids := make([]string, len(places))
	for i, p := range places {
		repo.places[p.ID.String()] = p
		ids[i] = p.ID.String()
	}
	courseRepo := &mockCourseRepo{}
	svc := NewCourseService(repo, courseRepo, NewSequencePlanner(HaversineEstimator{}))
	return svc, courseRepo, ids
}

func TestGenerateCourseWalkingNoStart(t *testing.T) {
	svc, _, ids := newTestCourseService(
		dbPlace("A", 37.50, 127.02, 60),
		dbPlace("B", 37.51, 127.03, 60),
		dbPlace("C", 37.49, 127.01, 60),
	)

	course, err := svc.GenerateCourse(context.Background(), uuid.New().String(), request_models.GenerateCourseRequest{
		PlaceIDs:      ids,
		TransportMode: "walking",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(course.Stops) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(course.Stops))
	}
	if course.TransportMode != "walking" {
		t.Fatalf("expected walking, got %q", course.TransportMode)
	}

	first := course.Stops[0]
	if first.Position != 0 {
		t.Fatalf("first stop position %d", first.Position)
	}
	// No start point means the first stop carries no inbound travel.
	if first.TravelDistanceKm != nil || first.TravelDurationMinutes != nil {
		t.Fatal("first stop should have no travel fields without a start point")
	}
	if first.ArrivalTime != "" {
		t.Fatal("no arrival times expected without a start time")
	}

	for i, stop := range course.Stops[1:] {
		if stop.TravelDistanceKm == nil || stop.TravelDurationMinutes == nil {
			t.Fatalf("stop %d missing travel fields", i+1)
		}
		if *stop.TravelDurationMinutes < 1 {
			t.Fatalf("stop %d travel duration below 1 minute", i+1)
		}
	}

	if course.OptimizationScore != 1.0 {
		t.Fatalf("planned course should score 1.0, got %f", course.OptimizationScore)
	}
}

func TestGenerateCourseTotalsAreAdditive(t *testing.T) {
	svc, _, ids := newTestCourseService(
		dbPlace("A", 37.50, 127.02, 30),
		dbPlace("B", 37.51, 127.03, 45),
		dbPlace("C", 37.49, 127.01, 60),
		dbPlace("D", 37.52, 126.99, 90),
	)

	course, err := svc.GenerateCourse(context.Background(), uuid.New().String(), request_models.GenerateCourseRequest{
		PlaceIDs:      ids,
		TransportMode: "driving",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var travelKm float64
	var travelMin, stayMin int
	for _, stop := range course.Stops {
		if stop.TravelDistanceKm != nil {
			travelKm += *stop.TravelDistanceKm
		}
		if stop.TravelDurationMinutes != nil {
			travelMin += *stop.TravelDurationMinutes
		}
		stayMin += stop.EstimatedDurationMinutes
	}

	if math.Abs(travelKm-course.TotalDistanceKm) > 1e-9 {
		t.Fatalf("leg distances sum to %f, total says %f", travelKm, course.TotalDistanceKm)
	}
	if travelMin+stayMin != course.TotalDurationMinutes {
		t.Fatalf("travel %d + stays %d != total %d", travelMin, stayMin, course.TotalDurationMinutes)
	}
	if stayMin != 30+45+60+90 {
		t.Fatalf("stays not preserved, sum %d", stayMin)
	}
}

func TestGenerateCourseWithStartAndTime(t *testing.T) {
	svc, _, ids := newTestCourseService(
		dbPlace("A", 37.50, 127.02, 60),
		dbPlace("B", 37.51, 127.03, 60),
		dbPlace("C", 37.49, 127.01, 60),
	)

	lat, lng := 37.505, 127.025
	course, err := svc.GenerateCourse(context.Background(), uuid.New().String(), request_models.GenerateCourseRequest{
		PlaceIDs:       ids,
		StartLatitude:  &lat,
		StartLongitude: &lng,
		TransportMode:  "transit",
		StartTime:      "10:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With a start point even the first stop has an inbound leg.
	if course.Stops[0].TravelDurationMinutes == nil {
		t.Fatal("first stop should carry the leg from the start point")
	}

	prev := -1
	for i, stop := range course.Stops {
		if stop.ArrivalTime == "" {
			t.Fatalf("stop %d missing arrival time", i)
		}
		m, err := utils.ParseClock(stop.ArrivalTime)
		if err != nil {
			t.Fatalf("stop %d arrival %q unparsable: %v", i, stop.ArrivalTime, err)
		}
		if m <= prev {
			t.Fatalf("arrivals not increasing on the clock: %v then %q", prev, stop.ArrivalTime)
		}
		prev = m
	}
}

func TestGenerateCourseValidation(t *testing.T) {
	svc, _, ids := newTestCourseService(
		dbPlace("A", 37.50, 127.02, 60),
		dbPlace("B", 37.51, 127.03, 60),
		dbPlace("C", 37.49, 127.01, 60),
	)
	userID := uuid.New().String()

	cases := []struct {
		name string
		req  request_models.GenerateCourseRequest
		want error
	}{
		{
			name: "too few places",
			req:  request_models.GenerateCourseRequest{PlaceIDs: ids[:2]},
			want: utils.ErrInvalidPlaceCount,
		},
		{
			name: "too many places",
			req: request_models.GenerateCourseRequest{
				PlaceIDs: []string{"1", "2", "3", "4", "5", "6", "7"},
			},
			want: utils.ErrInvalidPlaceCount,
		},
		{
			name: "duplicate place",
			req:  request_models.GenerateCourseRequest{PlaceIDs: []string{ids[0], ids[1], ids[0]}},
			want: utils.ErrDuplicatePlaceID,
		},
		{
			name: "unknown transport mode",
			req:  request_models.GenerateCourseRequest{PlaceIDs: ids, TransportMode: "teleport"},
			want: utils.ErrUnknownTransportMode,
		},
		{
			name: "half a coordinate",
			req: request_models.GenerateCourseRequest{
				PlaceIDs:      ids,
				StartLatitude: float64Ptr(37.5),
			},
			want: utils.ErrInvalidCoordinate,
		},
		{
			name: "coordinate out of range",
			req: request_models.GenerateCourseRequest{
				PlaceIDs:       ids,
				StartLatitude:  float64Ptr(95.0),
				StartLongitude: float64Ptr(127.0),
			},
			want: utils.ErrInvalidCoordinate,
		},
		{
			name: "malformed start time",
			req:  request_models.GenerateCourseRequest{PlaceIDs: ids, StartTime: "25:99"},
			want: utils.ErrInvalidStartTime,
		},
		{
			name: "unknown place id",
			req:  request_models.GenerateCourseRequest{PlaceIDs: []string{ids[0], ids[1], uuid.New().String()}},
			want: utils.ErrPlaceNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.GenerateCourse(context.Background(), userID, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func float64Ptr(v float64) *float64 { return &v }

func TestScoreCourseSubmittedOrder(t *testing.T) {
	a := dbPlace("A", 37.50, 127.02, 60)
	b := dbPlace("B", 37.51, 127.03, 60)
	c := dbPlace("C", 37.49, 127.01, 60)
	d := dbPlace("D", 37.52, 126.99, 60)
	svc, _, ids := newTestCourseService(a, b, c, d)

	score, err := svc.ScoreCourse(context.Background(), request_models.ScoreCourseRequest{
		PlaceIDs:      ids,
		TransportMode: "walking",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score.OptimizationScore < 0 || score.OptimizationScore > 1 {
		t.Fatalf("score %f outside [0,1]", score.OptimizationScore)
	}
	if score.TotalDistanceKm < score.BestDistanceKm-1e-9 {
		t.Fatalf("submitted order beat the optimum: %f < %f", score.TotalDistanceKm, score.BestDistanceKm)
	}
	if score.TotalDistanceKm > score.WorstDistanceKm+1e-9 {
		t.Fatalf("submitted order above the worst bound: %f > %f", score.TotalDistanceKm, score.WorstDistanceKm)
	}
	if score.TransportMode != "walking" {
		t.Fatalf("expected walking, got %q", score.TransportMode)
	}
}

func TestSaveCourse(t *testing.T) {
	svc, courseRepo, _ := newTestCourseService()
	userID := uuid.New().String()

	req := request_models.SaveCourseRequest{
		Name:        "Gangnam afternoon",
		Description: "cafes and a walk",
		Course: request_models.SaveCoursePayload{
			TransportMode:        "walking",
			TotalDistanceKm:      4.2,
			TotalDurationMinutes: 235,
			OptimizationScore:    1.0,
			Stops: []request_models.SaveCourseStop{
				{PlaceID: uuid.New().String(), Position: 0, StayMinutes: 60},
				{PlaceID: uuid.New().String(), Position: 1, TravelDistanceKm: 2.1, TravelDurationMinutes: 28, StayMinutes: 60, ArrivalTime: "11:28"},
				{PlaceID: uuid.New().String(), Position: 2, TravelDistanceKm: 2.1, TravelDurationMinutes: 28, StayMinutes: 60, ArrivalTime: "12:56"},
			},
		},
	}

	resp, err := svc.SaveCourse(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSaved {
		t.Fatal("expected IsSaved")
	}
	if resp.CourseName != req.Name {
		t.Fatalf("expected name %q, got %q", req.Name, resp.CourseName)
	}
	if courseRepo.saved == nil {
		t.Fatal("nothing reached the repository")
	}
	if len(courseRepo.saved.Stops) != 3 {
		t.Fatalf("expected 3 persisted stops, got %d", len(courseRepo.saved.Stops))
	}
	if courseRepo.saved.UserID.String() != userID {
		t.Fatal("course not scoped to the calling user")
	}
}

func TestSaveCourseRejectsEmptyPayload(t *testing.T) {
	svc, _, _ := newTestCourseService()

	_, err := svc.SaveCourse(context.Background(), uuid.New().String(), request_models.SaveCourseRequest{
		Name: "empty",
	})
	if !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerateCourseDoesNotPersist(t *testing.T) {
	svc, courseRepo, ids := newTestCourseService(
		dbPlace("A", 37.50, 127.02, 60),
		dbPlace("B", 37.51, 127.03, 60),
		dbPlace("C", 37.49, 127.01, 60),
	)

	if _, err := svc.GenerateCourse(context.Background(), uuid.New().String(), request_models.GenerateCourseRequest{
		PlaceIDs: ids,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if courseRepo.saved != nil {
		t.Fatal("generation must not write courses")
	}
}

func TestDeleteSavedCourse(t *testing.T) {
	svc, courseRepo, _ := newTestCourseService()
	owner := uuid.New()
	courseID := uuid.New()
	courseRepo.stored = &db_models.SavedCourse{
		BaseModel: db_models.BaseModel{ID: courseID},
		UserID:    owner,
		Name:      "saved",
		Stops: []db_models.SavedCourseStop{
			{CourseID: courseID, Position: 0},
			{CourseID: courseID, Position: 1},
		},
	}

	if err := svc.DeleteSavedCourse(context.Background(), owner.String(), courseID.String()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if courseRepo.stored != nil {
		t.Fatal("course not deleted")
	}
}

func TestDeleteSavedCourseOtherUsersCourse(t *testing.T) {
	svc, courseRepo, _ := newTestCourseService()
	owner := uuid.New()
	courseID := uuid.New()
	courseRepo.stored = &db_models.SavedCourse{
		BaseModel: db_models.BaseModel{ID: courseID},
		UserID:    owner,
		Name:      "saved",
		Stops: []db_models.SavedCourseStop{
			{CourseID: courseID, Position: 0},
			{CourseID: courseID, Position: 1},
		},
	}

	err := svc.DeleteSavedCourse(context.Background(), uuid.New().String(), courseID.String())
	if !errors.Is(err, utils.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	// The course and its stops must survive a non-owner's delete untouched.
	if courseRepo.stored == nil || len(courseRepo.stored.Stops) != 2 {
		t.Fatal("non-owner delete modified the stored course")
	}
}

func TestGetSavedCourseNotFound(t *testing.T) {
	svc, _, _ := newTestCourseService()

	_, err := svc.GetSavedCourse(context.Background(), uuid.New().String(), uuid.New().String())
	if !errors.Is(err, utils.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}
