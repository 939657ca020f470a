package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"corso/internal/models/db_models"
	"corso/internal/models/request_models"
	"corso/pkg/utils"
)

type mockEmbeddingRepo struct {
	upserts []db_models.PlaceEmbedding
	err     error
}

func (m *mockEmbeddingRepo) Upsert(ctx context.Context, embedding db_models.PlaceEmbedding) error {
	if m.err != nil {
		return m.err
	}
	m.upserts = append(m.upserts, embedding)
	return nil
}

func (m *mockEmbeddingRepo) GetByPlaceID(ctx context.Context, placeID string) (*db_models.PlaceEmbedding, error) {
	for i := range m.upserts {
		if m.upserts[i].PlaceID == placeID {
			return &m.upserts[i], nil
		}
	}
	return nil, nil
}

func (m *mockEmbeddingRepo) ListNearestByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.PlaceEmbedding, error) {
	if limit > len(m.upserts) {
		limit = len(m.upserts)
	}
	return m.upserts[:limit], nil
}

// failingClassifier simulates an unreachable LLM provider.
type failingClassifier struct{}

func (f *failingClassifier) ClassifyContent(ctx context.Context, sourceType, content string) (*utils.LinkClassification, error) {
	return nil, errors.New("provider unavailable")
}

func (f *failingClassifier) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return pgvector.Vector{}, errors.New("provider unavailable")
}

func TestDetectSourceType(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.instagram.com/p/Cxyz123/", "instagram"},
		{"https://instagram.com/reel/abc", "instagram"},
		{"https://www.youtube.com/watch?v=abc", "youtube"},
		{"https://youtu.be/abc", "youtube"},
		{"https://blog.naver.com/someone/223", "naver_blog"},
		{"https://naver.me/xyz", "naver_blog"},
		{"https://example.com/post/1", "link"},
		{"not a url", "link"},
	}

	for _, tc := range cases {
		if got := DetectSourceType(tc.url); got != tc.want {
			t.Errorf("DetectSourceType(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestAnalyzeLinkWithRuleBasedClassifier(t *testing.T) {
	placeRepo := &mockPlaceRepo{places: map[string]db_models.Place{}}
	embeddingRepo := &mockEmbeddingRepo{}
	svc := NewAnalyzerService(placeRepo, embeddingRepo, utils.NewRuleBasedClassifier())

	resp, err := svc.AnalyzeLink(context.Background(), uuid.New().String(), request_models.AnalyzeLinkRequest{
		URL:     "https://www.instagram.com/p/Cxyz123/",
		Content: "어니언 성수\n분위기 좋은 카페 #성수카페 #베이커리",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Name != "어니언 성수" {
		t.Fatalf("name %q", resp.Name)
	}
	if resp.Category != "cafe" {
		t.Fatalf("category %q", resp.Category)
	}
	if resp.SourceType != "instagram" {
		t.Fatalf("source type %q", resp.SourceType)
	}
	// Cafe category maps to a 60 minute default stay.
	if resp.StayMinutes != 60 {
		t.Fatalf("stay minutes %d", resp.StayMinutes)
	}

	if len(placeRepo.places) != 1 {
		t.Fatalf("expected one place saved, got %d", len(placeRepo.places))
	}
	if len(placeRepo.tagCalls[resp.ID]) != 2 {
		t.Fatalf("expected 2 tags attached, got %v", placeRepo.tagCalls[resp.ID])
	}
	if len(embeddingRepo.upserts) != 1 {
		t.Fatalf("expected one embedding upsert, got %d", len(embeddingRepo.upserts))
	}
}

func TestAnalyzeLinkFallsBackWhenLLMFails(t *testing.T) {
	placeRepo := &mockPlaceRepo{places: map[string]db_models.Place{}}
	embeddingRepo := &mockEmbeddingRepo{}
	svc := NewAnalyzerService(placeRepo, embeddingRepo, &failingClassifier{})

	resp, err := svc.AnalyzeLink(context.Background(), uuid.New().String(), request_models.AnalyzeLinkRequest{
		URL:     "https://blog.naver.com/food/223",
		Content: "을지로 맛집\n점심에 가기 좋은 식당",
	})
	if err != nil {
		t.Fatalf("fallback should have rescued the analysis, got %v", err)
	}

	if resp.Category != "restaurant" {
		t.Fatalf("category %q", resp.Category)
	}
	// Restaurant category maps to a 90 minute stay.
	if resp.StayMinutes != 90 {
		t.Fatalf("stay minutes %d", resp.StayMinutes)
	}
	// Embedding provider also failed, so the hash fallback must fill in.
	if len(embeddingRepo.upserts) != 1 {
		t.Fatalf("expected one embedding upsert, got %d", len(embeddingRepo.upserts))
	}
}

func TestAnalyzeLinkEmbeddingFailureIsNotFatal(t *testing.T) {
	placeRepo := &mockPlaceRepo{places: map[string]db_models.Place{}}
	embeddingRepo := &mockEmbeddingRepo{err: errors.New("pgvector down")}
	svc := NewAnalyzerService(placeRepo, embeddingRepo, utils.NewRuleBasedClassifier())

	if _, err := svc.AnalyzeLink(context.Background(), uuid.New().String(), request_models.AnalyzeLinkRequest{
		URL:     "https://example.com/post",
		Content: "소품샵 구경하기 좋은 곳 #쇼핑",
	}); err != nil {
		t.Fatalf("embedding failure must not fail the analysis: %v", err)
	}
}

func TestAnalyzeLinkRejectsBadUserID(t *testing.T) {
	placeRepo := &mockPlaceRepo{places: map[string]db_models.Place{}}
	svc := NewAnalyzerService(placeRepo, &mockEmbeddingRepo{}, utils.NewRuleBasedClassifier())

	_, err := svc.AnalyzeLink(context.Background(), "not-a-uuid", request_models.AnalyzeLinkRequest{
		URL:     "https://example.com",
		Content: "text",
	})
	if !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
