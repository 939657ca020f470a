package utils

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestRuleBasedClassifierCategories(t *testing.T) {
	classifier := NewRuleBasedClassifier()

	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "korean cafe post",
			content: "성수동 카페 추천\n분위기 좋은 커피와 디저트 #성수카페",
			want:    "cafe",
		},
		{
			name:    "restaurant post",
			content: "강남 맛집 리스트\n점심 메뉴가 훌륭한 식당",
			want:    "restaurant",
		},
		{
			name:    "english bar post",
			content: "Best cocktail bar in Itaewon, great wine list",
			want:    "bar",
		},
		{
			name:    "attraction post",
			content: "주말 나들이 명소, 전시도 보고 공원 산책도",
			want:    "attraction",
		},
		{
			name:    "no keyword falls to etc",
			content: "그냥 일상 이야기",
			want:    "etc",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := classifier.ClassifyContent(context.Background(), "instagram", tc.content)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Category != tc.want {
				t.Fatalf("category %q, want %q", got.Category, tc.want)
			}
		})
	}
}

func TestRuleBasedClassifierHashtagsAndName(t *testing.T) {
	classifier := NewRuleBasedClassifier()

	result, err := classifier.ClassifyContent(context.Background(), "instagram",
		"어니언 성수\n#성수카페 #베이커리 #주말데이트")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Name != "어니언 성수" {
		t.Fatalf("name %q", result.Name)
	}
	wantTags := []string{"성수카페", "베이커리", "주말데이트"}
	if !reflect.DeepEqual(result.Tags, wantTags) {
		t.Fatalf("tags %v, want %v", result.Tags, wantTags)
	}
	if result.Confidence >= 0.5 {
		t.Fatalf("rule-based confidence should stay low, got %f", result.Confidence)
	}
}

func TestRuleBasedClassifierRejectsEmptyContent(t *testing.T) {
	classifier := NewRuleBasedClassifier()

	if _, err := classifier.ClassifyContent(context.Background(), "link", "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTextToVectorDeterministic(t *testing.T) {
	a := TextToVector("성수동 카페 추천").Slice()
	b := TextToVector("성수동 카페 추천").Slice()
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same text produced different vectors")
	}
	if len(a) != EmbeddingDimensions {
		t.Fatalf("expected %d dimensions, got %d", EmbeddingDimensions, len(a))
	}

	var norm float64
	for _, v := range a {
		norm += float64(v) * float64(v)
	}
	if math.Abs(norm-1.0) > 1e-5 {
		t.Fatalf("expected unit norm, got %f", math.Sqrt(norm))
	}
}

func TestLLMClassifierConstructorsRejectEmptyKey(t *testing.T) {
	if _, err := NewOpenAIClassifier("", ""); err == nil {
		t.Fatal("expected error for empty OpenAI key")
	}
	if _, err := NewGeminiClassifier("", ""); err == nil {
		t.Fatal("expected error for empty Gemini key")
	}
}

func TestTextToVectorEmptyText(t *testing.T) {
	v := TextToVector("").Slice()
	for i, x := range v {
		if x != 0 {
			t.Fatalf("expected zero vector for empty text, non-zero at %d", i)
		}
	}
}
