package utils

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/pgvector/pgvector-go"
)

// LinkClassification is what the analyzer extracts from a social post:
// the place the post is about, plus coarse tags for preference matching.
type LinkClassification struct {
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Address    string   `json:"address"`
	Tags       []string `json:"tags"`
	Confidence float64  `json:"confidence"`
}

// PlaceClassifierInterface is implemented per provider (OpenAI, Gemini)
// plus a rule-based fallback that needs no network.
type PlaceClassifierInterface interface {
	ClassifyContent(ctx context.Context, sourceType string, content string) (*LinkClassification, error)
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

const EmbeddingDimensions = 1536

var hashtagPattern = regexp.MustCompile(`#([^\s#@]+)`)

var categoryKeywords = map[string][]string{
	"restaurant": {"맛집", "식당", "restaurant", "dining", "menu", "점심", "저녁"},
	"cafe":       {"카페", "cafe", "coffee", "커피", "디저트", "dessert", "브런치"},
	"bar":        {"술집", "bar", "pub", "와인", "칵테일", "맥주"},
	"attraction": {"관광", "명소", "전시", "museum", "gallery", "공원", "park"},
	"shopping":   {"쇼핑", "편집샵", "소품샵", "store", "shop", "마켓"},
}

// RuleBasedClassifier is the no-network fallback: hashtags become tags and
// the category is picked by keyword counting. Confidence is kept low so
// callers can tell it apart from an LLM answer.
type RuleBasedClassifier struct{}

func NewRuleBasedClassifier() PlaceClassifierInterface {
	return &RuleBasedClassifier{}
}

func (r *RuleBasedClassifier) ClassifyContent(ctx context.Context, sourceType string, content string) (*LinkClassification, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidInput
	}

	lowered := strings.ToLower(content)

	bestCategory := "etc"
	bestHits := 0
	for category, keywords := range categoryKeywords {
		hits := 0
		for _, kw := range keywords {
			hits += strings.Count(lowered, kw)
		}
		if hits > bestHits || (hits == bestHits && hits > 0 && category < bestCategory) {
			bestHits = hits
			bestCategory = category
		}
	}

	tags := []string{}
	for _, m := range hashtagPattern.FindAllStringSubmatch(content, 10) {
		tags = append(tags, m[1])
	}

	name := strings.TrimSpace(strings.SplitN(content, "\n", 2)[0])
	if len([]rune(name)) > 50 {
		name = string([]rune(name)[:50])
	}

	return &LinkClassification{
		Name:       name,
		Category:   bestCategory,
		Tags:       tags,
		Confidence: 0.3,
	}, nil
}

func (r *RuleBasedClassifier) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return TextToVector(text), nil
}

// TextToVector builds a deterministic hash-based embedding. It is only a
// stand-in for a real embedding model but keeps similarity lookups working
// when no LLM provider is configured.
func TextToVector(text string) pgvector.Vector {
	values := make([]float32, EmbeddingDimensions)

	words := strings.Fields(strings.ToLower(text))
	for _, word := range words {
		h := fnv.New32a()
		h.Write([]byte(word))
		idx := int(h.Sum32()) % EmbeddingDimensions
		if idx < 0 {
			idx += EmbeddingDimensions
		}
		values[idx] += 1.0
	}

	var norm float64
	for _, v := range values {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range values {
			values[i] = float32(float64(values[i]) / norm)
		}
	}

	return pgvector.NewVector(values)
}
