package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"
)

// GeminiClassifier implements PlaceClassifierInterface using Google's Gemini
// models (free tier friendly). Embeddings fall back to the hash-based vector
// since the free tier has no dedicated embedding endpoint.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

func NewGeminiClassifier(apiKey, model string) (PlaceClassifierInterface, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClassifier{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClassifier) ClassifyContent(ctx context.Context, sourceType string, content string) (*LinkClassification, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidInput
	}

	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output so no brace-matching cleanup is needed.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)

	prompt := fmt.Sprintf(`Extract the single place this %s post is about. Return **JSON only**, keys exactly:
{"name":"string","category":"restaurant|cafe|bar|attraction|shopping|etc","address":"string or empty","tags":["up to 5 short tags"],"confidence":0.0}

Post content:
%s`, sourceType, content)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini: no content")
	}

	raw := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	var out LinkClassification
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("gemini decode: %w", err)
	}
	return &out, nil
}

func (c *GeminiClassifier) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return TextToVector(text), nil
}
