package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClassifier extracts place information from social-post text using
// chat completions, and produces real embeddings for similarity search.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
}

func NewOpenAIClassifier(apiKey, model string) (PlaceClassifierInterface, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is empty")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClassifier{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (c *OpenAIClassifier) ClassifyContent(ctx context.Context, sourceType string, content string) (*LinkClassification, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidInput
	}

	prompt := fmt.Sprintf(`You are extracting a single place (restaurant, cafe, bar, attraction, shopping, etc) from a %s post.
Return JSON only with exactly these keys:
{"name":"string","category":"restaurant|cafe|bar|attraction|shopping|etc","address":"string or empty","tags":["up to 5 short tags"],"confidence":0.0}

Post content:
%s`, sourceType, content)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai classify: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai classify: no choices returned")
	}

	var out LinkClassification
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &out); err != nil {
		return nil, fmt.Errorf("openai classify decode: %w", err)
	}
	return &out, nil
}

func (c *OpenAIClassifier) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("openai embedding: empty response")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}
