package completion

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const DefaultModel = openai.GPT3Dot5TurboInstruct

type OpenAiGenerator struct {
	model  string
	client *openai.Client
}

var _ Generator = (*OpenAiGenerator)(nil)

func NewOpenAiGenerator(apiKey string, model string) *OpenAiGenerator {
	return NewOpenAiGeneratorWithConfig(apiKey, model, "")
}

// NewOpenAiGeneratorWithConfig points the client at baseUrl when it is not empty.
func NewOpenAiGeneratorWithConfig(apiKey string, model string, baseUrl string) *OpenAiGenerator {
	config := openai.DefaultConfig(apiKey)
	if baseUrl != "" {
		config.BaseURL = baseUrl
	}
	if model == "" {
		model = DefaultModel
	}

	return &OpenAiGenerator{
		model:  model,
		client: openai.NewClientWithConfig(config),
	}
}

func (g *OpenAiGenerator) Model() string {
	return g.model
}

func (g *OpenAiGenerator) Complete(ctx context.Context, req Request) ([]string, error) {
	resp, err := g.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       g.model,
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		N:           req.N,
		Stop:        req.Stop,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no completion choices returned")
	}

	texts := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		texts = append(texts, choice.Text)
	}

	return texts, nil
}
