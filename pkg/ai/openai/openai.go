package openai

import (
	"sync"

	"github.com/luppa-project/luppa/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ExtractionOpenAIClient talks to an OpenAI-compatible chat completion API.
// It implements ai.ExtractionAIClient.
//
// An ExtractionOpenAIClient should be created using NewExtractionOpenAIClient.
type ExtractionOpenAIClient struct {
	extractionModel string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewExtractionOpenAIClientParams defines the configuration for creating a
// new ExtractionOpenAIClient.
//
// ExtractionModel is the model used when a call does not override it.
// ChatURL and ChatKey configure the chat/completion API endpoint; an empty
// ChatURL means the default OpenAI endpoint.
type NewExtractionOpenAIClientParams struct {
	ExtractionModel string

	ChatURL string
	ChatKey string
}

// NewExtractionOpenAIClient creates a client configured with the provided
// parameters.
//
// Example:
//
//	params := openai.NewExtractionOpenAIClientParams{
//		ExtractionModel: "gpt-4o-mini",
//		ChatKey:         os.Getenv("OPENAI_API_KEY"),
//	}
//	client := openai.NewExtractionOpenAIClient(params)
func NewExtractionOpenAIClient(
	params NewExtractionOpenAIClientParams,
) *ExtractionOpenAIClient {
	return &ExtractionOpenAIClient{
		extractionModel: params.ExtractionModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey),
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
