package summary

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// OpenAI вернул ответ без вариантов
var ErrEmptyResponse = errors.New("invalid response format from OpenAI")

type Config struct {
	APIKey string
	// Пустой - api.openai.com
	BaseURL string
	Model   string
	// 0 - без ограничений
	RequestsPerMinute int
}

// Общий клиент для анализа и перевода
type chat struct {
	client  *openai.Client
	model   string
	enabled bool
	limiter *rate.Limiter
}

func newChat(cfg Config) *chat {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	return &chat{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		enabled: cfg.APIKey != "",
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (c *chat) complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	// Берем первый вариант из тех, что прислал openai
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Ответ, обрезанный по max_tokens, заканчиваем на последнем целом предложении
func trimToSentence(text string) string {
	if strings.HasSuffix(text, ".") || !strings.Contains(text, ".") {
		return text
	}

	sentences := strings.Split(text, ".")
	return strings.Join(sentences[:len(sentences)-1], ".") + "."
}
