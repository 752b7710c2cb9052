package ai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"

	"github.com/stella-ai/edison/internal/config"
	"github.com/stella-ai/edison/internal/model/chat"
)

// historyLimit caps how many prior turns are replayed to the provider.
const historyLimit = 10

// fallbackReply is returned whenever the provider call fails. Failures stay
// in-band so the HTTP layer never surfaces them as errors.
const fallbackReply = "Sorry, I ran into a problem generating a response. Please try again."

const systemPrompt = "You are Edison, a helpful AI assistant. Stella is unavailable right now, so you are handling all queries. Answer concisely and helpfully."

// Service delegates reply generation to the OpenAI chat completion API.
type Service struct {
	client openai.Client
	cfg    config.AIConfig
}

// NewService builds a Service from provider configuration.
func NewService(cfg config.AIConfig) *Service {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Service{
		client: openai.NewClient(opts...),
		cfg:    cfg,
	}
}

// Reply replays the most recent history plus the user message to the
// provider and returns the top completion choice's content.
func (s *Service) Reply(ctx context.Context, history []chat.Message, userMessage string) string {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(systemPrompt))

	startIdx := 0
	if len(history) > historyLimit {
		startIdx = len(history) - historyLimit
	}
	for _, msg := range history[startIdx:] {
		switch msg.Role {
		case chat.RoleUser:
			messages = append(messages, openai.UserMessage(msg.Content))
		case chat.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(userMessage))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(s.cfg.Model),
		Messages: messages,
	}
	if s.cfg.Temperature != nil {
		params.Temperature = openai.Float(*s.cfg.Temperature)
	}
	if s.cfg.MaxTokens != nil {
		params.MaxTokens = openai.Int(int64(*s.cfg.MaxTokens))
	}

	completion, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("chat completion request failed")
		return fallbackReply
	}
	if len(completion.Choices) == 0 {
		log.Error().Msg("chat completion returned no choices")
		return fallbackReply
	}

	reply := completion.Choices[0].Message.Content
	log.Debug().Int("history", len(history)).Int("length", len(reply)).Msg("generated reply")
	return reply
}
