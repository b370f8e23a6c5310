package chatsvc

import (
	"context"

	"github.com/shopmate/support-chat/internal/ai"
	"github.com/shopmate/support-chat/internal/bot"
)

// assistantAdapter bridges the routing layer's assistant interface to
// the provider-backed implementation, converting message types.
type assistantAdapter struct {
	a *ai.Assistant
}

// NewAssistant wraps an ai.Assistant for use by the turn router.
func NewAssistant(a *ai.Assistant) bot.Assistant {
	return assistantAdapter{a: a}
}

func toProviderMessages(history []bot.Message) []ai.Message {
	out := make([]ai.Message, 0, len(history))
	for _, m := range history {
		out = append(out, ai.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func (ad assistantAdapter) Generate(ctx context.Context, prompt string, history []bot.Message) (string, error) {
	return ad.a.Generate(ctx, prompt, toProviderMessages(history))
}

func (ad assistantAdapter) ClassifyIntent(ctx context.Context, text string, candidates []string, history []bot.Message) (string, error) {
	return ad.a.ClassifyIntent(ctx, text, candidates, toProviderMessages(history))
}
