package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// SystemPrompt frames every model call. It is sent as the first
// message of each request rather than stored with the session.
const SystemPrompt = `You are a helpful customer service assistant for an e-commerce platform. Your role is to assist customers with:

1. Checking order status
2. Explaining return policies
3. Answering common questions about shipping, products, and account management
4. Directing customers to human representatives when necessary

Be concise, friendly, and helpful. If you don't know the answer to a specific question, don't make up information - instead, offer to connect the customer with a human representative.

When discussing return policies, use the following general guidelines:
- Most items can be returned within 30 days
- Electronics have a 14-day return window
- Clothing can be returned within 45 days
- Perishable items must be reported within 3 days of receipt if damaged

For order status inquiries, explain what each status means and provide relevant next steps.

IMPORTANT: When checking order status, ask for either order ID or customer ID. Both are 32-character alphanumeric codes.`

// FallbackReply is returned when every attempt at the provider fails.
const FallbackReply = "I'm having trouble processing your request. Could you please try again?"

const defaultTimeout = 8 * time.Second

// Assistant wraps a Provider with the degrade path the chat service
// relies on: bounded call time, one simplified retry without history,
// and a static fallback. Generate always returns usable text; the
// error is informational for the caller's log.
type Assistant struct {
	provider Provider
	timeout  time.Duration
	log      *logrus.Logger
}

func NewAssistant(provider Provider, timeout time.Duration, log *logrus.Logger) *Assistant {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Assistant{provider: provider, timeout: timeout, log: log}
}

func (a *Assistant) chat(ctx context.Context, messages []Message) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.provider.Chat(cctx, messages)
}

// Generate answers a free-form prompt with the conversation history as
// context. On failure it retries once with only the system prompt and
// the latest message, then falls back to static text.
func (a *Assistant) Generate(ctx context.Context, prompt string, history []Message) (string, error) {
	msgs := make([]Message, 0, len(history)+2)
	msgs = append(msgs, Message{Role: RoleSystem, Content: SystemPrompt})
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: RoleUser, Content: prompt})

	reply, err := a.chat(ctx, msgs)
	if err == nil && strings.TrimSpace(reply) != "" {
		return reply, nil
	}
	if err != nil {
		a.log.WithError(err).Warn("assistant: full-context call failed, retrying without history")
	}

	retry := []Message{
		{Role: RoleSystem, Content: SystemPrompt},
		{Role: RoleUser, Content: prompt},
	}
	reply, retryErr := a.chat(ctx, retry)
	if retryErr == nil && strings.TrimSpace(reply) != "" {
		return reply, nil
	}
	if retryErr != nil {
		err = retryErr
	}
	if err == nil {
		err = fmt.Errorf("assistant: provider returned empty reply")
	}
	return FallbackReply, err
}

// IntentUnknown is the classification result when the provider itself
// failed, as opposed to answering with something unusable.
const IntentUnknown = "unknown"

const intentGeneral = "general_query"

// ClassifyIntent asks the model to pick one intent from the candidate
// list. The reply is normalized and validated; anything unrecognized
// degrades to general_query, a provider error to unknown.
func (a *Assistant) ClassifyIntent(ctx context.Context, text string, candidates []string, history []Message) (string, error) {
	quoted := make([]string, 0, len(candidates))
	for _, c := range candidates {
		quoted = append(quoted, "'"+c+"'")
	}
	prompt := fmt.Sprintf(`Analyze the following user message and determine the primary intent.
The available intents are: %s, 'general_query'.

User Message: "%s"

Based *only* on the user message and the available intents, which intent best describes the user's goal?
Respond with *only* the single intent name from the list (e.g., 'check_order_status', 'request_human', 'general_query').
Do not add any explanation or other text.
Intent:`, strings.Join(quoted, ", "), text)

	raw, err := a.chat(ctx, []Message{{Role: RoleUser, Content: prompt}})
	if err != nil {
		return IntentUnknown, err
	}

	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.ReplaceAll(cleaned, "'", "")
	cleaned = strings.ReplaceAll(cleaned, `"`, "")
	if i := strings.IndexByte(cleaned, '\n'); i >= 0 {
		cleaned = strings.TrimSpace(cleaned[:i])
	}

	for _, c := range candidates {
		if cleaned == strings.ToLower(c) {
			return c, nil
		}
	}
	if cleaned == intentGeneral {
		return intentGeneral, nil
	}
	a.log.WithField("raw", raw).Warn("assistant: unrecognized intent reply, defaulting to general_query")
	return intentGeneral, nil
}
