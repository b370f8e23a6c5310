package bot

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/shopmate/support-chat/internal/metrics"
)

// LookupResult is what the order service reports back for one lookup.
type LookupResult struct {
	Reply   string
	Found   bool
	OrderID string // resolved order id, lowercased
}

// OrderService resolves identifiers to order status. Implementations
// must convert their own failures into user-safe reply text.
type OrderService interface {
	// Lookup resolves an order or customer identifier.
	Lookup(ctx context.Context, identifier string) LookupResult
	// Summary lists a customer's recent orders.
	Summary(ctx context.Context, customerID string) LookupResult
	// RequestIdentifier is the re-prompt used when the user asks about
	// an order without supplying an identifier.
	RequestIdentifier() string
}

// Assistant is the language-model collaborator. Generate must degrade
// internally (timeout, one simplified retry, static fallback); the
// returned text is always usable even when err is non-nil.
type Assistant interface {
	Generate(ctx context.Context, prompt string, history []Message) (string, error)
	ClassifyIntent(ctx context.Context, text string, candidates []string, history []Message) (string, error)
}

// Intent labels offered to the LLM classification stage.
const (
	IntentOrderStatus  = "check_order_status"
	IntentRequestHuman = "request_human"
	IntentGeneral      = "general_query"
)

var classifyCandidates = []string{IntentOrderStatus, IntentRequestHuman}

// humanPhrases explicitly request a handoff.
var humanPhrases = []string{
	"speak to a human", "talk to a human", "human representative",
	"real person", "speak to an agent", "talk to a representative",
	"connect me with a human", "human agent please",
}

// humanStandalone words also trigger a handoff, but only when the
// message is not about a policy (so "return policy for an agent gift"
// does not start the flow).
var humanStandalone = []string{"human", "representative", "agent", "person"}

var policyWords = []string{"policy", "policies", "return", "shipping", "warranty"}

var summaryPhrases = []string{"my customer id", "customer id", "how many orders", "my orders"}

const genericApology = "I'm sorry, I encountered an error trying to handle your request. Could you please try rephrasing?"

// Router decides, per turn, which component answers. It owns no state
// of its own; everything lives in the Conversation.
type Router struct {
	orders        OrderService
	flow          *ContactFlow
	assistant     Assistant
	metrics       *metrics.Metrics
	log           *logrus.Logger
	historyWindow int
}

func NewRouter(orders OrderService, flow *ContactFlow, assistant Assistant, m *metrics.Metrics, log *logrus.Logger, historyWindow int) *Router {
	if historyWindow <= 0 {
		historyWindow = 15
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if m == nil {
		m = metrics.Nop()
	}
	return &Router{
		orders:        orders,
		flow:          flow,
		assistant:     assistant,
		metrics:       m,
		log:           log,
		historyWindow: historyWindow,
	}
}

// Route handles one user turn: appends the user message, dispatches,
// and appends exactly one assistant reply. It never returns an error;
// all failures surface as user-safe text.
func (r *Router) Route(ctx context.Context, conv *Conversation, input string) string {
	conv.AddUser(input)
	reply := r.dispatch(ctx, conv, input)
	conv.AddAssistant(reply)
	return reply
}

func (r *Router) dispatch(ctx context.Context, conv *Conversation, input string) string {
	lower := strings.ToLower(input)

	// 1. An active collection flow owns the turn unconditionally;
	// cancellation is decided inside the flow.
	if conv.NeedsHumanAgent && !conv.ContactInfoCollected {
		res := r.flow.Handle(ctx, conv, input)
		if res.ToOrderLookup {
			r.metrics.TurnsRouted.WithLabelValues("order_lookup").Inc()
			return r.orderTurn(ctx, conv, input, lower)
		}
		r.metrics.TurnsRouted.WithLabelValues("contact_flow").Inc()
		return res.Reply
	}

	// Completed handoffs keep owning follow-up messages until the user
	// explicitly starts something new.
	if conv.NeedsHumanAgent && conv.ContactInfoCollected && !r.startsSomethingNew(lower) {
		r.metrics.TurnsRouted.WithLabelValues("contact_flow").Inc()
		return msgAlreadyLogged
	}

	// 2. Explicit handoff trigger.
	if wantsHuman(lower) {
		r.metrics.TurnsRouted.WithLabelValues("contact_flow").Inc()
		return r.flow.Begin(conv)
	}

	// 3. Canned FAQ. Checked before identifier detection: a policy
	// question that happens to quote an order ID is still a policy
	// question.
	if intent, resp, ok := MatchFAQIntent(input); ok {
		r.metrics.TurnsRouted.WithLabelValues("faq_" + intent).Inc()
		return resp
	}

	// 4. Order lookup: an identifier in the message, or an explicit
	// order-status question without one.
	if _, ok := ExtractIdentifier(input); ok || asksAboutOrder(lower) {
		r.metrics.TurnsRouted.WithLabelValues("order_lookup").Inc()
		return r.orderTurn(ctx, conv, input, lower)
	}

	// 5. LLM last: classify first so "I need to talk to someone about
	// my delivery" still lands on the right component.
	return r.llmTurn(ctx, conv, input)
}

// orderTurn dispatches to the order lookup service, handling the
// missing-identifier re-prompt and state flags.
func (r *Router) orderTurn(ctx context.Context, conv *Conversation, input, lower string) string {
	id, ok := ExtractIdentifier(input)
	if !ok {
		if conv.OrderLookupAttempted {
			// Already re-prompted or looked up this episode; let the
			// model handle the follow-up instead of nagging again.
			return r.llmGenerate(ctx, conv, input)
		}
		conv.OrderLookupAttempted = true
		return r.orders.RequestIdentifier()
	}

	var res LookupResult
	if containsAny(lower, summaryPhrases) {
		res = r.orders.Summary(ctx, id)
	} else {
		res = r.orders.Lookup(ctx, id)
	}
	conv.OrderLookupAttempted = true
	if res.Found && res.OrderID != "" {
		conv.CurrentOrderID = res.OrderID
	}
	return res.Reply
}

func (r *Router) llmTurn(ctx context.Context, conv *Conversation, input string) string {
	label, err := r.assistant.ClassifyIntent(ctx, input, classifyCandidates, conv.Recent(r.historyWindow))
	if err != nil {
		r.metrics.CollaboratorFailures.WithLabelValues("llm_classify").Inc()
		r.log.WithField("session_id", conv.SessionID).WithError(err).Warn("intent classification failed, treating as general query")
		label = IntentGeneral
	}

	switch label {
	case IntentRequestHuman:
		r.metrics.TurnsRouted.WithLabelValues("contact_flow").Inc()
		return r.flow.Begin(conv)
	case IntentOrderStatus:
		r.metrics.TurnsRouted.WithLabelValues("order_lookup").Inc()
		return r.orderTurn(ctx, conv, input, strings.ToLower(input))
	default:
		return r.llmGenerate(ctx, conv, input)
	}
}

func (r *Router) llmGenerate(ctx context.Context, conv *Conversation, input string) string {
	r.metrics.TurnsRouted.WithLabelValues("llm").Inc()
	reply, err := r.assistant.Generate(ctx, input, conv.Recent(r.historyWindow))
	if err != nil {
		r.metrics.CollaboratorFailures.WithLabelValues("llm_generate").Inc()
		r.log.WithField("session_id", conv.SessionID).WithError(err).Error("llm generation failed, served fallback")
	}
	if strings.TrimSpace(reply) == "" {
		return genericApology
	}
	return reply
}

// startsSomethingNew reports whether a post-handoff message should
// leave the completed flow's terminal state.
func (r *Router) startsSomethingNew(lower string) bool {
	if _, _, ok := MatchFAQIntent(lower); ok {
		return true
	}
	if _, ok := ExtractIdentifier(lower); ok {
		return true
	}
	return asksAboutOrder(lower) || containsAny(lower, cancelKeywords)
}

func wantsHuman(lower string) bool {
	for _, p := range humanPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	if containsAny(lower, policyWords) {
		return false
	}
	for _, w := range strings.Fields(lower) {
		w = strings.Trim(w, ".,!?;:\"'")
		for _, s := range humanStandalone {
			if w == s {
				return true
			}
		}
	}
	return false
}

func asksAboutOrder(lower string) bool {
	if !strings.Contains(lower, "order") {
		return false
	}
	return strings.Contains(lower, "status") ||
		strings.Contains(lower, "where") ||
		strings.Contains(lower, "track")
}
