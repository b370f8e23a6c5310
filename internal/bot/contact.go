package bot

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// ContactRecorder persists a completed handoff request. Implementations
// must be safe for concurrent use.
type ContactRecorder interface {
	Record(ctx context.Context, name, email, phone, notes string) error
}

// cancelKeywords abort an in-progress collection and hand control back
// to normal routing.
var cancelKeywords = []string{"cancel", "nevermind", "never mind", "stop", "go back"}

// orderKeywords also abort the flow, re-routing straight into order
// lookup since that is what the user switched to.
var orderKeywords = []string{"order status", "my order", "track", "where is my order", "check order"}

const (
	msgAskName  = "I understand you'd like to speak with a human representative. Could you please provide your name?"
	msgAskPhone = "Thank you. Finally, could you please provide your phone number? You can also say 'skip' if you prefer not to."

	msgEmptyName    = "Please provide your name so I can create the request."
	msgInvalidEmail = "That doesn't look like a valid email address. Could you please provide your email?"
	msgInvalidPhone = "That doesn't look like a phone number. Please provide a phone number, or say 'skip'."

	msgAlreadyLogged = "I've already logged your request for assistance. Our team will be in touch soon!"
	msgCancelled     = "No problem, I've cancelled the request. Is there anything else I can help you with?"
)

// ContactFlow is the step-indexed state machine collecting name, email
// and phone for a human handoff.
type ContactFlow struct {
	recorder ContactRecorder
	log      *logrus.Logger
}

func NewContactFlow(recorder ContactRecorder, log *logrus.Logger) *ContactFlow {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ContactFlow{recorder: recorder, log: log}
}

// Begin starts the collection: marks the session as needing a human
// agent and asks for the name.
func (f *ContactFlow) Begin(conv *Conversation) string {
	conv.NeedsHumanAgent = true
	conv.ContactStep = StepAskName
	return msgAskName
}

// FlowResult tells the router what happened inside the flow this turn.
type FlowResult struct {
	Reply         string
	Cancelled     bool
	ToOrderLookup bool // cancellation was order-related; re-route this input
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// Handle advances the state machine by one user input. It never
// returns an error: a persistence failure is logged and the user is
// thanked anyway so they are not left stuck mid-flow.
func (f *ContactFlow) Handle(ctx context.Context, conv *Conversation, input string) FlowResult {
	lower := strings.ToLower(strings.TrimSpace(input))

	// Cancellation wins at any collecting step.
	if conv.ContactStep >= StepAskName && conv.ContactStep <= StepAskPhone {
		if containsAny(lower, orderKeywords) {
			conv.ResetContactFlow()
			return FlowResult{Cancelled: true, ToOrderLookup: true}
		}
		if containsAny(lower, cancelKeywords) {
			conv.ResetContactFlow()
			return FlowResult{Reply: msgCancelled, Cancelled: true}
		}
	}

	switch conv.ContactStep {
	case StepIdle:
		return FlowResult{Reply: f.Begin(conv)}

	case StepAskName:
		name := strings.TrimSpace(input)
		if name == "" {
			return FlowResult{Reply: msgEmptyName}
		}
		conv.CustomerName = name
		conv.ContactStep = StepAskEmail
		return FlowResult{Reply: "Thank you, " + name + ". Could you please provide your email address?"}

	case StepAskEmail:
		email := strings.TrimSpace(input)
		if email == "" || !strings.Contains(email, "@") {
			return FlowResult{Reply: msgInvalidEmail}
		}
		conv.CustomerEmail = email
		conv.ContactStep = StepAskPhone
		return FlowResult{Reply: msgAskPhone}

	case StepAskPhone:
		phone := strings.TrimSpace(input)
		if lower == "skip" {
			phone = ""
		} else if !hasDigit(phone) {
			return FlowResult{Reply: msgInvalidPhone}
		}
		conv.CustomerPhone = phone
		conv.ContactStep = StepComplete
		conv.ContactInfoCollected = true
		f.persist(ctx, conv)
		return FlowResult{Reply: f.confirmation(conv)}

	default: // StepComplete
		return FlowResult{Reply: msgAlreadyLogged}
	}
}

// persist writes the contact request. Failures are logged but never
// surfaced: losing the request beats trapping the user in the flow.
func (f *ContactFlow) persist(ctx context.Context, conv *Conversation) {
	notes := "User requested human assistance via chat."
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		if conv.Messages[i].Role == RoleUser {
			notes += " Last message: " + conv.Messages[i].Content
			break
		}
	}
	if f.recorder == nil {
		f.log.WithField("session_id", conv.SessionID).Error("contact flow: no recorder configured, request dropped")
		return
	}
	if err := f.recorder.Record(ctx, conv.CustomerName, conv.CustomerEmail, conv.CustomerPhone, notes); err != nil {
		f.log.WithFields(logrus.Fields{
			"session_id": conv.SessionID,
			"email":      conv.CustomerEmail,
		}).WithError(err).Error("contact flow: failed to save contact request")
	}
}

func (f *ContactFlow) confirmation(conv *Conversation) string {
	reach := conv.CustomerEmail
	if conv.CustomerPhone != "" {
		reach += " or " + conv.CustomerPhone
	}
	return "Thank you for providing your information. A customer service representative will contact you soon at " + reach + "."
}
