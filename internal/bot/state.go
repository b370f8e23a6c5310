package bot

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Contact collection steps. The flow moves strictly forward until it
// completes or the user cancels.
const (
	StepIdle     = 0 // no collection in progress
	StepAskName  = 1 // we asked for the name, waiting for it
	StepAskEmail = 2 // name stored, waiting for email
	StepAskPhone = 3 // email stored, waiting for phone (or "skip")
	StepComplete = 4 // request persisted, flow terminal
)

// Conversation is the per-session state threaded through every turn.
// It is JSON-serializable so session stores can persist it as-is.
type Conversation struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`

	OrderLookupAttempted bool   `json:"order_lookup_attempted"`
	CurrentOrderID       string `json:"current_order_id,omitempty"`

	NeedsHumanAgent      bool   `json:"needs_human_agent"`
	ContactInfoCollected bool   `json:"contact_info_collected"`
	ContactStep          int    `json:"contact_step"`
	CustomerName         string `json:"customer_name,omitempty"`
	CustomerEmail        string `json:"customer_email,omitempty"`
	CustomerPhone        string `json:"customer_phone,omitempty"`

	LastActivity time.Time `json:"last_activity"`
}

// NewConversation returns a fresh state with all flags at their
// session-start values.
func NewConversation(sessionID string) *Conversation {
	return &Conversation{
		SessionID:    sessionID,
		Messages:     []Message{},
		ContactStep:  StepIdle,
		LastActivity: time.Now(),
	}
}

// append adds a message unless it would duplicate the immediately
// preceding entry. History must never contain two consecutive identical
// role+content pairs.
func (c *Conversation) append(role, content string) {
	if n := len(c.Messages); n > 0 {
		last := c.Messages[n-1]
		if last.Role == role && last.Content == content {
			return
		}
	}
	c.Messages = append(c.Messages, Message{Role: role, Content: content})
	c.LastActivity = time.Now()
}

// AddUser appends a user message.
func (c *Conversation) AddUser(content string) {
	c.append(RoleUser, content)
}

// AddAssistant appends an assistant message.
func (c *Conversation) AddAssistant(content string) {
	c.append(RoleAssistant, content)
}

// LastMessage returns the most recent message, if any.
func (c *Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// Recent returns up to n most recent messages, oldest first.
func (c *Conversation) Recent(n int) []Message {
	if n <= 0 || len(c.Messages) <= n {
		out := make([]Message, len(c.Messages))
		copy(out, c.Messages)
		return out
	}
	out := make([]Message, n)
	copy(out, c.Messages[len(c.Messages)-n:])
	return out
}

// Clone returns a deep copy. Stores hand out clones so callers never
// alias state still held by the store.
func (c *Conversation) Clone() *Conversation {
	out := *c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return &out
}

// ResetContactFlow aborts an in-progress collection: flags back to
// idle, partial fields cleared.
func (c *Conversation) ResetContactFlow() {
	c.NeedsHumanAgent = false
	c.ContactStep = StepIdle
	c.CustomerName = ""
	c.CustomerEmail = ""
	c.CustomerPhone = ""
}
