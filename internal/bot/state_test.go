package bot

import "testing"

func TestConversation_NoConsecutiveDuplicates(t *testing.T) {
	conv := NewConversation("s1")
	conv.AddUser("hello")
	conv.AddUser("hello")
	if len(conv.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(conv.Messages))
	}

	conv.AddAssistant("hi there")
	conv.AddUser("hello") // not consecutive anymore
	if len(conv.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(conv.Messages))
	}
}

func TestConversation_Recent(t *testing.T) {
	conv := NewConversation("s1")
	conv.AddUser("one")
	conv.AddAssistant("two")
	conv.AddUser("three")

	got := conv.Recent(2)
	if len(got) != 2 || got[0].Content != "two" || got[1].Content != "three" {
		t.Fatalf("unexpected window: %+v", got)
	}

	all := conv.Recent(0)
	if len(all) != 3 {
		t.Fatalf("expected full history, got %d", len(all))
	}
}

func TestConversation_ResetContactFlow(t *testing.T) {
	conv := NewConversation("s1")
	conv.NeedsHumanAgent = true
	conv.ContactStep = StepAskEmail
	conv.CustomerName = "Ana"
	conv.CustomerEmail = "ana@example.com"

	conv.ResetContactFlow()

	if conv.NeedsHumanAgent || conv.ContactStep != StepIdle ||
		conv.CustomerName != "" || conv.CustomerEmail != "" || conv.CustomerPhone != "" {
		t.Fatalf("flow state not cleared: %+v", conv)
	}
}
