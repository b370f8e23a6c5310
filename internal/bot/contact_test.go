package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordingRecorder struct {
	calls int
	name  string
	email string
	phone string
	notes string
	err   error
}

func (r *recordingRecorder) Record(ctx context.Context, name, email, phone, notes string) error {
	r.calls++
	r.name, r.email, r.phone, r.notes = name, email, phone, notes
	return r.err
}

func TestContactFlow_HappyPath(t *testing.T) {
	rec := &recordingRecorder{}
	flow := NewContactFlow(rec, nil)
	conv := NewConversation("s1")

	reply := flow.Begin(conv)
	if !strings.Contains(reply, "provide your name") {
		t.Fatalf("unexpected begin reply: %q", reply)
	}
	if !conv.NeedsHumanAgent || conv.ContactStep != StepAskName {
		t.Fatalf("begin did not set flow state: %+v", conv)
	}

	res := flow.Handle(context.Background(), conv, "Jane Doe")
	if !strings.Contains(res.Reply, "Thank you, Jane Doe") || !strings.Contains(res.Reply, "email") {
		t.Fatalf("unexpected name reply: %q", res.Reply)
	}

	res = flow.Handle(context.Background(), conv, "jane@example.com")
	if !strings.Contains(res.Reply, "phone number") {
		t.Fatalf("unexpected email reply: %q", res.Reply)
	}

	res = flow.Handle(context.Background(), conv, "555-0101")
	if !strings.Contains(res.Reply, "will contact you soon at jane@example.com or 555-0101") {
		t.Fatalf("unexpected confirmation: %q", res.Reply)
	}

	if rec.calls != 1 {
		t.Fatalf("recorder called %d times", rec.calls)
	}
	if rec.name != "Jane Doe" || rec.email != "jane@example.com" || rec.phone != "555-0101" {
		t.Fatalf("recorded %q %q %q", rec.name, rec.email, rec.phone)
	}
	if !conv.ContactInfoCollected || conv.ContactStep != StepComplete {
		t.Fatalf("flow not terminal: %+v", conv)
	}

	// follow-up input after completion
	res = flow.Handle(context.Background(), conv, "is anyone coming?")
	if res.Reply != msgAlreadyLogged {
		t.Fatalf("unexpected post-complete reply: %q", res.Reply)
	}
	if rec.calls != 1 {
		t.Fatalf("recorder called again: %d", rec.calls)
	}
}

func TestContactFlow_InvalidEmailRetries(t *testing.T) {
	rec := &recordingRecorder{}
	flow := NewContactFlow(rec, nil)
	conv := NewConversation("s1")

	flow.Begin(conv)
	flow.Handle(context.Background(), conv, "Jane")

	res := flow.Handle(context.Background(), conv, "not-an-email")
	if res.Reply != msgInvalidEmail {
		t.Fatalf("unexpected reply: %q", res.Reply)
	}
	if conv.ContactStep != StepAskEmail {
		t.Fatalf("step advanced on invalid email: %d", conv.ContactStep)
	}

	res = flow.Handle(context.Background(), conv, "jane@example.com")
	if conv.ContactStep != StepAskPhone {
		t.Fatalf("step not advanced: %d", conv.ContactStep)
	}
	_ = res
}

func TestContactFlow_PhoneSkip(t *testing.T) {
	rec := &recordingRecorder{}
	flow := NewContactFlow(rec, nil)
	conv := NewConversation("s1")

	flow.Begin(conv)
	flow.Handle(context.Background(), conv, "Jane")
	flow.Handle(context.Background(), conv, "jane@example.com")

	res := flow.Handle(context.Background(), conv, "just text me")
	if res.Reply != msgInvalidPhone {
		t.Fatalf("unexpected reply: %q", res.Reply)
	}

	res = flow.Handle(context.Background(), conv, "skip")
	if !strings.Contains(res.Reply, "at jane@example.com.") {
		t.Fatalf("unexpected confirmation: %q", res.Reply)
	}
	if rec.phone != "" {
		t.Fatalf("expected empty phone, got %q", rec.phone)
	}
}

func TestContactFlow_Cancellation(t *testing.T) {
	rec := &recordingRecorder{}
	flow := NewContactFlow(rec, nil)
	conv := NewConversation("s1")

	flow.Begin(conv)
	flow.Handle(context.Background(), conv, "Jane")

	res := flow.Handle(context.Background(), conv, "actually nevermind")
	if !res.Cancelled || res.Reply != msgCancelled {
		t.Fatalf("unexpected result: %+v", res)
	}
	if conv.NeedsHumanAgent || conv.ContactStep != StepIdle || conv.CustomerName != "" {
		t.Fatalf("state not reset: %+v", conv)
	}
	if rec.calls != 0 {
		t.Fatalf("recorder should not be called, got %d", rec.calls)
	}
}

func TestContactFlow_OrderKeywordReroutes(t *testing.T) {
	rec := &recordingRecorder{}
	flow := NewContactFlow(rec, nil)
	conv := NewConversation("s1")

	flow.Begin(conv)
	res := flow.Handle(context.Background(), conv, "wait, where is my order?")
	if !res.Cancelled || !res.ToOrderLookup {
		t.Fatalf("expected order re-route, got %+v", res)
	}
	if conv.NeedsHumanAgent {
		t.Fatal("flow state not reset")
	}
}

func TestContactFlow_PersistFailureStillConfirms(t *testing.T) {
	rec := &recordingRecorder{err: errors.New("db down")}
	flow := NewContactFlow(rec, nil)
	conv := NewConversation("s1")

	flow.Begin(conv)
	flow.Handle(context.Background(), conv, "Jane")
	flow.Handle(context.Background(), conv, "jane@example.com")
	res := flow.Handle(context.Background(), conv, "555-0101")

	if !strings.Contains(res.Reply, "will contact you soon") {
		t.Fatalf("user left stuck on persistence failure: %q", res.Reply)
	}
	if conv.ContactStep != StepComplete {
		t.Fatalf("flow not terminal: %d", conv.ContactStep)
	}
}
