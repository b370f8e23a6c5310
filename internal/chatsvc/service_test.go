package chatsvc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopmate/support-chat/internal/bot"
	"github.com/shopmate/support-chat/internal/session"
)

type stubOrders struct{}

func (stubOrders) Lookup(ctx context.Context, identifier string) bot.LookupResult {
	return bot.LookupResult{Reply: "details for " + identifier, Found: true, OrderID: strings.ToLower(identifier)}
}
func (stubOrders) Summary(ctx context.Context, customerID string) bot.LookupResult {
	return bot.LookupResult{Reply: "summary for " + customerID, Found: true}
}
func (stubOrders) RequestIdentifier() string { return "please provide your order ID" }

type stubRecorder struct{}

func (stubRecorder) Record(ctx context.Context, name, email, phone, notes string) error { return nil }

type stubAssistant struct{}

func (stubAssistant) Generate(ctx context.Context, prompt string, history []bot.Message) (string, error) {
	return "model reply", nil
}
func (stubAssistant) ClassifyIntent(ctx context.Context, text string, candidates []string, history []bot.Message) (string, error) {
	return "general_query", nil
}

func newTestService() *Service {
	flow := bot.NewContactFlow(stubRecorder{}, nil)
	router := bot.NewRouter(stubOrders{}, flow, stubAssistant{}, nil, nil, 15)
	return NewService(session.NewMemoryStore(time.Hour), router, nil, nil)
}

func TestCreateSessionAndHandleTurn(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	conv, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if conv.SessionID == "" {
		t.Fatal("empty session id")
	}

	reply, err := svc.HandleTurn(ctx, conv.SessionID, "hello")
	if err != nil {
		t.Fatalf("handle turn: %v", err)
	}
	if !strings.Contains(reply, "Welcome to our e-commerce support") {
		t.Fatalf("unexpected reply: %q", reply)
	}

	msgs, err := svc.History(ctx, conv.SessionID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Role != bot.RoleUser || msgs[1].Role != bot.RoleAssistant {
		t.Fatalf("unexpected transcript: %+v", msgs)
	}
}

func TestHandleTurn_UnknownSession(t *testing.T) {
	svc := newTestService()

	_, err := svc.HandleTurn(context.Background(), "nope", "hello")
	if !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHandleTurn_StatePersistsAcrossTurns(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	conv, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := svc.HandleTurn(ctx, conv.SessionID, "I want to speak to a human"); err != nil {
		t.Fatalf("turn 1: %v", err)
	}
	reply, err := svc.HandleTurn(ctx, conv.SessionID, "Jane Doe")
	if err != nil {
		t.Fatalf("turn 2: %v", err)
	}
	if !strings.Contains(reply, "email address") {
		t.Fatalf("flow state lost between turns: %q", reply)
	}
}

func TestEndSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	conv, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := svc.EndSession(ctx, conv.SessionID); err != nil {
		t.Fatalf("end session: %v", err)
	}
	if _, err := svc.HandleTurn(ctx, conv.SessionID, "hi"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
