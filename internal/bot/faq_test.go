package bot

import (
	"strings"
	"testing"
)

func TestMatchFAQ_ReturnPolicy(t *testing.T) {
	resp, ok := MatchFAQ("What is your return policy?")
	if !ok {
		t.Fatal("expected a match")
	}
	if !strings.Contains(resp, "returned within 30 days") {
		t.Fatalf("unexpected response: %q", resp)
	}
}

func TestMatchFAQ_PolicyBeatsGreeting(t *testing.T) {
	intent, _, ok := MatchFAQIntent("hello, can I return this jacket?")
	if !ok || intent != "return_policy" {
		t.Fatalf("got intent %q, ok=%v", intent, ok)
	}
}

func TestMatchFAQ_SingleWordTriggersMatchWholeTokens(t *testing.T) {
	// "hi" must not fire inside "shipping"
	intent, _, ok := MatchFAQIntent("how much does shipping cost?")
	if !ok || intent != "shipping_policy" {
		t.Fatalf("got intent %q, ok=%v", intent, ok)
	}

	if _, _, ok := MatchFAQIntent("something about hippos"); ok {
		t.Fatal("expected no match")
	}

	intent, _, ok = MatchFAQIntent("hi")
	if !ok || intent != "greeting" {
		t.Fatalf("got intent %q, ok=%v", intent, ok)
	}
}

func TestMatchFAQ_NoMatch(t *testing.T) {
	if _, ok := MatchFAQ("do you sell blue widgets?"); ok {
		t.Fatal("expected no match")
	}
}

func TestMatchFAQ_Deterministic(t *testing.T) {
	in := "tell me about your warranty"
	first, ok1 := MatchFAQ(in)
	second, ok2 := MatchFAQ(in)
	if !ok1 || !ok2 || first != second {
		t.Fatal("expected the same answer on repeat calls")
	}
}
