package ai

import (
	"context"
	"testing"
)

func TestRegistry_GetAppliesDefaultModel(t *testing.T) {
	reg := NewRegistry()
	var gotModel string
	reg.Register("Ollama ", "llama3.2", func(ctx context.Context, model string) (Provider, error) {
		gotModel = model
		return &scriptedProvider{}, nil
	})

	if _, err := reg.Get(context.Background(), "ollama", ""); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotModel != "llama3.2" {
		t.Fatalf("default model not applied, got %q", gotModel)
	}

	if _, err := reg.Get(context.Background(), "OLLAMA", "mistral"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotModel != "mistral" {
		t.Fatalf("explicit model not passed through, got %q", gotModel)
	}
}

func TestRegistry_GetUnknownProvider(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Get(context.Background(), "nope", ""); err == nil {
		t.Fatal("expected error for unregistered provider")
	}
}
