package bot

import "testing"

func TestExtractIdentifier_ExactInput(t *testing.T) {
	id, ok := ExtractIdentifier("e481f51cbdc54678b7cc49136f2d6af7")
	if !ok {
		t.Fatal("expected identifier")
	}
	if id != "e481f51cbdc54678b7cc49136f2d6af7" {
		t.Fatalf("unexpected id: %q", id)
	}
}

func TestExtractIdentifier_TrimsWhitespace(t *testing.T) {
	id, ok := ExtractIdentifier("  e481f51cbdc54678b7cc49136f2d6af7  ")
	if !ok || id != "e481f51cbdc54678b7cc49136f2d6af7" {
		t.Fatalf("got %q, %v", id, ok)
	}
}

func TestExtractIdentifier_Embedded(t *testing.T) {
	id, ok := ExtractIdentifier("order abc123def456ghi789jkl012mno345p0!")
	if !ok {
		t.Fatal("expected identifier")
	}
	if id != "abc123def456ghi789jkl012mno345p0" {
		t.Fatalf("unexpected id: %q", id)
	}
}

func TestExtractIdentifier_PreservesCase(t *testing.T) {
	id, ok := ExtractIdentifier("my id is E481F51Cbdc54678b7cc49136f2d6AF7 thanks")
	if !ok || id != "E481F51Cbdc54678b7cc49136f2d6AF7" {
		t.Fatalf("got %q, %v", id, ok)
	}
}

func TestExtractIdentifier_WrongLengthRuns(t *testing.T) {
	cases := []string{
		"",
		"hello there",
		"e481f51cbdc54678b7cc49136f2d6af",                     // 31
		"e481f51cbdc54678b7cc49136f2d6af7a",                   // 33, lone run
		"see e481f51cbdc54678b7cc49136f2d6af7a for details",   // 33-char run
		"id-e481f51cbdc54678b7cc49136f2d6af digits short one", // 31-char run
	}
	for _, in := range cases {
		if id, ok := ExtractIdentifier(in); ok {
			t.Fatalf("input %q: unexpected match %q", in, id)
		}
	}
}

func TestExtractIdentifier_FirstRunWins(t *testing.T) {
	first := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	second := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	id, ok := ExtractIdentifier(first + " then " + second)
	if !ok || id != first {
		t.Fatalf("got %q, %v", id, ok)
	}
}
