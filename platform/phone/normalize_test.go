package phone

import "testing"

func TestE164FormatsNationalNumber(t *testing.T) {
	n := NewNormalizer("NL")
	if got := n.E164("020 123 4567"); got != "+31201234567" {
		t.Fatalf("expected +31201234567, got %q", got)
	}
}

func TestE164KeepsUnparseableInput(t *testing.T) {
	n := NewNormalizer("")
	if got := n.E164("  call reception  "); got != "call reception" {
		t.Fatalf("expected trimmed input, got %q", got)
	}
}

func TestE164PtrNil(t *testing.T) {
	if NewNormalizer("DE").E164Ptr(nil) != nil {
		t.Fatal("expected nil for nil input")
	}
}
