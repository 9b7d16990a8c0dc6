package domain

import "testing"

func TestToggle(t *testing.T) {
	w := Wishlist{"1", "2"}

	w, in := w.Toggle("3")
	if !in || !w.Contains("3") {
		t.Fatalf("expected 3 to be added, got %v", w)
	}

	w, in = w.Toggle("1")
	if in || w.Contains("1") {
		t.Fatalf("expected 1 to be removed, got %v", w)
	}
	if len(w) != 2 || w[0] != "2" || w[1] != "3" {
		t.Fatalf("unexpected order: %v", w)
	}
}

func TestValidateRejectsDuplicates(t *testing.T) {
	if err := (Wishlist{"1", "1"}).Validate(); err == nil {
		t.Fatal("expected duplicate error")
	}
}
