package menu

import (
	"errors"
	"testing"
)

func TestStandaloneMainRejectsSides(t *testing.T) {
	sel, err := Selection{}.WithMain("Pilau")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next, err := sel.WithSide("Nyama")
	if !errors.Is(err, ErrInvalidCombination) {
		t.Fatalf("expected ErrInvalidCombination, got %v", err)
	}
	if next != sel {
		t.Fatalf("selection changed on rejected side: %+v", next)
	}

	if got := sel.Label(); got != "Pilau" {
		t.Errorf("expected bare label Pilau, got %q", got)
	}
}

func TestStarchMainAcceptsRegularSide(t *testing.T) {
	sel, err := Selection{}.WithMain("Ugali")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sel, err = sel.WithSide("Nyama")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := sel.Label(); got != "Ugali + Nyama" {
		t.Errorf("expected Ugali + Nyama, got %q", got)
	}
	if got := Price(sel.Label()); got != PriceDefaultCombo {
		t.Errorf("expected default combo price %d, got %d", PriceDefaultCombo, got)
	}
}

func TestStarchMainRejectsEggs(t *testing.T) {
	sel, _ := Selection{}.WithMain("Wali")

	next, err := sel.WithSide("Mayai")
	if !errors.Is(err, ErrInvalidCombination) {
		t.Fatalf("expected ErrInvalidCombination, got %v", err)
	}
	if next.Side != "" {
		t.Fatalf("side set despite rejection: %q", next.Side)
	}
}

func TestFriedSnackRestrictsSides(t *testing.T) {
	sel, _ := Selection{}.WithMain("Chips")

	if _, err := sel.WithSide("Nyama"); !errors.Is(err, ErrInvalidCombination) {
		t.Fatalf("chips + nyama should be rejected, got %v", err)
	}

	sel, err := sel.WithSide("Mayai")
	if err != nil {
		t.Fatalf("chips + mayai should be legal: %v", err)
	}
	if got := sel.Label(); got != "Chips + Mayai" {
		t.Errorf("expected Chips + Mayai, got %q", got)
	}
}

func TestSwitchingMainClearsIllegalSide(t *testing.T) {
	sel, _ := Selection{}.WithMain("Ugali")
	sel, _ = sel.WithSide("Nyama")

	// Pilau takes no side at all.
	sel, err := sel.WithMain("Pilau")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Side != "" {
		t.Fatalf("side should have been cleared, got %q", sel.Side)
	}

	// Chips keeps a legal side but drops an illegal one.
	sel, _ = sel.WithMain("Chips")
	sel, _ = sel.WithSide("Kuku Paja")
	sel, err = sel.WithMain("Wali")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Side != "Kuku Paja" {
		t.Fatalf("legal side should survive the switch, got %q", sel.Side)
	}
}

func TestUnknownDishes(t *testing.T) {
	if _, err := (Selection{}).WithMain("Sushi"); !errors.Is(err, ErrUnknownMain) {
		t.Errorf("expected ErrUnknownMain, got %v", err)
	}
	if _, err := (Selection{}).WithSide("Wasabi"); !errors.Is(err, ErrUnknownSide) {
		t.Errorf("expected ErrUnknownSide, got %v", err)
	}
}

func TestItemsRequiresCompleteSelection(t *testing.T) {
	sel, _ := Selection{}.WithMain("Ugali")

	if _, err := sel.Items(); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("expected ErrIncompleteSelection, got %v", err)
	}

	sel, _ = sel.WithSide("Maharage")
	items, err := sel.Items()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0] != "Ugali + Maharage" {
		t.Fatalf("unexpected items: %v", items)
	}
}
