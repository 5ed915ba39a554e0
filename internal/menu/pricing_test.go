package menu

import (
	"testing"
	"time"
)

func TestPriceLadder(t *testing.T) {
	cases := []struct {
		label string
		want  int
	}{
		{"Pilau", PricePilau},
		{"Chips", PriceChipsKavu},
		{"Chips + Mayai", PriceChipsMayai},
		{"Chips + Kuku Kidari", PriceChipsKuku},
		{"Chips + Kuku Paja", PriceChipsKuku},
		{"Mishkaki", PricePremiumCombo},
		{"Wali + Samaki", PricePremiumCombo},
		{"Ugali + Samaki", PricePremiumCombo},
		{"Ugali + Mishkaki", PricePremiumCombo},
		{"Wali + Kuku Kidari", PriceStarchKuku},
		{"Ugali + Kuku Paja", PriceStarchKuku},
		{"Wali + Nyama", PriceDefaultCombo},
		{"Ugali + Nyama Kavu", PriceDefaultCombo},
		{"Ugali + Maharage", PriceDefaultCombo},
		{"Wali Nyama", 0}, // legacy label, no separator
		{"", 0},
	}

	for _, tc := range cases {
		if got := Price(tc.label); got != tc.want {
			t.Errorf("Price(%q) = %d, want %d", tc.label, got, tc.want)
		}
	}
}

func TestPriceIsDeterministic(t *testing.T) {
	for _, m := range Mains {
		for _, s := range LegalSides(m) {
			label := m.Name + Separator + s
			first := Price(label)
			if second := Price(label); second != first {
				t.Fatalf("Price(%q) not deterministic: %d then %d", label, first, second)
			}
		}
	}
}

func TestStarchPoultryRuleIsConfigurable(t *testing.T) {
	off := PricingConfig{StarchPoultryPremium: false}

	if got := off.Price("Wali + Kuku Kidari"); got != PriceDefaultCombo {
		t.Errorf("with rule off, expected default combo %d, got %d", PriceDefaultCombo, got)
	}
	if got := DefaultPricing.Price("Wali + Kuku Kidari"); got != PriceStarchKuku {
		t.Errorf("with rule on, expected %d, got %d", PriceStarchKuku, got)
	}

	// The toggle must not leak into the chips rules.
	if got := off.Price("Chips + Kuku Paja"); got != PriceChipsKuku {
		t.Errorf("chips pricing changed with toggle: got %d", got)
	}
}

func TestSpecialOfTheDay(t *testing.T) {
	day := time.Date(2025, time.March, 9, 10, 30, 0, 0, time.UTC)

	first := SpecialOfTheDay(day)
	later := SpecialOfTheDay(day.Add(8 * time.Hour))
	if first != later {
		t.Fatalf("special changed within one day: %q then %q", first, later)
	}

	total := len(Mains) * len(Sides)
	index := day.Day() % total
	want := Mains[index/len(Sides)].Name + Separator + Sides[index%len(Sides)]
	if first != want {
		t.Fatalf("expected %q for day %d, got %q", want, day.Day(), first)
	}

	nextDay := SpecialOfTheDay(day.AddDate(0, 0, 1))
	if nextDay == first {
		t.Errorf("special did not rotate on the next day")
	}
}
