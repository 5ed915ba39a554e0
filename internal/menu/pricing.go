package menu

import "strings"

// Prices are whole Tanzanian shillings.
const (
	PricePilau          = 3000
	PriceChipsKavu      = 2500
	PriceChipsMayai     = 3500
	PriceChipsKuku      = 4500
	PricePremiumCombo   = 5000
	PriceStarchKuku     = 4500
	PriceDefaultCombo   = 4000
	DeliveryFeePerOrder = 500
)

// PricingConfig toggles the rules that changed between menu revisions.
type PricingConfig struct {
	// StarchPoultryPremium prices wali/ugali with a premium chicken cut
	// above the default combination price.
	StarchPoultryPremium bool
}

// DefaultPricing matches the latest menu.
var DefaultPricing = PricingConfig{StarchPoultryPremium: true}

// Price maps a composed item label to its price. The checks are ordered
// and short-circuiting: later, more specific rules must win over earlier
// substring matches, so this must stay a ladder and not become a lookup
// table. Unknown labels price at 0.
func (cfg PricingConfig) Price(label string) int {
	switch {
	case label == "Pilau":
		return PricePilau
	case label == "Chips":
		return PriceChipsKavu
	case strings.Contains(label, "Chips") && strings.Contains(label, "Mayai"):
		return PriceChipsMayai
	case strings.Contains(label, "Chips") && containsPremiumPoultry(label):
		return PriceChipsKuku
	case strings.Contains(label, "Chips"):
		return PriceChipsKavu
	case label == "Mishkaki":
		return PricePremiumCombo
	case strings.Contains(label, Separator) && strings.Contains(label, "Samaki"):
		return PricePremiumCombo
	case strings.HasSuffix(label, Separator+"Mishkaki"):
		return PricePremiumCombo
	case cfg.StarchPoultryPremium && isStarchPoultry(label):
		return PriceStarchKuku
	case strings.Contains(label, Separator):
		return PriceDefaultCombo
	}
	return 0
}

// Price prices a label under the default configuration.
func Price(label string) int {
	return DefaultPricing.Price(label)
}

func containsPremiumPoultry(label string) bool {
	for cut := range premiumPoultry {
		if strings.Contains(label, cut) {
			return true
		}
	}
	return false
}

func isStarchPoultry(label string) bool {
	main, side, ok := strings.Cut(label, Separator)
	if !ok {
		return false
	}
	if main != "Wali" && main != "Ugali" {
		return false
	}
	return premiumPoultry[side]
}
