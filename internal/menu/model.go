package menu

// DishKind controls which sides a main dish accepts.
type DishKind string

const (
	// KindStarch is a plain starch base (wali, ugali).
	KindStarch DishKind = "STARCH"
	// KindFriedSnack only pairs with a small set of sides.
	KindFriedSnack DishKind = "FRIED_SNACK"
	// KindStandalone is a complete dish, ordered with no side.
	KindStandalone DishKind = "STANDALONE"
)

// Main is one selectable main dish.
type Main struct {
	Name string   `json:"name"`
	Kind DishKind `json:"kind"`
}

// Mains and Sides are the fixed menu of the house.
// Order matters: the daily special walks the cross product in this order.
var Mains = []Main{
	{Name: "Wali", Kind: KindStarch},
	{Name: "Ugali", Kind: KindStarch},
	{Name: "Chips", Kind: KindFriedSnack},
	{Name: "Pilau", Kind: KindStandalone},
}

var Sides = []string{
	"Nyama",
	"Nyama Kavu",
	"Samaki",
	"Mayai",
	"Kuku Kidari",
	"Kuku Paja",
	"Maharage",
}

// friedSnackSides are the only sides that go with chips.
var friedSnackSides = map[string]bool{
	"Mayai":       true,
	"Kuku Kidari": true,
	"Kuku Paja":   true,
}

// premiumPoultry cuts carry their own price point in combinations.
var premiumPoultry = map[string]bool{
	"Kuku Kidari": true,
	"Kuku Paja":   true,
}

// FindMain returns the main dish by name.
func FindMain(name string) (Main, bool) {
	for _, m := range Mains {
		if m.Name == name {
			return m, true
		}
	}
	return Main{}, false
}

// FindSide reports whether name is a known side.
func FindSide(name string) bool {
	for _, s := range Sides {
		if s == name {
			return true
		}
	}
	return false
}

// SideLegalFor reports whether side may be served with main.
func SideLegalFor(main Main, side string) bool {
	switch main.Kind {
	case KindStandalone:
		return false
	case KindFriedSnack:
		return friedSnackSides[side]
	case KindStarch:
		return side != "Mayai"
	}
	return true
}

// LegalSides lists the sides allowed with main, in menu order.
func LegalSides(main Main) []string {
	out := []string{}
	for _, s := range Sides {
		if SideLegalFor(main, s) {
			out = append(out, s)
		}
	}
	return out
}
