package menu

import "errors"

// Selection errors surfaced to callers. ErrInvalidCombination is the
// distinct signal for a side that cannot pair with the active main;
// the selection is left untouched when it is returned.
var (
	ErrUnknownMain         = errors.New("unknown main dish")
	ErrUnknownSide         = errors.New("unknown side")
	ErrInvalidCombination  = errors.New("invalid combination")
	ErrIncompleteSelection = errors.New("incomplete selection")
)

// Separator joins a main and a side into one composed item label.
const Separator = " + "

// Selection is the in-progress choice of one main and at most one side.
// It is a value: every transition returns a new Selection and never
// mutates the receiver, so the UI layer can hold whichever version it
// wants and the rules stay in one place.
type Selection struct {
	Main string `json:"main,omitempty"`
	Side string `json:"side,omitempty"`
}

// WithMain selects a main dish. A side that is illegal for the new main
// is cleared rather than rejected; picking a main always succeeds for a
// known dish.
func (s Selection) WithMain(name string) (Selection, error) {
	main, ok := FindMain(name)
	if !ok {
		return s, ErrUnknownMain
	}
	next := Selection{Main: main.Name, Side: s.Side}
	if next.Side != "" && !SideLegalFor(main, next.Side) {
		next.Side = ""
	}
	return next, nil
}

// WithSide selects a side. If a main is active and cannot pair with the
// side, the selection is returned unchanged with ErrInvalidCombination.
func (s Selection) WithSide(name string) (Selection, error) {
	if !FindSide(name) {
		return s, ErrUnknownSide
	}
	if s.Main != "" {
		main, ok := FindMain(s.Main)
		if ok && !SideLegalFor(main, name) {
			return s, ErrInvalidCombination
		}
	}
	return Selection{Main: s.Main, Side: name}, nil
}

// ClearSide drops the side, keeping the main.
func (s Selection) ClearSide() Selection {
	return Selection{Main: s.Main}
}

// Clear returns the empty selection.
func (s Selection) Clear() Selection {
	return Selection{}
}

// Complete reports whether the selection can be submitted: a standalone
// main alone, or any other main together with a side.
func (s Selection) Complete() bool {
	if s.Main == "" {
		return false
	}
	main, ok := FindMain(s.Main)
	if !ok {
		return false
	}
	if main.Kind == KindStandalone {
		return s.Side == ""
	}
	return s.Side != ""
}

// Label renders the composed item label, or "" while the selection is
// incomplete.
func (s Selection) Label() string {
	if !s.Complete() {
		return ""
	}
	if s.Side == "" {
		return s.Main
	}
	return s.Main + Separator + s.Side
}

// Items converts the selection into the order item list, or fails with
// ErrIncompleteSelection. The order model carries a list even though the
// current menu submits exactly one composed item.
func (s Selection) Items() ([]string, error) {
	label := s.Label()
	if label == "" {
		return nil, ErrIncompleteSelection
	}
	return []string{label}, nil
}
