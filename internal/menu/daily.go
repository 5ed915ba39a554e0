package menu

import "time"

// SpecialOfTheDay picks today's recommended combination. The full
// mains×sides cross product is enumerated in menu order and indexed by
// the day of the month, so repeated calls within one calendar day agree
// without any stored state. The clock is passed in so tests can pin the
// day.
func SpecialOfTheDay(now time.Time) string {
	total := len(Mains) * len(Sides)
	index := now.Day() % total
	main := Mains[index/len(Sides)]
	side := Sides[index%len(Sides)]
	return main.Name + Separator + side
}
