package review

import "math"

// FillPercent returns how full the star at starIndex (zero-based) should be
// rendered for the given average rating, as an integer percentage.
//
// An average of 3.5 fills stars 0-2 completely, star 3 to 50%, and star 4
// not at all.
func FillPercent(avg float64, starIndex int) int {
	diff := avg - float64(starIndex)
	switch {
	case diff <= 0:
		return 0
	case diff >= 1:
		return 100
	default:
		return int(math.Round(diff * 100))
	}
}
