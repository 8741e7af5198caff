package tui

import (
	"strings"

	"github.com/colonyops/canteen/internal/core/styles"
	"github.com/colonyops/canteen/internal/review"
)

const (
	starFilled = "★"
	starEmpty  = "☆"
)

// renderAvgStars renders the aggregate five-star bar for a summary. A star is
// drawn filled when its fill percentage reaches at least half.
func renderAvgStars(s review.Summary) string {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		if review.FillPercent(s.AvgRating, i) >= 50 {
			b.WriteString(styles.StarFilledStyle.Render(starFilled))
		} else {
			b.WriteString(styles.StarEmptyStyle.Render(starEmpty))
		}
	}
	return b.String()
}

// renderMyStars renders the interactive five-star bar for the current user.
// Hover takes precedence over the stored rating.
func renderMyStars(ctrl *review.Controller, foodID string) string {
	display := ctrl.DisplayRating(foodID)
	hovering := ctrl.Hover(foodID) > 0

	var b strings.Builder
	for i := 0; i < 5; i++ {
		switch {
		case i < display && hovering:
			b.WriteString(styles.StarHoverStyle.Render(starFilled))
		case i < display:
			b.WriteString(styles.StarFilledStyle.Render(starFilled))
		default:
			b.WriteString(styles.StarEmptyStyle.Render(starEmpty))
		}
	}
	return b.String()
}
