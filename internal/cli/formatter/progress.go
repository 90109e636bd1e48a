package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderRatingBar renders a ten-cell bar like ███████░░░ 7/10, colored by
// RatingStyle.
func RenderRatingBar(rating int, inverted bool) string {
	if rating < 0 {
		rating = 0
	}
	if rating > domain.MaxRating {
		rating = domain.MaxRating
	}
	bar := strings.Repeat(filledBlock, rating) + strings.Repeat(emptyBlock, domain.MaxRating-rating)
	return fmt.Sprintf("%s %d/%d", RatingStyle(rating, inverted).Render(bar), rating, domain.MaxRating)
}

// RenderGoalProgress renders "2/3 goals" colored green once every goal is
// done. Sessions without goals render as "".
func RenderGoalProgress(done, total int) string {
	if total == 0 {
		return ""
	}
	text := fmt.Sprintf("%d/%d goals", done, total)
	if done == total {
		return StyleGreen.Render(text)
	}
	return StyleYellow.Render(text)
}

// GoalMark renders a checkbox for a goal.
func GoalMark(completed bool) string {
	if completed {
		return StyleGreen.Render("[x]")
	}
	return StyleDim.Render("[ ]")
}
