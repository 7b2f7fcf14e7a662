package review

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
)

// IsDue reports whether a card should be reviewed now. Never-reviewed cards
// and cards without a parseable next review date are always due. Scheduled
// cards are compared at day granularity in now's zone: stored dates come back
// in UTC, so both sides must land on the same calendar before truncating to
// midnight, or a card due late in the local evening slips a day.
func IsDue(card models.Flashcard, now time.Time) bool {
	if card.LastReviewed == nil {
		return true
	}
	if card.NextReview == nil {
		// A reviewed card with no schedule shows up today rather than never.
		return true
	}
	next := card.NextReview.In(now.Location())
	return !dayOf(next).After(dayOf(now))
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SelectDue filters a deck's cards to the due set, shuffles it uniformly at
// random, and caps it at limit when limit > 0. The returned message is a
// human-readable summary for the session header.
func SelectDue(cards []models.Flashcard, now time.Time, limit int) ([]models.Flashcard, string) {
	due := lo.Filter(cards, func(c models.Flashcard, _ int) bool {
		return IsDue(c, now)
	})

	queue := lo.Shuffle(due)
	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}

	msg := fmt.Sprintf("%d of %d due cards shown", len(queue), len(due))
	return queue, msg
}
