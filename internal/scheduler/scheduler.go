// Package scheduler implements the SM-2 variant that maps a card's scheduling
// state and a review rating to the next scheduling state. It is pure: the
// caller supplies the clock and owns persistence.
package scheduler

import (
	"math"
	"time"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
)

// EffectiveRating downgrades a correct response to hard when a hint was
// consumed during the card's presentation. Hints cost quality; they never
// upgrade a response.
func EffectiveRating(rating models.Rating, hintUsed bool) models.Rating {
	if hintUsed && rating == models.RatingCorrect {
		return models.RatingHard
	}
	return rating
}

// Schedule applies one review response to a card's scheduling state.
// All non-scheduling fields pass through unchanged.
func Schedule(card models.Flashcard, rating models.Rating, now time.Time) models.Flashcard {
	q := rating.Quality()

	// Ease is recomputed on every response, pass or fail.
	ease := card.EaseFactor + (0.1 - float64(5-q)*(0.08+float64(5-q)*0.02))
	if ease < models.MinEaseFactor {
		ease = models.MinEaseFactor
	}

	var interval, reps int
	if q < 3 {
		// Failure resets the streak and reschedules to tomorrow, never same-day.
		reps = 0
		interval = 1
	} else {
		reps = card.Repetitions + 1
		switch reps {
		case 1:
			interval = 1
		case 2:
			interval = 6
		default:
			// Grows from the ease in effect before this round's update.
			interval = int(math.Ceil(float64(card.IntervalDays) * card.EaseFactor))
		}
	}

	reviewed := now
	due := now.AddDate(0, 0, interval)

	card.EaseFactor = ease
	card.Repetitions = reps
	card.IntervalDays = interval
	card.LastReviewed = &reviewed
	card.NextReview = &due
	return card
}
