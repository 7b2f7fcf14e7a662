package models

import "fmt"

// Rating is a user's response to a card presentation.
type Rating int

const (
	RatingIncorrect Rating = iota
	RatingHard
	RatingCorrect
)

func (r Rating) String() string {
	switch r {
	case RatingIncorrect:
		return "incorrect"
	case RatingHard:
		return "hard"
	case RatingCorrect:
		return "correct"
	default:
		return fmt.Sprintf("rating(%d)", int(r))
	}
}

// ParseRating parses a rating string as it arrives from UI or wire input.
func ParseRating(s string) (Rating, error) {
	switch s {
	case "incorrect":
		return RatingIncorrect, nil
	case "hard":
		return RatingHard, nil
	case "correct":
		return RatingCorrect, nil
	default:
		return 0, fmt.Errorf("unknown rating %q", s)
	}
}

// Valid reports whether r is one of the three defined ratings.
func (r Rating) Valid() bool {
	return r == RatingIncorrect || r == RatingHard || r == RatingCorrect
}

// Quality maps a rating onto the 0-5 quality scale used by the scheduler.
func (r Rating) Quality() int {
	switch r {
	case RatingCorrect:
		return 5
	case RatingHard:
		return 3
	default:
		return 0
	}
}
