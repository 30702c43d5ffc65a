package valueobjects

import (
	"fmt"
	"unicode/utf8"
)

const (
	MinRating         = 1
	MaxRating         = 5
	maxFeedbackLength = 1000
)

// Rating is the citizen's score of how the complaint was handled.
type Rating struct {
	value    int
	feedback string
}

func NewRating(value int, feedback string) (Rating, error) {
	if value < MinRating || value > MaxRating {
		return Rating{}, fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
	}
	if utf8.RuneCountInString(feedback) > maxFeedbackLength {
		return Rating{}, fmt.Errorf("feedback exceeds maximum length of %d characters", maxFeedbackLength)
	}
	return Rating{value: value, feedback: feedback}, nil
}

func (r Rating) Value() int {
	return r.value
}

func (r Rating) Feedback() string {
	return r.feedback
}
