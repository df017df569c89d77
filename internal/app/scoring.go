package app

import (
	"strings"

	"trivia-party-service/internal/domain"
)

// Points awarded by arrival order of correct answers within a round.
const (
	FirstCorrectPoints  = 10
	SecondCorrectPoints = 5
	LaterCorrectPoints  = 3
)

// pointsFor returns the award for a correct answer given how many correct answers already landed this round.
func pointsFor(priorCorrect int) int {
	switch priorCorrect {
	case 0:
		return FirstCorrectPoints
	case 1:
		return SecondCorrectPoints
	default:
		return LaterCorrectPoints
	}
}

func countCorrect(results []domain.RoundResult) int {
	n := 0
	for _, r := range results {
		if r.IsCorrect {
			n++
		}
	}
	return n
}

// answerMatches compares a submission against the expected answer, trimmed and case-insensitive.
func answerMatches(submitted, expected string) bool {
	return strings.ToLower(strings.TrimSpace(submitted)) == strings.ToLower(strings.TrimSpace(expected))
}
