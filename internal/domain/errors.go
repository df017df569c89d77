package domain

import "errors"

var (
	// ErrSessionNotProvisioned is returned when game state is accessed before its session was provisioned.
	// It signals caller misuse rather than a rejected game action.
	ErrSessionNotProvisioned = errors.New("game session not provisioned")
	// ErrNoQuestions indicates the question bank yielded an empty pool.
	ErrNoQuestions = errors.New("question bank is empty")
	// ErrQuestionsNotFound indicates the backing store has no question data.
	ErrQuestionsNotFound = errors.New("questions not found")
)
