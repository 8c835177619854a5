package database

import "errors"

var (
	// ErrSuggestionNotFound is returned when a suggestion lookup matches no row.
	ErrSuggestionNotFound = errors.New("suggestion not found")

	// ErrVoteNotFound is returned when a voter has no ledger entry for a suggestion.
	ErrVoteNotFound = errors.New("vote not found")

	// ErrAlreadyDecided is returned when a decision write targets a
	// suggestion that has already left the pending status. Status
	// transitions are one-way and terminal.
	ErrAlreadyDecided = errors.New("suggestion already decided")
)
