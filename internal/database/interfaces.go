package database

import (
	"context"

	"suggestions-bot/internal/database/models"
)

// SuggestionRepository defines the persistence operations for suggestions.
type SuggestionRepository interface {
	// CreateSuggestion inserts a new pending suggestion and returns its numeric id.
	CreateSuggestion(ctx context.Context, userID, content string, imageURL *string, hexID string) (int64, error)
	// GetSuggestion returns the current row for id, or ErrSuggestionNotFound.
	GetSuggestion(ctx context.Context, id int64) (*models.Suggestion, error)
	// SetMessageID records the posted display message's identifier on the row.
	SetMessageID(ctx context.Context, id int64, messageID string) error
	// AdjustCounts applies the given deltas to the vote counts of a suggestion.
	AdjustCounts(ctx context.Context, id int64, upDelta, downDelta int) error
	// UpdateDecision sets status and staff comment in one write. It only
	// applies to rows still pending and returns ErrAlreadyDecided otherwise.
	UpdateDecision(ctx context.Context, id int64, status models.SuggestionStatus, comment string) error
	// DeleteByHexID removes the suggestion with the given public identifier
	// and returns the number of rows affected (0 when absent, not an error).
	DeleteByHexID(ctx context.Context, hexID string) (int64, error)
	// ClearAll removes every suggestion and, by cascade, every vote.
	ClearAll(ctx context.Context) error
}

// VoteRepository defines the persistence operations for the vote ledger.
type VoteRepository interface {
	// GetVote returns the voter's current vote kind, or ErrVoteNotFound.
	GetVote(ctx context.Context, suggestionID int64, userID string) (models.VoteType, error)
	// AddVote inserts a new ledger entry. A concurrent duplicate is rejected
	// by the (suggestion_id, user_id) primary key.
	AddVote(ctx context.Context, suggestionID int64, userID string, voteType models.VoteType) error
	// RemoveVote deletes the voter's ledger entry (toggle-off).
	RemoveVote(ctx context.Context, suggestionID int64, userID string) error
	// SwitchVote replaces the entry's kind in place.
	SwitchVote(ctx context.Context, suggestionID int64, userID string, voteType models.VoteType) error
	// ListVotes returns all ledger entries for a suggestion.
	ListVotes(ctx context.Context, suggestionID int64) ([]models.Vote, error)
}
