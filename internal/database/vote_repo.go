package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"suggestions-bot/internal/database/models"
)

// GormVoteRepository implements VoteRepository on GORM/SQLite.
type GormVoteRepository struct {
	db *gorm.DB
}

// NewGormVoteRepository creates a new vote repository.
func NewGormVoteRepository(db *gorm.DB) *GormVoteRepository {
	return &GormVoteRepository{db: db}
}

// GetVote returns the voter's current vote kind, or ErrVoteNotFound.
func (r *GormVoteRepository) GetVote(ctx context.Context, suggestionID int64, userID string) (models.VoteType, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("suggestion_id = ? AND user_id = ?", suggestionID, userID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrVoteNotFound
		}
		return "", fmt.Errorf("failed to find vote for suggestion %d: %w", suggestionID, err)
	}
	return vote.VoteType, nil
}

// AddVote inserts a new ledger entry. A duplicate insert from a concurrent
// handler chain is rejected by the composite primary key.
func (r *GormVoteRepository) AddVote(ctx context.Context, suggestionID int64, userID string, voteType models.VoteType) error {
	vote := models.Vote{
		SuggestionID: suggestionID,
		UserID:       userID,
		VoteType:     voteType,
	}
	if err := r.db.WithContext(ctx).Create(&vote).Error; err != nil {
		return fmt.Errorf("failed to insert vote for suggestion %d: %w", suggestionID, err)
	}
	return nil
}

// RemoveVote deletes the voter's ledger entry (toggle-off).
func (r *GormVoteRepository) RemoveVote(ctx context.Context, suggestionID int64, userID string) error {
	result := r.db.WithContext(ctx).
		Where("suggestion_id = ? AND user_id = ?", suggestionID, userID).
		Delete(&models.Vote{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete vote for suggestion %d: %w", suggestionID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVoteNotFound
	}
	return nil
}

// SwitchVote replaces the entry's kind in place.
func (r *GormVoteRepository) SwitchVote(ctx context.Context, suggestionID int64, userID string, voteType models.VoteType) error {
	result := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("suggestion_id = ? AND user_id = ?", suggestionID, userID).
		Update("vote_type", voteType)
	if result.Error != nil {
		return fmt.Errorf("failed to switch vote for suggestion %d: %w", suggestionID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVoteNotFound
	}
	return nil
}

// ListVotes returns all ledger entries for a suggestion.
func (r *GormVoteRepository) ListVotes(ctx context.Context, suggestionID int64) ([]models.Vote, error) {
	var votes []models.Vote
	err := r.db.WithContext(ctx).
		Where("suggestion_id = ?", suggestionID).
		Order("user_id").
		Find(&votes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list votes for suggestion %d: %w", suggestionID, err)
	}
	return votes, nil
}
