package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"suggestions-bot/internal/database/models"
)

// GormSuggestionRepository implements SuggestionRepository on GORM/SQLite.
type GormSuggestionRepository struct {
	db *gorm.DB
}

// NewGormSuggestionRepository creates a new suggestion repository.
func NewGormSuggestionRepository(db *gorm.DB) *GormSuggestionRepository {
	return &GormSuggestionRepository{db: db}
}

// CreateSuggestion inserts a new pending suggestion and returns its numeric id.
func (r *GormSuggestionRepository) CreateSuggestion(ctx context.Context, userID, content string, imageURL *string, hexID string) (int64, error) {
	suggestion := models.Suggestion{
		UserID:   userID,
		Content:  content,
		ImageURL: imageURL,
		HexID:    hexID,
		Status:   models.StatusPending,
	}
	if err := r.db.WithContext(ctx).Create(&suggestion).Error; err != nil {
		return 0, fmt.Errorf("failed to insert suggestion: %w", err)
	}
	return suggestion.ID, nil
}

// GetSuggestion returns the current row for id, or ErrSuggestionNotFound.
func (r *GormSuggestionRepository) GetSuggestion(ctx context.Context, id int64) (*models.Suggestion, error) {
	var suggestion models.Suggestion
	err := r.db.WithContext(ctx).First(&suggestion, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("failed to find suggestion %d: %w", id, err)
	}
	return &suggestion, nil
}

// SetMessageID records the posted display message's identifier on the row.
// The guard on message_id keeps the identifier write-once.
func (r *GormSuggestionRepository) SetMessageID(ctx context.Context, id int64, messageID string) error {
	result := r.db.WithContext(ctx).Model(&models.Suggestion{}).
		Where("id = ? AND message_id IS NULL", id).
		Update("message_id", messageID)
	if result.Error != nil {
		return fmt.Errorf("failed to set message id for suggestion %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("suggestion %d not found or message id already set", id)
	}
	return nil
}

// AdjustCounts applies the given deltas to the vote counts of a suggestion.
func (r *GormSuggestionRepository) AdjustCounts(ctx context.Context, id int64, upDelta, downDelta int) error {
	result := r.db.WithContext(ctx).Model(&models.Suggestion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"upvotes":   gorm.Expr("upvotes + ?", upDelta),
			"downvotes": gorm.Expr("downvotes + ?", downDelta),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to adjust counts for suggestion %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSuggestionNotFound
	}
	return nil
}

// UpdateDecision sets status and staff comment in one write. Transitions are
// one-way: a row that already left pending is left untouched and the call
// returns ErrAlreadyDecided.
func (r *GormSuggestionRepository) UpdateDecision(ctx context.Context, id int64, status models.SuggestionStatus, comment string) error {
	result := r.db.WithContext(ctx).Model(&models.Suggestion{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]interface{}{
			"status":        status,
			"staff_comment": comment,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update decision for suggestion %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Suggestion{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to update decision for suggestion %d: %w", id, err)
		}
		if count == 0 {
			return ErrSuggestionNotFound
		}
		return ErrAlreadyDecided
	}
	return nil
}

// DeleteByHexID removes the suggestion with the given public identifier and
// returns the number of rows affected. Votes go with it by FK cascade.
func (r *GormSuggestionRepository) DeleteByHexID(ctx context.Context, hexID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("hex_id = ?", hexID).Delete(&models.Suggestion{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete suggestion %s: %w", hexID, result.Error)
	}
	return result.RowsAffected, nil
}

// ClearAll removes every suggestion and, by cascade, every vote.
func (r *GormSuggestionRepository) ClearAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Suggestion{}).Error; err != nil {
		return fmt.Errorf("failed to clear suggestions: %w", err)
	}
	return nil
}
