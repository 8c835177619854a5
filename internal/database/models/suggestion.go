package models

import "time"

// SuggestionStatus defines the possible lifecycle states of a suggestion.
// A suggestion starts as pending and moves one-way into exactly one of the
// other states; it never returns to pending.
type SuggestionStatus string

const (
	StatusPending     SuggestionStatus = "pending"
	StatusAccepted    SuggestionStatus = "accepted"
	StatusRejected    SuggestionStatus = "rejected"
	StatusImplemented SuggestionStatus = "implemented"
)

// Suggestion represents one submitted suggestion and its current vote tally.
//
// Vote counts are maintained solely through the votes ledger and the
// repository's count adjustments; they are never edited directly.
// MessageID is unset at creation and set exactly once after the display
// message has been posted. HexID is the short public identifier used in
// admin commands; it carries a unique index so a generator collision is
// rejected by the store instead of silently producing two suggestions with
// the same public handle.
type Suggestion struct {
	ID           int64            `gorm:"primaryKey;autoIncrement"`
	UserID       string           `gorm:"type:varchar(32);not null;index"`
	Content      string           `gorm:"type:text;not null"`
	Upvotes      int              `gorm:"not null;default:0"`
	Downvotes    int              `gorm:"not null;default:0"`
	Status       SuggestionStatus `gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','accepted','rejected','implemented')"`
	StaffComment *string          `gorm:"type:text"`
	ImageURL     *string          `gorm:"type:text"`
	MessageID    *string          `gorm:"type:varchar(32)"`
	HexID        string           `gorm:"type:char(8);not null;uniqueIndex"`
	CreatedAt    time.Time
}

// TableName returns the database table name for Suggestion.
func (Suggestion) TableName() string { return "suggestions" }
