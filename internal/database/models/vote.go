package models

// VoteType is the kind of a single vote: upvote or downvote.
type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

// Opposite returns the other vote kind.
func (v VoteType) Opposite() VoteType {
	if v == VoteUp {
		return VoteDown
	}
	return VoteUp
}

// Vote is one voter's current vote on one suggestion.
//
// The composite primary key (suggestion_id, user_id) is load-bearing: the
// vote read-then-write sequence in the interaction handler is not atomic,
// and this constraint turns a concurrent duplicate insert into a rejected
// write instead of silent corruption. Votes are cascade-deleted with their
// suggestion.
type Vote struct {
	SuggestionID int64    `gorm:"primaryKey;autoIncrement:false"`
	UserID       string   `gorm:"primaryKey;type:varchar(32)"`
	VoteType     VoteType `gorm:"type:varchar(8);not null;check:vote_type IN ('upvote','downvote')"`

	Suggestion Suggestion `gorm:"foreignKey:SuggestionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Vote.
func (Vote) TableName() string { return "votes" }
