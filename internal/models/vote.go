package models

import "time"

type VoteKind string

const (
	VoteLike    VoteKind = "like"
	VoteDislike VoteKind = "dislike"
)

func (k VoteKind) Valid() bool {
	return k == VoteLike || k == VoteDislike
}

func (k VoteKind) Opposite() VoteKind {
	if k == VoteLike {
		return VoteDislike
	}
	return VoteLike
}

// Vote is one swipe: a like or a dislike. The composite unique index
// makes concurrent duplicate swipes converge on a single row.
type Vote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_votes_user_startup_kind"`
	StartupID uint      `json:"startup_id" gorm:"not null;uniqueIndex:idx_votes_user_startup_kind"`
	Kind      VoteKind  `json:"kind" gorm:"not null;uniqueIndex:idx_votes_user_startup_kind"`
	CreatedAt time.Time `json:"created_at"`
}
