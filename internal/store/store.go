// Package store defines the persistence contract shared by the Postgres
// and in-memory implementations.
package store

import (
	"context"
	"time"

	"github.com/swipeup-app/swipeup/internal/models"
)

// CommentRow is a comment joined with its author's display fields.
// Author fields are empty when the author no longer exists.
type CommentRow struct {
	ID          uint
	StartupID   uint
	UserID      uint
	Text        string
	CreatedAt   time.Time
	AuthorName  string
	AuthorEmail string
}

// StartupRating is a browse-view row: a startup with its like count.
type StartupRating struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Logo             string `json:"logo"`
	Geo              string `json:"geo"`
	ShortDescription string `json:"short_description"`
	LikesCount       int64  `json:"likes_count"`
}

// StatusCounts groups startups by moderation state.
type StatusCounts struct {
	Total    int64
	Pending  int64
	Approved int64
	Rejected int64
}

// Store is the persistence boundary. Implementations must provide
// single-call atomicity for RecordVote (opposite-kind removal plus
// insert) and CompletePayment (conditional transition plus audit row),
// and report failures with apperr kinds where the contract names them.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error

	// Startups
	CreateStartup(ctx context.Context, startup *models.Startup) error
	StartupByID(ctx context.Context, id uint) (*models.Startup, error)
	// ApprovedByGeo lists approved startups newest-first; an empty geo
	// means all geos.
	ApprovedByGeo(ctx context.Context, geo string) ([]models.Startup, error)
	StartupsByOwner(ctx context.Context, userID uint) ([]models.Startup, error)
	AllStartups(ctx context.Context) ([]models.Startup, error)
	// SetStartupStatus transitions moderation state, storing rejectReason
	// verbatim (and clearing it on any non-rejected status).
	SetStartupStatus(ctx context.Context, id uint, status, rejectReason string) error
	SetStartupFeatured(ctx context.Context, id uint, featured bool) error
	// DeleteStartup removes the row and cascades votes, comments and
	// payments.
	DeleteStartup(ctx context.Context, id uint) error

	// Votes
	// RecordVote atomically clears the opposite-kind vote for the pair
	// and inserts the vote if absent.
	RecordVote(ctx context.Context, userID, startupID uint, kind models.VoteKind) error
	DeleteVote(ctx context.Context, userID, startupID uint, kind models.VoteKind) error
	// VotedStartupIDs returns every startup the user has voted on,
	// either kind.
	VotedStartupIDs(ctx context.Context, userID uint) (map[uint]struct{}, error)
	LikedStartups(ctx context.Context, userID uint) ([]models.Startup, error)

	// Payments
	// CompletePayment transitions an approved, unpaid startup to paid,
	// stamps paidAt/publishedAt and appends the Payment row in one
	// transaction. Returns a Conflict error when the guarded update
	// matches no row (already paid, or no longer approved).
	CompletePayment(ctx context.Context, startupID, payerID uint, amountRub int64) (*models.Payment, error)

	// Comments
	CreateComment(ctx context.Context, comment *models.Comment) error
	CommentByID(ctx context.Context, id uint) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
	// CommentsByStartup returns comments newest-first with author fields.
	CommentsByStartup(ctx context.Context, startupID uint) ([]CommentRow, error)

	// Analytics
	CountUsers(ctx context.Context, since *time.Time) (int64, error)
	CountVotes(ctx context.Context, kind models.VoteKind, since *time.Time) (int64, error)
	CountStartupsByStatus(ctx context.Context) (StatusCounts, error)
	// RatedStartups orders by like count desc, then newest-first.
	// publishedOnly additionally requires a paid listing; limit <= 0
	// means no limit.
	RatedStartups(ctx context.Context, geo string, publishedOnly bool, limit int) ([]StartupRating, error)
}
