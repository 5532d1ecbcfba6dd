// Package comments implements posting, listing and author-only removal
// of startup comments.
package comments

import (
	"context"
	"strings"
	"time"

	"github.com/swipeup-app/swipeup/internal/apperr"
	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/store"
)

const MaxLength = 500

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// View is a comment as presented to clients, with a resolved author
// display name.
type View struct {
	ID         uint      `json:"id"`
	StartupID  uint      `json:"startup_id"`
	UserID     uint      `json:"user_id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Post stores a trimmed comment. Empty or over-length text is rejected;
// the startup must exist.
func (s *Service) Post(ctx context.Context, userID, startupID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.New(apperr.Validation, "comment text is required")
	}
	if len([]rune(text)) > MaxLength {
		return nil, apperr.Newf(apperr.Validation, "comment too long (max %d characters)", MaxLength)
	}

	if _, err := s.store.StartupByID(ctx, startupID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:    userID,
		StartupID: startupID,
		Text:      text,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Remove deletes a comment; only its author may do so.
func (s *Service) Remove(ctx context.Context, commentID, requesterID uint) error {
	comment, err := s.store.CommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != requesterID {
		return apperr.New(apperr.Forbidden, "not authorized to delete this comment")
	}
	return s.store.DeleteComment(ctx, commentID)
}

// List returns a startup's comments newest-first.
func (s *Service) List(ctx context.Context, startupID uint) ([]View, error) {
	rows, err := s.store.CommentsByStartup(ctx, startupID)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(rows))
	for _, row := range rows {
		views = append(views, View{
			ID:         row.ID,
			StartupID:  row.StartupID,
			UserID:     row.UserID,
			Text:       row.Text,
			AuthorName: displayName(row.AuthorName, row.AuthorEmail),
			CreatedAt:  row.CreatedAt,
		})
	}
	return views, nil
}

// displayName prefers the profile name, falls back to the email
// local-part, then to an anonymous placeholder for deleted authors.
func displayName(name, email string) string {
	if name != "" {
		return name
	}
	if email != "" {
		if at := strings.Index(email, "@"); at > 0 {
			return email[:at]
		}
		return email
	}
	return "Anonymous"
}
