// Package gormstore implements the store contract on Postgres via GORM.
package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/swipeup-app/swipeup/internal/apperr"
	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/store"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// wrap classifies a GORM error: missing rows become NotFound, anything
// else is a storage outage from the caller's point of view.
func wrap(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, msg+" not found")
	}
	return apperr.Wrap(apperr.Unavailable, msg+" unavailable", err)
}

// === Users ===

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.Conflict, "email already exists")
		}
		return wrap(err, "user")
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrap(err, "user")
	}
	return &user, nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrap(err, "user")
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return wrap(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}
	return nil
}

// === Startups ===

func (s *Store) CreateStartup(ctx context.Context, startup *models.Startup) error {
	if err := s.db.WithContext(ctx).Create(startup).Error; err != nil {
		return wrap(err, "startup")
	}
	return nil
}

func (s *Store) StartupByID(ctx context.Context, id uint) (*models.Startup, error) {
	var startup models.Startup
	if err := s.db.WithContext(ctx).First(&startup, id).Error; err != nil {
		return nil, wrap(err, "startup")
	}
	return &startup, nil
}

func (s *Store) ApprovedByGeo(ctx context.Context, geo string) ([]models.Startup, error) {
	q := s.db.WithContext(ctx).
		Where("status = ?", models.StatusApproved).
		Order("created_at DESC")

	if geo != "" {
		q = q.Where("geo = ?", geo)
	}

	var startups []models.Startup
	if err := q.Find(&startups).Error; err != nil {
		return nil, wrap(err, "startups")
	}
	return startups, nil
}

func (s *Store) StartupsByOwner(ctx context.Context, userID uint) ([]models.Startup, error) {
	var startups []models.Startup
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&startups).Error
	if err != nil {
		return nil, wrap(err, "startups")
	}
	return startups, nil
}

func (s *Store) AllStartups(ctx context.Context) ([]models.Startup, error) {
	var startups []models.Startup
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&startups).Error; err != nil {
		return nil, wrap(err, "startups")
	}
	return startups, nil
}

func (s *Store) SetStartupStatus(ctx context.Context, id uint, status, rejectReason string) error {
	res := s.db.WithContext(ctx).Model(&models.Startup{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        status,
		"reject_reason": rejectReason,
	})
	if res.Error != nil {
		return wrap(res.Error, "startup")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "startup not found")
	}
	return nil
}

func (s *Store) SetStartupFeatured(ctx context.Context, id uint, featured bool) error {
	res := s.db.WithContext(ctx).Model(&models.Startup{}).Where("id = ?", id).Update("is_featured", featured)
	if res.Error != nil {
		return wrap(res.Error, "startup")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "startup not found")
	}
	return nil
}

func (s *Store) DeleteStartup(ctx context.Context, id uint) error {
	// Votes, comments and payments go with the startup via ON DELETE
	// CASCADE in the schema.
	res := s.db.WithContext(ctx).Delete(&models.Startup{}, id)
	if res.Error != nil {
		return wrap(res.Error, "startup")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "startup not found")
	}
	return nil
}

// === Votes ===

func (s *Store) RecordVote(ctx context.Context, userID, startupID uint, kind models.VoteKind) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND startup_id = ? AND kind = ?", userID, startupID, kind.Opposite()).
			Delete(&models.Vote{}).Error
		if err != nil {
			return err
		}

		vote := models.Vote{UserID: userID, StartupID: startupID, Kind: kind}
		// Duplicate swipes race on the unique index; the loser is a no-op.
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&vote).Error
	})
	if err != nil {
		return wrap(err, "vote")
	}
	return nil
}

func (s *Store) DeleteVote(ctx context.Context, userID, startupID uint, kind models.VoteKind) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND startup_id = ? AND kind = ?", userID, startupID, kind).
		Delete(&models.Vote{}).Error
	if err != nil {
		return wrap(err, "vote")
	}
	return nil
}

func (s *Store) VotedStartupIDs(ctx context.Context, userID uint) (map[uint]struct{}, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Where("user_id = ?", userID).
		Pluck("startup_id", &ids).Error
	if err != nil {
		return nil, wrap(err, "votes")
	}

	voted := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		voted[id] = struct{}{}
	}
	return voted, nil
}

func (s *Store) LikedStartups(ctx context.Context, userID uint) ([]models.Startup, error) {
	var startups []models.Startup
	err := s.db.WithContext(ctx).
		Joins("INNER JOIN votes ON votes.startup_id = startups.id").
		Where("votes.user_id = ? AND votes.kind = ?", userID, models.VoteLike).
		Order("votes.created_at DESC").
		Find(&startups).Error
	if err != nil {
		return nil, wrap(err, "favorites")
	}
	return startups, nil
}

// === Payments ===

func (s *Store) CompletePayment(ctx context.Context, startupID, payerID uint, amountRub int64) (*models.Payment, error) {
	var payment *models.Payment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// The guard on current status serializes concurrent payments:
		// only one update matches, the loser observes zero rows.
		res := tx.Model(&models.Startup{}).
			Where("id = ? AND status = ? AND payment_status = ?",
				startupID, models.StatusApproved, models.PaymentUnpaid).
			Updates(map[string]interface{}{
				"payment_status": models.PaymentPaid,
				"paid_at":        now,
				"published_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.Conflict, "startup is already paid or not approved")
		}

		payment = &models.Payment{
			StartupID:         startupID,
			UserID:            payerID,
			AmountRub:         amountRub,
			Status:            models.PaymentStatusSucceeded,
			Provider:          models.PaymentProviderMock,
			ProviderPaymentID: uuid.NewString(),
		}
		return tx.Create(payment).Error
	})

	if err != nil {
		if apperr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, wrap(err, "payment")
	}
	return payment, nil
}

// === Comments ===

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return wrap(err, "comment")
	}
	return nil
}

func (s *Store) CommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, wrap(err, "comment")
	}
	return &comment, nil
}

func (s *Store) DeleteComment(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return wrap(res.Error, "comment")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "comment not found")
	}
	return nil
}

func (s *Store) CommentsByStartup(ctx context.Context, startupID uint) ([]store.CommentRow, error) {
	var rows []store.CommentRow
	err := s.db.WithContext(ctx).Table("comments").
		Select("comments.id, comments.startup_id, comments.user_id, comments.text, comments.created_at, users.name AS author_name, users.email AS author_email").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.startup_id = ?", startupID).
		Order("comments.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrap(err, "comments")
	}
	return rows, nil
}

// === Analytics ===

func (s *Store) CountUsers(ctx context.Context, since *time.Time) (int64, error) {
	q := s.db.WithContext(ctx).Model(&models.User{})
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, wrap(err, "stats")
	}
	return count, nil
}

func (s *Store) CountVotes(ctx context.Context, kind models.VoteKind, since *time.Time) (int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Vote{}).Where("kind = ?", kind)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, wrap(err, "stats")
	}
	return count, nil
}

func (s *Store) CountStartupsByStatus(ctx context.Context) (store.StatusCounts, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Startup{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return store.StatusCounts{}, wrap(err, "stats")
	}

	var counts store.StatusCounts
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case models.StatusPending:
			counts.Pending = row.Count
		case models.StatusApproved:
			counts.Approved = row.Count
		case models.StatusRejected:
			counts.Rejected = row.Count
		}
	}
	return counts, nil
}

func (s *Store) RatedStartups(ctx context.Context, geo string, publishedOnly bool, limit int) ([]store.StartupRating, error) {
	q := s.db.WithContext(ctx).Table("startups").
		Select("startups.id, startups.name, startups.logo, startups.geo, startups.short_description, COUNT(votes.id) AS likes_count").
		Joins("LEFT JOIN votes ON votes.startup_id = startups.id AND votes.kind = ?", models.VoteLike).
		Where("startups.status = ?", models.StatusApproved)

	if publishedOnly {
		q = q.Where("startups.payment_status = ?", models.PaymentPaid)
	}
	if geo != "" {
		q = q.Where("startups.geo = ?", geo)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []store.StartupRating
	err := q.Group("startups.id").
		Order("likes_count DESC, startups.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrap(err, "rating")
	}
	return rows, nil
}
