// Package inmemory is a mutex-guarded implementation of the store
// contract, used by the component test suites.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/swipeup-app/swipeup/internal/apperr"
	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/store"
)

type Store struct {
	mu sync.Mutex

	users    map[uint]*models.User
	startups map[uint]*models.Startup
	votes    map[uint]*models.Vote
	comments map[uint]*models.Comment
	payments map[uint]*models.Payment

	nextUserID    uint
	nextStartupID uint
	nextVoteID    uint
	nextCommentID uint
	nextPaymentID uint

	// clock is advanced on every write so createdAt ordering is total
	// even within one wall-clock tick.
	clock time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:    make(map[uint]*models.User),
		startups: make(map[uint]*models.Startup),
		votes:    make(map[uint]*models.Vote),
		comments: make(map[uint]*models.Comment),
		payments: make(map[uint]*models.Payment),
		clock:    time.Now(),
	}
}

func (s *Store) now() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

// === Users ===

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return apperr.New(apperr.Conflict, "email already exists")
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = s.now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			user := *u
			return &user, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func (s *Store) UserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	user := *u
	return &user, nil
}

func (s *Store) UpdateUser(_ context.Context, id uint, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}

	for column, value := range updates {
		str, _ := value.(string)
		switch column {
		case "name":
			u.Name = str
		case "email":
			u.Email = str
		case "password_hash":
			u.PasswordHash = str
		case "bio":
			u.Bio = str
		case "location":
			u.Location = str
		case "instagram":
			u.Instagram = str
		case "telegram":
			u.Telegram = str
		case "avatar":
			u.Avatar = str
		}
	}
	u.UpdatedAt = s.now()
	return nil
}

// === Startups ===

func (s *Store) CreateStartup(_ context.Context, startup *models.Startup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextStartupID++
	startup.ID = s.nextStartupID
	startup.CreatedAt = s.now()
	startup.UpdatedAt = startup.CreatedAt

	// Mirror the schema's column defaults.
	if startup.Status == "" {
		startup.Status = models.StatusPending
	}
	if startup.PaymentStatus == "" {
		startup.PaymentStatus = models.PaymentUnpaid
	}
	if startup.PriceRub == 0 {
		startup.PriceRub = models.DefaultPriceRub
	}

	stored := *startup
	s.startups[startup.ID] = &stored
	return nil
}

func (s *Store) StartupByID(_ context.Context, id uint) (*models.Startup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.startups[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "startup not found")
	}
	startup := *st
	return &startup, nil
}

func newestFirst(startups []models.Startup) {
	sort.Slice(startups, func(i, j int) bool {
		return startups[i].CreatedAt.After(startups[j].CreatedAt)
	})
}

func (s *Store) ApprovedByGeo(_ context.Context, geo string) ([]models.Startup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var startups []models.Startup
	for _, st := range s.startups {
		if st.Status != models.StatusApproved {
			continue
		}
		if geo != "" && st.Geo != geo {
			continue
		}
		startups = append(startups, *st)
	}
	newestFirst(startups)
	return startups, nil
}

func (s *Store) StartupsByOwner(_ context.Context, userID uint) ([]models.Startup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var startups []models.Startup
	for _, st := range s.startups {
		if st.UserID != nil && *st.UserID == userID {
			startups = append(startups, *st)
		}
	}
	newestFirst(startups)
	return startups, nil
}

func (s *Store) AllStartups(_ context.Context) ([]models.Startup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	startups := make([]models.Startup, 0, len(s.startups))
	for _, st := range s.startups {
		startups = append(startups, *st)
	}
	newestFirst(startups)
	return startups, nil
}

func (s *Store) SetStartupStatus(_ context.Context, id uint, status, rejectReason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.startups[id]
	if !ok {
		return apperr.New(apperr.NotFound, "startup not found")
	}
	st.Status = status
	st.RejectReason = rejectReason
	st.UpdatedAt = s.now()
	return nil
}

func (s *Store) SetStartupFeatured(_ context.Context, id uint, featured bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.startups[id]
	if !ok {
		return apperr.New(apperr.NotFound, "startup not found")
	}
	st.IsFeatured = featured
	st.UpdatedAt = s.now()
	return nil
}

func (s *Store) DeleteStartup(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.startups[id]; !ok {
		return apperr.New(apperr.NotFound, "startup not found")
	}
	delete(s.startups, id)

	for voteID, v := range s.votes {
		if v.StartupID == id {
			delete(s.votes, voteID)
		}
	}
	for commentID, c := range s.comments {
		if c.StartupID == id {
			delete(s.comments, commentID)
		}
	}
	for paymentID, p := range s.payments {
		if p.StartupID == id {
			delete(s.payments, paymentID)
		}
	}
	return nil
}

// === Votes ===

func (s *Store) RecordVote(_ context.Context, userID, startupID uint, kind models.VoteKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for voteID, v := range s.votes {
		if v.UserID != userID || v.StartupID != startupID {
			continue
		}
		if v.Kind == kind {
			return nil
		}
		delete(s.votes, voteID)
	}

	s.nextVoteID++
	s.votes[s.nextVoteID] = &models.Vote{
		ID:        s.nextVoteID,
		UserID:    userID,
		StartupID: startupID,
		Kind:      kind,
		CreatedAt: s.now(),
	}
	return nil
}

func (s *Store) DeleteVote(_ context.Context, userID, startupID uint, kind models.VoteKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for voteID, v := range s.votes {
		if v.UserID == userID && v.StartupID == startupID && v.Kind == kind {
			delete(s.votes, voteID)
		}
	}
	return nil
}

func (s *Store) VotedStartupIDs(_ context.Context, userID uint) (map[uint]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	voted := make(map[uint]struct{})
	for _, v := range s.votes {
		if v.UserID == userID {
			voted[v.StartupID] = struct{}{}
		}
	}
	return voted, nil
}

func (s *Store) LikedStartups(_ context.Context, userID uint) ([]models.Startup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var likes []*models.Vote
	for _, v := range s.votes {
		if v.UserID == userID && v.Kind == models.VoteLike {
			likes = append(likes, v)
		}
	}
	sort.Slice(likes, func(i, j int) bool {
		return likes[i].CreatedAt.After(likes[j].CreatedAt)
	})

	var startups []models.Startup
	for _, v := range likes {
		if st, ok := s.startups[v.StartupID]; ok {
			startups = append(startups, *st)
		}
	}
	return startups, nil
}

// === Payments ===

func (s *Store) CompletePayment(_ context.Context, startupID, payerID uint, amountRub int64) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.startups[startupID]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "startup not found")
	}
	if st.Status != models.StatusApproved || st.PaymentStatus != models.PaymentUnpaid {
		return nil, apperr.New(apperr.Conflict, "startup is already paid or not approved")
	}

	now := s.now()
	st.PaymentStatus = models.PaymentPaid
	st.PaidAt = &now
	st.PublishedAt = &now
	st.UpdatedAt = now

	s.nextPaymentID++
	payment := &models.Payment{
		ID:                s.nextPaymentID,
		StartupID:         startupID,
		UserID:            payerID,
		AmountRub:         amountRub,
		Status:            models.PaymentStatusSucceeded,
		Provider:          models.PaymentProviderMock,
		ProviderPaymentID: uuid.NewString(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.payments[payment.ID] = payment

	stored := *payment
	return &stored, nil
}

// Payments returns the audit trail for a startup, oldest-first. Test
// helper, not part of the store contract.
func (s *Store) Payments(startupID uint) []models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payments []models.Payment
	for _, p := range s.payments {
		if p.StartupID == startupID {
			payments = append(payments, *p)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.Before(payments[j].CreatedAt)
	})
	return payments
}

// === Comments ===

func (s *Store) CreateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCommentID++
	comment.ID = s.nextCommentID
	comment.CreatedAt = s.now()

	stored := *comment
	s.comments[comment.ID] = &stored
	return nil
}

func (s *Store) CommentByID(_ context.Context, id uint) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "comment not found")
	}
	comment := *c
	return &comment, nil
}

func (s *Store) DeleteComment(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return apperr.New(apperr.NotFound, "comment not found")
	}
	delete(s.comments, id)
	return nil
}

func (s *Store) CommentsByStartup(_ context.Context, startupID uint) ([]store.CommentRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []store.CommentRow
	for _, c := range s.comments {
		if c.StartupID != startupID {
			continue
		}
		row := store.CommentRow{
			ID:        c.ID,
			StartupID: c.StartupID,
			UserID:    c.UserID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		}
		if u, ok := s.users[c.UserID]; ok {
			row.AuthorName = u.Name
			row.AuthorEmail = u.Email
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

// === Analytics ===

func (s *Store) CountUsers(_ context.Context, since *time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, u := range s.users {
		if since == nil || !u.CreatedAt.Before(*since) {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountVotes(_ context.Context, kind models.VoteKind, since *time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, v := range s.votes {
		if v.Kind != kind {
			continue
		}
		if since == nil || !v.CreatedAt.Before(*since) {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountStartupsByStatus(_ context.Context) (store.StatusCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var counts store.StatusCounts
	for _, st := range s.startups {
		counts.Total++
		switch st.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusApproved:
			counts.Approved++
		case models.StatusRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}

func (s *Store) RatedStartups(_ context.Context, geo string, publishedOnly bool, limit int) ([]store.StartupRating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	likeCounts := make(map[uint]int64)
	for _, v := range s.votes {
		if v.Kind == models.VoteLike {
			likeCounts[v.StartupID]++
		}
	}

	var candidates []*models.Startup
	for _, st := range s.startups {
		if st.Status != models.StatusApproved {
			continue
		}
		if publishedOnly && st.PaymentStatus != models.PaymentPaid {
			continue
		}
		if geo != "" && st.Geo != geo {
			continue
		}
		candidates = append(candidates, st)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if likeCounts[candidates[i].ID] != likeCounts[candidates[j].ID] {
			return likeCounts[candidates[i].ID] > likeCounts[candidates[j].ID]
		}
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	rows := make([]store.StartupRating, 0, len(candidates))
	for _, st := range candidates {
		rows = append(rows, store.StartupRating{
			ID:               st.ID,
			Name:             st.Name,
			Logo:             st.Logo,
			Geo:              st.Geo,
			ShortDescription: st.ShortDescription,
			LikesCount:       likeCounts[st.ID],
		})
	}
	return rows, nil
}
