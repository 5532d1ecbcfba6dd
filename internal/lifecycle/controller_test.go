package lifecycle

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swipeup-app/swipeup/internal/apperr"
	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/store/inmemory"
)

func newTestController(t *testing.T) (*Controller, *inmemory.Store) {
	t.Helper()
	s := inmemory.New()
	return NewController(s, 290), s
}

func submission(owner *uint) Submission {
	return Submission{
		Name:             "Test Startup",
		ShortDescription: "short",
		LongDescription:  "long",
		Geo:              models.GeoRussia,
		Stage:            "mvp",
		OwnerID:          owner,
	}
}

func TestSubmit_CreatesPendingUnpaidStartup(t *testing.T) {
	c, _ := newTestController(t)
	owner := uint(1)

	startup, err := c.Submit(context.Background(), submission(&owner))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, startup.Status)
	assert.Equal(t, models.PaymentUnpaid, startup.PaymentStatus)
	assert.Equal(t, int64(290), startup.PriceRub)
	require.NotNil(t, startup.UserID)
	assert.Equal(t, owner, *startup.UserID)
	assert.Nil(t, startup.PublishedAt)
}

func TestSubmit_ValidatesRequiredFields(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	sub := submission(nil)
	sub.Name = "  "
	_, err := c.Submit(ctx, sub)
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	sub = submission(nil)
	sub.Geo = "Moon"
	_, err = c.Submit(ctx, sub)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestApprove_MovesToApprovedUnpaid(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	startup, err := c.Submit(ctx, submission(nil))
	require.NoError(t, err)

	approved, err := c.Approve(ctx, startup.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	assert.Equal(t, models.PaymentUnpaid, approved.PaymentStatus)
}

func TestReject_RequiresReasonAndStoresItVerbatim(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	startup, err := c.Submit(ctx, submission(nil))
	require.NoError(t, err)

	_, err = c.Reject(ctx, startup.ID, "")
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	_, err = c.Reject(ctx, startup.ID, "   ")
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	rejected, err := c.Reject(ctx, startup.ID, "too generic")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	assert.Equal(t, "too generic", rejected.RejectReason)
}

func TestApprove_FromRejectedClearsReason(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	startup, err := c.Submit(ctx, submission(nil))
	require.NoError(t, err)

	_, err = c.Reject(ctx, startup.ID, "needs work")
	require.NoError(t, err)

	approved, err := c.Approve(ctx, startup.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	assert.Empty(t, approved.RejectReason)
}

func TestPay_PublishesAndRecordsOnePayment(t *testing.T) {
	c, s := newTestController(t)
	ctx := context.Background()
	owner := uint(1)

	startup, err := c.Submit(ctx, submission(&owner))
	require.NoError(t, err)
	_, err = c.Approve(ctx, startup.ID)
	require.NoError(t, err)

	payment, err := c.Pay(ctx, startup.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSucceeded, payment.Status)
	assert.Equal(t, int64(290), payment.AmountRub)
	assert.NotEmpty(t, payment.ProviderPaymentID)

	paid, err := s.StartupByID(ctx, startup.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PublishedAt)
	require.NotNil(t, paid.PaidAt)
	assert.True(t, paid.Published())

	assert.Len(t, s.Payments(startup.ID), 1)
}

func TestPay_SecondAttemptIsConflict(t *testing.T) {
	c, s := newTestController(t)
	ctx := context.Background()
	owner := uint(1)

	startup, err := c.Submit(ctx, submission(&owner))
	require.NoError(t, err)
	_, err = c.Approve(ctx, startup.ID)
	require.NoError(t, err)

	_, err = c.Pay(ctx, startup.ID, owner)
	require.NoError(t, err)

	_, err = c.Pay(ctx, startup.ID, owner)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))
	assert.Len(t, s.Payments(startup.ID), 1)
}

func TestPay_NotApprovedIsConflict(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()
	owner := uint(1)

	startup, err := c.Submit(ctx, submission(&owner))
	require.NoError(t, err)

	_, err = c.Pay(ctx, startup.ID, owner)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))
}

func TestPay_OwnerMismatchIsForbidden(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()
	owner := uint(1)

	startup, err := c.Submit(ctx, submission(&owner))
	require.NoError(t, err)
	_, err = c.Approve(ctx, startup.ID)
	require.NoError(t, err)

	_, err = c.Pay(ctx, startup.ID, 2)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))
}

func TestPay_AnonymousStartupPayableByAnyUser(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	startup, err := c.Submit(ctx, submission(nil))
	require.NoError(t, err)
	_, err = c.Approve(ctx, startup.ID)
	require.NoError(t, err)

	_, err = c.Pay(ctx, startup.ID, 42)
	require.NoError(t, err)
}

func TestPay_ConcurrentCallsOneWinner(t *testing.T) {
	c, s := newTestController(t)
	ctx := context.Background()
	owner := uint(1)

	startup, err := c.Submit(ctx, submission(&owner))
	require.NoError(t, err)
	_, err = c.Approve(ctx, startup.ID)
	require.NoError(t, err)

	const callers = 8
	results := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Pay(ctx, startup.ID, owner)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		if apperr.IsKind(err, apperr.Conflict) {
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, conflicted)
	assert.Len(t, s.Payments(startup.ID), 1)
}

func TestDelete_CascadesVotesAndComments(t *testing.T) {
	c, s := newTestController(t)
	ctx := context.Background()

	startup, err := c.Submit(ctx, submission(nil))
	require.NoError(t, err)
	_, err = c.Approve(ctx, startup.ID)
	require.NoError(t, err)

	require.NoError(t, s.RecordVote(ctx, 1, startup.ID, models.VoteLike))
	require.NoError(t, s.CreateComment(ctx, &models.Comment{
		UserID: 1, StartupID: startup.ID, Text: "nice",
	}))

	require.NoError(t, c.Delete(ctx, startup.ID))

	voted, err := s.VotedStartupIDs(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, voted)

	rows, err := s.CommentsByStartup(ctx, startup.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = s.StartupByID(ctx, startup.ID)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestDelete_UnknownStartupIsNotFound(t *testing.T) {
	c, _ := newTestController(t)

	err := c.Delete(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}
