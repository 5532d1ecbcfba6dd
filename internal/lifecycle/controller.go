// Package lifecycle drives the startup state machine:
// pending -> approved/rejected -> paid -> published.
package lifecycle

import (
	"context"
	"strings"

	"github.com/swipeup-app/swipeup/internal/apperr"
	"github.com/swipeup-app/swipeup/internal/models"
	"github.com/swipeup-app/swipeup/internal/store"
)

type Controller struct {
	store    store.Store
	priceRub int64
}

func NewController(s store.Store, priceRub int64) *Controller {
	if priceRub <= 0 {
		priceRub = models.DefaultPriceRub
	}
	return &Controller{store: s, priceRub: priceRub}
}

// Submission carries the fields of a new startup. OwnerID is nil for
// anonymous submissions.
type Submission struct {
	Name              string
	Logo              string
	ShortDescription  string
	LongDescription   string
	Geo               string
	Stage             string
	Tags              string
	TelegramUsername  string
	Email             string
	Website           string
	SeekingInvestment bool
	OwnerID           *uint
}

func (s *Submission) validate() error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return apperr.New(apperr.Validation, "name is required")
	case strings.TrimSpace(s.ShortDescription) == "":
		return apperr.New(apperr.Validation, "short description is required")
	case strings.TrimSpace(s.LongDescription) == "":
		return apperr.New(apperr.Validation, "long description is required")
	case strings.TrimSpace(s.Stage) == "":
		return apperr.New(apperr.Validation, "stage is required")
	}

	if s.Geo != models.GeoRussia && s.Geo != models.GeoWorldwide {
		return apperr.Newf(apperr.Validation, "unknown geo %q", s.Geo)
	}
	return nil
}

// Submit creates a startup in the pending state.
func (c *Controller) Submit(ctx context.Context, sub Submission) (*models.Startup, error) {
	if err := sub.validate(); err != nil {
		return nil, err
	}

	startup := &models.Startup{
		Name:              strings.TrimSpace(sub.Name),
		Logo:              sub.Logo,
		ShortDescription:  strings.TrimSpace(sub.ShortDescription),
		LongDescription:   strings.TrimSpace(sub.LongDescription),
		Geo:               sub.Geo,
		Stage:             sub.Stage,
		Tags:              sub.Tags,
		TelegramUsername:  sub.TelegramUsername,
		Email:             sub.Email,
		Website:           sub.Website,
		SeekingInvestment: sub.SeekingInvestment,
		Status:            models.StatusPending,
		PaymentStatus:     models.PaymentUnpaid,
		PriceRub:          c.priceRub,
		UserID:            sub.OwnerID,
	}

	if err := c.store.CreateStartup(ctx, startup); err != nil {
		return nil, err
	}
	return startup, nil
}

// Approve moves a startup to approved/unpaid. Permitted from any state,
// including re-approval of a rejected startup, which clears the stored
// reject reason.
func (c *Controller) Approve(ctx context.Context, id uint) (*models.Startup, error) {
	if err := c.store.SetStartupStatus(ctx, id, models.StatusApproved, ""); err != nil {
		return nil, err
	}
	return c.store.StartupByID(ctx, id)
}

// Reject moves a startup to rejected from any state. The reason is
// mandatory and stored verbatim.
func (c *Controller) Reject(ctx context.Context, id uint, reason string) (*models.Startup, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperr.New(apperr.Validation, "reject reason is required")
	}

	if err := c.store.SetStartupStatus(ctx, id, models.StatusRejected, reason); err != nil {
		return nil, err
	}
	return c.store.StartupByID(ctx, id)
}

// Pay completes the mock payment for an approved, unpaid startup and
// publishes it. When the startup has an owner, only the owner may pay;
// startups submitted anonymously are payable by any authenticated user.
// Concurrent calls are serialized by the store's guarded update, so the
// loser observes a Conflict.
func (c *Controller) Pay(ctx context.Context, startupID, payerID uint) (*models.Payment, error) {
	startup, err := c.store.StartupByID(ctx, startupID)
	if err != nil {
		return nil, err
	}

	if startup.UserID != nil && *startup.UserID != payerID {
		return nil, apperr.New(apperr.Forbidden, "only the owner can pay for this startup")
	}
	if startup.Status != models.StatusApproved {
		return nil, apperr.New(apperr.Conflict, "startup must be approved first")
	}
	if startup.PaymentStatus == models.PaymentPaid {
		return nil, apperr.New(apperr.Conflict, "startup is already paid")
	}

	return c.store.CompletePayment(ctx, startupID, payerID, startup.PriceRub)
}

// Delete removes a startup and, through the schema cascade, its votes,
// comments and payments.
func (c *Controller) Delete(ctx context.Context, id uint) error {
	return c.store.DeleteStartup(ctx, id)
}
