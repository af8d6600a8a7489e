package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/events"
	"github.com/spec-kit/campaign-service/internal/persistence"
	"github.com/spec-kit/campaign-service/internal/repository"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

// PaymentService maintains the per-retailer payment ledger.
type PaymentService struct {
	campaigns  repository.CampaignRepository
	payments   repository.PaymentRepository
	tx         persistence.Transactor
	dispatcher events.Dispatcher
	now        func() time.Time
}

// PaymentDependencies bundles collaborators for payment service.
type PaymentDependencies struct {
	CampaignRepo repository.CampaignRepository
	PaymentRepo  repository.PaymentRepository
	Transactor   persistence.Transactor
	Dispatcher   events.Dispatcher
}

// NewPaymentService constructs the service.
func NewPaymentService(deps PaymentDependencies) *PaymentService {
	return &PaymentService{
		campaigns:  deps.CampaignRepo,
		payments:   deps.PaymentRepo,
		tx:         deps.Transactor,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// RecordPaymentInput is an admin payout entry.
type RecordPaymentInput struct {
	CampaignID string
	RetailerID string
	AmountPaid *float64
	UTRNumber  string
}

// RecordPayment adds a payout to an accepted retailer's payment.
func (s *PaymentService) RecordPayment(ctx context.Context, actor auth.Principal, in RecordPaymentInput) (*domain.Payment, error) {
	if in.CampaignID == "" || in.RetailerID == "" {
		return nil, apperrors.NewValidationError("campaignId and retailerId are required", nil)
	}
	amount := 0.0
	if in.AmountPaid != nil {
		amount = *in.AmountPaid
	}
	if amount < 0 {
		return nil, apperrors.NewValidationError("amountPaid must not be negative", nil)
	}
	utr := strings.TrimSpace(in.UTRNumber)

	var payment *domain.Payment
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requireAccepted(ctx, in.CampaignID, in.RetailerID); err != nil {
			return err
		}
		var err error
		payment, err = s.payments.GetForUpdate(ctx, in.CampaignID, in.RetailerID)
		if err != nil {
			return notFoundOr(err, "payment plan")
		}
		entry := payment.ApplyPayment(amount, utr, actor.ID, s.now().UTC())
		if err := s.payments.Update(ctx, payment); err != nil {
			return err
		}
		if entry != nil {
			return s.payments.AddUTR(ctx, payment.ID, *entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.EventPaymentRecorded, actorOf(actor), events.PaymentRecordedPayload{
		CampaignID: in.CampaignID,
		RetailerID: in.RetailerID,
		Amount:     amount,
		UTRNumber:  utr,
		Status:     payment.Status,
		Remaining:  payment.RemainingAmount,
	}))
	return payment, nil
}

// SetPlanInput is a client's payment plan for one retailer.
type SetPlanInput struct {
	CampaignID  string
	RetailerID  string
	TotalAmount float64
	Notes       string
	DueDate     *time.Time
}

// SetPlan fills in the placeholder payment created at assignment. A plan that
// was already set is never overwritten.
func (s *PaymentService) SetPlan(ctx context.Context, actor auth.Principal, in SetPlanInput) (*domain.Payment, error) {
	if in.CampaignID == "" || in.RetailerID == "" {
		return nil, apperrors.NewValidationError("campaignId and retailerId are required", nil)
	}
	if in.TotalAmount <= 0 {
		return nil, apperrors.NewValidationError("totalAmount must be greater than zero", nil)
	}

	var payment *domain.Payment
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requireAccepted(ctx, in.CampaignID, in.RetailerID); err != nil {
			return err
		}
		existing, err := s.payments.GetForUpdate(ctx, in.CampaignID, in.RetailerID)
		switch {
		case err == nil && existing.HasPlan():
			return apperrors.NewConflict("payment plan already exists", map[string]any{"paymentId": existing.ID})
		case err == nil:
			payment = existing
		case apperrors.IsNotFound(err):
			payment = domain.NewPlaceholderPayment(in.CampaignID, in.RetailerID)
			if _, err := s.payments.CreateIfAbsent(ctx, payment); err != nil {
				return err
			}
			if payment, err = s.payments.GetForUpdate(ctx, in.CampaignID, in.RetailerID); err != nil {
				return err
			}
		default:
			return err
		}
		payment.SetPlan(in.TotalAmount, strings.TrimSpace(in.Notes), in.DueDate, actor.ID)
		return s.payments.Update(ctx, payment)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// ListByCampaign returns every payment of a campaign with its UTR history.
func (s *PaymentService) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Payment, error) {
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return nil, notFoundOr(err, "campaign")
	}
	return s.payments.ListByCampaign(ctx, campaignID)
}

func (s *PaymentService) requireAccepted(ctx context.Context, campaignID, retailerID string) error {
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return notFoundOr(err, "campaign")
	}
	assignment, err := s.campaigns.GetRetailerAssignment(ctx, campaignID, retailerID)
	if err != nil && !apperrors.IsNotFound(err) {
		return err
	}
	if err != nil || assignment.Status != domain.AssignmentAccepted {
		return apperrors.NewValidationError("retailer has not accepted this campaign yet", nil)
	}
	return nil
}

func (s *PaymentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, event)
	}
}
