package service

import (
	"context"
	"time"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/events"
	"github.com/spec-kit/campaign-service/internal/persistence"
	"github.com/spec-kit/campaign-service/internal/repository"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

// AssignmentService attaches employees and retailers to campaigns and records
// their accept or reject decisions.
type AssignmentService struct {
	campaigns  repository.CampaignRepository
	payments   repository.PaymentRepository
	tx         persistence.Transactor
	dispatcher events.Dispatcher
	now        func() time.Time
}

// AssignmentDependencies bundles collaborators for assignment service.
type AssignmentDependencies struct {
	CampaignRepo repository.CampaignRepository
	PaymentRepo  repository.PaymentRepository
	Transactor   persistence.Transactor
	Dispatcher   events.Dispatcher
}

// NewAssignmentService constructs the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		campaigns:  deps.CampaignRepo,
		payments:   deps.PaymentRepo,
		tx:         deps.Transactor,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// Assign adds pending assignments for the given subjects. Existing assignments
// keep their status. Each retailer gets a placeholder payment if none exists.
func (s *AssignmentService) Assign(ctx context.Context, actor auth.Principal, campaignID string, employeeIDs, retailerIDs []string) (*domain.Campaign, error) {
	if campaignID == "" {
		return nil, apperrors.NewValidationError("campaignId is required", nil)
	}
	employeeIDs = uniqueNonEmpty(employeeIDs)
	retailerIDs = uniqueNonEmpty(retailerIDs)

	var campaign *domain.Campaign
	var addedEmployees, addedRetailers []string
	at := s.now().UTC()
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		campaign, err = s.campaigns.GetByID(ctx, campaignID)
		if err != nil {
			return notFoundOr(err, "campaign")
		}
		for _, id := range employeeIDs {
			inserted, err := s.campaigns.UpsertEmployeeAssignment(ctx, campaignID, id, at)
			if err != nil {
				return err
			}
			if inserted {
				addedEmployees = append(addedEmployees, id)
			}
		}
		for _, id := range retailerIDs {
			inserted, err := s.campaigns.UpsertRetailerAssignment(ctx, campaignID, id, at)
			if err != nil {
				return err
			}
			if inserted {
				addedRetailers = append(addedRetailers, id)
			}
			if _, err := s.payments.CreateIfAbsent(ctx, domain.NewPlaceholderPayment(campaignID, id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(addedEmployees)+len(addedRetailers) > 0 {
		s.publish(ctx, events.New(events.EventCampaignAssigned, actorOf(actor), events.CampaignAssignedPayload{
			CampaignID:   campaignID,
			CampaignName: campaign.Name,
			EmployeeIDs:  addedEmployees,
			RetailerIDs:  addedRetailers,
		}))
	}

	updated, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, notFoundOr(err, "campaign")
	}
	return updated, nil
}

// UpdateStatus records the caller's own decision on a campaign assignment.
// The caller must be the assigned employee or retailer.
func (s *AssignmentService) UpdateStatus(ctx context.Context, actor auth.Principal, campaignID, status string) (domain.AssignmentStatus, error) {
	decision, ok := domain.ParseAssignmentDecision(status)
	if !ok {
		return "", apperrors.NewValidationError("invalid status value", map[string]any{"status": status})
	}
	at := s.now().UTC()

	var err error
	switch actor.Role {
	case domain.RoleEmployee:
		err = s.campaigns.UpdateEmployeeStatus(ctx, campaignID, actor.ID, decision, at)
	case domain.RoleRetailer:
		err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := s.campaigns.UpdateRetailerStatus(ctx, campaignID, actor.ID, decision, at); err != nil {
				return err
			}
			if decision != domain.AssignmentAccepted {
				return nil
			}
			_, err := s.payments.CreateIfAbsent(ctx, domain.NewPlaceholderPayment(campaignID, actor.ID))
			return err
		})
	default:
		return "", apperrors.NewForbidden("only assigned employees or retailers can respond")
	}
	if err != nil {
		return "", notFoundOr(err, "campaign assignment")
	}

	s.publish(ctx, events.New(events.EventAssignmentStatusChanged, actorOf(actor), events.AssignmentStatusChangedPayload{
		CampaignID:  campaignID,
		SubjectID:   actor.ID,
		SubjectRole: actor.Role,
		Status:      decision,
	}))
	return decision, nil
}

func (s *AssignmentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, event)
	}
}

func uniqueNonEmpty(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
