package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/repository"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

// CampaignService manages the campaign registry.
type CampaignService struct {
	campaigns repository.CampaignRepository
}

// NewCampaignService constructs the service.
func NewCampaignService(campaigns repository.CampaignRepository) *CampaignService {
	return &CampaignService{campaigns: campaigns}
}

// CreateCampaignInput describes a new campaign.
type CreateCampaignInput struct {
	Name        string
	Client      string
	Type        string
	Region      string
	State       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Create registers an active campaign owned by the calling admin.
func (s *CampaignService) Create(ctx context.Context, actor auth.Principal, in CreateCampaignInput) (*domain.Campaign, error) {
	missing := map[string]any{}
	for field, v := range map[string]string{
		"name": in.Name, "client": in.Client, "type": in.Type, "region": in.Region, "state": in.State,
	} {
		if strings.TrimSpace(v) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("all fields are required", missing)
	}
	campaignType := domain.CampaignType(strings.TrimSpace(in.Type))
	if !campaignType.Valid() {
		return nil, apperrors.NewValidationError("invalid campaign type", map[string]any{"type": in.Type})
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, apperrors.NewValidationError("endDate must not be before startDate", nil)
	}

	campaign := &domain.Campaign{
		Name:        strings.TrimSpace(in.Name),
		Client:      strings.TrimSpace(in.Client),
		Type:        campaignType,
		Region:      strings.TrimSpace(in.Region),
		State:       strings.TrimSpace(in.State),
		Description: strings.TrimSpace(in.Description),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsActive:    true,
		CreatedBy:   actor.ID,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// List returns every campaign with its assignments.
func (s *CampaignService) List(ctx context.Context) ([]domain.Campaign, error) {
	return s.campaigns.List(ctx)
}

// Get loads one campaign.
func (s *CampaignService) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "campaign")
	}
	return campaign, nil
}

// SetActive toggles whether the campaign is running.
func (s *CampaignService) SetActive(ctx context.Context, id string, active bool) (*domain.Campaign, error) {
	if err := s.campaigns.SetActive(ctx, id, active); err != nil {
		return nil, notFoundOr(err, "campaign")
	}
	return s.Get(ctx, id)
}

// Delete removes a campaign together with its assignment and payment rows.
func (s *CampaignService) Delete(ctx context.Context, id string) error {
	return notFoundOr(s.campaigns.Delete(ctx, id), "campaign")
}
