package domain

import "time"

// CampaignType enumerates campaign formats.
type CampaignType string

const (
	CampaignTypeRetail     CampaignType = "Retail"
	CampaignTypeDisplay    CampaignType = "Display"
	CampaignTypeSampling   CampaignType = "Sampling"
	CampaignTypeActivation CampaignType = "Activation"
	CampaignTypeOthers     CampaignType = "Others"
)

// Valid reports whether t is a known campaign type.
func (t CampaignType) Valid() bool {
	switch t {
	case CampaignTypeRetail, CampaignTypeDisplay, CampaignTypeSampling, CampaignTypeActivation, CampaignTypeOthers:
		return true
	}
	return false
}

// AssignmentStatus is a subject's response to a campaign assignment.
type AssignmentStatus string

const (
	AssignmentPending  AssignmentStatus = "pending"
	AssignmentAccepted AssignmentStatus = "accepted"
	AssignmentRejected AssignmentStatus = "rejected"
)

// ParseAssignmentDecision accepts only the statuses a subject may set.
func ParseAssignmentDecision(v string) (AssignmentStatus, bool) {
	switch AssignmentStatus(v) {
	case AssignmentAccepted, AssignmentRejected:
		return AssignmentStatus(v), true
	}
	return "", false
}

// Assignment links one employee or retailer to a campaign.
type Assignment struct {
	CampaignID string
	SubjectID  string
	Status     AssignmentStatus
	AssignedAt time.Time
	UpdatedAt  time.Time
}

// Campaign is a client-sponsored marketing initiative.
type Campaign struct {
	ID                string
	Name              string
	Client            string
	Type              CampaignType
	Region            string
	State             string
	Description       string
	StartDate         *time.Time
	EndDate           *time.Time
	IsActive          bool
	CreatedBy         string
	AssignedEmployees []Assignment
	AssignedRetailers []Assignment
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RetailerStatus returns the assignment status for retailerID, if assigned.
func (c *Campaign) RetailerStatus(retailerID string) (AssignmentStatus, bool) {
	for _, a := range c.AssignedRetailers {
		if a.SubjectID == retailerID {
			return a.Status, true
		}
	}
	return "", false
}
