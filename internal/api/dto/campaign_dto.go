package dto

import "time"

// CreateCampaignRequest creates a campaign. Dates are YYYY-MM-DD or RFC 3339.
type CreateCampaignRequest struct {
	Name        string `json:"name" validate:"required"`
	Client      string `json:"client" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Region      string `json:"region" validate:"required"`
	State       string `json:"state" validate:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// CampaignStatusRequest toggles a campaign.
type CampaignStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// AssignRequest attaches employees and retailers to a campaign.
type AssignRequest struct {
	CampaignID  string   `json:"campaignId" validate:"required"`
	EmployeeIDs []string `json:"employeeIds"`
	RetailerIDs []string `json:"retailerIds"`
}

// AssignmentStatusRequest is a subject's decision.
type AssignmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RecordPaymentRequest is an admin payout.
type RecordPaymentRequest struct {
	CampaignID string   `json:"campaignId" validate:"required"`
	RetailerID string   `json:"retailerId" validate:"required"`
	AmountPaid *float64 `json:"amountPaid"`
	UTRNumber  string   `json:"utrNumber"`
}

// PaymentPlanRequest is a client's plan for one retailer.
type PaymentPlanRequest struct {
	CampaignID  string  `json:"campaignId" validate:"required"`
	RetailerID  string  `json:"retailerId" validate:"required"`
	TotalAmount float64 `json:"totalAmount" validate:"required,gt=0"`
	Notes       string  `json:"notes"`
	DueDate     string  `json:"dueDate"`
}

// AssignmentResponse is one assignee and their decision.
type AssignmentResponse struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	AssignedAt time.Time `json:"assignedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CampaignResponse is a campaign with its assignments.
type CampaignResponse struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Client            string               `json:"client"`
	Type              string               `json:"type"`
	Region            string               `json:"region"`
	State             string               `json:"state"`
	Description       string               `json:"description,omitempty"`
	StartDate         *time.Time           `json:"startDate,omitempty"`
	EndDate           *time.Time           `json:"endDate,omitempty"`
	IsActive          bool                 `json:"isActive"`
	CreatedBy         string               `json:"createdBy,omitempty"`
	AssignedEmployees []AssignmentResponse `json:"assignedEmployees"`
	AssignedRetailers []AssignmentResponse `json:"assignedRetailers"`
	CreatedAt         time.Time            `json:"createdAt"`
}

// SubjectCampaignResponse is a campaign as seen by one assignee.
type SubjectCampaignResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Client      string     `json:"client"`
	Type        string     `json:"type"`
	Region      string     `json:"region"`
	State       string     `json:"state"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsActive    bool       `json:"isActive"`
	Status      string     `json:"status"`
}

// UTRResponse is one settlement entry.
type UTRResponse struct {
	UTRNumber string    `json:"utrNumber"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

// PaymentResponse is a retailer's payment for a campaign.
type PaymentResponse struct {
	ID              string        `json:"id"`
	CampaignID      string        `json:"campaign"`
	RetailerID      string        `json:"retailer"`
	TotalAmount     float64       `json:"totalAmount"`
	AmountPaid      float64       `json:"amountPaid"`
	RemainingAmount float64       `json:"remainingAmount"`
	PaymentStatus   string        `json:"paymentStatus"`
	Notes           string        `json:"notes,omitempty"`
	DueDate         *time.Time    `json:"dueDate,omitempty"`
	UTRNumbers      []UTRResponse `json:"utrNumbers"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
