package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/campaign-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCampaignAssigned         EventType = "campaign.assigned"
	EventAssignmentStatusChanged  EventType = "assignment.status_changed"
	EventPaymentRecorded          EventType = "payment.recorded"
	EventApplicationStatusChanged EventType = "application.status_changed"
	EventRetailerOTPRequested     EventType = "retailer.otp_requested"
	EventAdminPasswordReset       EventType = "admin.password_reset_requested"
)

// Actor identifies who caused an event.
type Actor struct {
	ID   string      `json:"id"`
	Role domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, actor Actor, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// CampaignAssignedPayload lists subjects newly attached to a campaign.
type CampaignAssignedPayload struct {
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	EmployeeIDs  []string `json:"employee_ids"`
	RetailerIDs  []string `json:"retailer_ids"`
}

// AssignmentStatusChangedPayload payload.
type AssignmentStatusChangedPayload struct {
	CampaignID  string                  `json:"campaign_id"`
	SubjectID   string                  `json:"subject_id"`
	SubjectRole domain.Role             `json:"subject_role"`
	Status      domain.AssignmentStatus `json:"status"`
}

// PaymentRecordedPayload payload.
type PaymentRecordedPayload struct {
	CampaignID string               `json:"campaign_id"`
	RetailerID string               `json:"retailer_id"`
	Amount     float64              `json:"amount"`
	UTRNumber  string               `json:"utr_number,omitempty"`
	Status     domain.PaymentStatus `json:"status"`
	Remaining  float64              `json:"remaining"`
}

// ApplicationStatusChangedPayload carries what the candidate email needs.
type ApplicationStatusChangedPayload struct {
	ApplicationID  string                   `json:"application_id"`
	CandidateName  string                   `json:"candidate_name"`
	CandidateEmail string                   `json:"candidate_email"`
	JobTitle       string                   `json:"job_title"`
	Status         domain.ApplicationStatus `json:"status"`
	CurrentRound   int                      `json:"current_round"`
	TotalRounds    int                      `json:"total_rounds"`
	RoundChanged   bool                     `json:"round_changed"`
}

// RetailerOTPRequestedPayload carries the plaintext code to deliver by SMS.
type RetailerOTPRequestedPayload struct {
	Phone string        `json:"phone"`
	Code  string        `json:"code"`
	TTL   time.Duration `json:"ttl"`
}

// AdminPasswordResetPayload carries the plaintext code to deliver by email.
type AdminPasswordResetPayload struct {
	Email string        `json:"email"`
	Name  string        `json:"name"`
	Code  string        `json:"code"`
	TTL   time.Duration `json:"ttl"`
}
