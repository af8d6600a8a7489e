package domain

import (
	"math"
	"time"
)

// PaymentStatus is derived from amount paid against the plan total.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "Pending"
	PaymentPartiallyPaid PaymentStatus = "Partially Paid"
	PaymentCompleted     PaymentStatus = "Completed"
)

// DerivePaymentStatus computes the status for the given totals.
func DerivePaymentStatus(paid, total float64) PaymentStatus {
	switch {
	case paid <= 0:
		return PaymentPending
	case paid < total:
		return PaymentPartiallyPaid
	default:
		return PaymentCompleted
	}
}

// UTREntry is one settlement transaction recorded against a payment.
type UTREntry struct {
	UTRNumber string
	Amount    float64
	Date      time.Time
	UpdatedBy string
}

// Payment tracks what a retailer is owed for one campaign.
type Payment struct {
	ID              string
	CampaignID      string
	RetailerID      string
	TotalAmount     float64
	AmountPaid      float64
	RemainingAmount float64
	Status          PaymentStatus
	Notes           string
	DueDate         *time.Time
	PlanSetBy       *string
	LastUpdatedBy   *string
	UTRs            []UTREntry
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewPlaceholderPayment returns the empty payment created on retailer assignment.
func NewPlaceholderPayment(campaignID, retailerID string) *Payment {
	p := &Payment{CampaignID: campaignID, RetailerID: retailerID}
	p.Recompute()
	return p
}

// Recompute refreshes the derived fields from TotalAmount and AmountPaid.
func (p *Payment) Recompute() {
	p.RemainingAmount = p.Remaining()
	p.Status = DerivePaymentStatus(p.AmountPaid, p.TotalAmount)
}

// Remaining is what is still owed on the plan.
func (p *Payment) Remaining() float64 {
	return round2(p.TotalAmount - p.AmountPaid)
}

// HasPlan reports whether a client has already set the payment plan.
// Payouts recorded against a placeholder do not count as a plan.
func (p *Payment) HasPlan() bool {
	return p.PlanSetBy != nil || p.TotalAmount != 0
}

// SetPlan fills in the client's payment plan.
func (p *Payment) SetPlan(total float64, notes string, due *time.Time, by string) {
	p.TotalAmount = round2(total)
	p.Notes = notes
	p.DueDate = due
	p.PlanSetBy = &by
	p.LastUpdatedBy = &by
	p.Recompute()
}

// ApplyPayment adds amount to the paid total and appends a UTR entry when utr is set.
// It returns the appended entry, if any.
func (p *Payment) ApplyPayment(amount float64, utr, by string, at time.Time) *UTREntry {
	if amount > 0 {
		p.AmountPaid = round2(p.AmountPaid + amount)
	}
	p.LastUpdatedBy = &by
	p.Recompute()
	if utr == "" {
		return nil
	}
	entry := UTREntry{UTRNumber: utr, Amount: math.Max(amount, 0), Date: at, UpdatedBy: by}
	p.UTRs = append(p.UTRs, entry)
	return &entry
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
