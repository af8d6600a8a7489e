package domain

import "time"

// Job is an open position candidates can apply to.
type Job struct {
	ID                 string
	Title              string
	Description        string
	Location           string
	SalaryRange        string
	ExperienceRequired string
	EmploymentType     string
	TotalRounds        int
	IsActive           bool
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ApplicationStatus tracks a candidate through the hiring rounds.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "Pending"
	ApplicationUnderReview ApplicationStatus = "Under Review"
	ApplicationShortlisted ApplicationStatus = "Shortlisted"
	ApplicationRejected    ApplicationStatus = "Rejected"
	ApplicationSelected    ApplicationStatus = "Selected"
)

var applicationRank = map[ApplicationStatus]int{
	ApplicationPending:     0,
	ApplicationUnderReview: 1,
	ApplicationShortlisted: 2,
	ApplicationSelected:    3,
}

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	if s == ApplicationRejected {
		return true
	}
	_, ok := applicationRank[s]
	return ok
}

// Terminal reports whether no further transition is allowed.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationSelected || s == ApplicationRejected
}

// CanTransition reports whether an application may move from one status to another.
// Progress is forward only, steps may be skipped, and Rejected is reachable from
// any non-terminal status. Staying in place is allowed so rounds can advance.
func CanTransition(from, to ApplicationStatus) bool {
	if !from.Valid() || !to.Valid() || from.Terminal() {
		return false
	}
	if to == ApplicationRejected || from == to {
		return true
	}
	return applicationRank[to] > applicationRank[from]
}

// JobApplication links a candidate to a job.
type JobApplication struct {
	ID           string
	CandidateID  string
	JobID        string
	Status       ApplicationStatus
	CurrentRound int
	AppliedAt    time.Time
	UpdatedAt    time.Time
}
