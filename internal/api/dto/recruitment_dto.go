package dto

import "time"

// RegisterCandidateRequest is the multipart career sign-up form.
type RegisterCandidateRequest struct {
	FullName string `form:"fullName" validate:"required"`
	Phone    string `form:"phone" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// JobRequest creates or partially updates a job.
type JobRequest struct {
	Title              *string `json:"title"`
	Description        *string `json:"description"`
	Location           *string `json:"location"`
	SalaryRange        *string `json:"salaryRange"`
	ExperienceRequired *string `json:"experienceRequired"`
	EmploymentType     *string `json:"employmentType"`
	TotalRounds        *int    `json:"totalRounds" validate:"omitempty,min=1"`
	IsActive           *bool   `json:"isActive"`
}

// ApplyRequest submits an application.
type ApplyRequest struct {
	JobID string `json:"jobId" validate:"required"`
}

// ApplicationStatusRequest changes status and/or round.
type ApplicationStatusRequest struct {
	Status       *string `json:"status"`
	CurrentRound *int    `json:"currentRound"`
}

// JobResponse is a job posting.
type JobResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Location           string    `json:"location"`
	SalaryRange        string    `json:"salaryRange,omitempty"`
	ExperienceRequired string    `json:"experienceRequired,omitempty"`
	EmploymentType     string    `json:"employmentType,omitempty"`
	TotalRounds        int       `json:"totalRounds"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ApplicationResponse is a job application with display labels.
type ApplicationResponse struct {
	ID             string    `json:"id"`
	JobID          string    `json:"jobId"`
	JobTitle       string    `json:"jobTitle,omitempty"`
	CandidateID    string    `json:"candidateId"`
	CandidateName  string    `json:"candidateName,omitempty"`
	CandidateEmail string    `json:"candidateEmail,omitempty"`
	CandidatePhone string    `json:"candidatePhone,omitempty"`
	Status         string    `json:"status"`
	CurrentRound   int       `json:"currentRound"`
	TotalRounds    int       `json:"totalRounds,omitempty"`
	AppliedAt      time.Time `json:"appliedAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
