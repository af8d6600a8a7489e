package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"

	"github.com/spec-kit/campaign-service/internal/api/dto"
	"github.com/spec-kit/campaign-service/internal/service"
)

// CareerHandler serves candidates and the admin side of the hiring pipeline.
type CareerHandler struct {
	recruitment *service.RecruitmentService
}

// NewCareerHandler constructs handler.
func NewCareerHandler(recruitment *service.RecruitmentService) *CareerHandler {
	return &CareerHandler{recruitment: recruitment}
}

// Register handles POST /api/career/register (multipart, optional "resume" file).
func (h *CareerHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterCandidateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	files, err := uploads(c)
	if err != nil {
		return err
	}
	in := service.RegisterCandidateInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	}
	if list := files["resume"]; len(list) > 0 {
		in.Resume = &list[0]
	}
	candidate, err := h.recruitment.RegisterCandidate(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "registration successful",
		"data":    candidateResponse(candidate),
	})
}

// ActiveJobs handles GET /api/career/jobs.
func (h *CareerHandler) ActiveJobs(c *fiber.Ctx) error {
	return h.listJobs(c, true)
}

// ListJobs handles GET /api/admin/jobs.
func (h *CareerHandler) ListJobs(c *fiber.Ctx) error {
	return h.listJobs(c, false)
}

func (h *CareerHandler) listJobs(c *fiber.Ctx, activeOnly bool) error {
	jobs, err := h.recruitment.ListJobs(c.UserContext(), activeOnly)
	if err != nil {
		return err
	}
	resp := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		resp = append(resp, jobResponse(&jobs[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Apply handles POST /api/career/apply.
func (h *CareerHandler) Apply(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.ApplyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	app, err := h.recruitment.Apply(c.UserContext(), actor.ID, req.JobID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "application submitted",
		"data":    applicationResponse(app),
	})
}

// MyApplications handles GET /api/career/applications.
func (h *CareerHandler) MyApplications(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	apps, err := h.recruitment.CandidateApplications(c.UserContext(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationDetails(apps)})
}

func jobInput(req dto.JobRequest) service.JobInput {
	return service.JobInput{
		Title:              req.Title,
		Description:        req.Description,
		Location:           req.Location,
		SalaryRange:        req.SalaryRange,
		ExperienceRequired: req.ExperienceRequired,
		EmploymentType:     req.EmploymentType,
		TotalRounds:        req.TotalRounds,
		IsActive:           req.IsActive,
	}
}

// CreateJob handles POST /api/admin/jobs.
func (h *CareerHandler) CreateJob(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	job, err := h.recruitment.CreateJob(c.UserContext(), actor, jobInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "job created",
		"data":    jobResponse(job),
	})
}

// GetJob handles GET /api/admin/jobs/:id.
func (h *CareerHandler) GetJob(c *fiber.Ctx) error {
	job, err := h.recruitment.GetJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// UpdateJob handles PUT /api/admin/jobs/:id.
func (h *CareerHandler) UpdateJob(c *fiber.Ctx) error {
	var req dto.JobRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	job, err := h.recruitment.UpdateJob(c.UserContext(), c.Params("id"), jobInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "job updated",
		"data":    jobResponse(job),
	})
}

// JobApplications handles GET /api/admin/jobs/:id/applications.
func (h *CareerHandler) JobApplications(c *fiber.Ctx) error {
	apps, err := h.recruitment.JobApplications(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationDetails(apps)})
}

// UpdateApplicationStatus handles PUT /api/admin/applications/:id/status.
func (h *CareerHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.ApplicationStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	app, err := h.recruitment.UpdateApplicationStatus(c.UserContext(), actor, c.Params("id"), service.UpdateApplicationInput{
		Status:       req.Status,
		CurrentRound: req.CurrentRound,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "application updated",
		"data":    applicationResponse(app),
	})
}

// DownloadResume handles GET /api/admin/applications/:id/resume.
func (h *CareerHandler) DownloadResume(c *fiber.Ctx) error {
	candidate, doc, err := h.recruitment.Resume(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	name := slug.Make(candidate.FullName)
	if name == "" {
		name = "candidate"
	}
	contentType := doc.ContentType
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	c.Attachment(name + "-resume" + filepath.Ext(doc.FileName))
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(doc.Data)
}
