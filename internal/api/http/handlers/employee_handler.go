package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campaign-service/internal/api/dto"
	"github.com/spec-kit/campaign-service/internal/service"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

// EmployeeHandler serves the signed-in employee's own resources.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

// NewEmployeeHandler constructs handler.
func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// UpdateProfile handles PUT /api/employee/profile. It accepts JSON or a
// multipart form carrying the same fields plus document files.
func (h *EmployeeHandler) UpdateProfile(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	in, err := profileInput(c)
	if err != nil {
		return err
	}
	employee, err := h.employees.UpdateProfile(c.UserContext(), actor.ID, in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "profile updated",
		"data":    employeeResponse(employee),
	})
}

func profileInput(c *fiber.Ctx) (service.ProfileUpdateInput, error) {
	var req dto.ProfileUpdateRequest
	var in service.ProfileUpdateInput
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return in, apperrors.NewValidationError("invalid multipart form", nil)
		}
		req = dto.ProfileUpdateRequest{
			Name:          formValue(form, "name"),
			Phone:         formValue(form, "phone"),
			Gender:        formValue(form, "gender"),
			Address:       formValue(form, "address"),
			DOB:           formValue(form, "dob"),
			NewPassword:   formValue(form, "newPassword"),
			ESINumber:     formValue(form, "esiNumber"),
			PFNumber:      formValue(form, "pfNumber"),
			UANNumber:     formValue(form, "uanNumber"),
			BankName:      formValue(form, "bankName"),
			AccountNumber: formValue(form, "accountNumber"),
			IFSC:          formValue(form, "ifsc"),
			BranchName:    formValue(form, "branchName"),
		}
		files, err := uploads(c)
		if err != nil {
			return in, err
		}
		in.Documents = documentUploads(files)
	} else if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return in, apperrors.NewValidationError("invalid payload", nil)
		}
	}

	if req.DOB != nil {
		dob, err := parseDate("dob", *req.DOB)
		if err != nil {
			return in, err
		}
		in.DOB = dob
	}
	in.Name = req.Name
	in.Phone = req.Phone
	in.Gender = req.Gender
	in.Address = req.Address
	in.NewPassword = req.NewPassword
	in.ESINumber = req.ESINumber
	in.PFNumber = req.PFNumber
	in.UANNumber = req.UANNumber
	in.BankName = req.BankName
	in.AccountNumber = req.AccountNumber
	in.IFSC = req.IFSC
	in.BranchName = req.BranchName
	return in, nil
}

// Campaigns handles GET /api/employee/campaigns.
func (h *EmployeeHandler) Campaigns(c *fiber.Ctx) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	employee, campaigns, err := h.employees.Campaigns(c.UserContext(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"employee":  employeeResponse(employee),
			"campaigns": subjectCampaigns(campaigns, employee.ID, true),
		},
	})
}
