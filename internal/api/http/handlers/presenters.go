package handlers

import (
	"github.com/spec-kit/campaign-service/internal/api/dto"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/repository"
)

func adminResponse(a *domain.Admin) dto.AdminResponse {
	return dto.AdminResponse{ID: a.ID, Name: a.Name, Email: a.Email, CreatedAt: a.CreatedAt}
}

func clientAdminResponse(a *domain.ClientAdmin) dto.ClientAdminResponse {
	return dto.ClientAdminResponse{
		ID:               a.ID,
		Name:             a.Name,
		Email:            a.Email,
		ContactNo:        a.ContactNo,
		OrganizationName: a.OrganizationName,
	}
}

func clientUserResponse(u *domain.ClientUser) dto.ClientUserResponse {
	return dto.ClientUserResponse{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		ContactNo:           u.ContactNo,
		RoleProfile:         string(u.RoleProfile),
		ParentClientAdminID: u.ParentClientAdminID,
	}
}

func employeeResponse(e *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:            e.ID,
		Name:          e.Name,
		Email:         e.Email,
		Phone:         e.Phone,
		Gender:        e.Gender,
		Address:       e.Address,
		DOB:           e.DOB,
		EmployeeType:  string(e.EmployeeType),
		IsFirstLogin:  e.IsFirstLogin,
		ESINumber:     e.Statutory.ESINumber,
		PFNumber:      e.Statutory.PFNumber,
		UANNumber:     e.Statutory.UANNumber,
		BankName:      e.Bank.BankName,
		AccountNumber: e.Bank.AccountNumber,
		IFSC:          e.Bank.IFSC,
		BranchName:    e.Bank.BranchName,
		CreatedAt:     e.CreatedAt,
	}
}

func retailerResponse(r *domain.Retailer, docs []domain.DocumentKind) dto.RetailerResponse {
	out := dto.RetailerResponse{
		ID:           r.ID,
		UniqueID:     r.UniqueID,
		RetailerCode: r.RetailerCode,
		Name:         r.Name,
		ContactNo:    r.ContactNo,
		Email:        r.Email,
		Gender:       r.Gender,
		GovtIDType:   r.GovtIDType,
		GovtIDNumber: r.GovtIDNumber,
		PartOfIndia:  r.PartOfIndia,
		CreatedBy:    string(r.CreatedBy),
		Shop: dto.ShopResponse{
			Name:          r.Shop.Name,
			BusinessType:  r.Shop.BusinessType,
			OwnershipType: r.Shop.OwnershipType,
			GSTNo:         r.Shop.GSTNo,
			PANCard:       r.Shop.PANCard,
			Address:       r.Shop.Address,
			State:         r.Shop.State,
			City:          r.Shop.City,
			Latitude:      r.Shop.Latitude,
			Longitude:     r.Shop.Longitude,
		},
		CreatedAt: r.CreatedAt,
	}
	for _, d := range docs {
		out.Documents = append(out.Documents, string(d))
	}
	return out
}

func candidateResponse(c *domain.CareerApplicant) dto.CandidateResponse {
	return dto.CandidateResponse{ID: c.ID, FullName: c.FullName, Email: c.Email, Phone: c.Phone}
}

func assignmentResponses(in []domain.Assignment) []dto.AssignmentResponse {
	out := make([]dto.AssignmentResponse, 0, len(in))
	for _, a := range in {
		out = append(out, dto.AssignmentResponse{
			ID:         a.SubjectID,
			Status:     string(a.Status),
			AssignedAt: a.AssignedAt,
			UpdatedAt:  a.UpdatedAt,
		})
	}
	return out
}

func campaignResponse(c *domain.Campaign) dto.CampaignResponse {
	return dto.CampaignResponse{
		ID:                c.ID,
		Name:              c.Name,
		Client:            c.Client,
		Type:              string(c.Type),
		Region:            c.Region,
		State:             c.State,
		Description:       c.Description,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		IsActive:          c.IsActive,
		CreatedBy:         c.CreatedBy,
		AssignedEmployees: assignmentResponses(c.AssignedEmployees),
		AssignedRetailers: assignmentResponses(c.AssignedRetailers),
		CreatedAt:         c.CreatedAt,
	}
}

func campaignResponses(in []domain.Campaign) []dto.CampaignResponse {
	out := make([]dto.CampaignResponse, 0, len(in))
	for i := range in {
		out = append(out, campaignResponse(&in[i]))
	}
	return out
}

// subjectCampaigns projects each campaign onto the given assignee's own status.
func subjectCampaigns(in []domain.Campaign, subjectID string, employee bool) []dto.SubjectCampaignResponse {
	out := make([]dto.SubjectCampaignResponse, 0, len(in))
	for _, c := range in {
		list := c.AssignedRetailers
		if employee {
			list = c.AssignedEmployees
		}
		status := domain.AssignmentPending
		for _, a := range list {
			if a.SubjectID == subjectID {
				status = a.Status
				break
			}
		}
		out = append(out, dto.SubjectCampaignResponse{
			ID:          c.ID,
			Name:        c.Name,
			Client:      c.Client,
			Type:        string(c.Type),
			Region:      c.Region,
			State:       c.State,
			Description: c.Description,
			StartDate:   c.StartDate,
			EndDate:     c.EndDate,
			IsActive:    c.IsActive,
			Status:      string(status),
		})
	}
	return out
}

func paymentResponse(p *domain.Payment) dto.PaymentResponse {
	utrs := make([]dto.UTRResponse, 0, len(p.UTRs))
	for _, u := range p.UTRs {
		utrs = append(utrs, dto.UTRResponse{UTRNumber: u.UTRNumber, Amount: u.Amount, Date: u.Date, UpdatedBy: u.UpdatedBy})
	}
	return dto.PaymentResponse{
		ID:              p.ID,
		CampaignID:      p.CampaignID,
		RetailerID:      p.RetailerID,
		TotalAmount:     p.TotalAmount,
		AmountPaid:      p.AmountPaid,
		RemainingAmount: p.RemainingAmount,
		PaymentStatus:   string(p.Status),
		Notes:           p.Notes,
		DueDate:         p.DueDate,
		UTRNumbers:      utrs,
		UpdatedAt:       p.UpdatedAt,
	}
}

func jobResponse(j *domain.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:                 j.ID,
		Title:              j.Title,
		Description:        j.Description,
		Location:           j.Location,
		SalaryRange:        j.SalaryRange,
		ExperienceRequired: j.ExperienceRequired,
		EmploymentType:     j.EmploymentType,
		TotalRounds:        j.TotalRounds,
		IsActive:           j.IsActive,
		CreatedAt:          j.CreatedAt,
	}
}

func applicationResponse(a *domain.JobApplication) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:           a.ID,
		JobID:        a.JobID,
		CandidateID:  a.CandidateID,
		Status:       string(a.Status),
		CurrentRound: a.CurrentRound,
		AppliedAt:    a.AppliedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func applicationDetails(in []repository.ApplicationDetail) []dto.ApplicationResponse {
	out := make([]dto.ApplicationResponse, 0, len(in))
	for i := range in {
		r := applicationResponse(&in[i].JobApplication)
		r.JobTitle = in[i].JobTitle
		r.CandidateName = in[i].CandidateName
		r.CandidateEmail = in[i].CandidateEmail
		r.CandidatePhone = in[i].CandidatePhone
		r.TotalRounds = in[i].TotalRounds
		out = append(out, r)
	}
	return out
}

func attachmentResponse(a *domain.ReportAttachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{ID: a.ID, FileName: a.FileName, ContentType: a.ContentType, Size: len(a.Data)}
}

func reportResponse(r *domain.EmployeeReport) dto.ReportResponse {
	out := dto.ReportResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		CampaignID:       r.CampaignID,
		RetailerID:       r.RetailerID,
		ReportType:       r.ReportType,
		Frequency:        r.Frequency,
		DateOfSubmission: r.DateOfSubmission,
		Attended:         r.Attended,
		NotVisitedReason: r.NotVisitedReason,
		OtherReasonText:  r.OtherReasonText,
		StockType:        r.StockType,
		Brand:            r.Brand,
		Product:          r.Product,
		SKU:              r.SKU,
		ProductType:      r.ProductType,
		Quantity:         r.Quantity,
		Remarks:          r.Remarks,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		ImageCount:       len(r.Images),
		HasBillCopy:      r.BillCopy != nil,
		CreatedAt:        r.CreatedAt,
	}
	for i := range r.Images {
		out.Images = append(out.Images, attachmentResponse(&r.Images[i]))
	}
	if r.BillCopy != nil {
		bill := attachmentResponse(r.BillCopy)
		out.BillCopy = &bill
	}
	return out
}

func reportSummaries(in []repository.ReportSummary) []dto.ReportResponse {
	out := make([]dto.ReportResponse, 0, len(in))
	for i := range in {
		r := reportResponse(&in[i].EmployeeReport)
		r.ImageCount = in[i].ImageCount
		r.HasBillCopy = in[i].HasBillCopy
		out = append(out, r)
	}
	return out
}
