package dto

import "time"

// AddAdminRequest creates another platform admin.
type AddAdminRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AddClientAdminRequest creates a client organization admin.
type AddClientAdminRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	ContactNo        string `json:"contactNo" validate:"required"`
	OrganizationName string `json:"organizationName" validate:"required"`
}

// AddClientUserRequest creates a user under a client admin.
type AddClientUserRequest struct {
	Name                string `json:"name" validate:"required"`
	Email               string `json:"email" validate:"required,email"`
	ContactNo           string `json:"contactNo"`
	RoleProfile         string `json:"roleProfile"`
	ParentClientAdminID string `json:"parentClientAdmin" validate:"required"`
	Password            string `json:"password" validate:"required,min=6"`
}

// CreateEmployeeRequest adds a single employee. Dates are YYYY-MM-DD.
type CreateEmployeeRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	ContactNo    string `json:"contactNo" validate:"required"`
	Gender       string `json:"gender"`
	Address      string `json:"address"`
	DOB          string `json:"dob"`
	EmployeeType string `json:"employeeType"`
}

// ProfileUpdateRequest is the JSON form of an employee profile update.
type ProfileUpdateRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	Gender        *string `json:"gender"`
	Address       *string `json:"address"`
	DOB           *string `json:"dob"`
	NewPassword   *string `json:"newPassword"`
	ESINumber     *string `json:"esiNumber"`
	PFNumber      *string `json:"pfNumber"`
	UANNumber     *string `json:"uanNumber"`
	BankName      *string `json:"bankName"`
	AccountNumber *string `json:"accountNumber"`
	IFSC          *string `json:"ifsc"`
	BranchName    *string `json:"branchName"`
}

// RegisterRetailerRequest is the multipart retailer registration form.
type RegisterRetailerRequest struct {
	Name          string `form:"name" validate:"required"`
	ContactNo     string `form:"contactNo" validate:"required"`
	Email         string `form:"email" validate:"required,email"`
	Password      string `form:"password" validate:"required"`
	Gender        string `form:"gender"`
	GovtIDType    string `form:"govtIdType"`
	GovtIDNumber  string `form:"govtIdNumber"`
	ShopName      string `form:"shopName" validate:"required"`
	BusinessType  string `form:"businessType" validate:"required"`
	OwnershipType string `form:"ownershipType"`
	GSTNo         string `form:"gstNo"`
	PANCard       string `form:"panCard"`
	Address       string `form:"address"`
	State         string `form:"state" validate:"required"`
	City          string `form:"city" validate:"required"`
	Latitude      string `form:"latitude"`
	Longitude     string `form:"longitude"`
	PartOfIndia   string `form:"partOfIndia"`
	CreatedBy     string `form:"createdBy"`
	BankName      string `form:"bankName"`
	AccountNumber string `form:"accountNumber"`
	IFSC          string `form:"ifsc"`
	BranchName    string `form:"branchName"`
}

// AdminResponse is an admin without credentials.
type AdminResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClientAdminResponse is a client admin without credentials.
type ClientAdminResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	ContactNo        string `json:"contactNo"`
	OrganizationName string `json:"organizationName"`
}

// ClientUserResponse is a client user without credentials.
type ClientUserResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	ContactNo           string `json:"contactNo"`
	RoleProfile         string `json:"roleProfile"`
	ParentClientAdminID string `json:"parentClientAdmin"`
}

// EmployeeResponse is an employee profile.
type EmployeeResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Gender        string     `json:"gender,omitempty"`
	Address       string     `json:"address,omitempty"`
	DOB           *time.Time `json:"dob,omitempty"`
	EmployeeType  string     `json:"employeeType,omitempty"`
	IsFirstLogin  bool       `json:"isFirstLogin"`
	ESINumber     string     `json:"esiNumber,omitempty"`
	PFNumber      string     `json:"pfNumber,omitempty"`
	UANNumber     string     `json:"uanNumber,omitempty"`
	BankName      string     `json:"bankName,omitempty"`
	AccountNumber string     `json:"accountNumber,omitempty"`
	IFSC          string     `json:"ifsc,omitempty"`
	BranchName    string     `json:"branchName,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ShopResponse describes a retailer outlet.
type ShopResponse struct {
	Name          string  `json:"shopName"`
	BusinessType  string  `json:"businessType"`
	OwnershipType string  `json:"ownershipType,omitempty"`
	GSTNo         string  `json:"gstNo,omitempty"`
	PANCard       string  `json:"panCard,omitempty"`
	Address       string  `json:"address,omitempty"`
	State         string  `json:"state"`
	City          string  `json:"city"`
	Latitude      float64 `json:"latitude,omitempty"`
	Longitude     float64 `json:"longitude,omitempty"`
}

// RetailerResponse is a retailer profile.
type RetailerResponse struct {
	ID           string       `json:"id"`
	UniqueID     string       `json:"uniqueId"`
	RetailerCode string       `json:"retailerCode"`
	Name         string       `json:"name"`
	ContactNo    string       `json:"contactNo"`
	Email        string       `json:"email"`
	Gender       string       `json:"gender,omitempty"`
	GovtIDType   string       `json:"govtIdType,omitempty"`
	GovtIDNumber string       `json:"govtIdNumber,omitempty"`
	PartOfIndia  string       `json:"partOfIndia"`
	CreatedBy    string       `json:"createdBy"`
	Shop         ShopResponse `json:"shopDetails"`
	Documents    []string     `json:"documents,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// CandidateResponse is a career applicant.
type CandidateResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// BulkEmployeeResponse summarizes a spreadsheet import.
type BulkEmployeeResponse struct {
	Created      []EmployeeResponse `json:"created"`
	SkippedRows  []int              `json:"skippedRows"`
	CreatedCount int                `json:"createdCount"`
}
