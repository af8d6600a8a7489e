package domain

import "time"

// Admin is a platform operator.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ClientAdmin represents the sponsoring organization's primary account.
type ClientAdmin struct {
	ID                   string
	Name                 string
	Email                string
	ContactNo            string
	PasswordHash         string
	OrganizationName     string
	RegistrationUsername string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ClientRoleProfile scopes what a client user oversees.
type ClientRoleProfile string

const (
	ClientRoleNational   ClientRoleProfile = "National"
	ClientRoleRegional   ClientRoleProfile = "Regional"
	ClientRoleState      ClientRoleProfile = "State"
	ClientRoleKeyAccount ClientRoleProfile = "Key Account"
)

// Valid reports whether p is empty or a known profile.
func (p ClientRoleProfile) Valid() bool {
	switch p {
	case "", ClientRoleNational, ClientRoleRegional, ClientRoleState, ClientRoleKeyAccount:
		return true
	}
	return false
}

// ClientUser is a secondary client account owned by a ClientAdmin.
type ClientUser struct {
	ID                  string
	Name                string
	Email               string
	ContactNo           string
	PasswordHash        string
	RoleProfile         ClientRoleProfile
	ParentClientAdminID string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EmployeeType gates which profile fields an employee may edit.
type EmployeeType string

const (
	EmployeeTypeUnset       EmployeeType = ""
	EmployeeTypePermanent   EmployeeType = "Permanent"
	EmployeeTypeContractual EmployeeType = "Contractual"
)

// NormalizeEmployeeType maps unknown values to EmployeeTypeUnset.
func NormalizeEmployeeType(v string) EmployeeType {
	switch EmployeeType(v) {
	case EmployeeTypePermanent, EmployeeTypeContractual:
		return EmployeeType(v)
	}
	return EmployeeTypeUnset
}

// BankDetails holds payout account data.
type BankDetails struct {
	BankName      string
	AccountNumber string
	IFSC          string
	BranchName    string
}

// StatutoryNumbers are only editable by permanent employees.
type StatutoryNumbers struct {
	ESINumber string
	PFNumber  string
	UANNumber string
}

// IsZero reports whether no statutory number is set.
func (s StatutoryNumbers) IsZero() bool {
	return s.ESINumber == "" && s.PFNumber == "" && s.UANNumber == ""
}

// Employee is an internal field worker.
type Employee struct {
	ID               string
	Name             string
	Email            string
	Phone            string
	Gender           string
	Address          string
	DOB              *time.Time
	EmployeeType     EmployeeType
	PasswordHash     string
	IsFirstLogin     bool
	Statutory        StatutoryNumbers
	Bank             BankDetails
	CreatedByAdminID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RetailerCreator records who onboarded a retailer.
type RetailerCreator string

const (
	RetailerCreatedBySelf     RetailerCreator = "RetailerSelf"
	RetailerCreatedByEmployee RetailerCreator = "Employee"
)

// Shop describes a retailer's outlet.
type Shop struct {
	Name          string
	BusinessType  string
	OwnershipType string
	GSTNo         string
	PANCard       string
	Address       string
	State         string
	City          string
	Latitude      float64
	Longitude     float64
}

// Retailer is an outlet owner participating in campaigns.
// UniqueID and RetailerCode are assigned once at creation.
type Retailer struct {
	ID           string
	UniqueID     string
	RetailerCode string
	Name         string
	ContactNo    string
	Email        string
	Gender       string
	GovtIDType   string
	GovtIDNumber string
	PartOfIndia  string
	CreatedBy    RetailerCreator
	Shop         Shop
	Bank         BankDetails
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CareerApplicant is an external job candidate.
type CareerApplicant struct {
	ID           string
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DocumentKind names an uploaded identity file slot.
type DocumentKind string

const (
	DocumentResume           DocumentKind = "resume"
	DocumentGovtIDPhoto      DocumentKind = "govtIdPhoto"
	DocumentPersonPhoto      DocumentKind = "personPhoto"
	DocumentSignature        DocumentKind = "signature"
	DocumentOutletPhoto      DocumentKind = "outletPhoto"
	DocumentRegistrationForm DocumentKind = "registrationForm"
	DocumentAadhaarFront     DocumentKind = "aadhaarFront"
	DocumentAadhaarBack      DocumentKind = "aadhaarBack"
	DocumentPANCard          DocumentKind = "panCard"
	DocumentFamilyPhoto      DocumentKind = "familyPhoto"
	DocumentBankProof        DocumentKind = "bankProof"
	DocumentESIForm          DocumentKind = "esiForm"
	DocumentPFForm           DocumentKind = "pfForm"
	DocumentEmploymentForm   DocumentKind = "employmentForm"
	DocumentCV               DocumentKind = "cv"
)

// RetailerDocumentKinds lists the upload fields accepted at retailer registration.
var RetailerDocumentKinds = []DocumentKind{
	DocumentGovtIDPhoto, DocumentPersonPhoto, DocumentSignature, DocumentOutletPhoto, DocumentRegistrationForm,
}

// EmployeeDocumentKinds lists the upload fields accepted on employee profile update.
var EmployeeDocumentKinds = []DocumentKind{
	DocumentAadhaarFront, DocumentAadhaarBack, DocumentPANCard, DocumentPersonPhoto, DocumentFamilyPhoto,
	DocumentBankProof, DocumentESIForm, DocumentPFForm, DocumentEmploymentForm, DocumentCV,
}

// Document is a binary file attached to an identity record.
type Document struct {
	ID          string
	OwnerID     string
	Kind        DocumentKind
	FileName    string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}
