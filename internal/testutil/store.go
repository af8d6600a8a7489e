// Package testutil provides in-memory stand-ins for the Postgres and Redis
// backed collaborators so services and handlers can be tested without infrastructure.
package testutil

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/campaign-service/internal/domain"
)

type assignmentKey struct {
	campaignID string
	subjectID  string
}

// Store holds every fake table. All fake repositories built from the same
// Store share its data, mirroring one database.
type Store struct {
	mu sync.Mutex

	admins       map[string]domain.Admin
	clientAdmins map[string]domain.ClientAdmin
	clientUsers  map[string]domain.ClientUser
	employees    map[string]domain.Employee
	retailers    map[string]domain.Retailer
	candidates   map[string]domain.CareerApplicant
	documents    map[string]domain.Document

	campaigns          map[string]domain.Campaign
	employeeAssign     map[assignmentKey]domain.Assignment
	retailerAssign     map[assignmentKey]domain.Assignment
	payments           map[string]domain.Payment
	jobs               map[string]domain.Job
	applications       map[string]domain.JobApplication
	reports            map[string]domain.EmployeeReport
	orderedReportIDs   []string
	orderedCampaignIDs []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		admins:         map[string]domain.Admin{},
		clientAdmins:   map[string]domain.ClientAdmin{},
		clientUsers:    map[string]domain.ClientUser{},
		employees:      map[string]domain.Employee{},
		retailers:      map[string]domain.Retailer{},
		candidates:     map[string]domain.CareerApplicant{},
		documents:      map[string]domain.Document{},
		campaigns:      map[string]domain.Campaign{},
		employeeAssign: map[assignmentKey]domain.Assignment{},
		retailerAssign: map[assignmentKey]domain.Assignment{},
		payments:       map[string]domain.Payment{},
		jobs:           map[string]domain.Job{},
		applications:   map[string]domain.JobApplication{},
		reports:        map[string]domain.EmployeeReport{},
	}
}

func newID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func foreignKeyViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint}
}

func sameEmail(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}

// Counts reports row counts per table, for asserting that nothing was written.
func (s *Store) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int{
		"admins":       len(s.admins),
		"clientAdmins": len(s.clientAdmins),
		"clientUsers":  len(s.clientUsers),
		"employees":    len(s.employees),
		"retailers":    len(s.retailers),
		"candidates":   len(s.candidates),
		"documents":    len(s.documents),
		"campaigns":    len(s.campaigns),
		"payments":     len(s.payments),
		"jobs":         len(s.jobs),
		"applications": len(s.applications),
		"reports":      len(s.reports),
	}
}
