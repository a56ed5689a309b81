package domain

import (
	"strings"
	"time"
)

// Employee is owned by the external directory component; this core only
// reads identities and creates the record at onboarding time.
type Employee struct {
	ID               string     `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	PersonalEmail    string     `json:"personal_email,omitempty"`
	OfficeEmail      string     `json:"office_email"`
	Phone            string     `json:"phone,omitempty"`
	EmployeeCode     string     `json:"employee_code"`
	DepartmentID     *string    `json:"department_id,omitempty"`
	DesignationID    *string    `json:"designation_id,omitempty"`
	ReportingManager string     `json:"reporting_manager,omitempty"`
	EmploymentType   string     `json:"employment_type"`
	PasswordHash     string     `json:"-"`
	JoiningDate      time.Time  `json:"joining_date"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
	TerminatedAt     *time.Time `json:"terminated_at,omitempty"`
}

func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SplitName breaks a candidate's full name into first/last on the first
// whitespace token. Lossy for multi-part given names; intake keeps the full
// string so nothing is thrown away upstream.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	first = parts[0]
	if len(parts) > 1 {
		last = strings.Join(parts[1:], " ")
	}
	return first, last
}

// EmploymentTypeForJob maps a job opening's type to the directory's
// employment-type label.
func EmploymentTypeForJob(t JobType) string {
	switch t {
	case JobTypePartTime:
		return "Part-time"
	case JobTypeContract:
		return "Contract"
	case JobTypeInternship:
		return "Internship"
	default:
		return "Full-time"
	}
}
