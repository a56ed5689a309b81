package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/repository"

	"github.com/google/uuid"
)

// directoryRepository is the default implementation of the directory
// collaborator; the employee/department tables are owned by the wider HR
// platform, this core only touches the columns onboarding needs.
type directoryRepository struct {
	db dbtx
}

func NewDirectoryRepository(db dbtx) repository.DirectoryRepository {
	return &directoryRepository{db: db}
}

func (r *directoryRepository) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	e := &domain.Employee{}
	var phone, personalEmail sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, personal_email, office_email, phone, employee_code,
		 department_id, designation_id, reporting_manager, employment_type, joining_date, is_active, created_at
		 FROM employees WHERE id = $1`, id).
		Scan(&e.ID, &e.FirstName, &e.LastName, &personalEmail, &e.OfficeEmail, &phone,
			&e.EmployeeCode, &e.DepartmentID, &e.DesignationID, &e.ReportingManager,
			&e.EmploymentType, &e.JoiningDate, &e.IsActive, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("employee", id)
	}
	if err != nil {
		return nil, err
	}
	e.PersonalEmail = personalEmail.String
	e.Phone = phone.String
	return e, nil
}

func (r *directoryRepository) FindDepartmentByName(ctx context.Context, name string) (*domain.Department, error) {
	d := &domain.Department{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM departments WHERE name = $1`, name).Scan(&d.ID, &d.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("department", name)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *directoryRepository) EmployeeCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE employee_code = $1)`, code).Scan(&exists)
	return exists, err
}

func (r *directoryRepository) OfficeEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE office_email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *directoryRepository) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (id, first_name, last_name, personal_email, office_email, phone,
		 employee_code, department_id, designation_id, reporting_manager, employment_type,
		 password_hash, joining_date, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		e.ID, e.FirstName, e.LastName, e.PersonalEmail, e.OfficeEmail, e.Phone,
		e.EmployeeCode, e.DepartmentID, e.DesignationID, e.ReportingManager, e.EmploymentType,
		e.PasswordHash, e.JoiningDate, e.IsActive, e.CreatedAt)
	if isUniqueViolation(err, "") {
		return domain.NewConflict("employee", "employee code or office email already in use", "")
	}
	return err
}

func (r *directoryRepository) AssignRole(ctx context.Context, employeeID, roleName string) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO employee_roles (employee_id, role_id)
		 SELECT $1, id FROM roles WHERE name = $2`, employeeID, roleName)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("role", roleName)
	}
	return nil
}
