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

type jobOpeningRepository struct {
	db dbtx
}

func NewJobOpeningRepository(db dbtx) repository.JobOpeningRepository {
	return &jobOpeningRepository{db: db}
}

const jobOpeningColumns = `id, title, description, requirements, responsibilities, department, location,
	job_type, experience_level, salary_min, salary_max, openings, referral_bonus, closing_date,
	status, posted_by_id, created_at, updated_at`

func (r *jobOpeningRepository) Create(ctx context.Context, job *domain.JobOpening) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	query := `INSERT INTO job_openings (` + jobOpeningColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.Title, job.Description, job.Requirements, job.Responsibilities,
		job.Department, job.Location, job.JobType, job.ExperienceLevel,
		job.SalaryMin, job.SalaryMax, job.Openings, job.ReferralBonus, job.ClosingDate,
		job.Status, job.PostedByID, job.CreatedAt, job.UpdatedAt)
	return err
}

func scanJobOpening(row interface{ Scan(...any) error }) (*domain.JobOpening, error) {
	job := &domain.JobOpening{}
	var responsibilities, department sql.NullString
	err := row.Scan(&job.ID, &job.Title, &job.Description, &job.Requirements, &responsibilities,
		&department, &job.Location, &job.JobType, &job.ExperienceLevel,
		&job.SalaryMin, &job.SalaryMax, &job.Openings, &job.ReferralBonus, &job.ClosingDate,
		&job.Status, &job.PostedByID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}
	job.Responsibilities = responsibilities.String
	job.Department = department.String
	return job, nil
}

func (r *jobOpeningRepository) GetByID(ctx context.Context, id string) (*domain.JobOpening, error) {
	query := `SELECT ` + jobOpeningColumns + ` FROM job_openings WHERE id = $1`
	job, err := scanJobOpening(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("job opening", id)
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *jobOpeningRepository) List(ctx context.Context, status domain.JobStatus) ([]domain.JobOpening, error) {
	query := `SELECT ` + jobOpeningColumns + `,
	          (SELECT count(*) FROM job_referrals jr WHERE jr.job_opening_id = job_openings.id)
	          FROM job_openings`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.JobOpening
	for rows.Next() {
		job := domain.JobOpening{}
		var responsibilities, department sql.NullString
		if err := rows.Scan(&job.ID, &job.Title, &job.Description, &job.Requirements, &responsibilities,
			&department, &job.Location, &job.JobType, &job.ExperienceLevel,
			&job.SalaryMin, &job.SalaryMax, &job.Openings, &job.ReferralBonus, &job.ClosingDate,
			&job.Status, &job.PostedByID, &job.CreatedAt, &job.UpdatedAt, &job.ReferralCount); err != nil {
			return nil, err
		}
		job.Responsibilities = responsibilities.String
		job.Department = department.String
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobOpeningRepository) Update(ctx context.Context, job *domain.JobOpening) error {
	query := `UPDATE job_openings SET title=$1, description=$2, requirements=$3, responsibilities=$4,
	          department=$5, location=$6, job_type=$7, experience_level=$8, salary_min=$9, salary_max=$10,
	          openings=$11, referral_bonus=$12, closing_date=$13, status=$14, updated_at=$15
	          WHERE id=$16`
	res, err := r.db.ExecContext(ctx, query,
		job.Title, job.Description, job.Requirements, job.Responsibilities,
		job.Department, job.Location, job.JobType, job.ExperienceLevel,
		job.SalaryMin, job.SalaryMax, job.Openings, job.ReferralBonus, job.ClosingDate,
		job.Status, time.Now(), job.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("job opening", job.ID)
	}
	return nil
}

func (r *jobOpeningRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM job_openings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("job opening", id)
	}
	return nil
}

func (r *jobOpeningRepository) CountReferrals(ctx context.Context, jobID string) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM job_referrals WHERE job_opening_id = $1`, jobID).Scan(&count)
	return count, err
}
