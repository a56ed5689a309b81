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

type referralRepository struct {
	db dbtx
}

func NewReferralRepository(db dbtx) repository.ReferralRepository {
	return &referralRepository{db: db}
}

const referralColumns = `id, job_opening_id, referred_by_id, is_self_applied, candidate_name,
	candidate_email, candidate_phone, experience_years, notes, resume_ref, resume_state,
	status, created_at, updated_at`

func (r *referralRepository) Create(ctx context.Context, ref *domain.JobReferral) error {
	if ref.ID == "" {
		ref.ID = uuid.New().String()
	}
	if ref.Status == "" {
		ref.Status = domain.ReferralStatusApplied
	}
	if ref.ResumeState == "" {
		ref.ResumeState = domain.ResumeStateNone
	}
	now := time.Now()
	ref.CreatedAt = now
	ref.UpdatedAt = now
	query := `INSERT INTO job_referrals (` + referralColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.ExecContext(ctx, query,
		ref.ID, ref.JobOpeningID, ref.ReferredByID, ref.IsSelfApplied, ref.CandidateName,
		ref.CandidateEmail, ref.CandidatePhone, ref.ExperienceYears, ref.Notes,
		ref.ResumeRef, ref.ResumeState, ref.Status, ref.CreatedAt, ref.UpdatedAt)
	if isUniqueViolation(err, "unique_candidate_per_job") {
		return domain.NewConflict("candidate",
			"candidate "+ref.CandidateEmail+" already exists for this job opening", "")
	}
	return err
}

func scanReferral(row interface{ Scan(...any) error }) (*domain.JobReferral, error) {
	ref := &domain.JobReferral{}
	var phone, notes, resumeRef sql.NullString
	err := row.Scan(&ref.ID, &ref.JobOpeningID, &ref.ReferredByID, &ref.IsSelfApplied,
		&ref.CandidateName, &ref.CandidateEmail, &phone, &ref.ExperienceYears, &notes,
		&resumeRef, &ref.ResumeState, &ref.Status, &ref.CreatedAt, &ref.UpdatedAt)
	if err != nil {
		return nil, err
	}
	ref.CandidatePhone = phone.String
	ref.Notes = notes.String
	ref.ResumeRef = resumeRef.String
	return ref, nil
}

func (r *referralRepository) get(ctx context.Context, id string, forUpdate bool) (*domain.JobReferral, error) {
	query := `SELECT ` + referralColumns + ` FROM job_referrals WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	ref, err := scanReferral(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("referral", id)
	}
	if err != nil {
		return nil, err
	}
	return ref, nil
}

func (r *referralRepository) GetByID(ctx context.Context, id string) (*domain.JobReferral, error) {
	return r.get(ctx, id, false)
}

func (r *referralRepository) GetForUpdate(ctx context.Context, id string) (*domain.JobReferral, error) {
	return r.get(ctx, id, true)
}

func (r *referralRepository) GetByJobAndEmail(ctx context.Context, jobID, email string) (*domain.JobReferral, error) {
	query := `SELECT ` + referralColumns + ` FROM job_referrals
	          WHERE job_opening_id = $1 AND candidate_email = $2`
	ref, err := scanReferral(r.db.QueryRowContext(ctx, query, jobID, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("referral", "")
	}
	if err != nil {
		return nil, err
	}
	return ref, nil
}

func (r *referralRepository) list(ctx context.Context, where string, args ...any) ([]domain.JobReferral, error) {
	query := `SELECT ` + referralColumns + ` FROM job_referrals ` + where + ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []domain.JobReferral
	for rows.Next() {
		ref := domain.JobReferral{}
		var phone, notes, resumeRef sql.NullString
		if err := rows.Scan(&ref.ID, &ref.JobOpeningID, &ref.ReferredByID, &ref.IsSelfApplied,
			&ref.CandidateName, &ref.CandidateEmail, &phone, &ref.ExperienceYears, &notes,
			&resumeRef, &ref.ResumeState, &ref.Status, &ref.CreatedAt, &ref.UpdatedAt); err != nil {
			return nil, err
		}
		ref.CandidatePhone = phone.String
		ref.Notes = notes.String
		ref.ResumeRef = resumeRef.String
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *referralRepository) ListByJob(ctx context.Context, jobID string) ([]domain.JobReferral, error) {
	return r.list(ctx, `WHERE job_opening_id = $1`, jobID)
}

func (r *referralRepository) ListByReferrer(ctx context.Context, employeeID string) ([]domain.JobReferral, error) {
	return r.list(ctx, `WHERE referred_by_id = $1`, employeeID)
}

func (r *referralRepository) ListAll(ctx context.Context) ([]domain.JobReferral, error) {
	return r.list(ctx, ``)
}

func (r *referralRepository) UpdateStatus(ctx context.Context, id string, status domain.ReferralStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE job_referrals SET status=$1, updated_at=$2 WHERE id=$3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("referral", id)
	}
	return nil
}

func (r *referralRepository) SetResume(ctx context.Context, id, ref string, state domain.ResumeState) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE job_referrals SET resume_ref=$1, resume_state=$2, updated_at=$3 WHERE id=$4`,
		ref, state, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("referral", id)
	}
	return nil
}
