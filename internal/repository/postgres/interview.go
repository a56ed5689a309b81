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

type interviewRoundRepository struct {
	db dbtx
}

func NewInterviewRoundRepository(db dbtx) repository.InterviewRoundRepository {
	return &interviewRoundRepository{db: db}
}

func (r *interviewRoundRepository) CreateBatch(ctx context.Context, rounds []domain.InterviewRound) error {
	query := `INSERT INTO interview_rounds (id, job_opening_id, name, description, round_number, is_required, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	now := time.Now()
	for i := range rounds {
		if rounds[i].ID == "" {
			rounds[i].ID = uuid.New().String()
		}
		rounds[i].CreatedAt = now
		_, err := r.db.ExecContext(ctx, query,
			rounds[i].ID, rounds[i].JobOpeningID, rounds[i].Name, rounds[i].Description,
			rounds[i].RoundNumber, rounds[i].IsRequired, rounds[i].CreatedAt)
		if isUniqueViolation(err, "unique_round_number_per_job") {
			return domain.NewConflict("interview round",
				"round number already defined for this job opening", "")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *interviewRoundRepository) GetByID(ctx context.Context, id string) (*domain.InterviewRound, error) {
	round := &domain.InterviewRound{}
	var description sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, job_opening_id, name, description, round_number, is_required, created_at
		 FROM interview_rounds WHERE id = $1`, id).
		Scan(&round.ID, &round.JobOpeningID, &round.Name, &description,
			&round.RoundNumber, &round.IsRequired, &round.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("interview round", id)
	}
	if err != nil {
		return nil, err
	}
	round.Description = description.String
	return round, nil
}

func (r *interviewRoundRepository) ListByJob(ctx context.Context, jobID string) ([]domain.InterviewRound, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, job_opening_id, name, description, round_number, is_required, created_at
		 FROM interview_rounds WHERE job_opening_id = $1 ORDER BY round_number ASC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []domain.InterviewRound
	for rows.Next() {
		round := domain.InterviewRound{}
		var description sql.NullString
		if err := rows.Scan(&round.ID, &round.JobOpeningID, &round.Name, &description,
			&round.RoundNumber, &round.IsRequired, &round.CreatedAt); err != nil {
			return nil, err
		}
		round.Description = description.String
		rounds = append(rounds, round)
	}
	return rounds, rows.Err()
}

type candidateInterviewRepository struct {
	db dbtx
}

func NewCandidateInterviewRepository(db dbtx) repository.CandidateInterviewRepository {
	return &candidateInterviewRepository{db: db}
}

func (r *candidateInterviewRepository) CreateBatch(ctx context.Context, interviews []domain.CandidateInterview) error {
	query := `INSERT INTO candidate_interviews (id, referral_id, round_id, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	now := time.Now()
	for i := range interviews {
		if interviews[i].ID == "" {
			interviews[i].ID = uuid.New().String()
		}
		interviews[i].CreatedAt = now
		interviews[i].UpdatedAt = now
		_, err := r.db.ExecContext(ctx, query,
			interviews[i].ID, interviews[i].ReferralID, interviews[i].RoundID,
			interviews[i].Status, interviews[i].CreatedAt, interviews[i].UpdatedAt)
		if isUniqueViolation(err, "unique_interview_per_round") {
			return domain.NewConflict("candidate interview",
				"interview process already started for this candidate", "")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

const candidateInterviewSelect = `SELECT ci.id, ci.referral_id, ci.round_id, ci.interviewer_id,
	ci.scheduled_at, ci.status, ci.feedback, ci.rating, ci.completed_at, ci.created_at, ci.updated_at,
	ir.round_number, ir.name, ir.is_required
	FROM candidate_interviews ci JOIN interview_rounds ir ON ir.id = ci.round_id`

func scanCandidateInterview(row interface{ Scan(...any) error }) (*domain.CandidateInterview, error) {
	iv := &domain.CandidateInterview{}
	var feedback sql.NullString
	err := row.Scan(&iv.ID, &iv.ReferralID, &iv.RoundID, &iv.InterviewerID,
		&iv.ScheduledAt, &iv.Status, &feedback, &iv.Rating, &iv.CompletedAt,
		&iv.CreatedAt, &iv.UpdatedAt, &iv.RoundNumber, &iv.RoundName, &iv.IsRequired)
	if err != nil {
		return nil, err
	}
	iv.Feedback = feedback.String
	return iv, nil
}

func (r *candidateInterviewRepository) GetByReferralAndRound(ctx context.Context, referralID, roundID string) (*domain.CandidateInterview, error) {
	query := candidateInterviewSelect + ` WHERE ci.referral_id = $1 AND ci.round_id = $2`
	iv, err := scanCandidateInterview(r.db.QueryRowContext(ctx, query, referralID, roundID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("candidate interview", "")
	}
	if err != nil {
		return nil, err
	}
	return iv, nil
}

func (r *candidateInterviewRepository) ListByReferral(ctx context.Context, referralID string) ([]domain.CandidateInterview, error) {
	query := candidateInterviewSelect + ` WHERE ci.referral_id = $1 ORDER BY ir.round_number ASC`
	rows, err := r.db.QueryContext(ctx, query, referralID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []domain.CandidateInterview
	for rows.Next() {
		iv := domain.CandidateInterview{}
		var feedback sql.NullString
		if err := rows.Scan(&iv.ID, &iv.ReferralID, &iv.RoundID, &iv.InterviewerID,
			&iv.ScheduledAt, &iv.Status, &feedback, &iv.Rating, &iv.CompletedAt,
			&iv.CreatedAt, &iv.UpdatedAt, &iv.RoundNumber, &iv.RoundName, &iv.IsRequired); err != nil {
			return nil, err
		}
		iv.Feedback = feedback.String
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}

func (r *candidateInterviewRepository) Update(ctx context.Context, iv *domain.CandidateInterview) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE candidate_interviews SET interviewer_id=$1, scheduled_at=$2, status=$3,
		 feedback=$4, rating=$5, completed_at=$6, updated_at=$7 WHERE id=$8`,
		iv.InterviewerID, iv.ScheduledAt, iv.Status, iv.Feedback, iv.Rating,
		iv.CompletedAt, time.Now(), iv.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("candidate interview", iv.ID)
	}
	return nil
}
