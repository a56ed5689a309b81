package repository

import (
	"context"
	"time"

	"talentdesk-backend/internal/domain"
)

type JobOpeningRepository interface {
	Create(ctx context.Context, job *domain.JobOpening) error
	GetByID(ctx context.Context, id string) (*domain.JobOpening, error)
	List(ctx context.Context, status domain.JobStatus) ([]domain.JobOpening, error)
	Update(ctx context.Context, job *domain.JobOpening) error
	Delete(ctx context.Context, id string) error
	CountReferrals(ctx context.Context, jobID string) (int32, error)
}

type ReferralRepository interface {
	Create(ctx context.Context, r *domain.JobReferral) error
	GetByID(ctx context.Context, id string) (*domain.JobReferral, error)
	// GetForUpdate locks the referral row for the duration of the
	// surrounding transaction; it serializes all per-candidate writes.
	GetForUpdate(ctx context.Context, id string) (*domain.JobReferral, error)
	GetByJobAndEmail(ctx context.Context, jobID, email string) (*domain.JobReferral, error)
	ListByJob(ctx context.Context, jobID string) ([]domain.JobReferral, error)
	ListByReferrer(ctx context.Context, employeeID string) ([]domain.JobReferral, error)
	ListAll(ctx context.Context) ([]domain.JobReferral, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReferralStatus) error
	SetResume(ctx context.Context, id, ref string, state domain.ResumeState) error
}

type InterviewRoundRepository interface {
	CreateBatch(ctx context.Context, rounds []domain.InterviewRound) error
	GetByID(ctx context.Context, id string) (*domain.InterviewRound, error)
	ListByJob(ctx context.Context, jobID string) ([]domain.InterviewRound, error)
}

type CandidateInterviewRepository interface {
	CreateBatch(ctx context.Context, interviews []domain.CandidateInterview) error
	GetByReferralAndRound(ctx context.Context, referralID, roundID string) (*domain.CandidateInterview, error)
	// ListByReferral returns instances joined with their round template,
	// ordered by round number.
	ListByReferral(ctx context.Context, referralID string) ([]domain.CandidateInterview, error)
	Update(ctx context.Context, iv *domain.CandidateInterview) error
}

type OfferRepository interface {
	Create(ctx context.Context, o *domain.CandidateOffer) error
	GetByID(ctx context.Context, id string) (*domain.CandidateOffer, error)
	GetByPublicToken(ctx context.Context, token string) (*domain.CandidateOffer, error)
	GetPending(ctx context.Context, referralID string) (*domain.CandidateOffer, error)
	ListByReferral(ctx context.Context, referralID string) ([]domain.CandidateOffer, error)
	MaxVersion(ctx context.Context, referralID string) (int32, error)
	Update(ctx context.Context, o *domain.CandidateOffer) error
	SetLetter(ctx context.Context, id, ref string, state domain.LetterState) error
	ListExpiredPending(ctx context.Context, now time.Time) ([]domain.CandidateOffer, error)
	ListStalledLetters(ctx context.Context, olderThan time.Time) ([]domain.CandidateOffer, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, h *domain.InterviewHistory) error
	// ListByReferral returns entries newest first with actor names resolved.
	ListByReferral(ctx context.Context, referralID string) ([]domain.InterviewHistory, error)
}

// DirectoryRepository is the narrow view of the employee/department
// directory this core consumes. The directory itself is owned elsewhere.
type DirectoryRepository interface {
	GetEmployee(ctx context.Context, id string) (*domain.Employee, error)
	FindDepartmentByName(ctx context.Context, name string) (*domain.Department, error)
	EmployeeCodeExists(ctx context.Context, code string) (bool, error)
	OfficeEmailExists(ctx context.Context, email string) (bool, error)
	CreateEmployee(ctx context.Context, e *domain.Employee) error
	AssignRole(ctx context.Context, employeeID, roleName string) error
}

// Repositories bundles every repository; ExecTx hands services a bundle
// bound to one transaction.
type Repositories struct {
	Jobs       JobOpeningRepository
	Referrals  ReferralRepository
	Rounds     InterviewRoundRepository
	Interviews CandidateInterviewRepository
	Offers     OfferRepository
	History    HistoryRepository
	Directory  DirectoryRepository
}

// TxRunner executes fn inside a single database transaction. The
// Repositories passed to fn are bound to that transaction; a returned
// error rolls everything back.
type TxRunner interface {
	ExecTx(ctx context.Context, fn func(Repositories) error) error
}
