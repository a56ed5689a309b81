package service

import (
	"context"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/storage"
)

// Upload carries raw document bytes handed in at the API boundary. File
// contents are never inspected, only stored and served back.
type Upload struct {
	Data        []byte
	Filename    string
	ContentType string
}

type CreateJobInput struct {
	Title            string
	Description      string
	Requirements     string
	Responsibilities string
	Department       string
	Location         string
	JobType          domain.JobType
	ExperienceLevel  domain.ExperienceLevel
	SalaryMin        *int64
	SalaryMax        *int64
	Openings         int32
	ReferralBonus    *int64
	ClosingDate      *time.Time
	PostedByID       string
}

type JobCatalogService interface {
	CreateJob(ctx context.Context, input CreateJobInput) (*domain.JobOpening, error)
	GetJob(ctx context.Context, id string) (*domain.JobOpening, error)
	ListJobs(ctx context.Context, status domain.JobStatus) ([]domain.JobOpening, error)
	// ListOpenJobs backs the unauthenticated careers surface.
	ListOpenJobs(ctx context.Context) ([]domain.JobOpening, error)
	UpdateJob(ctx context.Context, id string, upd domain.JobOpeningUpdate) (*domain.JobOpening, error)
	DeleteJob(ctx context.Context, id string) error
}

type CreateReferralInput struct {
	JobOpeningID    string
	ReferredByID    string
	CandidateName   string
	CandidateEmail  string
	CandidatePhone  string
	ExperienceYears int32
	Notes           string
	Resume          *Upload
}

type ApplicationInput struct {
	JobOpeningID    string
	CandidateName   string
	CandidateEmail  string
	CandidatePhone  string
	ExperienceYears int32
	Notes           string
	Resume          *Upload
}

type ReferralService interface {
	CreateReferral(ctx context.Context, input CreateReferralInput) (*domain.JobReferral, error)
	ApplyForJob(ctx context.Context, input ApplicationInput) (*domain.JobReferral, error)
	GetReferral(ctx context.Context, id string) (*domain.JobReferral, error)
	ListByJob(ctx context.Context, jobID string) ([]domain.JobReferral, error)
	ListByReferrer(ctx context.Context, employeeID string) ([]domain.JobReferral, error)
	ListAll(ctx context.Context) ([]domain.JobReferral, error)
	GetResume(ctx context.Context, referralID string) (*storage.Document, error)
}

type RoundInput struct {
	Name        string
	Description string
	RoundNumber int32
	IsRequired  bool
}

type UpdateRoundStatusInput struct {
	ReferralID string
	RoundID    string
	Status     domain.RoundStatus
	Feedback   string
	Rating     *int32
	ActorID    string
}

// InterviewProgress is the per-candidate pipeline view: every round
// instance plus the derived offer-eligibility flag.
type InterviewProgress struct {
	Referral     *domain.JobReferral         `json:"referral"`
	Interviews   []domain.CandidateInterview `json:"interviews"`
	CanMakeOffer bool                        `json:"can_make_offer"`
}

type InterviewService interface {
	DefineRounds(ctx context.Context, jobID string, rounds []RoundInput) ([]domain.InterviewRound, error)
	ListRounds(ctx context.Context, jobID string) ([]domain.InterviewRound, error)
	StartProcess(ctx context.Context, referralID, actorID string) (*domain.JobReferral, error)
	Shortlist(ctx context.Context, referralID, actorID string) (*domain.JobReferral, error)
	// Withdraw closes the candidacy at the candidate's request; any pending
	// offer is revoked alongside.
	Withdraw(ctx context.Context, referralID, actorID, reason string) (*domain.JobReferral, error)
	AssignInterviewer(ctx context.Context, referralID, roundID, interviewerID, actorID string, scheduledAt *time.Time) (*domain.CandidateInterview, error)
	UpdateRoundStatus(ctx context.Context, input UpdateRoundStatusInput) (*InterviewProgress, error)
	GetProgress(ctx context.Context, referralID string) (*InterviewProgress, error)
	GetHistory(ctx context.Context, referralID string) ([]domain.InterviewHistory, error)
}

type MakeOfferInput struct {
	ReferralID string
	ValidUntil time.Time
	ActorID    string
	Letter     *Upload
}

// PublicOffer is the candidate-facing offer view reachable only through
// the unguessable link token.
type PublicOffer struct {
	Offer         *domain.CandidateOffer `json:"offer"`
	CandidateName string                 `json:"candidate_name"`
	JobTitle      string                 `json:"job_title"`
	HasLetter     bool                   `json:"has_letter"`
}

// OfferOverview partitions a candidate's offer history and reports whether
// a fresh offer could be extended right now.
type OfferOverview struct {
	Original        *domain.CandidateOffer  `json:"original,omitempty"`
	Revised         []domain.CandidateOffer `json:"revised,omitempty"`
	CanMakeNewOffer bool                    `json:"can_make_new_offer"`
}

type OfferService interface {
	MakeOffer(ctx context.Context, input MakeOfferInput) (*domain.CandidateOffer, error)
	GetByPublicToken(ctx context.Context, token string) (*PublicOffer, error)
	AcceptByPublicToken(ctx context.Context, token string) (*domain.CandidateOffer, error)
	DeclineByPublicToken(ctx context.Context, token string) (*domain.CandidateOffer, error)
	RevokeOffer(ctx context.Context, offerID, actorID, reason string) (*domain.CandidateOffer, error)
	GetCandidateOffers(ctx context.Context, referralID string) (*OfferOverview, error)
	GetOfferLetter(ctx context.Context, offerID string) (*storage.Document, error)
	GetOfferLetterByPublicToken(ctx context.Context, token string) (*storage.Document, error)
}

type OnboardInput struct {
	ReferralID       string
	OfficeEmail      string
	EmployeeCode     string
	JoiningDate      time.Time
	ReportingManager string
	DesignationID    *string
	ActorID          string
}

// OnboardResult is returned once a candidate becomes an employee. The
// temporary password is surfaced exactly once and never stored in clear.
type OnboardResult struct {
	Employee       *domain.Employee `json:"employee"`
	TempPassword   string           `json:"temp_password"`
	OfferLetterRef string           `json:"offer_letter_ref,omitempty"`
}

type OnboardingService interface {
	Onboard(ctx context.Context, input OnboardInput) (*OnboardResult, error)
}
