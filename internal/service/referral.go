package service

import (
	"context"
	"strings"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/logger"
	"talentdesk-backend/internal/repository"
	"talentdesk-backend/internal/storage"
)

type referralService struct {
	referralRepo repository.ReferralRepository
	jobRepo      repository.JobOpeningRepository
	docs         storage.DocumentStore
}

func NewReferralService(
	referralRepo repository.ReferralRepository,
	jobRepo repository.JobOpeningRepository,
	docs storage.DocumentStore,
) ReferralService {
	return &referralService{
		referralRepo: referralRepo,
		jobRepo:      jobRepo,
		docs:         docs,
	}
}

func (s *referralService) CreateReferral(ctx context.Context, input CreateReferralInput) (*domain.JobReferral, error) {
	if input.ReferredByID == "" {
		return nil, domain.NewInvalidState("referrer is required")
	}
	referredBy := input.ReferredByID
	return s.intake(ctx, intakeInput{
		jobID:           input.JobOpeningID,
		referredByID:    &referredBy,
		isSelfApplied:   false,
		candidateName:   input.CandidateName,
		candidateEmail:  input.CandidateEmail,
		candidatePhone:  input.CandidatePhone,
		experienceYears: input.ExperienceYears,
		notes:           input.Notes,
		resume:          input.Resume,
	})
}

func (s *referralService) ApplyForJob(ctx context.Context, input ApplicationInput) (*domain.JobReferral, error) {
	return s.intake(ctx, intakeInput{
		jobID:           input.JobOpeningID,
		referredByID:    nil,
		isSelfApplied:   true,
		candidateName:   input.CandidateName,
		candidateEmail:  input.CandidateEmail,
		candidatePhone:  input.CandidatePhone,
		experienceYears: input.ExperienceYears,
		notes:           input.Notes,
		resume:          input.Resume,
	})
}

type intakeInput struct {
	jobID           string
	referredByID    *string
	isSelfApplied   bool
	candidateName   string
	candidateEmail  string
	candidatePhone  string
	experienceYears int32
	notes           string
	resume          *Upload
}

// intake is the shared entry path for referrals and direct applications.
// The referral row is written first; the resume upload follows and its
// outcome is recorded on the row, never the other way around.
func (s *referralService) intake(ctx context.Context, input intakeInput) (*domain.JobReferral, error) {
	name := strings.TrimSpace(input.candidateName)
	email := strings.ToLower(strings.TrimSpace(input.candidateEmail))
	if name == "" {
		return nil, domain.NewInvalidState("candidate name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewInvalidState("a valid candidate email is required")
	}

	job, err := s.jobRepo.GetByID(ctx, input.jobID)
	if err != nil {
		return nil, err
	}
	// Only the public careers surface is held to the posting lifecycle;
	// staff can refer candidates into a job in any status.
	if input.isSelfApplied {
		if job.Status != domain.JobStatusOpen {
			return nil, domain.NewInvalidState("job %q is not open for applications", job.Title)
		}
		if job.ClosingDate != nil && time.Now().After(*job.ClosingDate) {
			return nil, domain.NewInvalidState("job %q is past its closing date", job.Title)
		}
	}

	if existing, err := s.referralRepo.GetByJobAndEmail(ctx, job.ID, email); err == nil {
		return nil, domain.NewConflict("referral", "candidate has already been submitted for this job", existing.ID)
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	resumeState := domain.ResumeStateNone
	if input.resume != nil {
		resumeState = domain.ResumeStatePendingUpload
	}
	referral := &domain.JobReferral{
		JobOpeningID:    job.ID,
		ReferredByID:    input.referredByID,
		IsSelfApplied:   input.isSelfApplied,
		CandidateName:   name,
		CandidateEmail:  email,
		CandidatePhone:  input.candidatePhone,
		ExperienceYears: input.experienceYears,
		Notes:           input.notes,
		ResumeState:     resumeState,
		Status:          domain.ReferralStatusApplied,
	}
	if err := s.referralRepo.Create(ctx, referral); err != nil {
		return nil, err
	}

	if input.resume != nil {
		s.attachResume(ctx, referral, input.resume)
	}
	return referral, nil
}

// attachResume finishes the intake saga. A failed upload marks the resume
// missing and keeps the candidacy alive; staff can chase the document later.
func (s *referralService) attachResume(ctx context.Context, referral *domain.JobReferral, resume *Upload) {
	handle, err := s.docs.Put(ctx, resume.Data, storage.Metadata{
		Filename:    resume.Filename,
		ContentType: resume.ContentType,
	})
	if err != nil {
		logger.Warn("resume upload failed, marking missing",
			"referral_id", referral.ID, "error", err)
		if err := s.referralRepo.SetResume(ctx, referral.ID, "", domain.ResumeStateMissing); err != nil {
			logger.Error("failed to record missing resume", "referral_id", referral.ID, "error", err)
		}
		referral.ResumeState = domain.ResumeStateMissing
		return
	}
	if err := s.referralRepo.SetResume(ctx, referral.ID, handle, domain.ResumeStateAttached); err != nil {
		logger.Error("failed to record attached resume", "referral_id", referral.ID, "error", err)
		referral.ResumeState = domain.ResumeStatePendingUpload
		return
	}
	referral.ResumeRef = handle
	referral.ResumeState = domain.ResumeStateAttached
}

func (s *referralService) GetReferral(ctx context.Context, id string) (*domain.JobReferral, error) {
	return s.referralRepo.GetByID(ctx, id)
}

func (s *referralService) ListByJob(ctx context.Context, jobID string) ([]domain.JobReferral, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.referralRepo.ListByJob(ctx, jobID)
}

func (s *referralService) ListByReferrer(ctx context.Context, employeeID string) ([]domain.JobReferral, error) {
	return s.referralRepo.ListByReferrer(ctx, employeeID)
}

func (s *referralService) ListAll(ctx context.Context) ([]domain.JobReferral, error) {
	return s.referralRepo.ListAll(ctx)
}

func (s *referralService) GetResume(ctx context.Context, referralID string) (*storage.Document, error) {
	referral, err := s.referralRepo.GetByID(ctx, referralID)
	if err != nil {
		return nil, err
	}
	if referral.ResumeState != domain.ResumeStateAttached || referral.ResumeRef == "" {
		return nil, domain.NewNotFound("resume", referralID)
	}
	return s.docs.Get(ctx, referral.ResumeRef)
}
