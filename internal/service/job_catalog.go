package service

import (
	"context"
	"strings"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/repository"
)

type jobCatalogService struct {
	jobRepo repository.JobOpeningRepository
}

func NewJobCatalogService(jobRepo repository.JobOpeningRepository) JobCatalogService {
	return &jobCatalogService{jobRepo: jobRepo}
}

func (s *jobCatalogService) CreateJob(ctx context.Context, input CreateJobInput) (*domain.JobOpening, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.NewInvalidState("job title is required")
	}
	if input.Openings <= 0 {
		input.Openings = 1
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMin > *input.SalaryMax {
		return nil, domain.NewInvalidState("salary_min cannot exceed salary_max")
	}

	job := &domain.JobOpening{
		Title:            input.Title,
		Description:      input.Description,
		Requirements:     input.Requirements,
		Responsibilities: input.Responsibilities,
		Department:       input.Department,
		Location:         input.Location,
		JobType:          input.JobType,
		ExperienceLevel:  input.ExperienceLevel,
		SalaryMin:        input.SalaryMin,
		SalaryMax:        input.SalaryMax,
		Openings:         input.Openings,
		ReferralBonus:    input.ReferralBonus,
		ClosingDate:      input.ClosingDate,
		Status:           domain.JobStatusOpen,
		PostedByID:       input.PostedByID,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobCatalogService) GetJob(ctx context.Context, id string) (*domain.JobOpening, error) {
	return s.jobRepo.GetByID(ctx, id)
}

func (s *jobCatalogService) ListJobs(ctx context.Context, status domain.JobStatus) ([]domain.JobOpening, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewInvalidState("unknown job status %q", status)
	}
	return s.jobRepo.List(ctx, status)
}

func (s *jobCatalogService) ListOpenJobs(ctx context.Context) ([]domain.JobOpening, error) {
	return s.jobRepo.List(ctx, domain.JobStatusOpen)
}

func (s *jobCatalogService) UpdateJob(ctx context.Context, id string, upd domain.JobOpeningUpdate) (*domain.JobOpening, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, domain.NewInvalidState("unknown job status %q", *upd.Status)
	}

	applyJobUpdate(job, upd)

	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, domain.NewInvalidState("salary_min cannot exceed salary_max")
	}
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob refuses to delete a job that has any referrals attached; the
// pipeline rows under it are the audit trail.
func (s *jobCatalogService) DeleteJob(ctx context.Context, id string) error {
	count, err := s.jobRepo.CountReferrals(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewConflict("job_opening", "job has referrals and cannot be deleted; close it instead", id)
	}
	return s.jobRepo.Delete(ctx, id)
}

func applyJobUpdate(job *domain.JobOpening, upd domain.JobOpeningUpdate) {
	if upd.Title != nil {
		job.Title = *upd.Title
	}
	if upd.Description != nil {
		job.Description = *upd.Description
	}
	if upd.Requirements != nil {
		job.Requirements = *upd.Requirements
	}
	if upd.Responsibilities != nil {
		job.Responsibilities = *upd.Responsibilities
	}
	if upd.Department != nil {
		job.Department = *upd.Department
	}
	if upd.Location != nil {
		job.Location = *upd.Location
	}
	if upd.JobType != nil {
		job.JobType = *upd.JobType
	}
	if upd.ExperienceLevel != nil {
		job.ExperienceLevel = *upd.ExperienceLevel
	}
	if upd.SalaryMin != nil {
		job.SalaryMin = upd.SalaryMin
	}
	if upd.SalaryMax != nil {
		job.SalaryMax = upd.SalaryMax
	}
	if upd.Openings != nil {
		job.Openings = *upd.Openings
	}
	if upd.ReferralBonus != nil {
		job.ReferralBonus = upd.ReferralBonus
	}
	if upd.ClosingDate != nil {
		job.ClosingDate = upd.ClosingDate
	}
	if upd.Status != nil {
		job.Status = *upd.Status
	}
}
