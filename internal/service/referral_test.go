package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/service"
	"talentdesk-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func openJob(id string) *domain.JobOpening {
	return &domain.JobOpening{ID: id, Title: "Backend Engineer", Status: domain.JobStatusOpen, JobType: domain.JobTypeFullTime}
}

func TestReferralService_CreateReferral(t *testing.T) {
	ctx := context.Background()

	t.Run("creates referral and attaches resume", func(t *testing.T) {
		store := newMockStore()
		docs := new(MockDocStore)
		svc := service.NewReferralService(store.referrals, store.jobs, docs)

		store.jobs.On("GetByID", ctx, "job-1").Return(openJob("job-1"), nil).Once()
		store.referrals.On("GetByJobAndEmail", ctx, "job-1", "ada@example.com").
			Return(nil, domain.NewNotFound("referral", "")).Once()
		store.referrals.On("Create", ctx, mock.MatchedBy(func(r *domain.JobReferral) bool {
			return r.JobOpeningID == "job-1" &&
				r.ReferredByID != nil && *r.ReferredByID == "emp-1" &&
				!r.IsSelfApplied &&
				r.Status == domain.ReferralStatusApplied &&
				r.ResumeState == domain.ResumeStatePendingUpload
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.JobReferral).ID = "ref-1"
		}).Return(nil).Once()
		docs.On("Put", ctx, []byte("pdf"), storage.Metadata{Filename: "cv.pdf", ContentType: "application/pdf"}).
			Return("doc-1", nil).Once()
		store.referrals.On("SetResume", ctx, "ref-1", "doc-1", domain.ResumeStateAttached).Return(nil).Once()

		referral, err := svc.CreateReferral(ctx, service.CreateReferralInput{
			JobOpeningID:   "job-1",
			ReferredByID:   "emp-1",
			CandidateName:  "Ada Lovelace",
			CandidateEmail: "Ada@Example.com",
			Resume:         &service.Upload{Data: []byte("pdf"), Filename: "cv.pdf", ContentType: "application/pdf"},
		})
		assert.NoError(t, err)
		assert.Equal(t, "ada@example.com", referral.CandidateEmail)
		assert.Equal(t, domain.ResumeStateAttached, referral.ResumeState)
		assert.Equal(t, "doc-1", referral.ResumeRef)
		store.referrals.AssertExpectations(t)
		docs.AssertExpectations(t)
	})

	t.Run("failed resume upload marks resume missing", func(t *testing.T) {
		store := newMockStore()
		docs := new(MockDocStore)
		svc := service.NewReferralService(store.referrals, store.jobs, docs)

		store.jobs.On("GetByID", ctx, "job-1").Return(openJob("job-1"), nil).Once()
		store.referrals.On("GetByJobAndEmail", ctx, "job-1", "ada@example.com").
			Return(nil, domain.NewNotFound("referral", "")).Once()
		store.referrals.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.JobReferral).ID = "ref-1"
		}).Return(nil).Once()
		docs.On("Put", ctx, mock.Anything, mock.Anything).Return("", errors.New("disk full")).Once()
		store.referrals.On("SetResume", ctx, "ref-1", "", domain.ResumeStateMissing).Return(nil).Once()

		referral, err := svc.CreateReferral(ctx, service.CreateReferralInput{
			JobOpeningID:   "job-1",
			ReferredByID:   "emp-1",
			CandidateName:  "Ada Lovelace",
			CandidateEmail: "ada@example.com",
			Resume:         &service.Upload{Data: []byte("pdf"), Filename: "cv.pdf"},
		})
		assert.NoError(t, err, "a lost resume does not kill the candidacy")
		assert.Equal(t, domain.ResumeStateMissing, referral.ResumeState)
		store.referrals.AssertExpectations(t)
	})

	t.Run("duplicate candidate conflicts", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewReferralService(store.referrals, store.jobs, new(MockDocStore))

		store.jobs.On("GetByID", ctx, "job-1").Return(openJob("job-1"), nil).Once()
		store.referrals.On("GetByJobAndEmail", ctx, "job-1", "ada@example.com").
			Return(&domain.JobReferral{ID: "ref-existing"}, nil).Once()

		_, err := svc.CreateReferral(ctx, service.CreateReferralInput{
			JobOpeningID:   "job-1",
			ReferredByID:   "emp-1",
			CandidateName:  "Ada Lovelace",
			CandidateEmail: "ada@example.com",
		})
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("job lifecycle does not block internal referrals", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewReferralService(store.referrals, store.jobs, new(MockDocStore))

		job := openJob("job-1")
		job.Status = domain.JobStatusOnHold
		past := time.Now().Add(-24 * time.Hour)
		job.ClosingDate = &past
		store.jobs.On("GetByID", ctx, "job-1").Return(job, nil).Once()
		store.referrals.On("GetByJobAndEmail", ctx, "job-1", "ada@example.com").
			Return(nil, domain.NewNotFound("referral", "")).Once()
		store.referrals.On("Create", ctx, mock.Anything).Return(nil).Once()

		referral, err := svc.CreateReferral(ctx, service.CreateReferralInput{
			JobOpeningID:   "job-1",
			ReferredByID:   "emp-1",
			CandidateName:  "Ada Lovelace",
			CandidateEmail: "ada@example.com",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.ReferralStatusApplied, referral.Status)
		store.referrals.AssertExpectations(t)
	})

	t.Run("requires a referrer", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewReferralService(store.referrals, store.jobs, new(MockDocStore))

		_, err := svc.CreateReferral(ctx, service.CreateReferralInput{
			JobOpeningID:   "job-1",
			CandidateName:  "Ada Lovelace",
			CandidateEmail: "ada@example.com",
		})
		assert.True(t, domain.IsInvalidState(err))
	})
}

func TestReferralService_ApplyForJob(t *testing.T) {
	ctx := context.Background()

	t.Run("creates self-application with null referrer", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewReferralService(store.referrals, store.jobs, new(MockDocStore))

		store.jobs.On("GetByID", ctx, "job-1").Return(openJob("job-1"), nil).Once()
		store.referrals.On("GetByJobAndEmail", ctx, "job-1", "grace@example.com").
			Return(nil, domain.NewNotFound("referral", "")).Once()
		store.referrals.On("Create", ctx, mock.MatchedBy(func(r *domain.JobReferral) bool {
			return r.ReferredByID == nil && r.IsSelfApplied && r.ResumeState == domain.ResumeStateNone
		})).Return(nil).Once()

		referral, err := svc.ApplyForJob(ctx, service.ApplicationInput{
			JobOpeningID:   "job-1",
			CandidateName:  "Grace Hopper",
			CandidateEmail: "grace@example.com",
		})
		assert.NoError(t, err)
		assert.True(t, referral.IsSelfApplied)
		assert.Nil(t, referral.ReferredByID)
		store.referrals.AssertExpectations(t)
	})

	t.Run("rejects job that is not open", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewReferralService(store.referrals, store.jobs, new(MockDocStore))

		job := openJob("job-1")
		job.Status = domain.JobStatusClosed
		store.jobs.On("GetByID", ctx, "job-1").Return(job, nil).Once()

		_, err := svc.ApplyForJob(ctx, service.ApplicationInput{
			JobOpeningID:   "job-1",
			CandidateName:  "Grace Hopper",
			CandidateEmail: "grace@example.com",
		})
		assert.True(t, domain.IsInvalidState(err))
	})

	t.Run("rejects job past closing date", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewReferralService(store.referrals, store.jobs, new(MockDocStore))

		job := openJob("job-1")
		past := time.Now().Add(-24 * time.Hour)
		job.ClosingDate = &past
		store.jobs.On("GetByID", ctx, "job-1").Return(job, nil).Once()

		_, err := svc.ApplyForJob(ctx, service.ApplicationInput{
			JobOpeningID:   "job-1",
			CandidateName:  "Grace Hopper",
			CandidateEmail: "grace@example.com",
		})
		assert.True(t, domain.IsInvalidState(err))
	})
}

func TestReferralService_GetResume(t *testing.T) {
	ctx := context.Background()

	t.Run("returns attached resume", func(t *testing.T) {
		store := newMockStore()
		docs := new(MockDocStore)
		svc := service.NewReferralService(store.referrals, store.jobs, docs)

		store.referrals.On("GetByID", ctx, "ref-1").Return(&domain.JobReferral{
			ID: "ref-1", ResumeRef: "doc-1", ResumeState: domain.ResumeStateAttached,
		}, nil).Once()
		docs.On("Get", ctx, "doc-1").Return(&storage.Document{Data: []byte("pdf")}, nil).Once()

		doc, err := svc.GetResume(ctx, "ref-1")
		assert.NoError(t, err)
		assert.Equal(t, []byte("pdf"), doc.Data)
	})

	t.Run("missing resume reads as not found", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewReferralService(store.referrals, store.jobs, new(MockDocStore))

		store.referrals.On("GetByID", ctx, "ref-1").Return(&domain.JobReferral{
			ID: "ref-1", ResumeState: domain.ResumeStateMissing,
		}, nil).Once()

		_, err := svc.GetResume(ctx, "ref-1")
		assert.True(t, domain.IsNotFound(err))
	})
}
