package service

import (
	"context"
	"fmt"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/logger"
	"talentdesk-backend/internal/repository"
)

type interviewService struct {
	tx            repository.TxRunner
	referralRepo  repository.ReferralRepository
	jobRepo       repository.JobOpeningRepository
	roundRepo     repository.InterviewRoundRepository
	interviewRepo repository.CandidateInterviewRepository
	historyRepo   repository.HistoryRepository
}

func NewInterviewService(
	tx repository.TxRunner,
	referralRepo repository.ReferralRepository,
	jobRepo repository.JobOpeningRepository,
	roundRepo repository.InterviewRoundRepository,
	interviewRepo repository.CandidateInterviewRepository,
	historyRepo repository.HistoryRepository,
) InterviewService {
	return &interviewService{
		tx:            tx,
		referralRepo:  referralRepo,
		jobRepo:       jobRepo,
		roundRepo:     roundRepo,
		interviewRepo: interviewRepo,
		historyRepo:   historyRepo,
	}
}

// DefineRounds installs a job's interview template. The template is fixed
// once set; a second call conflicts rather than silently merging.
func (s *interviewService) DefineRounds(ctx context.Context, jobID string, inputs []RoundInput) ([]domain.InterviewRound, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	existing, err := s.roundRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, domain.NewConflict("interview round", "interview rounds already defined for this job", jobID)
	}

	rounds := make([]domain.InterviewRound, 0, len(inputs))
	for _, in := range inputs {
		rounds = append(rounds, domain.InterviewRound{
			JobOpeningID: jobID,
			Name:         in.Name,
			Description:  in.Description,
			RoundNumber:  in.RoundNumber,
			IsRequired:   in.IsRequired,
		})
	}
	if err := domain.ValidateRoundNumbers(rounds); err != nil {
		return nil, err
	}
	if err := s.roundRepo.CreateBatch(ctx, rounds); err != nil {
		return nil, err
	}
	return rounds, nil
}

func (s *interviewService) ListRounds(ctx context.Context, jobID string) ([]domain.InterviewRound, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.roundRepo.ListByJob(ctx, jobID)
}

// StartProcess moves the candidate into screening and stamps out one
// interview instance per round in the job's template.
func (s *interviewService) StartProcess(ctx context.Context, referralID, actorID string) (*domain.JobReferral, error) {
	var result *domain.JobReferral
	err := s.tx.ExecTx(ctx, func(r repository.Repositories) error {
		referral, err := r.Referrals.GetForUpdate(ctx, referralID)
		if err != nil {
			return err
		}
		next, err := domain.Transition(referral.Status, domain.EventProcessStarted)
		if err != nil {
			return err
		}

		rounds, err := r.Rounds.ListByJob(ctx, referral.JobOpeningID)
		if err != nil {
			return err
		}
		if len(rounds) == 0 {
			return domain.NewInvalidState("no interview rounds defined for this job")
		}

		interviews := make([]domain.CandidateInterview, 0, len(rounds))
		for _, round := range rounds {
			interviews = append(interviews, domain.CandidateInterview{
				ReferralID: referral.ID,
				RoundID:    round.ID,
				Status:     domain.RoundStatusPending,
			})
		}
		if err := r.Interviews.CreateBatch(ctx, interviews); err != nil {
			return err
		}
		if err := r.Referrals.UpdateStatus(ctx, referral.ID, next); err != nil {
			return err
		}
		if err := r.History.Append(ctx, &domain.InterviewHistory{
			ReferralID:    referral.ID,
			ChangedByID:   actorID,
			Action:        domain.ActionProcessStarted,
			PreviousValue: string(referral.Status),
			NewValue:      string(next),
		}); err != nil {
			return err
		}

		referral.Status = next
		result = referral
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Shortlist marks a screening candidate as shortlisted. No interview rows
// change; the event only advances the candidate status.
func (s *interviewService) Shortlist(ctx context.Context, referralID, actorID string) (*domain.JobReferral, error) {
	var result *domain.JobReferral
	err := s.tx.ExecTx(ctx, func(r repository.Repositories) error {
		referral, err := r.Referrals.GetForUpdate(ctx, referralID)
		if err != nil {
			return err
		}
		next, err := domain.Transition(referral.Status, domain.EventShortlisted)
		if err != nil {
			return err
		}
		if err := r.Referrals.UpdateStatus(ctx, referral.ID, next); err != nil {
			return err
		}
		if err := r.History.Append(ctx, &domain.InterviewHistory{
			ReferralID:    referral.ID,
			ChangedByID:   actorID,
			Action:        domain.ActionStatusChange,
			PreviousValue: string(referral.Status),
			NewValue:      string(next),
		}); err != nil {
			return err
		}
		referral.Status = next
		result = referral
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Withdraw closes the candidacy from any non-terminal position. A pending
// offer cannot outlive the candidacy, so it is revoked in the same
// transaction.
func (s *interviewService) Withdraw(ctx context.Context, referralID, actorID, reason string) (*domain.JobReferral, error) {
	var result *domain.JobReferral
	err := s.tx.ExecTx(ctx, func(r repository.Repositories) error {
		referral, err := r.Referrals.GetForUpdate(ctx, referralID)
		if err != nil {
			return err
		}
		next, err := domain.Transition(referral.Status, domain.EventWithdrawn)
		if err != nil {
			return err
		}

		pending, err := r.Offers.GetPending(ctx, referral.ID)
		if err != nil && !domain.IsNotFound(err) {
			return err
		}
		if pending != nil {
			now := time.Now()
			pending.Status = domain.OfferStatusRevoked
			pending.RevokedAt = &now
			pending.RevokeReason = "candidate withdrew"
			if actorID != "" {
				pending.RevokedByID = &actorID
			}
			if err := r.Offers.Update(ctx, pending); err != nil {
				return err
			}
		}

		if err := r.Referrals.UpdateStatus(ctx, referral.ID, next); err != nil {
			return err
		}
		if err := r.History.Append(ctx, &domain.InterviewHistory{
			ReferralID:    referral.ID,
			ChangedByID:   actorID,
			Action:        domain.ActionStatusChange,
			PreviousValue: string(referral.Status),
			NewValue:      string(next),
			Notes:         reason,
		}); err != nil {
			return err
		}
		referral.Status = next
		result = referral
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *interviewService) AssignInterviewer(ctx context.Context, referralID, roundID, interviewerID, actorID string, scheduledAt *time.Time) (*domain.CandidateInterview, error) {
	var result *domain.CandidateInterview
	err := s.tx.ExecTx(ctx, func(r repository.Repositories) error {
		if _, err := r.Referrals.GetForUpdate(ctx, referralID); err != nil {
			return err
		}
		iv, err := r.Interviews.GetByReferralAndRound(ctx, referralID, roundID)
		if err != nil {
			return err
		}
		if iv.Status.Completed() {
			return domain.NewInvalidState("round %d is already completed", iv.RoundNumber)
		}
		if _, err := r.Directory.GetEmployee(ctx, interviewerID); err != nil {
			return err
		}

		previous := ""
		if iv.InterviewerID != nil {
			previous = *iv.InterviewerID
		}
		iv.InterviewerID = &interviewerID
		if scheduledAt != nil {
			iv.ScheduledAt = scheduledAt
			iv.Status = domain.RoundStatusScheduled
		}
		if err := r.Interviews.Update(ctx, iv); err != nil {
			return err
		}
		if err := r.History.Append(ctx, &domain.InterviewHistory{
			ReferralID:    referralID,
			ChangedByID:   actorID,
			Action:        domain.ActionInterviewerAssigned,
			RoundNumber:   &iv.RoundNumber,
			PreviousValue: previous,
			NewValue:      interviewerID,
		}); err != nil {
			return err
		}
		result = iv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateRoundStatus records a round outcome and cascades any implied
// candidate-level transition in the same transaction. The referral row
// lock serializes concurrent outcome reports for one candidate.
func (s *interviewService) UpdateRoundStatus(ctx context.Context, input UpdateRoundStatusInput) (*InterviewProgress, error) {
	if !input.Status.Valid() {
		return nil, domain.NewInvalidState("unknown round status %q", input.Status)
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, domain.NewInvalidState("rating must be between 1 and 5")
	}

	var progress *InterviewProgress
	err := s.tx.ExecTx(ctx, func(r repository.Repositories) error {
		referral, err := r.Referrals.GetForUpdate(ctx, input.ReferralID)
		if err != nil {
			return err
		}
		iv, err := r.Interviews.GetByReferralAndRound(ctx, input.ReferralID, input.RoundID)
		if err != nil {
			return err
		}
		if iv.Status.Completed() {
			return domain.NewInvalidState("round %d is already completed and cannot change", iv.RoundNumber)
		}

		previous := iv.Status
		iv.Status = input.Status
		if input.Feedback != "" {
			iv.Feedback = input.Feedback
		}
		if input.Rating != nil {
			iv.Rating = input.Rating
		}
		if iv.Status.Completed() {
			now := time.Now()
			iv.CompletedAt = &now
		}
		if err := r.Interviews.Update(ctx, iv); err != nil {
			return err
		}
		if err := r.History.Append(ctx, &domain.InterviewHistory{
			ReferralID:    input.ReferralID,
			ChangedByID:   input.ActorID,
			Action:        domain.ActionRoundStatusChanged,
			RoundNumber:   &iv.RoundNumber,
			PreviousValue: string(previous),
			NewValue:      string(iv.Status),
			Notes:         input.Feedback,
		}); err != nil {
			return err
		}

		event, ok := s.cascadeEvent(ctx, r, referral, iv)
		if ok {
			if err := s.applyReferralEvent(ctx, r, referral, event, input.ActorID, &iv.RoundNumber); err != nil {
				return err
			}
		}

		interviews, err := r.Interviews.ListByReferral(ctx, input.ReferralID)
		if err != nil {
			return err
		}
		progress = &InterviewProgress{
			Referral:     referral,
			Interviews:   interviews,
			CanMakeOffer: domain.CanMakeOffer(interviews),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// cascadeEvent derives the candidate-level event implied by a freshly
// recorded round outcome, or none.
func (s *interviewService) cascadeEvent(ctx context.Context, r repository.Repositories, referral *domain.JobReferral, iv *domain.CandidateInterview) (domain.ReferralEvent, bool) {
	switch iv.Status {
	case domain.RoundStatusRejected:
		// A rejection on any round, required or optional, closes the
		// candidacy. There is no partial retry path.
		return domain.EventRoundRejected, true
	case domain.RoundStatusCleared:
		interviews, err := r.Interviews.ListByReferral(ctx, referral.ID)
		if err != nil {
			logger.Warn("failed to evaluate rounds after clear", "referral_id", referral.ID, "error", err)
			return "", false
		}
		return domain.EvaluateRounds(interviews, iv.RoundNumber)
	}
	return "", false
}

func (s *interviewService) applyReferralEvent(ctx context.Context, r repository.Repositories, referral *domain.JobReferral, event domain.ReferralEvent, actorID string, roundNumber *int32) error {
	if !domain.CanTransition(referral.Status, event) {
		// Derived events can lag the candidate's actual position, for
		// example clearing an optional round after rejection elsewhere.
		return nil
	}
	next, err := domain.Transition(referral.Status, event)
	if err != nil {
		return err
	}
	if err := r.Referrals.UpdateStatus(ctx, referral.ID, next); err != nil {
		return err
	}
	if err := r.History.Append(ctx, &domain.InterviewHistory{
		ReferralID:    referral.ID,
		ChangedByID:   actorID,
		Action:        domain.ActionStatusChange,
		RoundNumber:   roundNumber,
		PreviousValue: string(referral.Status),
		NewValue:      string(next),
		Notes:         fmt.Sprintf("event: %s", event),
	}); err != nil {
		return err
	}
	referral.Status = next
	return nil
}

func (s *interviewService) GetProgress(ctx context.Context, referralID string) (*InterviewProgress, error) {
	referral, err := s.referralRepo.GetByID(ctx, referralID)
	if err != nil {
		return nil, err
	}
	interviews, err := s.interviewRepo.ListByReferral(ctx, referralID)
	if err != nil {
		return nil, err
	}
	return &InterviewProgress{
		Referral:     referral,
		Interviews:   interviews,
		CanMakeOffer: domain.CanMakeOffer(interviews),
	}, nil
}

func (s *interviewService) GetHistory(ctx context.Context, referralID string) ([]domain.InterviewHistory, error) {
	if _, err := s.referralRepo.GetByID(ctx, referralID); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByReferral(ctx, referralID)
}
