package service

import (
	"context"
	"fmt"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/logger"
	"talentdesk-backend/internal/repository"
	"talentdesk-backend/internal/security"
	"talentdesk-backend/internal/storage"
)

type offerService struct {
	tx            repository.TxRunner
	offerRepo     repository.OfferRepository
	referralRepo  repository.ReferralRepository
	jobRepo       repository.JobOpeningRepository
	docs          storage.DocumentStore
	sink          EventSink
	publicBaseURL string
}

func NewOfferService(
	tx repository.TxRunner,
	offerRepo repository.OfferRepository,
	referralRepo repository.ReferralRepository,
	jobRepo repository.JobOpeningRepository,
	docs storage.DocumentStore,
	sink EventSink,
	publicBaseURL string,
) OfferService {
	return &offerService{
		tx:            tx,
		offerRepo:     offerRepo,
		referralRepo:  referralRepo,
		jobRepo:       jobRepo,
		docs:          docs,
		sink:          sink,
		publicBaseURL: publicBaseURL,
	}
}

// MakeOffer extends a new offer to an eligible candidate. The offer record
// and the candidate transition commit together; the letter upload follows
// and its outcome is written back onto the offer afterwards.
func (s *offerService) MakeOffer(ctx context.Context, input MakeOfferInput) (*domain.CandidateOffer, error) {
	if !input.ValidUntil.After(time.Now()) {
		return nil, domain.NewInvalidState("offer validity date must be in the future")
	}

	token, err := security.NewPublicToken()
	if err != nil {
		return nil, err
	}

	var offer *domain.CandidateOffer
	var referral *domain.JobReferral
	err = s.tx.ExecTx(ctx, func(r repository.Repositories) error {
		var err error
		referral, err = r.Referrals.GetForUpdate(ctx, input.ReferralID)
		if err != nil {
			return err
		}
		next, err := domain.Transition(referral.Status, domain.EventOfferMade)
		if err != nil {
			return err
		}

		interviews, err := r.Interviews.ListByReferral(ctx, referral.ID)
		if err != nil {
			return err
		}
		if !domain.CanMakeOffer(interviews) {
			return domain.NewInvalidState("candidate has not cleared all required interview rounds")
		}

		if pending, err := r.Offers.GetPending(ctx, referral.ID); err == nil {
			return domain.NewConflict("offer", "candidate already has a pending offer", pending.ID)
		} else if !domain.IsNotFound(err) {
			return err
		}

		version, err := r.Offers.MaxVersion(ctx, referral.ID)
		if err != nil {
			return err
		}
		version++
		offerType := domain.OfferTypeOriginal
		if version > 1 {
			offerType = domain.OfferTypeRevised
		}

		letterState := domain.LetterStateMissing
		if input.Letter != nil {
			letterState = domain.LetterStatePendingUpload
		}
		offer = &domain.CandidateOffer{
			ReferralID:  referral.ID,
			PublicToken: token,
			LetterState: letterState,
			ValidUntil:  input.ValidUntil,
			Status:      domain.OfferStatusPending,
			OfferType:   offerType,
			Version:     version,
			CreatedByID: input.ActorID,
		}
		if err := r.Offers.Create(ctx, offer); err != nil {
			return err
		}
		if err := r.Referrals.UpdateStatus(ctx, referral.ID, next); err != nil {
			return err
		}
		if err := r.History.Append(ctx, &domain.InterviewHistory{
			ReferralID:    referral.ID,
			ChangedByID:   input.ActorID,
			Action:        domain.ActionOfferMade,
			PreviousValue: string(referral.Status),
			NewValue:      string(next),
			Notes:         fmt.Sprintf("offer version %d (%s)", version, offerType),
		}); err != nil {
			return err
		}
		referral.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.Letter != nil {
		s.attachLetter(ctx, offer, input.Letter)
	}
	s.notifyOfferMade(ctx, referral, offer)
	return offer, nil
}

// attachLetter finishes the offer saga. On upload failure the offer stays
// pending_upload; the repair job revokes it if the letter never lands.
func (s *offerService) attachLetter(ctx context.Context, offer *domain.CandidateOffer, letter *Upload) {
	handle, err := s.docs.Put(ctx, letter.Data, storage.Metadata{
		Filename:    letter.Filename,
		ContentType: letter.ContentType,
	})
	if err != nil {
		logger.Warn("offer letter upload failed", "offer_id", offer.ID, "error", err)
		return
	}
	if err := s.offerRepo.SetLetter(ctx, offer.ID, handle, domain.LetterStateAttached); err != nil {
		logger.Error("failed to record attached offer letter", "offer_id", offer.ID, "error", err)
		return
	}
	offer.LetterRef = handle
	offer.LetterState = domain.LetterStateAttached
}

func (s *offerService) notifyOfferMade(ctx context.Context, referral *domain.JobReferral, offer *domain.CandidateOffer) {
	job, err := s.jobRepo.GetByID(ctx, referral.JobOpeningID)
	if err != nil {
		logger.Warn("failed to load job for offer notification", "offer_id", offer.ID, "error", err)
		return
	}
	url := fmt.Sprintf("%s/offers/%s", s.publicBaseURL, offer.PublicToken)
	if err := s.sink.OfferMade(ctx, referral.CandidateEmail, referral.CandidateName, job.Title, url, offer.ValidUntil); err != nil {
		logger.Warn("offer notification failed", "offer_id", offer.ID, "error", err)
	}
}

// GetByPublicToken is the candidate's view of their offer. Expiry is
// applied lazily here so a stale pending offer is never shown as open.
func (s *offerService) GetByPublicToken(ctx context.Context, token string) (*PublicOffer, error) {
	offer, err := s.offerRepo.GetByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if offer.ExpiredAt(time.Now()) {
		offer, err = s.expireOffer(ctx, offer.ID)
		if err != nil {
			return nil, err
		}
	}
	referral, err := s.referralRepo.GetByID(ctx, offer.ReferralID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.GetByID(ctx, referral.JobOpeningID)
	if err != nil {
		return nil, err
	}
	return &PublicOffer{
		Offer:         offer,
		CandidateName: referral.CandidateName,
		JobTitle:      job.Title,
		HasLetter:     offer.LetterState == domain.LetterStateAttached,
	}, nil
}

// expireOffer marks a lapsed pending offer expired and releases the
// candidate for a fresh offer. Re-checked under the row lock; a concurrent
// accept that won the race leaves the offer alone.
func (s *offerService) expireOffer(ctx context.Context, offerID string) (*domain.CandidateOffer, error) {
	var result *domain.CandidateOffer
	err := s.tx.ExecTx(ctx, func(r repository.Repositories) error {
		offer, err := r.Offers.GetByID(ctx, offerID)
		if err != nil {
			return err
		}
		referral, err := r.Referrals.GetForUpdate(ctx, offer.ReferralID)
		if err != nil {
			return err
		}
		if !offer.ExpiredAt(time.Now()) {
			result = offer
			return nil
		}

		offer.Status = domain.OfferStatusExpired
		if err := r.Offers.Update(ctx, offer); err != nil {
			return err
		}
		if domain.CanTransition(referral.Status, domain.EventOfferRevoked) {
			next, err := domain.Transition(referral.Status, domain.EventOfferRevoked)
			if err != nil {
				return err
			}
			if err := r.Referrals.UpdateStatus(ctx, referral.ID, next); err != nil {
				return err
			}
			if err := r.History.Append(ctx, &domain.InterviewHistory{
				ReferralID:    referral.ID,
				ChangedByID:   offer.CreatedByID,
				Action:        domain.ActionStatusChange,
				PreviousValue: string(referral.Status),
				NewValue:      string(next),
				Notes:         fmt.Sprintf("offer version %d expired", offer.Version),
			}); err != nil {
				return err
			}
		}
		result = offer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *offerService) AcceptByPublicToken(ctx context.Context, token string) (*domain.CandidateOffer, error) {
	return s.respondByPublicToken(ctx, token, domain.OfferStatusAccepted, domain.EventOfferAccepted)
}

func (s *offerService) DeclineByPublicToken(ctx context.Context, token string) (*domain.CandidateOffer, error) {
	return s.respondByPublicToken(ctx, token, domain.OfferStatusDeclined, domain.EventOfferDeclined)
}

func (s *offerService) respondByPublicToken(ctx context.Context, token string, status domain.OfferStatus, event domain.ReferralEvent) (*domain.CandidateOffer, error) {
	var offer *domain.CandidateOffer
	var referral *domain.JobReferral
	err := s.tx.ExecTx(ctx, func(r repository.Repositories) error {
		var err error
		offer, err = r.Offers.GetByPublicToken(ctx, token)
		if err != nil {
			return err
		}
		referral, err = r.Referrals.GetForUpdate(ctx, offer.ReferralID)
		if err != nil {
			return err
		}
		if offer.ExpiredAt(time.Now()) {
			return domain.NewInvalidState("this offer has expired")
		}
		if offer.Status != domain.OfferStatusPending {
			return domain.NewInvalidState("this offer is no longer open; its status is %s", offer.Status)
		}
		next, err := domain.Transition(referral.Status, event)
		if err != nil {
			return err
		}

		now := time.Now()
		offer.Status = status
		offer.RespondedAt = &now
		if err := r.Offers.Update(ctx, offer); err != nil {
			return err
		}
		if err := r.Referrals.UpdateStatus(ctx, referral.ID, next); err != nil {
			return err
		}
		// The candidate is not an employee; the audit row carries no actor id.
		if err := r.History.Append(ctx, &domain.InterviewHistory{
			ReferralID:    referral.ID,
			Action:        domain.ActionStatusChange,
			PreviousValue: string(referral.Status),
			NewValue:      string(next),
			Notes:         fmt.Sprintf("candidate responded to offer version %d", offer.Version),
		}); err != nil {
			return err
		}
		referral.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyResponse(ctx, referral, status)
	return offer, nil
}

func (s *offerService) notifyResponse(ctx context.Context, referral *domain.JobReferral, status domain.OfferStatus) {
	job, err := s.jobRepo.GetByID(ctx, referral.JobOpeningID)
	if err != nil {
		logger.Warn("failed to load job for response notification", "referral_id", referral.ID, "error", err)
		return
	}
	switch status {
	case domain.OfferStatusAccepted:
		err = s.sink.OfferAccepted(ctx, referral.CandidateName, job.Title)
	case domain.OfferStatusDeclined:
		err = s.sink.OfferDeclined(ctx, referral.CandidateName, job.Title)
	}
	if err != nil {
		logger.Warn("offer response notification failed", "referral_id", referral.ID, "error", err)
	}
}

func (s *offerService) RevokeOffer(ctx context.Context, offerID, actorID, reason string) (*domain.CandidateOffer, error) {
	var offer *domain.CandidateOffer
	var referral *domain.JobReferral
	err := s.tx.ExecTx(ctx, func(r repository.Repositories) error {
		var err error
		offer, err = r.Offers.GetByID(ctx, offerID)
		if err != nil {
			return err
		}
		referral, err = r.Referrals.GetForUpdate(ctx, offer.ReferralID)
		if err != nil {
			return err
		}
		if offer.Status != domain.OfferStatusPending {
			return domain.NewInvalidState("only pending offers can be revoked; offer is %s", offer.Status)
		}
		next, err := domain.Transition(referral.Status, domain.EventOfferRevoked)
		if err != nil {
			return err
		}

		now := time.Now()
		offer.Status = domain.OfferStatusRevoked
		offer.RevokedAt = &now
		offer.RevokedByID = &actorID
		offer.RevokeReason = reason
		if err := r.Offers.Update(ctx, offer); err != nil {
			return err
		}
		if err := r.Referrals.UpdateStatus(ctx, referral.ID, next); err != nil {
			return err
		}
		if err := r.History.Append(ctx, &domain.InterviewHistory{
			ReferralID:    referral.ID,
			ChangedByID:   actorID,
			Action:        domain.ActionOfferRevoked,
			PreviousValue: string(referral.Status),
			NewValue:      string(next),
			Notes:         reason,
		}); err != nil {
			return err
		}
		referral.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	if job, err := s.jobRepo.GetByID(ctx, referral.JobOpeningID); err == nil {
		if err := s.sink.OfferRevoked(ctx, referral.CandidateEmail, referral.CandidateName, job.Title, reason); err != nil {
			logger.Warn("offer revocation notification failed", "offer_id", offer.ID, "error", err)
		}
	}
	return offer, nil
}

func (s *offerService) GetCandidateOffers(ctx context.Context, referralID string) (*OfferOverview, error) {
	referral, err := s.referralRepo.GetByID(ctx, referralID)
	if err != nil {
		return nil, err
	}
	offers, err := s.offerRepo.ListByReferral(ctx, referralID)
	if err != nil {
		return nil, err
	}

	overview := &OfferOverview{}
	hasPending := false
	for i := range offers {
		if offers[i].Status == domain.OfferStatusPending {
			hasPending = true
		}
		if offers[i].OfferType == domain.OfferTypeOriginal {
			overview.Original = &offers[i]
		} else {
			overview.Revised = append(overview.Revised, offers[i])
		}
	}
	overview.CanMakeNewOffer = !hasPending && domain.CanTransition(referral.Status, domain.EventOfferMade)
	return overview, nil
}

func (s *offerService) GetOfferLetter(ctx context.Context, offerID string) (*storage.Document, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	return s.loadLetter(ctx, offer)
}

func (s *offerService) GetOfferLetterByPublicToken(ctx context.Context, token string) (*storage.Document, error) {
	offer, err := s.offerRepo.GetByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.loadLetter(ctx, offer)
}

func (s *offerService) loadLetter(ctx context.Context, offer *domain.CandidateOffer) (*storage.Document, error) {
	if offer.LetterState != domain.LetterStateAttached || offer.LetterRef == "" {
		return nil, domain.NewNotFound("offer letter", offer.ID)
	}
	return s.docs.Get(ctx, offer.LetterRef)
}
