package jobs

import (
	"context"
	"fmt"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/logger"
	"talentdesk-backend/internal/repository"
)

// ExpirePendingOffers marks pending offers whose validity window has passed
// as expired and releases the candidate for a fresh offer. Expiry is also
// applied lazily on reads; this sweep catches offers nobody looked at.
func (jr *JobRunner) ExpirePendingOffers() {
	jr.runWithRecovery("ExpirePendingOffers", func() {
		ctx := context.Background()
		now := time.Now()

		expired, err := jr.store.Offers.ListExpiredPending(ctx, now)
		if err != nil {
			logger.Error("Failed to list expired pending offers", "error", err)
			return
		}

		count := 0
		for _, offer := range expired {
			if err := jr.expireOffer(ctx, offer.ID, now); err != nil {
				logger.Error("Failed to expire offer", "offer_id", offer.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Expired pending offers", "count", count)
	})
}

// expireOffer re-checks the offer under the candidate's row lock; a
// concurrent accept or revoke that won the race makes this a no-op.
func (jr *JobRunner) expireOffer(ctx context.Context, offerID string, now time.Time) error {
	return jr.store.ExecTx(ctx, func(r repository.Repositories) error {
		offer, err := r.Offers.GetByID(ctx, offerID)
		if err != nil {
			return err
		}
		referral, err := r.Referrals.GetForUpdate(ctx, offer.ReferralID)
		if err != nil {
			return err
		}
		if !offer.ExpiredAt(now) {
			return nil
		}

		offer.Status = domain.OfferStatusExpired
		if err := r.Offers.Update(ctx, offer); err != nil {
			return err
		}
		return releaseCandidate(ctx, r, referral,
			fmt.Sprintf("offer version %d expired", offer.Version))
	})
}

// RepairStalledOfferLetters revokes pending offers whose letter upload
// never completed. The offer record committed but the document write
// failed; revoking puts the candidate back in a state where a complete
// offer can be extended.
func (jr *JobRunner) RepairStalledOfferLetters() {
	jr.runWithRecovery("RepairStalledOfferLetters", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Offers.RepairAfterMinute) * time.Minute)

		stalled, err := jr.store.Offers.ListStalledLetters(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stalled offer letters", "error", err)
			return
		}

		count := 0
		for _, offer := range stalled {
			if err := jr.repairStalledOffer(ctx, offer.ID); err != nil {
				logger.Error("Failed to repair stalled offer", "offer_id", offer.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Repaired stalled offer letters", "count", count)
	})
}

func (jr *JobRunner) repairStalledOffer(ctx context.Context, offerID string) error {
	return jr.store.ExecTx(ctx, func(r repository.Repositories) error {
		offer, err := r.Offers.GetByID(ctx, offerID)
		if err != nil {
			return err
		}
		referral, err := r.Referrals.GetForUpdate(ctx, offer.ReferralID)
		if err != nil {
			return err
		}
		if offer.Status != domain.OfferStatusPending || offer.LetterState != domain.LetterStatePendingUpload {
			return nil
		}

		now := time.Now()
		offer.Status = domain.OfferStatusRevoked
		offer.RevokedAt = &now
		offer.RevokeReason = "offer letter upload never completed"
		if err := r.Offers.Update(ctx, offer); err != nil {
			return err
		}
		if err := r.Offers.SetLetter(ctx, offer.ID, "", domain.LetterStateMissing); err != nil {
			return err
		}
		return releaseCandidate(ctx, r, referral,
			fmt.Sprintf("offer version %d revoked: letter upload never completed", offer.Version))
	})
}

// releaseCandidate moves the candidate back to offer_revoked so a new
// offer can be made, when the state machine allows it.
func releaseCandidate(ctx context.Context, r repository.Repositories, referral *domain.JobReferral, note string) error {
	if !domain.CanTransition(referral.Status, domain.EventOfferRevoked) {
		return nil
	}
	next, err := domain.Transition(referral.Status, domain.EventOfferRevoked)
	if err != nil {
		return err
	}
	if err := r.Referrals.UpdateStatus(ctx, referral.ID, next); err != nil {
		return err
	}
	return r.History.Append(ctx, &domain.InterviewHistory{
		ReferralID:    referral.ID,
		Action:        domain.ActionStatusChange,
		PreviousValue: string(referral.Status),
		NewValue:      string(next),
		Notes:         note,
	})
}
