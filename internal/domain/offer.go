package domain

import "time"

type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusDeclined OfferStatus = "declined"
	OfferStatusRevoked  OfferStatus = "revoked"
	OfferStatusExpired  OfferStatus = "expired"
)

type OfferType string

const (
	OfferTypeOriginal OfferType = "original"
	OfferTypeRevised  OfferType = "revised"
)

type LetterState string

const (
	LetterStatePendingUpload LetterState = "pending_upload"
	LetterStateAttached      LetterState = "attached"
	LetterStateMissing       LetterState = "missing"
)

// CandidateOffer is a time-bounded, versioned proposal of employment. The
// public token is the only credential the candidate needs to view or
// respond to it.
type CandidateOffer struct {
	ID           string      `json:"id"`
	ReferralID   string      `json:"referral_id"`
	PublicToken  string      `json:"-"`
	LetterRef    string      `json:"letter_ref,omitempty"`
	LetterState  LetterState `json:"letter_state"`
	ValidUntil   time.Time   `json:"valid_until"`
	Status       OfferStatus `json:"status"`
	OfferType    OfferType   `json:"offer_type"`
	Version      int32       `json:"version"`
	CreatedByID  string      `json:"created_by_id"`
	RespondedAt  *time.Time  `json:"responded_at,omitempty"`
	RevokedAt    *time.Time  `json:"revoked_at,omitempty"`
	RevokedByID  *string     `json:"revoked_by_id,omitempty"`
	RevokeReason string      `json:"revoke_reason,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// ExpiredAt reports whether a pending offer has passed its validity at the
// given instant. Expiry is detected lazily on reads and accept attempts,
// never assumed pre-computed.
func (o *CandidateOffer) ExpiredAt(now time.Time) bool {
	return o.Status == OfferStatusPending && now.After(o.ValidUntil)
}
