package domain

import "time"

// History action tags.
const (
	ActionProcessStarted      = "process_started"
	ActionInterviewerAssigned = "interviewer_assigned"
	ActionRoundStatusChanged  = "round_status_changed"
	ActionOfferMade           = "offer_made"
	ActionOfferRevoked        = "offer_revoked"
	ActionStatusChange        = "status_change"
)

// InterviewHistory is one append-only audit entry. Entries are never
// mutated or deleted; they are the sole source of truth for what happened
// when.
type InterviewHistory struct {
	ID            string    `json:"id"`
	ReferralID    string    `json:"referral_id"`
	ChangedByID   string    `json:"changed_by_id"`
	ChangedByName string    `json:"changed_by_name,omitempty"`
	Action        string    `json:"action"`
	RoundNumber   *int32    `json:"round_number,omitempty"`
	PreviousValue string    `json:"previous_value,omitempty"`
	NewValue      string    `json:"new_value,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
