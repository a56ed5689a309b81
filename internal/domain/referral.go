package domain

import "time"

type ReferralStatus string

const (
	// Sourcing and screening.
	ReferralStatusApplied     ReferralStatus = "applied"
	ReferralStatusScreening   ReferralStatus = "screening"
	ReferralStatusShortlisted ReferralStatus = "shortlisted"

	// Interviewing.
	ReferralStatusInterviewing     ReferralStatus = "interviewing"
	ReferralStatusInterviewed      ReferralStatus = "interviewed"
	ReferralStatusInterviewCleared ReferralStatus = "interview_cleared"

	// Decision and closing.
	ReferralStatusOfferPending  ReferralStatus = "offer_pending"
	ReferralStatusOfferAccepted ReferralStatus = "offer_accepted"
	ReferralStatusJoined        ReferralStatus = "joined"

	// Terminal branches.
	ReferralStatusRejected      ReferralStatus = "rejected"
	ReferralStatusWithdrawn     ReferralStatus = "withdrawn"
	ReferralStatusOfferRevoked  ReferralStatus = "offer_revoked"
	ReferralStatusOfferDeclined ReferralStatus = "offer_declined"
)

// ReferralEvent is something that happened to a candidacy. Candidate status
// is only ever advanced by applying an event through Transition; callers
// never set it directly.
type ReferralEvent string

const (
	EventProcessStarted    ReferralEvent = "process_started"
	EventShortlisted       ReferralEvent = "shortlisted"
	EventFirstRoundCleared ReferralEvent = "first_round_cleared"
	EventAllRoundsDone     ReferralEvent = "all_rounds_completed"
	EventAllRoundsCleared  ReferralEvent = "all_rounds_cleared"
	EventRoundRejected     ReferralEvent = "round_rejected"
	EventOfferMade         ReferralEvent = "offer_made"
	EventOfferAccepted     ReferralEvent = "offer_accepted"
	EventOfferDeclined     ReferralEvent = "offer_declined"
	EventOfferRevoked      ReferralEvent = "offer_revoked"
	EventOnboarded         ReferralEvent = "onboarded"
	EventWithdrawn         ReferralEvent = "withdrawn"
)

// referralTransitions is the full candidate state machine. Any
// (status, event) pair absent from this table is an illegal transition.
var referralTransitions = map[ReferralStatus]map[ReferralEvent]ReferralStatus{
	ReferralStatusApplied: {
		EventProcessStarted: ReferralStatusScreening,
		EventWithdrawn:      ReferralStatusWithdrawn,
	},
	ReferralStatusScreening: {
		EventShortlisted:       ReferralStatusShortlisted,
		EventFirstRoundCleared: ReferralStatusInterviewing,
		EventAllRoundsCleared:  ReferralStatusInterviewCleared,
		EventRoundRejected:     ReferralStatusRejected,
		EventWithdrawn:         ReferralStatusWithdrawn,
	},
	ReferralStatusShortlisted: {
		EventFirstRoundCleared: ReferralStatusInterviewing,
		EventAllRoundsCleared:  ReferralStatusInterviewCleared,
		EventRoundRejected:     ReferralStatusRejected,
		EventWithdrawn:         ReferralStatusWithdrawn,
	},
	ReferralStatusInterviewing: {
		EventAllRoundsDone:    ReferralStatusInterviewed,
		EventAllRoundsCleared: ReferralStatusInterviewCleared,
		EventRoundRejected:    ReferralStatusRejected,
		EventWithdrawn:        ReferralStatusWithdrawn,
	},
	ReferralStatusInterviewed: {
		EventAllRoundsCleared: ReferralStatusInterviewCleared,
		EventRoundRejected:    ReferralStatusRejected,
		EventWithdrawn:        ReferralStatusWithdrawn,
	},
	ReferralStatusInterviewCleared: {
		EventOfferMade: ReferralStatusOfferPending,
		EventWithdrawn: ReferralStatusWithdrawn,
	},
	ReferralStatusOfferPending: {
		EventOfferAccepted: ReferralStatusOfferAccepted,
		EventOfferDeclined: ReferralStatusOfferDeclined,
		EventOfferRevoked:  ReferralStatusOfferRevoked,
		EventWithdrawn:     ReferralStatusWithdrawn,
	},
	ReferralStatusOfferAccepted: {
		EventOnboarded: ReferralStatusJoined,
		EventWithdrawn: ReferralStatusWithdrawn,
	},
	ReferralStatusOfferRevoked: {
		EventOfferMade: ReferralStatusOfferPending,
	},
}

// Transition applies event to the current status and returns the next one.
// Events not in the table fail with InvalidState instead of silently
// no-op'ing.
func Transition(current ReferralStatus, event ReferralEvent) (ReferralStatus, error) {
	events, ok := referralTransitions[current]
	if !ok {
		return "", NewInvalidState("candidate status %q is terminal; event %q not allowed", current, event)
	}
	next, ok := events[event]
	if !ok {
		return "", NewInvalidState("event %q not allowed for candidate status %q", event, current)
	}
	return next, nil
}

// CanTransition reports whether event is legal for the current status.
func CanTransition(current ReferralStatus, event ReferralEvent) bool {
	_, err := Transition(current, event)
	return err == nil
}

// IsTerminal reports whether no event can move the candidate further.
func (s ReferralStatus) IsTerminal() bool {
	_, ok := referralTransitions[s]
	return !ok
}

type ResumeState string

const (
	ResumeStateNone          ResumeState = "none"
	ResumeStatePendingUpload ResumeState = "pending_upload"
	ResumeStateAttached      ResumeState = "attached"
	ResumeStateMissing       ResumeState = "missing"
)

// JobReferral is a candidate under consideration for one job opening,
// whether internally referred or self-applied. Self-applications carry a
// nil ReferredByID and IsSelfApplied set.
type JobReferral struct {
	ID              string         `json:"id"`
	JobOpeningID    string         `json:"job_opening_id"`
	ReferredByID    *string        `json:"referred_by_id,omitempty"`
	IsSelfApplied   bool           `json:"is_self_applied"`
	CandidateName   string         `json:"candidate_name"`
	CandidateEmail  string         `json:"candidate_email"`
	CandidatePhone  string         `json:"candidate_phone,omitempty"`
	ExperienceYears int32          `json:"experience_years"`
	Notes           string         `json:"notes,omitempty"`
	ResumeRef       string         `json:"resume_ref,omitempty"`
	ResumeState     ResumeState    `json:"resume_state"`
	Status          ReferralStatus `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
