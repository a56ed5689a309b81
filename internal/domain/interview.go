package domain

import (
	"sort"
	"time"
)

type RoundStatus string

const (
	RoundStatusPending    RoundStatus = "pending"
	RoundStatusScheduled  RoundStatus = "scheduled"
	RoundStatusInProgress RoundStatus = "in_progress"
	RoundStatusCleared    RoundStatus = "cleared"
	RoundStatusRejected   RoundStatus = "rejected"
	RoundStatusOnHold     RoundStatus = "on_hold"
	RoundStatusSkipped    RoundStatus = "skipped"
)

func (s RoundStatus) Valid() bool {
	switch s {
	case RoundStatusPending, RoundStatusScheduled, RoundStatusInProgress,
		RoundStatusCleared, RoundStatusRejected, RoundStatusOnHold, RoundStatusSkipped:
		return true
	}
	return false
}

// Completed rounds are immutable; cleared and rejected are per-round
// terminal states.
func (s RoundStatus) Completed() bool {
	return s == RoundStatusCleared || s == RoundStatusRejected
}

// Open reports whether the round still awaits an outcome.
func (s RoundStatus) Open() bool {
	switch s {
	case RoundStatusPending, RoundStatusScheduled, RoundStatusInProgress:
		return true
	}
	return false
}

// InterviewRound is one stage of a job's fixed interview template.
type InterviewRound struct {
	ID           string    `json:"id"`
	JobOpeningID string    `json:"job_opening_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	RoundNumber  int32     `json:"round_number"`
	IsRequired   bool      `json:"is_required"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidateRoundNumbers enforces dense, unique, 1-based ordinals across a
// job's round template.
func ValidateRoundNumbers(rounds []InterviewRound) error {
	if len(rounds) == 0 {
		return NewInvalidState("at least one interview round is required")
	}
	nums := make([]int, 0, len(rounds))
	seen := make(map[int32]bool, len(rounds))
	for _, r := range rounds {
		if seen[r.RoundNumber] {
			return NewInvalidState("duplicate round number %d", r.RoundNumber)
		}
		seen[r.RoundNumber] = true
		nums = append(nums, int(r.RoundNumber))
	}
	sort.Ints(nums)
	for i, n := range nums {
		if n != i+1 {
			return NewInvalidState("round numbers must be dense starting at 1, got %v", nums)
		}
	}
	return nil
}

// CandidateInterview is one round as experienced by one candidate; unique
// per (referral, round).
type CandidateInterview struct {
	ID            string      `json:"id"`
	ReferralID    string      `json:"referral_id"`
	RoundID       string      `json:"round_id"`
	InterviewerID *string     `json:"interviewer_id,omitempty"`
	ScheduledAt   *time.Time  `json:"scheduled_at,omitempty"`
	Status        RoundStatus `json:"status"`
	Feedback      string      `json:"feedback,omitempty"`
	Rating        *int32      `json:"rating,omitempty"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	// Denormalized from the round template on reads.
	RoundNumber int32  `json:"round_number,omitempty"`
	RoundName   string `json:"round_name,omitempty"`
	IsRequired  bool   `json:"is_required,omitempty"`
}

// CanMakeOffer is the authoritative offer-eligibility gate: every required
// round cleared. False when no rounds exist.
func CanMakeOffer(interviews []CandidateInterview) bool {
	if len(interviews) == 0 {
		return false
	}
	for _, iv := range interviews {
		if iv.IsRequired && iv.Status != RoundStatusCleared {
			return false
		}
	}
	return true
}

// EvaluateRounds derives the candidate-level event, if any, implied by the
// current state of all round instances after a round was just cleared.
func EvaluateRounds(interviews []CandidateInterview, clearedRoundNumber int32) (ReferralEvent, bool) {
	allCleared := true
	anyOpen := false
	for _, iv := range interviews {
		if iv.Status != RoundStatusCleared {
			allCleared = false
		}
		if iv.Status.Open() {
			anyOpen = true
		}
	}
	switch {
	case allCleared:
		return EventAllRoundsCleared, true
	case !anyOpen:
		return EventAllRoundsDone, true
	case clearedRoundNumber == 1:
		// Round 1 acts as the initial screening gate.
		return EventFirstRoundCleared, true
	}
	return "", false
}
