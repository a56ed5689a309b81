package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateRoundNumbers(t *testing.T) {
	mk := func(nums ...int32) []InterviewRound {
		rounds := make([]InterviewRound, len(nums))
		for i, n := range nums {
			rounds[i] = InterviewRound{Name: "r", RoundNumber: n}
		}
		return rounds
	}

	assert.NoError(t, ValidateRoundNumbers(mk(1)))
	assert.NoError(t, ValidateRoundNumbers(mk(1, 2, 3)))
	assert.NoError(t, ValidateRoundNumbers(mk(3, 1, 2)), "order of definition does not matter")

	assert.Error(t, ValidateRoundNumbers(nil))
	assert.Error(t, ValidateRoundNumbers(mk(2)), "must start at 1")
	assert.Error(t, ValidateRoundNumbers(mk(1, 3)), "no gaps")
	assert.Error(t, ValidateRoundNumbers(mk(1, 2, 2)), "no duplicates")
	assert.Error(t, ValidateRoundNumbers(mk(0, 1)), "no zero round")
}

func TestCanMakeOffer(t *testing.T) {
	tests := []struct {
		name       string
		interviews []CandidateInterview
		want       bool
	}{
		{"no rounds", nil, false},
		{"all required cleared", []CandidateInterview{
			{Status: RoundStatusCleared, IsRequired: true},
			{Status: RoundStatusCleared, IsRequired: true},
		}, true},
		{"required round open", []CandidateInterview{
			{Status: RoundStatusCleared, IsRequired: true},
			{Status: RoundStatusPending, IsRequired: true},
		}, false},
		{"required round skipped", []CandidateInterview{
			{Status: RoundStatusSkipped, IsRequired: true},
		}, false},
		{"optional round not cleared", []CandidateInterview{
			{Status: RoundStatusCleared, IsRequired: true},
			{Status: RoundStatusSkipped, IsRequired: false},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMakeOffer(tt.interviews))
		})
	}
}

func TestEvaluateRounds(t *testing.T) {
	t.Run("all cleared", func(t *testing.T) {
		event, ok := EvaluateRounds([]CandidateInterview{
			{Status: RoundStatusCleared, RoundNumber: 1},
			{Status: RoundStatusCleared, RoundNumber: 2},
		}, 2)
		assert.True(t, ok)
		assert.Equal(t, EventAllRoundsCleared, event)
	})

	t.Run("no open rounds but not all cleared", func(t *testing.T) {
		event, ok := EvaluateRounds([]CandidateInterview{
			{Status: RoundStatusCleared, RoundNumber: 1},
			{Status: RoundStatusSkipped, RoundNumber: 2},
		}, 1)
		assert.True(t, ok)
		assert.Equal(t, EventAllRoundsDone, event)
	})

	t.Run("first round cleared with later rounds open", func(t *testing.T) {
		event, ok := EvaluateRounds([]CandidateInterview{
			{Status: RoundStatusCleared, RoundNumber: 1},
			{Status: RoundStatusPending, RoundNumber: 2},
		}, 1)
		assert.True(t, ok)
		assert.Equal(t, EventFirstRoundCleared, event)
	})

	t.Run("middle round cleared implies nothing", func(t *testing.T) {
		_, ok := EvaluateRounds([]CandidateInterview{
			{Status: RoundStatusCleared, RoundNumber: 1},
			{Status: RoundStatusCleared, RoundNumber: 2},
			{Status: RoundStatusPending, RoundNumber: 3},
		}, 2)
		assert.False(t, ok)
	})
}

func TestRoundStatus(t *testing.T) {
	assert.True(t, RoundStatusCleared.Completed())
	assert.True(t, RoundStatusRejected.Completed())
	assert.False(t, RoundStatusSkipped.Completed())
	assert.False(t, RoundStatusOnHold.Completed())

	assert.True(t, RoundStatusPending.Open())
	assert.True(t, RoundStatusScheduled.Open())
	assert.True(t, RoundStatusInProgress.Open())
	assert.False(t, RoundStatusOnHold.Open())
	assert.False(t, RoundStatusSkipped.Open())

	assert.False(t, RoundStatus("bogus").Valid())
}

func TestOfferExpiredAt(t *testing.T) {
	now := time.Now()
	pending := &CandidateOffer{Status: OfferStatusPending, ValidUntil: now.Add(-time.Hour)}
	assert.True(t, pending.ExpiredAt(now))

	future := &CandidateOffer{Status: OfferStatusPending, ValidUntil: now.Add(time.Hour)}
	assert.False(t, future.ExpiredAt(now))

	// Only pending offers expire; a responded offer keeps its status.
	accepted := &CandidateOffer{Status: OfferStatusAccepted, ValidUntil: now.Add(-time.Hour)}
	assert.False(t, accepted.ExpiredAt(now))
}

func TestSplitName(t *testing.T) {
	first, last := SplitName("Ada Lovelace")
	assert.Equal(t, "Ada", first)
	assert.Equal(t, "Lovelace", last)

	first, last = SplitName("Prince")
	assert.Equal(t, "Prince", first)
	assert.Equal(t, "", last)

	first, last = SplitName("Mary Jane van der Berg")
	assert.Equal(t, "Mary", first)
	assert.Equal(t, "Jane van der Berg", last)

	first, last = SplitName("   ")
	assert.Equal(t, "", first)
	assert.Equal(t, "", last)
}
