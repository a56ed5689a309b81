package postgres

import (
	"context"
	"testing"
	"time"

	"talentdesk-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var offerRows = []string{
	"id", "referral_id", "public_token", "letter_ref", "letter_state", "valid_until",
	"status", "offer_type", "version", "created_by_id", "responded_at", "revoked_at",
	"revoked_by_id", "revoke_reason", "created_at", "updated_at",
}

func offerRow(rows *sqlmock.Rows, id, referralID, token, status string, version int32, validUntil time.Time) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, referralID, token, nil, "missing", validUntil,
		status, "original", version, "hr-1", nil, nil,
		nil, nil, now, now)
}

func TestOfferRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts and assigns id", func(t *testing.T) {
		store, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO candidate_offers").
			WillReturnResult(sqlmock.NewResult(0, 1))

		offer := &domain.CandidateOffer{
			ReferralID:  "ref-1",
			PublicToken: "tok",
			LetterState: domain.LetterStateMissing,
			ValidUntil:  time.Now().Add(72 * time.Hour),
			Status:      domain.OfferStatusPending,
			OfferType:   domain.OfferTypeOriginal,
			Version:     1,
			CreatedByID: "hr-1",
		}
		err := store.Offers.Create(ctx, offer)
		assert.NoError(t, err)
		assert.NotEmpty(t, offer.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second pending offer maps to conflict", func(t *testing.T) {
		store, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO candidate_offers").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "unique_pending_offer_per_referral"})

		err := store.Offers.Create(ctx, &domain.CandidateOffer{ReferralID: "ref-1"})
		assert.True(t, domain.IsConflict(err))
		assert.Contains(t, err.Error(), "pending offer")
	})

	t.Run("duplicate version passes through", func(t *testing.T) {
		store, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO candidate_offers").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "unique_offer_version_per_referral"})

		err := store.Offers.Create(ctx, &domain.CandidateOffer{ReferralID: "ref-1"})
		assert.Error(t, err)
		assert.False(t, domain.IsConflict(err))
	})
}

func TestOfferRepository_GetByPublicToken(t *testing.T) {
	ctx := context.Background()

	t.Run("finds by token", func(t *testing.T) {
		store, mock := newMockDB(t)
		rows := offerRow(sqlmock.NewRows(offerRows),
			"offer-1", "ref-1", "abc123", "pending", 1, time.Now().Add(time.Hour))
		mock.ExpectQuery("SELECT (.+) FROM candidate_offers WHERE public_token = \\$1").
			WithArgs("abc123").
			WillReturnRows(rows)

		offer, err := store.Offers.GetByPublicToken(ctx, "abc123")
		assert.NoError(t, err)
		assert.Equal(t, "offer-1", offer.ID)
		assert.Equal(t, domain.OfferStatusPending, offer.Status)
	})

	t.Run("unknown token does not echo it back", func(t *testing.T) {
		store, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM candidate_offers WHERE public_token = \\$1").
			WithArgs("guess").
			WillReturnRows(sqlmock.NewRows(offerRows))

		_, err := store.Offers.GetByPublicToken(ctx, "guess")
		assert.True(t, domain.IsNotFound(err))
		assert.NotContains(t, err.Error(), "guess")
	})
}

func TestOfferRepository_MaxVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("returns highest version", func(t *testing.T) {
		store, mock := newMockDB(t)
		mock.ExpectQuery("SELECT COALESCE\\(MAX\\(version\\), 0\\) FROM candidate_offers").
			WithArgs("ref-1").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))

		version, err := store.Offers.MaxVersion(ctx, "ref-1")
		assert.NoError(t, err)
		assert.Equal(t, int32(3), version)
	})

	t.Run("zero when no offers exist", func(t *testing.T) {
		store, mock := newMockDB(t)
		mock.ExpectQuery("SELECT COALESCE\\(MAX\\(version\\), 0\\) FROM candidate_offers").
			WithArgs("ref-new").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

		version, err := store.Offers.MaxVersion(ctx, "ref-new")
		assert.NoError(t, err)
		assert.Equal(t, int32(0), version)
	})
}

func TestOfferRepository_ListExpiredPending(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows(offerRows)
	offerRow(rows, "offer-1", "ref-1", "tok-1", "pending", 1, now.Add(-time.Hour))
	offerRow(rows, "offer-2", "ref-2", "tok-2", "pending", 2, now.Add(-time.Minute))
	mock.ExpectQuery(`SELECT (.+) FROM candidate_offers WHERE status = 'pending' AND valid_until < \$1`).
		WithArgs(now).
		WillReturnRows(rows)

	offers, err := store.Offers.ListExpiredPending(ctx, now)
	assert.NoError(t, err)
	assert.Len(t, offers, 2)
	assert.Equal(t, "offer-1", offers[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepository_ListStalledLetters(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockDB(t)
	cutoff := time.Now().Add(-30 * time.Minute)

	rows := sqlmock.NewRows(offerRows)
	now := time.Now()
	rows.AddRow("offer-1", "ref-1", "tok-1", nil, "pending_upload", now.Add(72*time.Hour),
		"pending", "original", 1, "hr-1", nil, nil, nil, nil, now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT (.+) FROM candidate_offers WHERE status = 'pending' AND letter_state = 'pending_upload' AND created_at < \$1`).
		WithArgs(cutoff).
		WillReturnRows(rows)

	offers, err := store.Offers.ListStalledLetters(ctx, cutoff)
	assert.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.Equal(t, domain.LetterStatePendingUpload, offers[0].LetterState)
}

func TestOfferRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates response fields", func(t *testing.T) {
		store, mock := newMockDB(t)
		mock.ExpectExec("UPDATE candidate_offers SET status").
			WillReturnResult(sqlmock.NewResult(0, 1))

		respondedAt := time.Now()
		err := store.Offers.Update(ctx, &domain.CandidateOffer{
			ID: "offer-1", Status: domain.OfferStatusAccepted, RespondedAt: &respondedAt,
		})
		assert.NoError(t, err)
	})

	t.Run("missing offer reads as not found", func(t *testing.T) {
		store, mock := newMockDB(t)
		mock.ExpectExec("UPDATE candidate_offers SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Offers.Update(ctx, &domain.CandidateOffer{ID: "missing"})
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestOfferRepository_SetLetter(t *testing.T) {
	ctx := context.Background()
	store, mock := newMockDB(t)

	mock.ExpectExec("UPDATE candidate_offers SET letter_ref").
		WithArgs("doc-9", string(domain.LetterStateAttached), sqlmock.AnyArg(), "offer-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Offers.SetLetter(ctx, "offer-1", "doc-9", domain.LetterStateAttached)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
