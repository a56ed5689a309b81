package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/repository"

	"github.com/google/uuid"
)

type offerRepository struct {
	db dbtx
}

func NewOfferRepository(db dbtx) repository.OfferRepository {
	return &offerRepository{db: db}
}

const offerColumns = `id, referral_id, public_token, letter_ref, letter_state, valid_until,
	status, offer_type, version, created_by_id, responded_at, revoked_at, revoked_by_id,
	revoke_reason, created_at, updated_at`

func (r *offerRepository) Create(ctx context.Context, o *domain.CandidateOffer) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	query := `INSERT INTO candidate_offers (` + offerColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.ReferralID, o.PublicToken, o.LetterRef, o.LetterState, o.ValidUntil,
		o.Status, o.OfferType, o.Version, o.CreatedByID, o.RespondedAt, o.RevokedAt,
		o.RevokedByID, o.RevokeReason, o.CreatedAt, o.UpdatedAt)
	// The partial unique index is the backstop for the single-pending-offer
	// invariant under concurrent makeOffer calls.
	if isUniqueViolation(err, "unique_pending_offer_per_referral") {
		return domain.NewConflict("offer", "candidate already has a pending offer", "")
	}
	return err
}

func scanOffer(row interface{ Scan(...any) error }) (*domain.CandidateOffer, error) {
	o := &domain.CandidateOffer{}
	var letterRef, revokeReason sql.NullString
	err := row.Scan(&o.ID, &o.ReferralID, &o.PublicToken, &letterRef, &o.LetterState,
		&o.ValidUntil, &o.Status, &o.OfferType, &o.Version, &o.CreatedByID,
		&o.RespondedAt, &o.RevokedAt, &o.RevokedByID, &revokeReason, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.LetterRef = letterRef.String
	o.RevokeReason = revokeReason.String
	return o, nil
}

func (r *offerRepository) GetByID(ctx context.Context, id string) (*domain.CandidateOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM candidate_offers WHERE id = $1`
	o, err := scanOffer(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("offer", id)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *offerRepository) GetByPublicToken(ctx context.Context, token string) (*domain.CandidateOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM candidate_offers WHERE public_token = $1`
	o, err := scanOffer(r.db.QueryRowContext(ctx, query, token))
	if errors.Is(err, sql.ErrNoRows) {
		// Deliberately no token echo; the id is unguessable by design.
		return nil, domain.NewNotFound("offer", "")
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *offerRepository) GetPending(ctx context.Context, referralID string) (*domain.CandidateOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM candidate_offers
	          WHERE referral_id = $1 AND status = 'pending'`
	o, err := scanOffer(r.db.QueryRowContext(ctx, query, referralID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("pending offer", referralID)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *offerRepository) list(ctx context.Context, where, order string, args ...any) ([]domain.CandidateOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM candidate_offers ` + where + ` ` + order
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []domain.CandidateOffer
	for rows.Next() {
		o := domain.CandidateOffer{}
		var letterRef, revokeReason sql.NullString
		if err := rows.Scan(&o.ID, &o.ReferralID, &o.PublicToken, &letterRef, &o.LetterState,
			&o.ValidUntil, &o.Status, &o.OfferType, &o.Version, &o.CreatedByID,
			&o.RespondedAt, &o.RevokedAt, &o.RevokedByID, &revokeReason, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.LetterRef = letterRef.String
		o.RevokeReason = revokeReason.String
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

func (r *offerRepository) ListByReferral(ctx context.Context, referralID string) ([]domain.CandidateOffer, error) {
	return r.list(ctx, `WHERE referral_id = $1`, `ORDER BY version ASC`, referralID)
}

func (r *offerRepository) MaxVersion(ctx context.Context, referralID string) (int32, error) {
	var version int32
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM candidate_offers WHERE referral_id = $1`,
		referralID).Scan(&version)
	return version, err
}

func (r *offerRepository) Update(ctx context.Context, o *domain.CandidateOffer) error {
	o.UpdatedAt = time.Now()
	res, err := r.db.ExecContext(ctx,
		`UPDATE candidate_offers SET status=$1, responded_at=$2, revoked_at=$3,
		 revoked_by_id=$4, revoke_reason=$5, updated_at=$6 WHERE id=$7`,
		o.Status, o.RespondedAt, o.RevokedAt, o.RevokedByID, o.RevokeReason, o.UpdatedAt, o.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("offer", o.ID)
	}
	return nil
}

func (r *offerRepository) SetLetter(ctx context.Context, id, ref string, state domain.LetterState) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE candidate_offers SET letter_ref=$1, letter_state=$2, updated_at=$3 WHERE id=$4`,
		ref, state, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("offer", id)
	}
	return nil
}

func (r *offerRepository) ListExpiredPending(ctx context.Context, now time.Time) ([]domain.CandidateOffer, error) {
	return r.list(ctx, `WHERE status = 'pending' AND valid_until < $1`, `ORDER BY valid_until ASC`, now)
}

func (r *offerRepository) ListStalledLetters(ctx context.Context, olderThan time.Time) ([]domain.CandidateOffer, error) {
	return r.list(ctx,
		`WHERE status = 'pending' AND letter_state = 'pending_upload' AND created_at < $1`,
		`ORDER BY created_at ASC`, olderThan)
}
