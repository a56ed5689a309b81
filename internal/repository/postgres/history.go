package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/repository"

	"github.com/google/uuid"
)

type historyRepository struct {
	db dbtx
}

func NewHistoryRepository(db dbtx) repository.HistoryRepository {
	return &historyRepository{db: db}
}

// Append only. History rows are never updated or deleted.
func (r *historyRepository) Append(ctx context.Context, h *domain.InterviewHistory) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	h.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO interview_history (id, referral_id, changed_by_id, action, round_number,
		 previous_value, new_value, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		h.ID, h.ReferralID, h.ChangedByID, h.Action, h.RoundNumber,
		h.PreviousValue, h.NewValue, h.Notes, h.CreatedAt)
	return err
}

func (r *historyRepository) ListByReferral(ctx context.Context, referralID string) ([]domain.InterviewHistory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT h.id, h.referral_id, h.changed_by_id, h.action, h.round_number,
		 h.previous_value, h.new_value, h.notes, h.created_at, e.first_name, e.last_name
		 FROM interview_history h
		 LEFT JOIN employees e ON e.id = h.changed_by_id
		 WHERE h.referral_id = $1 ORDER BY h.created_at DESC`, referralID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.InterviewHistory
	for rows.Next() {
		h := domain.InterviewHistory{}
		var prev, next, notes, firstName, lastName sql.NullString
		if err := rows.Scan(&h.ID, &h.ReferralID, &h.ChangedByID, &h.Action, &h.RoundNumber,
			&prev, &next, &notes, &h.CreatedAt, &firstName, &lastName); err != nil {
			return nil, err
		}
		h.PreviousValue = prev.String
		h.NewValue = next.String
		h.Notes = notes.String
		h.ChangedByName = strings.TrimSpace(firstName.String + " " + lastName.String)
		entries = append(entries, h)
	}
	return entries, rows.Err()
}
