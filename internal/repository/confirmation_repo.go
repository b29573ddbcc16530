package repository

import (
	"context"
	"fmt"
	"time"

	"weddingrsvp/internal/database"
	"weddingrsvp/internal/models"
)

// ConfirmationRepository handles the append-only RSVP log
type ConfirmationRepository struct {
	db database.DBTX
}

// NewConfirmationRepository creates a new confirmation repository
func NewConfirmationRepository(db database.DBTX) *ConfirmationRepository {
	return &ConfirmationRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *ConfirmationRepository) WithTx(tx *database.Tx) *ConfirmationRepository {
	return &ConfirmationRepository{db: tx}
}

// InsertConfirmations appends one row per item, all stamped with now
func (r *ConfirmationRepository) InsertConfirmations(ctx context.Context, items []models.ConfirmationInput, now time.Time) ([]models.MemberConfirmation, error) {
	query := `
		INSERT INTO member_confirmations
			(member_id, attending, dietary_restrictions, message, confirmed_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	inserted := make([]models.MemberConfirmation, 0, len(items))
	for _, item := range items {
		id, err := r.db.ExecReturningID(ctx, query, item.MemberID, item.Attending, item.DietaryRestrictions, item.Message, now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert confirmation: %w", err)
		}
		inserted = append(inserted, models.MemberConfirmation{
			ID:                  id,
			MemberID:            item.MemberID,
			Attending:           item.Attending,
			DietaryRestrictions: item.DietaryRestrictions,
			Message:             item.Message,
			ConfirmedAt:         now,
			UpdatedAt:           now,
		})
	}
	return inserted, nil
}

// ListConfirmations returns every confirmation, newest first
func (r *ConfirmationRepository) ListConfirmations(ctx context.Context) ([]models.MemberConfirmation, error) {
	confirmations := []models.MemberConfirmation{}
	query := `
		SELECT id, member_id, attending, dietary_restrictions, message, confirmed_at, updated_at
		FROM member_confirmations
		ORDER BY confirmed_at DESC, id DESC
	`
	if err := r.db.SelectContext(ctx, &confirmations, query); err != nil {
		return nil, fmt.Errorf("failed to list confirmations: %w", err)
	}
	return confirmations, nil
}
