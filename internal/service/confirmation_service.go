package service

import (
	"context"
	"time"

	"weddingrsvp/internal/database"
	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/models"
	"weddingrsvp/internal/repository"
	"weddingrsvp/internal/validation"
)

// Notifier is told about every confirmation batch after it is stored
type Notifier interface {
	NotifyConfirmations(ctx context.Context, confirmations []models.MemberConfirmation) error
}

// ConfirmationService records guest RSVP responses
type ConfirmationService struct {
	db               *database.DB
	confirmationRepo *repository.ConfirmationRepository
	notifier         Notifier
	log              *logger.Logger
	now              func() time.Time
}

// NewConfirmationService creates a new confirmation service. notifier may be nil.
func NewConfirmationService(db *database.DB, confirmationRepo *repository.ConfirmationRepository, notifier Notifier, log *logger.Logger) *ConfirmationService {
	return &ConfirmationService{
		db:               db,
		confirmationRepo: confirmationRepo,
		notifier:         notifier,
		log:              log,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// Record appends one confirmation row per item, all or nothing. Member IDs
// are stored as given without checking that the member exists.
func (s *ConfirmationService) Record(ctx context.Context, items []models.ConfirmationInput) ([]models.MemberConfirmation, error) {
	cleaned, err := validation.ValidateConfirmations(items)
	if err != nil {
		return nil, err
	}

	var inserted []models.MemberConfirmation
	err = s.db.WithTx(ctx, func(tx *database.Tx) error {
		var err error
		inserted, err = s.confirmationRepo.WithTx(tx).InsertConfirmations(ctx, cleaned, s.now())
		return err
	})
	err = keepCommitted(s.log, err)
	if err != nil {
		return nil, err
	}

	s.log.Info("Confirmations recorded", "count", len(inserted))

	if s.notifier != nil {
		if err := s.notifier.NotifyConfirmations(ctx, inserted); err != nil {
			s.log.Error("Failed to send confirmation notification", "error", err)
		}
	}

	return inserted, nil
}
