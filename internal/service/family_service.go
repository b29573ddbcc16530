package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"weddingrsvp/internal/credentials"
	"weddingrsvp/internal/database"
	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/models"
	"weddingrsvp/internal/repository"
	"weddingrsvp/internal/validation"
)

// MaxAccessCodeAttempts bounds the number of codes drawn for one new family
const MaxAccessCodeAttempts = 5

var (
	ErrFamilyNotFound      = errors.New("family not found")
	ErrAccessCodeExhausted = errors.New("could not generate a unique access code")
)

// FamilyListing is the admin view of every family, member and confirmation.
// The three sequences are joined by the caller.
type FamilyListing struct {
	Families      []models.GuestFamily        `json:"families"`
	Members       []models.FamilyMember       `json:"members"`
	Confirmations []models.MemberConfirmation `json:"confirmations"`
}

// FamilyService handles guest family business logic
type FamilyService struct {
	db               *database.DB
	familyRepo       *repository.FamilyRepository
	confirmationRepo *repository.ConfirmationRepository
	log              *logger.Logger

	generateCode func() (string, error)
	now          func() time.Time
}

// NewFamilyService creates a new family service
func NewFamilyService(db *database.DB, familyRepo *repository.FamilyRepository, confirmationRepo *repository.ConfirmationRepository, log *logger.Logger) *FamilyService {
	return &FamilyService{
		db:               db,
		familyRepo:       familyRepo,
		confirmationRepo: confirmationRepo,
		log:              log,
		generateCode:     credentials.GenerateAccessCode,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// CreateFamily validates req and stores the family with a fresh access code.
// A code collision rolls the attempt back and retries with a new code.
func (s *FamilyService) CreateFamily(ctx context.Context, req validation.FamilyRequest) (*models.FamilyWithMembers, error) {
	input, err := validation.ValidateFamily(req)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= MaxAccessCodeAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate access code: %w", err)
		}

		result, err := s.insertFamily(ctx, input, code)
		if err == nil {
			s.log.Info("Family created", "family_id", result.Family.ID, "members", len(result.Members))
			return result, nil
		}
		if !s.db.Dialect.IsUniqueViolation(err) {
			return nil, err
		}
		s.log.Warn("Access code collision, retrying", "attempt", attempt)
	}

	return nil, ErrAccessCodeExhausted
}

func (s *FamilyService) insertFamily(ctx context.Context, input models.FamilyInput, code string) (*models.FamilyWithMembers, error) {
	var result *models.FamilyWithMembers
	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		repo := s.familyRepo.WithTx(tx)
		now := s.now()

		family, err := repo.InsertFamily(ctx, input, code, now)
		if err != nil {
			return err
		}
		members, err := repo.InsertMembers(ctx, family.ID, input.Members, now)
		if err != nil {
			return err
		}

		result = &models.FamilyWithMembers{Family: *family, Members: members}
		return nil
	})
	return result, keepCommitted(s.log, err)
}

// UpdateFamily replaces a family's fields and its whole member set.
// Member IDs are not preserved.
func (s *FamilyService) UpdateFamily(ctx context.Context, familyID int64, req validation.FamilyRequest) (*models.FamilyWithMembers, error) {
	if err := validation.ValidateFamilyID(familyID); err != nil {
		return nil, err
	}
	input, err := validation.ValidateFamily(req)
	if err != nil {
		return nil, err
	}

	var result *models.FamilyWithMembers
	err = s.db.WithTx(ctx, func(tx *database.Tx) error {
		repo := s.familyRepo.WithTx(tx)

		found, err := repo.UpdateFamily(ctx, familyID, input)
		if err != nil {
			return err
		}
		if !found {
			return ErrFamilyNotFound
		}

		if err := repo.DeleteMembers(ctx, familyID); err != nil {
			return err
		}
		if _, err := repo.InsertMembers(ctx, familyID, input.Members, s.now()); err != nil {
			return err
		}

		family, err := repo.GetFamilyByID(ctx, familyID)
		if err != nil {
			return err
		}
		if family == nil {
			return ErrFamilyNotFound
		}
		members, err := repo.GetFamilyMembers(ctx, familyID)
		if err != nil {
			return err
		}

		result = &models.FamilyWithMembers{Family: *family, Members: members}
		return nil
	})
	err = keepCommitted(s.log, err)
	if err != nil {
		return nil, err
	}

	s.log.Info("Family updated", "family_id", familyID, "members", len(result.Members))
	return result, nil
}

// DeleteFamily removes a family and its members. Unknown IDs are not an
// error. Confirmations of the removed members are kept.
func (s *FamilyService) DeleteFamily(ctx context.Context, familyID int64) error {
	if err := validation.ValidateFamilyID(familyID); err != nil {
		return err
	}

	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		repo := s.familyRepo.WithTx(tx)
		if err := repo.DeleteMembers(ctx, familyID); err != nil {
			return err
		}
		return repo.DeleteFamily(ctx, familyID)
	})
	err = keepCommitted(s.log, err)
	if err != nil {
		return err
	}

	s.log.Info("Family deleted", "family_id", familyID)
	return nil
}

// ListAll returns every family, member and confirmation in display order
func (s *FamilyService) ListAll(ctx context.Context) (*FamilyListing, error) {
	families, err := s.familyRepo.ListFamilies(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.familyRepo.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	confirmations, err := s.confirmationRepo.ListConfirmations(ctx)
	if err != nil {
		return nil, err
	}

	return &FamilyListing{
		Families:      families,
		Members:       members,
		Confirmations: confirmations,
	}, nil
}

// Summary counts members by their current RSVP status
func (s *FamilyService) Summary(ctx context.Context) (*models.RSVPSummary, error) {
	listing, err := s.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load RSVP data: %w", err)
	}

	summary := models.Summarize(listing.Families, listing.Members, listing.Confirmations)
	return &summary, nil
}
