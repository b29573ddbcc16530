package service

import (
	"context"
	"errors"

	"weddingrsvp/internal/credentials"
	"weddingrsvp/internal/models"
	"weddingrsvp/internal/repository"
)

var (
	ErrInvalidAccessCode  = errors.New("invalid access code")
	ErrAccessCodeNotFound = errors.New("access code not found")
)

// AccessService resolves a guest's access code to their invitation
type AccessService struct {
	familyRepo *repository.FamilyRepository
}

// NewAccessService creates a new access service
func NewAccessService(familyRepo *repository.FamilyRepository) *AccessService {
	return &AccessService{familyRepo: familyRepo}
}

// LookupByCode returns the family owning code and its members in creation
// order. The code may be typed with a dash separator and surrounding spaces.
func (s *AccessService) LookupByCode(ctx context.Context, code string) (*models.FamilyWithMembers, error) {
	normalized := credentials.NormalizeAccessCode(code)
	if len(normalized) != credentials.AccessCodeLength {
		return nil, ErrInvalidAccessCode
	}

	family, err := s.familyRepo.GetFamilyByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, ErrAccessCodeNotFound
	}

	members, err := s.familyRepo.GetFamilyMembers(ctx, family.ID)
	if err != nil {
		return nil, err
	}

	return &models.FamilyWithMembers{Family: *family, Members: members}, nil
}
