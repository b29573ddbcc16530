package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"weddingrsvp/internal/database"
	"weddingrsvp/internal/models"
)

const (
	familyColumns = "id, family_name, access_code, phone, notes, created_at"
	memberColumns = "id, family_id, name, relationship, created_at"
)

// FamilyRepository handles database operations for guest families and their members
type FamilyRepository struct {
	db database.DBTX
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db database.DBTX) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *FamilyRepository) WithTx(tx *database.Tx) *FamilyRepository {
	return &FamilyRepository{db: tx}
}

// InsertFamily inserts a family row and returns it with its new ID.
// A duplicate access code surfaces as the driver's unique-constraint error.
func (r *FamilyRepository) InsertFamily(ctx context.Context, input models.FamilyInput, accessCode string, now time.Time) (*models.GuestFamily, error) {
	query := "INSERT INTO guest_families (family_name, access_code, phone, notes, created_at) VALUES (?, ?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, input.FamilyName, accessCode, input.Phone, input.Notes, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert family: %w", err)
	}

	return &models.GuestFamily{
		ID:         id,
		FamilyName: input.FamilyName,
		AccessCode: accessCode,
		Phone:      input.Phone,
		Notes:      input.Notes,
		CreatedAt:  now,
	}, nil
}

// UpdateFamily replaces a family's editable fields. It reports false when no
// family has the given ID. The access code is never touched.
func (r *FamilyRepository) UpdateFamily(ctx context.Context, familyID int64, input models.FamilyInput) (bool, error) {
	query := "UPDATE guest_families SET family_name = ?, phone = ?, notes = ? WHERE id = ?"
	result, err := r.db.ExecContext(ctx, query, input.FamilyName, input.Phone, input.Notes, familyID)
	if err != nil {
		return false, fmt.Errorf("failed to update family: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// DeleteFamily deletes the family row only; members are deleted separately
func (r *FamilyRepository) DeleteFamily(ctx context.Context, familyID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM guest_families WHERE id = ?", familyID); err != nil {
		return fmt.Errorf("failed to delete family: %w", err)
	}
	return nil
}

// GetFamilyByID retrieves a family by ID, or nil if it does not exist
func (r *FamilyRepository) GetFamilyByID(ctx context.Context, familyID int64) (*models.GuestFamily, error) {
	family := &models.GuestFamily{}
	err := r.db.GetContext(ctx, family, "SELECT "+familyColumns+" FROM guest_families WHERE id = ?", familyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	return family, nil
}

// GetFamilyByCode retrieves a family by its access code, or nil if none matches
func (r *FamilyRepository) GetFamilyByCode(ctx context.Context, accessCode string) (*models.GuestFamily, error) {
	family := &models.GuestFamily{}
	err := r.db.GetContext(ctx, family, "SELECT "+familyColumns+" FROM guest_families WHERE access_code = ?", accessCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family by code: %w", err)
	}
	return family, nil
}

// ListFamilies returns every family, newest first
func (r *FamilyRepository) ListFamilies(ctx context.Context) ([]models.GuestFamily, error) {
	families := []models.GuestFamily{}
	query := "SELECT " + familyColumns + " FROM guest_families ORDER BY created_at DESC, id DESC"
	if err := r.db.SelectContext(ctx, &families, query); err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	return families, nil
}

// InsertMembers inserts members for a family in the given order
func (r *FamilyRepository) InsertMembers(ctx context.Context, familyID int64, members []models.MemberInput, now time.Time) ([]models.FamilyMember, error) {
	query := "INSERT INTO family_members (family_id, name, relationship, created_at) VALUES (?, ?, ?, ?)"

	inserted := make([]models.FamilyMember, 0, len(members))
	for _, m := range members {
		id, err := r.db.ExecReturningID(ctx, query, familyID, m.Name, m.Relationship, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert member: %w", err)
		}
		inserted = append(inserted, models.FamilyMember{
			ID:           id,
			FamilyID:     familyID,
			Name:         m.Name,
			Relationship: m.Relationship,
			CreatedAt:    now,
		})
	}
	return inserted, nil
}

// DeleteMembers removes every member of a family. Their confirmations stay.
func (r *FamilyRepository) DeleteMembers(ctx context.Context, familyID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM family_members WHERE family_id = ?", familyID); err != nil {
		return fmt.Errorf("failed to delete members: %w", err)
	}
	return nil
}

// GetFamilyMembers returns a family's members in creation order
func (r *FamilyRepository) GetFamilyMembers(ctx context.Context, familyID int64) ([]models.FamilyMember, error) {
	members := []models.FamilyMember{}
	query := "SELECT " + memberColumns + " FROM family_members WHERE family_id = ? ORDER BY created_at ASC, id ASC"
	if err := r.db.SelectContext(ctx, &members, query, familyID); err != nil {
		return nil, fmt.Errorf("failed to get family members: %w", err)
	}
	return members, nil
}

// ListMembers returns every member of every family in creation order
func (r *FamilyRepository) ListMembers(ctx context.Context) ([]models.FamilyMember, error) {
	members := []models.FamilyMember{}
	query := "SELECT " + memberColumns + " FROM family_members ORDER BY created_at ASC, id ASC"
	if err := r.db.SelectContext(ctx, &members, query); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// GetMembersByIDs returns the members among ids that still exist
func (r *FamilyRepository) GetMembersByIDs(ctx context.Context, ids []int64) ([]models.FamilyMember, error) {
	members := []models.FamilyMember{}
	if len(ids) == 0 {
		return members, nil
	}

	query, args, err := sqlx.In("SELECT "+memberColumns+" FROM family_members WHERE id IN (?) ORDER BY id ASC", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build member query: %w", err)
	}
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	return members, nil
}
