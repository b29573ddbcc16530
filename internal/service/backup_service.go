package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"weddingrsvp/internal/database"
	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/models"
	"weddingrsvp/internal/repository"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData represents the complete guest list backup structure.
// Admin users are not included; re-provision them after a restore.
type BackupData struct {
	Version       string                      `json:"version"`
	ExportedAt    time.Time                   `json:"exported_at"`
	DatabaseType  string                      `json:"database_type"`
	Families      []models.GuestFamily        `json:"families"`
	Members       []models.FamilyMember       `json:"members"`
	Confirmations []models.MemberConfirmation `json:"confirmations"`
}

// BackupService handles export and restore of the guest list
type BackupService struct {
	db               *database.DB
	familyRepo       *repository.FamilyRepository
	confirmationRepo *repository.ConfirmationRepository
	log              *logger.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, familyRepo *repository.FamilyRepository, confirmationRepo *repository.ConfirmationRepository, log *logger.Logger) *BackupService {
	return &BackupService{
		db:               db,
		familyRepo:       familyRepo,
		confirmationRepo: confirmationRepo,
		log:              log,
	}
}

// Export writes every family, member and confirmation to w as indented JSON
func (s *BackupService) Export(ctx context.Context, w io.Writer) (*BackupData, error) {
	s.log.Info("Starting database export")

	backup := &BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.DriverName(),
	}

	var err error
	if backup.Families, err = s.familyRepo.ListFamilies(ctx); err != nil {
		return nil, fmt.Errorf("failed to export families: %w", err)
	}
	if backup.Members, err = s.familyRepo.ListMembers(ctx); err != nil {
		return nil, fmt.Errorf("failed to export members: %w", err)
	}
	if backup.Confirmations, err = s.confirmationRepo.ListConfirmations(ctx); err != nil {
		return nil, fmt.Errorf("failed to export confirmations: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	s.log.Info("Database exported",
		"families", len(backup.Families),
		"members", len(backup.Members),
		"confirmations", len(backup.Confirmations))
	return backup, nil
}

// Import restores a backup read from r in a single transaction. Row IDs are
// kept. With clear set, existing guest data is removed first.
func (s *BackupService) Import(ctx context.Context, r io.Reader, clear bool) (*BackupData, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}

	s.log.Info("Starting database import", "version", backup.Version, "exported_at", backup.ExportedAt, "clear", clear)

	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		if clear {
			for _, table := range []string{"member_confirmations", "family_members", "guest_families"} {
				if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
					return fmt.Errorf("failed to clear %s: %w", table, err)
				}
			}
		}

		if err := importFamilies(ctx, tx, backup.Families); err != nil {
			return fmt.Errorf("failed to import families: %w", err)
		}
		if err := importMembers(ctx, tx, backup.Members); err != nil {
			return fmt.Errorf("failed to import members: %w", err)
		}
		if err := importConfirmations(ctx, tx, backup.Confirmations); err != nil {
			return fmt.Errorf("failed to import confirmations: %w", err)
		}

		if _, ok := tx.GetDialect().(*database.PostgresDialect); ok {
			return resetSequences(ctx, tx)
		}
		return nil
	})
	err = keepCommitted(s.log, err)
	if err != nil {
		return nil, err
	}

	s.log.Info("Database import completed",
		"families", len(backup.Families),
		"members", len(backup.Members),
		"confirmations", len(backup.Confirmations))
	return &backup, nil
}

func importFamilies(ctx context.Context, tx *database.Tx, families []models.GuestFamily) error {
	query := "INSERT INTO guest_families (id, family_name, access_code, phone, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	for _, f := range families {
		if _, err := tx.ExecContext(ctx, query, f.ID, f.FamilyName, f.AccessCode, f.Phone, f.Notes, f.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("family %d: %w", f.ID, err)
		}
	}
	return nil
}

func importMembers(ctx context.Context, tx *database.Tx, members []models.FamilyMember) error {
	query := "INSERT INTO family_members (id, family_id, name, relationship, created_at) VALUES (?, ?, ?, ?, ?)"
	for _, m := range members {
		if _, err := tx.ExecContext(ctx, query, m.ID, m.FamilyID, m.Name, m.Relationship, m.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("member %d: %w", m.ID, err)
		}
	}
	return nil
}

func importConfirmations(ctx context.Context, tx *database.Tx, confirmations []models.MemberConfirmation) error {
	query := `
		INSERT INTO member_confirmations
			(id, member_id, attending, dietary_restrictions, message, confirmed_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for _, c := range confirmations {
		if _, err := tx.ExecContext(ctx, query, c.ID, c.MemberID, c.Attending, c.DietaryRestrictions, c.Message, c.ConfirmedAt.UTC(), c.UpdatedAt.UTC()); err != nil {
			return fmt.Errorf("confirmation %d: %w", c.ID, err)
		}
	}
	return nil
}

// resetSequences moves postgres serial sequences past the imported IDs
func resetSequences(ctx context.Context, tx *database.Tx) error {
	for _, table := range []string{"guest_families", "family_members", "member_confirmations"} {
		query := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)",
			table,
		)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}
	return nil
}
