package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"weddingrsvp/internal/database"
	"weddingrsvp/internal/models"
)

// AdminRepository handles the admin credential store
type AdminRepository struct {
	db database.DBTX
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db database.DBTX) *AdminRepository {
	return &AdminRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *AdminRepository) WithTx(tx *database.Tx) *AdminRepository {
	return &AdminRepository{db: tx}
}

// GetAdminByEmail retrieves an admin by email, or nil if none exists
func (r *AdminRepository) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	admin := &models.AdminUser{}
	query := "SELECT id, email, password_hash, created_at FROM admin_users WHERE email = ?"
	err := r.db.GetContext(ctx, admin, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return admin, nil
}

// UpsertAdmin creates the admin or replaces its password hash.
// It reports true when a new row was created.
func (r *AdminRepository) UpsertAdmin(ctx context.Context, email, passwordHash string, now time.Time) (bool, error) {
	existing, err := r.GetAdminByEmail(ctx, email)
	if err != nil {
		return false, err
	}

	if existing != nil {
		if _, err := r.db.ExecContext(ctx, "UPDATE admin_users SET password_hash = ? WHERE email = ?", passwordHash, email); err != nil {
			return false, fmt.Errorf("failed to update admin: %w", err)
		}
		return false, nil
	}

	query := "INSERT INTO admin_users (email, password_hash, created_at) VALUES (?, ?, ?)"
	if _, err := r.db.ExecReturningID(ctx, query, email, passwordHash, now); err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return true, nil
}
