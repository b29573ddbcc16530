package models

import "time"

// AdminUser is the single operator allowed into the dashboard
type AdminUser struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
