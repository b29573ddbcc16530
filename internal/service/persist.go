package service

import (
	"errors"

	"weddingrsvp/internal/database"
	"weddingrsvp/internal/logger"
)

// keepCommitted turns a snapshot failure after commit into a logged error.
// The write already happened, so reporting failure would invite a retry that
// duplicates it.
func keepCommitted(log *logger.Logger, err error) error {
	if errors.Is(err, database.ErrNotPersisted) {
		log.Error("Change committed but the database file was not updated", "error", err)
		return nil
	}
	return err
}
