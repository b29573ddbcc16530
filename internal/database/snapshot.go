package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
)

// Persist writes the in-memory SQLite database to its snapshot file.
// The image is written to a temporary file and renamed over the old one.
// It is a no-op for server databases and for MemoryPath.
func (db *DB) Persist(ctx context.Context) error {
	if db.snapshotPath == "" {
		return nil
	}

	db.persistMu.Lock()
	defer db.persistMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(db.snapshotPath), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmpPath := db.snapshotPath + ".tmp"
	if err := os.Remove(tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale snapshot: %w", err)
	}

	if err := db.copyFile(ctx, tmpPath, true); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, db.snapshotPath); err != nil {
		return fmt.Errorf("failed to replace database file: %w", err)
	}
	return nil
}

// restoreSnapshot loads the snapshot file into memory if it exists
func (db *DB) restoreSnapshot(ctx context.Context) error {
	if _, err := os.Stat(db.snapshotPath); errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	return db.copyFile(ctx, db.snapshotPath, false)
}

// copyFile copies between the in-memory database and the file at path
// using SQLite's online backup API. toFile selects the direction.
func (db *DB) copyFile(ctx context.Context, path string, toFile bool) error {
	file, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	fileConn, err := file.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", path, err)
	}
	defer fileConn.Close()

	memConn, err := db.DB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire database connection: %w", err)
	}
	defer memConn.Close()

	if toFile {
		return backup(fileConn, memConn)
	}
	return backup(memConn, fileConn)
}

// backup overwrites dst's main database with src's
func backup(dst, src *sql.Conn) error {
	return dst.Raw(func(dstDriverConn any) error {
		return src.Raw(func(srcDriverConn any) error {
			dstConn, ok := dstDriverConn.(*sqlite3.SQLiteConn)
			if !ok {
				return fmt.Errorf("unexpected driver connection %T", dstDriverConn)
			}
			srcConn, ok := srcDriverConn.(*sqlite3.SQLiteConn)
			if !ok {
				return fmt.Errorf("unexpected driver connection %T", srcDriverConn)
			}

			bk, err := dstConn.Backup("main", srcConn, "main")
			if err != nil {
				return fmt.Errorf("failed to start backup: %w", err)
			}
			if _, err := bk.Step(-1); err != nil {
				bk.Finish()
				return fmt.Errorf("failed to copy pages: %w", err)
			}
			return bk.Finish()
		})
	})
}
