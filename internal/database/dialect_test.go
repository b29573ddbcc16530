package database

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "sqlite3" {
			t.Errorf("DriverName() = %v, want sqlite3", got)
		}
	})

	t.Run("DSN is always in memory", func(t *testing.T) {
		if got := dialect.DSN(DialectConfig{Path: "./data/app.db"}); got != MemoryPath {
			t.Errorf("DSN() = %v, want %v", got, MemoryPath)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		query := "SELECT * FROM guest_families WHERE id = ? AND access_code = ?"
		if got := rewriteQuery(dialect, query); got != query {
			t.Errorf("rewriteQuery() = %v, want unchanged", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "sqlite" {
			t.Errorf("MigrationsSubdir() = %v, want sqlite", got)
		}
	})

	t.Run("IsUniqueViolation", func(t *testing.T) {
		unique := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
		notNull := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}

		if !dialect.IsUniqueViolation(fmt.Errorf("insert family: %w", unique)) {
			t.Error("expected wrapped unique constraint error to be detected")
		}
		if dialect.IsUniqueViolation(notNull) {
			t.Error("NOT NULL violation must not count as unique violation")
		}
		if dialect.IsUniqueViolation(errors.New("UNIQUE constraint failed")) {
			t.Error("plain errors must not count as unique violation")
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "postgres" {
			t.Errorf("DriverName() = %v, want postgres", got)
		}
	})

	t.Run("RewriteQuery", func(t *testing.T) {
		got := rewriteQuery(dialect, "UPDATE guest_families SET family_name = ?, phone = ? WHERE id = ?")
		want := "UPDATE guest_families SET family_name = $1, phone = $2 WHERE id = $3"
		if got != want {
			t.Errorf("rewriteQuery() = %v, want %v", got, want)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("IsUniqueViolation", func(t *testing.T) {
		if !dialect.IsUniqueViolation(&pq.Error{Code: "23505"}) {
			t.Error("expected 23505 to be detected")
		}
		if dialect.IsUniqueViolation(&pq.Error{Code: "23502"}) {
			t.Error("23502 is a not-null violation")
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "mysql" {
			t.Errorf("DriverName() = %v, want mysql", got)
		}
	})

	t.Run("DSN forces parseTime and multiStatements", func(t *testing.T) {
		dsn := dialect.DSN(DialectConfig{URL: "rsvp:secret@tcp(localhost:3306)/wedding"})
		if !strings.Contains(dsn, "parseTime=true") {
			t.Errorf("DSN() = %v, missing parseTime", dsn)
		}
		if !strings.Contains(dsn, "multiStatements=true") {
			t.Errorf("DSN() = %v, missing multiStatements", dsn)
		}
	})

	t.Run("IsUniqueViolation", func(t *testing.T) {
		if !dialect.IsUniqueViolation(&mysql.MySQLError{Number: 1062}) {
			t.Error("expected 1062 to be detected")
		}
		if dialect.IsUniqueViolation(&mysql.MySQLError{Number: 1048}) {
			t.Error("1048 is a not-null violation")
		}
	})
}
