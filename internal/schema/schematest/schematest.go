// Package schematest provisions migrated PostgreSQL databases for tests.
// Every Open creates its own database, so packages can run in parallel
// against one server. Tests skip when REEL_TEST_DB_DSN is unset.
package schematest

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/reel/internal/schema"
)

// EnvDSN names the connection string of a role allowed to create databases.
const EnvDSN = "REEL_TEST_DB_DSN"

// Open creates a database, applies the migrations and returns a pool on it.
// The database is dropped when t finishes.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s not set", EnvDSN)
	}

	base, err := pgx.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("parse %s: %v", EnvDSN, err)
	}

	admin := stdlib.OpenDB(*base)
	t.Cleanup(func() { admin.Close() })

	name := "reel_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.ExecContext(context.Background(), "CREATE DATABASE "+name); err != nil {
		t.Fatalf("create database: %v", err)
	}
	t.Cleanup(func() {
		if _, err := admin.ExecContext(context.Background(), "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			t.Logf("drop database %s: %v", name, err)
		}
	})

	cfg := base.Copy()
	cfg.Database = name

	if err := schema.Apply(stdlib.OpenDB(*cfg)); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db := stdlib.OpenDB(*cfg)
	t.Cleanup(func() { db.Close() })
	return db
}

// User inserts a user named username (lowercase) and returns its id.
func User(t testing.TB, db *sql.DB, username string) uuid.UUID {
	t.Helper()
	return insert(t, db,
		"INSERT INTO users (username, email, full_name, avatar, password_hash) VALUES ($1, $2, $3, $4, 'x') RETURNING id",
		username, username+"@example.com", username, "https://cdn.test/"+username+".png",
	)
}

// Video inserts a video owned by owner and returns its id.
func Video(t testing.TB, db *sql.DB, owner uuid.UUID, title string, published bool) uuid.UUID {
	t.Helper()
	return insert(t, db, `
		INSERT INTO videos (owner_id, title, description, video_file, thumbnail, is_published)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		owner, title, title+" description", "https://cdn.test/"+title+".mp4", "https://cdn.test/"+title+".jpg", published,
	)
}

// Comment inserts a comment by owner on video and returns its id.
func Comment(t testing.TB, db *sql.DB, video, owner uuid.UUID, content string) uuid.UUID {
	t.Helper()
	return insert(t, db,
		"INSERT INTO comments (video_id, owner_id, content) VALUES ($1, $2, $3) RETURNING id",
		video, owner, content,
	)
}

// Tweet inserts a tweet by owner and returns its id.
func Tweet(t testing.TB, db *sql.DB, owner uuid.UUID, content string) uuid.UUID {
	t.Helper()
	return insert(t, db,
		"INSERT INTO tweets (owner_id, content) VALUES ($1, $2) RETURNING id",
		owner, content,
	)
}

// Count runs a COUNT-style query and returns its single integer result.
func Count(t testing.TB, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func insert(t testing.TB, db *sql.DB, query string, args ...any) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	if err := db.QueryRowContext(context.Background(), query, args...).Scan(&id); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return id
}
