package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/reel/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
	errMissing   = errors.New("missing parent")
)

func TestErrorMap(t *testing.T) {
	m := repository.ErrorMap{
		NotFound:   errNotFound,
		Duplicate:  errDuplicate,
		ForeignKey: errMissing,
	}
	other := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"wrapped no rows", fmt.Errorf("find: %w", sql.ErrNoRows), errNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, errMissing},
		{"check violation unmapped", &pgconn.PgError{Code: "23514"}, nil},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Map(tt.in)
			if tt.name == "check violation unmapped" {
				var pgErr *pgconn.PgError
				if !errors.As(got, &pgErr) {
					t.Errorf("Map() = %v, want the original pg error", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestErrorMapNilFieldsPassThrough(t *testing.T) {
	var m repository.ErrorMap
	if got := m.Map(sql.ErrNoRows); !errors.Is(got, sql.ErrNoRows) {
		t.Errorf("Map() = %v, want sql.ErrNoRows", got)
	}
}
