package pg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{Code: sqlstateUniqueViolation, ConstraintName: "regions_code_ci_key"}
	if !isUniqueViolation(err) {
		t.Fatal("expected unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert region: %w", err)) {
		t.Fatal("expected unique violation through wrapping")
	}
	if isUniqueViolation(&pgconn.PgError{Code: sqlstateFKViolation}) {
		t.Fatal("fk violation is not unique violation")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Fatal("plain error is not unique violation")
	}
	if isUniqueViolation(nil) {
		t.Fatal("nil is not unique violation")
	}
}

func TestIsFKViolation(t *testing.T) {
	err := &pgconn.PgError{Code: sqlstateFKViolation, ConstraintName: "provinces_region_id_fkey"}
	if !isFKViolation(err) {
		t.Fatal("expected fk violation")
	}
	if isFKViolation(&pgconn.PgError{Code: sqlstateUniqueViolation}) {
		t.Fatal("unique violation is not fk violation")
	}
}
