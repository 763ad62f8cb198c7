package pg

import (
	"testing"

	"github.com/sdroman/ticketlogger/internal/domain/repository"
)

func TestSortMapResolve_Whitelisted(t *testing.T) {
	cases := map[string]string{
		"id":         "p.id",
		"code":       "p.code",
		"name":       "p.name",
		"regionName": "r.name",
	}
	for field, want := range cases {
		col, ok := provinceSort.resolve(field)
		if !ok || col != want {
			t.Fatalf("%s: expected %q ok=true, got %q ok=%v", field, want, col, ok)
		}
	}
}

func TestSortMapResolve_UnknownFallsBack(t *testing.T) {
	for _, field := range []string{"bogus", "", "region_id", "name; DROP TABLE provinces"} {
		col, ok := provinceSort.resolve(field)
		if ok {
			t.Fatalf("%q: expected fallback", field)
		}
		if col != "p.name" {
			t.Fatalf("%q: expected p.name, got %q", field, col)
		}
	}
}

func TestSortMapResolve_UserFallbackIsEmail(t *testing.T) {
	col, ok := userSort.resolve("passwordHash")
	if ok || col != "u.email" {
		t.Fatalf("expected u.email fallback, got %q ok=%v", col, ok)
	}
}

func TestSQLDir(t *testing.T) {
	if sqlDir(repository.SortDesc) != "DESC" {
		t.Fatal("desc expected")
	}
	if sqlDir(repository.SortAsc) != "ASC" {
		t.Fatal("asc expected")
	}
	// Direcciones no normalizadas nunca llegan aquí, pero el fallback es ASC.
	if sqlDir("whatever") != "ASC" {
		t.Fatal("fallback asc expected")
	}
}
