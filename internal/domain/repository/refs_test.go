package repository

import (
	"errors"
	"testing"
)

func TestNewRegionRef(t *testing.T) {
	ref, err := NewRegionRef(7)
	if err != nil || ref.ID != 7 || !ref.Valid() {
		t.Fatalf("expected valid ref, got %+v err=%v", ref, err)
	}
	for _, id := range []int64{0, -3} {
		if _, err := NewRegionRef(id); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("id=%d: expected ErrInvalidInput, got %v", id, err)
		}
	}
}

func TestConflictErrorIs(t *testing.T) {
	var err error = &ConflictError{Field: "code", Value: "SE"}
	if !errors.Is(err, ErrConflict) {
		t.Fatal("ConflictError should match ErrConflict")
	}
	if !IsConflict(err) {
		t.Fatal("IsConflict should be true")
	}
}
