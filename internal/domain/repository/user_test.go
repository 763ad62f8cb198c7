package repository

import (
	"testing"
	"time"
)

func TestApplyPasswordDefaults_Unset(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	u := &User{Email: "admin@example.com"}
	u.ApplyPasswordDefaults(now)

	if u.LastPasswordChange == nil || !u.LastPasswordChange.Equal(now) {
		t.Fatalf("expected lastPasswordChange=now, got %v", u.LastPasswordChange)
	}
	want := now.AddDate(0, 3, 0)
	if u.PasswordExpiresAt == nil || !u.PasswordExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, u.PasswordExpiresAt)
	}
}

func TestApplyPasswordDefaults_KeepsProvidedChange(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	changed := now.AddDate(0, -1, 0)
	u := &User{LastPasswordChange: &changed}
	u.ApplyPasswordDefaults(now)

	if !u.LastPasswordChange.Equal(changed) {
		t.Fatalf("lastPasswordChange overwritten: %v", u.LastPasswordChange)
	}
	want := changed.AddDate(0, 3, 0)
	if u.PasswordExpiresAt == nil || !u.PasswordExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, u.PasswordExpiresAt)
	}
}

func TestApplyPasswordDefaults_DoesNotTouchExisting(t *testing.T) {
	now := time.Now()
	changed := now.AddDate(0, -2, 0)
	exp := changed.AddDate(0, 3, 0)
	u := &User{LastPasswordChange: &changed, PasswordExpiresAt: &exp}
	u.ApplyPasswordDefaults(now)

	if !u.PasswordExpiresAt.Equal(exp) {
		t.Fatalf("expiry overwritten: %v", u.PasswordExpiresAt)
	}
}
