package entity

import (
	"testing"
	"time"
)

func TestNewUser(t *testing.T) {
	before := time.Now().UTC()
	u := NewUser("Ana", "ana@x.com", "555-1")
	after := time.Now().UTC()

	if u.ID != "" {
		t.Errorf("expected empty ID before persistence, got %q", u.ID)
	}
	if u.Name != "Ana" || u.Email != "ana@x.com" || u.Phone != "555-1" {
		t.Errorf("unexpected fields: %+v", u)
	}
	if u.Status != StatusActive {
		t.Errorf("expected status %q, got %q", StatusActive, u.Status)
	}
	if !u.CreatedAt.Equal(u.UpdatedAt) {
		t.Errorf("expected created_at == updated_at, got %v and %v", u.CreatedAt, u.UpdatedAt)
	}
	if u.CreatedAt.Before(before) || u.CreatedAt.After(after) {
		t.Errorf("created_at %v outside [%v, %v]", u.CreatedAt, before, after)
	}
}

func TestNewUserEmptyPhone(t *testing.T) {
	u := NewUser("Ana", "ana@x.com", "")
	if u.Phone != "" {
		t.Errorf("expected empty phone, got %q", u.Phone)
	}
	if u.Status != StatusActive {
		t.Errorf("expected status %q, got %q", StatusActive, u.Status)
	}
}
