package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/correo/user-service/internal/domain/entity"
	"github.com/correo/user-service/internal/infrastructure/memory"
)

func newTestService() (*Service, *memory.UserRepository) {
	repo := memory.NewUserRepository()
	return NewService(repo, nil, nil), repo
}

func mustCreate(t *testing.T, s *Service, name, email, phone string) *entity.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), entity.NewUser(name, email, phone))
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func TestService_CreateAndGetUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created := mustCreate(t, svc, "Ana", "ana@x.com", "555-1")
	if created.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if created.Status != entity.StatusActive {
		t.Fatalf("expected status %q, got %q", entity.StatusActive, created.Status)
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("expected equal timestamps on create")
	}

	loaded, err := svc.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if loaded == nil {
		t.Fatalf("expected user, got nil")
	}
	if *loaded != *created {
		t.Fatalf("round trip mismatch: created %+v, loaded %+v", created, loaded)
	}
}

func TestService_CreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	mustCreate(t, svc, "Ana", "ana@x.com", "555-1")

	_, err := svc.CreateUser(ctx, entity.NewUser("Other", "ana@x.com", "555-2"))
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}

	all, err := svc.GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("get all users: %v", err)
	}
	count := 0
	for _, u := range all {
		if u.Email == "ana@x.com" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one user with the email, got %d", count)
	}
}

func TestService_GetUserByIDAbsent(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.GetUserByID(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("expected no error for absent id, got %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}

func TestService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created := mustCreate(t, svc, "Ana", "ana@x.com", "555-1")
	time.Sleep(5 * time.Millisecond)

	updated, err := svc.UpdateUser(ctx, &entity.User{
		ID:    created.ID,
		Name:  "Ana M.",
		Email: "ana@x.com",
		Phone: "555-2",
	})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("id changed on update: %s -> %s", created.ID, updated.ID)
	}
	if updated.Name != "Ana M." || updated.Phone != "555-2" {
		t.Fatalf("fields not replaced: %+v", updated)
	}
	if updated.Status != entity.StatusActive {
		t.Fatalf("status not preserved: %q", updated.Status)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at not preserved: %v vs %v", updated.CreatedAt, created.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updated_at not refreshed: %v vs %v", updated.UpdatedAt, created.UpdatedAt)
	}
}

func TestService_UpdateUserFullReplace(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created := mustCreate(t, svc, "Ana", "ana@x.com", "555-1")

	// Omitted phone is written as empty; the contract is a full replace.
	updated, err := svc.UpdateUser(ctx, &entity.User{
		ID:    created.ID,
		Name:  "Ana",
		Email: "ana@x.com",
	})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Phone != "" {
		t.Fatalf("expected phone blanked by full replace, got %q", updated.Phone)
	}
}

func TestService_UpdateUserNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	mustCreate(t, svc, "Ana", "ana@x.com", "555-1")

	_, err := svc.UpdateUser(ctx, &entity.User{ID: "no-such-id", Name: "X", Email: "x@x.com"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	all, err := svc.GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("get all users: %v", err)
	}
	if len(all) != 1 || all[0].Name != "Ana" {
		t.Fatalf("storage changed by failed update: %+v", all)
	}
}

func TestService_UpdateUserEmailConflict(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	ana := mustCreate(t, svc, "Ana", "ana@x.com", "555-1")
	mustCreate(t, svc, "Luis", "luis@x.com", "555-2")

	// Taking another user's email fails.
	_, err := svc.UpdateUser(ctx, &entity.User{ID: ana.ID, Name: "Ana", Email: "luis@x.com"})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}

	// Keeping our own email succeeds.
	if _, err := svc.UpdateUser(ctx, &entity.User{ID: ana.ID, Name: "Ana M.", Email: "ana@x.com"}); err != nil {
		t.Fatalf("update with own email: %v", err)
	}
}

func TestService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created := mustCreate(t, svc, "Ana", "ana@x.com", "555-1")

	if err := svc.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	u, err := svc.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if u != nil {
		t.Fatalf("expected user gone, got %+v", u)
	}

	// Second delete of the same id is observable as not found.
	if err := svc.DeleteUser(ctx, created.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestService_Scenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created := mustCreate(t, svc, "Ana", "ana@x.com", "555-1")
	time.Sleep(5 * time.Millisecond)

	updated, err := svc.UpdateUser(ctx, &entity.User{
		ID:    created.ID,
		Name:  "Ana M.",
		Email: "ana@x.com",
		Phone: "555-2",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Ana M." || updated.Phone != "555-2" {
		t.Fatalf("unexpected updated user: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) || !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("timestamp contract violated: %+v", updated)
	}

	if err := svc.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	u, err := svc.GetUserByID(ctx, created.ID)
	if err != nil || u != nil {
		t.Fatalf("expected empty lookup after delete, got %+v, %v", u, err)
	}
}
