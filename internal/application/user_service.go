package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/correo/user-service/internal/domain/entity"
	repo "github.com/correo/user-service/internal/domain/repository"
	"github.com/correo/user-service/pkg/events"
	"github.com/correo/user-service/pkg/helpers"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

// Service enforces the cross-record invariants a single row cannot:
// email uniqueness across creates and updates, existence before mutation.
// Everything else is delegated to the repository port.
//
// Events and Logger are optional; a nil value disables that side effect.
type Service struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
	Events *helpers.RabbitPublisher
}

func NewService(repo repo.UserRepository, logger *logrus.Logger, events *helpers.RabbitPublisher) *Service {
	return &Service{Repo: repo, Logger: logger, Events: events}
}

// CreateUser persists a new user after checking that no stored user owns the
// candidate's email. The check-then-insert sequence is racy across concurrent
// callers; the unique index on users.email is the authoritative guard, and a
// losing racer sees the storage error rather than ErrEmailAlreadyRegistered.
func (s *Service) CreateUser(ctx context.Context, u *entity.User) (*entity.User, error) {
	taken, err := s.Repo.ExistsByEmail(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailAlreadyRegistered
	}

	saved, err := s.Repo.Save(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.logOp("user created", saved)
	s.publish(ctx, events.UserCreated, saved)
	return saved, nil
}

// UpdateUser replaces the full mutable field set of an existing user with
// the caller-supplied values. Omitted fields are written as empty; this is a
// full-replace contract, not a patch. Identifier, status and creation
// timestamp are preserved from the stored user, the update timestamp is
// refreshed.
func (s *Service) UpdateUser(ctx context.Context, u *entity.User) (*entity.User, error) {
	ok, err := s.Repo.ExistsByID(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("check id: %w", err)
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	// Another user may already own the new email; owning it ourselves is fine.
	owner, err := s.Repo.FindByEmail(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	}
	if owner != nil && owner.ID != u.ID {
		return nil, ErrEmailAlreadyRegistered
	}

	stored, err := s.Repo.FindByID(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("find by id: %w", err)
	}
	if stored == nil {
		return nil, ErrUserNotFound
	}

	replacement := &entity.User{
		ID:        stored.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Status:    stored.Status,
		CreatedAt: stored.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	saved, err := s.Repo.Save(ctx, replacement)
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.logOp("user updated", saved)
	s.publish(ctx, events.UserUpdated, saved)
	return saved, nil
}

// GetUserByID returns (nil, nil) when the id is unknown.
func (s *Service) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find by id: %w", err)
	}
	return u, nil
}

func (s *Service) GetAllUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}
	return users, nil
}

// DeleteUser removes the user, failing with ErrUserNotFound when the id does
// not exist. A concurrent delete therefore surfaces as ErrUserNotFound on the
// second caller, not as a silent success.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	ok, err := s.Repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check id: %w", err)
	}
	if !ok {
		return ErrUserNotFound
	}
	if err := s.Repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if s.Logger != nil {
		s.Logger.WithField("user_id", id).Info("user deleted")
	}
	s.publish(ctx, events.UserDeleted, &entity.User{ID: id})
	return nil
}

func (s *Service) logOp(msg string, u *entity.User) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info(msg)
}

// publish sends a lifecycle event; delivery is best effort and never fails
// the operation.
func (s *Service) publish(ctx context.Context, eventType string, u *entity.User) {
	if s.Events == nil {
		return
	}
	ev := events.UserEvent{
		Type:       eventType,
		UserID:     u.ID,
		Email:      u.Email,
		Name:       u.Name,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Events.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("type", eventType).Warn("publish user event failed")
	}
}
