package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/correo/user-service/internal/domain/entity"
	"github.com/correo/user-service/internal/domain/repository"
)

// UserRepository persists users in Postgres. Identifier generation lives
// here: Save assigns a random UUID on first insert. The unique index on
// users.email is the authoritative uniqueness guard; a violation comes back
// as a plain wrapped error, not as a domain condition.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = "id, name, email, phone, status, created_at, updated_at"

func (r *UserRepository) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	saved := *u
	if saved.ID == "" {
		saved.ID = uuid.NewString()
		_, err := r.pool.Exec(ctx, `
			INSERT INTO users (id, name, email, phone, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, saved.ID, saved.Name, saved.Email, saved.Phone, saved.Status, saved.CreatedAt, saved.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert user: %w", err)
		}
		return &saved, nil
	}

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, phone = $3, status = $4, updated_at = $5
		WHERE id = $6
	`, saved.Name, saved.Email, saved.Phone, saved.Status, saved.UpdatedAt, saved.ID)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.RowsAffected() == 0 {
		// The row vanished between the caller's existence check and this
		// write; reporting success would persist nothing.
		return nil, fmt.Errorf("update user %s: no stored row", saved.ID)
	}
	return &saved, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u := &entity.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by id: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	// Deleting an absent row is a no-op here; absence-as-error belongs to
	// the domain service.
	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
