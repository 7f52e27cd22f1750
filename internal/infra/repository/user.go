package repository

import (
	"context"

	"tablebook/internal/domain/staff"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByEmail loads an account for login, returning the stored password hash
// alongside so the credential check stays in the usecase.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*staff.User, string, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, is_active, last_login, created_at
		FROM users
		WHERE email = $1`,
		email,
	)
	user, hash, err := scanUser(row)
	if err != nil {
		return nil, "", wrapPg("failed to find user by email", err)
	}
	if err := r.loadRestaurantIDs(ctx, user); err != nil {
		return nil, "", err
	}
	return user, hash, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*staff.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, is_active, last_login, created_at
		FROM users
		WHERE id = $1`,
		id,
	)
	user, _, err := scanUser(row)
	if err != nil {
		return nil, wrapPg("failed to find user", err)
	}
	if err := r.loadRestaurantIDs(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET last_login = NOW()
		WHERE id = $1`,
		id,
	)
	if err != nil {
		return wrapPg("failed to update last login", err)
	}
	return nil
}

func (r *UserRepository) loadRestaurantIDs(ctx context.Context, user *staff.User) error {
	rows, err := r.pool.Query(ctx, `
		SELECT restaurant_id
		FROM user_restaurants
		WHERE user_id = $1`,
		user.ID,
	)
	if err != nil {
		return wrapPg("failed to load user restaurants", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return wrapPg("failed to scan user restaurant", err)
		}
		user.RestaurantIDs = append(user.RestaurantIDs, id)
	}
	if err := rows.Err(); err != nil {
		return wrapPg("failed to read user restaurants", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*staff.User, string, error) {
	var (
		user       staff.User
		email      string
		hash, role string
	)
	err := row.Scan(&user.ID, &email, &hash, &role, &user.IsActive, &user.LastLogin, &user.CreatedAt)
	if err != nil {
		return nil, "", err
	}

	user.Email, err = staff.NewEmail(email)
	if err != nil {
		return nil, "", errs.Wrap(err, "stored email is invalid")
	}
	user.Role, err = staff.NewRole(role)
	if err != nil {
		return nil, "", errs.Wrap(err, "stored role is invalid")
	}
	return &user, hash, nil
}
