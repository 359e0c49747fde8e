package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"reconnect-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	role := user.Role
	if role == "" {
		role = models.RoleMember
	}
	query := `
		INSERT INTO users (email, password_hash, full_name, role, is_verified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, role, is_active, created_at
	`
	return r.pool.QueryRow(ctx, query, user.Email, user.PasswordHash, user.FullName, role, user.IsVerified).Scan(
		&user.ID,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
	)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, is_verified, is_active, created_at, last_login_at
		FROM users WHERE email = $1
	`
	var u models.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role,
		&u.IsVerified, &u.IsActive, &u.CreatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, is_verified, is_active, created_at, last_login_at
		FROM users WHERE id = $1
	`
	var u models.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role,
		&u.IsVerified, &u.IsActive, &u.CreatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) VerifyEmail(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE users SET is_verified = TRUE WHERE id = $1", userID)
	return err
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE users SET last_login_at = NOW() WHERE id = $1", userID)
	return err
}

// ListAll returns every non-admin user, newest first. Admin-only path.
func (r *UserRepo) ListAll(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, is_verified, is_active, created_at, last_login_at
		FROM users
		WHERE role <> 'admin'
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role,
			&u.IsVerified, &u.IsActive, &u.CreatedAt, &u.LastLoginAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
