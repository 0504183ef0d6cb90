package repository

import (
	"context"
	"time"

	"transfer-portal/internal/domain/user"
	"transfer-portal/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `
	id, email, password_hash, role, company_id, last_login, is_active, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id                   uuid.UUID
		email, passwordHash  string
		role                 string
		companyID            *uuid.UUID
		lastLogin            *time.Time
		isActive             bool
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &email, &passwordHash, &role, &companyID, &lastLogin, &isActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan user", err)
	}
	return user.ReconstructUser(id, email, passwordHash, user.Role(role), companyID, lastLogin, isActive, createdAt, updatedAt), nil
}
