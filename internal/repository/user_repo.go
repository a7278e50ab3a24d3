package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulsebot/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (user_id, employee_id, full_name, ads_id, manager_id, manager_name, manager_email_hash, department, band, job_title, is_active, email_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.EmployeeID,
		user.FullName,
		user.AdsID,
		user.ManagerID,
		user.ManagerName,
		user.ManagerEmailHash,
		user.Department,
		user.Band,
		user.JobTitle,
		user.IsActive,
		user.EmailHash,
		user.CreatedAt,
	)
	return err
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
		SELECT user_id, employee_id, full_name, ads_id, manager_id, manager_name, manager_email_hash, department, band, job_title, is_active, email_hash, created_at
		FROM users
		WHERE user_id = $1
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.EmployeeID,
		&u.FullName,
		&u.AdsID,
		&u.ManagerID,
		&u.ManagerName,
		&u.ManagerEmailHash,
		&u.Department,
		&u.Band,
		&u.JobTitle,
		&u.IsActive,
		&u.EmailHash,
		&u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}
	return u, err
}
