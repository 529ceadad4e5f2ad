package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lukabartula/blog-website-api/internal/models"
)

const userColumns = `id, first_name, last_name, email, password_hash, role, created_at`

// Store is a UserStore over any sqlx connection. Queries are written with
// "?" placeholders and rebound for the driver, so the same SQL serves pgx
// and sqlite3.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ? ORDER BY created_at, id LIMIT 1`, email)
}

func (s *Store) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User

	err := s.db.GetContext(ctx, &u, s.db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &u, nil
}

func (s *Store) Insert(ctx context.Context, u *models.User) error {
	u.ID = uuid.NewString()
	u.CreatedAt = s.now()

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO users (id, first_name, last_name, email, password_hash, role, created_at)
		VALUES (:id, :first_name, :last_name, :email, :password_hash, :role, :created_at)
	`, u)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (s *Store) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	err := s.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

func (s *Store) ListPage(ctx context.Context, offset, limit int) ([]models.User, error) {
	users := []models.User{}

	query := s.db.Rebind(`SELECT ` + userColumns + ` FROM users ORDER BY created_at, id LIMIT ? OFFSET ?`)
	if err := s.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64

	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (s *Store) Replace(ctx context.Context, id string, u *models.User) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE users
		SET first_name = ?, last_name = ?, email = ?, password_hash = ?, role = ?
		WHERE id = ?
	`), u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Role, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return affectedOne(res)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return affectedOne(res)
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
