package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrAdminExists = errors.New("admin already exists")

// Admin may change the stored cover list.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	TokenVersion int
	CreatedAt    time.Time
}

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// CreateAdmin hashes password and stores a new admin.
func (r *Repo) CreateAdmin(ctx context.Context, username, password string) (*Admin, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 30 {
		return nil, fmt.Errorf("username must be 3-30 chars")
	}
	if len(password) < 8 || len(password) > 72 {
		return nil, fmt.Errorf("password must be 8-72 chars")
	}

	if existing, err := r.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrAdminExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := Admin{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := r.DB.ExecContext(ctx, `
		INSERT INTO admins (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, a.ID, a.Username, a.PasswordHash, a.CreatedAt); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return &a, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, token_version, created_at
		FROM admins
		WHERE username = ?
	`, strings.TrimSpace(username))
	return scanAdmin(row, "get by username")
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Admin, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, token_version, created_at
		FROM admins
		WHERE id = ?
	`, id)
	return scanAdmin(row, "get by id")
}

func scanAdmin(row *sql.Row, op string) (*Admin, error) {
	var a Admin
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.TokenVersion, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

// GetTokenVersion returns -1 for an unknown admin so no token matches it.
func (r *Repo) GetTokenVersion(ctx context.Context, id string) (int, error) {
	var version int
	err := r.DB.QueryRowContext(ctx, `SELECT token_version FROM admins WHERE id = ?`, id).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return -1, nil
		}
		return 0, fmt.Errorf("get token version: %w", err)
	}
	return version, nil
}

func (r *Repo) BumpTokenVersion(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE admins
		SET token_version = token_version + 1
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("bump token version: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("bump token version rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bump token version: admin not found")
	}
	return nil
}
