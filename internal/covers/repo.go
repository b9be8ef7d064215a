package covers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"coverhub/pkg/cover"
	"coverhub/pkg/models"
)

var (
	ErrDuplicate = errors.New("cover url already exists")
	ErrEmptyURL  = errors.New("cover url is empty")
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) List(ctx context.Context) ([]models.Cover, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, url, position, created_at
		FROM covers
		ORDER BY position ASC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Cover, 0)
	for rows.Next() {
		var c models.Cover
		if err := rows.Scan(&c.ID, &c.URL, &c.Position, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// URLs returns the stored list in order, ready for a cover.Selector.
func (r *Repo) URLs(ctx context.Context) (cover.List, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(cover.List, 0, len(items))
	for _, c := range items {
		out = append(out, c.URL)
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM covers`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Cover, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, url, position, created_at
		FROM covers
		WHERE id = ?
	`, id)

	var c models.Cover
	if err := row.Scan(&c.ID, &c.URL, &c.Position, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return &c, nil
}

// Add appends url at the end of the list.
func (r *Repo) Add(ctx context.Context, url string) (*models.Cover, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrEmptyURL
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin add: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM covers`).Scan(&next); err != nil {
		return nil, fmt.Errorf("next position: %w", err)
	}

	c := models.Cover{
		ID:        uuid.NewString(),
		URL:       url,
		Position:  next,
		CreatedAt: time.Now().UTC(),
	}
	if err := insert(ctx, tx, c); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit add: %w", err)
	}
	return &c, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM covers WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete cover: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete cover rows: %w", err)
	}
	return affected > 0, nil
}

// Replace swaps the whole stored list for list in one transaction. Blank
// entries are skipped and only the first occurrence of a url is kept.
// It returns the number of stored covers.
func (r *Repo) Replace(ctx context.Context, list cover.List) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM covers`); err != nil {
		return 0, fmt.Errorf("clear covers: %w", err)
	}

	seen := make(map[string]struct{}, len(list))
	now := time.Now().UTC()
	pos := 0
	for _, url := range list {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}

		c := models.Cover{ID: uuid.NewString(), URL: url, Position: pos, CreatedAt: now}
		if err := insert(ctx, tx, c); err != nil {
			return 0, err
		}
		pos++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace: %w", err)
	}
	return pos, nil
}

func insert(ctx context.Context, tx *sql.Tx, c models.Cover) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO covers (id, url, position, created_at)
		VALUES (?, ?, ?, ?)
	`, c.ID, c.URL, c.Position, c.CreatedAt)
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrDuplicate
		}
		return fmt.Errorf("insert cover: %w", err)
	}
	return nil
}
