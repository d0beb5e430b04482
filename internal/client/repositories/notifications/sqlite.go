package notifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bereal/internal/client/models"
	"github.com/dmitrijs2005/bereal/internal/common"
	"github.com/dmitrijs2005/bereal/internal/dbx"
)

const selectColumns = `SELECT id, identifier, title, body, fire_at, state, created_at FROM notifications`

// SQLiteRepository implements notification storage over a DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// WithDB returns a repository bound to db, typically a transaction.
func (r *SQLiteRepository) WithDB(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Add inserts a new request. An empty state is stored as pending.
func (r *SQLiteRepository) Add(ctx context.Context, n models.Notification) error {
	if n.State == "" {
		n.State = models.NotificationPending
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, identifier, title, body, fire_at, state, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Identifier, n.Title, n.Body, n.FireAt.UnixMilli(), string(n.State), n.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to add notification: %w", err)
	}
	return nil
}

// CancelPending removes every pending request with the given identifier and
// reports how many were removed.
func (r *SQLiteRepository) CancelPending(ctx context.Context, identifier string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE identifier = ? AND state = ?`,
		identifier, string(models.NotificationPending))
	if err != nil {
		return 0, fmt.Errorf("failed to cancel notifications: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// ListPending returns pending requests ordered by fire time.
func (r *SQLiteRepository) ListPending(ctx context.Context) ([]models.Notification, error) {
	return r.query(ctx, selectColumns+` WHERE state = ? ORDER BY fire_at`, string(models.NotificationPending))
}

// Due returns pending requests whose fire time is not after now.
func (r *SQLiteRepository) Due(ctx context.Context, now time.Time) ([]models.Notification, error) {
	return r.query(ctx, selectColumns+` WHERE state = ? AND fire_at <= ? ORDER BY fire_at`,
		string(models.NotificationPending), now.UnixMilli())
}

// LastDelivered returns the most recently fired delivered request, or
// common.ErrorNotFound.
func (r *SQLiteRepository) LastDelivered(ctx context.Context) (models.Notification, error) {
	items, err := r.query(ctx, selectColumns+` WHERE state = ? ORDER BY fire_at DESC LIMIT 1`,
		string(models.NotificationDelivered))
	if err != nil {
		return models.Notification{}, err
	}
	if len(items) == 0 {
		return models.Notification{}, common.ErrorNotFound
	}
	return items[0], nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (models.Notification, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	n, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Notification{}, common.ErrorNotFound
	}
	if err != nil {
		return models.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

// Transition moves a request from one state to another. It reports false
// when the request is absent or not in the from state.
func (r *SQLiteRepository) Transition(ctx context.Context, id string, from, to models.NotificationState) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET state = ? WHERE id = ? AND state = ?`,
		string(to), id, string(from))
	if err != nil {
		return false, fmt.Errorf("failed to update notification state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n == 1, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (models.Notification, error) {
	var (
		n                 models.Notification
		state             string
		fireAt, createdAt int64
	)
	if err := s.Scan(&n.ID, &n.Identifier, &n.Title, &n.Body, &fireAt, &state, &createdAt); err != nil {
		return models.Notification{}, err
	}
	n.State = models.NotificationState(state)
	n.FireAt = time.UnixMilli(fireAt)
	n.CreatedAt = time.UnixMilli(createdAt)
	return n, nil
}

func (r *SQLiteRepository) query(ctx context.Context, q string, args ...any) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notifications: %w", err)
	}
	defer rows.Close()

	var result []models.Notification
	for rows.Next() {
		n, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
