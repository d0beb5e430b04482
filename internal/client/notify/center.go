package notify

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bereal/internal/client/models"
	"github.com/dmitrijs2005/bereal/internal/client/repositories/notifications"
	"github.com/dmitrijs2005/bereal/internal/dbx"
)

var ErrNotDelivered = errors.New("notification has not been delivered")

// Center stores reminder requests in the local database.
type Center struct {
	db   *sql.DB
	repo *notifications.SQLiteRepository
}

func NewCenter(db *sql.DB) *Center {
	return &Center{db: db, repo: notifications.NewSQLiteRepository(db)}
}

// Replace removes every pending request with n's identifier and adds n, in
// one transaction.
func (c *Center) Replace(ctx context.Context, n models.Notification) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := c.repo.WithDB(tx)
		if _, err := repo.CancelPending(ctx, n.Identifier); err != nil {
			return err
		}
		return repo.Add(ctx, n)
	})
}

// Cancel removes pending requests with identifier.
func (c *Center) Cancel(ctx context.Context, identifier string) error {
	_, err := c.repo.CancelPending(ctx, identifier)
	return err
}

func (c *Center) Pending(ctx context.Context) ([]models.Notification, error) {
	return c.repo.ListPending(ctx)
}

// Deliver marks requests due at now as delivered and returns them.
func (c *Center) Deliver(ctx context.Context, now time.Time) ([]models.Notification, error) {
	due, err := c.repo.Due(ctx, now)
	if err != nil {
		return nil, err
	}

	var delivered []models.Notification
	for _, n := range due {
		ok, err := c.repo.Transition(ctx, n.ID, models.NotificationPending, models.NotificationDelivered)
		if err != nil {
			return delivered, err
		}
		if !ok {
			continue
		}
		n.State = models.NotificationDelivered
		delivered = append(delivered, n)
	}
	return delivered, nil
}

// Open marks a delivered request as opened and returns it.
func (c *Center) Open(ctx context.Context, id string) (models.Notification, error) {
	n, err := c.repo.Get(ctx, id)
	if err != nil {
		return models.Notification{}, err
	}

	ok, err := c.repo.Transition(ctx, id, models.NotificationDelivered, models.NotificationOpened)
	if err != nil {
		return models.Notification{}, err
	}
	if !ok {
		return models.Notification{}, fmt.Errorf("%w: %s is %s", ErrNotDelivered, id, n.State)
	}
	n.State = models.NotificationOpened
	return n, nil
}

// LastDelivered returns the most recent delivered, unopened request.
func (c *Center) LastDelivered(ctx context.Context) (models.Notification, error) {
	return c.repo.LastDelivered(ctx)
}
