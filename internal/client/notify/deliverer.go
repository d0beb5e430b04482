package notify

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bereal/internal/client/models"
	"github.com/dmitrijs2005/bereal/internal/logging"
)

// Deliverer moves due reminders to delivered and hands each one to the UI
// goroutine through post.
type Deliverer struct {
	center    *Center
	interval  time.Duration
	post      func(func())
	onDeliver func(models.Notification)
	log       logging.Logger
	now       func() time.Time
}

func NewDeliverer(center *Center, interval time.Duration, post func(func()), onDeliver func(models.Notification), log logging.Logger) *Deliverer {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Deliverer{
		center:    center,
		interval:  interval,
		post:      post,
		onDeliver: onDeliver,
		log:       log,
		now:       time.Now,
	}
}

// Run polls until ctx is cancelled.
func (d *Deliverer) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		if err := d.Poll(ctx); err != nil && ctx.Err() == nil {
			d.log.Warn(ctx, "notification poll failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Poll delivers everything due now.
func (d *Deliverer) Poll(ctx context.Context) error {
	delivered, err := d.center.Deliver(ctx, d.now())
	for _, n := range delivered {
		d.log.Debug(ctx, "reminder delivered", "id", n.ID)
		d.post(func() { d.onDeliver(n) })
	}
	return err
}
