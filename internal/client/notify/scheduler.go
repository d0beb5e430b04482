package notify

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dmitrijs2005/bereal/internal/client/models"
	"github.com/dmitrijs2005/bereal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bereal/internal/common"
	"github.com/dmitrijs2005/bereal/internal/logging"
	"github.com/dmitrijs2005/bereal/internal/timex"
	"github.com/google/uuid"
)

const (
	Title = "⚡️ Time to BeReal!"
	Body  = "2 min left to capture a moment and share it with your friends!"

	// Reminders fire between FirstHour:00 and LastHour:59.
	FirstHour = 8
	LastHour  = 22
)

var ErrPermissionDenied = errors.New("notifications are not permitted")

type State int

const (
	StateUnrequested State = iota
	StatePermissionPending
	StateGranted
	StateDenied
)

func (s State) String() string {
	switch s {
	case StateUnrequested:
		return "unrequested"
	case StatePermissionPending:
		return "pending"
	case StateGranted:
		return "granted"
	case StateDenied:
		return "denied"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Persisted permission values.
const (
	permissionGranted = "granted"
	permissionDenied  = "denied"
)

// Authorizer asks the user whether reminders may be shown.
type Authorizer interface {
	RequestAuthorization(ctx context.Context) (bool, error)
}

// Rand picks the reminder time. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Scheduler keeps one pending daily reminder while permission is granted.
type Scheduler struct {
	center *Center
	meta   metadata.Repository
	auth   Authorizer
	rnd    Rand
	log    logging.Logger
	now    func() time.Time

	mu    sync.Mutex
	state State

	openCamera chan struct{}
}

// NewScheduler builds a scheduler. A nil rnd uses the global math/rand/v2 source.
func NewScheduler(center *Center, meta metadata.Repository, auth Authorizer, rnd Rand, log logging.Logger) *Scheduler {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Scheduler{
		center:     center,
		meta:       meta,
		auth:       auth,
		rnd:        rnd,
		log:        log,
		now:        time.Now,
		openCamera: make(chan struct{}, 1),
	}
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Start resolves the permission and, when granted, schedules the next
// reminder. A saved decision is reused; the user is asked only once.
func (s *Scheduler) Start(ctx context.Context) error {
	saved, ok, err := s.meta.Get(ctx, metadata.KeyNotificationPermission)
	if err != nil {
		return fmt.Errorf("read notification permission: %w", err)
	}

	if ok {
		switch saved {
		case permissionGranted:
			s.setState(StateGranted)
			_, err := s.ScheduleDaily(ctx, s.now())
			return err
		case permissionDenied:
			s.setState(StateDenied)
			s.log.Debug(ctx, "notifications denied, nothing scheduled")
			return nil
		}
	}

	s.setState(StatePermissionPending)
	granted, err := s.auth.RequestAuthorization(ctx)
	if err != nil {
		s.setState(StateUnrequested)
		return fmt.Errorf("request notification permission: %w", err)
	}

	return s.SetEnabled(ctx, granted)
}

// SetEnabled records the user's decision. Enabling schedules a reminder;
// disabling cancels the pending one.
func (s *Scheduler) SetEnabled(ctx context.Context, enabled bool) error {
	value := permissionDenied
	if enabled {
		value = permissionGranted
	}
	if err := s.meta.Set(ctx, metadata.KeyNotificationPermission, value); err != nil {
		return fmt.Errorf("save notification permission: %w", err)
	}

	if !enabled {
		s.setState(StateDenied)
		s.log.Info(ctx, "notifications disabled")
		return s.center.Cancel(ctx, common.DailyNotificationID)
	}

	s.setState(StateGranted)
	_, err := s.ScheduleDaily(ctx, s.now())
	return err
}

// NextFireTime picks a time on the local calendar day after now, hour in
// [FirstHour, LastHour] and minute in [0, 59].
func (s *Scheduler) NextFireTime(now time.Time) time.Time {
	day := timex.StartOfNextDay(now)
	hour := FirstHour + s.rnd.IntN(LastHour-FirstHour+1)
	minute := s.rnd.IntN(60)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// ScheduleDaily replaces any pending daily reminder with one for tomorrow.
func (s *Scheduler) ScheduleDaily(ctx context.Context, now time.Time) (models.Notification, error) {
	if s.State() != StateGranted {
		return models.Notification{}, ErrPermissionDenied
	}

	n := models.Notification{
		ID:         uuid.NewString(),
		Identifier: common.DailyNotificationID,
		Title:      Title,
		Body:       Body,
		FireAt:     s.NextFireTime(now),
		State:      models.NotificationPending,
		CreatedAt:  now,
	}

	if err := s.center.Replace(ctx, n); err != nil {
		return models.Notification{}, fmt.Errorf("schedule reminder: %w", err)
	}

	s.log.Info(ctx, "reminder scheduled", "fire_at", n.FireAt.Format(time.DateTime))
	return n, nil
}

// Delivered reacts to a delivered reminder by scheduling the next one.
func (s *Scheduler) Delivered(ctx context.Context, n models.Notification) error {
	if n.Identifier != common.DailyNotificationID || s.State() != StateGranted {
		return nil
	}
	_, err := s.ScheduleDaily(ctx, s.now())
	return err
}

// Open handles a tap on a delivered reminder. Tapping the daily reminder
// raises the open-camera signal.
func (s *Scheduler) Open(ctx context.Context, id string) (models.Notification, error) {
	n, err := s.center.Open(ctx, id)
	if err != nil {
		return models.Notification{}, err
	}
	if n.Identifier == common.DailyNotificationID {
		select {
		case s.openCamera <- struct{}{}:
		default:
		}
	}
	return n, nil
}

// OpenLatest opens the most recently delivered reminder.
func (s *Scheduler) OpenLatest(ctx context.Context) (models.Notification, error) {
	n, err := s.center.LastDelivered(ctx)
	if err != nil {
		return models.Notification{}, err
	}
	return s.Open(ctx, n.ID)
}

// OpenCamera is signalled when the user opens the daily reminder.
func (s *Scheduler) OpenCamera() <-chan struct{} {
	return s.openCamera
}

// Pending lists the scheduled reminders.
func (s *Scheduler) Pending(ctx context.Context) ([]models.Notification, error) {
	return s.center.Pending(ctx)
}
