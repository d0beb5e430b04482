package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/bereal/internal/client/config"
	"github.com/dmitrijs2005/bereal/internal/client/images"
	"github.com/dmitrijs2005/bereal/internal/client/models"
	"github.com/dmitrijs2005/bereal/internal/client/notify"
	"github.com/dmitrijs2005/bereal/internal/client/services"
	"github.com/dmitrijs2005/bereal/internal/common"
	"github.com/dmitrijs2005/bereal/internal/logging"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeAuth struct {
	current  *models.User
	loginErr error
	calls    []string
}

func (f *fakeAuth) Register(_ context.Context, username, email string, _ []byte) (*models.User, error) {
	f.calls = append(f.calls, "Register")
	f.current = &models.User{ID: "u1", Username: username, Email: email}
	return f.current, nil
}

func (f *fakeAuth) Login(_ context.Context, username string, password []byte) (*models.User, error) {
	f.calls = append(f.calls, "Login:"+username+":"+string(password))
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.current = &models.User{ID: "u1", Username: username}
	return f.current, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.calls = append(f.calls, "Logout")
	f.current = nil
	return nil
}

func (f *fakeAuth) Restore(context.Context) (*models.User, error) {
	f.calls = append(f.calls, "Restore")
	if f.current == nil {
		return nil, common.ErrNotLoggedIn
	}
	return f.current, nil
}

func (f *fakeAuth) Refresh(context.Context) (*models.User, error) {
	f.calls = append(f.calls, "Refresh")
	return f.current, nil
}

func (f *fakeAuth) Current() *models.User { return f.current }
func (f *fakeAuth) Ping(context.Context) error { return nil }

type fakeFeed struct {
	posts         []*models.Post
	fetchErr      error
	comments      map[string][]*models.Comment
	createPostErr error
	updateFails   bool
	now           time.Time

	calls       []string
	lastImage   []byte
	lastCaption string
	lastComment string
}

func (f *fakeFeed) FetchFeed(_ context.Context, limit int) ([]*models.Post, error) {
	f.calls = append(f.calls, "FetchFeed")
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if limit < len(f.posts) {
		return f.posts[:limit], nil
	}
	return f.posts, nil
}

func (f *fakeFeed) FetchComments(_ context.Context, post *models.Post) []*models.Comment {
	f.calls = append(f.calls, "FetchComments:"+post.ID)
	return append([]*models.Comment{}, f.comments[post.ID]...)
}

func (f *fakeFeed) CreatePost(_ context.Context, image []byte, caption string, author *models.User) (*models.Post, error) {
	f.calls = append(f.calls, "CreatePost")
	f.lastImage, f.lastCaption = image, caption
	if len(image) == 0 {
		return nil, common.InputError("a photo is required")
	}
	if f.createPostErr != nil {
		return nil, f.createPostErr
	}
	p := &models.Post{ID: "new", Caption: caption, Author: author, CreatedAt: f.now}
	if f.updateFails {
		return p, fmt.Errorf("%w: %w", services.ErrLastPostedNotUpdated, common.ErrNetwork)
	}
	t := f.now
	author.LastPostedAt = &t
	f.posts = append([]*models.Post{p}, f.posts...)
	return p, nil
}

func (f *fakeFeed) CreateComment(_ context.Context, text string, post *models.Post, author *models.User) (*models.Comment, error) {
	f.calls = append(f.calls, "CreateComment:"+post.ID)
	f.lastComment = text
	if strings.TrimSpace(text) == "" {
		return nil, common.InputError("comment text is required")
	}
	c := &models.Comment{ID: "c", Text: text, Author: author, PostID: post.ID}
	if f.comments == nil {
		f.comments = map[string][]*models.Comment{}
	}
	f.comments[post.ID] = append(f.comments[post.ID], c)
	return c, nil
}

func (f *fakeFeed) FetchUserPosts(_ context.Context, user *models.User) ([]*models.Post, error) {
	f.calls = append(f.calls, "FetchUserPosts:"+user.ID)
	var out []*models.Post
	for _, p := range f.posts {
		if p.Author != nil && p.Author.ID == user.ID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeReminders struct {
	state   notify.State
	pending []models.Notification
	latest  *models.Notification
	camera  chan struct{}
	calls   []string
}

func newFakeReminders() *fakeReminders {
	return &fakeReminders{camera: make(chan struct{}, 1)}
}

func (f *fakeReminders) Start(context.Context) error {
	f.calls = append(f.calls, "Start")
	return nil
}

func (f *fakeReminders) SetEnabled(_ context.Context, enabled bool) error {
	if enabled {
		f.calls = append(f.calls, "SetEnabled:on")
		f.state = notify.StateGranted
		f.pending = []models.Notification{{ID: "n1", Identifier: common.DailyNotificationID, FireAt: testNow.Add(20 * time.Hour)}}
		return nil
	}
	f.calls = append(f.calls, "SetEnabled:off")
	f.state = notify.StateDenied
	f.pending = nil
	return nil
}

func (f *fakeReminders) State() notify.State { return f.state }

func (f *fakeReminders) OpenLatest(context.Context) (models.Notification, error) {
	f.calls = append(f.calls, "OpenLatest")
	if f.latest == nil {
		return models.Notification{}, common.ErrorNotFound
	}
	n := *f.latest
	f.latest = nil
	select {
	case f.camera <- struct{}{}:
	default:
	}
	return n, nil
}

func (f *fakeReminders) OpenCamera() <-chan struct{} { return f.camera }

func (f *fakeReminders) Delivered(_ context.Context, n models.Notification) error {
	f.calls = append(f.calls, "Delivered:"+n.ID)
	return nil
}

func (f *fakeReminders) Pending(context.Context) ([]models.Notification, error) {
	return f.pending, nil
}

type bindCall struct {
	row  int
	url  string
	done func(images.Result)
}

type fakeImages struct {
	binds  []bindCall
	resets int
	closed bool
}

func (f *fakeImages) Bind(_ context.Context, row int, url string, done func(images.Result)) {
	f.binds = append(f.binds, bindCall{row: row, url: url, done: done})
}
func (f *fakeImages) Reset() { f.resets++ }
func (f *fakeImages) Close() { f.closed = true }

type testApp struct {
	*App
	out       *bytes.Buffer
	auth      *fakeAuth
	feed      *fakeFeed
	reminders *fakeReminders
	images    *fakeImages
}

// newTestApp builds an App around fakes; input feeds the interactive prompts.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	ta := &testApp{
		out:       &bytes.Buffer{},
		auth:      &fakeAuth{},
		feed:      &fakeFeed{now: testNow},
		reminders: newFakeReminders(),
		images:    &fakeImages{},
	}
	ta.App = &App{
		config: &config.Config{
			DataDir:        t.TempDir(),
			FeedLimit:      50,
			RequestTimeout: time.Second,
		},
		log:         logging.Nop{},
		authService: ta.auth,
		feedService: ta.feed,
		reminders:   ta.reminders,
		images:      ta.images,
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         ta.out,
		ui:          newUIQueue(8),
		now:         func() time.Time { return testNow },
	}
	return ta
}

func (ta *testApp) login(lastPosted *time.Time) *models.User {
	ta.auth.current = &models.User{ID: "u1", Username: "alice", LastPostedAt: lastPosted}
	return ta.auth.current
}

func ago(d time.Duration) *time.Time {
	t := testNow.Add(-d)
	return &t
}

func friendPosts() []*models.Post {
	bob := &models.User{ID: "u2", Username: "bob"}
	carol := &models.User{ID: "u3", Username: "carol"}
	return []*models.Post{
		{ID: "p2", Caption: "lunch", Author: bob, Image: models.File{URL: "http://img/p2.jpg"}, CreatedAt: testNow.Add(-time.Hour)},
		{ID: "p1", Caption: "coffee", Author: carol, Image: models.File{URL: "http://img/p1.jpg"}, CreatedAt: testNow.Add(-2 * time.Hour)},
	}
}
