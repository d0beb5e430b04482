package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/bereal/internal/client/client"
	"github.com/dmitrijs2005/bereal/internal/client/config"
	"github.com/dmitrijs2005/bereal/internal/client/filestore"
	"github.com/dmitrijs2005/bereal/internal/client/images"
	"github.com/dmitrijs2005/bereal/internal/client/models"
	"github.com/dmitrijs2005/bereal/internal/client/notify"
	"github.com/dmitrijs2005/bereal/internal/client/services"
	"github.com/dmitrijs2005/bereal/internal/filex"
	"github.com/dmitrijs2005/bereal/internal/logging"

	_ "modernc.org/sqlite"
)

const (
	dbFileName  = "bereal.db"
	uiQueueSize = 256
)

// reminders is the part of notify.Scheduler the CLI drives.
type reminders interface {
	Start(ctx context.Context) error
	SetEnabled(ctx context.Context, enabled bool) error
	State() notify.State
	OpenLatest(ctx context.Context) (models.Notification, error)
	OpenCamera() <-chan struct{}
	Delivered(ctx context.Context, n models.Notification) error
	Pending(ctx context.Context) ([]models.Notification, error)
}

type imageBinder interface {
	Bind(ctx context.Context, row int, url string, done func(images.Result))
	Reset()
	Close()
}

// row is one rendered feed entry.
type row struct {
	post     *models.Post
	comments []*models.Comment
	image    *images.Result

	// commentsLoaded is set once comments were fetched for this row.
	commentsLoaded bool
}

// postForm keeps the post command's input between attempts.
type postForm struct {
	imagePath string
	caption   string
}

type App struct {
	config *config.Config
	log    logging.Logger

	authService services.AuthService
	feedService services.FeedService
	reminders   reminders
	images      imageBinder
	deliverer   *notify.Deliverer

	reader *bufio.Reader
	out    io.Writer
	ui     *uiQueue
	now    func() time.Time

	rows []*row
	form postForm

	db *sql.DB
}

// NewApp opens the local database under the data directory and wires the
// backend gateway, file store, services and reminder scheduler.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureSubdir(c.DataDir, "")
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, dbFileName))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}
	repos := client.NewRepositories(db)

	api := client.NewParseClient(c.ServerURL, c.ApplicationID, c.RESTAPIKey, c.RequestTimeout)

	store, err := newFileStore(ctx, c, api)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:      c,
		log:         log,
		authService: services.NewAuthService(api, repos.Metadata, log.With("component", "auth")),
		feedService: services.NewFeedService(api, store, log.With("component", "feed"), c.JPEGQuality),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		ui:          newUIQueue(uiQueueSize),
		now:         time.Now,
		db:          db,
	}

	a.images = images.NewLoader(&http.Client{Timeout: c.RequestTimeout}, a.ui.Post, log.With("component", "images"))

	center := notify.NewCenter(db)
	a.reminders = notify.NewScheduler(center, repos.Metadata, &promptAuthorizer{app: a}, nil, log.With("component", "notify"))
	a.deliverer = notify.NewDeliverer(center, c.NotificationPollInterval, a.ui.Post, a.onDelivered, log.With("component", "notify"))

	return a, nil
}

func newFileStore(ctx context.Context, c *config.Config, api *client.ParseClient) (filestore.Store, error) {
	switch c.FileStore {
	case config.FileStoreS3:
		s3, err := filestore.NewS3Store(ctx, filestore.S3Config{
			Bucket:      c.S3Bucket,
			Region:      c.S3Region,
			Endpoint:    c.S3Endpoint,
			AccessKey:   c.S3AccessKey,
			SecretKey:   c.S3SecretKey,
			URLValidity: c.S3URLValidity,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 file store: %w", err)
		}
		return s3, nil
	case config.FileStoreParse, "":
		return filestore.NewParseStore(api), nil
	}
	return nil, fmt.Errorf("unknown file store %q", c.FileStore)
}

// Run restores the saved session, starts reminders and runs the REPL until
// the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer a.close()
	defer cancel()

	a.say("Welcome to BeReal! Type 'help' for commands.")

	if err := a.ping(ctx); err != nil {
		a.say("Backend unreachable:", errorMessage(err))
	}

	if err := a.restore(ctx); err != nil {
		a.log.Debug(ctx, "no session restored", "error", err)
	}

	if err := a.reminders.Start(ctx); err != nil {
		a.log.Warn(ctx, "notifications unavailable", "error", err)
	}
	var wg sync.WaitGroup
	if a.deliverer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.deliverer.Run(ctx)
		}()
	}

	if a.isLoggedIn() {
		_ = a.Feed(ctx)
	}

	runREPL(ctx, a, a.status, func() { a.beforePrompt(ctx) }, a.reader)

	cancel()
	a.ui.Close()
	wg.Wait()
	return nil
}

func (a *App) ping(ctx context.Context) error {
	rctx, cancel := a.requestContext(ctx)
	defer cancel()
	return a.authService.Ping(rctx)
}

func (a *App) restore(ctx context.Context) error {
	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	u, err := a.authService.Restore(rctx)
	if err != nil {
		return err
	}
	a.say(fmt.Sprintf("Logged in as %s", u.Name()))
	return nil
}

// beforePrompt runs queued UI work and reacts to an opened reminder.
func (a *App) beforePrompt(ctx context.Context) {
	a.ui.Drain()

	select {
	case <-a.reminders.OpenCamera():
		if !a.isLoggedIn() {
			a.say("Log in to post")
			return
		}
		_ = a.Post(ctx)
	default:
	}
}

func (a *App) onDelivered(n models.Notification) {
	a.say(renderNotification(n))
	ctx, cancel := a.requestContext(context.Background())
	defer cancel()
	if err := a.reminders.Delivered(ctx, n); err != nil {
		a.log.Warn(ctx, "reschedule reminder failed", "error", err)
	}
}

func (a *App) close() {
	a.ui.Close()
	if a.images != nil {
		a.images.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "close database", "error", err)
		}
	}
}

func (a *App) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) isLoggedIn() bool {
	return a.authService.Current() != nil
}

func (a *App) status() string {
	u := a.authService.Current()
	if u == nil {
		return "not logged in"
	}
	return u.Name()
}

func (a *App) say(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) sayError(err error) {
	a.say("Error:", errorMessage(err))
}
