// Package images downloads post photos in the background and hands them to
// the UI thread.
//
// A row is a visual slot in the rendered feed. Binding a row to a new URL
// cancels the download previously bound to it, and a result is only
// delivered while its binding is still current, so a reused row never shows
// a stale photo.
package images

import (
	"context"
	"image"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/bereal/internal/filex"
	"github.com/dmitrijs2005/bereal/internal/imagex"
	"github.com/dmitrijs2005/bereal/internal/logging"
	"github.com/dmitrijs2005/bereal/internal/netx"
)

const DefaultMaxBytes = 20 << 20

// Result is what a finished download delivers.
type Result struct {
	Row    int
	URL    string
	Data   []byte
	Image  image.Image
	Format string
	Err    error
}

type binding struct {
	seq    uint64
	cancel context.CancelFunc
}

// Loader runs downloads and posts their results through post, which must
// execute the callback on the UI goroutine.
type Loader struct {
	client   *http.Client
	maxBytes int64
	post     func(func())
	log      logging.Logger

	mu    sync.Mutex
	seq   uint64
	bound map[int]binding
	wg    sync.WaitGroup
}

func NewLoader(client *http.Client, post func(func()), log logging.Logger) *Loader {
	if log == nil {
		log = logging.Nop{}
	}
	return &Loader{
		client:   client,
		maxBytes: DefaultMaxBytes,
		post:     post,
		log:      log,
		bound:    make(map[int]binding),
	}
}

// Bind starts downloading url for row and calls done on the UI goroutine
// when it finishes, unless the row was bound again or unbound meanwhile.
func (l *Loader) Bind(ctx context.Context, row int, url string, done func(Result)) {
	ctx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	if prev, ok := l.bound[row]; ok {
		prev.cancel()
	}
	l.seq++
	seq := l.seq
	l.bound[row] = binding{seq: seq, cancel: cancel}
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer cancel()

		res := l.fetch(ctx, row, url)
		if ctx.Err() != nil {
			l.log.Debug(ctx, "image download cancelled", "row", row, "url", url)
			return
		}

		l.post(func() {
			if !l.current(row, seq) {
				return
			}
			l.release(row, seq)
			done(res)
		})
	}()
}

// Unbind cancels the download bound to row, if any.
func (l *Loader) Unbind(row int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.bound[row]; ok {
		b.cancel()
		delete(l.bound, row)
	}
}

// Reset cancels every binding, e.g. before the feed is re-rendered.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for row, b := range l.bound {
		b.cancel()
		delete(l.bound, row)
	}
}

// Close cancels all downloads and waits for their goroutines.
func (l *Loader) Close() {
	l.Reset()
	l.wg.Wait()
}

func (l *Loader) current(row int, seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bound[row]
	return ok && b.seq == seq
}

func (l *Loader) release(row int, seq uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.bound[row]; ok && b.seq == seq {
		delete(l.bound, row)
	}
}

func (l *Loader) fetch(ctx context.Context, row int, url string) Result {
	res := Result{Row: row, URL: url}

	data, err := netx.Download(ctx, l.client, url, l.maxBytes)
	if err != nil {
		res.Err = err
		return res
	}
	res.Data = data

	img, format, err := imagex.Decode(data)
	if err != nil {
		l.log.Warn(ctx, "image decode failed", "url", url, "error", err)
		res.Err = err
		return res
	}
	res.Image, res.Format = img, format
	return res
}

// Save writes data to <dir>/download/<postID>.jpg and returns the path.
func Save(dir, postID string, data []byte) (string, error) {
	sub, err := filex.EnsureSubdir(dir, "download")
	if err != nil {
		return "", err
	}
	path := filepath.Join(sub, filepath.Base(postID)+".jpg")
	if err := filex.WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}
