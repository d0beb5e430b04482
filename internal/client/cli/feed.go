package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/bereal/internal/client/gate"
	"github.com/dmitrijs2005/bereal/internal/client/images"
	"github.com/dmitrijs2005/bereal/internal/client/models"
	"github.com/dmitrijs2005/bereal/internal/common"
)

// Feed shows the friends' posts once the user has posted within the last
// 24 hours, and the post prompt otherwise.
func (a *App) Feed(ctx context.Context) error {
	u := a.authService.Current()
	if u == nil {
		a.say("Log in to see the feed")
		return common.ErrNotLoggedIn
	}

	if !gate.HasPostedWithinWindow(u.LastPostedAt, a.now(), gate.DefaultWindow) {
		a.clearFeed()
		a.say(renderNoPosts())
		return nil
	}

	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	posts, err := a.feedService.FetchFeed(rctx, a.config.FeedLimit)
	if err != nil {
		a.sayError(err)
		if len(a.rows) == 0 {
			a.say(renderEmptyFeed())
		}
		return err
	}

	a.showPosts(ctx, posts)
	return nil
}

// Refresh reloads the current user, so a post made elsewhere opens the
// gate, and then shows the feed.
func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.say("Not logged in")
		return common.ErrNotLoggedIn
	}

	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	if _, err := a.authService.Refresh(rctx); err != nil {
		a.sayError(err)
		return err
	}
	return a.Feed(ctx)
}

// Mine lists the user's own posts.
func (a *App) Mine(ctx context.Context) error {
	u := a.authService.Current()
	if u == nil {
		a.say("Not logged in")
		return common.ErrNotLoggedIn
	}

	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	posts, err := a.feedService.FetchUserPosts(rctx, u)
	if err != nil {
		a.sayError(err)
		return err
	}
	if len(posts) == 0 {
		a.say("You have not posted yet")
		a.clearFeed()
		return nil
	}

	a.showPosts(ctx, posts)
	return nil
}

// Comments loads and shows the comments of row n.
func (a *App) Comments(ctx context.Context, arg string) error {
	i, r, err := a.rowAt(arg)
	if err != nil {
		a.sayError(err)
		return err
	}

	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	r.comments = a.feedService.FetchComments(rctx, r.post)
	r.commentsLoaded = true
	a.renderRow(i)
	return nil
}

// Comment adds a comment to row n and re-renders only that row.
func (a *App) Comment(ctx context.Context, arg string) error {
	u := a.authService.Current()
	if u == nil {
		a.say("Not logged in")
		return common.ErrNotLoggedIn
	}

	i, r, err := a.rowAt(arg)
	if err != nil {
		a.sayError(err)
		return err
	}

	text, err := getSimpleText(a.reader, "Add Comment", a.out)
	if err != nil {
		return err
	}

	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	if _, err := a.feedService.CreateComment(rctx, text, r.post, u); err != nil {
		a.sayError(err)
		return err
	}

	r.comments = a.feedService.FetchComments(rctx, r.post)
	r.commentsLoaded = true
	a.renderRow(i)
	return nil
}

// Image saves the downloaded photo of row n under <data_dir>/download.
func (a *App) Image(_ context.Context, arg string) error {
	_, r, err := a.rowAt(arg)
	if err != nil {
		a.sayError(err)
		return err
	}

	if r.image == nil {
		a.say("Photo is still loading, try again in a moment")
		return nil
	}
	if r.image.Err != nil {
		a.sayError(r.image.Err)
		return r.image.Err
	}

	path, err := images.Save(a.config.DataDir, r.post.ID, r.image.Data)
	if err != nil {
		a.sayError(err)
		return err
	}
	a.say("Saved to", path)
	return nil
}

// showPosts replaces the rows, renders them and starts the photo downloads.
func (a *App) showPosts(ctx context.Context, posts []*models.Post) {
	a.clearFeed()

	for _, p := range posts {
		a.rows = append(a.rows, &row{post: p})
	}
	if len(a.rows) == 0 {
		a.say(renderEmptyFeed())
		return
	}

	for i := range a.rows {
		a.renderRow(i)
	}
	for i, r := range a.rows {
		if r.post.Image.URL == "" {
			continue
		}
		a.images.Bind(ctx, i, r.post.Image.URL, a.imageLoaded(r))
	}
}

// imageLoaded stores the result on r if r is still displayed.
func (a *App) imageLoaded(r *row) func(images.Result) {
	return func(res images.Result) {
		if res.Row >= len(a.rows) || a.rows[res.Row] != r {
			return
		}
		r.image = &res
		a.renderRow(res.Row)
	}
}

func (a *App) clearFeed() {
	if a.images != nil {
		a.images.Reset()
	}
	a.rows = nil
}

func (a *App) renderRow(i int) {
	a.say(renderCard(i+1, a.rows[i], a.authService.Current(), a.now()))
}

// rowAt parses a 1-based row number.
func (a *App) rowAt(arg string) (int, *row, error) {
	if arg == "" {
		return 0, nil, common.InputError("row number is required")
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.rows) {
		return 0, nil, common.InputError(fmt.Sprintf("no row %q, the feed has %d", arg, len(a.rows)))
	}
	return n - 1, a.rows[n-1], nil
}
