package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bereal/internal/client/client"
	"github.com/dmitrijs2005/bereal/internal/client/filestore"
	"github.com/dmitrijs2005/bereal/internal/client/models"
	"github.com/dmitrijs2005/bereal/internal/common"
	"github.com/dmitrijs2005/bereal/internal/imagex"
	"github.com/dmitrijs2005/bereal/internal/logging"
)

const (
	DefaultFeedLimit   = 50
	DefaultJPEGQuality = 10

	uploadName = "post_image.jpg"
)

// ErrLastPostedNotUpdated is returned together with a created post when
// the author's last post time could not be saved. The post exists; the
// feed stays locked until the next successful post.
var ErrLastPostedNotUpdated = errors.New("post created but last posted time not updated")

// FeedService fetches and creates posts and comments.
type FeedService interface {
	// FetchFeed returns at most limit posts, newest first, with authors.
	FetchFeed(ctx context.Context, limit int) ([]*models.Post, error)

	// FetchComments returns the post's comments oldest first. Failures are
	// logged and yield an empty list.
	FetchComments(ctx context.Context, post *models.Post) []*models.Comment

	// CreatePost compresses and uploads image, creates the post and then
	// records the author's last post time.
	CreatePost(ctx context.Context, image []byte, caption string, author *models.User) (*models.Post, error)

	CreateComment(ctx context.Context, text string, post *models.Post, author *models.User) (*models.Comment, error)
	FetchUserPosts(ctx context.Context, user *models.User) ([]*models.Post, error)
}

type feedService struct {
	client  client.Client
	store   filestore.Store
	log     logging.Logger
	quality int
	now     func() time.Time
}

// NewFeedService wires the gateway and file store. quality is the JPEG
// quality used for uploads; 0 selects DefaultJPEGQuality.
func NewFeedService(c client.Client, store filestore.Store, log logging.Logger, quality int) FeedService {
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	return &feedService{client: c, store: store, log: log, quality: quality, now: time.Now}
}

func (s *feedService) FetchFeed(ctx context.Context, limit int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	posts, err := s.client.QueryPosts(ctx, client.PostQuery{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}

	s.log.Debug(ctx, "feed loaded", "posts", len(posts), "limit", limit)
	return posts, nil
}

func (s *feedService) FetchComments(ctx context.Context, post *models.Post) []*models.Comment {
	if post == nil || post.ID == "" {
		return []*models.Comment{}
	}

	comments, err := s.client.QueryComments(ctx, post.ID)
	if err != nil {
		s.log.Warn(ctx, "fetch comments failed", "post", post.ID, "error", err)
		return []*models.Comment{}
	}
	return comments
}

func (s *feedService) CreatePost(ctx context.Context, image []byte, caption string, author *models.User) (*models.Post, error) {
	if author == nil {
		return nil, common.ErrNotLoggedIn
	}
	if len(image) == 0 {
		return nil, common.InputError("an image is required")
	}

	data, err := imagex.Compress(image, s.quality)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInput, err)
	}

	file, err := s.store.Put(ctx, uploadName, imagex.ContentTypeJPEG, data)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	caption = strings.TrimSpace(caption)
	post, err := s.client.CreatePost(ctx, caption, file, author.ID)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.Author = author
	s.log.Info(ctx, "post created", "post", post.ID, "bytes", len(data))

	now := s.now()
	if err := s.client.UpdateUser(ctx, author.ID, client.UserUpdate{LastPostedAt: &now}); err != nil {
		s.log.Error(ctx, "update last posted time failed", "user", author.ID, "error", err)
		return post, fmt.Errorf("%w: %w", ErrLastPostedNotUpdated, err)
	}
	author.LastPostedAt = &now

	return post, nil
}

func (s *feedService) CreateComment(ctx context.Context, text string, post *models.Post, author *models.User) (*models.Comment, error) {
	if author == nil {
		return nil, common.ErrNotLoggedIn
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.InputError("comment text is required")
	}
	if post == nil || post.ID == "" {
		return nil, common.InputError("no post selected")
	}

	comment, err := s.client.CreateComment(ctx, text, post.ID, author.ID)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = author
	return comment, nil
}

func (s *feedService) FetchUserPosts(ctx context.Context, user *models.User) ([]*models.Post, error) {
	if user == nil {
		return nil, common.ErrNotLoggedIn
	}
	posts, err := s.client.QueryPosts(ctx, client.PostQuery{AuthorID: user.ID})
	if err != nil {
		return nil, fmt.Errorf("fetch user posts: %w", err)
	}
	return posts, nil
}
