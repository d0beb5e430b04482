package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bereal/internal/client/models"
)

// PostQuery selects posts. Results are always newest first with the author
// resolved.
type PostQuery struct {
	// Limit caps the number of posts; 0 leaves the backend default.
	Limit int
	// AuthorID restricts the query to posts of one user.
	AuthorID string
}

// UserUpdate lists the user fields the client may change.
type UserUpdate struct {
	LastPostedAt *time.Time
}

// Client is the gateway to the backend. Implementations map failures to
// common.ErrNetwork or a *common.BackendError.
type Client interface {
	SignUp(ctx context.Context, username, email, password string) (*models.User, error)
	LogIn(ctx context.Context, username, password string) (*models.User, error)
	LogOut(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)

	UploadFile(ctx context.Context, name, contentType string, data []byte) (models.File, error)

	CreatePost(ctx context.Context, caption string, image models.File, authorID string) (*models.Post, error)
	QueryPosts(ctx context.Context, q PostQuery) ([]*models.Post, error)

	CreateComment(ctx context.Context, text, postID, authorID string) (*models.Comment, error)
	QueryComments(ctx context.Context, postID string) ([]*models.Comment, error)

	UpdateUser(ctx context.Context, userID string, u UserUpdate) error

	// SetSessionToken sets the token sent with subsequent requests; "" clears it.
	SetSessionToken(token string)
	Ping(ctx context.Context) error
}
