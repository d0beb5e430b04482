package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/dmitrijs2005/bereal/internal/client/client"
	"github.com/dmitrijs2005/bereal/internal/client/models"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	SignUpRet *models.User
	SignUpErr error
	LogInRet  *models.User
	LogInErr  error
	LogOutErr error
	MeRet     *models.User
	MeErr     error

	UploadRet models.File
	UploadErr error

	CreatePostErr error
	PostsRet      []*models.Post
	PostsErr      error

	CreateCommentErr error
	CommentsRet      []*models.Comment
	CommentsErr      error

	UpdateUserErr error
	PingErr       error

	// recorded calls
	Calls           []string
	SessionToken    string
	LastPassword    string
	LastQuery       client.PostQuery
	LastCommentPost string
	LastUpdate      client.UserUpdate
	LastCaption     string
	LastImage       models.File
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) SignUp(_ context.Context, username, email, password string) (*models.User, error) {
	f.Calls = append(f.Calls, "SignUp")
	f.LastPassword = password
	return f.SignUpRet, f.SignUpErr
}

func (f *fakeClient) LogIn(_ context.Context, username, password string) (*models.User, error) {
	f.Calls = append(f.Calls, "LogIn")
	f.LastPassword = password
	return f.LogInRet, f.LogInErr
}

func (f *fakeClient) LogOut(context.Context) error {
	f.Calls = append(f.Calls, "LogOut")
	f.SessionToken = ""
	return f.LogOutErr
}

func (f *fakeClient) Me(context.Context) (*models.User, error) {
	f.Calls = append(f.Calls, "Me")
	if f.MeErr != nil {
		return nil, f.MeErr
	}
	u := *f.MeRet
	return &u, nil
}

func (f *fakeClient) UploadFile(_ context.Context, name, contentType string, data []byte) (models.File, error) {
	f.Calls = append(f.Calls, "UploadFile")
	return f.UploadRet, f.UploadErr
}

func (f *fakeClient) CreatePost(_ context.Context, caption string, image models.File, authorID string) (*models.Post, error) {
	f.Calls = append(f.Calls, "CreatePost")
	f.LastCaption, f.LastImage = caption, image
	if f.CreatePostErr != nil {
		return nil, f.CreatePostErr
	}
	return &models.Post{ID: "new-post", Caption: caption, Image: image, Author: &models.User{ID: authorID}}, nil
}

func (f *fakeClient) QueryPosts(_ context.Context, q client.PostQuery) ([]*models.Post, error) {
	f.Calls = append(f.Calls, "QueryPosts")
	f.LastQuery = q
	return f.PostsRet, f.PostsErr
}

func (f *fakeClient) CreateComment(_ context.Context, text, postID, authorID string) (*models.Comment, error) {
	f.Calls = append(f.Calls, "CreateComment")
	if f.CreateCommentErr != nil {
		return nil, f.CreateCommentErr
	}
	return &models.Comment{ID: "new-comment", Text: text, PostID: postID, Author: &models.User{ID: authorID}}, nil
}

func (f *fakeClient) QueryComments(_ context.Context, postID string) ([]*models.Comment, error) {
	f.Calls = append(f.Calls, "QueryComments")
	f.LastCommentPost = postID
	return f.CommentsRet, f.CommentsErr
}

func (f *fakeClient) UpdateUser(_ context.Context, userID string, u client.UserUpdate) error {
	f.Calls = append(f.Calls, "UpdateUser")
	f.LastUpdate = u
	return f.UpdateUserErr
}

func (f *fakeClient) SetSessionToken(token string) { f.SessionToken = token }

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

// fakeStore implements filestore.Store.
type fakeStore struct {
	Ret     models.File
	Err     error
	Puts    int
	LastCT  string
	LastLen int
}

func (s *fakeStore) Put(_ context.Context, name, contentType string, data []byte) (models.File, error) {
	s.Puts++
	s.LastCT, s.LastLen = contentType, len(data)
	return s.Ret, s.Err
}

func testImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < 16; i++ {
		img.Set(i, i, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
