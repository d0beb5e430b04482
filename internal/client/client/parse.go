package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/bereal/internal/client/models"
	"github.com/dmitrijs2005/bereal/internal/common"
)

const maxResponseBytes = 8 << 20

// ParseClient talks to a Parse Server over its REST API.
type ParseClient struct {
	baseURL    string
	appID      string
	restKey    string
	httpClient *http.Client

	mu           sync.RWMutex
	sessionToken string
}

// NewParseClient returns a client for the Parse API rooted at baseURL
// (e.g. https://parseapi.back4app.com). timeout bounds every request.
func NewParseClient(baseURL, appID, restKey string, timeout time.Duration) *ParseClient {
	return &ParseClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		appID:      appID,
		restKey:    restKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ParseClient) SetSessionToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionToken = token
}

func (c *ParseClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionToken
}

func (c *ParseClient) SignUp(ctx context.Context, username, email, password string) (*models.User, error) {
	body := map[string]any{"username": username, "password": password}
	if email != "" {
		body["email"] = email
	}

	var resp createdDTO
	if err := c.doJSON(ctx, http.MethodPost, "/users", nil, body, &resp); err != nil {
		return nil, err
	}

	c.SetSessionToken(resp.SessionToken)

	return &models.User{
		ID:           resp.ObjectID,
		Username:     username,
		Email:        email,
		SessionToken: resp.SessionToken,
	}, nil
}

func (c *ParseClient) LogIn(ctx context.Context, username, password string) (*models.User, error) {
	body := map[string]any{"username": username, "password": password}

	var resp userDTO
	if err := c.doJSON(ctx, http.MethodPost, "/login", nil, body, &resp); err != nil {
		return nil, err
	}

	c.SetSessionToken(resp.SessionToken)
	return resp.model(), nil
}

// LogOut invalidates the session on the backend. The local token is cleared
// even when the call fails.
func (c *ParseClient) LogOut(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/logout", nil, map[string]any{}, nil)
	c.SetSessionToken("")
	return err
}

func (c *ParseClient) Me(ctx context.Context) (*models.User, error) {
	var resp userDTO
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	u := resp.model()
	if u.SessionToken == "" {
		u.SessionToken = c.token()
	}
	return u, nil
}

func (c *ParseClient) UploadFile(ctx context.Context, name, contentType string, data []byte) (models.File, error) {
	var resp fileRef
	path := "/files/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(data), contentType, &resp); err != nil {
		return models.File{}, err
	}
	return models.File{Name: resp.Name, URL: resp.URL}, nil
}

func (c *ParseClient) CreatePost(ctx context.Context, caption string, image models.File, authorID string) (*models.Post, error) {
	body := map[string]any{
		"imageFile": fileRef{Type: "File", Name: image.Name, URL: image.URL},
		"user":      newPointer(classUser, authorID),
	}
	if caption != "" {
		body["caption"] = caption
	}

	var resp createdDTO
	if err := c.doJSON(ctx, http.MethodPost, "/classes/"+classPost, nil, body, &resp); err != nil {
		return nil, err
	}

	return &models.Post{
		ID:        resp.ObjectID,
		Caption:   caption,
		Image:     image,
		Author:    &models.User{ID: authorID},
		CreatedAt: resp.CreatedAt,
	}, nil
}

func (c *ParseClient) QueryPosts(ctx context.Context, q PostQuery) ([]*models.Post, error) {
	params := url.Values{}
	params.Set("include", "user")
	params.Set("order", "-createdAt")
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.AuthorID != "" {
		where, err := json.Marshal(map[string]any{"user": newPointer(classUser, q.AuthorID)})
		if err != nil {
			return nil, err
		}
		params.Set("where", string(where))
	}

	var resp struct {
		Results []*postDTO `json:"results"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/classes/"+classPost, params, nil, &resp); err != nil {
		return nil, err
	}

	posts := make([]*models.Post, 0, len(resp.Results))
	for _, p := range resp.Results {
		posts = append(posts, p.model())
	}
	return posts, nil
}

func (c *ParseClient) CreateComment(ctx context.Context, text, postID, authorID string) (*models.Comment, error) {
	body := map[string]any{
		"text": text,
		"post": newPointer(classPost, postID),
		"user": newPointer(classUser, authorID),
	}

	var resp createdDTO
	if err := c.doJSON(ctx, http.MethodPost, "/classes/"+classComment, nil, body, &resp); err != nil {
		return nil, err
	}

	return &models.Comment{
		ID:        resp.ObjectID,
		Text:      text,
		Author:    &models.User{ID: authorID},
		PostID:    postID,
		CreatedAt: resp.CreatedAt,
	}, nil
}

func (c *ParseClient) QueryComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	where, err := json.Marshal(map[string]any{"post": newPointer(classPost, postID)})
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("where", string(where))
	params.Set("include", "user")
	params.Set("order", "createdAt")

	var resp struct {
		Results []*commentDTO `json:"results"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/classes/"+classComment, params, nil, &resp); err != nil {
		return nil, err
	}

	comments := make([]*models.Comment, 0, len(resp.Results))
	for _, cm := range resp.Results {
		comments = append(comments, cm.model())
	}
	return comments, nil
}

func (c *ParseClient) UpdateUser(ctx context.Context, userID string, u UserUpdate) error {
	body := map[string]any{}
	if u.LastPostedAt != nil {
		body["lastPostedDate"] = newParseDate(*u.LastPostedAt)
	}
	if len(body) == 0 {
		return nil
	}
	return c.doJSON(ctx, http.MethodPut, "/users/"+url.PathEscape(userID), nil, body, nil)
}

// Ping checks that the server answers its health endpoint.
func (c *ParseClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *ParseClient) doJSON(ctx context.Context, method, path string, params url.Values, body any, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, params, r, "application/json", out)
}

func (c *ParseClient) do(ctx context.Context, method, path string, params url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set(common.HeaderApplicationID, c.appID)
	if c.restKey != "" {
		req.Header.Set(common.HeaderRESTAPIKey, c.restKey)
	}
	if token := c.token(); token != "" {
		req.Header.Set(common.HeaderSessionToken, token)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return mapError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", common.ErrBackend, err)
	}
	return nil
}

// mapError converts a transport failure into common.ErrNetwork, keeping the
// cause in the chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrNetwork) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrNetwork, err)
}

func statusError(status int, body []byte) error {
	if status >= http.StatusInternalServerError {
		return fmt.Errorf("%w: server responded %d", common.ErrNetwork, status)
	}

	var e errorDTO
	_ = json.Unmarshal(body, &e)
	if e.Error == "" {
		e.Error = http.StatusText(status)
	}
	return &common.BackendError{Status: status, Code: e.Code, Message: e.Error}
}
