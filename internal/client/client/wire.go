package client

import (
	"time"

	"github.com/dmitrijs2005/bereal/internal/client/models"
)

const (
	classUser    = "_User"
	classPost    = "Post"
	classComment = "Comment"

	// Parse encodes dates as ISO 8601 with milliseconds in UTC.
	parseTimeLayout = "2006-01-02T15:04:05.000Z"
)

type pointer struct {
	Type      string `json:"__type"`
	ClassName string `json:"className"`
	ObjectID  string `json:"objectId"`
}

func newPointer(className, id string) pointer {
	return pointer{Type: "Pointer", ClassName: className, ObjectID: id}
}

type fileRef struct {
	Type string `json:"__type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type parseDate struct {
	Type string `json:"__type"`
	ISO  string `json:"iso"`
}

func newParseDate(t time.Time) parseDate {
	return parseDate{Type: "Date", ISO: t.UTC().Format(parseTimeLayout)}
}

func (d *parseDate) time() *time.Time {
	if d == nil || d.ISO == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, d.ISO)
	if err != nil {
		return nil
	}
	return &t
}

// userDTO decodes both a full user object (include=user) and a bare pointer.
type userDTO struct {
	ObjectID       string     `json:"objectId"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	LastPostedDate *parseDate `json:"lastPostedDate"`
	SessionToken   string     `json:"sessionToken"`
}

func (u *userDTO) model() *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:           u.ObjectID,
		Username:     u.Username,
		Email:        u.Email,
		LastPostedAt: u.LastPostedDate.time(),
		SessionToken: u.SessionToken,
	}
}

type postDTO struct {
	ObjectID  string    `json:"objectId"`
	Caption   string    `json:"caption"`
	ImageFile *fileRef  `json:"imageFile"`
	User      *userDTO  `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p *postDTO) model() *models.Post {
	post := &models.Post{
		ID:        p.ObjectID,
		Caption:   p.Caption,
		Author:    p.User.model(),
		CreatedAt: p.CreatedAt,
	}
	if p.ImageFile != nil {
		post.Image = models.File{Name: p.ImageFile.Name, URL: p.ImageFile.URL}
	}
	return post
}

type commentDTO struct {
	ObjectID  string    `json:"objectId"`
	Text      string    `json:"text"`
	User      *userDTO  `json:"user"`
	Post      *pointer  `json:"post"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *commentDTO) model() *models.Comment {
	comment := &models.Comment{
		ID:        c.ObjectID,
		Text:      c.Text,
		Author:    c.User.model(),
		CreatedAt: c.CreatedAt,
	}
	if c.Post != nil {
		comment.PostID = c.Post.ObjectID
	}
	return comment
}

// createdDTO is the body of a successful object creation.
type createdDTO struct {
	ObjectID     string    `json:"objectId"`
	CreatedAt    time.Time `json:"createdAt"`
	SessionToken string    `json:"sessionToken"`
}

type errorDTO struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}
