package models

import "time"

// File references a binary stored remotely.
type File struct {
	Name string
	URL  string
}

// Post is a photo shared by a user. Posts are immutable once created.
type Post struct {
	ID        string
	Caption   string
	Image     File
	Author    *User
	CreatedAt time.Time
}

// Comment is a text reply attached to a post.
type Comment struct {
	ID        string
	Text      string
	Author    *User
	PostID    string
	CreatedAt time.Time
}
