// Package gate decides whether a user may see the feed: a user sees other
// people's posts only after posting within the last window.
package gate

import (
	"time"

	"github.com/dmitrijs2005/bereal/internal/client/models"
)

// DefaultWindow is the posting window that unlocks the feed.
const DefaultWindow = 24 * time.Hour

// HasPostedWithinWindow reports whether lastPosted lies strictly less than
// window before now. A missing timestamp is false. A timestamp after now
// counts as within the window.
func HasPostedWithinWindow(lastPosted *time.Time, now time.Time, window time.Duration) bool {
	if lastPosted == nil {
		return false
	}
	return now.Sub(*lastPosted) < window
}

// CanSeePost reports whether viewer sees post unblurred: their own posts
// always, others' only while viewer has posted within DefaultWindow.
func CanSeePost(viewer *models.User, post *models.Post, now time.Time) bool {
	if viewer == nil || post == nil {
		return false
	}
	if post.Author != nil && post.Author.ID != "" && post.Author.ID == viewer.ID {
		return true
	}
	return HasPostedWithinWindow(viewer.LastPostedAt, now, DefaultWindow)
}
