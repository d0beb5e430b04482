package cli

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/bereal/internal/client/gate"
	"github.com/dmitrijs2005/bereal/internal/client/models"
	"github.com/dmitrijs2005/bereal/internal/common"
)

const (
	cardWidth = 48
	photoCols = 40
	photoRows = 12

	// blurFactor is the cell size, in characters, of a blurred photo.
	blurFactor = 4

	noPostsText = "Post a BeReal to see your friends' BeReal!"
)

// ramp maps brightness to characters, dark to light.
const ramp = "@%#*+=-:. "

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#888")).
			Padding(0, 1).
			Width(cardWidth)
	userStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff8"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	commentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#45f"))
	bannerStyle  = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Bold(true).
			Padding(0, 2)
)

func renderNoPosts() string {
	return bannerStyle.Render(noPostsText + "\n" + dimStyle.Render("Type 'post' to share yours."))
}

func renderEmptyFeed() string {
	return dimStyle.Render("No posts yet.")
}

func renderNotification(n models.Notification) string {
	return bannerStyle.Render(n.Title + "\n" + n.Body + "\n" + dimStyle.Render("Type 'tap' to open."))
}

// renderCard draws row r as card number num. Photos the viewer may not see
// yet are blurred.
func renderCard(num int, r *row, viewer *models.User, now time.Time) string {
	p := r.post

	header := fmt.Sprintf("#%d %s %s", num, userStyle.Render(p.Author.Name()), dimStyle.Render(age(p.CreatedAt, now)))

	lines := []string{header}
	lines = append(lines, photoLines(r, gate.CanSeePost(viewer, p, now))...)
	if p.Caption != "" {
		lines = append(lines, p.Caption)
	}

	if r.commentsLoaded {
		if len(r.comments) == 0 {
			lines = append(lines, dimStyle.Render("No comments"))
		}
		for _, c := range r.comments {
			lines = append(lines, commentStyle.Render(c.Author.Name()+":")+" "+c.Text)
		}
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}

func photoLines(r *row, visible bool) []string {
	switch {
	case r.image == nil:
		if !visible {
			return []string{dimStyle.Render(strings.Repeat("▒", photoCols)), dimStyle.Render("Post a BeReal to unblur")}
		}
		return []string{dimStyle.Render("loading photo...")}
	case r.image.Err != nil:
		return []string{dimStyle.Render("photo unavailable")}
	case !visible:
		return blurred(asciiArt(r.image.Image, photoCols/blurFactor, photoRows/blurFactor), blurFactor)
	}
	return asciiArt(r.image.Image, photoCols, photoRows)
}

// asciiArt samples img into rows lines of cols characters, each the average
// brightness of its cell.
func asciiArt(img image.Image, cols, rows int) []string {
	if img == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Empty() {
		return nil
	}

	out := make([]string, 0, rows)
	for y := range rows {
		y0 := b.Min.Y + y*b.Dy()/rows
		y1 := max(b.Min.Y+(y+1)*b.Dy()/rows, y0+1)

		var sb strings.Builder
		for x := range cols {
			x0 := b.Min.X + x*b.Dx()/cols
			x1 := max(b.Min.X+(x+1)*b.Dx()/cols, x0+1)
			sb.WriteByte(ramp[brightness(img, x0, y0, x1, y1)*(len(ramp)-1)/255])
		}
		out = append(out, sb.String())
	}
	return out
}

func brightness(img image.Image, x0, y0, x1, y1 int) int {
	var sum, n int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			sum += int(color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
			n++
		}
	}
	return sum / n
}

// blurred scales lines up by factor in both directions.
func blurred(lines []string, factor int) []string {
	out := make([]string, 0, len(lines)*factor)
	for _, l := range lines {
		var sb strings.Builder
		for _, ch := range l {
			sb.WriteString(strings.Repeat(string(ch), factor))
		}
		for range factor {
			out = append(out, sb.String())
		}
	}
	return out
}

func age(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return t.Local().Format(time.DateOnly)
}

// errorMessage turns a command error into the text shown to the user.
func errorMessage(err error) string {
	if errors.Is(err, common.ErrUnauthorized) {
		return "session expired, please log in again"
	}
	return common.UserMessage(err)
}
