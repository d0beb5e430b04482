package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bereal/internal/client/services"
	"github.com/dmitrijs2005/bereal/internal/common"
)

// readFile is a test seam for loading the photo.
var readFile = os.ReadFile

// Post asks for a photo file and a caption and shares them. The form keeps
// its values until a post succeeds, so a failed attempt can be retried.
func (a *App) Post(ctx context.Context) error {
	u := a.authService.Current()
	if u == nil {
		a.say("Log in to post")
		return common.ErrNotLoggedIn
	}

	a.say("Capture a moment: pick a photo and add a caption.")

	path, err := GetWithDefault(a.reader, "Photo file", a.form.imagePath, a.out)
	if err != nil {
		return err
	}
	a.form.imagePath = path

	caption, err := GetWithDefault(a.reader, "Caption", a.form.caption, a.out)
	if err != nil {
		return err
	}
	a.form.caption = caption

	var data []byte
	if path != "" {
		data, err = readFile(path)
		if err != nil {
			err = common.InputError(fmt.Sprintf("cannot read %s: %v", path, err))
			a.sayError(err)
			return err
		}
	}

	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	_, err = a.feedService.CreatePost(rctx, data, caption, u)
	switch {
	case errors.Is(err, services.ErrLastPostedNotUpdated):
		a.form = postForm{}
		a.say("Posted, but your feed stays locked: " + errorMessage(err))
		return err
	case err != nil:
		a.sayError(err)
		return err
	}

	a.form = postForm{}
	a.say("Success!")
	return a.Feed(ctx)
}
