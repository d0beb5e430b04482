package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bereal/internal/common"
)

// promptAuthorizer asks for reminder permission on the terminal.
type promptAuthorizer struct {
	app *App
}

func (p *promptAuthorizer) RequestAuthorization(context.Context) (bool, error) {
	return Confirm(p.app.reader, "Allow BeReal to send you a daily reminder?", p.app.out)
}

// Notifications shows the reminder settings, or turns reminders on or off.
func (a *App) Notifications(ctx context.Context, arg string) error {
	switch arg {
	case "":
		return a.showReminders(ctx)
	case "on", "off":
		if err := a.reminders.SetEnabled(ctx, arg == "on"); err != nil {
			a.sayError(err)
			return err
		}
		return a.showReminders(ctx)
	}

	err := common.InputError("usage: notifications [on|off]")
	a.sayError(err)
	return err
}

func (a *App) showReminders(ctx context.Context) error {
	a.say("Notifications:", a.reminders.State())

	pending, err := a.reminders.Pending(ctx)
	if err != nil {
		a.sayError(err)
		return err
	}
	for _, n := range pending {
		a.say(fmt.Sprintf("Next reminder: %s", n.FireAt.Local().Format(time.DateTime)))
	}
	return nil
}

// Tap opens the latest delivered reminder, which leads to the post flow.
func (a *App) Tap(ctx context.Context) error {
	n, err := a.reminders.OpenLatest(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		a.say("No reminder to open")
		return nil
	}
	if err != nil {
		a.sayError(err)
		return err
	}

	a.say("Opened:", n.Title)
	return nil
}
