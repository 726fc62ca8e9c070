package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/dmitrijs2005/prepadmin/internal/client/views"
)

const pathUsers = "/admin/users"

// Users lists accounts; skip=N and limit=N page through them.
func (a *App) Users(ctx context.Context, args []string) error {
	p, err := models.ParsePage(args)
	if err != nil {
		return err
	}
	if _, ok := a.open(pathUsers); !ok {
		return nil
	}
	return a.listUsers(ctx, p)
}

func (a *App) userView() *views.ListView[models.Page, models.User] {
	if a.users == nil {
		a.users = views.NewListView[models.Page, models.User](a.res.Users.List, msgFetchUsers)
	}
	return a.users
}

func (a *App) userPage() models.Page {
	if a.users == nil {
		return models.Page{}
	}
	return a.users.Snapshot().Filter
}

func (a *App) listUsers(ctx context.Context, p models.Page) error {
	v := a.userView()
	if err := v.Load(ctx, p); err != nil {
		if errors.Is(err, views.ErrSuperseded) || errors.Is(err, views.ErrClosed) {
			return nil
		}
		return errors.New(v.Snapshot().Err)
	}

	items := v.Snapshot().Items
	if len(items) == 0 {
		printlnFn("No users found.")
		return nil
	}
	rows := make([][]string, 0, len(items))
	for _, u := range items {
		sub := u.SubscriptionStatus
		if sub == "" {
			sub = "-"
		}
		rows = append(rows, []string{u.ID, u.Email, u.FullName, strconv.FormatBool(u.IsAdmin), sub})
	}
	printTable([]string{"ID", "EMAIL", "NAME", "ADMIN", "SUBSCRIPTION"}, rows)
	return nil
}
