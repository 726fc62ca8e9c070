package resources

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/prepadmin/internal/client/client"
	"github.com/dmitrijs2005/prepadmin/internal/client/models"
)

type Users struct {
	doer client.Doer
}

func NewUsers(d client.Doer) *Users { return &Users{doer: d} }

// Me resolves the identity behind the stored token.
func (c *Users) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.doer.Do(ctx, client.Request{Path: "/users/me"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Users) List(ctx context.Context, p models.Page) ([]models.User, error) {
	var out []models.User
	if err := c.doer.Do(ctx, client.Request{Path: "/users", Query: p.Values()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Users) Update(ctx context.Context, id string, u models.UserUpdate) (*models.User, error) {
	var out models.User
	err := c.doer.Do(ctx, client.Request{Method: http.MethodPatch, Path: itemPath("/users", id), Route: "/users/{id}", JSON: u}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
