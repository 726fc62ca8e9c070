package resources

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/prepadmin/internal/client/client"
	"github.com/dmitrijs2005/prepadmin/internal/client/models"
)

const (
	templatesPath  = "/templates"
	templatesRoute = "/templates/{id}"
)

type Templates struct {
	doer client.Doer
}

func NewTemplates(d client.Doer) *Templates { return &Templates{doer: d} }

func (c *Templates) List(ctx context.Context, f models.TemplateFilters) ([]models.Template, error) {
	var out []models.Template
	if err := c.doer.Do(ctx, client.Request{Path: templatesPath, Query: f.Values()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Templates) Get(ctx context.Context, id string) (*models.Template, error) {
	var out models.Template
	if err := c.doer.Do(ctx, client.Request{Path: itemPath(templatesPath, id), Route: templatesRoute}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create validates t and posts it.
func (c *Templates) Create(ctx context.Context, t models.Template) (*models.Template, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	var out models.Template
	err := c.doer.Do(ctx, client.Request{Method: http.MethodPost, Path: templatesPath, JSON: t}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update validates t and replaces the stored template with PUT.
func (c *Templates) Update(ctx context.Context, id string, t models.Template) (*models.Template, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	var out models.Template
	err := c.doer.Do(ctx, client.Request{Method: http.MethodPut, Path: itemPath(templatesPath, id), Route: templatesRoute, JSON: t}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Templates) Delete(ctx context.Context, id string) error {
	return c.doer.Do(ctx, client.Request{Method: http.MethodDelete, Path: itemPath(templatesPath, id), Route: templatesRoute}, nil)
}
