package resources

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/prepadmin/internal/client/client"
	"github.com/dmitrijs2005/prepadmin/internal/client/models"
)

const (
	lessonsPath  = "/lessons"
	lessonsRoute = "/lessons/{id}"
)

type Lessons struct {
	doer client.Doer
}

func NewLessons(d client.Doer) *Lessons { return &Lessons{doer: d} }

func (c *Lessons) List(ctx context.Context, p models.Page) ([]models.Lesson, error) {
	var out []models.Lesson
	if err := c.doer.Do(ctx, client.Request{Path: lessonsPath, Query: p.Values()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Lessons) Get(ctx context.Context, id string) (*models.Lesson, error) {
	var out models.Lesson
	if err := c.doer.Do(ctx, client.Request{Path: itemPath(lessonsPath, id), Route: lessonsRoute}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Lessons) Create(ctx context.Context, l models.Lesson) (*models.Lesson, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	var out models.Lesson
	if err := c.doer.Do(ctx, client.Request{Method: http.MethodPost, Path: lessonsPath, JSON: l}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends the whole lesson with PATCH.
func (c *Lessons) Update(ctx context.Context, id string, l models.Lesson) (*models.Lesson, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	var out models.Lesson
	err := c.doer.Do(ctx, client.Request{Method: http.MethodPatch, Path: itemPath(lessonsPath, id), Route: lessonsRoute, JSON: l}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Lessons) Delete(ctx context.Context, id string) error {
	return c.doer.Do(ctx, client.Request{Method: http.MethodDelete, Path: itemPath(lessonsPath, id), Route: lessonsRoute}, nil)
}
