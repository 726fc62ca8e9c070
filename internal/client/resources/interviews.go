package resources

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/prepadmin/internal/client/client"
	"github.com/dmitrijs2005/prepadmin/internal/client/models"
)

const (
	interviewsPath  = "/interviews"
	interviewsRoute = "/interviews/{id}"
)

type Interviews struct {
	doer client.Doer
}

func NewInterviews(d client.Doer) *Interviews { return &Interviews{doer: d} }

func (c *Interviews) List(ctx context.Context, f models.InterviewFilters) ([]models.Interview, error) {
	var out []models.Interview
	if err := c.doer.Do(ctx, client.Request{Path: interviewsPath, Query: f.Values()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Interviews) Get(ctx context.Context, id string) (*models.Interview, error) {
	var out models.Interview
	if err := c.doer.Do(ctx, client.Request{Path: itemPath(interviewsPath, id), Route: interviewsRoute}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create starts an interview for lessonID on behalf of the current user.
func (c *Interviews) Create(ctx context.Context, lessonID string) (*models.Interview, error) {
	var out models.Interview
	err := c.doer.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   interviewsPath,
		JSON:   map[string]string{"lesson_id": lessonID},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Interviews) Update(ctx context.Context, id string, u models.InterviewUpdate) (*models.Interview, error) {
	var out models.Interview
	err := c.doer.Do(ctx, client.Request{Method: http.MethodPatch, Path: itemPath(interviewsPath, id), Route: interviewsRoute, JSON: u}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Interviews) Delete(ctx context.Context, id string) error {
	return c.doer.Do(ctx, client.Request{Method: http.MethodDelete, Path: itemPath(interviewsPath, id), Route: interviewsRoute}, nil)
}

func (c *Interviews) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	var out models.Embedding
	err := c.doer.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   interviewsPath + "/embeddings",
		JSON:   map[string]string{"text": text},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Embedding, nil
}

func (c *Interviews) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	var out models.Embeddings
	err := c.doer.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   interviewsPath + "/embeddings/batch",
		JSON:   map[string][]string{"texts": texts},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Embeddings, nil
}
