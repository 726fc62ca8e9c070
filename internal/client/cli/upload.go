package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/prepadmin/internal/client/router"
)

// Upload sends a local image and prints the URL to paste into a template or
// lesson. It needs the same access as the editors.
func (a *App) Upload(ctx context.Context, path string) error {
	if m := a.router.Resolve(router.PathHome); m.Redirected() || m.Decision != router.RenderContent {
		a.explain(m)
		return nil
	}
	url, err := a.uploadFile(ctx, path)
	if err != nil {
		return err
	}
	printlnFn("Uploaded:", url)
	return nil
}

// Metrics prints the request counters collected this session in the
// Prometheus text format.
func (a *App) Metrics(ctx context.Context) error {
	var b strings.Builder
	if err := a.metrics.Write(&b); err != nil {
		return err
	}
	printlnFn(strings.TrimRight(b.String(), "\n"))
	return nil
}
