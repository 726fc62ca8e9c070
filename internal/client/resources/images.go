package resources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/dmitrijs2005/prepadmin/internal/client/client"
	"github.com/dmitrijs2005/prepadmin/internal/client/models"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

type Images struct {
	doer client.Doer
}

func NewImages(d client.Doer) *Images { return &Images{doer: d} }

// Upload posts the image as the "file" part of a multipart form and returns
// the URL the backend stored it under.
func (c *Images) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var out models.UploadedImage
	err = c.doer.Do(ctx, client.Request{
		Method:      http.MethodPost,
		Path:        "/images/upload",
		Body:        &buf,
		ContentType: mw.FormDataContentType(),
	}, &out)
	if err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("upload response has no url")
	}
	return out.URL, nil
}
