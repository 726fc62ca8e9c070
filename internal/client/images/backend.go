package images

import (
	"bytes"
	"context"
	"io"
)

type multipartPoster interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// BackendUploader sends images through the API's /images/upload endpoint.
type BackendUploader struct {
	images multipartPoster
}

func NewBackendUploader(images multipartPoster) *BackendUploader {
	return &BackendUploader{images: images}
}

func (u *BackendUploader) Upload(ctx context.Context, f File) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}
	return u.images.Upload(ctx, SanitizeFileName(f.Name), f.ContentType, bytes.NewReader(f.Data))
}
