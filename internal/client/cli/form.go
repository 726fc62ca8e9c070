package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/prepadmin/internal/client/client"
	"github.com/dmitrijs2005/prepadmin/internal/client/images"
)

// form walks the operator through a record one field at a time. Each field
// shows its current value; a blank answer keeps it. The first error stops
// the remaining prompts.
type form struct {
	a   *App
	err error
}

func (a *App) form() *form { return &form{a: a} }

func (f *form) text(label string, dst *string) {
	if f.err != nil {
		return
	}
	*dst, f.err = editText(f.a.reader, f.a.out, label, *dst)
}

func (f *form) choice(label string, dst *string, options []string) {
	if f.err != nil {
		return
	}
	*dst, f.err = editChoice(f.a.reader, f.a.out, label, *dst, options)
}

func (f *form) multiline(label string, dst *string) {
	if f.err != nil {
		return
	}
	*dst, f.err = editMultiline(f.a.reader, f.a.out, label, *dst)
}

func (f *form) number(label string, dst *int) {
	if f.err != nil {
		return
	}
	cur := ""
	if *dst != 0 {
		cur = strconv.Itoa(*dst)
	}
	v, err := editText(f.a.reader, f.a.out, label, cur)
	if err != nil {
		f.err = err
		return
	}
	if v == "" {
		*dst = 0
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		f.err = errors.New(label + " must be a non-negative number")
		return
	}
	*dst = n
}

// image accepts either a URL or the path of a local file, which is uploaded
// and replaced by the URL it got.
func (f *form) image(ctx context.Context, dst *string) {
	if f.err != nil {
		return
	}
	v, err := editText(f.a.reader, f.a.out, "Cover image (URL or path to an image file)", *dst)
	if err != nil {
		f.err = err
		return
	}
	if v == *dst || v == "" || strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		*dst = v
		return
	}
	url, err := f.a.uploadFile(ctx, v)
	if err != nil {
		f.err = err
		return
	}
	printlnFn("Uploaded", url)
	*dst = url
}

// uploadFile validates and uploads the image at path.
func (a *App) uploadFile(ctx context.Context, path string) (string, error) {
	file, err := images.OpenFile(path)
	if err != nil {
		if errors.Is(err, images.ErrTooLarge) {
			return "", err
		}
		return "", errors.New("cannot read " + path + ": " + err.Error())
	}
	if err := file.Validate(); err != nil {
		return "", err
	}
	url, err := a.uploader.Upload(ctx, file)
	if err != nil {
		a.log.Warn(ctx, "image upload failed", "file", file.Name, "error", err)
		return "", failed(err, msgUploadImage)
	}
	return url, nil
}

// failed turns err into the message the operator sees, using fallback when
// there is neither a validation message nor a backend detail.
func failed(err error, fallback string) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return errors.New(client.ErrorDetail(err, fallback))
}
