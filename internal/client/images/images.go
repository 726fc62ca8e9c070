// Package images uploads cover images and returns their public URL.
package images

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MaxSize is the largest accepted image.
const MaxSize = 5 << 20

var (
	ErrNotImage = errors.New("Please select an image file")
	ErrTooLarge = errors.New("Image size must be less than 5MB")
)

// File is an image held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader stores an image and returns the URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// OpenFile reads path, rejecting anything over MaxSize before reading it.
// The content type comes from the extension, or from the first bytes when
// the extension is unknown.
func OpenFile(path string) (File, error) {
	st, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	if st.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}
	if st.Size() > MaxSize {
		return File{}, ErrTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}

	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return File{Name: filepath.Base(path), ContentType: ct, Data: data}, nil
}

// Validate applies the checks every uploader runs before sending anything.
func (f File) Validate() error {
	if !strings.HasPrefix(f.ContentType, "image/") {
		return ErrNotImage
	}
	if len(f.Data) > MaxSize {
		return ErrTooLarge
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

// SanitizeFileName drops any directory part, replaces every character other
// than ASCII letters, digits and dots with '_' and lower-cases the result.
func SanitizeFileName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(unsafeChars.ReplaceAllString(name, "_"))
}
