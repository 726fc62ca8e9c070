package images

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Photo.PNG", "photo.png"},
		{"my cover (1).jpg", "my_cover__1_.jpg"},
		{"/tmp/uploads/Logo.svg", "logo.svg"},
		{`C:\Users\ann\Résumé.jpeg`, "r_sum_.jpeg"},
		{"dir/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.in))
		})
	}
}

func TestFile_Validate(t *testing.T) {
	assert.NoError(t, File{ContentType: "image/png", Data: []byte("x")}.Validate())
	assert.ErrorIs(t, File{ContentType: "application/pdf"}.Validate(), ErrNotImage)
	assert.ErrorIs(t, File{ContentType: "image/jpeg", Data: make([]byte, MaxSize+1)}.Validate(), ErrTooLarge)
	assert.NoError(t, File{ContentType: "image/jpeg", Data: make([]byte, MaxSize)}.Validate())
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()

	png := filepath.Join(dir, "cover.png")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\nrest"), 0o600))
	f, err := OpenFile(png)
	require.NoError(t, err)
	assert.Equal(t, "cover.png", f.Name)
	assert.Equal(t, "image/png", f.ContentType)

	noext := filepath.Join(dir, "cover")
	require.NoError(t, os.WriteFile(noext, []byte("\x89PNG\r\n\x1a\nrest"), 0o600))
	f, err = OpenFile(noext)
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.ContentType, "sniffed from content")

	big := filepath.Join(dir, "big.jpg")
	require.NoError(t, os.WriteFile(big, make([]byte, MaxSize+1), 0o600))
	_, err = OpenFile(big)
	require.ErrorIs(t, err, ErrTooLarge)

	_, err = OpenFile(dir)
	require.Error(t, err)
	_, err = OpenFile(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

type fakePoster struct {
	name, ct string
	data     []byte
	url      string
	calls    int
}

func (f *fakePoster) Upload(_ context.Context, filename, contentType string, r io.Reader) (string, error) {
	f.calls++
	f.name, f.ct = filename, contentType
	f.data, _ = io.ReadAll(r)
	return f.url, nil
}

func TestBackendUploader(t *testing.T) {
	p := &fakePoster{url: "https://cdn/x.png"}
	u := NewBackendUploader(p)

	got, err := u.Upload(context.Background(), File{Name: "My Cover.PNG", ContentType: "image/png", Data: []byte("img")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.png", got)
	assert.Equal(t, "my_cover.png", p.name)
	assert.Equal(t, "image/png", p.ct)
	assert.True(t, bytes.Equal([]byte("img"), p.data))

	_, err = u.Upload(context.Background(), File{Name: "doc.pdf", ContentType: "application/pdf"})
	require.ErrorIs(t, err, ErrNotImage)
	assert.Equal(t, 1, p.calls, "rejected files are not sent")
}
