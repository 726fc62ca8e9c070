package api

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrijs2005/prepadmin/internal/client/images"
	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type storedImage struct {
	contentType string
	data        []byte
}

type imageStore struct {
	mu    sync.RWMutex
	files map[string]storedImage
}

func newImageStore() *imageStore {
	return &imageStore{files: make(map[string]storedImage)}
}

// UploadImage accepts a multipart "file" part holding an image of at most
// images.MaxSize bytes and returns the URL it is served from.
func (a *API) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, images.MaxSize+1<<20)
	if err := r.ParseMultipartForm(images.MaxSize + 1<<20); err != nil {
		writeDetail(w, http.StatusRequestEntityTooLarge, images.ErrTooLarge.Error())
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeValidation(w, []fieldError{missing("file")})
		return
	}
	defer f.Close()

	ct := hdr.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		writeDetail(w, http.StatusBadRequest, "File must be an image")
		return
	}
	data, err := io.ReadAll(io.LimitReader(f, images.MaxSize+1))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Could not read upload")
		return
	}
	if len(data) > images.MaxSize {
		writeDetail(w, http.StatusRequestEntityTooLarge, images.ErrTooLarge.Error())
		return
	}

	name := uuid.NewString() + "-" + images.SanitizeFileName(hdr.Filename)
	a.images.mu.Lock()
	a.images.files[name] = storedImage{contentType: ct, data: data}
	a.images.mu.Unlock()

	a.log.Info(r.Context(), "image stored", "name", name, "bytes", len(data))
	writeJSON(w, http.StatusOK, models.UploadedImage{URL: a.imageURL(r, name)})
}

func (a *API) imageURL(r *http.Request, name string) string {
	if a.publicURL != "" {
		return strings.TrimRight(a.publicURL, "/") + "/images/" + name
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "/upload") + "/" + name
}

func (a *API) GetImage(w http.ResponseWriter, r *http.Request) {
	a.images.mu.RLock()
	img, ok := a.images.files[chi.URLParam(r, "name")]
	a.images.mu.RUnlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Image not found")
		return
	}
	w.Header().Set("Content-Type", img.contentType)
	_, _ = w.Write(img.data)
}
