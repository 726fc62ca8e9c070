package models

// UploadedImage is the response of POST /images/upload.
type UploadedImage struct {
	URL string `json:"url"`
}
