package utils

import (
	"log"
	"mime/multipart"
	"path"
	"path/filepath"
)

// Uploader stores proof and report images. With R2 credentials present it
// uploads to object storage and returns the CDN URL; otherwise it falls back
// to the local uploads/ directory served statically by the app.
type Uploader struct {
	useR2 bool
}

func NewUploader() (*Uploader, error) {
	if R2Configured() {
		if err := InitR2(); err != nil {
			return nil, err
		}
		log.Println("Uploads: R2 object storage")
		return &Uploader{useR2: true}, nil
	}

	if err := EnsureUploadDir(); err != nil {
		return nil, err
	}
	log.Println("Uploads: local uploads/ directory (R2 not configured)")
	return &Uploader{}, nil
}

func (u *Uploader) Upload(fh *multipart.FileHeader, key string) (string, error) {
	if u.useR2 {
		return UploadFileToR2(fh, key)
	}

	dest := filepath.Join("uploads", filepath.FromSlash(key))
	if err := SaveFile(fh, dest); err != nil {
		return "", err
	}
	return "/" + path.Join("uploads", key), nil
}
