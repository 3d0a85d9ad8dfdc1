// Package upload validates and stores card image uploads.
package upload

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrTooLarge = errors.New("file too large")
var ErrBadType = errors.New("unsupported image type")

// extByMIME maps accepted sniffed content types to stored extensions. The
// client-supplied filename and Content-Type are never trusted.
var extByMIME = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// Save validates an uploaded image and writes it under dir with a
// collision-resistant uuid filename, returning the stored filename.
func Save(dir string, fh *multipart.FileHeader, maxBytes int64) (string, error) {
	if fh.Size > maxBytes {
		return "", ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Sniff the real content type from the first 512 bytes.
	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}
	ext, ok := extByMIME[http.DetectContentType(head[:n])]
	if !ok {
		return "", ErrBadType
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, io.LimitReader(f, maxBytes)); err != nil {
		os.Remove(out.Name())
		return "", err
	}
	return name, nil
}
