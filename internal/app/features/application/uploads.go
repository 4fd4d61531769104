// internal/app/features/application/uploads.go
package application

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadSaver stores company photo uploads under the shared upload
// directory served by the portal.
type UploadSaver struct {
	// Dir is the filesystem directory uploads are written to.
	// URLPrefix is the web path stored on the member record, e.g.
	// "/uploads".
	Dir       string
	URLPrefix string
	Log       *zap.Logger
}

func NewUploadSaver(dir, urlPrefix string, logger *zap.Logger) *UploadSaver {
	return &UploadSaver{
		Dir:       dir,
		URLPrefix: strings.TrimRight(urlPrefix, "/"),
		Log:       logger,
	}
}

// SavePhotos stores every photo part of a multipart request and returns
// the web paths of the files that stored successfully. Failed parts are
// logged and skipped; a JSON request simply yields no photos.
func (u *UploadSaver) SavePhotos(r *http.Request) []string {
	if r.MultipartForm == nil {
		return nil
	}

	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		files = r.MultipartForm.File["photos[]"]
	}
	if len(files) == 0 {
		return nil
	}

	if err := os.MkdirAll(u.Dir, 0o775); err != nil {
		u.Log.Error("create upload directory", zap.Error(err))
		return nil
	}

	var stored []string
	for _, fh := range files {
		if fh.Filename == "" {
			continue
		}
		webPath, err := u.saveOne(fh)
		if err != nil {
			u.Log.Warn("store uploaded photo",
				zap.String("filename", fh.Filename), zap.Error(err))
			continue
		}
		stored = append(stored, webPath)
	}
	return stored
}

func (u *UploadSaver) saveOne(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	// Server-assigned name; client filenames never reach the disk.
	name := "company_app_" + uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(u.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return u.URLPrefix + "/" + name, nil
}
