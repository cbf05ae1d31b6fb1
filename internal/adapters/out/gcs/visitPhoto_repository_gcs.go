// internal/adapters/out/gcs/visitPhoto_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// GCS-based implementation of usecase.VisitPhotoStorePort.
//
// - 写真本体は "visit_photos/<visitID>/<fileName>" に保存する
// - 公開 URL は https://storage.googleapis.com/<bucket>/<object> 形式
type VisitPhotoRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

func NewVisitPhotoRepositoryGCS(client *storage.Client, bucket string) *VisitPhotoRepositoryGCS {
	return &VisitPhotoRepositoryGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
	}
}

func (r *VisitPhotoRepositoryGCS) effectiveBucket() (string, error) {
	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		return "", errors.New("VisitPhotoRepositoryGCS: bucket is empty")
	}
	return b, nil
}

// Upload stores one photo and returns its public URL.
func (r *VisitPhotoRepositoryGCS) Upload(ctx context.Context, visitID, filename, contentType string, src io.Reader) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("VisitPhotoRepositoryGCS: nil storage client")
	}
	bucket, err := r.effectiveBucket()
	if err != nil {
		return "", err
	}

	visitID = strings.TrimSpace(visitID)
	if visitID == "" {
		return "", errors.New("VisitPhotoRepositoryGCS: visitID is empty")
	}
	filename = sanitizeObjectName(filename)
	if filename == "" {
		// クライアントがファイル名を送らないケースもあるので時刻で補う
		filename = fmt.Sprintf("photo-%d.jpg", time.Now().UTC().UnixNano())
	}

	obj := path.Join("visit_photos", visitID, filename)

	w := r.Client.Bucket(bucket).Object(obj).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	w.Metadata = map[string]string{
		"visit_id":  visitID,
		"file_name": filename,
	}

	if _, err := io.Copy(w, src); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return gcsPublicURL(bucket, obj), nil
}

// =======================
// Helpers
// =======================

func sanitizeObjectName(name string) string {
	name = strings.TrimSpace(name)
	// パス区切りを落としてオブジェクト名の最終要素だけ残す
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

func gcsPublicURL(bucket, objectPath string) string {
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", strings.TrimSpace(bucket), obj)
}
