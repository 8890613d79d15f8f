package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
)

// 商品画像のオブジェクトストレージ（GCS）。
//
// バケットに allUsers: Storage Object Viewer が付いている前提で、
// アップロード後のオブジェクトはそのまま公開URLで読める。
type GCSImageStore struct {
	client *gcs.Client
	bucket string

	// 空なら https://storage.googleapis.com
	publicBaseURL string
}

func NewGCSImageStore(client *gcs.Client, bucket string) (*GCSImageStore, error) {
	if client == nil {
		return nil, errors.New("storage client is nil")
	}
	b := strings.TrimSpace(bucket)
	if b == "" {
		return nil, errors.New("bucket is empty")
	}
	return &GCSImageStore{
		client:        client,
		bucket:        b,
		publicBaseURL: "https://storage.googleapis.com",
	}, nil
}

func (s *GCSImageStore) Upload(ctx context.Context, key string, contentType string, data []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("object key is empty")
	}

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (s *GCSImageStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, url.PathEscape(key))
}
