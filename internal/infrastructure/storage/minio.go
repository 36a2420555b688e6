package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"codutopia/internal/domain"
)

// MinioStore keeps one bucket per course. Deletes on missing keys
// succeed, which is what the compensation logic relies on.
type MinioStore struct {
	client *minio.Client
}

func NewMinioStore(endpoint, accessKey, secretKey string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{client: client}, nil
}

func (s *MinioStore) CreateBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return domain.NewConflict("Bucket already exists: " + bucket)
	}
	return s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}

// RemoveBucket drains the bucket first; MinIO refuses to drop a
// non-empty one.
func (s *MinioStore) RemoveBucket(ctx context.Context, bucket string) error {
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return obj.Err
		}
		if err := s.client.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return err
		}
	}
	return s.client.RemoveBucket(ctx, bucket)
}

func (s *MinioStore) Put(ctx context.Context, bucket, name string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *MinioStore) Get(ctx context.Context, bucket, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, domain.NewNotFound("Object " + name)
		}
		return nil, err
	}
	return data, nil
}

func (s *MinioStore) Delete(ctx context.Context, bucket, name string) error {
	return s.client.RemoveObject(ctx, bucket, name, minio.RemoveObjectOptions{})
}

func (s *MinioStore) List(ctx context.Context, bucket string) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

func (s *MinioStore) PresignedURL(ctx context.Context, bucket, name string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, bucket, name, time.Hour, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
