// SPDX-License-Identifier: MIT

package modelstore

import (
	"bytes"
	"context"
	"io"
	"sort"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioAPI is the subset of minio-go used by MinioStore. GetObject returns
// a plain reader so tests can fake it; wrap a *minio.Client with
// NewMinioStore.
type MinioAPI interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// minioClient adapts *minio.Client to MinioAPI.
type minioClient struct {
	*minio.Client
}

func (c minioClient) GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := c.Client.GetObject(ctx, bucket, key, opts)
	if err != nil {
		return nil, err
	}

	return obj, nil
}

// MinioStore keeps models in a bucket of an S3-compatible service.
type MinioStore struct {
	api    MinioAPI
	bucket string
	prefix string
}

// NewMinioClient connects to endpoint with static credentials.
func NewMinioClient(endpoint, accessKey, secretKey string, secure bool) (*minio.Client, error) {
	c, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, storeErrorf("NewMinioClient", err)
	}

	return c, nil
}

// NewMinioStore returns a store over bucket; prefix is prepended to every key.
func NewMinioStore(client *minio.Client, bucket, prefix string) *MinioStore {
	return NewMinioStoreAPI(minioClient{client}, bucket, prefix)
}

// NewMinioStoreAPI is NewMinioStore over any MinioAPI.
func NewMinioStoreAPI(api MinioAPI, bucket, prefix string) *MinioStore {
	return &MinioStore{api: api, bucket: bucket, prefix: prefix}
}

func isMinioNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code

	return code == "NoSuchKey" || code == "NotFound"
}

// Put uploads data with a known size.
func (s *MinioStore) Put(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return storeErrorf("MinioStore.Put", err)
	}
	_, err := s.api.PutObject(ctx, s.bucket, joinKey(s.prefix, name), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return storeErrorf("MinioStore.Put", err)
	}

	return nil
}

// Get downloads the object for name. minio reports a missing key on the
// first read, so both the call and the read are checked.
func (s *MinioStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, storeErrorf("MinioStore.Get", err)
	}
	obj, err := s.api.GetObject(ctx, s.bucket, joinKey(s.prefix, name), minio.GetObjectOptions{})
	if err == nil {
		defer func() { _ = obj.Close() }()
		var data []byte
		if data, err = io.ReadAll(obj); err == nil {
			return data, nil
		}
	}
	if isMinioNotFound(err) {
		return nil, storeErrorf("MinioStore.Get", ErrNotFound)
	}

	return nil, storeErrorf("MinioStore.Get", err)
}

// Delete removes the object for name.
func (s *MinioStore) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return storeErrorf("MinioStore.Delete", err)
	}
	err := s.api.RemoveObject(ctx, s.bucket, joinKey(s.prefix, name), minio.RemoveObjectOptions{})
	if err != nil && !isMinioNotFound(err) {
		return storeErrorf("MinioStore.Delete", err)
	}

	return nil
}

// List returns the names below prefix.
func (s *MinioStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	for obj := range s.api.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    listKey(s.prefix, prefix),
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, storeErrorf("MinioStore.List", obj.Err)
		}
		if name := trimKey(s.prefix, obj.Key); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names, nil
}
