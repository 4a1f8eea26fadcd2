// SPDX-License-Identifier: MIT
package modelstore_test

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/minio/minio-go/v7"
)

// objects is an in-memory bucket shared by the S3 and MinIO fakes.
type objects struct {
	mu      sync.Mutex
	data    map[string][]byte
	uploads map[string]map[int32][]byte
}

func newObjects() *objects {
	return &objects{data: make(map[string][]byte), uploads: make(map[string]map[int32][]byte)}
}

func (o *objects) put(key string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.data[key] = b

	return nil
}

func (o *objects) get(key string) ([]byte, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	b, ok := o.data[key]

	return b, ok
}

func (o *objects) remove(key string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.data, key)
}

func (o *objects) keys(prefix string) []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []string
	for k := range o.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)

	return out
}

// fakeS3 pages listings two keys at a time.
type fakeS3 struct{ *objects }

func (f fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return &s3.PutObjectOutput{}, f.put(aws.ToString(in.Key), in.Body)
}

func (f fakeS3) CreateMultipartUpload(_ context.Context, in *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := aws.ToString(in.Key)
	f.uploads[id] = make(map[int32][]byte)

	return &s3.CreateMultipartUploadOutput{UploadId: aws.String(id)}, nil
}

func (f fakeS3) UploadPart(_ context.Context, in *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads[aws.ToString(in.UploadId)][aws.ToInt32(in.PartNumber)] = b

	return &s3.UploadPartOutput{ETag: aws.String(strconv.Itoa(int(aws.ToInt32(in.PartNumber))))}, nil
}

func (f fakeS3) CompleteMultipartUpload(_ context.Context, in *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := aws.ToString(in.UploadId)
	parts := f.uploads[id]
	var buf bytes.Buffer
	for n := int32(1); n <= int32(len(parts)); n++ {
		buf.Write(parts[n])
	}
	delete(f.uploads, id)
	f.data[aws.ToString(in.Key)] = buf.Bytes()

	return &s3.CompleteMultipartUploadOutput{}, nil
}

func (f fakeS3) AbortMultipartUpload(_ context.Context, in *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.uploads, aws.ToString(in.UploadId))

	return &s3.AbortMultipartUploadOutput{}, nil
}

func (f fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.get(aws.ToString(in.Key))
	if !ok {
		return nil, &types.NoSuchKey{}
	}

	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.remove(aws.ToString(in.Key))

	return &s3.DeleteObjectOutput{}, nil
}

func (f fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	const pageSize = 2
	keys := f.keys(aws.ToString(in.Prefix))
	start := 0
	if in.ContinuationToken != nil {
		start, _ = strconv.Atoi(*in.ContinuationToken)
	}
	end := min(start+pageSize, len(keys))
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}

	return out, nil
}

// fakeMinio reports missing keys the way minio-go does.
type fakeMinio struct{ *objects }

func (f fakeMinio) PutObject(_ context.Context, _, key string, r io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	return minio.UploadInfo{Key: key}, f.put(key, r)
}

func (f fakeMinio) GetObject(_ context.Context, _, key string, _ minio.GetObjectOptions) (io.ReadCloser, error) {
	b, ok := f.get(key)
	if !ok {
		return nil, minio.ErrorResponse{Code: "NoSuchKey", Key: key}
	}

	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f fakeMinio) RemoveObject(_ context.Context, _, key string, _ minio.RemoveObjectOptions) error {
	f.remove(key)

	return nil
}

func (f fakeMinio) ListObjects(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	keys := f.keys(opts.Prefix)
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)

	return ch
}
