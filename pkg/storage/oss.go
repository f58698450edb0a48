package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

// OssConfig carries the credentials and addressing for the OSS-backed store.
type OssConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	AccessKeySecret string
}

type ossStore struct {
	client   *oss.Client
	endpoint string
	httpc    *http.Client
}

var _ ObjectStore = (*ossStore)(nil)

// NewOssStore builds an ObjectStore backed by Alibaba Cloud OSS.
func NewOssStore(cfg OssConfig) ObjectStore {
	ossCfg := oss.LoadDefaultConfig().
		WithEndpoint(cfg.Endpoint).
		WithRegion(cfg.Region).
		WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.AccessKeySecret,
			),
		)

	return &ossStore{
		client:   oss.NewClient(ossCfg),
		endpoint: cfg.Endpoint,
		httpc:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *ossStore) Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	req := &oss.PutObjectRequest{
		Bucket: oss.Ptr(bucket),
		Key:    oss.Ptr(key),
		Body:   body,
	}
	if contentType != "" {
		req.ContentType = oss.Ptr(contentType)
	}

	_, err := s.client.PutObject(ctx, req)
	return err
}

func (s *ossStore) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(bucket),
		Key:    oss.Ptr(key),
	})
	if err != nil {
		var serr *oss.ServiceError
		if errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (s *ossStore) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	paginator := s.client.NewListObjectsV2Paginator(&oss.ListObjectsV2Request{
		Bucket: oss.Ptr(bucket),
		Prefix: oss.Ptr(prefix),
	})

	for paginator.HasNext() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}
	return keys, nil
}

func (s *ossStore) Delete(ctx context.Context, bucket string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	objects := make([]oss.DeleteObject, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, oss.DeleteObject{Key: oss.Ptr(key)})
	}

	_, err := s.client.DeleteMultipleObjects(ctx, &oss.DeleteMultipleObjectsRequest{
		Bucket:  oss.Ptr(bucket),
		Objects: objects,
	})
	return err
}

func (s *ossStore) Copy(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	_, err := s.client.CopyObject(ctx, &oss.CopyObjectRequest{
		Bucket:       oss.Ptr(dstBucket),
		Key:          oss.Ptr(dstKey),
		SourceBucket: oss.Ptr(srcBucket),
		SourceKey:    oss.Ptr(srcKey),
	})
	return err
}

func (s *ossStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.%s/%s", bucket, s.endpoint, key)
}

func (s *ossStore) Verify(ctx context.Context, bucket, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.PublicURL(bucket, key), nil)
	if err != nil {
		return err
	}

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("verify object %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("verify object %s: unexpected status %d", key, resp.StatusCode)
	}
	return nil
}
