package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectStorage is the bucket-scoped object store the image lifecycle runs
// against. Implementations: S3 for deployments, Memory for tests and
// credential-less local runs.
type ObjectStorage interface {
	// Put writes data under key, overwriting any existing object
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Delete removes the given keys; missing keys are not an error
	Delete(ctx context.Context, keys ...string) error
	// List returns every key under the given prefix
	List(ctx context.Context, prefix string) ([]string, error)
	// PublicURL resolves a key to its public URL
	PublicURL(key string) string
	// KeyFromURL maps a public URL back to its key; ok is false for URLs
	// that do not belong to this bucket
	KeyFromURL(url string) (key string, ok bool)
}

// S3Storage stores objects in a single S3 bucket
type S3Storage struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
}

func NewS3Storage(region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	var cfg aws.Config
	var err error

	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		// Default credential chain (env vars, ~/.aws/credentials, IAM role)
		cfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(region),
		)
		if err != nil {
			cfg = aws.Config{Region: region}
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		region:  region,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *S3Storage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	})
	return err
}

func (s *S3Storage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
	}

	_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(true),
		},
	})
	return err
}

func (s *S3Storage) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, object := range page.Contents {
			keys = append(keys, aws.ToString(object.Key))
		}
	}

	return keys, nil
}

func (s *S3Storage) PublicURL(key string) string {
	if s.baseURL != "" {
		// CloudFront or custom domain
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Storage) KeyFromURL(url string) (string, bool) {
	if s.baseURL != "" {
		if key, found := strings.CutPrefix(url, s.baseURL+"/"); found {
			return key, true
		}
	}

	// Virtual-hosted style: https://<bucket>.s3.<region>.amazonaws.com/<key>
	hostMarker := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	if key, found := strings.CutPrefix(url, hostMarker); found {
		return key, true
	}

	// Path style: look for the bucket marker in the path
	pathMarker := "/" + s.bucket + "/"
	if idx := strings.Index(url, pathMarker); idx >= 0 {
		return url[idx+len(pathMarker):], true
	}

	return "", false
}
