package s3

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type ConnectionInfo struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	UseSSL    bool
}

// S3 is the archive inbox. Bucket is used for bare keys.
type S3 struct {
	Client *minio.Client
	Bucket string
}

// endpointHost strips a scheme; minio.New wants host[:port].
func endpointHost(endpoint string) (host string, secure bool, hadScheme bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), true, true
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), false, true
	}
	return endpoint, false, false
}

func NewConnection(info ConnectionInfo) (*S3, error) {
	host, secure, hadScheme := endpointHost(strings.TrimRight(info.Endpoint, "/"))
	if !hadScheme {
		secure = info.UseSSL
	}
	if host == "" {
		return nil, fmt.Errorf("empty s3 endpoint")
	}

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(info.AccessKey, info.SecretKey, ""),
		Secure: secure,
		Region: info.Region,
	})
	if err != nil {
		return nil, err
	}

	return &S3{Client: client, Bucket: info.Bucket}, nil
}

// Check reports whether the inbox bucket is reachable.
func (s *S3) Check(ctx context.Context) error {
	if s == nil || s.Client == nil {
		return fmt.Errorf("s3 not initialized")
	}
	ok, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return fmt.Errorf("s3 bucket check failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("s3 bucket %q not found", s.Bucket)
	}
	return nil
}
