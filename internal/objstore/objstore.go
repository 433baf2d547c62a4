// Package objstore wraps the S3 API for the two catalog buckets: audio
// sources and artwork images. Objects are keyed by the client-supplied
// filename and stay private until explicitly published.
package objstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Config holds the connection settings for the storage backend.
type Config struct {
	Endpoint   string // optional override for S3-compatible backends
	Region     string
	AccessKey  string
	SecretKey  string
	PublicHost string // host published objects are served from
}

// Client uploads and publishes blobs. Safe for concurrent use.
type Client struct {
	api        *s3.S3
	publicHost string
}

// New builds a Client from the given settings.
func New(cfg Config) (*Client, error) {
	awsCfg := aws.NewConfig().
		WithRegion(cfg.Region).
		WithS3ForcePathStyle(true)
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""))
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create storage session: %w", err)
	}
	return &Client{api: s3.New(sess), publicHost: cfg.PublicHost}, nil
}

// Upload writes data under key in bucket and returns the public URL the
// object will have once published. An existing object with the same key is
// overwritten without warning.
func (c *Client) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.api.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s/%s: %w", bucket, key, err)
	}
	return c.PublicURL(bucket, key), nil
}

// MakePublic marks an uploaded object world-readable.
func (c *Client) MakePublic(ctx context.Context, bucket, key string) error {
	_, err := c.api.PutObjectAclWithContext(ctx, &s3.PutObjectAclInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		ACL:    aws.String(s3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return fmt.Errorf("publish object %s/%s: %w", bucket, key, err)
	}
	return nil
}

// PublicURL returns the address a published object is served from.
func (c *Client) PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://%s/%s/%s", c.publicHost, bucket, key)
}
