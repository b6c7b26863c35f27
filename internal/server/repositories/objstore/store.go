// Package objstore turns an S3-compatible bucket into a small JSON document
// store with conditional writes, used by the s3:// repository backend.
package objstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/zkvault/internal/common"
)

// ErrPreconditionFailed means a conditional write lost: the object already
// existed (create) or changed since it was read (update).
var ErrPreconditionFailed = errors.New("precondition failed")

// API is the part of *s3.Client the store needs.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Condition guards a write.
type Condition struct {
	ifAbsent bool
	ifMatch  string
}

// IfAbsent makes the write fail if the key exists.
func IfAbsent() Condition { return Condition{ifAbsent: true} }

// IfMatch makes the write fail unless the stored ETag equals etag.
func IfMatch(etag string) Condition { return Condition{ifMatch: etag} }

type Store struct {
	api    API
	bucket string
}

func New(api API, bucket string) *Store {
	return &Store{api: api, bucket: bucket}
}

func (s *Store) Bucket() string { return s.bucket }

// PutJSON marshals v and writes it under key.
func (s *Store) PutJSON(ctx context.Context, key string, v any, cond Condition) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}
	if cond.ifAbsent {
		in.IfNoneMatch = aws.String("*")
	}
	if cond.ifMatch != "" {
		in.IfMatch = aws.String(cond.ifMatch)
	}

	if _, err := s.api.PutObject(ctx, in); err != nil {
		return mapError(err)
	}
	return nil
}

// GetJSON reads key into v and returns the object's ETag.
func (s *Store) GetJSON(ctx context.Context, key string, v any) (string, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", mapError(err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("s3 error: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return "", fmt.Errorf("s3 error: corrupt object %s: %w", key, err)
	}
	return aws.ToString(out.ETag), nil
}

// Head returns the ETag of key.
func (s *Store) Head(ctx context.Context, key string) (string, error) {
	out, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", mapError(err)
	}
	return aws.ToString(out.ETag), nil
}

// Delete removes key, optionally only if its ETag still matches.
func (s *Store) Delete(ctx context.Context, key string, cond Condition) error {
	in := &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if cond.ifMatch != "" {
		in.IfMatch = aws.String(cond.ifMatch)
	}
	if _, err := s.api.DeleteObject(ctx, in); err != nil {
		return mapError(err)
	}
	return nil
}

// Keys lists every key under prefix, following continuation tokens.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	p := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	var keys []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

func mapError(err error) error {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return common.ErrNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return common.ErrNotFound
		case "PreconditionFailed", "ConditionalRequestConflict":
			return ErrPreconditionFailed
		}
	}
	return fmt.Errorf("s3 error: %w", err)
}

// Ping checks that the bucket is reachable with the configured credentials.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}
