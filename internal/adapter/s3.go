// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/go-journal-backup/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/time/rate"
)

const (
	// lastSyncKey holds the RFC 3339 timestamp of the latest successful run.
	lastSyncKey = "sync/last-sync"

	// maxDeleteBatch is the S3 limit of keys per DeleteObjects request.
	maxDeleteBatch = 1000

	sniffLen = 512
)

// s3API is the subset of the S3 client used by the remote store.
type s3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

type S3Config struct {
	Bucket            string
	Region            string
	Endpoint          string
	AccessKeyID       string
	SecretAccessKey   string
	Prefix            string
	UsePathStyle      bool
	RequestTimeout    time.Duration
	RequestsPerSecond int
}

type s3RemoteStore struct {
	client  s3API
	bucket  string
	prefix  string
	timeout time.Duration
	limiter *rate.Limiter
}

// NewS3RemoteStore builds a [RemoteStore] backed by an S3 bucket. Static
// credentials are used when configured, the default AWS credential chain
// otherwise.
func NewS3RemoteStore(ctx context.Context, cfg S3Config) (RemoteStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3RemoteStore(client, cfg), nil
}

func newS3RemoteStore(client s3API, cfg S3Config) *s3RemoteStore {
	store := &s3RemoteStore{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		timeout: cfg.RequestTimeout,
	}
	if cfg.RequestsPerSecond > 0 {
		store.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return store
}

func (s *s3RemoteStore) List(ctx context.Context) ([]Object, error) {
	log := logger.FromContext(ctx)

	var (
		objects []Object
		token   *string
	)
	for {
		out, err := s.listPage(ctx, token)
		if err != nil {
			log.Err(err).Str("func", "s3RemoteStore.List").Msg("error listing objects")
			return nil, fmt.Errorf("list objects: %w", err)
		}

		for _, obj := range out.Contents {
			key, ok := strings.CutPrefix(aws.ToString(obj.Key), s.prefix)
			if !ok || key == "" {
				continue
			}
			objects = append(objects, Object{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}

		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}

	log.Debug().Str("func", "s3RemoteStore.List").Int("objects", len(objects)).Msg("listed remote objects")
	return objects, nil
}

func (s *s3RemoteStore) listPage(ctx context.Context, token *string) (*s3.ListObjectsV2Output, error) {
	ctx, cancel, err := s.requestContext(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:            aws.String(s.bucket),
		Prefix:            aws.String(s.prefix),
		ContinuationToken: token,
	})
	return out, mapS3Error(err)
}

func (s *s3RemoteStore) Upload(ctx context.Context, req UploadRequest) error {
	log := logger.FromContext(ctx)

	body, contentType, err := sniffContentType(req.Body, req.ContentType)
	if err != nil {
		return fmt.Errorf("read upload body: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.prefix + req.Key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if req.Size >= 0 {
		input.ContentLength = aws.Int64(req.Size)
	}

	ctx, cancel, err := s.requestContext(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if _, err = s.client.PutObject(ctx, input); err != nil {
		err = mapS3Error(err)
		log.Err(err).Str("func", "s3RemoteStore.Upload").Str("key", req.Key).Msg("error uploading object")
		return fmt.Errorf("put object %q: %w", req.Key, err)
	}

	return nil
}

func (s *s3RemoteStore) Download(ctx context.Context, key string, dst io.Writer) error {
	log := logger.FromContext(ctx)

	ctx, cancel, err := s.requestContext(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + key),
	})
	if err != nil {
		err = mapS3Error(err)
		log.Err(err).Str("func", "s3RemoteStore.Download").Str("key", key).Msg("error getting object")
		return fmt.Errorf("get object %q: %w", key, err)
	}
	defer out.Body.Close()

	if _, err = io.Copy(dst, out.Body); err != nil {
		log.Err(err).Str("func", "s3RemoteStore.Download").Str("key", key).Msg("error reading object body")
		return fmt.Errorf("read object %q: %w", key, err)
	}

	return nil
}

func (s *s3RemoteStore) Delete(ctx context.Context, keys []string) error {
	log := logger.FromContext(ctx)

	for start := 0; start < len(keys); start += maxDeleteBatch {
		end := min(start+maxDeleteBatch, len(keys))

		ids := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			ids = append(ids, types.ObjectIdentifier{Key: aws.String(s.prefix + key)})
		}

		if err := s.deleteBatch(ctx, ids); err != nil {
			log.Err(err).Str("func", "s3RemoteStore.Delete").Int("batch_size", len(ids)).Msg("error deleting objects")
			return fmt.Errorf("delete objects: %w", err)
		}
	}

	return nil
}

func (s *s3RemoteStore) deleteBatch(ctx context.Context, ids []types.ObjectIdentifier) error {
	ctx, cancel, err := s.requestContext(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return mapS3Error(err)
	}

	if len(out.Errors) > 0 {
		first := out.Errors[0]
		return fmt.Errorf("%w: %d keys not deleted, first %q: %s %s", ErrRemote, len(out.Errors),
			strings.TrimPrefix(aws.ToString(first.Key), s.prefix), aws.ToString(first.Code), aws.ToString(first.Message))
	}

	return nil
}

func (s *s3RemoteStore) SetLastSyncTime(ctx context.Context, t time.Time) error {
	body := []byte(t.UTC().Format(time.RFC3339Nano))

	return s.Upload(ctx, UploadRequest{
		Key:         lastSyncKey,
		Body:        bytes.NewReader(body),
		Size:        int64(len(body)),
		ContentType: "text/plain",
	})
}

func (s *s3RemoteStore) LastSyncTime(ctx context.Context) (time.Time, error) {
	var buf bytes.Buffer
	if err := s.Download(ctx, lastSyncKey, &buf); err != nil {
		if errors.Is(err, ErrNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(buf.String()))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse last sync time: %w", err)
	}

	return t, nil
}

// requestContext waits for the rate limiter and bounds the request with the
// configured timeout.
func (s *s3RemoteStore) requestContext(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if s.timeout <= 0 {
		ctx, cancel := context.WithCancel(ctx)
		return ctx, cancel, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return ctx, cancel, nil
}

// sniffContentType detects the MIME type of body from its first bytes when
// contentType is empty. Seekable bodies are rewound, others are re-joined
// with the consumed head.
func sniffContentType(body io.Reader, contentType string) (io.Reader, string, error) {
	if contentType != "" {
		return body, contentType, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, "", err
	}
	head = head[:n]
	contentType = mimetype.Detect(head).String()

	if seeker, ok := body.(io.Seeker); ok {
		if _, err = seeker.Seek(0, io.SeekStart); err != nil {
			return nil, "", err
		}
		return body, contentType, nil
	}

	return io.MultiReader(bytes.NewReader(head), body), contentType, nil
}
