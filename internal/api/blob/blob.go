// Package blob stores uploaded resumes in S3 and hands back their public URL.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	pdfMIME    = "application/pdf"
	resumesDir = "resumes"
)

// S3API is the subset of the S3 client used here
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Config struct {
	Region   string
	Bucket   string
	Endpoint string
	// PublicBaseURL prefixes object keys in returned URLs. Defaults to the
	// bucket's virtual-hosted S3 address.
	PublicBaseURL string
	MaxBytes      int64
}

// Object describes a stored upload
type Object struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type S3Store struct {
	client   S3API
	bucket   string
	baseURL  string
	maxBytes int64
}

// NewS3Store builds an S3 client from the default AWS credential chain.
// A non-empty Endpoint switches to path-style addressing for S3-compatible
// servers such as MinIO.
func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3StoreWithClient(client, cfg), nil
}

func NewS3StoreWithClient(client S3API, cfg Config) *S3Store {
	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &S3Store{
		client:   client,
		bucket:   cfg.Bucket,
		baseURL:  baseURL,
		maxBytes: cfg.MaxBytes,
	}
}

// PutResume stores a PDF of at most maxBytes under resumes/<uuid>.pdf.
// Oversized or non-PDF content fails validation on field "file".
func (s *S3Store) PutResume(ctx context.Context, data []byte) (*Object, error) {
	if len(data) == 0 {
		return nil, domain.FieldError("file", "No file uploaded")
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, domain.FieldError("file", fmt.Sprintf("File size must be less than %dMB", s.maxBytes>>20))
	}
	if !mimetype.Detect(data).Is(pdfMIME) {
		return nil, domain.FieldError("file", "Only PDF files are allowed")
	}

	key := fmt.Sprintf("%s/%s.pdf", resumesDir, uuid.New().String())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(pdfMIME),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload resume: %w", err)
	}

	return &Object{
		URL: s.baseURL + "/" + key,
		Key: key,
	}, nil
}
