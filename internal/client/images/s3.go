package images

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/prepadmin/internal/netx"
	"github.com/google/uuid"
)

// PresignExpiry bounds how long a signed upload URL stays valid.
const PresignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type presigner interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Options configures S3Uploader. BaseEndpoint targets S3-compatible
// storage such as MinIO and switches to path-style addressing.
type S3Options struct {
	Region        string
	Bucket        string
	BaseEndpoint  string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// S3Uploader uploads in two steps: presign a PUT, then send the bytes to the
// signed URL.
type S3Uploader struct {
	presign   presigner
	http      netx.HTTPClient
	bucket    string
	publicURL string
	now       func() time.Time
	newID     func() string
}

func NewS3Uploader(ctx context.Context, o S3Options, httpClient netx.HTTPClient) (*S3Uploader, error) {
	if o.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is not configured")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(o.Region)}
	if o.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")))
	}
	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	c := newS3ClientFromConfig(cfg, func(so *s3.Options) {
		if o.BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.BaseEndpoint)
			so.UsePathStyle = true
		}
	})

	public := strings.TrimRight(o.PublicBaseURL, "/")
	if public == "" {
		if o.BaseEndpoint != "" {
			public = strings.TrimRight(o.BaseEndpoint, "/") + "/" + o.Bucket
		} else {
			public = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", o.Bucket, o.Region)
		}
	}

	return &S3Uploader{
		presign:   s3.NewPresignClient(c),
		http:      httpClient,
		bucket:    o.Bucket,
		publicURL: public,
		now:       time.Now,
		newID:     uuid.NewString,
	}, nil
}

// storageKey is images/YYYY/M/D/<uuid>-<sanitized name>.
func (u *S3Uploader) storageKey(name string) string {
	d := u.now()
	return fmt.Sprintf("images/%d/%d/%d/%s-%s", d.Year(), d.Month(), d.Day(), u.newID(), SanitizeFileName(name))
}

func (u *S3Uploader) Upload(ctx context.Context, f File) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}

	key := u.storageKey(f.Name)
	req, err := u.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(f.ContentType),
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign upload: %w", err)
	}

	if err := netx.UploadToPresignedURL(ctx, u.http, req.URL, f.ContentType, f.Data); err != nil {
		return "", err
	}
	return u.publicURL + "/" + key, nil
}
