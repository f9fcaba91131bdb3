package file

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-faster/errors"
)

type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source opens import files from a bucket. Paths are either plain keys in
// the default bucket or s3://bucket/key URLs.
type S3Source struct {
	client objectGetter
	bucket string
}

type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string
}

func NewS3Source(ctx context.Context, cfg S3Config) (*S3Source, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Source{client: client, bucket: cfg.Bucket}, nil
}

func (s *S3Source) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	bucket, key, err := s.locate(sourcePath)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get s3://%s/%s", bucket, key)
	}
	return out.Body, nil
}

func (s *S3Source) locate(sourcePath string) (string, string, error) {
	if !strings.HasPrefix(sourcePath, "s3://") {
		key := strings.TrimPrefix(sourcePath, "/")
		if s.bucket == "" || key == "" {
			return "", "", errors.Errorf("no bucket for source %q", sourcePath)
		}
		return s.bucket, key, nil
	}

	u, err := url.Parse(sourcePath)
	if err != nil {
		return "", "", errors.Wrap(err, "parse s3 url")
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", errors.Errorf("incomplete s3 url %q", sourcePath)
	}
	return u.Host, key, nil
}
